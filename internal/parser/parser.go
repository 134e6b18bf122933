// Package parser consumes the lexer's set-valued token stream and
// produces a concrete parse tree of definitions, per spec.md §4.2. The
// parser does not linearise the stream ahead of time: at each decision
// point it inspects the current token set and selects by predicate,
// letting its own grammatical context disambiguate kinds the lexer left
// ambiguous.
package parser

import (
	"github.com/mithril-lang/mithril/internal/cst"
	"github.com/mithril-lang/mithril/internal/errors"
	"github.com/mithril-lang/mithril/internal/extent"
	"github.com/mithril-lang/mithril/internal/lexer"
)

// Parser drives a single pass over a token stream, maintaining a current
// offset idx per spec.md §4.2's cursor discipline.
type Parser struct {
	stream lexer.TokenStream
	idx    int
	end    int // farthest extent.End reached by any token in the stream
}

// New builds a Parser over stream. end is derived once by scanning every
// token's extent, since the stream itself (a sparse map) carries no
// explicit length; it is the offset past which no further definitions
// can exist.
func New(stream lexer.TokenStream) *Parser {
	end := 0
	for _, set := range stream {
		for tok := range set {
			if tok.Extents.End > end {
				end = tok.Extents.End
			}
		}
	}
	return &Parser{stream: stream, idx: 0, end: end}
}

// Parse reads definitions until the stream is exhausted and returns the
// root File tree. It fails fast on the first malformed construct.
func Parse(stream lexer.TokenStream) (*cst.Branch, error) {
	return New(stream).ParseFile()
}

// ParseFile is the parser's top-level entry point.
func (p *Parser) ParseFile() (*cst.Branch, error) {
	var children []cst.Node
	for !p.atEnd() {
		def, err := p.parseDefinition()
		if err != nil {
			return nil, err
		}
		children = append(children, def)
	}
	if len(children) == 0 {
		return cst.NewBranchAt(cst.File, extent.Zero(0)), nil
	}
	return cst.NewBranch(cst.File, children...), nil
}

func (p *Parser) atEnd() bool {
	return p.idx >= p.end
}

// currentSet returns the token set at idx, or nil (ranges over zero
// elements) if idx is not a key of the stream.
func (p *Parser) currentSet() map[lexer.Token]struct{} {
	return p.stream[p.idx]
}

// advance moves idx past tok, per spec.md §4.2: "the parser sets
// idx := t.extents.end". Because trailing whitespace is embedded in
// extents, this naturally skips whitespace.
func (p *Parser) advance(tok lexer.Token) {
	p.idx = tok.Extents.End
}

func (p *Parser) findKind(k lexer.Kind) (lexer.Token, bool) {
	for t := range p.currentSet() {
		if t.Kind == k {
			return t, true
		}
	}
	return lexer.Token{}, false
}

func (p *Parser) findKeyword(lexeme string) (lexer.Token, bool) {
	for t := range p.currentSet() {
		if t.IsKeyword(lexeme) {
			return t, true
		}
	}
	return lexer.Token{}, false
}

func (p *Parser) findModifier(lexeme string) (lexer.Token, bool) {
	for t := range p.currentSet() {
		if t.IsModifier(lexeme) {
			return t, true
		}
	}
	return lexer.Token{}, false
}

// findDelimiter matches a single-character delimiter kind by its
// lexeme, disambiguating kinds (Parenthesis, CurlyBracket) that cover
// more than one literal character.
func (p *Parser) findDelimiter(k lexer.Kind, lexeme string) (lexer.Token, bool) {
	for t := range p.currentSet() {
		if t.Kind == k && t.Lexeme == lexeme {
			return t, true
		}
	}
	return lexer.Token{}, false
}

func (p *Parser) findIdentifierLexeme(lexeme string) (lexer.Token, bool) {
	for t := range p.currentSet() {
		if t.Kind == lexer.Identifier && t.Lexeme == lexeme {
			return t, true
		}
	}
	return lexer.Token{}, false
}

// anyLiteralKind is the set of literal kinds consulted when the grammar
// expects "a literal" without naming a specific one.
var anyLiteralKind = []lexer.Kind{lexer.Decimal, lexer.Integer, lexer.Character, lexer.String, lexer.Boolean, lexer.Poison}

// selectLiteral returns a literal-kind token from set, if any exists.
// Decimal is preferred over Integer: when both are present at the same
// offset (e.g. "123.45" yields both an Integer "123" and a Decimal
// "123.45" candidate, per spec.md §4.1), the lexer itself always
// advances its own cursor to the widest candidate's end; selecting the
// narrower Integer here would leave idx short of the next stream key.
// Picking the wider candidate keeps the parser's cursor consistent with
// the lexer's.
func (p *Parser) selectLiteral(set map[lexer.Token]struct{}) (lexer.Token, bool) {
	if t, ok := find(set, lexer.Decimal); ok {
		return t, true
	}
	for _, k := range anyLiteralKind {
		if k == lexer.Decimal {
			continue
		}
		if t, ok := find(set, k); ok {
			return t, true
		}
	}
	return lexer.Token{}, false
}

func find(set map[lexer.Token]struct{}, k lexer.Kind) (lexer.Token, bool) {
	for t := range set {
		if t.Kind == k {
			return t, true
		}
	}
	return lexer.Token{}, false
}

// here returns the extent the parser should blame an error on: the
// extent of some token at idx if any exist, otherwise a zero-width
// extent anchored at idx.
func (p *Parser) here() extent.Extent {
	for t := range p.currentSet() {
		return t.Extents
	}
	return extent.Zero(p.idx)
}

func (p *Parser) unexpectedToken(expected string) error {
	return errors.New("parser", errors.PAR001, p.here(), "expected %s", expected)
}

func (p *Parser) missingDelimiter(expected string) error {
	return errors.New("parser", errors.PAR002, p.here(), "expected %s", expected)
}
