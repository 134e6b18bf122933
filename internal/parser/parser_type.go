package parser

import (
	"github.com/mithril-lang/mithril/internal/cst"
	"github.com/mithril-lang/mithril/internal/extent"
	"github.com/mithril-lang/mithril/internal/lexer"
)

// parseTypeExpression parses a type expression head (an identifier
// leaf, the bare identifier lexeme "ptr" denoting pointer-to-inferred,
// or a parenthesised type record), then applies left-associative
// postfix "ptr" wrapping, per spec.md §4.2.
func (p *Parser) parseTypeExpression() (cst.Node, error) {
	var head cst.Node

	if _, ok := p.findDelimiter(lexer.Parenthesis, "("); ok {
		tr, err := p.parseTypeRecord()
		if err != nil {
			return nil, err
		}
		head = tr
	} else if tok, ok := p.findKind(lexer.Identifier); ok {
		p.advance(tok)
		if tok.Lexeme == "ptr" {
			head = cst.NewBranchAt(cst.PointerType, tok.Extents)
		} else {
			head = cst.NewLeaf(tok)
		}
	} else {
		return nil, p.unexpectedToken("a type expression")
	}

	return p.parsePointerSuffixes(head), nil
}

// parsePointerSuffixes wraps head in successive PointerType branches for
// each following identifier-kind "ptr" token.
func (p *Parser) parsePointerSuffixes(head cst.Node) cst.Node {
	current := head
	for {
		tok, ok := p.findIdentifierLexeme("ptr")
		if !ok {
			return current
		}
		p.advance(tok)
		current = cst.NewBranchAt(cst.PointerType, extent.Span(current.Extents(), tok.Extents), current)
	}
}

// parseTypeRecord parses a parenthesised, comma-separated list of type
// items, analogous to a record pattern. Items may be positional (a bare
// type expression) or keyed ("key : TypeExpression"), per SPEC_FULL.md's
// resolution of spec.md §9's open question on keyed type-record items.
func (p *Parser) parseTypeRecord() (*cst.Branch, error) {
	openTok, ok := p.findDelimiter(lexer.Parenthesis, "(")
	if !ok {
		return nil, p.unexpectedToken("'('")
	}
	p.advance(openTok)

	var children []cst.Node
	for {
		if closeTok, ok := p.findDelimiter(lexer.Parenthesis, ")"); ok {
			p.advance(closeTok)
			return cst.NewBranchAt(cst.TypeRecord, extent.Span(openTok.Extents, closeTok.Extents), children...), nil
		}

		item, err := p.parseTypeRecordItem()
		if err != nil {
			return nil, err
		}
		children = append(children, item)

		if commaTok, ok := p.findDelimiter(lexer.Comma, ","); ok {
			p.advance(commaTok)
			continue
		}
		if closeTok, ok := p.findDelimiter(lexer.Parenthesis, ")"); ok {
			p.advance(closeTok)
			return cst.NewBranchAt(cst.TypeRecord, extent.Span(openTok.Extents, closeTok.Extents), children...), nil
		}
		return nil, p.missingDelimiter("',' or ')'")
	}
}

// parseTypeRecordItem parses one type-record element. An Identifier or
// Literal head is tentatively consumed and checked for a following ':':
// if present, it is a key and the item is keyed; otherwise the
// already-consumed identifier is itself the head of a (bare, positional)
// type expression and parsing continues from there. A '(' head with no
// preceding key starts a nested type record.
func (p *Parser) parseTypeRecordItem() (cst.Node, error) {
	if litTok, ok := p.selectLiteral(p.currentSet()); ok {
		p.advance(litTok)
		if colonTok, ok := p.findDelimiter(lexer.Colon, ":"); ok {
			p.advance(colonTok)
			typeExpr, err := p.parseTypeExpression()
			if err != nil {
				return nil, err
			}
			return cst.NewBranch(cst.TypeRecordItem, cst.NewLeaf(litTok), typeExpr), nil
		}
		return nil, p.unexpectedToken("a type name or record key")
	}

	if tok, ok := p.findKind(lexer.Identifier); ok {
		p.advance(tok)
		if colonTok, ok := p.findDelimiter(lexer.Colon, ":"); ok {
			p.advance(colonTok)
			typeExpr, err := p.parseTypeExpression()
			if err != nil {
				return nil, err
			}
			return cst.NewBranch(cst.TypeRecordItem, cst.NewLeaf(tok), typeExpr), nil
		}
		var head cst.Node
		if tok.Lexeme == "ptr" {
			head = cst.NewBranchAt(cst.PointerType, tok.Extents)
		} else {
			head = cst.NewLeaf(tok)
		}
		return p.parsePointerSuffixes(head), nil
	}

	if _, ok := p.findDelimiter(lexer.Parenthesis, "("); ok {
		return p.parseTypeExpression()
	}

	return nil, p.unexpectedToken("a type-record item")
}
