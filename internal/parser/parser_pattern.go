package parser

import (
	"github.com/mithril-lang/mithril/internal/cst"
	"github.com/mithril-lang/mithril/internal/extent"
	"github.com/mithril-lang/mithril/internal/lexer"
)

// parsePattern parses a pattern: an identifier leaf, a literal leaf, or
// a record pattern (beginning with '('), optionally followed by a
// ':' type tag, per spec.md §4.2.
func (p *Parser) parsePattern() (cst.Node, error) {
	var base cst.Node

	switch {
	case hasDelimiter(p, lexer.Parenthesis, "("):
		rp, err := p.parseRecordPattern()
		if err != nil {
			return nil, err
		}
		base = rp
	default:
		if tok, ok := p.findKind(lexer.Identifier); ok {
			p.advance(tok)
			base = cst.NewLeaf(tok)
		} else if tok, ok := p.selectLiteral(p.currentSet()); ok {
			p.advance(tok)
			base = cst.NewLeaf(tok)
		} else {
			return nil, p.unexpectedToken("a pattern")
		}
	}

	if colonTok, ok := p.findDelimiter(lexer.Colon, ":"); ok {
		p.advance(colonTok)
		typeExpr, err := p.parseTypeExpression()
		if err != nil {
			return nil, err
		}
		return cst.NewBranch(cst.TypeTag, base, typeExpr), nil
	}
	return base, nil
}

func hasDelimiter(p *Parser, k lexer.Kind, lexeme string) bool {
	_, ok := p.findDelimiter(k, lexeme)
	return ok
}

// parseRecordPattern parses "( item , item , ... )", where terminating
// commas are legal and the empty record pattern "()" is allowed.
func (p *Parser) parseRecordPattern() (*cst.Branch, error) {
	openTok, ok := p.findDelimiter(lexer.Parenthesis, "(")
	if !ok {
		return nil, p.unexpectedToken("'('")
	}
	p.advance(openTok)

	var children []cst.Node
	for {
		if closeTok, ok := p.findDelimiter(lexer.Parenthesis, ")"); ok {
			p.advance(closeTok)
			return cst.NewBranchAt(cst.RecordPattern, extent.Span(openTok.Extents, closeTok.Extents), children...), nil
		}

		item, err := p.parseRecordPatternItem()
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
			return cst.NewBranchAt(cst.RecordPattern, extent.Span(openTok.Extents, closeTok.Extents), children...), nil
		}
		return nil, p.missingDelimiter("',' or ')'")
	}
}

// parseRecordPatternItem parses one record pattern element. If the head
// is an Identifier or Literal, it is tentatively consumed and checked
// for a following '='; if present, the element is a keyed
// RecordPatternItem[key, pattern], otherwise the head stands alone as a
// bare pattern. A head that is neither recurses into parsePattern,
// handling a nested record pattern with no key.
func (p *Parser) parseRecordPatternItem() (cst.Node, error) {
	var headTok lexer.Token
	var ok bool
	if headTok, ok = p.findKind(lexer.Identifier); !ok {
		headTok, ok = p.selectLiteral(p.currentSet())
	}
	if !ok {
		return p.parsePattern()
	}
	p.advance(headTok)
	headLeaf := cst.NewLeaf(headTok)

	if eqTok, ok := p.findDelimiter(lexer.EqualSign, "="); ok {
		p.advance(eqTok)
		pattern, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		return cst.NewBranch(cst.RecordPatternItem, headLeaf, pattern), nil
	}
	return headLeaf, nil
}
