package lower

import (
	"github.com/mithril-lang/mithril/internal/ast"
	"github.com/mithril-lang/mithril/internal/cst"
	"github.com/mithril-lang/mithril/internal/extent"
	"github.com/mithril-lang/mithril/internal/lexer"
)

// lowerPattern lowers a parsed Pattern tree. Per spec.md §4.3, "full key
// handling [is] pending" for record-pattern items: every item's key
// lowers to ast.EmptyRecordKey regardless of whether the parser
// retained an Identifier or Literal key token (contrast
// lowerTypeRecordItem, which SPEC_FULL.md's Open Question 4 resolution
// lets keep its real key).
func lowerPattern(node cst.Node) (ast.Pattern, error) {
	switch n := node.(type) {
	case *cst.Leaf:
		if n.Token.Kind == lexer.Identifier {
			return &ast.PatternId{Identifier: n.Token.Lexeme, Ext: n.Extents()}, nil
		}
		if n.Token.Kind.IsLiteral() {
			lit, err := lowerLiteral(n)
			if err != nil {
				return nil, err
			}
			return &ast.PatternLiteral{Literal: lit, Ext: n.Extents()}, nil
		}
		return nil, structuralMismatch(n.Extents(), "a pattern leaf", n.Token.Kind.String())
	case *cst.Branch:
		switch n.Construct {
		case cst.RecordPattern:
			items := make([]ast.RecordPatternItem, 0, len(n.Children))
			for _, c := range n.Children {
				item, err := lowerRecordPatternItem(c)
				if err != nil {
					return nil, err
				}
				items = append(items, item)
			}
			return &ast.RecordPattern{Items: items, Ext: n.Ext}, nil
		case cst.TypeTag:
			if len(n.Children) != 2 {
				return nil, structuralMismatch(n.Ext, "TypeTag with 2 children", "a different arity")
			}
			base, err := lowerPattern(n.Children[0])
			if err != nil {
				return nil, err
			}
			tag, err := lowerTypeExpression(n.Children[1])
			if err != nil {
				return nil, err
			}
			return attachTypeTag(base, tag, n.Ext), nil
		default:
			return nil, structuralMismatch(n.Ext, "a RecordPattern or TypeTag", n.Construct.String())
		}
	default:
		return nil, structuralMismatch(node.Extents(), "a pattern", "an unknown node")
	}
}

// attachTypeTag sets the TypeTag field on the pattern form that carries
// one, stretching its extent to the tagged whole. The Pattern interface
// has no generic setter, so this type-switches over the three concrete
// forms.
func attachTypeTag(base ast.Pattern, tag ast.TypeExpression, ext extent.Extent) ast.Pattern {
	switch p := base.(type) {
	case *ast.PatternId:
		p.TypeTag = tag
		p.Ext = ext
		return p
	case *ast.PatternLiteral:
		p.TypeTag = tag
		p.Ext = ext
		return p
	case *ast.RecordPattern:
		p.TypeTag = tag
		p.Ext = ext
		return p
	default:
		return base
	}
}

func lowerRecordPatternItem(node cst.Node) (ast.RecordPatternItem, error) {
	if branch, ok := node.(*cst.Branch); ok && branch.Construct == cst.RecordPatternItem {
		if len(branch.Children) != 2 {
			return ast.RecordPatternItem{}, structuralMismatch(branch.Ext, "RecordPatternItem with 2 children", "a different arity")
		}
		pattern, err := lowerPattern(branch.Children[1])
		if err != nil {
			return ast.RecordPatternItem{}, err
		}
		return ast.RecordPatternItem{Key: ast.EmptyRecordKey{}, Pattern: pattern}, nil
	}
	pattern, err := lowerPattern(node)
	if err != nil {
		return ast.RecordPatternItem{}, err
	}
	return ast.RecordPatternItem{Key: ast.EmptyRecordKey{}, Pattern: pattern}, nil
}

// lowerRecordPattern lowers an already-identified RecordPattern branch,
// used directly by lowerProcedureDefinition for the parameter position.
func lowerRecordPattern(branch *cst.Branch) (*ast.RecordPattern, error) {
	pat, err := lowerPattern(branch)
	if err != nil {
		return nil, err
	}
	rp, ok := pat.(*ast.RecordPattern)
	if !ok {
		return nil, structuralMismatch(branch.Ext, "a RecordPattern", "a different pattern")
	}
	return rp, nil
}
