package lower

import (
	"strconv"

	"github.com/mithril-lang/mithril/internal/ast"
	"github.com/mithril-lang/mithril/internal/cst"
	"github.com/mithril-lang/mithril/internal/lexer"
)

// lowerExpression lowers a parsed Expression tree. Per spec.md §3 only
// Access, Literal, and RecordExpression are actually realised; a
// ProcedureCall, Conditional, Map, or QualifiedIdentifier construct, or
// a TypeTag wrapping an expression, parses cleanly but raises
// errors.LOW002 here, since lowering them is explicitly deferred.
func lowerExpression(node cst.Node) (ast.Expression, error) {
	switch n := node.(type) {
	case *cst.Leaf:
		if n.Token.Kind == lexer.Identifier {
			return &ast.Access{Identifier: n.Token.Lexeme, Ext: n.Extents()}, nil
		}
		if n.Token.Kind.IsLiteral() {
			return lowerLiteral(n)
		}
		return nil, structuralMismatch(n.Extents(), "an expression leaf", n.Token.Kind.String())
	case *cst.Branch:
		switch n.Construct {
		case cst.RecordExpression:
			items := make([]ast.RecordExpressionItem, 0, len(n.Children))
			for _, c := range n.Children {
				item, err := lowerRecordExpressionItem(c)
				if err != nil {
					return nil, err
				}
				items = append(items, item)
			}
			return &ast.RecordExpression{Items: items, Ext: n.Ext}, nil
		case cst.ProcedureCall:
			return nil, unimplemented(n.Ext, "a procedure call expression")
		case cst.Conditional:
			return nil, unimplemented(n.Ext, "a conditional expression")
		case cst.Map:
			return nil, unimplemented(n.Ext, "a map expression")
		case cst.QualifiedIdentifier:
			return nil, unimplemented(n.Ext, "a qualified-identifier expression")
		case cst.TypeTag:
			return nil, unimplemented(n.Ext, "a type-tagged expression")
		default:
			return nil, structuralMismatch(n.Ext, "an expression construct", n.Construct.String())
		}
	default:
		return nil, structuralMismatch(node.Extents(), "an expression", "an unknown node")
	}
}

func lowerRecordExpressionItem(node cst.Node) (ast.RecordExpressionItem, error) {
	if branch, ok := node.(*cst.Branch); ok && branch.Construct == cst.RecordExpressionItem {
		if len(branch.Children) != 2 {
			return ast.RecordExpressionItem{}, structuralMismatch(branch.Ext, "RecordExpressionItem with 2 children", "a different arity")
		}
		key, err := lowerRecordKey(branch.Children[0])
		if err != nil {
			return ast.RecordExpressionItem{}, err
		}
		value, err := lowerExpression(branch.Children[1])
		if err != nil {
			return ast.RecordExpressionItem{}, err
		}
		return ast.RecordExpressionItem{Key: key, Value: value}, nil
	}
	value, err := lowerExpression(node)
	if err != nil {
		return ast.RecordExpressionItem{}, err
	}
	return ast.RecordExpressionItem{Key: ast.EmptyRecordKey{}, Value: value}, nil
}

// lowerLiteral decodes a literal leaf's raw lexeme into its typed value,
// covering all six kinds per SPEC_FULL.md §4.3's supplement of spec.md's
// Integer-only lowering text. Escape decoding for Character/String
// lexemes is non-fatal on an unrecognised escape (errors.LEX001 is a
// note, not a hard error); the escaped character is passed through
// unchanged, matching internal/lexer.UnescapeStringLexeme's contract.
func lowerLiteral(leaf *cst.Leaf) (*ast.Literal, error) {
	ext := leaf.Extents()
	switch leaf.Token.Kind {
	case lexer.Integer:
		v, err := strconv.ParseInt(leaf.Token.Lexeme, 10, 64)
		if err != nil {
			return nil, structuralMismatch(ext, "a well-formed integer literal", leaf.Token.Lexeme)
		}
		return &ast.Literal{Kind: ast.IntegerLiteral, Integer: v, Ext: ext}, nil
	case lexer.Decimal:
		v, err := strconv.ParseFloat(leaf.Token.Lexeme, 64)
		if err != nil {
			return nil, structuralMismatch(ext, "a well-formed decimal literal", leaf.Token.Lexeme)
		}
		return &ast.Literal{Kind: ast.DecimalLiteral, Decimal: v, Ext: ext}, nil
	case lexer.Character:
		r, _ := lexer.UnescapeCharacterLexeme(leaf.Token.Lexeme)
		return &ast.Literal{Kind: ast.CharacterLiteral, Character: r, Ext: ext}, nil
	case lexer.String:
		s, _ := lexer.UnescapeStringLexeme(leaf.Token.Lexeme)
		return &ast.Literal{Kind: ast.StringLiteral, String: s, Ext: ext}, nil
	case lexer.Boolean:
		return &ast.Literal{Kind: ast.BooleanLiteral, Boolean: leaf.Token.Lexeme == "true", Ext: ext}, nil
	case lexer.Poison:
		return &ast.Literal{Kind: ast.PoisonLiteral, Ext: ext}, nil
	default:
		return nil, structuralMismatch(ext, "a literal token", leaf.Token.Kind.String())
	}
}
