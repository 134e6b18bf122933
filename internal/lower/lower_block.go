package lower

import (
	"github.com/mithril-lang/mithril/internal/ast"
	"github.com/mithril-lang/mithril/internal/cst"
)

// lowerBody implements spec.md §4.3's block lifting: a Block construct
// lowers item by item, while any other body node is a single expression
// lifted into Block([ReturnStatement(expression, extents)], extents)
// with the body's own extents carried unchanged onto both the
// statement and the block, per spec.md §8 property 5.
func lowerBody(node cst.Node) (*ast.Block, error) {
	if branch, ok := node.(*cst.Branch); ok && branch.Construct == cst.Block {
		statements := make([]ast.Statement, 0, len(branch.Children))
		for _, c := range branch.Children {
			stmt, err := lowerBlockStatement(c)
			if err != nil {
				return nil, err
			}
			statements = append(statements, stmt)
		}
		return &ast.Block{Statements: statements, Ext: branch.Ext}, nil
	}

	expr, err := lowerExpression(node)
	if err != nil {
		return nil, err
	}
	ext := node.Extents()
	ret := &ast.ReturnStatement{Expression: expr, Ext: ext}
	return &ast.Block{Statements: []ast.Statement{ret}, Ext: ext}, nil
}

// lowerBlockStatement lowers one child of a Block. Per spec.md §4.2 a
// statement is a nested block, a ReturnStatement, a bare "unreachable"
// leaf, a local "let" binding, or an expression statement. A nested
// block has no case in the Statement sum type (spec.md §3 names only
// BindingStatement, ExpressionStatement, ReturnStatement, and
// UnreachableStatement), so it raises errors.LOW002 here, matching the
// treatment of the deferred Expression constructs. A local binding
// shaped like a procedure definition (headed by "let", followed by a
// record-pattern parameter) is likewise left unlowered: spec.md §4.2
// already marks local bindings "not fully implemented" upstream, and
// BindingStatement's shape is fixed to a ValueDefinition.
func lowerBlockStatement(node cst.Node) (ast.Statement, error) {
	switch n := node.(type) {
	case *cst.Leaf:
		if n.Token.IsKeyword("unreachable") {
			return &ast.UnreachableStatement{Ext: n.Extents()}, nil
		}
		expr, err := lowerExpression(n)
		if err != nil {
			return nil, err
		}
		return &ast.ExpressionStatement{Expression: expr, Ext: n.Extents()}, nil
	case *cst.Branch:
		switch n.Construct {
		case cst.Block:
			return nil, unimplemented(n.Ext, "a nested block statement")
		case cst.ReturnStatement:
			if len(n.Children) != 1 {
				return nil, structuralMismatch(n.Ext, "ReturnStatement with 1 child", "a different arity")
			}
			expr, err := lowerExpression(n.Children[0])
			if err != nil {
				return nil, err
			}
			return &ast.ReturnStatement{Expression: expr, Ext: n.Ext}, nil
		case cst.ValueDefinition:
			def, err := lowerValueDefinition(n)
			if err != nil {
				return nil, err
			}
			return &ast.BindingStatement{Definition: def}, nil
		case cst.ProcedureDefinition:
			return nil, unimplemented(n.Ext, "a local procedure-shaped binding statement")
		default:
			expr, err := lowerExpression(n)
			if err != nil {
				return nil, err
			}
			return &ast.ExpressionStatement{Expression: expr, Ext: n.Ext}, nil
		}
	default:
		return nil, structuralMismatch(node.Extents(), "a statement", "an unknown node")
	}
}
