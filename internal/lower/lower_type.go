package lower

import (
	"github.com/mithril-lang/mithril/internal/ast"
	"github.com/mithril-lang/mithril/internal/cst"
	"github.com/mithril-lang/mithril/internal/lexer"
)

// lowerTypeExpression lowers a general type-expression parse tree: an
// Identifier leaf to TypeId, a PointerType branch to PointerType
// (recursing into its single optional child), or a TypeRecord branch to
// RecordType, mapping bare items to EmptyRecordKey and TypeRecordItem
// branches to their keyed form.
func lowerTypeExpression(node cst.Node) (ast.TypeExpression, error) {
	switch n := node.(type) {
	case *cst.Leaf:
		if n.Token.Kind != lexer.Identifier {
			return nil, structuralMismatch(n.Extents(), "an Identifier type name", n.Token.Kind.String())
		}
		return &ast.TypeId{Name: n.Token.Lexeme, Ext: n.Extents()}, nil
	case *cst.Branch:
		switch n.Construct {
		case cst.PointerType:
			if len(n.Children) == 0 {
				return &ast.PointerType{Pointee: nil, Ext: n.Ext}, nil
			}
			pointee, err := lowerTypeExpression(n.Children[0])
			if err != nil {
				return nil, err
			}
			return &ast.PointerType{Pointee: pointee, Ext: n.Ext}, nil
		case cst.TypeRecord:
			items := make([]ast.RecordTypeItem, 0, len(n.Children))
			for _, c := range n.Children {
				item, err := lowerTypeRecordItem(c)
				if err != nil {
					return nil, err
				}
				items = append(items, item)
			}
			return &ast.RecordType{Items: items, Ext: n.Ext}, nil
		default:
			return nil, structuralMismatch(n.Ext, "a PointerType or TypeRecord", n.Construct.String())
		}
	default:
		return nil, structuralMismatch(node.Extents(), "a type expression", "an unknown node")
	}
}

func lowerTypeRecordItem(node cst.Node) (ast.RecordTypeItem, error) {
	if branch, ok := node.(*cst.Branch); ok && branch.Construct == cst.TypeRecordItem {
		if len(branch.Children) != 2 {
			return ast.RecordTypeItem{}, structuralMismatch(branch.Ext, "TypeRecordItem with 2 children", "a different arity")
		}
		key, err := lowerRecordKey(branch.Children[0])
		if err != nil {
			return ast.RecordTypeItem{}, err
		}
		value, err := lowerTypeExpression(branch.Children[1])
		if err != nil {
			return ast.RecordTypeItem{}, err
		}
		return ast.RecordTypeItem{Key: key, Value: value}, nil
	}
	value, err := lowerTypeExpression(node)
	if err != nil {
		return ast.RecordTypeItem{}, err
	}
	return ast.RecordTypeItem{Key: ast.EmptyRecordKey{}, Value: value}, nil
}

// lowerRecordKey lowers a bare key leaf (Identifier or literal) to its
// AccessKey/LiteralKey form, used by type-record keyed items where the
// actual key is retained (unlike record-pattern items; see
// SPEC_FULL.md §4.3).
func lowerRecordKey(node cst.Node) (ast.RecordKey, error) {
	leaf, ok := node.(*cst.Leaf)
	if !ok {
		return nil, structuralMismatch(node.Extents(), "an Identifier or literal key", "a branch")
	}
	if leaf.Token.Kind == lexer.Identifier {
		return ast.AccessKey{Identifier: leaf.Token.Lexeme}, nil
	}
	lit, err := lowerLiteral(leaf)
	if err != nil {
		return nil, err
	}
	return ast.LiteralKey{Literal: lit}, nil
}
