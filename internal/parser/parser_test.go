package parser

import (
	"testing"

	"github.com/mithril-lang/mithril/internal/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseSource lexes and parses source in one step, failing the test on
// the first parse error.
func parseSource(t *testing.T, source string) string {
	t.Helper()
	tree, err := Parse(lexer.Lex(source))
	require.NoError(t, err)
	return tree.String()
}

// TestParse_EndToEndScenarios covers spec.md §8's four worked
// end-to-end scenarios by driving real source text through the full
// lex-then-parse pipeline and comparing the tree's rendered shape.
func TestParse_EndToEndScenarios(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "scenario 1: value definition with block body",
			source: "let varname {}",
			want:   "File(ValueDefinition(Modifiers(), Keyword(let), Identifier(varname), Block()))",
		},
		{
			name:   "scenario 2: identifier-headed value definition",
			source: "int varname = 5;",
			want:   "File(ValueDefinition(Modifiers(), Identifier(int), Identifier(varname), Integer(5)))",
		},
		{
			name:   "scenario 3: procedure definition",
			source: "let varname () { unreachable; }",
			want:   "File(ProcedureDefinition(Modifiers(), Keyword(let), Identifier(varname), RecordPattern(), Block(Keyword(unreachable))))",
		},
		{
			name:   "scenario 4: type definition",
			source: "type typename = int;",
			want:   "File(TypeDefinition(Modifiers(), Identifier(typename), Identifier(int)))",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, parseSource(t, tc.source))
		})
	}
}

func TestParse_EmptyFile(t *testing.T) {
	assert.Equal(t, "File()", parseSource(t, "   "))
}

func TestParse_PublicModifier(t *testing.T) {
	got := parseSource(t, "public let x = 1;")
	assert.Equal(t, "File(ValueDefinition(Modifiers(Modifier(public)), Keyword(let), Identifier(x), Integer(1)))", got)
}

func TestParse_RecordPatternBind(t *testing.T) {
	got := parseSource(t, "let (a, b) = 1;")
	assert.Equal(t, "File(ValueDefinition(Modifiers(), Keyword(let), RecordPattern(Identifier(a), Identifier(b)), Integer(1)))", got)
}

func TestParse_KeyedRecordPattern(t *testing.T) {
	got := parseSource(t, "let (a = b) = 1;")
	assert.Equal(t, "File(ValueDefinition(Modifiers(), Keyword(let), RecordPattern(RecordPatternItem(Identifier(a), Identifier(b))), Integer(1)))", got)
}

func TestParse_PatternTypeTag(t *testing.T) {
	got := parseSource(t, "let x : int = 1;")
	assert.Equal(t, "File(ValueDefinition(Modifiers(), Keyword(let), TypeTag(Identifier(x), Identifier(int)), Integer(1)))", got)
}

func TestParse_PointerType(t *testing.T) {
	got := parseSource(t, "type t = int ptr;")
	assert.Equal(t, "File(TypeDefinition(Modifiers(), Identifier(t), PointerType(Identifier(int))))", got)
}

func TestParse_BarePointerType(t *testing.T) {
	got := parseSource(t, "type t = ptr;")
	assert.Equal(t, "File(TypeDefinition(Modifiers(), Identifier(t), PointerType()))", got)
}

func TestParse_NestedPointerType(t *testing.T) {
	got := parseSource(t, "type t = int ptr ptr;")
	assert.Equal(t, "File(TypeDefinition(Modifiers(), Identifier(t), PointerType(PointerType(Identifier(int)))))", got)
}

func TestParse_TypeRecordPositionalAndKeyed(t *testing.T) {
	got := parseSource(t, "type t = (int, name: string);")
	assert.Equal(t, "File(TypeDefinition(Modifiers(), Identifier(t), TypeRecord(Identifier(int), TypeRecordItem(Identifier(name), Identifier(string)))))", got)
}

func TestParse_ProcedureCall(t *testing.T) {
	got := parseSource(t, "let x = f(1);")
	assert.Equal(t, "File(ValueDefinition(Modifiers(), Keyword(let), Identifier(x), ProcedureCall(Identifier(f), RecordExpression(Integer(1)))))", got)
}

func TestParse_QualifiedIdentifier(t *testing.T) {
	got := parseSource(t, "let x = a.b.c;")
	assert.Equal(t, "File(ValueDefinition(Modifiers(), Keyword(let), Identifier(x), QualifiedIdentifier(QualifiedIdentifier(Identifier(a), Identifier(b)), Identifier(c))))", got)
}

func TestParse_RecordExpressionKeyed(t *testing.T) {
	got := parseSource(t, "let x = (a = 1, b = 2);")
	want := "File(ValueDefinition(Modifiers(), Keyword(let), Identifier(x), " +
		"RecordExpression(RecordExpressionItem(Identifier(a), Integer(1)), RecordExpressionItem(Identifier(b), Integer(2)))))"
	assert.Equal(t, want, got)
}

func TestParse_Conditional(t *testing.T) {
	got := parseSource(t, "let x = if a 1 else 2;")
	assert.Equal(t, "File(ValueDefinition(Modifiers(), Keyword(let), Identifier(x), Conditional(Identifier(a), Integer(1), Integer(2))))", got)
}

func TestParse_ConditionalWithBlocks(t *testing.T) {
	got := parseSource(t, "let f () { if a { return 1; } else { return 2; } }")
	want := "File(ProcedureDefinition(Modifiers(), Keyword(let), Identifier(f), RecordPattern(), " +
		"Block(Conditional(Identifier(a), Block(ReturnStatement(Integer(1))), Block(ReturnStatement(Integer(2)))))))"
	assert.Equal(t, want, got)
}

func TestParse_MapExpression(t *testing.T) {
	got := parseSource(t, "let x = map y over xs = y;")
	assert.Equal(t, "File(ValueDefinition(Modifiers(), Keyword(let), Identifier(x), Map(Identifier(y), Identifier(xs), Identifier(y))))", got)
}

func TestParse_LocalLetBindingInsideBlock(t *testing.T) {
	got := parseSource(t, "let f () { let y = 1; return y; }")
	want := "File(ProcedureDefinition(Modifiers(), Keyword(let), Identifier(f), RecordPattern(), " +
		"Block(ValueDefinition(Modifiers(), Keyword(let), Identifier(y), Integer(1)), ReturnStatement(Identifier(y)))))"
	assert.Equal(t, want, got)
}

func TestParse_MissingSemicolonIsFatal(t *testing.T) {
	_, err := Parse(lexer.Lex("let x = 1"))
	assert.Error(t, err)
}

func TestParse_UnexpectedTokenIsFatal(t *testing.T) {
	_, err := Parse(lexer.Lex("42"))
	assert.Error(t, err)
}

// TestParse_RootExtentsSpanAllLeaves covers spec.md §8 property 3: the
// root's extents equal [min start, max end] over all leaves.
func TestParse_RootExtentsSpanAllLeaves(t *testing.T) {
	source := "let varname {}"
	tree, err := Parse(lexer.Lex(source))
	require.NoError(t, err)
	assert.Equal(t, 0, tree.Extents().Start)
	assert.Equal(t, len(source), tree.Extents().End)
}
