package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mithril-lang/mithril/internal/lexer"
)

// goldenCompare compares a rendered tree against a checked-in golden
// file, mirroring the teacher's own golden-file convention for the
// parser package.
func goldenCompare(t *testing.T, name string, got string) {
	t.Helper()

	path := filepath.Join("testdata", "golden", name+".golden")
	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading golden file %s: %v", path, err)
	}

	if diff := cmp.Diff(string(want), got); diff != "" {
		t.Errorf("golden mismatch for %s (-want +got):\n%s", name, diff)
	}
}

func TestParse_GoldenTrees(t *testing.T) {
	cases := []struct {
		name   string
		source string
	}{
		{"value_definition_block_body", "let varname {}"},
		{"procedure_definition", "let varname () { unreachable; }"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tree, err := Parse(lexer.Lex(c.source))
			if err != nil {
				t.Fatalf("unexpected parse error: %v", err)
			}
			goldenCompare(t, c.name, tree.String())
		})
	}
}
