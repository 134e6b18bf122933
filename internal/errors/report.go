package errors

import (
	"fmt"

	"github.com/mithril-lang/mithril/internal/extent"
)

// Diagnostic is the structured fatal error raised by the lexer, parser,
// or lowerer. It names the offending construct's extents, a stable code,
// and a human-readable message naming the expected form, per spec.md §7.
type Diagnostic struct {
	Code    string
	Phase   string // "lexer", "parser", or "lower"
	Message string
	Extents extent.Extent
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s at %s: %s", d.Phase, d.Code, d.Extents, d.Message)
}

// New builds a Diagnostic.
func New(phase, code string, at extent.Extent, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Code:    code,
		Phase:   phase,
		Message: fmt.Sprintf(format, args...),
		Extents: at,
	}
}
