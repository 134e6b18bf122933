// Package extent defines the half-open byte interval shared by the
// lexer, the concrete parse tree, and the abstract syntax tree as their
// sole ground-truth linkage back to source text.
package extent

import "fmt"

// Extent is a half-open byte interval [Start, End) into a source file.
// End is exclusive and, for a lexed token, includes any trailing
// whitespace consumed while tokenising that lexeme.
type Extent struct {
	Start int
	End   int
}

// String renders an extent as "[start,end)" for diagnostics.
func (e Extent) String() string {
	return fmt.Sprintf("[%d,%d)", e.Start, e.End)
}

// Width reports the number of bytes the extent spans.
func (e Extent) Width() int {
	return e.End - e.Start
}

// Span returns the smallest extent covering both a and b. It is used to
// compute a branch node's extent from its children: start is the minimum
// child start, end is the maximum child end.
func Span(a, b Extent) Extent {
	s := Extent{Start: a.Start, End: a.End}
	if b.Start < s.Start {
		s.Start = b.Start
	}
	if b.End > s.End {
		s.End = b.End
	}
	return s
}

// SpanAll folds Span over a non-empty slice of extents.
func SpanAll(exts []Extent) Extent {
	out := exts[0]
	for _, e := range exts[1:] {
		out = Span(out, e)
	}
	return out
}

// Zero returns a zero-width extent anchored at offset. It is used for
// synthetic nodes (the empty Modifiers branch) that have no source text
// of their own but must still report a position.
func Zero(offset int) Extent {
	return Extent{Start: offset, End: offset}
}
