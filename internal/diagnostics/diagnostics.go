// Package diagnostics renders the fatal error kinds of spec.md §7 into
// one-line, optionally colored messages, and reports lexical gaps that
// the lexer itself never treats as fatal.
package diagnostics

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/mithril-lang/mithril/internal/errors"
	"github.com/mithril-lang/mithril/internal/lexer"
)

var (
	codeColor  = color.New(color.FgRed, color.Bold)
	atColor    = color.New(color.FgYellow)
	plainColor = color.New()
)

// Render formats a Diagnostic as a single line naming its code, extent,
// and message. Colored selects ANSI coloring (matching the teacher's
// CLI/REPL convention of coloring errors only when attached to a
// terminal).
func Render(d *errors.Diagnostic, colored bool) string {
	code, at, msg := codeColor, atColor, plainColor
	if !colored {
		code, at, msg = plainColor, plainColor, plainColor
	}
	return fmt.Sprintf("%s %s %s",
		code.Sprintf("[%s]", d.Code),
		at.Sprintf("%s", d.Extents),
		msg.Sprint(d.Message),
	)
}

// Gap is a byte range the lexer produced no token for: spec.md §7's
// LexicalGarbage, which the lexer silently skips rather than reporting.
type Gap struct {
	Start int
	End   int
}

// Gaps reports every maximal byte range in src with no entry in
// stream, for tooling that wants to surface skipped bytes without
// treating them as fatal.
func Gaps(src string, stream lexer.TokenStream) []Gap {
	covered := make([]bool, len(src)+1)
	for offset, set := range stream {
		maxEnd := offset
		for t := range set {
			if t.Extents.End > maxEnd {
				maxEnd = t.Extents.End
			}
		}
		for i := offset; i < maxEnd && i < len(covered); i++ {
			covered[i] = true
		}
	}

	var gaps []Gap
	inGap := false
	start := 0
	for i := 0; i < len(src); i++ {
		if !covered[i] {
			if !inGap {
				inGap = true
				start = i
			}
		} else if inGap {
			inGap = false
			gaps = append(gaps, Gap{Start: start, End: i})
		}
	}
	if inGap {
		gaps = append(gaps, Gap{Start: start, End: len(src)})
	}
	return gaps
}
