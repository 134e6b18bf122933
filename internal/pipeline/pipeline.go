// Package pipeline runs the lex→parse→lower chain over many source
// files concurrently, per SPEC_FULL.md §4.4.
package pipeline

import (
	"context"
	"runtime"
	"sync"

	"github.com/mithril-lang/mithril/internal/ast"
	"github.com/mithril-lang/mithril/internal/cst"
	"github.com/mithril-lang/mithril/internal/lexer"
	"github.com/mithril-lang/mithril/internal/lower"
	"github.com/mithril-lang/mithril/internal/parser"
	"golang.org/x/sync/errgroup"
)

// Config bounds pipeline execution.
type Config struct {
	// Concurrency caps the number of files lexed/parsed/lowered at once.
	// Zero selects runtime.GOMAXPROCS(0).
	Concurrency int
}

// Source is one input file.
type Source struct {
	Code     string
	Filename string
}

// Run lexes, parses, and lowers every source concurrently. Per spec.md
// §5, a single file's lex→parse→lower chain is strictly sequential and
// produces a fresh, immutable tree with no state shared across files.
// File-level results are associative and commutative: the returned
// definitions are the union of every file's definitions in no
// guaranteed cross-file order, and a fatal error in one file never
// cancels its siblings — each file's error, if any, is collected
// independently at the corresponding index of the returned slice.
// Cancelling ctx stops files that have not yet started; a file already
// running completes its own chain.
func Run(ctx context.Context, sources []Source, cfg Config) ([]ast.Definition, []error) {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}

	g := new(errgroup.Group)
	g.SetLimit(concurrency)

	errs := make([]error, len(sources))
	var mu sync.Mutex
	var defs []ast.Definition

	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			if ctx.Err() != nil {
				errs[i] = ctx.Err()
				return nil
			}
			fileDefs, err := runFile(src)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs[i] = err
				return nil
			}
			defs = append(defs, fileDefs...)
			return nil
		})
	}
	_ = g.Wait()

	return defs, errs
}

func runFile(src Source) ([]ast.Definition, error) {
	stream := lexer.Lex(src.Code)
	tree, err := parser.Parse(stream)
	if err != nil {
		return nil, err
	}
	return lower.Lower([]*cst.Branch{tree})
}
