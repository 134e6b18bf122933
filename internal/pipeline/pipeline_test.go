package pipeline

import (
	"context"
	"testing"

	"github.com/mithril-lang/mithril/internal/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_UnionsDefinitionsAcrossFiles(t *testing.T) {
	sources := []Source{
		{Filename: "a.mith", Code: "let a = 1;"},
		{Filename: "b.mith", Code: "let b = 2;"},
	}
	defs, errs := Run(context.Background(), sources, Config{})
	for _, err := range errs {
		assert.NoError(t, err)
	}
	require.Len(t, defs, 2)

	names := map[string]bool{}
	for _, d := range defs {
		vd := d.(*ast.ValueDefinition)
		id, ok := vd.DefinedIdentifier()
		require.True(t, ok)
		names[id] = true
	}
	assert.True(t, names["a"])
	assert.True(t, names["b"])
}

func TestRun_OneFileErrorDoesNotBlockSiblings(t *testing.T) {
	sources := []Source{
		{Filename: "bad.mith", Code: "let"},
		{Filename: "good.mith", Code: "let ok = 1;"},
	}
	defs, errs := Run(context.Background(), sources, Config{Concurrency: 1})
	require.Len(t, errs, 2)
	assert.Error(t, errs[0])
	assert.NoError(t, errs[1])
	require.Len(t, defs, 1)
}
