package fixtures

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_SixWorkedScenarios(t *testing.T) {
	scenarios, err := Load("../../testdata/fixtures")
	require.NoError(t, err)
	require.Len(t, scenarios, 6)
	for _, s := range scenarios {
		assert.NotEmpty(t, s.Name)
		assert.NotEmpty(t, s.Want)
		assert.True(t, s.Source != "" || len(s.Tokens) > 0)
	}
}
