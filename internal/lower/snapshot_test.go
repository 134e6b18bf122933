package lower

import (
	"fmt"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestLower_Snapshots pins the %+v rendering of the lowered definitions
// for a handful of representative sources, the way the teacher pins
// interpreter output with go-snaps.
func TestLower_Snapshots(t *testing.T) {
	cases := []string{
		"public let x = 39;",
		"let varname () { unreachable; }",
		"type t = (name: int);",
	}

	for i, src := range cases {
		defs := lowerSource(t, src)
		snaps.MatchSnapshot(t, fmt.Sprintf("case_%d", i), fmt.Sprintf("%+v", defs))
	}
}
