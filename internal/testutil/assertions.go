package testutil

import (
	"testing"

	"github.com/specialistvlad/buildprep/internal/reference"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertReferences checks the resolved references of a run. base must come
// first; each group follows in the given order, while the files inside a
// group may come in any order since build output folders are unordered.
// Paths are '/' separated and relative to the harness root.
func AssertReferences(t *testing.T, r *HarnessResult, base string, groups ...[]string) {
	t.Helper()
	require.NoError(t, r.Err)
	require.NotNil(t, r.Result)

	got := reference.Paths(r.Result.References)
	want := 1
	for _, g := range groups {
		want += len(g)
	}
	require.Len(t, got, want, "resolved references: %v", got)
	assert.Equal(t, r.Path(base), got[0], "base library anchors the list")

	next := 1
	for i, g := range groups {
		expected := make([]string, 0, len(g))
		for _, p := range g {
			expected = append(expected, r.Path(p))
		}
		assert.ElementsMatch(t, expected, got[next:next+len(g)], "group %d", i)
		next += len(g)
	}
}

// CommandLines renders the recorded calls of a harness run.
func CommandLines(r *HarnessResult) []string {
	lines := make([]string, 0, len(r.Calls))
	for _, c := range r.Calls {
		lines = append(lines, c.CommandLine())
	}
	return lines
}
