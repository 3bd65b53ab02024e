package term

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/ggraph/internal/assign"
	"github.com/yourusername/ggraph/internal/discovery"
	"github.com/yourusername/ggraph/internal/format"
	"github.com/yourusername/ggraph/internal/gitrepo"
	"github.com/yourusername/ggraph/internal/grid"
)

func col(i int) *int { return &i }

func TestRenderProducesOneLinePerCommit(t *testing.T) {
	commits := []*gitrepo.Commit{
		{Hash: "B", Summary: "second"},
		{Hash: "A", Summary: "first"},
	}
	branches := []*discovery.BranchInfo{
		{Name: "main", Column: col(0), Range: &discovery.Range{Start: 0, End: 1}},
	}
	result := &assign.Result{
		Branches:          branches,
		DisplayedCommits:  commits,
		DisplayedBranchOf: []int{0, 0},
	}
	g := grid.Build(commits, result.DisplayedBranchOf, branches, false)

	var out strings.Builder
	err := Render(&out, result, g, Options{Style: StyleNormal, Template: "%s"})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "second")
	assert.Contains(t, lines[1], "first")
}

func TestRenderWrapsLongSummaries(t *testing.T) {
	commits := []*gitrepo.Commit{
		{Hash: "A", Summary: "one two three four five six seven eight"},
	}
	branches := []*discovery.BranchInfo{
		{Name: "main", Column: col(0), Range: &discovery.Range{Start: 0, End: 0}},
	}
	result := &assign.Result{
		Branches:          branches,
		DisplayedCommits:  commits,
		DisplayedBranchOf: []int{0},
	}
	g := grid.Build(commits, result.DisplayedBranchOf, branches, false)

	var out strings.Builder
	err := Render(&out, result, g, Options{
		Style:    StyleNormal,
		Template: "%s",
		Wrap:     format.WrapOptions{Mode: format.WrapFixed, Width: 12},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	assert.Greater(t, len(lines), 1)
}

func TestASCIIStyleUsesPlainCharacters(t *testing.T) {
	commits := []*gitrepo.Commit{{Hash: "A", Summary: "x"}}
	branches := []*discovery.BranchInfo{
		{Name: "main", Column: col(0), Range: &discovery.Range{Start: 0, End: 0}},
	}
	result := &assign.Result{Branches: branches, DisplayedCommits: commits, DisplayedBranchOf: []int{0}}
	g := grid.Build(commits, result.DisplayedBranchOf, branches, false)

	var out strings.Builder
	require.NoError(t, Render(&out, result, g, Options{Style: StyleASCII, Template: "%s"}))
	assert.Contains(t, out.String(), "*")
}

func TestColorizeNoopWithoutName(t *testing.T) {
	assert.Equal(t, "x", Colorize("x", ""))
}

func TestParseStyleRecognizesNames(t *testing.T) {
	assert.Equal(t, StyleRound, ParseStyle("round"))
	assert.Equal(t, StyleBold, ParseStyle("bold"))
	assert.Equal(t, StyleDouble, ParseStyle("double"))
	assert.Equal(t, StyleASCII, ParseStyle("ascii"))
	assert.Equal(t, StyleNormal, ParseStyle("thin"))
	assert.Equal(t, StyleNormal, ParseStyle("unknown"))
}
