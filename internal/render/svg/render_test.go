package svg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/ggraph/internal/assign"
	"github.com/yourusername/ggraph/internal/discovery"
	"github.com/yourusername/ggraph/internal/gitrepo"
	"github.com/yourusername/ggraph/internal/grid"
)

func col(i int) *int { return &i }

func TestRenderProducesWellFormedSVG(t *testing.T) {
	commits := []*gitrepo.Commit{
		{Hash: "B", ShortHash: "bbbbbbb", Summary: "second"},
		{Hash: "A", ShortHash: "aaaaaaa", Summary: "first"},
	}
	branches := []*discovery.BranchInfo{
		{Name: "main", Column: col(0), Range: &discovery.Range{Start: 0, End: 1},
			VisualSVG: discovery.Visual{ColorCycle: []string{"#2ecc71"}}},
	}
	result := &assign.Result{
		Branches:          branches,
		DisplayedCommits:  commits,
		DisplayedBranchOf: []int{0, 0},
	}
	g := grid.Build(commits, result.DisplayedBranchOf, branches, false)

	var out strings.Builder
	require.NoError(t, Render(&out, result, g, DefaultOptions()))

	doc := out.String()
	assert.True(t, strings.HasPrefix(doc, "<?xml"))
	assert.Contains(t, doc, "<svg")
	assert.Contains(t, doc, "</svg>")
	assert.Contains(t, doc, "second")
	assert.Contains(t, doc, "first")
	assert.Contains(t, doc, "#2ecc71")
}

func TestRenderHandlesEmptyGraph(t *testing.T) {
	result := &assign.Result{}
	g := grid.Build(nil, nil, nil, false)

	var out strings.Builder
	require.NoError(t, Render(&out, result, g, DefaultOptions()))
	assert.Contains(t, out.String(), "<svg")
}
