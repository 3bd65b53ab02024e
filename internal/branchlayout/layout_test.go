package branchlayout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/ggraph/internal/discovery"
)

func branch(name string, group, target, start, end int) *discovery.BranchInfo {
	return &discovery.BranchInfo{
		Name:             name,
		Visual:           discovery.Visual{OrderGroup: group},
		TargetOrderGroup: target,
		Range:            &discovery.Range{Start: start, End: end},
	}
}

func TestNonOverlappingSameGroupShareColumnOverlappingDoNot(t *testing.T) {
	a := branch("a", 0, 0, 0, 2)
	b := branch("b", 0, 0, 3, 5) // disjoint range, same group -> can reuse column 0
	c := branch("c", 0, 0, 1, 4) // overlaps both -> needs its own column

	Pack([]*discovery.BranchInfo{a, b, c}, DefaultOptions())

	require.NotNil(t, a.Column)
	require.NotNil(t, b.Column)
	require.NotNil(t, c.Column)
	assert.Equal(t, *a.Column, *b.Column, "disjoint ranges in the same group should share a column")
	assert.NotEqual(t, *a.Column, *c.Column)
}

func TestGroupsPackIntoSeparateColumnBands(t *testing.T) {
	main := branch("main", 0, 0, 0, 10)
	feature := branch("feature/x", 1, 1, 2, 4)

	total := Pack([]*discovery.BranchInfo{main, feature}, DefaultOptions())

	assert.Equal(t, 0, *main.Column)
	assert.Equal(t, 1, *feature.Column)
	assert.Equal(t, 2, total)
}

func TestShortestFirstReusesInnerColumns(t *testing.T) {
	long := branch("long", 0, 0, 0, 20)
	short1 := branch("short1", 0, 0, 1, 2)
	short2 := branch("short2", 0, 0, 3, 4)

	Pack([]*discovery.BranchInfo{long, short1, short2}, DefaultOptions())

	// Short branches are packed first and should both land in column 0
	// (or share with one another), while the long branch that spans both
	// of their lifetimes needs a distinct column.
	require.NotNil(t, short1.Column)
	require.NotNil(t, short2.Column)
	assert.Equal(t, *short1.Column, *short2.Column)
	assert.NotEqual(t, *long.Column, *short1.Column)
}

func TestBranchWithoutRangeIsSkipped(t *testing.T) {
	a := branch("a", 0, 0, 0, 2)
	noRange := &discovery.BranchInfo{Name: "claimed"}

	Pack([]*discovery.BranchInfo{a, noRange}, DefaultOptions())

	assert.Nil(t, noRange.Column)
	require.NotNil(t, a.Column)
}

func TestDeterministicAcrossReruns(t *testing.T) {
	build := func() []*discovery.BranchInfo {
		return []*discovery.BranchInfo{
			branch("main", 0, 0, 0, 10),
			branch("feature/a", 1, 1, 1, 3),
			branch("feature/b", 1, 1, 4, 6),
		}
	}

	first := build()
	Pack(first, DefaultOptions())
	second := build()
	Pack(second, DefaultOptions())

	for i := range first {
		require.NotNil(t, first[i].Column)
		require.NotNil(t, second[i].Column)
		assert.Equal(t, *first[i].Column, *second[i].Column)
	}
}
