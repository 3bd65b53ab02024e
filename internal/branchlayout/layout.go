// Package branchlayout packs branches into columns using grouped
// shortest-first (or longest-first) interval scheduling keyed by order
// group.
package branchlayout

import (
	"sort"

	"github.com/yourusername/ggraph/internal/discovery"
)

// Options controls the two configurable tie-break axes.
type Options struct {
	// ShortestFirst packs short-lived branches first to maximize reuse of
	// inner columns. When false, longest-lived branches are packed first.
	ShortestFirst bool
	// Forward breaks ties by ascending Range.Start. When false, descending.
	Forward bool
}

// DefaultOptions matches the documented default ordering.
func DefaultOptions() Options {
	return Options{ShortestFirst: true, Forward: true}
}

type interval struct{ start, end int }

func overlaps(a, b interval) bool {
	return a.start <= b.end && b.start <= a.end
}

// Pack assigns a Column to every branch with a non-nil Range, mutating the
// branches in place. It returns the total column width of the layout.
func Pack(branches []*discovery.BranchInfo, opts Options) int {
	var eligible []*discovery.BranchInfo
	for _, b := range branches {
		if b.Range != nil {
			eligible = append(eligible, b)
		}
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		a, b := eligible[i], eligible[j]
		am := maxInt(a.Visual.OrderGroup, a.TargetOrderGroup)
		bm := maxInt(b.Visual.OrderGroup, b.TargetOrderGroup)
		if am != bm {
			return am < bm
		}
		al, bl := a.Range.End-a.Range.Start, b.Range.End-b.Range.Start
		if al != bl {
			if opts.ShortestFirst {
				return al < bl
			}
			return al > bl
		}
		if a.Range.Start != b.Range.Start {
			if opts.Forward {
				return a.Range.Start < b.Range.Start
			}
			return a.Range.Start > b.Range.Start
		}
		return a.Name < b.Name // deterministic tie-break when group, length and start all match
	})

	occupied := map[int][][]interval{} // occupied[group][column] = intervals
	localColumn := map[*discovery.BranchInfo]int{}

	for _, b := range eligible {
		g := b.Visual.OrderGroup
		iv := interval{start: b.Range.Start, end: b.Range.End}

		cols := occupied[g]
		placed := -1
		for c, ivs := range cols {
			free := true
			for _, existing := range ivs {
				if overlaps(existing, iv) {
					free = false
					break
				}
			}
			if free {
				placed = c
				break
			}
		}
		if placed == -1 {
			placed = len(cols)
			cols = append(cols, nil)
		}
		cols[placed] = append(cols[placed], iv)
		occupied[g] = cols
		localColumn[b] = placed
	}

	maxGroup := 0
	for g := range occupied {
		if g > maxGroup {
			maxGroup = g
		}
	}
	width := make([]int, maxGroup+1)
	for g, cols := range occupied {
		width[g] = len(cols)
	}

	offset := make([]int, maxGroup+1)
	total := 0
	for g := 0; g <= maxGroup; g++ {
		offset[g] = total
		total += width[g]
	}

	for _, b := range eligible {
		col := offset[b.Visual.OrderGroup] + localColumn[b]
		c := col
		b.Column = &c
	}

	return total
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
