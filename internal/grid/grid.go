// Package grid builds the two-dimensional glyph-independent cell grid that
// represents commits, branch lanes, and merge/branch-off connectors.
// Topology is computed once here; glyph selection per style happens
// entirely in the renderers, keeping topology and presentation separate.
package grid

import (
	"github.com/yourusername/ggraph/internal/discovery"
	"github.com/yourusername/ggraph/internal/gitrepo"
)

// MarkerKind distinguishes a regular commit marker from a merge marker.
type MarkerKind int

const (
	MarkerNone MarkerKind = iota
	MarkerCommit
	MarkerMerge
)

// noBranch marks a directional line slot or marker as absent.
const noBranch = -1

// Cell is one grid position. Up/Down/Left/Right each hold the branch index
// whose color owns a line segment extending in that direction from the
// cell's center, or noBranch if there is none. Marker/MarkerBranch describe
// a commit sitting at this cell, if any.
type Cell struct {
	Up, Down, Left, Right int
	Marker                MarkerKind
	MarkerBranch          int
}

func blankCell() Cell {
	return Cell{Up: noBranch, Down: noBranch, Left: noBranch, Right: noBranch, MarkerBranch: noBranch}
}

// HasAnyLine reports whether any of the four directions carry a line,
// i.e. the cell is not entirely blank padding.
func (c Cell) HasAnyLine() bool {
	return c.Up != noBranch || c.Down != noBranch || c.Left != noBranch || c.Right != noBranch
}

// Grid is a write-once, rectangular array of Cells: Rows == number of
// displayed commits, Cols == the layout's total column width.
type Grid struct {
	Rows, Cols int
	cells      []Cell // row-major, len == Rows*Cols
}

func newGrid(rows, cols int) *Grid {
	g := &Grid{Rows: rows, Cols: cols, cells: make([]Cell, rows*cols)}
	for i := range g.cells {
		g.cells[i] = blankCell()
	}
	return g
}

// At returns the cell at (row, col). Panics on out-of-range input, the same
// contract Go slices already give — callers never index outside the grid
// they just built.
func (g *Grid) At(row, col int) Cell { return g.cells[row*g.Cols+col] }

func (g *Grid) set(row, col int, fn func(*Cell)) {
	fn(&g.cells[row*g.Cols+col])
}

// Build constructs the grid from displayed commits, their owning branch
// indices (DisplayedBranchOf from internal/assign), and the branches slice
// with Column already populated by internal/branchlayout.
func Build(commits []*gitrepo.Commit, branchOf []int, branches []*discovery.BranchInfo, sparse bool) *Grid {
	rows := len(commits)
	cols := 0
	for _, b := range branches {
		if b.Column != nil && *b.Column+1 > cols {
			cols = *b.Column + 1
		}
	}
	if cols == 0 && rows > 0 {
		cols = 1
	}

	g := newGrid(rows, cols)
	if rows == 0 {
		return g
	}

	hashToRow := make(map[string]int, rows)
	for i, c := range commits {
		hashToRow[c.Hash] = i
	}

	colOf := func(branchIdx int) int {
		if branchIdx < 0 || branchIdx >= len(branches) || branches[branchIdx].Column == nil {
			return -1
		}
		return *branches[branchIdx].Column
	}

	// Step 4: fill lane verticals for every row a branch's range spans.
	for bi, b := range branches {
		if b.Range == nil || b.Column == nil {
			continue
		}
		col := *b.Column
		for row := b.Range.Start; row <= b.Range.End; row++ {
			g.set(row, col, func(c *Cell) {
				if row > b.Range.Start {
					c.Up = bi
				}
				if row < b.Range.End {
					c.Down = bi
				}
			})
		}
	}

	for row, commit := range commits {
		bi := branchOf[row]
		col := colOf(bi)
		if col < 0 {
			continue
		}

		displayedParents := make([]int, 0, len(commit.Parents))
		for _, ph := range commit.Parents {
			if pr, ok := hashToRow[ph]; ok {
				displayedParents = append(displayedParents, pr)
			}
		}

		marker := MarkerCommit
		if len(displayedParents) >= 2 {
			marker = MarkerMerge
		}
		g.set(row, col, func(c *Cell) {
			c.Marker = marker
			c.MarkerBranch = bi
		})

		for pIdx, prow := range displayedParents {
			pBi := branchOf[prow]
			pCol := colOf(pBi)
			if pCol < 0 {
				continue
			}
			if pIdx == 0 && pCol == col {
				// same branch, primary parent: vertical lane, already filled
				// by the branch-range pass above.
				continue
			}
			g.drawConnector(row, col, prow, pCol, bi, pBi, sparse)
		}

		// Step 3: branch-off connector for the oldest commit in its branch,
		// when its primary parent belongs to a different (already-assigned)
		// branch.
		if bi >= 0 && branches[bi].Range != nil && branches[bi].Range.End == row {
			if len(commit.Parents) > 0 {
				if prow, ok := hashToRow[commit.Parents[0]]; ok {
					pBi := branchOf[prow]
					pCol := colOf(pBi)
					if pCol >= 0 && pCol != col {
						g.drawConnector(row, col, prow, pCol, bi, pBi, sparse)
					}
				}
			}
		}
	}

	return g
}

// drawConnector draws a merge-in or branch-off connector between
// (rowNear, colNear) and (rowFar, colFar), where rowNear < rowFar (nearer
// to the tip). In compact mode the horizontal turn occurs at rowNear and the
// vertical runs down colFar; in sparse mode the vertical runs down colNear
// and the turn occurs at rowFar.
func (g *Grid) drawConnector(rowNear, colNear, rowFar, colFar, branchNear, branchFar int, sparse bool) {
	if colNear == colFar {
		// Same column but different branch ownership over the span: just a
		// vertical line, no horizontal turn needed.
		g.drawVertical(rowNear, rowFar, colNear, branchFar)
		return
	}

	turnRow := rowNear
	turnColor := branchNear
	if sparse {
		turnRow = rowFar
		turnColor = branchFar
	}

	lo, hi := colNear, colFar
	leftward := colFar < colNear
	if leftward {
		lo, hi = colFar, colNear
	}

	// Horizontal run along turnRow between the two columns. Each end cell
	// only gets the half pointing toward the other end, so the run attaches
	// to a marker's side or forms a corner rather than overshooting.
	for col := lo; col <= hi; col++ {
		if col == colNear {
			g.set(turnRow, col, func(c *Cell) {
				if leftward {
					c.Left = turnColor
				} else {
					c.Right = turnColor
				}
			})
			continue
		}
		if col == colFar {
			g.set(turnRow, col, func(c *Cell) {
				if leftward {
					c.Right = turnColor
				} else {
					c.Left = turnColor
				}
			})
			continue
		}
		g.set(turnRow, col, func(c *Cell) {
			c.Left = turnColor
			c.Right = turnColor
		})
	}
	// The turning column also carries the vertical half of the corner:
	// colFar in compact mode, colNear in sparse mode.
	cornerCol := colFar
	if sparse {
		cornerCol = colNear
	}
	g.set(turnRow, cornerCol, func(c *Cell) {
		if turnRow < rowFar {
			c.Down = turnColor
		}
		if turnRow > rowNear {
			c.Up = turnColor
		}
	})

	if sparse {
		g.drawVertical(rowNear, turnRow, colNear, branchNear)
	} else {
		g.drawVertical(turnRow, rowFar, colFar, branchFar)
	}
}

func (g *Grid) drawVertical(rowTop, rowBottom, col, branch int) {
	for row := rowTop; row <= rowBottom; row++ {
		g.set(row, col, func(c *Cell) {
			if row > rowTop {
				c.Up = branch
			}
			if row < rowBottom {
				c.Down = branch
			}
		})
	}
}
