// Package term renders a built grid to monospaced, optionally colored
// terminal text. Glyph selection is entirely
// local to this package; internal/grid only ever carries direction/marker
// topology.
package term

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/yourusername/ggraph/internal/assign"
	"github.com/yourusername/ggraph/internal/discovery"
	"github.com/yourusername/ggraph/internal/format"
	"github.com/yourusername/ggraph/internal/grid"
)

// laneSpacing is the number of blank columns rendered after each lane glyph.
const laneSpacing = 1

// Options configures terminal rendering.
type Options struct {
	Style    Style
	Color    bool // explicit on/off, as decided by the caller (see ResolveColor)
	NoColor  bool // --no-color forces Color false regardless of TTY
	Template string
	Wrap     format.WrapOptions
}

// ResolveColor decides whether to emit ANSI color codes: explicit
// --no-color wins, otherwise color is enabled only when stdout is a TTY.
func ResolveColor(noColor bool, out io.Writer) bool {
	if noColor {
		return false
	}
	if f, ok := out.(interface{ Fd() uintptr }); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}

// Render writes the full graph, one line per displayed commit plus any
// wrapped continuation lines, to w.
func Render(w io.Writer, result *assign.Result, g *grid.Grid, opts Options) error {
	gs := glyphSets[opts.Style]
	colWidth := 1 + laneSpacing
	color := opts.Color && !opts.NoColor

	for row, commit := range result.DisplayedCommits {
		graphLine := renderRow(g, gs, result.Branches, row, colWidth, color)

		text := format.FormatOrFallback(commit, opts.Template)
		text = format.Wrap(text, opts.Wrap)
		lines := strings.Split(text, "\n")

		if len(lines) == 0 {
			lines = []string{""}
		}
		if _, err := fmt.Fprintf(w, "%s %s\n", graphLine, lines[0]); err != nil {
			return err
		}

		if len(lines) > 1 {
			contLine := renderContinuation(g, gs, result.Branches, row, colWidth, color)
			for _, extra := range lines[1:] {
				if _, err := fmt.Fprintf(w, "%s %s\n", contLine, extra); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func renderRow(g *grid.Grid, gs glyphSet, branches []*discovery.BranchInfo, row, colWidth int, color bool) string {
	var b strings.Builder
	for col := 0; col < g.Cols; col++ {
		cell := g.At(row, col)
		var r rune
		branch := -1
		switch cell.Marker {
		case grid.MarkerCommit:
			r = gs.commitMarker
			branch = cell.MarkerBranch
		case grid.MarkerMerge:
			r = gs.mergeMarker
			branch = cell.MarkerBranch
		default:
			r = lineGlyph(gs, cell.Up != -1, cell.Down != -1, cell.Left != -1, cell.Right != -1)
			branch = dominantBranch(cell)
		}
		b.WriteString(styledGlyph(string(r), branchColor(branches, branch), color))
		if col < g.Cols-1 {
			b.WriteString(horizontalFill(gs, cell, colWidth-1, branches, branch, color))
		}
	}
	return b.String()
}

// renderContinuation draws the vertical pass-through for wrapped text lines:
// any column with an active Down segment at row keeps its lane visible.
func renderContinuation(g *grid.Grid, gs glyphSet, branches []*discovery.BranchInfo, row, colWidth int, color bool) string {
	var b strings.Builder
	for col := 0; col < g.Cols; col++ {
		cell := g.At(row, col)
		if cell.Down != -1 {
			b.WriteString(styledGlyph(string(gs.vertical), branchColor(branches, cell.Down), color))
		} else {
			b.WriteRune(' ')
		}
		if col < g.Cols-1 {
			b.WriteString(strings.Repeat(" ", colWidth-1))
		}
	}
	return b.String()
}

func dominantBranch(cell grid.Cell) int {
	for _, v := range []int{cell.Down, cell.Up, cell.Right, cell.Left} {
		if v != -1 {
			return v
		}
	}
	return -1
}

func horizontalFill(gs glyphSet, cell grid.Cell, width int, branches []*discovery.BranchInfo, branch int, color bool) string {
	if cell.Right == -1 {
		return strings.Repeat(" ", width)
	}
	run := strings.Repeat(string(gs.horizontal), width)
	return styledGlyph(run, branchColor(branches, branch), color)
}

func styledGlyph(s, colorName string, color bool) string {
	if !color || colorName == "" {
		return s
	}
	return Colorize(s, colorName)
}

func branchColor(branches []*discovery.BranchInfo, idx int) string {
	if idx < 0 || idx >= len(branches) {
		return ""
	}
	return branches[idx].Visual.Color()
}

// Colorize renders s in the given named color using lipgloss, or returns s
// unchanged when name is empty.
func Colorize(s, name string) string {
	if name == "" {
		return s
	}
	style := lipgloss.NewStyle().Foreground(resolveColor(name))
	return style.Render(s)
}
