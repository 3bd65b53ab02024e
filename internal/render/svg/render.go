// Package svg renders a built grid to a static SVG document, using
// github.com/ajstarks/svgo for primitive emission.
package svg

import (
	"fmt"
	"io"

	svgo "github.com/ajstarks/svgo"

	"github.com/yourusername/ggraph/internal/assign"
	"github.com/yourusername/ggraph/internal/discovery"
	"github.com/yourusername/ggraph/internal/format"
	"github.com/yourusername/ggraph/internal/grid"
)

// Options configures SVG layout.
type Options struct {
	RowHeight    int
	ColWidth     int
	MarginLeft   int
	MarginTop    int
	CommitRadius int
	FontSize     int
	FontFamily   string
	Template     string
	TextGap      int // horizontal gap between the last lane column and commit text
}

// DefaultOptions gives enough spacing for a comfortable, readable image at
// typical terminal-width column counts.
func DefaultOptions() Options {
	return Options{
		RowHeight:    24,
		ColWidth:     20,
		MarginLeft:   16,
		MarginTop:    16,
		CommitRadius: 5,
		FontSize:     13,
		FontFamily:   "monospace",
		Template:     "%h %s",
		TextGap:      14,
	}
}

// Render writes a complete SVG document for the graph to w.
func Render(w io.Writer, result *assign.Result, g *grid.Grid, opts Options) error {
	width := opts.MarginLeft + g.Cols*opts.ColWidth + opts.TextGap + 640
	height := opts.MarginTop*2 + g.Rows*opts.RowHeight

	canvas := svgo.New(w)
	canvas.Start(width, height)
	defer canvas.End()

	canvas.Rect(0, 0, width, height, "fill:#ffffff")

	for row := range result.DisplayedCommits {
		y := opts.MarginTop + row*opts.RowHeight + opts.RowHeight/2
		drawRowLines(canvas, g, result.Branches, row, y, opts)
	}

	for row, commit := range result.DisplayedCommits {
		y := opts.MarginTop + row*opts.RowHeight + opts.RowHeight/2
		branchIdx := result.DisplayedBranchOf[row]
		drawMarker(canvas, g, row, y, branchIdx, result.Branches, opts)

		text := format.FormatOrFallback(commit, opts.Template)
		text = collapseToOneLine(text)
		textX := opts.MarginLeft + g.Cols*opts.ColWidth + opts.TextGap
		canvas.Text(textX, y+opts.FontSize/3, text,
			fmt.Sprintf("font-family:%s;font-size:%dpx;fill:#1e1e2e", opts.FontFamily, opts.FontSize))
	}

	return nil
}

func drawRowLines(canvas *svgo.SVG, g *grid.Grid, branches []*discovery.BranchInfo, row, y int, opts Options) {
	for col := 0; col < g.Cols; col++ {
		cell := g.At(row, col)
		x := opts.MarginLeft + col*opts.ColWidth + opts.ColWidth/2

		if cell.Down != -1 {
			canvas.Line(x, y, x, y+opts.RowHeight, lineStyle(branches, cell.Down))
		}
		if cell.Right != -1 {
			canvas.Line(x, y, x+opts.ColWidth, y, lineStyle(branches, cell.Right))
		}
	}
}

func drawMarker(canvas *svgo.SVG, g *grid.Grid, row, y, branchIdx int, branches []*discovery.BranchInfo, opts Options) {
	col := 0
	for c := 0; c < g.Cols; c++ {
		if g.At(row, c).Marker != grid.MarkerNone {
			col = c
			break
		}
	}
	x := opts.MarginLeft + col*opts.ColWidth + opts.ColWidth/2
	cell := g.At(row, col)

	fill := markerColor(branches, branchIdx)
	if cell.Marker == grid.MarkerMerge {
		canvas.Circle(x, y, opts.CommitRadius+1, fmt.Sprintf("fill:%s;stroke:#1e1e2e;stroke-width:1.5", fill))
	} else {
		canvas.Circle(x, y, opts.CommitRadius, fmt.Sprintf("fill:%s", fill))
	}
}

func lineStyle(branches []*discovery.BranchInfo, branchIdx int) string {
	return fmt.Sprintf("stroke:%s;stroke-width:2;fill:none", markerColor(branches, branchIdx))
}

func markerColor(branches []*discovery.BranchInfo, idx int) string {
	if idx < 0 || idx >= len(branches) {
		return "#999999"
	}
	if c := branches[idx].VisualSVG.Color(); c != "" {
		return c
	}
	return "#999999"
}

func collapseToOneLine(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '\n' {
			out = append(out, ' ')
			continue
		}
		out = append(out, r)
	}
	return string(out)
}
