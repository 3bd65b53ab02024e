package term

// Style selects the box-drawing glyph set used for lane lines and corners,
// the terminal counterpart of the `--style` flag.
type Style int

const (
	StyleNormal Style = iota
	StyleRound
	StyleBold
	StyleDouble
	StyleASCII
)

// ParseStyle maps a --style flag value to a Style, defaulting to StyleNormal
// for "normal", "thin", or anything unrecognized.
func ParseStyle(name string) Style {
	switch name {
	case "round":
		return StyleRound
	case "bold":
		return StyleBold
	case "double":
		return StyleDouble
	case "ascii":
		return StyleASCII
	default:
		return StyleNormal
	}
}

// glyphSet holds every box-drawing character a style needs. Index into
// corners by (down<<1 | right) style triads is done explicitly in lineGlyph
// below rather than via a combinatorial table, since not every corner
// combination is reachable from the grid's Up/Down/Left/Right bits.
type glyphSet struct {
	vertical, horizontal                   rune
	cornerDR, cornerDL, cornerUR, cornerUL rune // down-right, down-left, up-right, up-left
	teeRight, teeLeft, teeDown, teeUp       rune // branches off in three directions
	cross                                   rune
	commitMarker, mergeMarker, headMarker   rune
}

var glyphSets = map[Style]glyphSet{
	StyleNormal: {
		vertical: '│', horizontal: '─',
		cornerDR: '┌', cornerDL: '┐', cornerUR: '└', cornerUL: '┘',
		teeRight: '├', teeLeft: '┤', teeDown: '┬', teeUp: '┴',
		cross:        '┼',
		commitMarker: '●', mergeMarker: '◉', headMarker: '◆',
	},
	StyleRound: {
		vertical: '│', horizontal: '─',
		cornerDR: '╭', cornerDL: '╮', cornerUR: '╰', cornerUL: '╯',
		teeRight: '├', teeLeft: '┤', teeDown: '┬', teeUp: '┴',
		cross:        '┼',
		commitMarker: '●', mergeMarker: '◉', headMarker: '◆',
	},
	StyleBold: {
		vertical: '┃', horizontal: '━',
		cornerDR: '┏', cornerDL: '┓', cornerUR: '┗', cornerUL: '┛',
		teeRight: '┣', teeLeft: '┫', teeDown: '┳', teeUp: '┻',
		cross:        '╋',
		commitMarker: '●', mergeMarker: '◉', headMarker: '◆',
	},
	StyleDouble: {
		vertical: '║', horizontal: '═',
		cornerDR: '╔', cornerDL: '╗', cornerUR: '╚', cornerUL: '╝',
		teeRight: '╠', teeLeft: '╣', teeDown: '╦', teeUp: '╩',
		cross:        '╬',
		commitMarker: '●', mergeMarker: '◉', headMarker: '◆',
	},
	StyleASCII: {
		vertical: '|', horizontal: '-',
		cornerDR: '/', cornerDL: '\\', cornerUR: '\\', cornerUL: '/',
		teeRight: '|', teeLeft: '|', teeDown: '+', teeUp: '+',
		cross:        '+',
		commitMarker: '*', mergeMarker: 'o', headMarker: '@',
	},
}

// lineGlyph picks the box-drawing rune for a cell's four line directions.
// Precedence mirrors a real git-log graph: prefer the richest junction the
// present directions describe.
func lineGlyph(g glyphSet, up, down, left, right bool) rune {
	switch {
	case up && down && left && right:
		return g.cross
	case down && left && right:
		return g.teeDown
	case up && left && right:
		return g.teeUp
	case up && down && right:
		return g.teeRight
	case up && down && left:
		return g.teeLeft
	case down && right:
		return g.cornerDR
	case down && left:
		return g.cornerDL
	case up && right:
		return g.cornerUR
	case up && left:
		return g.cornerUL
	case left && right:
		return g.horizontal
	case up || down:
		return g.vertical
	default:
		return ' '
	}
}
