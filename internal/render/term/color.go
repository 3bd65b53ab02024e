package term

import "github.com/charmbracelet/lipgloss"

// namedColors maps the model's terminal color names to ANSI color codes
// lipgloss understands. Names follow the basic/bright 16-color convention
// used throughout the built-in models.
var namedColors = map[string]lipgloss.Color{
	"black":   lipgloss.Color("0"),
	"red":     lipgloss.Color("1"),
	"green":   lipgloss.Color("2"),
	"yellow":  lipgloss.Color("3"),
	"blue":    lipgloss.Color("4"),
	"magenta": lipgloss.Color("5"),
	"cyan":    lipgloss.Color("6"),
	"white":   lipgloss.Color("7"),

	"bright_black":   lipgloss.Color("8"),
	"bright_red":     lipgloss.Color("9"),
	"bright_green":   lipgloss.Color("10"),
	"bright_yellow":  lipgloss.Color("11"),
	"bright_blue":    lipgloss.Color("12"),
	"bright_magenta": lipgloss.Color("13"),
	"bright_cyan":    lipgloss.Color("14"),
	"bright_white":   lipgloss.Color("15"),
}

// resolveColor maps a model color name to a lipgloss.Color, falling back to
// treating it as a literal lipgloss color spec (hex or ANSI code) for model
// authors who write "#rrggbb" directly into terminal_colors.
func resolveColor(name string) lipgloss.Color {
	if c, ok := namedColors[name]; ok {
		return c
	}
	return lipgloss.Color(name)
}
