package main

import (
	"strconv"
	"strings"

	"github.com/yourusername/ggraph/internal/format"
)

// parseWrapSpec parses the --wrap flag's space-separated "auto", "none", or
// "WIDTH" forms, each optionally followed by " IND1" and " IND2" indent
// widths (e.g. "auto 0 8" or "100 2 4"). "auto" wraps at a fixed 80
// columns; the terminal's own width is not detected. An unparseable numeric form falls
// back to WrapNone rather than failing the whole run, since a malformed
// wrap spec is purely cosmetic.
func parseWrapSpec(spec string) format.WrapOptions {
	fields := strings.Fields(spec)
	if len(fields) == 0 || fields[0] == "none" {
		return format.WrapOptions{Mode: format.WrapNone}
	}

	if fields[0] == "auto" {
		opts := format.WrapOptions{Mode: format.WrapAuto, Width: 80}
		applyWrapIndents(fields[1:], &opts)
		return opts
	}

	width, err := strconv.Atoi(fields[0])
	if err != nil || width <= 0 {
		return format.WrapOptions{Mode: format.WrapNone}
	}
	opts := format.WrapOptions{Mode: format.WrapFixed, Width: width}
	applyWrapIndents(fields[1:], &opts)
	return opts
}

func applyWrapIndents(rest []string, opts *format.WrapOptions) {
	if len(rest) > 0 {
		if n, err := strconv.Atoi(rest[0]); err == nil && n >= 0 {
			opts.Indent1 = strings.Repeat(" ", n)
		}
	}
	if len(rest) > 1 {
		if n, err := strconv.Atoi(rest[1]); err == nil && n >= 0 {
			opts.Indent2 = strings.Repeat(" ", n)
		}
	}
}
