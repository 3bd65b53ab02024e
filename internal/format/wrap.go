package format

import "strings"

// WrapMode selects how Wrap breaks lines.
type WrapMode int

const (
	// WrapNone leaves lines untouched.
	WrapNone WrapMode = iota
	// WrapAuto wraps to the Width the caller supplies, exactly like
	// WrapFixed; the terminal's actual width is not queried.
	WrapAuto
	// WrapFixed wraps to an explicit column count.
	WrapFixed
)

// WrapOptions controls Wrap's behavior, mirroring `git log --wrap=N,N1,N2`:
// Width is the wrap column, Indent1 prefixes the first line of each
// paragraph, Indent2 prefixes continuation lines.
type WrapOptions struct {
	Mode    WrapMode
	Width   int
	Indent1 string
	Indent2 string
}

// Wrap breaks text into lines no wider than opts.Width (when Mode is
// WrapFixed or WrapAuto), applying Indent1 to each paragraph's first line
// and Indent2 to continuation lines. Existing newlines in text always
// start a new paragraph; Wrap never merges them.
func Wrap(text string, opts WrapOptions) string {
	if opts.Mode == WrapNone || opts.Width <= 0 {
		return text
	}

	paragraphs := strings.Split(text, "\n")
	var out []string
	for _, p := range paragraphs {
		out = append(out, wrapParagraph(p, opts)...)
	}
	return strings.Join(out, "\n")
}

func wrapParagraph(p string, opts WrapOptions) []string {
	if p == "" {
		return []string{""}
	}

	words := strings.Fields(p)
	if len(words) == 0 {
		return []string{p}
	}

	var lines []string
	indent := opts.Indent1
	var cur strings.Builder
	cur.WriteString(indent)
	lineLen := len(indent)

	for _, w := range words {
		sep := " "
		if lineLen == len(indent) {
			sep = ""
		}
		candidate := lineLen + len(sep) + len(w)
		if candidate > opts.Width && lineLen > len(indent) {
			lines = append(lines, cur.String())
			indent = opts.Indent2
			cur.Reset()
			cur.WriteString(indent)
			lineLen = len(indent)
			sep = ""
		}
		cur.WriteString(sep)
		cur.WriteString(w)
		lineLen += len(sep) + len(w)
	}
	lines = append(lines, cur.String())
	return lines
}
