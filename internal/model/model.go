// Package model holds the user-supplied branching-model classification:
// ordered regex lists for persistence and column order, and cyclic color
// palettes for the terminal and SVG renderers.
package model

import (
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/yourusername/ggraph/internal/ggraphErr"
)

// ColorMatch pairs a regex pattern with the color cycle assigned to branches
// whose name matches it. Colors cycle per matching branch so that, e.g.,
// multiple feature/* branches alternate hues.
type ColorMatch struct {
	Pattern string   `toml:"pattern"`
	Colors  []string `toml:"colors"`
}

type colorSection struct {
	Unknown []string     `toml:"unknown"`
	Matches []ColorMatch `toml:"matches"`
}

type patternSection struct {
	Patterns []string `toml:"patterns"`
}

// document is the raw TOML shape, decoded before compilation.
type document struct {
	Persistence            patternSection `toml:"persistence"`
	Order                  patternSection `toml:"order"`
	TerminalColors         colorSection   `toml:"terminal_colors"`
	SVGColors              colorSection   `toml:"svg_colors"`
	IncludeRemote          bool           `toml:"include_remote"`
	MergeMessageInference  bool           `toml:"merge_message_inference"`
}

// compiledList is an ordered list of compiled regexes queried first-match
// wins. Color cycling keeps its counters in compiledColorSection instead.
type compiledList struct {
	patterns []*regexp.Regexp
}

func compileList(kind string, patterns []string) (*compiledList, error) {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, ggraphErr.InvalidModel(kind, i+1, p, err)
		}
		out[i] = re
	}
	return &compiledList{patterns: out}, nil
}

// FirstMatch returns the zero-based index of the first pattern matching
// name, or len(patterns) if none match.
func (c *compiledList) FirstMatch(name string) int {
	for i, re := range c.patterns {
		if re.MatchString(name) {
			return i
		}
	}
	return len(c.patterns)
}

func (c *compiledList) Len() int { return len(c.patterns) }

// compiledColorSection mirrors colorSection with compiled regexes and a
// running per-pattern counter for cyclic color assignment.
type compiledColorSection struct {
	unknown []string
	entries []compiledColorMatch
	counter []int
}

type compiledColorMatch struct {
	re     *regexp.Regexp
	colors []string
}

func compileColorSection(kind string, sec colorSection) (*compiledColorSection, error) {
	out := &compiledColorSection{unknown: sec.Unknown}
	if len(out.unknown) == 0 {
		out.unknown = []string{"white"}
	}
	for i, m := range sec.Matches {
		re, err := regexp.Compile(m.Pattern)
		if err != nil {
			return nil, ggraphErr.InvalidModel(kind, i+1, m.Pattern, err)
		}
		out.entries = append(out.entries, compiledColorMatch{re: re, colors: m.Colors})
	}
	out.counter = make([]int, len(out.entries))
	return out, nil
}

// Assign picks the color cycle for name: the first matching entry's colors,
// advancing that entry's per-pattern counter, or the unknown cycle if no
// entry matches. It returns the full cycle and the index to use this call.
func (c *compiledColorSection) Assign(name string) (cycle []string, index int) {
	for i, m := range c.entries {
		if m.re.MatchString(name) {
			idx := c.counter[i]
			c.counter[i]++
			if len(m.colors) == 0 {
				return c.unknown, idx % len(c.unknown)
			}
			return m.colors, idx % len(m.colors)
		}
	}
	return c.unknown, 0
}

// Model is the compiled, ready-to-query branching model.
type Model struct {
	persistence    *compiledList
	order          *compiledList
	terminalColors *compiledColorSection
	svgColors      *compiledColorSection

	IncludeRemote         bool
	MergeMessageInference bool
}

// PersistenceOf returns a branch's persistence rank (lower = more
// persistent); len(persistence patterns) when nothing matches.
func (m *Model) PersistenceOf(name string) int { return m.persistence.FirstMatch(name) }

// PersistenceLen returns the fallback persistence value (no-match sentinel).
func (m *Model) PersistenceLen() int { return m.persistence.Len() }

// OrderGroupOf returns a branch's order group (lower = leftward).
func (m *Model) OrderGroupOf(name string) int { return m.order.FirstMatch(name) }

// TerminalColorOf returns the terminal color cycle assigned to name and the
// index within it to use for this particular branch.
func (m *Model) TerminalColorOf(name string) ([]string, int) { return m.terminalColors.Assign(name) }

// SVGColorOf returns the SVG color cycle assigned to name and the index
// within it to use for this particular branch.
func (m *Model) SVGColorOf(name string) ([]string, int) { return m.svgColors.Assign(name) }

// Parse compiles a decoded TOML document into a Model, validating every
// regex. The first invalid pattern aborts construction.
func Parse(data []byte) (*Model, error) {
	var doc document
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, ggraphErr.Wrap(ggraphErr.KindInvalidModel, err, "malformed model document")
	}

	persistence, err := compileList("persistence", doc.Persistence.Patterns)
	if err != nil {
		return nil, err
	}
	order, err := compileList("order", doc.Order.Patterns)
	if err != nil {
		return nil, err
	}
	termColors, err := compileColorSection("terminal_colors", doc.TerminalColors)
	if err != nil {
		return nil, err
	}
	svgColors, err := compileColorSection("svg_colors", doc.SVGColors)
	if err != nil {
		return nil, err
	}

	return &Model{
		persistence:           persistence,
		order:                 order,
		terminalColors:        termColors,
		svgColors:             svgColors,
		IncludeRemote:         doc.IncludeRemote,
		MergeMessageInference: doc.MergeMessageInference,
	}, nil
}

// RemoteShortName strips the remote prefix ("origin/") from a remote ref's
// full name, leaving only the short form used for regex matching.
func RemoteShortName(name string) string {
	if idx := strings.Index(name, "/"); idx >= 0 {
		return name[idx+1:]
	}
	return name
}

// TagMatchName returns the name used for regex matching against a tag,
// prefixed with "tags/".
func TagMatchName(name string) string { return "tags/" + name }

// ForkMatchName returns the name used for order/color regex matching
// against an inferred ("fork") branch — fork/
// branches are exposed to order and color sections, never persistence.
func ForkMatchName(name string) string { return "fork/" + name }
