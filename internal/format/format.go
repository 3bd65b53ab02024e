// Package format expands commit placeholders into display text,
// and wraps long lines for terminal display.
package format

import (
	"strings"

	"github.com/yourusername/ggraph/internal/ggraphErr"
	"github.com/yourusername/ggraph/internal/gitrepo"
)

// Presets resolve to their underlying template strings. First-letter
// abbreviations ("o", "s", "m", "f") are accepted by ResolveSpec per the
// CLI surface.
var Presets = map[string]string{
	"oneline": "%h %s",
	"short":   "%h %s%n",
	"medium":  "%H%n%an <%ae>%n%ad%n%n%+s%n%n%+b",
	"full":    "%H%nAuthor: %an <%ae>%nCommit: %cn <%ce>%n%ad%n%n%+s%n%n%+b",
}

var presetOrder = []string{"oneline", "short", "medium", "full"}

// ResolveSpec maps a preset name (or its first-letter abbreviation) to its
// template, or returns spec unchanged if it isn't a known preset name —
// callers then treat it as a literal template string.
func ResolveSpec(spec string) string {
	if tmpl, ok := Presets[spec]; ok {
		return tmpl
	}
	for _, name := range presetOrder {
		if len(spec) == 1 && spec[0] == name[0] {
			return Presets[name]
		}
	}
	return spec
}

// Format expands a template against a commit. Unknown placeholders or an
// unterminated modifier produce a BadFormatSpec error; callers fall back to
// "%H %s" for a single commit's formatting failure.
func Format(commit *gitrepo.Commit, template string) (string, error) {
	var out strings.Builder
	runes := []rune(template)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '%' {
			out.WriteRune(r)
			continue
		}
		if i+1 >= len(runes) {
			return "", ggraphErr.New(ggraphErr.KindBadFormatSpec, "unterminated modifier at end of format spec")
		}

		mod := byte(0)
		j := i + 1
		switch runes[j] {
		case '+', '-', ' ':
			mod = byte(runes[j])
			j++
			if j >= len(runes) {
				return "", ggraphErr.New(ggraphErr.KindBadFormatSpec, "unterminated modifier")
			}
		}

		token := string(runes[j])
		if runes[j] == 'a' || runes[j] == 'c' {
			if j+1 >= len(runes) {
				return "", ggraphErr.New(ggraphErr.KindBadFormatSpec, "incomplete placeholder %"+token)
			}
			token = string(runes[j]) + string(runes[j+1])
			j++
		}
		expansion, err := expand(commit, token)
		if err != nil {
			return "", err
		}

		switch mod {
		case '+':
			if expansion != "" {
				out.WriteByte('\n')
			}
		case '-':
			if expansion == "" {
				trimTrailingNewlines(&out)
			}
		case ' ':
			if expansion != "" {
				out.WriteByte(' ')
			}
		}
		out.WriteString(expansion)

		i = j
	}
	return out.String(), nil
}

// FormatOrFallback expands template, falling back to "%H %s" on error, per
// errors formatting a single commit fall back to "%H %s".
func FormatOrFallback(commit *gitrepo.Commit, template string) string {
	s, err := Format(commit, template)
	if err != nil {
		s, _ = Format(commit, "%H %s")
	}
	return s
}

func trimTrailingNewlines(b *strings.Builder) {
	s := b.String()
	trimmed := strings.TrimRight(s, "\n")
	b.Reset()
	b.WriteString(trimmed)
}

const shortDateLayout = "2006-01-02"

func expand(c *gitrepo.Commit, token string) (string, error) {
	switch token {
	case "n":
		return "\n", nil
	case "H":
		return c.Hash, nil
	case "h":
		return c.ShortHash, nil
	case "P":
		return strings.Join(c.Parents, " "), nil
	case "p":
		return shortParents(c.Parents), nil
	case "d":
		return refDecoration(c.Refs), nil
	case "s":
		return c.Summary, nil
	case "b":
		return strings.TrimSpace(bodyWithoutSummary(c)), nil
	case "B":
		return c.Body, nil
	case "an":
		return c.Author.Name, nil
	case "ae":
		return c.Author.Email, nil
	case "ad":
		return formatSignatureDate(c.Author), nil
	case "as":
		return formatShortDate(c.Author), nil
	case "cn":
		return c.Committer.Name, nil
	case "ce":
		return c.Committer.Email, nil
	case "cd":
		return formatSignatureDate(c.Committer), nil
	case "cs":
		return formatShortDate(c.Committer), nil
	}
	return "", ggraphErr.New(ggraphErr.KindBadFormatSpec, "unknown placeholder %"+token)
}

func formatSignatureDate(sig gitrepo.Signature) string {
	if sig.When.IsZero() {
		return ""
	}
	return sig.When.Format("2006-01-02T15:04:05") + sig.Offset
}

func formatShortDate(sig gitrepo.Signature) string {
	if sig.When.IsZero() {
		return ""
	}
	return sig.When.Format(shortDateLayout)
}

func shortParents(parents []string) string {
	shorts := make([]string, len(parents))
	for i, p := range parents {
		if len(p) >= 7 {
			shorts[i] = p[:7]
		} else {
			shorts[i] = p
		}
	}
	return strings.Join(shorts, " ")
}

func bodyWithoutSummary(c *gitrepo.Commit) string {
	return strings.TrimPrefix(strings.TrimPrefix(c.Body, c.Summary), "\n")
}

func refDecoration(refs []gitrepo.Ref) string {
	if len(refs) == 0 {
		return ""
	}
	names := make([]string, len(refs))
	for i, r := range refs {
		names[i] = r.Name
	}
	return "(" + strings.Join(names, ", ") + ")"
}
