package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/ggraph/internal/gitrepo"
)

func sampleCommit() *gitrepo.Commit {
	when := time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC)
	return &gitrepo.Commit{
		Hash:      "abcdef1234567890abcdef1234567890abcdef12",
		ShortHash: "abcdef1",
		Author:    gitrepo.Signature{Name: "Ada Lovelace", Email: "ada@example.com", When: when, Offset: "+0000"},
		Committer: gitrepo.Signature{Name: "Ada Lovelace", Email: "ada@example.com", When: when, Offset: "+0000"},
		Summary:   "Add analytical engine",
		Body:      "Add analytical engine\n\nFull steam ahead.",
		Parents:   []string{"111111122222223333333444444455555556666"},
		Refs:      []gitrepo.Ref{{Name: "main", Kind: gitrepo.RefBranchLocal}},
	}
}

func TestResolveSpecPresetsAndAbbreviations(t *testing.T) {
	assert.Equal(t, Presets["oneline"], ResolveSpec("oneline"))
	assert.Equal(t, Presets["oneline"], ResolveSpec("o"))
	assert.Equal(t, Presets["full"], ResolveSpec("f"))
	assert.Equal(t, "%H custom", ResolveSpec("%H custom"))
}

func TestFormatBasicPlaceholders(t *testing.T) {
	c := sampleCommit()
	out, err := Format(c, "%h %s")
	require.NoError(t, err)
	assert.Equal(t, "abcdef1 Add analytical engine", out)
}

func TestFormatAuthorCommitterFields(t *testing.T) {
	c := sampleCommit()
	out, err := Format(c, "%an <%ae> / %cn <%ce>")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace <ada@example.com> / Ada Lovelace <ada@example.com>", out)
}

func TestFormatShortDate(t *testing.T) {
	c := sampleCommit()
	out, err := Format(c, "%as")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-15", out)
}

func TestFormatPlusModifierSkipsEmptyExpansion(t *testing.T) {
	c := sampleCommit()
	c.Body = c.Summary // no body beyond summary
	out, err := Format(c, "%s%n%+b")
	require.NoError(t, err)
	assert.Equal(t, "Add analytical engine\n", out)
}

func TestFormatMinusModifierTrimsTrailingNewlines(t *testing.T) {
	c := sampleCommit()
	c.Body = c.Summary
	out, err := Format(c, "%s%n%n%-b")
	require.NoError(t, err)
	assert.Equal(t, "Add analytical engine", out)
}

func TestFormatUnknownPlaceholderErrors(t *testing.T) {
	c := sampleCommit()
	_, err := Format(c, "%Q")
	assert.Error(t, err)
}

func TestFormatOrFallbackRecoversFromBadSpec(t *testing.T) {
	c := sampleCommit()
	out := FormatOrFallback(c, "%Q")
	assert.Equal(t, c.Hash+" "+c.Summary, out)
}

func TestFormatRefDecoration(t *testing.T) {
	c := sampleCommit()
	out, err := Format(c, "%d")
	require.NoError(t, err)
	assert.Equal(t, "(main)", out)
}

func TestWrapBreaksLongLines(t *testing.T) {
	text := "one two three four five six seven eight nine ten"
	out := Wrap(text, WrapOptions{Mode: WrapFixed, Width: 12})
	for _, line := range splitLines(out) {
		assert.LessOrEqual(t, len(line), 20) // single long word could still exceed 12
	}
	assert.Contains(t, out, "\n")
}

func TestWrapNoneLeavesTextUnchanged(t *testing.T) {
	text := "a very long line that would otherwise wrap"
	assert.Equal(t, text, Wrap(text, WrapOptions{Mode: WrapNone, Width: 5}))
}

func TestWrapAppliesIndents(t *testing.T) {
	out := Wrap("alpha beta gamma delta", WrapOptions{Mode: WrapFixed, Width: 10, Indent1: ">> ", Indent2: ".. "})
	lines := splitLines(out)
	require.NotEmpty(t, lines)
	assert.Equal(t, ">> ", lines[0][:3])
	if len(lines) > 1 {
		assert.Equal(t, "..", lines[1][:2])
	}
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i, r := range s {
		if r == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	lines = append(lines, s[start:])
	return lines
}
