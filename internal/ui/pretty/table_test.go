package pretty_test

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gliedit/internal/ui/pretty"
)

func TestTableFormatter_Format(t *testing.T) {
	t.Parallel()

	table := pretty.NewTableFormatter(pretty.NewStyles(false), 80)
	out := table.Format(
		[]string{"LINE", "KIND", "CONTENT"},
		[][]string{
			{"3", "invalid", "not a record"},
			{"12", "invalid", "a.go:rule:x"},
		},
	)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "LINE  KIND     CONTENT", lines[0])
	assert.Equal(t, strings.Repeat("=", lipgloss.Width(lines[1])), lines[1])
	assert.Equal(t, "3     invalid  not a record", lines[2])
	assert.Equal(t, "12    invalid  a.go:rule:x", lines[3])
	assert.True(t, strings.HasPrefix(lines[4], "---"))
}

func TestTableFormatter_TruncatesLastColumn(t *testing.T) {
	t.Parallel()

	table := pretty.NewTableFormatter(pretty.NewStyles(false), 30)
	out := table.Format(
		[]string{"#", "PATH"},
		[][]string{{"1", strings.Repeat("p", 100)}},
	)

	for line := range strings.SplitSeq(strings.TrimSuffix(out, "\n"), "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 30, "line %q too wide", line)
	}
	assert.Contains(t, out, "…")
}

func TestTableFormatter_ShortRowsAndNoHeaders(t *testing.T) {
	t.Parallel()

	table := pretty.NewTableFormatter(pretty.NewStyles(false), 0)
	assert.Empty(t, table.Format(nil, [][]string{{"x"}}))

	out := table.Format([]string{"A", "B"}, [][]string{{"only"}})
	assert.Contains(t, out, "only\n")
}
