package pretty

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Table formatting constants.
const (
	tablePadding     = 2
	minColumnWidth   = 4
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
)

// TableFormatter lays out rows in aligned columns. The last column absorbs
// whatever width remains and is truncated to fit.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

// Format renders headers and rows. Cells may already contain styling.
// Rows shorter than headers are padded with empty cells.
func (t *TableFormatter) Format(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	widths := t.columnWidths(headers, rows)

	var builder strings.Builder
	styled := make([]string, len(headers))
	for i, h := range headers {
		styled[i] = t.styles.TableHeader.Render(h)
	}
	builder.WriteString(t.formatRow(styled, widths) + "\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator) + "\n")

	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths) + "\n")
	}

	builder.WriteString(t.formatSeparator(widths, lightSeparator) + "\n")
	return builder.String()
}

func (t *TableFormatter) columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = max(lipgloss.Width(h), minColumnWidth)
	}
	for _, row := range rows {
		for i := range min(len(row), len(widths)) {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	last := len(widths) - 1
	used := 0
	for i := range last {
		used += widths[i] + tablePadding
	}
	widths[last] = max(min(widths[last], t.termWidth-used), minColumnWidth)

	return widths
}

func (t *TableFormatter) formatRow(cells []string, widths []int) string {
	var builder strings.Builder
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}

		if i == len(widths)-1 {
			builder.WriteString(ansi.Truncate(cell, width, ellipsis))
			break
		}

		builder.WriteString(cell)
		builder.WriteString(strings.Repeat(" ", width-lipgloss.Width(cell)+tablePadding))
	}
	return strings.TrimRight(builder.String(), " ")
}

func (t *TableFormatter) formatSeparator(widths []int, char string) string {
	total := 0
	for _, w := range widths {
		total += w
	}
	total += tablePadding * (len(widths) - 1)
	return t.styles.TableSeparator.Render(strings.Repeat(char, total))
}

// truncatePath shortens a path to maxLen cells, keeping its end.
func truncatePath(path string, maxLen int) string {
	if lipgloss.Width(path) <= maxLen {
		return path
	}
	runes := []rune(path)
	if maxLen <= 1 {
		return string(runes[len(runes)-max(maxLen, 0):])
	}
	return ellipsis + string(runes[len(runes)-maxLen+1:])
}
