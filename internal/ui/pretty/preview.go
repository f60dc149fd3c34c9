package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/yaklabco/gliedit/pkg/preview"
)

const previewTitleMax = 60

// FormatPreview renders a source excerpt in a bordered box with the
// fingerprinted line marked. Width limits the box including its border;
// zero means unlimited.
func (s *Styles) FormatPreview(content *preview.Content, width int) string {
	if content == nil {
		return ""
	}

	title := s.PreviewTitle.Render(fmt.Sprintf("%s (line %d)",
		truncatePath(content.Path, previewTitleMax), content.TargetLine))
	if content.Language != "" {
		title += " " + s.Dim.Render(content.Language)
	}

	digits := len(strconv.Itoa(content.EndLine()))

	// Border plus horizontal padding.
	const frame = 4
	inner := 0
	if width > 0 {
		inner = max(width-frame, 1)
	}

	lines := make([]string, 0, len(content.Lines)+1)
	lines = append(lines, title)

	for i, text := range content.Lines {
		n := content.StartLine + i

		marker := " "
		number := s.LineNumber.Render(fmt.Sprintf("%*d", digits, n))
		if n == content.TargetLine {
			marker = s.PreviewTarget.Render(cursorMarker)
			number = s.PreviewTarget.Render(fmt.Sprintf("%*d", digits, n))
		}

		row := marker + " " + number + " " + text
		if inner > 0 {
			row = ansi.Truncate(row, inner, ellipsis)
		}
		lines = append(lines, row)
	}

	return s.PreviewBorder.Render(strings.Join(lines, "\n")) + "\n"
}
