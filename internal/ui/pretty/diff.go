package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gliedit/pkg/diff"
)

// FormatDiff renders d as a colored unified diff followed by a one-line
// summary. A nil or empty diff renders as "No changes".
func (s *Styles) FormatDiff(d *diff.Diff) string {
	if !d.HasChanges() {
		return s.Dim.Render("No changes") + "\n"
	}

	path := strings.TrimPrefix(d.Path, "/")

	var b strings.Builder
	b.WriteString(s.DiffHeader.Render("--- a/"+path) + "\n")
	b.WriteString(s.DiffHeader.Render("+++ b/"+path) + "\n")

	for _, hunk := range d.Hunks {
		b.WriteString(s.DiffHunk.Render(hunk.Header()) + "\n")
		for _, line := range hunk.Lines {
			text := line.Op.Prefix() + line.Text
			switch line.Op {
			case diff.OpAdd:
				text = s.DiffAdd.Render(text)
			case diff.OpRemove:
				text = s.DiffRemove.Render(text)
			}
			b.WriteString(text + "\n")
		}
	}

	fmt.Fprintf(&b, "%s %s\n",
		s.DiffAdd.Render(fmt.Sprintf("+%d", d.Added)),
		s.DiffRemove.Render(fmt.Sprintf("-%d", d.Removed)))
	return b.String()
}
