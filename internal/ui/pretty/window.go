package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/yaklabco/gliedit/pkg/buffer"
	"github.com/yaklabco/gliedit/pkg/pattern"
)

const (
	cursorMarker = ">"
	ellipsis     = "…"
)

// WindowView is everything needed to paint one window of the buffer.
type WindowView struct {
	Window buffer.Window

	// Cursor is the highlighted line number, or 0 for none.
	Cursor int

	// Total sizes the line number gutter.
	Total int

	// Width truncates each rendered line. Zero disables truncation.
	Width int
}

// FormatWindow renders the window with a line number gutter and a cursor
// marker, one line per buffer line.
func (s *Styles) FormatWindow(view WindowView) string {
	if view.Window.Empty() {
		return s.Dim.Render("(empty file)") + "\n"
	}

	digits := len(strconv.Itoa(max(view.Total, view.Window.End)))

	var builder strings.Builder
	for _, line := range view.Window.Lines {
		isCursor := line.Number == view.Cursor

		marker := " "
		if isCursor {
			marker = s.CursorMark.Render(cursorMarker)
		}
		gutter := marker + " " + s.LineNumber.Render(fmt.Sprintf("%*d", digits, line.Number)) + " "

		body := s.FormatLine(line)
		if view.Width > 0 {
			avail := max(view.Width-lipgloss.Width(gutter), 1)
			body = ansi.Truncate(body, avail, ellipsis)
		}
		if isCursor {
			body = s.CursorLine.Render(body)
		}

		builder.WriteString(gutter + body + "\n")
	}

	return builder.String()
}

// FormatLine renders the content of one line according to its pattern.
// Fingerprints are colored by component when the content is in canonical
// form; anything else is shown verbatim.
func (s *Styles) FormatLine(line buffer.Line) string {
	switch p := line.Pattern.(type) {
	case pattern.Comment:
		return s.Comment.Render(line.Content)
	case pattern.BlankLine:
		return line.Content
	case pattern.Fingerprint:
		if strings.TrimSpace(line.Content) != p.String() {
			return line.Content
		}
		return s.FormatFingerprint(p)
	case pattern.Invalid:
		return s.Invalid.Render(line.Content)
	default:
		return line.Content
	}
}

// FormatFingerprint renders a fingerprint with each component styled.
func (s *Styles) FormatFingerprint(fp pattern.Fingerprint) string {
	sep := s.Separator.Render(":")

	var builder strings.Builder
	if fp.HasCommit() {
		builder.WriteString(s.CommitHash.Render(fp.CommitHash) + sep)
	}
	builder.WriteString(s.FilePath.Render(fp.FilePath) + sep)
	builder.WriteString(s.RuleID.Render(fp.RuleID) + sep)
	builder.WriteString(s.LineRef.Render(strconv.FormatUint(uint64(fp.LineNumber), 10)))
	return builder.String()
}

// FormatKind returns a short label for a pattern kind.
func (s *Styles) FormatKind(kind pattern.Kind) string {
	switch kind {
	case pattern.KindInvalid:
		return s.Invalid.Render(kind.String())
	case pattern.KindComment:
		return s.Comment.Render(kind.String())
	case pattern.KindFingerprint:
		return s.FilePath.Render(kind.String())
	case pattern.KindBlank:
		return s.Dim.Render(kind.String())
	default:
		return kind.String()
	}
}
