package pretty

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/gliedit/pkg/pattern"
)

// Status describes the line under the window.
type Status struct {
	Path     string
	Cursor   int
	Start    int
	End      int
	Total    int
	ReadOnly bool

	// Message is the latest informational message, if any.
	Message string

	// Warning is shown in place of Message when set.
	Warning string
}

// FormatStatus renders a one-line status bar.
// Example: ".gitleaksignore  line 5/100  [1-10]  read-only  Saved".
func (s *Styles) FormatStatus(st Status) string {
	parts := []string{s.Status.Render(filepath.Base(st.Path))}

	if st.Total == 0 {
		parts = append(parts, s.Dim.Render("empty"))
	} else {
		parts = append(parts,
			fmt.Sprintf("line %d/%d", st.Cursor, st.Total),
			s.Dim.Render(fmt.Sprintf("[%d-%d]", st.Start, st.End)),
		)
	}

	if st.ReadOnly {
		parts = append(parts, s.ReadOnly.Render("read-only"))
	}

	switch {
	case st.Warning != "":
		parts = append(parts, s.Warning.Render(st.Warning))
	case st.Message != "":
		parts = append(parts, s.Message.Render(st.Message))
	}

	return strings.Join(parts, "  ") + "\n"
}

// FormatStats renders per-kind line counts.
// Example: "12 lines: 9 fingerprints, 2 comments, 1 blank".
func (s *Styles) FormatStats(stats map[pattern.Kind]int) string {
	total := 0
	for _, n := range stats {
		total += n
	}

	kinds := []struct {
		kind     pattern.Kind
		singular string
		plural   string
	}{
		{pattern.KindFingerprint, "fingerprint", "fingerprints"},
		{pattern.KindComment, "comment", "comments"},
		{pattern.KindBlank, "blank", "blank"},
		{pattern.KindInvalid, "invalid", "invalid"},
	}

	var parts []string
	for _, k := range kinds {
		n := stats[k.kind]
		if n == 0 {
			continue
		}
		label := fmt.Sprintf("%d %s", n, plural(n, k.singular, k.plural))
		if k.kind == pattern.KindInvalid {
			label = s.Error.Render(label)
		}
		parts = append(parts, label)
	}

	summary := fmt.Sprintf("%d %s", total, plural(total, "line", "lines"))
	if len(parts) == 0 {
		return summary + "\n"
	}
	return summary + ": " + strings.Join(parts, ", ") + "\n"
}

// FormatCheckSummary renders the result line of a check run.
func (s *Styles) FormatCheckSummary(invalid, total int) string {
	if invalid == 0 {
		return s.Success.Render("All lines valid") +
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)", total, plural(total, "line", "lines"))) + "\n"
	}
	return s.Error.Render(fmt.Sprintf("%d invalid %s", invalid, plural(invalid, "line", "lines"))) +
		s.Dim.Render(fmt.Sprintf(" of %d", total)) + "\n"
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}
