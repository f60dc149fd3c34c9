// Package pretty renders gliedit output with Lipgloss.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/yaklabco/gliedit/pkg/config"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Gutter
	LineNumber lipgloss.Style
	CursorMark lipgloss.Style
	CursorLine lipgloss.Style

	// Pattern kinds
	Comment lipgloss.Style
	Invalid lipgloss.Style

	// Fingerprint components
	CommitHash lipgloss.Style
	FilePath   lipgloss.Style
	RuleID     lipgloss.Style
	LineRef    lipgloss.Style
	Separator  lipgloss.Style

	// Status line
	Status   lipgloss.Style
	Message  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	ReadOnly lipgloss.Style

	// Preview
	PreviewBorder lipgloss.Style
	PreviewTitle  lipgloss.Style
	PreviewTarget lipgloss.Style

	// Diff
	DiffHeader lipgloss.Style
	DiffHunk   lipgloss.Style
	DiffAdd    lipgloss.Style
	DiffRemove lipgloss.Style

	// Table styles
	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		LineNumber: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		CursorMark: lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		CursorLine: lipgloss.NewStyle().Reverse(true),

		Comment: lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
		Invalid: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),

		CommitHash: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		FilePath:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		RuleID:     lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		LineRef:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Separator:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		Status:   lipgloss.NewStyle().Bold(true),
		Message:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		ReadOnly: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),

		PreviewBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1),
		PreviewTitle:  lipgloss.NewStyle().Bold(true),
		PreviewTarget: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),

		DiffHeader: lipgloss.NewStyle().Bold(true),
		DiffHunk:   lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		DiffAdd:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		DiffRemove: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),

		TableHeader:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		TableSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// newNoColorStyles creates styles with no color formatting. The preview
// keeps a plain border so its extent stays visible.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		LineNumber:     plain,
		CursorMark:     plain,
		CursorLine:     plain,
		Comment:        plain,
		Invalid:        plain,
		CommitHash:     plain,
		FilePath:       plain,
		RuleID:         plain,
		LineRef:        plain,
		Separator:      plain,
		Status:         plain,
		Message:        plain,
		Warning:        plain,
		Error:          plain,
		Success:        plain,
		ReadOnly:       plain,
		PreviewBorder:  lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
		PreviewTitle:   plain,
		PreviewTarget:  plain,
		DiffHeader:     plain,
		DiffHunk:       plain,
		DiffAdd:        plain,
		DiffRemove:     plain,
		TableHeader:    plain,
		TableSeparator: plain,
		Dim:            plain,
		Bold:           plain,
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode config.ColorMode, writer io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
