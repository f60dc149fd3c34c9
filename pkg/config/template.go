package config

import (
	"fmt"
	"strings"
)

// DefaultTemplateHeader returns the comment block written at the top of a
// generated configuration file.
func DefaultTemplateHeader() string {
	return `# gliedit configuration
# Place this file next to .gitleaksignore or anywhere above it in the
# repository. Environment variables (GLIEDIT_*) and flags override it.`
}

// GenerateTemplate returns a commented .gliedit.yml populated with the
// default values.
func GenerateTemplate() []byte {
	defaults := NewConfig()

	var b strings.Builder
	b.WriteString(DefaultTemplateHeader())
	b.WriteString("\n\n")

	writeOption(&b, "", "Ignore file to open.", "file", fmt.Sprintf("%q", defaults.File))
	writeOption(&b, "", "Lines of context around a single-line spec such as --lines 42.",
		"context", fmt.Sprint(defaults.ContextLines()))
	writeOption(&b, "", "Reject every edit.", "read_only", fmt.Sprint(defaults.IsReadOnly()))
	writeOption(&b, "", "Refuse to save when the file changed on disk since it was opened.\n"+
		"When false the save proceeds and a warning is shown.",
		"block_on_conflict", fmt.Sprint(defaults.BlocksOnConflict()))
	writeOption(&b, "", "When to color output: auto, always or never.", "color", string(defaults.Color))
	writeOption(&b, "", "Log level: debug, info, warn or error.", "log_level", defaults.LogLevel)

	b.WriteString("backups:\n")
	writeOption(&b, "  ", "Copy the file to <name>.backup.<unix-seconds> before each save.",
		"enabled", fmt.Sprint(defaults.BackupsEnabled()))
	writeOption(&b, "  ", "Number of backups kept per file; the oldest are pruned.",
		"max_backups", fmt.Sprint(defaults.MaxBackups()))

	b.WriteString("\npreview:\n")
	writeOption(&b, "  ", "Show the source lines a fingerprint points at.",
		"enabled", fmt.Sprint(defaults.PreviewEnabled()))
	writeOption(&b, "  ", "Lines shown on each side of the fingerprinted line.",
		"context", fmt.Sprint(defaults.PreviewContextLines()))

	return []byte(strings.TrimRight(b.String(), "\n") + "\n")
}

func writeOption(b *strings.Builder, indent, comment, key, value string) {
	for line := range strings.SplitSeq(comment, "\n") {
		b.WriteString(indent + "# " + line + "\n")
	}
	b.WriteString(indent + key + ": " + value + "\n")
	if indent == "" {
		b.WriteString("\n")
	}
}
