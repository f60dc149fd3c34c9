package pretty_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gliedit/internal/ui/pretty"
	"github.com/yaklabco/gliedit/pkg/config"
)

func TestNewStyles_ColorEnabled(t *testing.T) {
	styles := pretty.NewStyles(true)
	require.NotNil(t, styles)

	// Lipgloss may not emit ANSI codes in non-TTY environments, so only
	// check that rendering keeps the text.
	assert.Contains(t, styles.Error.Render("x"), "x")
	assert.Contains(t, styles.CursorMark.Render("x"), "x")
	assert.Contains(t, styles.CommitHash.Render("x"), "x")
}

func TestNewStyles_ColorDisabled(t *testing.T) {
	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)

	text := "test"
	for name, rendered := range map[string]string{
		"Bold":       styles.Bold.Render(text),
		"Error":      styles.Error.Render(text),
		"CursorLine": styles.CursorLine.Render(text),
		"FilePath":   styles.FilePath.Render(text),
		"Comment":    styles.Comment.Render(text),
	} {
		assert.Equal(t, text, rendered, "no-color %s should not add formatting", name)
	}
}

func TestIsColorEnabled_AlwaysMode(t *testing.T) {
	var buf bytes.Buffer
	assert.True(t, pretty.IsColorEnabled(config.ColorAlways, &buf))
}

func TestIsColorEnabled_NeverMode(t *testing.T) {
	assert.False(t, pretty.IsColorEnabled(config.ColorNever, os.Stdout))
}

func TestIsColorEnabled_AutoMode_NonTTY(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, pretty.IsColorEnabled(config.ColorAuto, &buf))
}

func TestIsColorEnabled_AutoMode_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.False(t, pretty.IsColorEnabled(config.ColorAuto, os.Stdout))
}

func TestIsColorEnabled_DefaultsToAuto(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	var buf bytes.Buffer
	assert.False(t, pretty.IsColorEnabled("", &buf), "empty mode should behave like auto")
	assert.False(t, pretty.IsColorEnabled("unknown", &buf), "unknown mode should behave like auto")
}
