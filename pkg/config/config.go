// Package config defines the configuration types for gliedit.
// These are plain data structures; discovery and merging live in
// internal/configloader.
package config

import "github.com/yaklabco/gliedit/pkg/fsutil"

// Defaults applied when a value is not set anywhere.
const (
	DefaultFile           = ".gitleaksignore"
	DefaultContext        = 3
	DefaultPreviewContext = 10
	DefaultMaxBackups     = fsutil.DefaultMaxBackups
)

// BackupsConfig controls the copies taken before each save.
type BackupsConfig struct {
	// Enabled turns backups on or off. Nil means on.
	Enabled *bool `yaml:"enabled,omitempty"`

	// MaxBackups is the number of copies kept per file. Zero means the default.
	MaxBackups int `yaml:"max_backups,omitempty"`
}

// PreviewConfig controls the source excerpt shown next to a fingerprint.
type PreviewConfig struct {
	// Enabled turns previews on or off. Nil means on.
	Enabled *bool `yaml:"enabled,omitempty"`

	// Context is the number of lines shown on each side of the target.
	Context *int `yaml:"context,omitempty"`
}

// Config is the root configuration structure.
//
// Optional scalars are pointers so that an explicit false or zero in a higher
// precedence source can override a lower one.
type Config struct {
	// File is the ignore file to open.
	File string `yaml:"file,omitempty"`

	// Context is the default number of lines around a single-line spec.
	Context *int `yaml:"context,omitempty"`

	// ReadOnly rejects every edit.
	ReadOnly *bool `yaml:"read_only,omitempty"`

	// BlockOnConflict refuses to save over a file that changed on disk.
	// When unset the save proceeds with a warning.
	BlockOnConflict *bool `yaml:"block_on_conflict,omitempty"`

	// Color selects when output is styled.
	Color ColorMode `yaml:"color,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level,omitempty"`

	// Backups configures backup behavior.
	Backups BackupsConfig `yaml:"backups,omitempty"`

	// Preview configures fingerprint previews.
	Preview PreviewConfig `yaml:"preview,omitempty"`

	// CLI-level options (not persisted to config files).

	// Format is the output format of the check command.
	Format OutputFormat `yaml:"-"`
}

// NewConfig returns a Config with every default filled in.
func NewConfig() *Config {
	return &Config{
		File:            DefaultFile,
		Context:         Int(DefaultContext),
		ReadOnly:        Bool(false),
		BlockOnConflict: Bool(false),
		Color:           ColorAuto,
		LogLevel:        "info",
		Backups: BackupsConfig{
			Enabled:    Bool(true),
			MaxBackups: DefaultMaxBackups,
		},
		Preview: PreviewConfig{
			Enabled: Bool(true),
			Context: Int(DefaultPreviewContext),
		},
		Format: FormatText,
	}
}

// ContextLines returns the configured context or the default.
func (c *Config) ContextLines() int {
	if c == nil || c.Context == nil {
		return DefaultContext
	}
	return *c.Context
}

// IsReadOnly reports whether edits are disabled.
func (c *Config) IsReadOnly() bool {
	return c != nil && c.ReadOnly != nil && *c.ReadOnly
}

// BlocksOnConflict reports whether saves refuse to overwrite external changes.
func (c *Config) BlocksOnConflict() bool {
	return c != nil && c.BlockOnConflict != nil && *c.BlockOnConflict
}

// BackupsEnabled reports whether a backup is taken before each save.
func (c *Config) BackupsEnabled() bool {
	return c == nil || c.Backups.Enabled == nil || *c.Backups.Enabled
}

// MaxBackups returns the retention limit or the default.
func (c *Config) MaxBackups() int {
	if c == nil || c.Backups.MaxBackups <= 0 {
		return DefaultMaxBackups
	}
	return c.Backups.MaxBackups
}

// PreviewEnabled reports whether previews are shown.
func (c *Config) PreviewEnabled() bool {
	return c == nil || c.Preview.Enabled == nil || *c.Preview.Enabled
}

// PreviewContextLines returns the preview context or the default.
func (c *Config) PreviewContextLines() int {
	if c == nil || c.Preview.Context == nil {
		return DefaultPreviewContext
	}
	return *c.Preview.Context
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}

// Int returns a pointer to i.
func Int(i int) *int {
	return &i
}
