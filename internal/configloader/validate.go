package configloader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/gliedit/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "backups.max_backups").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Err joins every validation error, or returns nil when valid.
func (r *ValidationResult) Err() error {
	errs := make([]error, len(r.Errors))
	for i := range r.Errors {
		errs[i] = &r.Errors[i]
	}
	return errors.Join(errs...)
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownLogLevels lists valid log_level values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownLogLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
}

// Validate checks a configuration for errors and warnings. Unset fields are
// not errors; a merged configuration always has them filled from defaults.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	addError := func(field string, value any, format string, args ...any) {
		result.Errors = append(result.Errors, ValidationError{
			Field:   field,
			Value:   value,
			Message: fmt.Sprintf(format, args...),
		})
	}

	if cfg.Color != "" && !cfg.Color.IsValid() {
		addError("color", cfg.Color, "invalid color mode %q; must be one of: auto, always, never", cfg.Color)
	}
	if cfg.LogLevel != "" && !knownLogLevels[strings.ToLower(cfg.LogLevel)] {
		addError("log_level", cfg.LogLevel, "invalid log level %q; must be one of: debug, info, warn, error", cfg.LogLevel)
	}
	if cfg.Format != "" && !cfg.Format.IsValid() {
		addError("format", cfg.Format, "invalid format %q; must be one of: text, json, sarif", cfg.Format)
	}
	if cfg.Context != nil && *cfg.Context < 0 {
		addError("context", *cfg.Context, "context must be >= 0")
	}
	if cfg.Backups.MaxBackups < 0 {
		addError("backups.max_backups", cfg.Backups.MaxBackups, "max_backups must be >= 1 (0 means default)")
	}
	if cfg.Preview.Context != nil && *cfg.Preview.Context < 0 {
		addError("preview.context", *cfg.Preview.Context, "preview context must be >= 0")
	}

	if cfg.IsReadOnly() && cfg.BlocksOnConflict() {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "block_on_conflict",
			Value:   true,
			Message: "has no effect in read-only mode",
		})
	}
	if !cfg.BackupsEnabled() && cfg.Backups.MaxBackups > 0 && cfg.Backups.MaxBackups != config.DefaultMaxBackups {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "backups.max_backups",
			Value:   cfg.Backups.MaxBackups,
			Message: "is ignored while backups are disabled",
		})
	}

	return result
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}
