package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/yaklabco/gliedit/pkg/config"
)

// envVarPrefix is the prefix for all gliedit environment variables.
const envVarPrefix = "GLIEDIT_"

type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
)

type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"FILE":              {"file", envTypeString, "Ignore file to open"},
	"CONTEXT":           {"context", envTypeInt, "Lines of context around a single-line spec"},
	"READ_ONLY":         {"read_only", envTypeBool, "Reject every edit: true or false"},
	"BLOCK_ON_CONFLICT": {"block_on_conflict", envTypeBool, "Refuse to save over external changes: true or false"},
	"COLOR":             {"color", envTypeString, "When to color output: auto, always or never"},
	"LOG_LEVEL":         {"log_level", envTypeString, "Log level: debug, info, warn or error"},
	"BACKUPS_ENABLED":   {"backups.enabled", envTypeBool, "Back up the file before each save: true or false"},
	"MAX_BACKUPS":       {"backups.max_backups", envTypeInt, "Number of backups kept per file"},
	"PREVIEW_ENABLED":   {"preview.enabled", envTypeBool, "Show fingerprint previews: true or false"},
	"PREVIEW_CONTEXT":   {"preview.context", envTypeInt, "Lines shown around a previewed line"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with GLIEDIT_ (e.g., GLIEDIT_READ_ONLY).
func LoadFromEnv(cfg *config.Config) error {
	return loadFromEnv(cfg, os.Getenv)
}

func loadFromEnv(cfg *config.Config, getenv func(string) string) error {
	if cfg == nil {
		return nil
	}

	// Sorted so that the first reported error is stable.
	suffixes := make([]string, 0, len(envMappings))
	for suffix := range envMappings {
		suffixes = append(suffixes, suffix)
	}
	sort.Strings(suffixes)

	for _, suffix := range suffixes {
		envVar := envVarPrefix + suffix
		value := getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, envMappings[suffix], value, envVar); err != nil {
			return err
		}
	}

	return nil
}

func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "file":
		cfg.File = value
	case "color":
		cfg.Color = config.ColorMode(value)
	case "log_level":
		cfg.LogLevel = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "read_only":
		cfg.ReadOnly = config.Bool(value)
	case "block_on_conflict":
		cfg.BlockOnConflict = config.Bool(value)
	case "backups.enabled":
		cfg.Backups.Enabled = config.Bool(value)
	case "preview.enabled":
		cfg.Preview.Enabled = config.Bool(value)
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "context":
		cfg.Context = config.Int(value)
	case "backups.max_backups":
		cfg.Backups.MaxBackups = value
	case "preview.context":
		cfg.Preview.Context = config.Int(value)
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns every supported environment variable with its description.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.description
	}
	return vars
}
