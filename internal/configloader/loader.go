// Package configloader resolves gliedit configuration. It implements
// XDG-style discovery, an upward search for a project file, environment
// variable overrides, hierarchical merging and validation.
package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yaklabco/gliedit/pkg/config"
	"github.com/yaklabco/gliedit/pkg/fsutil"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0644

// ProjectConfigName is the file written by WriteProjectConfig.
const ProjectConfigName = ".gliedit.yml"

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// Getenv looks up environment variables. Defaults to os.Getenv.
	Getenv func(string) string

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (GLIEDIT_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.gliedit.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/gliedit/config.yaml)
//  6. Defaults
//
// When no source names the ignore file, the nearest .gitleaksignore above
// WorkingDir is used, falling back to ./.gitleaksignore.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	layers := []struct {
		name string
		path string
		skip bool
	}{
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig},
		{"explicit", paths.Explicit, false},
	}

	for _, layer := range layers {
		if layer.skip || layer.path == "" {
			continue
		}

		fileCfg, err := loadConfigFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if !opts.IgnoreEnv {
		getenv := opts.Getenv
		if getenv == nil {
			getenv = os.Getenv
		}
		if err := loadFromEnv(cfg, getenv); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	if cfg.File == config.DefaultFile {
		found, err := FindIgnoreFile(ctx, workDir)
		if err != nil {
			return nil, fmt.Errorf("find ignore file: %w", err)
		}
		if found != "" {
			paths.IgnoreFile = found
			cfg.File = found
		}
	}

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, validation.Err()
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile loads a configuration from a YAML file. A relative file
// setting is resolved against the directory holding the config file.
func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, &ValidationError{FilePath: path, Message: err.Error()}
	}

	if cfg.File != "" && !filepath.IsAbs(cfg.File) {
		cfg.File = filepath.Join(filepath.Dir(path), cfg.File)
	}

	if validation := ValidateWithFile(cfg, path); !validation.Valid() {
		return nil, validation.Err()
	}

	return cfg, nil
}

// WriteProjectConfig writes content to dir/.gliedit.yml. An existing file is
// only replaced when force is set.
func WriteProjectConfig(ctx context.Context, dir string, content []byte, force bool) (string, error) {
	path, err := filepath.Abs(filepath.Join(dir, ProjectConfigName))
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}

	if fileExists(path) && !force {
		return "", fmt.Errorf("%w: %s", ErrConfigExists, path)
	}

	if err := fsutil.WriteAtomic(ctx, path, content, configFilePermissions); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}
