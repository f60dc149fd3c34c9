package configloader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yaklabco/gliedit/pkg/config"
)

// ErrConfigExists is returned when a config file would be overwritten.
var ErrConfigExists = errors.New("configuration file already exists")

// ConfigPaths represents discovered configuration file paths.
type ConfigPaths struct {
	// User is the user-level config path (e.g., ~/.config/gliedit/config.yaml).
	User string

	// Project is the project-level config path (e.g., ./.gliedit.yml).
	Project string

	// Explicit is a config path provided via --config flag.
	Explicit string

	// IgnoreFile is the .gitleaksignore found by the upward search. It is
	// only set when no source named a file.
	IgnoreFile string
}

// projectConfigFiles are the config file names we search for, in order of preference.
//
//nolint:gochecknoglobals // Read-only lookup table.
var projectConfigFiles = []string{
	".gliedit.yml",
	".gliedit.yaml",
}

// vcsRootMarkers are directories that indicate a VCS root.
//
//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// DiscoverPaths finds configuration files in standard locations:
//   - User config at $XDG_CONFIG_HOME/gliedit/config.{yaml,yml}
//   - Project config by searching upward from workDir for .gliedit.{yml,yaml}
//
// Missing files are represented as empty strings (not errors).
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		User:    findUserConfig(),
		Project: project,
	}, nil
}

// UserConfigDir returns the directory holding the user-level config.
func UserConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "gliedit")
}

func findUserConfig() string {
	dir := UserConfigDir()
	if dir == "" {
		return ""
	}

	for _, name := range []string{"config.yaml", "config.yml"} {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// FindProjectConfig searches upward from startDir for .gliedit.yml or
// .gliedit.yaml. It returns "" when there is none.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	return findUpward(ctx, startDir, projectConfigFiles)
}

// FindIgnoreFile searches upward from startDir for the nearest
// .gitleaksignore, the way gitleaks finds it at the repository root when run
// from a subdirectory. It returns "" when there is none.
func FindIgnoreFile(ctx context.Context, startDir string) (string, error) {
	return findUpward(ctx, startDir, []string{config.DefaultFile})
}

// findUpward returns the first of names found in startDir or one of its
// parents. The walk stops after a VCS root, the home directory or the
// filesystem root.
func findUpward(ctx context.Context, startDir string, names []string) (string, error) {
	if startDir == "" {
		var err error
		startDir, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	homeDir, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}

		for _, name := range names {
			if path := filepath.Join(dir, name); fileExists(path) {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir || isVCSRoot(dir) || (homeDir != "" && dir == homeDir) {
			return "", nil
		}
		dir = parent
	}
}

// isVCSRoot returns true if the directory contains a VCS root marker.
func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		info, err := os.Stat(filepath.Join(dir, marker))
		if err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
