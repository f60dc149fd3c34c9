// Package main is the entry point for the gliedit CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/gliedit/internal/cli"
	"github.com/yaklabco/gliedit/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// ErrInvalidLinesFound only selects the exit code; check already
		// printed the details.
		if !errors.Is(err, cli.ErrInvalidLinesFound) {
			logging.Default().Error("command failed", logging.FieldError, err)
		}
		return cli.ExitCodeFromError(err)
	}

	return cli.ExitSuccess
}
