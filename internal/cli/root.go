// Package cli provides the Cobra command structure for gliedit.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gliedit/internal/logging"
	"github.com/yaklabco/gliedit/pkg/config"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	file       string
	configPath string
	color      string
	debug      bool
	readOnly   bool
}

// NewRootCommand creates the root gliedit command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "gliedit",
		Short: "View and edit .gitleaksignore fingerprint files",
		Long: `gliedit is a line-addressable editor for .gitleaksignore files.

Each line of a .gitleaksignore file suppresses one gitleaks finding with a
fingerprint of the form [commit:]path:rule-id:line. gliedit shows any window
of the file, previews the source a fingerprint points at, and edits or
deletes single lines. Every save is atomic, optionally backed up, and checked
against changes made by other processes.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if flags.debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().StringVarP(&flags.file, "file", "f", "",
		"path to the .gitleaksignore file (default: nearest one up to the repository root)")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flags.color, "color", string(config.ColorAuto),
		"colorize output: auto, always, never")
	rootCmd.PersistentFlags().BoolVarP(&flags.readOnly, "read-only", "r", false,
		"refuse to modify the file")

	// Add subcommands.
	rootCmd.AddCommand(newViewCommand(flags))
	rootCmd.AddCommand(newEditCommand(flags))
	rootCmd.AddCommand(newDeleteCommand(flags))
	rootCmd.AddCommand(newCheckCommand(flags, info))
	rootCmd.AddCommand(newBackupsCommand(flags))
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(config.ColorMode(flags.color), os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
