package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gliedit/internal/configloader"
	"github.com/yaklabco/gliedit/internal/logging"
	"github.com/yaklabco/gliedit/pkg/config"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force bool
	dir   string
	print bool
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new gliedit configuration file",
		Long: `Create a .gliedit.yml configuration file with every option documented
and set to its default.

Examples:
  gliedit init                 Create .gliedit.yml in the current directory
  gliedit init --dir ../repo   Create it in another directory
  gliedit init --print         Print the template instead of writing it`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runInit(ctx, cmd, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.force, "force", false, "Overwrite existing configuration file")
	cmd.Flags().StringVar(&flags.dir, "dir", "", "Directory to write into (default: current directory)")
	cmd.Flags().BoolVar(&flags.print, "print", false, "Write the template to stdout")

	return cmd
}

func runInit(ctx context.Context, cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()
	content := config.GenerateTemplate()

	if flags.print {
		if _, err := cmd.OutOrStdout().Write(content); err != nil {
			return fmt.Errorf("write template: %w", err)
		}
		return nil
	}

	dir := flags.dir
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}
	}

	path, err := configloader.WriteProjectConfig(ctx, dir, content, flags.force)
	if err != nil {
		if errors.Is(err, configloader.ErrConfigExists) {
			return fmt.Errorf("%w; use --force to overwrite", err)
		}
		return err
	}

	logger.Info("created configuration file", logging.FieldPath, path)
	logger.Info("customize your configuration by editing the file")
	logger.Info("run 'gliedit view' to open " + config.DefaultFile)

	return nil
}
