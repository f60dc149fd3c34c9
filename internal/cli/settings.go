package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/gliedit/internal/configloader"
	"github.com/yaklabco/gliedit/internal/logging"
	"github.com/yaklabco/gliedit/internal/session"
	"github.com/yaklabco/gliedit/internal/ui/pretty"
	"github.com/yaklabco/gliedit/pkg/config"
)

// ErrConfigLoad wraps configuration failures at the command boundary.
var ErrConfigLoad = errors.New("failed to load configuration")

// env is what every file command needs once flags and config are resolved.
type env struct {
	ctx    context.Context
	cfg    *config.Config
	styles *pretty.Styles
	out    io.Writer
	width  int
}

// resolve loads configuration with the persistent flags as the top layer.
// Only flags the user actually set override lower layers; cli carries any
// command-specific overrides.
func resolve(cmd *cobra.Command, flags *globalFlags, cli *config.Config) (*env, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	if cli == nil {
		cli = &config.Config{}
	}
	if cmd.Flags().Changed("file") {
		cli.File = flags.file
	}
	if cmd.Flags().Changed("color") {
		cli.Color = config.ColorMode(flags.color)
	}
	if cmd.Flags().Changed("read-only") {
		cli.ReadOnly = config.Bool(flags.readOnly)
	}
	if flags.debug {
		cli.LogLevel = "debug"
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	result, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: flags.configPath,
		CLIConfig:    cli,
	})
	if err != nil {
		return nil, errors.Join(ErrConfigLoad, err)
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldConfig, result.LoadedFrom)
	}

	cfg := result.Config
	logging.SetLevel(cfg.LogLevel)

	out := cmd.OutOrStdout()
	width, _ := terminalSize(out)

	return &env{
		ctx:    logging.WithFields(ctx, logging.FieldWorkingDir, workDir),
		cfg:    cfg,
		styles: pretty.NewStyles(pretty.IsColorEnabled(cfg.Color, out)),
		out:    out,
		width:  width,
	}, nil
}

// open starts a session on the configured file.
func (e *env) open(mutate func(*session.Options)) (*session.Session, error) {
	opts := session.OptionsFromConfig(e.cfg, e.cfg.File)
	if mutate != nil {
		mutate(&opts)
	}
	return session.Open(e.ctx, opts)
}

// terminalSize returns the size of w when it is a terminal, or zeros.
func terminalSize(w io.Writer) (int, int) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, 0
	}
	width, height, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0, 0
	}
	return width, height
}
