package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gliedit/internal/logging"
	"github.com/yaklabco/gliedit/internal/session"
	"github.com/yaklabco/gliedit/pkg/buffer"
	"github.com/yaklabco/gliedit/pkg/config"
	"github.com/yaklabco/gliedit/pkg/navigate"
)

// saveFlags are shared by the commands that write the file.
type saveFlags struct {
	noBackup bool
	strict   bool
	dryRun   bool
}

func (f *saveFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noBackup, "no-backup", false, "skip the backup before writing")
	cmd.Flags().BoolVar(&f.strict, "strict", false,
		"refuse to save if the file changed on disk since it was read")
	cmd.Flags().BoolVarP(&f.dryRun, "dry-run", "n", false, "print the change as a diff without writing")
}

func (f *saveFlags) config(cmd *cobra.Command) *config.Config {
	cli := &config.Config{}
	if cmd.Flags().Changed("no-backup") {
		cli.Backups.Enabled = config.Bool(!f.noBackup)
	}
	if cmd.Flags().Changed("strict") {
		cli.BlockOnConflict = config.Bool(f.strict)
	}
	return cli
}

func newEditCommand(global *globalFlags) *cobra.Command {
	flags := &saveFlags{}

	cmd := &cobra.Command{
		Use:   "edit LINE CONTENT...",
		Short: "Replace one line and save",
		Long: `Replace line LINE with CONTENT and save the file.

Remaining arguments are joined with single spaces. The content is saved even
if it is not a valid fingerprint; the result says so. Unchanged content is
not written. With --dry-run the change is printed as a unified diff and the
file is left alone.`,
		Example: `  gliedit edit 12 src/config.go:generic-api-key:40
  gliedit edit 3 '# rotated 2024-05-01'
  gliedit edit 12 --dry-run src/config.go:generic-api-key:41`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := parseLineArg(args[0])
			if err != nil {
				return err
			}
			content := strings.Join(args[1:], " ")

			env, err := resolve(cmd, global, flags.config(cmd))
			if err != nil {
				return err
			}

			sess, err := env.open(func(opts *session.Options) {
				opts.Spec = navigate.Single{Line: line, Context: env.cfg.ContextLines()}
				opts.DryRun = flags.dryRun
			})
			if err != nil {
				return err
			}

			result, err := sess.Commit(env.ctx, line, content)
			if err != nil {
				return err
			}

			return finishSave(env, sess, result)
		},
	}

	flags.register(cmd)
	return cmd
}

func newDeleteCommand(global *globalFlags) *cobra.Command {
	flags := &saveFlags{}

	cmd := &cobra.Command{
		Use:     "delete LINE",
		Aliases: []string{"rm"},
		Short:   "Delete one line and save",
		Long: `Delete line LINE and save the file. Later lines move up by one.`,
		Example: `  gliedit delete 12
  gliedit delete 12 --strict
  gliedit rm 12 -n`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := parseLineArg(args[0])
			if err != nil {
				return err
			}

			env, err := resolve(cmd, global, flags.config(cmd))
			if err != nil {
				return err
			}

			sess, err := env.open(func(opts *session.Options) {
				opts.Spec = navigate.Single{Line: line, Context: env.cfg.ContextLines()}
				opts.DryRun = flags.dryRun
			})
			if err != nil {
				return err
			}

			result, err := sess.Delete(env.ctx, line)
			if err != nil {
				return err
			}

			return finishSave(env, sess, result)
		},
	}

	flags.register(cmd)
	return cmd
}

func parseLineArg(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: invalid line number: %q", buffer.ErrInvalidArguments, arg)
	}
	return n, nil
}

func finishSave(env *env, sess *session.Session, result *session.SaveResult) error {
	if result.DryRun {
		_, err := io.WriteString(env.out, env.styles.FormatDiff(result.Diff))
		return err
	}

	reportSave(env, result)
	return renderSession(env, sess)
}

func reportSave(env *env, result *session.SaveResult) {
	logger := logging.FromContext(env.ctx)
	if result.Backup != "" {
		logger.Info("backup created", logging.FieldBackup, filepath.Base(result.Backup))
	}
	if result.Conflict {
		logger.Warn("file had changed on disk; external changes were overwritten",
			logging.FieldLine, result.Line)
	}
}
