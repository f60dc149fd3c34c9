package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gliedit/internal/logging"
	"github.com/yaklabco/gliedit/internal/session"
	"github.com/yaklabco/gliedit/internal/ui/pretty"
)

func newBackupsCommand(global *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backups",
		Short: "List or restore backups of the file",
		Long: `Backups are written next to the file as <name>.backup.<unix-seconds>
before every save, and the oldest are pruned beyond backups.max_backups.`,
		Args: cobra.NoArgs,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List backups, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBackupsList(cmd, global)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "restore",
		Short: "Restore the newest backup over the file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBackupsRestore(cmd, global)
		},
	})

	return cmd
}

func runBackupsList(cmd *cobra.Command, global *globalFlags) error {
	env, err := resolve(cmd, global, nil)
	if err != nil {
		return err
	}

	sess, err := env.open(func(opts *session.Options) {
		opts.ReadOnly = true
	})
	if err != nil {
		return err
	}

	backups, err := sess.Backups()
	if err != nil {
		return err
	}

	if len(backups) == 0 {
		_, err = fmt.Fprintln(env.out, env.styles.Dim.Render("No backups of "+filepath.Base(sess.Path())))
		return err
	}

	rows := make([][]string, len(backups))
	for i, backup := range backups {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			time.Unix(backup.Timestamp, 0).Format(time.DateTime),
			filepath.Base(backup.Path),
		}
	}

	table := pretty.NewTableFormatter(env.styles, env.width)
	if _, err := io.WriteString(env.out, table.Format([]string{"#", "CREATED", "BACKUP"}, rows)); err != nil {
		return fmt.Errorf("write backups: %w", err)
	}
	return nil
}

func runBackupsRestore(cmd *cobra.Command, global *globalFlags) error {
	env, err := resolve(cmd, global, nil)
	if err != nil {
		return err
	}

	sess, err := env.open(nil)
	if err != nil {
		return err
	}

	restored, err := sess.RestoreLatest(env.ctx)
	if err != nil {
		return err
	}

	if restored == "" {
		_, err = fmt.Fprintln(env.out, env.styles.Dim.Render(sess.Message()))
		return err
	}

	logging.FromContext(env.ctx).Info("restored", logging.FieldBackup, filepath.Base(restored))
	_, err = fmt.Fprintln(env.out, env.styles.Success.Render(sess.Message()))
	return err
}
