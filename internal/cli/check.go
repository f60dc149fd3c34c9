package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gliedit/internal/session"
	"github.com/yaklabco/gliedit/internal/ui/pretty"
	"github.com/yaklabco/gliedit/pkg/config"
	"github.com/yaklabco/gliedit/pkg/report"
)

// ErrInvalidLinesFound is returned when check finds invalid lines.
var ErrInvalidLinesFound = errors.New("invalid lines found")

func newCheckCommand(global *globalFlags, info BuildInfo) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report lines that are not valid fingerprints",
		Long: `Classify every line of the file and report the ones that are neither a
fingerprint, a comment nor blank. Exits with status 1 if any are found.

The json and sarif formats are meant for scripts and code scanning uploads.
Each SARIF result carries a fix that deletes the offending line.`,
		Example: `  gliedit check
  gliedit check --format json
  gliedit check --format sarif > gitleaksignore.sarif`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			outputFormat := config.OutputFormat(format)
			env, err := resolve(cmd, global, &config.Config{Format: outputFormat})
			if err != nil {
				return err
			}

			sess, err := env.open(func(opts *session.Options) {
				opts.ReadOnly = true
			})
			if err != nil {
				return err
			}

			result := report.Build(sess.File())
			if env.cfg.Format == config.FormatText || env.cfg.Format == "" {
				err = writeCheckText(env, result, sess)
			} else {
				err = writeCheckReport(env, result, info.Version)
			}
			if err != nil {
				return err
			}

			if !result.Clean() {
				return ErrInvalidLinesFound
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", string(config.FormatText), "output format: text, json, sarif")

	return cmd
}

func writeCheckReport(env *env, result *report.Report, version string) error {
	renderer, err := report.New(report.Options{Format: env.cfg.Format, Version: version})
	if err != nil {
		return err
	}
	return renderer.Render(env.out, result)
}

func writeCheckText(env *env, result *report.Report, sess *session.Session) error {
	styles := env.styles

	out := styles.FormatStats(sess.File().Stats())
	if !result.Clean() {
		rows := make([][]string, len(result.Invalid))
		for i, line := range result.Invalid {
			rows[i] = []string{
				styles.LineNumber.Render(strconv.Itoa(line.Line)),
				styles.Invalid.Render(line.Content),
			}
		}
		out += "\n" + pretty.NewTableFormatter(styles, env.width).Format([]string{"LINE", "CONTENT"}, rows)
	}
	out += styles.FormatCheckSummary(len(result.Invalid), result.Total)

	if _, err := io.WriteString(env.out, out); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
