package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gliedit/internal/session"
	"github.com/yaklabco/gliedit/internal/ui/pretty"
	"github.com/yaklabco/gliedit/pkg/config"
	"github.com/yaklabco/gliedit/pkg/navigate"
	"github.com/yaklabco/gliedit/pkg/preview"
)

// statusRows is the space kept below the window for the status line.
const statusRows = 2

type viewFlags struct {
	lines   string
	context int
	jump    int
	bottom  bool
	height  int
	moves   []string
	preview bool
}

func newViewCommand(global *globalFlags) *cobra.Command {
	flags := &viewFlags{}

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Show a window of the file",
		Long: `Show a window of the file with line numbers and a cursor.

The window is chosen with --lines using the line-spec mini-language:
  42      line 42 with --context lines on each side
  42+5    line 42 with 5 lines on each side
  10-50   lines 10 through 50
Without --lines the whole file is shown, fitted to the terminal height.

Navigation flags are applied in order: --move steps first, then --jump,
then --bottom.`,
		Example: `  gliedit view
  gliedit view --lines 120+10
  gliedit view --move page-down --move down
  gliedit view --jump 42 --preview`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runView(cmd, global, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.lines, "lines", "l", "", "line spec: N, N+C or A-B")
	cmd.Flags().IntVarP(&flags.context, "context", "C", config.DefaultContext,
		"context lines around a single-line spec")
	cmd.Flags().IntVar(&flags.jump, "jump", 0, "center the window on this line")
	cmd.Flags().BoolVar(&flags.bottom, "bottom", false, "show the end of the file")
	cmd.Flags().IntVar(&flags.height, "height", 0, "window rows (default: terminal height)")
	cmd.Flags().StringArrayVar(&flags.moves, "move", nil,
		"navigation step: up, down, page-up, page-down, top, bottom (repeatable)")
	cmd.Flags().BoolVarP(&flags.preview, "preview", "p", false,
		"show the source the fingerprint under the cursor points at")

	return cmd
}

func runView(cmd *cobra.Command, global *globalFlags, flags *viewFlags) error {
	cli := &config.Config{}
	if cmd.Flags().Changed("context") {
		cli.Context = config.Int(flags.context)
	}

	env, err := resolve(cmd, global, cli)
	if err != nil {
		return err
	}

	spec, err := navigate.ParseLineSpec(flags.lines, env.cfg.ContextLines())
	if err != nil {
		return err
	}

	actions := make([]navigate.Action, 0, len(flags.moves))
	for _, move := range flags.moves {
		action, err := navigate.ParseAction(move)
		if err != nil {
			return err
		}
		actions = append(actions, action)
	}

	height := flags.height
	if height <= 0 {
		if _, rows := terminalSize(env.out); rows > statusRows {
			height = rows - statusRows
		}
	}

	sess, err := env.open(func(opts *session.Options) {
		opts.Spec = spec
		opts.Height = height
		opts.PreviewEnabled = opts.PreviewEnabled && flags.preview
	})
	if err != nil {
		return err
	}

	for _, action := range actions {
		if err := sess.Apply(action); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("jump") {
		if err := sess.JumpTo(flags.jump); err != nil {
			return err
		}
	}
	if flags.bottom {
		if err := sess.Apply(navigate.ActionBottom); err != nil {
			return err
		}
	}

	return renderSession(env, sess)
}

// renderSession writes the window, the status line and, when enabled, the
// preview of the fingerprint under the cursor.
func renderSession(env *env, sess *session.Session) error {
	view := sess.Viewport()

	if _, err := io.WriteString(env.out, env.styles.FormatWindow(pretty.WindowView{
		Window: sess.Window(),
		Cursor: view.Cursor,
		Total:  view.Total,
		Width:  env.width,
	})); err != nil {
		return fmt.Errorf("write window: %w", err)
	}

	status := pretty.Status{
		Path:     sess.Path(),
		Cursor:   view.Cursor,
		Start:    view.Start,
		End:      view.End,
		Total:    view.Total,
		ReadOnly: sess.ReadOnly(),
		Message:  sess.Message(),
		Warning:  sess.Warning(),
	}
	if _, err := io.WriteString(env.out, env.styles.FormatStatus(status)); err != nil {
		return fmt.Errorf("write status: %w", err)
	}

	content, err := sess.Preview(env.ctx)
	switch {
	case errors.Is(err, preview.ErrUnavailable):
		_, err = fmt.Fprintln(env.out, env.styles.Dim.Render(err.Error()))
		return err
	case err != nil:
		return err
	case content != nil:
		_, err = io.WriteString(env.out, env.styles.FormatPreview(content, env.width))
		return err
	}

	return nil
}
