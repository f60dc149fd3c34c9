// Package session ties one ignore file, one viewport and one save policy
// together. It is the only layer above pkg/ that mutates files, and the only
// one besides the CLI that logs.
package session

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/gliedit/internal/logging"
	"github.com/yaklabco/gliedit/pkg/buffer"
	"github.com/yaklabco/gliedit/pkg/config"
	"github.com/yaklabco/gliedit/pkg/diff"
	"github.com/yaklabco/gliedit/pkg/fsutil"
	"github.com/yaklabco/gliedit/pkg/navigate"
	"github.com/yaklabco/gliedit/pkg/pattern"
	"github.com/yaklabco/gliedit/pkg/preview"
)

// ErrReadOnly is returned by edit operations on a read-only session.
var ErrReadOnly = errors.New("file is open read-only")

// Options configures Open.
type Options struct {
	// Path is the ignore file to open.
	Path string

	// Spec selects the initial window. Nil means the whole file.
	Spec navigate.LineSpec

	// Height, when positive, fits a whole-file window to this many rows.
	// Explicit Single and Range specs are shown as resolved.
	Height int

	// ReadOnly rejects every edit with ErrReadOnly.
	ReadOnly bool

	// Backups enables a timestamped copy before each write.
	Backups bool

	// MaxBackups is the retention limit. Zero uses fsutil.DefaultMaxBackups.
	MaxBackups int

	// BlockOnConflict turns an external modification into
	// buffer.ErrConcurrentModification instead of a warning.
	BlockOnConflict bool

	// DryRun computes the diff of each edit without writing it. The buffer
	// is reloaded from disk afterwards.
	DryRun bool

	// PreviewEnabled allows Preview to read the file under the cursor.
	PreviewEnabled bool

	// PreviewContext is the number of lines around the preview target.
	PreviewContext int

	// Logger receives session events. Nil uses the context logger.
	Logger *log.Logger

	// Clock names backups. Nil uses time.Now.
	Clock func() time.Time
}

// OptionsFromConfig maps a resolved configuration onto Options for path.
func OptionsFromConfig(cfg *config.Config, path string) Options {
	return Options{
		Path:            path,
		ReadOnly:        cfg.IsReadOnly(),
		Backups:         cfg.BackupsEnabled(),
		MaxBackups:      cfg.MaxBackups(),
		BlockOnConflict: cfg.BlocksOnConflict(),
		PreviewEnabled:  cfg.PreviewEnabled(),
		PreviewContext:  cfg.PreviewContextLines(),
	}
}

// SaveResult describes a completed save.
type SaveResult struct {
	// Line is the line that was edited or deleted.
	Line int

	// Changed is false when the edit matched the current content and
	// nothing was written.
	Changed bool

	// Backup is the backup file created before writing, if any.
	Backup string

	// Conflict reports that the file changed on disk since it was loaded
	// and was overwritten anyway.
	Conflict bool

	// DryRun reports that nothing was written.
	DryRun bool

	// Diff is the change as a unified diff. Set for dry runs only.
	Diff *diff.Diff
}

// Session is an open ignore file with a viewport over it.
type Session struct {
	opts     Options
	file     *buffer.FileContext
	view     navigate.Viewport
	window   buffer.Window
	snapshot *fsutil.Snapshot
	backups  *fsutil.BackupManager
	logger   *log.Logger

	editing int
	message string
	warning string
}

// Open loads opts.Path and positions the viewport on opts.Spec.
func Open(ctx context.Context, opts Options) (*Session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}

	file, err := buffer.Load(ctx, opts.Path)
	if err != nil {
		return nil, err
	}

	snapshot, err := fsutil.CaptureSnapshot(file.Path())
	if err != nil {
		return nil, fmt.Errorf("capture snapshot: %w", err)
	}

	view, err := initialViewport(opts, file.TotalLines())
	if err != nil {
		return nil, err
	}

	sess := &Session{
		opts:     opts,
		file:     file,
		view:     view,
		snapshot: snapshot,
		logger:   logger.With(logging.FieldPath, file.Path()),
	}

	if opts.Backups {
		var backupOpts []fsutil.BackupOption
		if opts.Clock != nil {
			backupOpts = append(backupOpts, fsutil.WithClock(opts.Clock))
		}
		sess.backups = fsutil.NewBackupManager(opts.MaxBackups, backupOpts...)
	}

	if err := sess.refresh(); err != nil {
		return nil, err
	}

	sess.logger.Debug("Opened file",
		logging.FieldTotalLines, file.TotalLines(),
		logging.FieldLineEnding, file.LineEnding(),
		logging.FieldStart, view.Start,
		logging.FieldEnd, view.End,
		logging.FieldReadOnly, opts.ReadOnly,
	)

	return sess, nil
}

func initialViewport(opts Options, total int) (navigate.Viewport, error) {
	start, end, err := navigate.Resolve(opts.Spec, total)
	if err != nil {
		return navigate.Viewport{}, err
	}

	view := navigate.NewViewport(start, end, total)

	switch spec := opts.Spec.(type) {
	case navigate.Single:
		view.Cursor = spec.Line
	case nil, navigate.All:
		if opts.Height > 0 {
			view = view.Resize(opts.Height)
		}
	}

	return view, nil
}

// Reload discards in-memory changes and reads the file again, keeping the
// cursor where the new file allows.
func (s *Session) Reload(ctx context.Context) error {
	file, err := buffer.Load(ctx, s.file.Path())
	if err != nil {
		return err
	}
	snapshot, err := fsutil.CaptureSnapshot(file.Path())
	if err != nil {
		return fmt.Errorf("capture snapshot: %w", err)
	}

	s.file = file
	s.snapshot = snapshot
	s.view = s.view.WithTotal(file.TotalLines())
	s.editing = 0
	s.setMessage("Reloaded from disk")

	return s.refresh()
}

// Path returns the absolute path of the open file.
func (s *Session) Path() string {
	return s.file.Path()
}

// File exposes the underlying buffer for read-only inspection.
func (s *Session) File() *buffer.FileContext {
	return s.file
}

// ReadOnly reports whether edits are rejected.
func (s *Session) ReadOnly() bool {
	return s.opts.ReadOnly
}

// Viewport returns the current viewport.
func (s *Session) Viewport() navigate.Viewport {
	return s.view
}

// Window returns the lines currently in view.
func (s *Session) Window() buffer.Window {
	return s.window
}

// Message returns the latest informational message.
func (s *Session) Message() string {
	return s.message
}

// Warning returns the latest warning, such as an overwritten external change.
func (s *Session) Warning() string {
	return s.warning
}

// Editing returns the line being edited, or 0.
func (s *Session) Editing() int {
	return s.editing
}

// Apply performs a navigation action.
func (s *Session) Apply(action navigate.Action) error {
	s.view = s.view.Apply(action)
	s.logger.Debug("Navigate", logging.FieldAction, action, logging.FieldCursor, s.view.Cursor)
	return s.refresh()
}

// JumpTo centers the window on line. An invalid line only sets a message.
func (s *Session) JumpTo(line int) error {
	view, message := s.view.JumpTo(line)
	s.view = view
	s.setMessage(message)
	return s.refresh()
}

// Resize fits the window to rows visible lines.
func (s *Session) Resize(rows int) error {
	s.view = s.view.Resize(rows)
	s.logger.Debug("Resize", logging.FieldHeight, rows)
	return s.refresh()
}

// CurrentLine returns the line under the cursor. It is false on an empty file.
func (s *Session) CurrentLine() (buffer.Line, bool) {
	return s.file.Line(s.view.Cursor)
}

// BeginEdit marks line n as being edited and returns its current content.
func (s *Session) BeginEdit(n int) (string, error) {
	if s.opts.ReadOnly {
		return "", ErrReadOnly
	}

	line, ok := s.file.Line(n)
	if !ok {
		return "", &buffer.LineOutOfBoundsError{Requested: n, Total: s.file.TotalLines()}
	}

	s.editing = n
	s.setMessage(fmt.Sprintf("Editing line %d", n))
	return line.Content, nil
}

// CancelEdit abandons the edit in progress, if any.
func (s *Session) CancelEdit() {
	if s.editing == 0 {
		return
	}
	s.editing = 0
	s.setMessage("Edit cancelled")
}

// Commit replaces line n with content and saves the file.
func (s *Session) Commit(ctx context.Context, n int, content string) (*SaveResult, error) {
	if s.opts.ReadOnly {
		return nil, ErrReadOnly
	}

	line, ok := s.file.Line(n)
	if !ok {
		return nil, &buffer.LineOutOfBoundsError{Requested: n, Total: s.file.TotalLines()}
	}

	s.editing = 0
	if line.Content == content {
		s.setMessage("No changes")
		return &SaveResult{Line: n}, nil
	}

	result, err := s.save(ctx, n, func() error {
		return s.file.UpdateLine(n, content)
	})
	if err != nil || result.DryRun {
		return result, err
	}

	updated, _ := s.file.Line(n)
	if updated.Pattern.Kind() == pattern.KindInvalid {
		s.setMessage(fmt.Sprintf("Saved line %d (not a valid fingerprint)", n))
	} else {
		s.setMessage(fmt.Sprintf("Saved line %d", n))
	}
	return result, nil
}

// Delete removes line n and saves the file. The viewport shrinks with the
// file.
func (s *Session) Delete(ctx context.Context, n int) (*SaveResult, error) {
	if s.opts.ReadOnly {
		return nil, ErrReadOnly
	}

	result, err := s.save(ctx, n, func() error {
		return s.file.DeleteLine(n)
	})
	if err != nil || result.DryRun {
		return result, err
	}

	s.view = s.view.WithTotal(s.file.TotalLines())
	if err := s.refresh(); err != nil {
		return nil, err
	}

	s.setMessage(fmt.Sprintf("Deleted line %d", n))
	return result, nil
}

// save applies mutate and persists the buffer:
//
//  1. Apply the change in memory.
//  2. Check for external modifications since load or the last save.
//  3. Create a backup (if enabled).
//  4. Write atomically.
//  5. Re-capture the snapshot and rebuild the window.
//
// A failure after step 1 leaves the change in memory; Reload discards it.
// In a dry run the diff is recorded after step 1 and the buffer is reloaded.
func (s *Session) save(ctx context.Context, n int, mutate func() error) (*SaveResult, error) {
	var before []string
	if s.opts.DryRun {
		before = contents(s.file)
	}
	if err := mutate(); err != nil {
		return nil, err
	}

	result := &SaveResult{Line: n, Changed: true}
	path := s.file.Path()

	if s.opts.DryRun {
		result.DryRun = true
		result.Diff = diff.Lines(filepath.Base(path), before, contents(s.file))
		if err := s.Reload(ctx); err != nil {
			return nil, err
		}
		s.setMessage(fmt.Sprintf("Dry run; line %d not saved", n))
		return result, nil
	}

	changed, err := s.snapshot.HasChanged()
	if err != nil {
		return nil, fmt.Errorf("check for external modifications: %w", err)
	}
	if changed {
		if s.opts.BlockOnConflict {
			s.warning = "File changed on disk; not saved"
			s.logger.Warn("Refusing to overwrite external modification",
				logging.FieldLine, n, logging.FieldStrict, true)
			return nil, fmt.Errorf("%w: %s", buffer.ErrConcurrentModification, path)
		}
		result.Conflict = true
		s.warning = "File changed on disk; overwrote external changes"
		s.logger.Warn("Overwriting external modification", logging.FieldLine, n)
	} else {
		s.warning = ""
	}

	if s.backups != nil {
		backup, err := s.backups.CreateBackup(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("create backup: %w", err)
		}
		result.Backup = backup
		if backup != "" {
			s.logger.Debug("Created backup", logging.FieldBackup, filepath.Base(backup))
		}
	}

	if err := s.file.WriteAtomic(ctx); err != nil {
		s.logger.Error("Save failed", logging.FieldLine, n, logging.FieldError, err)
		return nil, err
	}

	snapshot, err := fsutil.CaptureSnapshot(path)
	if err != nil {
		return nil, fmt.Errorf("capture snapshot: %w", err)
	}
	s.snapshot = snapshot

	s.logger.Info("Saved", logging.FieldLine, n, logging.FieldConflict, result.Conflict)

	return result, s.refresh()
}

// Preview loads the source excerpt for the fingerprint under the cursor.
// It returns nil without error when previews are disabled or the cursor is
// not on a fingerprint. A missing target file yields preview.ErrUnavailable.
func (s *Session) Preview(ctx context.Context) (*preview.Content, error) {
	if !s.opts.PreviewEnabled {
		return nil, nil
	}

	line, ok := s.CurrentLine()
	if !ok {
		return nil, nil
	}
	fp, ok := line.Pattern.(pattern.Fingerprint)
	if !ok {
		return nil, nil
	}

	content, err := preview.Load(ctx, fp, filepath.Dir(s.file.Path()), s.opts.PreviewContext)
	if err != nil {
		s.logger.Debug("Preview unavailable", logging.FieldTarget, fp.FilePath, logging.FieldError, err)
		return nil, err
	}

	s.logger.Debug("Preview loaded", logging.FieldTarget, content.Path, logging.FieldLanguage, content.Language)
	return content, nil
}

// Backups lists existing backups of the open file, oldest first.
func (s *Session) Backups() ([]fsutil.Backup, error) {
	manager := s.backups
	if manager == nil {
		manager = fsutil.NewBackupManager(s.opts.MaxBackups)
	}
	return manager.ListBackups(s.file.Path())
}

// RestoreLatest overwrites the file with its newest backup and reloads it.
// It returns the backup used, or "" when there is none.
func (s *Session) RestoreLatest(ctx context.Context) (string, error) {
	if s.opts.ReadOnly {
		return "", ErrReadOnly
	}

	manager := fsutil.NewBackupManager(s.opts.MaxBackups)
	restored, err := manager.RestoreLatest(ctx, s.file.Path())
	if err != nil {
		return "", err
	}
	if restored == "" {
		s.setMessage("No backups found")
		return "", nil
	}

	if err := s.Reload(ctx); err != nil {
		return "", err
	}

	s.logger.Info("Restored backup", logging.FieldBackup, filepath.Base(restored))
	s.setMessage("Restored " + filepath.Base(restored))
	return restored, nil
}

func contents(file *buffer.FileContext) []string {
	lines := file.Lines()
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line.Content
	}
	return out
}

func (s *Session) refresh() error {
	window, err := s.file.Window(s.view.Start, s.view.End)
	if err != nil {
		return fmt.Errorf("build window: %w", err)
	}
	s.window = window
	return nil
}

func (s *Session) setMessage(message string) {
	s.message = message
	s.logger.Debug(message)
}
