package session_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gliedit/internal/logging"
	"github.com/yaklabco/gliedit/internal/session"
	"github.com/yaklabco/gliedit/pkg/buffer"
	"github.com/yaklabco/gliedit/pkg/config"
	"github.com/yaklabco/gliedit/pkg/navigate"
	"github.com/yaklabco/gliedit/pkg/preview"
)

func ignoreFile(t *testing.T, lines int) string {
	t.Helper()

	var b strings.Builder
	for i := 1; i <= lines; i++ {
		fmt.Fprintf(&b, "src/file%d.go:generic-api-key:%d\n", i, i)
	}

	path := filepath.Join(t.TempDir(), ".gitleaksignore")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))
	return path
}

func open(t *testing.T, opts session.Options) *session.Session {
	t.Helper()

	if opts.Logger == nil {
		opts.Logger = logging.NewWithWriter(io.Discard, "error")
	}
	sess, err := session.Open(context.Background(), opts)
	require.NoError(t, err)
	return sess
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// touch moves the file's mtime forward as another process writing it would.
func touch(t *testing.T, path string) {
	t.Helper()

	later := time.Now().Add(3 * time.Second)
	require.NoError(t, os.Chtimes(path, later, later))
}

func TestOpen_InitialWindow(t *testing.T) {
	t.Parallel()

	path := ignoreFile(t, 100)

	tests := []struct {
		name       string
		spec       navigate.LineSpec
		height     int
		start, end int
		cursor     int
	}{
		{"whole file", nil, 0, 1, 100, 1},
		{"whole file fitted to height", navigate.All{}, 20, 1, 20, 1},
		{"single line", navigate.Single{Line: 50, Context: 3}, 20, 47, 53, 50},
		{"range", navigate.Range{Start: 10, End: 30}, 5, 10, 30, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sess := open(t, session.Options{Path: path, Spec: tt.spec, Height: tt.height})

			view := sess.Viewport()
			assert.Equal(t, tt.start, view.Start)
			assert.Equal(t, tt.end, view.End)
			assert.Equal(t, tt.cursor, view.Cursor)

			window := sess.Window()
			assert.Equal(t, tt.end-tt.start+1, window.Len())
			assert.Equal(t, tt.start, window.Lines[0].Number)
		})
	}
}

func TestOpen_Errors(t *testing.T) {
	t.Parallel()

	path := ignoreFile(t, 5)

	_, err := session.Open(context.Background(), session.Options{
		Path:   filepath.Join(t.TempDir(), "missing"),
		Logger: logging.NewWithWriter(io.Discard, "error"),
	})
	require.ErrorIs(t, err, buffer.ErrFileNotFound)

	_, err = session.Open(context.Background(), session.Options{
		Path:   path,
		Spec:   navigate.Single{Line: 9},
		Logger: logging.NewWithWriter(io.Discard, "error"),
	})
	var oob *buffer.LineOutOfBoundsError
	require.ErrorAs(t, err, &oob)
	assert.Equal(t, 9, oob.Requested)
	assert.Equal(t, 5, oob.Total)
}

func TestOpen_EmptyFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".gitleaksignore")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	sess := open(t, session.Options{Path: path, Height: 10})
	assert.True(t, sess.Window().Empty())

	_, ok := sess.CurrentLine()
	assert.False(t, ok)

	require.NoError(t, sess.Apply(navigate.ActionPageDown))
	assert.True(t, sess.Viewport().Empty())
}

func TestNavigation(t *testing.T) {
	t.Parallel()

	sess := open(t, session.Options{Path: ignoreFile(t, 100), Height: 10})

	require.NoError(t, sess.Apply(navigate.ActionBottom))
	assert.Equal(t, 100, sess.Viewport().Cursor)
	assert.Equal(t, 92, sess.Window().Start)
	assert.Equal(t, 100, sess.Window().End)

	require.NoError(t, sess.JumpTo(50))
	assert.Equal(t, "Jumped to line 50", sess.Message())
	line, ok := sess.CurrentLine()
	require.True(t, ok)
	assert.Equal(t, "src/file50.go:generic-api-key:50", line.Content)

	require.NoError(t, sess.JumpTo(500))
	assert.Equal(t, "Invalid line number: 500", sess.Message())
	assert.Equal(t, 50, sess.Viewport().Cursor)

	require.NoError(t, sess.Resize(4))
	assert.Equal(t, 4, sess.Window().Len())
	assert.True(t, sess.Window().Contains(50))
}

func TestCommit(t *testing.T) {
	t.Parallel()

	path := ignoreFile(t, 3)
	sess := open(t, session.Options{Path: path})

	content, err := sess.BeginEdit(2)
	require.NoError(t, err)
	assert.Equal(t, "src/file2.go:generic-api-key:2", content)
	assert.Equal(t, 2, sess.Editing())

	result, err := sess.Commit(context.Background(), 2, "# rotated")
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.False(t, result.Conflict)
	assert.Empty(t, result.Backup)
	assert.Equal(t, 0, sess.Editing())
	assert.Equal(t, "Saved line 2", sess.Message())

	assert.Equal(t,
		"src/file1.go:generic-api-key:1\n# rotated\nsrc/file3.go:generic-api-key:3\n",
		readFile(t, path))
	assert.Equal(t, "# rotated", sess.Window().Lines[1].Content)

	// A second save must not see its own write as an external change.
	result, err = sess.Commit(context.Background(), 1, "# first")
	require.NoError(t, err)
	assert.False(t, result.Conflict)
}

func TestCommit_Unchanged(t *testing.T) {
	t.Parallel()

	path := ignoreFile(t, 2)
	before, err := os.Stat(path)
	require.NoError(t, err)

	sess := open(t, session.Options{Path: path, Backups: true})
	result, err := sess.Commit(context.Background(), 1, "src/file1.go:generic-api-key:1")
	require.NoError(t, err)
	assert.False(t, result.Changed)
	assert.Equal(t, "No changes", sess.Message())

	after, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime())

	backups, err := sess.Backups()
	require.NoError(t, err)
	assert.Empty(t, backups)
}

func TestCommit_InvalidContentIsSaved(t *testing.T) {
	t.Parallel()

	path := ignoreFile(t, 1)
	sess := open(t, session.Options{Path: path})

	_, err := sess.Commit(context.Background(), 1, "not a record")
	require.NoError(t, err)
	assert.Contains(t, sess.Message(), "not a valid fingerprint")
	assert.Equal(t, "not a record\n", readFile(t, path))
}

func TestCommit_RejectsLineBreaks(t *testing.T) {
	t.Parallel()

	path := ignoreFile(t, 2)
	before := readFile(t, path)
	sess := open(t, session.Options{Path: path, Backups: true})

	_, err := sess.Commit(context.Background(), 1, "a\nb")
	require.ErrorIs(t, err, buffer.ErrInvalidArguments)
	assert.Equal(t, before, readFile(t, path))
	assert.Equal(t, 2, sess.File().TotalLines())

	backups, err := filepath.Glob(path + ".backup.*")
	require.NoError(t, err)
	assert.Empty(t, backups)
}

func TestCommit_OutOfBounds(t *testing.T) {
	t.Parallel()

	sess := open(t, session.Options{Path: ignoreFile(t, 2)})

	_, err := sess.Commit(context.Background(), 3, "x")
	require.ErrorIs(t, err, buffer.ErrLineOutOfBounds)

	_, err = sess.BeginEdit(0)
	require.ErrorIs(t, err, buffer.ErrLineOutOfBounds)
}

func TestCommit_Backups(t *testing.T) {
	t.Parallel()

	path := ignoreFile(t, 2)
	original := readFile(t, path)

	tick := int64(1700000000)
	sess := open(t, session.Options{
		Path:       path,
		Backups:    true,
		MaxBackups: 2,
		Clock: func() time.Time {
			tick++
			return time.Unix(tick, 0)
		},
	})

	result, err := sess.Commit(context.Background(), 1, "# one")
	require.NoError(t, err)
	assert.Equal(t, sess.Path()+".backup.1700000001", result.Backup)
	assert.Equal(t, original, readFile(t, result.Backup))

	for i := range 3 {
		_, err := sess.Commit(context.Background(), 1, fmt.Sprintf("# edit %d", i))
		require.NoError(t, err)
	}

	backups, err := sess.Backups()
	require.NoError(t, err)
	assert.Len(t, backups, 2)
}

func TestCommit_ExternalModification(t *testing.T) {
	t.Parallel()

	t.Run("last writer wins with a warning", func(t *testing.T) {
		t.Parallel()

		path := ignoreFile(t, 2)
		sess := open(t, session.Options{Path: path})
		touch(t, path)

		result, err := sess.Commit(context.Background(), 1, "# mine")
		require.NoError(t, err)
		assert.True(t, result.Conflict)
		assert.NotEmpty(t, sess.Warning())
		assert.True(t, strings.HasPrefix(readFile(t, path), "# mine\n"))

		// The conflict is resolved by the write.
		result, err = sess.Commit(context.Background(), 2, "# again")
		require.NoError(t, err)
		assert.False(t, result.Conflict)
		assert.Empty(t, sess.Warning())
	})

	t.Run("strict mode refuses", func(t *testing.T) {
		t.Parallel()

		path := ignoreFile(t, 2)
		sess := open(t, session.Options{Path: path, BlockOnConflict: true})
		touch(t, path)
		before := readFile(t, path)

		_, err := sess.Commit(context.Background(), 1, "# mine")
		require.ErrorIs(t, err, buffer.ErrConcurrentModification)
		assert.Equal(t, before, readFile(t, path))

		require.NoError(t, sess.Reload(context.Background()))
		line, ok := sess.File().Line(1)
		require.True(t, ok)
		assert.Equal(t, "src/file1.go:generic-api-key:1", line.Content)

		_, err = sess.Commit(context.Background(), 1, "# mine")
		require.NoError(t, err)
	})

	t.Run("deleted file is recreated", func(t *testing.T) {
		t.Parallel()

		path := ignoreFile(t, 1)
		sess := open(t, session.Options{Path: path, Backups: true})
		require.NoError(t, os.Remove(path))

		result, err := sess.Commit(context.Background(), 1, "# back")
		require.NoError(t, err)
		assert.True(t, result.Conflict)
		assert.Empty(t, result.Backup)
		assert.Equal(t, "# back\n", readFile(t, path))
	})
}

func TestDelete(t *testing.T) {
	t.Parallel()

	path := ignoreFile(t, 100)
	sess := open(t, session.Options{Path: path, Height: 10})
	require.NoError(t, sess.Apply(navigate.ActionBottom))

	result, err := sess.Delete(context.Background(), 100)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, "Deleted line 100", sess.Message())

	view := sess.Viewport()
	assert.Equal(t, 99, view.Total)
	assert.Equal(t, 99, view.End)
	assert.Equal(t, 99, view.Cursor)
	assert.Equal(t, 9, sess.Window().Len())

	assert.Equal(t, 99, strings.Count(readFile(t, path), "\n"))

	_, err = sess.Delete(context.Background(), 100)
	require.ErrorIs(t, err, buffer.ErrLineOutOfBounds)
}

func TestDelete_LastLine(t *testing.T) {
	t.Parallel()

	path := ignoreFile(t, 1)
	sess := open(t, session.Options{Path: path})

	_, err := sess.Delete(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, sess.Window().Empty())
	assert.Empty(t, readFile(t, path))
}

func TestDryRun(t *testing.T) {
	t.Parallel()

	path := ignoreFile(t, 5)
	original := readFile(t, path)
	sess := open(t, session.Options{Path: path, DryRun: true, Backups: true})

	result, err := sess.Commit(context.Background(), 2, "# rotated")
	require.NoError(t, err)
	assert.True(t, result.DryRun)
	require.NotNil(t, result.Diff)
	assert.Equal(t, 1, result.Diff.Added)
	assert.Equal(t, 1, result.Diff.Removed)
	assert.Contains(t, result.Diff.String(), "-src/file2.go:generic-api-key:2\n+# rotated\n")
	assert.Equal(t, "Dry run; line 2 not saved", sess.Message())

	line, ok := sess.File().Line(2)
	require.True(t, ok)
	assert.Equal(t, "src/file2.go:generic-api-key:2", line.Content)

	result, err = sess.Delete(context.Background(), 5)
	require.NoError(t, err)
	assert.Contains(t, result.Diff.String(), "@@ -2,4 +2,3 @@")
	assert.Equal(t, 5, sess.Viewport().Total)

	assert.Equal(t, original, readFile(t, path))
	backups, err := sess.Backups()
	require.NoError(t, err)
	assert.Empty(t, backups)
}

func TestReadOnly(t *testing.T) {
	t.Parallel()

	path := ignoreFile(t, 2)
	before := readFile(t, path)
	sess := open(t, session.Options{Path: path, ReadOnly: true})
	assert.True(t, sess.ReadOnly())

	_, err := sess.BeginEdit(1)
	require.ErrorIs(t, err, session.ErrReadOnly)
	_, err = sess.Commit(context.Background(), 1, "# x")
	require.ErrorIs(t, err, session.ErrReadOnly)
	_, err = sess.Delete(context.Background(), 1)
	require.ErrorIs(t, err, session.ErrReadOnly)
	_, err = sess.RestoreLatest(context.Background())
	require.ErrorIs(t, err, session.ErrReadOnly)

	assert.Equal(t, before, readFile(t, path))
}

func TestCancelEdit(t *testing.T) {
	t.Parallel()

	sess := open(t, session.Options{Path: ignoreFile(t, 2)})

	sess.CancelEdit()
	assert.Empty(t, sess.Message())

	_, err := sess.BeginEdit(2)
	require.NoError(t, err)
	sess.CancelEdit()
	assert.Equal(t, 0, sess.Editing())
	assert.Equal(t, "Edit cancelled", sess.Message())
}

func TestRestoreLatest(t *testing.T) {
	t.Parallel()

	path := ignoreFile(t, 2)
	original := readFile(t, path)
	sess := open(t, session.Options{Path: path, Backups: true})

	restored, err := sess.RestoreLatest(context.Background())
	require.NoError(t, err)
	assert.Empty(t, restored)
	assert.Equal(t, "No backups found", sess.Message())

	_, err = sess.Commit(context.Background(), 1, "# changed")
	require.NoError(t, err)

	restored, err = sess.RestoreLatest(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, restored)
	assert.Equal(t, original, readFile(t, path))

	line, ok := sess.File().Line(1)
	require.True(t, ok)
	assert.Equal(t, "src/file1.go:generic-api-key:1", line.Content)
}

func TestPreview(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "app.py"),
		[]byte("import os\nTOKEN = 'abc'\nprint(TOKEN)\n"), 0644))

	path := filepath.Join(dir, ".gitleaksignore")
	require.NoError(t, os.WriteFile(path,
		[]byte("# header\nsrc/app.py:generic-api-key:2\nsrc/gone.py:generic-api-key:1\n"), 0644))

	sess := open(t, session.Options{Path: path, PreviewEnabled: true, PreviewContext: 1})
	ctx := context.Background()

	content, err := sess.Preview(ctx)
	require.NoError(t, err)
	assert.Nil(t, content, "comment line has no preview")

	require.NoError(t, sess.JumpTo(2))
	content, err = sess.Preview(ctx)
	require.NoError(t, err)
	require.NotNil(t, content)
	assert.Equal(t, 2, content.TargetLine)
	assert.Equal(t, []string{"import os", "TOKEN = 'abc'", "print(TOKEN)"}, content.Lines)
	assert.Equal(t, "python", content.Language)

	require.NoError(t, sess.JumpTo(3))
	_, err = sess.Preview(ctx)
	require.ErrorIs(t, err, preview.ErrUnavailable)

	disabled := open(t, session.Options{Path: path, Spec: navigate.Single{Line: 2}})
	content, err = disabled.Preview(ctx)
	require.NoError(t, err)
	assert.Nil(t, content)
}

func TestOptionsFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.ReadOnly = config.Bool(true)
	cfg.Backups.MaxBackups = 9

	opts := session.OptionsFromConfig(cfg, "/repo/.gitleaksignore")
	assert.Equal(t, "/repo/.gitleaksignore", opts.Path)
	assert.True(t, opts.ReadOnly)
	assert.True(t, opts.Backups)
	assert.Equal(t, 9, opts.MaxBackups)
	assert.False(t, opts.BlockOnConflict)
	assert.True(t, opts.PreviewEnabled)
	assert.Equal(t, config.DefaultPreviewContext, opts.PreviewContext)
}

func TestOpen_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := session.Open(ctx, session.Options{
		Path:   ignoreFile(t, 1),
		Logger: logging.NewWithWriter(io.Discard, "error"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
