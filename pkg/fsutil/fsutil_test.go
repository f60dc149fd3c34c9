package fsutil_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/yaklabco/gliedit/pkg/fsutil"
)

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("reads content and metadata", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".gitleaksignore")
		content := []byte("a.go:rule:1\n")
		if err := os.WriteFile(path, content, 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		got, info, err := fsutil.ReadFile(context.Background(), path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}

		if string(got) != string(content) {
			t.Errorf("content = %q, want %q", got, content)
		}
		if info.Path != path {
			t.Errorf("Path = %q, want %q", info.Path, path)
		}
		if info.Size != int64(len(content)) {
			t.Errorf("Size = %d, want %d", info.Size, len(content))
		}
		if info.Mode.Perm() != 0600 {
			t.Errorf("Mode = %o, want %o", info.Mode.Perm(), 0600)
		}
		if info.ModTime.IsZero() {
			t.Error("ModTime should be set")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), filepath.Join(t.TempDir(), "absent"))
		if !errors.Is(err, fsutil.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), t.TempDir())
		if !errors.Is(err, fsutil.ErrIsDirectory) {
			t.Errorf("error = %v, want ErrIsDirectory", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, _, err := fsutil.ReadFile(ctx, "whatever"); !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	})
}

func TestSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("unchanged file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "f")
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		snap, err := fsutil.CaptureSnapshot(path)
		if err != nil {
			t.Fatalf("CaptureSnapshot() error = %v", err)
		}

		changed, err := snap.HasChanged()
		if err != nil {
			t.Fatalf("HasChanged() error = %v", err)
		}
		if changed {
			t.Error("expected unchanged file")
		}
	})

	t.Run("touched file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "f")
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		snap, err := fsutil.CaptureSnapshot(path)
		if err != nil {
			t.Fatalf("CaptureSnapshot() error = %v", err)
		}

		later := snap.ModTime().Add(2 * time.Second)
		if err := os.Chtimes(path, later, later); err != nil {
			t.Fatalf("chtimes: %v", err)
		}

		changed, err := snap.HasChanged()
		if err != nil {
			t.Fatalf("HasChanged() error = %v", err)
		}
		if !changed {
			t.Error("expected changed file")
		}
	})

	t.Run("deleted file counts as changed", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "f")
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		snap, err := fsutil.CaptureSnapshot(path)
		if err != nil {
			t.Fatalf("CaptureSnapshot() error = %v", err)
		}
		if err := os.Remove(path); err != nil {
			t.Fatalf("remove: %v", err)
		}

		changed, err := snap.HasChanged()
		if err != nil {
			t.Fatalf("HasChanged() error = %v", err)
		}
		if !changed {
			t.Error("expected deleted file to count as changed")
		}
	})

	t.Run("missing file cannot be captured", func(t *testing.T) {
		t.Parallel()

		_, err := fsutil.CaptureSnapshot(filepath.Join(t.TempDir(), "absent"))
		if !errors.Is(err, fsutil.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("nil snapshot", func(t *testing.T) {
		t.Parallel()

		var snap *fsutil.Snapshot
		if _, err := snap.HasChanged(); !errors.Is(err, fsutil.ErrNilSnapshot) {
			t.Errorf("error = %v, want ErrNilSnapshot", err)
		}
	})
}
