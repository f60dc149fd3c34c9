package fsutil_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/gliedit/pkg/fsutil"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	t.Run("replaces existing ignore file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, ".gitleaksignore")
		if err := os.WriteFile(path, []byte("old:rule:1\n"), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		content := []byte("new:rule:2\n")
		if err := fsutil.WriteAtomic(context.Background(), path, content, 0644); err != nil {
			t.Fatalf("WriteAtomic() error = %v", err)
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read back: %v", err)
		}
		if string(got) != string(content) {
			t.Errorf("content = %q, want %q", got, content)
		}
	})

	t.Run("applies requested mode", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "private")
		if err := fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0600); err != nil {
			t.Fatalf("WriteAtomic() error = %v", err)
		}

		stat, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if got := stat.Mode().Perm(); got != 0600 {
			t.Errorf("mode = %o, want %o", got, 0600)
		}
	})

	t.Run("zero mode falls back to default", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "default")
		if err := fsutil.WriteAtomic(context.Background(), path, nil, 0); err != nil {
			t.Fatalf("WriteAtomic() error = %v", err)
		}

		stat, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if got := stat.Mode().Perm(); got != fsutil.DefaultFileMode {
			t.Errorf("mode = %o, want %o", got, fsutil.DefaultFileMode)
		}
		if stat.Size() != 0 {
			t.Errorf("size = %d, want 0", stat.Size())
		}
	})

	t.Run("cancelled context leaves no file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "never")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if err := fsutil.WriteAtomic(ctx, path, []byte("content"), 0644); err == nil {
			t.Fatal("expected error for cancelled context")
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("file should not have been created")
		}
	})

	t.Run("root path has no parent directory", func(t *testing.T) {
		t.Parallel()

		err := fsutil.WriteAtomic(context.Background(), string(filepath.Separator), []byte("x"), 0644)
		if !errors.Is(err, fsutil.ErrNoParentDirectory) {
			t.Fatalf("error = %v, want ErrNoParentDirectory", err)
		}
	})

	t.Run("missing directory fails without leftovers", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "missing", "file")

		err := fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0644)
		var writeErr *fsutil.WriteError
		if !errors.As(err, &writeErr) || writeErr.Op != "create temp" {
			t.Fatalf("error = %v, want create temp WriteError", err)
		}
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("error = %v, want wrapped ErrNotExist", err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("readdir: %v", err)
		}
		for _, entry := range entries {
			if strings.Contains(entry.Name(), ".tmp.") {
				t.Errorf("temp file left behind: %s", entry.Name())
			}
		}
	})

	t.Run("failed rename keeps original content", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		// A non-empty directory cannot be replaced by a rename.
		target := filepath.Join(dir, "target")
		if err := os.MkdirAll(filepath.Join(target, "child"), 0755); err != nil {
			t.Fatalf("setup: %v", err)
		}

		err := fsutil.WriteAtomic(context.Background(), target, []byte("x"), 0644)
		var writeErr *fsutil.WriteError
		if !errors.As(err, &writeErr) {
			t.Fatalf("error = %v, want *WriteError", err)
		}
		if writeErr.Op != "rename" || writeErr.Path != target {
			t.Errorf("WriteError = {%q, %q}, want {rename, %q}", writeErr.Op, writeErr.Path, target)
		}

		if _, err := os.Stat(filepath.Join(target, "child")); err != nil {
			t.Errorf("original directory disturbed: %v", err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("readdir: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("expected only the target to remain, got %d entries", len(entries))
		}
	})
}

func TestWriteAtomicIfChanged(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		existing    *string
		content     string
		wantChanged bool
	}{
		{name: "creates missing file", existing: nil, content: "a", wantChanged: true},
		{name: "skips identical content", existing: ptr("a"), content: "a", wantChanged: false},
		{name: "writes different content", existing: ptr("a"), content: "b", wantChanged: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "file")
			if tt.existing != nil {
				if err := os.WriteFile(path, []byte(*tt.existing), 0644); err != nil {
					t.Fatalf("setup: %v", err)
				}
			}

			changed, err := fsutil.WriteAtomicIfChanged(context.Background(), path, []byte(tt.content), 0644)
			if err != nil {
				t.Fatalf("WriteAtomicIfChanged() error = %v", err)
			}
			if changed != tt.wantChanged {
				t.Errorf("changed = %v, want %v", changed, tt.wantChanged)
			}

			got, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read back: %v", err)
			}
			if string(got) != tt.content {
				t.Errorf("content = %q, want %q", got, tt.content)
			}
		})
	}
}

func ptr[T any](v T) *T {
	return &v
}
