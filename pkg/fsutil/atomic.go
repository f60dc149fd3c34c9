package fsutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultFileMode is the permission mode used when none is given.
const DefaultFileMode os.FileMode = 0644

// ErrNoParentDirectory is returned when the target path has no parent
// directory to hold the temporary file.
var ErrNoParentDirectory = errors.New("path has no parent directory")

// WriteError reports the step of an atomic write that failed. The target
// file is untouched whenever a WriteError is returned.
type WriteError struct {
	// Op is one of "create temp", "write", "sync", "close", "chmod", "rename".
	Op   string
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// WriteAtomic replaces path with content. The data goes to a hidden temp file
// next to the target, is synced, gets mode (DefaultFileMode when 0) and is
// renamed over path. Readers see the old file or the new one, never a mix.
// The temp file is removed on every failure.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write atomic: %w", err)
	}

	if mode == 0 {
		mode = DefaultFileMode
	}

	dir, base := filepath.Split(path)
	if base == "" {
		return fmt.Errorf("%w: %q", ErrNoParentDirectory, path)
	}
	if dir == "" {
		dir = "."
	}

	// Same directory as the target so the rename never crosses filesystems.
	tmp, err := os.CreateTemp(dir, "."+base+".tmp.*")
	if err != nil {
		return &WriteError{Op: "create temp", Path: path, Err: err}
	}

	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	steps := []struct {
		op  string
		run func() error
	}{
		{"write", func() error { _, err := tmp.Write(content); return err }},
		{"sync", tmp.Sync},
		{"close", tmp.Close},
		{"chmod", func() error { return os.Chmod(tmp.Name(), mode.Perm()) }},
		{"rename", func() error { return os.Rename(tmp.Name(), path) }},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			return &WriteError{Op: step.op, Path: path, Err: err}
		}
	}

	committed = true
	return nil
}

// WriteAtomicIfChanged is WriteAtomic that skips the write when path already
// holds content. It reports whether the file was written.
func WriteAtomicIfChanged(ctx context.Context, path string, content []byte, mode os.FileMode) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("write atomic: %w", err)
	}

	existing, err := os.ReadFile(path)
	switch {
	case err == nil && bytes.Equal(existing, content):
		return false, nil
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return false, fmt.Errorf("read existing %s: %w", path, err)
	}

	if err := WriteAtomic(ctx, path, content, mode); err != nil {
		return false, err
	}
	return true, nil
}
