// Package fsutil provides file system safety primitives for gliedit.
// It handles atomic writes, timestamped backups, and external modification
// detection.
package fsutil

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNilSnapshot is returned when a nil Snapshot is used.
	ErrNilSnapshot = errors.New("nil snapshot")

	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")
)

// FileInfo captures the state of a file at the moment it was read.
type FileInfo struct {
	// Path is the absolute path to the file.
	Path string

	// Mode is the file's permission and mode bits.
	Mode os.FileMode

	// ModTime is the file's modification time.
	ModTime time.Time

	// Size is the file size in bytes.
	Size int64
}

// ReadFile reads a whole file and returns its content along with metadata.
// The path is resolved to an absolute path first.
func ReadFile(ctx context.Context, path string) ([]byte, *FileInfo, error) {
	select {
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("read file: %w", ctx.Err())
	default:
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	stat, err := os.Stat(absPath)
	if err != nil {
		return nil, nil, classifyStatError(absPath, err)
	}

	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, absPath)
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		if os.IsPermission(err) {
			return nil, nil, fmt.Errorf("%w: %s: %w", ErrPermissionDenied, absPath, err)
		}
		return nil, nil, fmt.Errorf("read %s: %w", absPath, err)
	}

	info := &FileInfo{
		Path:    absPath,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
	}

	return content, info, nil
}

// Stat returns the current metadata of path.
func Stat(path string) (*FileInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, classifyStatError(path, err)
	}
	return &FileInfo{
		Path:    path,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
	}, nil
}

func classifyStatError(path string, err error) error {
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	}
	if os.IsPermission(err) {
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	}
	return fmt.Errorf("stat %s: %w", path, err)
}

// Snapshot is an immutable record of a file's modification time, used to
// detect edits made by another process before a save commits.
type Snapshot struct {
	path    string
	modTime time.Time
}

// CaptureSnapshot records the current modification time of path.
func CaptureSnapshot(path string) (*Snapshot, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	info, err := Stat(absPath)
	if err != nil {
		return nil, err
	}

	return &Snapshot{path: absPath, modTime: info.ModTime}, nil
}

// Path returns the absolute path the snapshot was taken of.
func (s *Snapshot) Path() string {
	return s.path
}

// ModTime returns the captured modification time.
func (s *Snapshot) ModTime() time.Time {
	return s.modTime
}

// HasChanged re-stats the file and reports whether its modification time
// differs from the captured one. A file that no longer exists has changed.
func (s *Snapshot) HasChanged() (bool, error) {
	if s == nil {
		return false, ErrNilSnapshot
	}
	return ModifiedSince(s.path, s.modTime)
}

// ModifiedSince reports whether the modification time of path differs from
// modTime. A missing file counts as modified.
func ModifiedSince(path string, modTime time.Time) (bool, error) {
	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	return !stat.ModTime().Equal(modTime), nil
}
