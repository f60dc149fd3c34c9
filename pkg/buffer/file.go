// Package buffer holds the in-memory model of a .gitleaksignore file: an
// ordered list of classified lines plus the metadata needed to write it back
// without changing anything the user did not touch.
package buffer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/yaklabco/gliedit/pkg/fsutil"
	"github.com/yaklabco/gliedit/pkg/pattern"
)

// FileContext owns every line of one file. Line numbers always equal index+1
// and TotalLines always equals the number of lines, including immediately
// after a delete.
//
// A FileContext is not safe for concurrent use; it belongs to one session.
type FileContext struct {
	path       string
	lines      []Line
	lineEnding LineEnding
	modTime    time.Time
	mode       os.FileMode
}

// Load reads path, classifies every line and detects the line ending style.
//
// Errors wrap ErrFileNotFound, ErrPermissionDenied or ErrInvalidEncoding when
// those conditions apply.
func Load(ctx context.Context, path string) (*FileContext, error) {
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		switch {
		case errors.Is(err, fsutil.ErrNotFound):
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		case errors.Is(err, fsutil.ErrPermissionDenied):
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		default:
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	if !utf8.Valid(content) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidEncoding, path)
	}

	text := string(content)
	ending := DetectLineEnding(text)
	raw := splitLines(text, ending)

	lines := make([]Line, len(raw))
	for i, entry := range raw {
		lines[i] = NewLine(i+1, entry)
	}

	return &FileContext{
		path:       info.Path,
		lines:      lines,
		lineEnding: ending,
		modTime:    info.ModTime,
		mode:       info.Mode,
	}, nil
}

// Path returns the absolute path of the file.
func (f *FileContext) Path() string {
	return f.path
}

// TotalLines returns the number of lines in the buffer.
func (f *FileContext) TotalLines() int {
	return len(f.lines)
}

// LineEnding returns the line ending detected at load time.
func (f *FileContext) LineEnding() LineEnding {
	return f.lineEnding
}

// ModTime returns the modification time captured at load or after the last
// successful write.
func (f *FileContext) ModTime() time.Time {
	return f.modTime
}

// Line returns the line at 1-based position n. The second result is false
// when n is 0 or greater than TotalLines.
func (f *FileContext) Line(n int) (Line, bool) {
	if n < 1 || n > len(f.lines) {
		return Line{}, false
	}
	return f.lines[n-1], true
}

// Lines returns a copy of every line.
func (f *FileContext) Lines() []Line {
	out := make([]Line, len(f.lines))
	copy(out, f.lines)
	return out
}

// Range returns a copy of lines start through end, inclusive.
//
// (0, 0) addresses an empty file and yields no lines. Otherwise a zero bound
// or start > end wraps ErrInvalidArguments, and a bound past TotalLines
// returns a *LineOutOfBoundsError.
func (f *FileContext) Range(start, end int) ([]Line, error) {
	if start == 0 && end == 0 {
		return []Line{}, nil
	}

	total := len(f.lines)
	if start < 1 || end < 1 {
		return nil, fmt.Errorf("%w: line numbers must be >= 1", ErrInvalidArguments)
	}
	if start > total {
		return nil, outOfBounds(start, total)
	}
	if end > total {
		return nil, outOfBounds(end, total)
	}
	if start > end {
		return nil, fmt.Errorf("%w: start line %d cannot be greater than end line %d",
			ErrInvalidArguments, start, end)
	}

	out := make([]Line, end-start+1)
	copy(out, f.lines[start-1:end])
	return out, nil
}

// Window materializes lines start through end for display.
func (f *FileContext) Window(start, end int) (Window, error) {
	lines, err := f.Range(start, end)
	if err != nil {
		return Window{}, err
	}
	return Window{Start: start, End: end, Lines: lines}, nil
}

// UpdateLine replaces the content of line n and reclassifies it. Content
// holding a CR or LF wraps ErrInvalidArguments and leaves the file as is.
func (f *FileContext) UpdateLine(n int, content string) error {
	if n < 1 || n > len(f.lines) {
		return outOfBounds(n, len(f.lines))
	}
	if strings.ContainsAny(content, "\r\n") {
		return fmt.Errorf("%w: line content must not contain a line break", ErrInvalidArguments)
	}
	f.lines[n-1] = NewLine(n, content)
	return nil
}

// DeleteLine removes line n and renumbers every line after it.
func (f *FileContext) DeleteLine(n int) error {
	if n < 1 || n > len(f.lines) {
		return outOfBounds(n, len(f.lines))
	}

	f.lines = append(f.lines[:n-1], f.lines[n:]...)
	for i := n - 1; i < len(f.lines); i++ {
		f.lines[i].Number = i + 1
	}
	return nil
}

// Bytes serializes the buffer, terminating every line with the detected
// line ending.
func (f *FileContext) Bytes() []byte {
	term := f.lineEnding.Terminator()

	var builder strings.Builder
	for _, line := range f.lines {
		builder.WriteString(line.Content)
		builder.WriteString(term)
	}
	return []byte(builder.String())
}

// WriteAtomic replaces the file on disk with the buffer content via a temp
// file in the same directory and a rename. Observers see either the old or
// the new file, never a partial one. On success the stored modification time
// is refreshed. Every failure wraps ErrWriteFailure and leaves the original
// file untouched.
func (f *FileContext) WriteAtomic(ctx context.Context) error {
	dir := filepath.Dir(f.path)
	if f.path == "" || dir == f.path {
		return fmt.Errorf("%w: invalid file path %q", ErrWriteFailure, f.path)
	}

	if err := fsutil.WriteAtomic(ctx, f.path, f.Bytes(), f.mode); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}

	if err := f.RefreshMetadata(); err != nil {
		return fmt.Errorf("refresh metadata: %w", err)
	}
	return nil
}

// RefreshMetadata re-reads the modification time from disk.
func (f *FileContext) RefreshMetadata() error {
	info, err := fsutil.Stat(f.path)
	if err != nil {
		return err
	}
	f.modTime = info.ModTime
	return nil
}

// CheckForExternalModifications reports whether the file on disk changed
// since it was loaded or last written. This is a warning signal, not an error.
func (f *FileContext) CheckForExternalModifications() (bool, error) {
	return fsutil.ModifiedSince(f.path, f.modTime)
}

// Stats counts lines by pattern kind.
func (f *FileContext) Stats() map[pattern.Kind]int {
	stats := make(map[pattern.Kind]int, 4)
	for _, line := range f.lines {
		stats[line.Pattern.Kind()]++
	}
	return stats
}
