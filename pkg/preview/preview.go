// Package preview reads the source lines a fingerprint points at.
package preview

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/gliedit/pkg/fsutil"
	"github.com/yaklabco/gliedit/pkg/langdetect"
	"github.com/yaklabco/gliedit/pkg/pattern"
)

// DefaultContext is the number of lines shown on each side of the target.
const DefaultContext = 10

// ErrUnavailable indicates the target file is missing, unreadable or empty.
// A preview is optional; callers show nothing rather than failing.
var ErrUnavailable = errors.New("preview unavailable")

// Content is a slice of the target file around the fingerprinted line.
type Content struct {
	// Path is the file that was read.
	Path string

	// Language is the detected language tag, or "text".
	Language string

	// TargetLine is the fingerprint line clamped to the file.
	TargetLine int

	// StartLine is the 1-based number of Lines[0].
	StartLine int

	// Lines holds the excerpt without terminators.
	Lines []string
}

// EndLine returns the number of the last line in the excerpt.
func (c *Content) EndLine() int {
	return c.StartLine + len(c.Lines) - 1
}

// Load reads the file named by fp and returns the target line with
// contextLines lines on each side. Relative paths resolve against baseDir,
// which is normally the directory holding the ignore file.
func Load(ctx context.Context, fp pattern.Fingerprint, baseDir string, contextLines int) (*Content, error) {
	path := fp.FilePath
	if !filepath.IsAbs(path) && baseDir != "" {
		path = filepath.Join(baseDir, path)
	}

	data, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	lines := splitLines(data)
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrUnavailable, path)
	}

	contextLines = max(contextLines, 0)
	target := max(1, min(int(fp.LineNumber), len(lines)))
	start := max(1, target-contextLines)
	end := min(len(lines), target+contextLines)

	return &Content{
		Path:       path,
		Language:   langdetect.ForFile(path, data),
		TargetLine: target,
		StartLine:  start,
		Lines:      lines[start-1 : end],
	}, nil
}

func splitLines(data []byte) []string {
	var lines []string

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	// Lines after one longer than the scanner limit are dropped.
	return lines
}
