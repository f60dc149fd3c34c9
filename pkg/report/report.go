// Package report collects the result of checking an ignore file and renders
// it for machines.
package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/yaklabco/gliedit/pkg/buffer"
	"github.com/yaklabco/gliedit/pkg/config"
	"github.com/yaklabco/gliedit/pkg/pattern"
)

// ErrUnsupportedFormat is returned by New for formats without a renderer.
var ErrUnsupportedFormat = errors.New("unsupported report format")

// Finding is one line that is not a fingerprint, comment or blank line.
type Finding struct {
	Line    int    `json:"line"`
	Content string `json:"content"`
}

// Report is the outcome of checking one file.
type Report struct {
	Path    string         `json:"path"`
	Total   int            `json:"total"`
	Counts  map[string]int `json:"counts"`
	Invalid []Finding      `json:"invalid"`
}

// Build classifies every line of file.
func Build(file *buffer.FileContext) *Report {
	r := &Report{
		Path:    file.Path(),
		Total:   file.TotalLines(),
		Counts:  make(map[string]int),
		Invalid: []Finding{},
	}

	for kind, n := range file.Stats() {
		r.Counts[kind.String()] = n
	}
	for _, line := range file.Lines() {
		if line.Pattern.Kind() == pattern.KindInvalid {
			r.Invalid = append(r.Invalid, Finding{Line: line.Number, Content: line.Content})
		}
	}
	return r
}

// Clean reports whether no invalid lines were found.
func (r *Report) Clean() bool {
	return len(r.Invalid) == 0
}

// Renderer writes a report in one format.
type Renderer interface {
	Render(w io.Writer, r *Report) error
}

// Options configures New.
type Options struct {
	Format config.OutputFormat

	// Version is recorded as the tool version in SARIF output.
	Version string

	// Compact disables indentation.
	Compact bool
}

// New returns the renderer for opts.Format. Text output is styled for a
// terminal and lives with the CLI, so FormatText is unsupported here.
func New(opts Options) (Renderer, error) {
	switch opts.Format {
	case config.FormatJSON:
		return &JSONRenderer{compact: opts.Compact}, nil
	case config.FormatSARIF:
		return &SARIFRenderer{version: opts.Version, compact: opts.Compact}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, opts.Format)
	}
}
