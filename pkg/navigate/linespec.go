// Package navigate computes which lines of a buffer are on screen.
//
// Everything here is pure arithmetic over line numbers: no I/O, no state
// beyond the values passed in. Line numbers are 1-based and windows are
// inclusive on both ends.
package navigate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/gliedit/pkg/buffer"
)

// DefaultContext is the number of lines shown on each side of a single
// line when the spec does not say otherwise.
const DefaultContext = 3

// LineSpec selects the initial window. It is one of All, Single or Range.
type LineSpec interface {
	lineSpec()
}

// All selects every line of the file.
type All struct{}

// Single selects one line plus Context lines on each side.
type Single struct {
	Line    int
	Context int
}

// Range selects lines Start through End.
type Range struct {
	Start int
	End   int
}

func (All) lineSpec()    {}
func (Single) lineSpec() {}
func (Range) lineSpec()  {}

// ParseLineSpec parses the line-spec mini-language:
//
//	"42"     line 42 with defaultContext lines of context
//	"42+5"   line 42 with 5 lines of context
//	"10-50"  lines 10 through 50
//
// An empty string selects All. Every failure wraps buffer.ErrInvalidArguments
// and names the offending substring.
func ParseLineSpec(s string, defaultContext int) (LineSpec, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return All{}, nil
	}

	if before, after, ok := strings.Cut(s, "-"); ok {
		start, err := parseNumber(before, "start line")
		if err != nil {
			return nil, err
		}
		end, err := parseNumber(after, "end line")
		if err != nil {
			return nil, err
		}
		if start > end {
			return nil, fmt.Errorf("%w: start line %d cannot be greater than end line %d",
				buffer.ErrInvalidArguments, start, end)
		}
		return Range{Start: start, End: end}, nil
	}

	if before, after, ok := strings.Cut(s, "+"); ok {
		line, err := parseNumber(before, "line number")
		if err != nil {
			return nil, err
		}
		context, err := parseNumber(after, "context")
		if err != nil {
			return nil, err
		}
		return Single{Line: line, Context: context}, nil
	}

	line, err := parseNumber(s, "line specification")
	if err != nil {
		return nil, err
	}

	if defaultContext < 0 {
		defaultContext = 0
	}
	return Single{Line: line, Context: defaultContext}, nil
}

func parseNumber(s, what string) (int, error) {
	n, err := strconv.ParseUint(s, 10, 31)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s: %q", buffer.ErrInvalidArguments, what, s)
	}
	return int(n), nil
}

// Resolve turns spec into an inclusive (start, end) window for a file of
// total lines. An empty file always resolves to (0, 0) without validation.
// A line or bound past the file returns a *buffer.LineOutOfBoundsError.
func Resolve(spec LineSpec, total int) (int, int, error) {
	if total <= 0 {
		return 0, 0, nil
	}

	switch s := spec.(type) {
	case nil, All:
		return 1, total, nil

	case Single:
		if s.Line < 1 || s.Line > total {
			return 0, 0, &buffer.LineOutOfBoundsError{Requested: s.Line, Total: total}
		}
		context := max(s.Context, 0)
		return max(1, s.Line-context), min(total, s.Line+context), nil

	case Range:
		if s.Start < 1 || s.Start > total {
			return 0, 0, &buffer.LineOutOfBoundsError{Requested: s.Start, Total: total}
		}
		if s.End > total {
			return 0, 0, &buffer.LineOutOfBoundsError{Requested: s.End, Total: total}
		}
		if s.Start > s.End {
			return 0, 0, fmt.Errorf("%w: start line %d cannot be greater than end line %d",
				buffer.ErrInvalidArguments, s.Start, s.End)
		}
		return s.Start, s.End, nil

	default:
		return 0, 0, fmt.Errorf("%w: unsupported line spec %T", buffer.ErrInvalidArguments, spec)
	}
}
