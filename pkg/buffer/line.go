package buffer

import "github.com/yaklabco/gliedit/pkg/pattern"

// Line is one physical line of the file.
type Line struct {
	// Number is the 1-based position of the line; always its index plus one.
	Number int

	// Content is the raw text without the line terminator.
	Content string

	// Pattern is the classification of Content.
	Pattern pattern.Pattern
}

// NewLine classifies content and returns the line at the given position.
func NewLine(number int, content string) Line {
	return Line{
		Number:  number,
		Content: content,
		Pattern: pattern.Classify(content),
	}
}

// Window is a contiguous, inclusive range of lines materialized for display.
// It is a copy; rebuilding it from the FileContext is the only way to refresh it.
type Window struct {
	// Start is the first line number (1-based, inclusive). Zero for an empty file.
	Start int

	// End is the last line number (1-based, inclusive). Zero for an empty file.
	End int

	// Lines holds the lines in [Start, End].
	Lines []Line
}

// Len returns the number of lines in the window.
func (w Window) Len() int {
	return len(w.Lines)
}

// Empty reports whether the window holds no lines.
func (w Window) Empty() bool {
	return len(w.Lines) == 0
}

// Contains reports whether line number n falls inside the window.
func (w Window) Contains(n int) bool {
	return !w.Empty() && n >= w.Start && n <= w.End
}

// Line returns line n if it falls inside the window.
func (w Window) Line(n int) (Line, bool) {
	if !w.Contains(n) {
		return Line{}, false
	}
	return w.Lines[n-w.Start], true
}
