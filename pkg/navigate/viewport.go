package navigate

import "fmt"

// ScrollMargin is how close the cursor may get to the window edge before a
// single-step scroll shifts the window.
const ScrollMargin = 3

// Viewport is the visible window plus the cursor. Height is End-Start, so a
// window showing ten lines has height nine.
//
// Methods never mutate the receiver; they return the next viewport. Every
// method is a no-op on an empty file (Total == 0).
type Viewport struct {
	Start  int
	End    int
	Cursor int
	Total  int
}

// NewViewport builds a viewport over lines start..end of a file with total
// lines, cursor on start. Bounds are clamped to the file.
func NewViewport(start, end, total int) Viewport {
	if total <= 0 {
		return Viewport{}
	}

	start = clamp(start, 1, total)
	end = clamp(end, start, total)
	return Viewport{Start: start, End: end, Cursor: start, Total: total}
}

// Height returns End-Start.
func (v Viewport) Height() int {
	return v.End - v.Start
}

// Empty reports whether the viewport covers no lines.
func (v Viewport) Empty() bool {
	return v.Total <= 0
}

// WithTotal adapts the viewport to a new line count, keeping its height
// where the file allows and keeping the cursor inside the window.
func (v Viewport) WithTotal(total int) Viewport {
	if total <= 0 {
		return Viewport{}
	}
	if v.Total <= 0 {
		return NewViewport(1, total, total)
	}

	v.Total = total
	next := v.place(v.Start, v.Height())
	next.Cursor = clamp(v.Cursor, next.Start, next.End)
	return next
}

// ScrollUp moves the cursor up one line, shifting the window when the cursor
// comes within ScrollMargin of its top and the window is not at line 1.
func (v Viewport) ScrollUp() Viewport {
	if v.Empty() || v.Cursor <= 1 {
		return v
	}

	next := v
	next.Cursor--
	if next.Cursor-next.Start < ScrollMargin && next.Start > 1 {
		next = next.place(next.Start-1, v.Height())
	}
	return next
}

// ScrollDown moves the cursor down one line, shifting the window when the
// cursor comes within ScrollMargin of its bottom and the window is not at
// the last line.
func (v Viewport) ScrollDown() Viewport {
	if v.Empty() || v.Cursor >= v.Total {
		return v
	}

	next := v
	next.Cursor++
	if next.End-next.Cursor < ScrollMargin && next.End < next.Total {
		next = next.place(next.Start+1, v.Height())
	}
	return next
}

// PageUp shifts the window up by its height. The cursor moves to the new
// window start.
func (v Viewport) PageUp() Viewport {
	if v.Empty() {
		return v
	}

	next := v.place(v.Start-v.Height(), v.Height())
	next.Cursor = next.Start
	return next
}

// PageDown shifts the window down by its height. The cursor moves to the new
// window start.
func (v Viewport) PageDown() Viewport {
	if v.Empty() {
		return v
	}

	next := v.place(v.Start+v.Height(), v.Height())
	next.Cursor = next.Start
	return next
}

// Top pins the window to the first line and puts the cursor there.
func (v Viewport) Top() Viewport {
	if v.Empty() {
		return v
	}

	next := v.place(1, v.Height())
	next.Cursor = 1
	return next
}

// Bottom pins the window to (Total-Height+1, Total) and puts the cursor on
// the last line. The start is clamped to [1, Total].
func (v Viewport) Bottom() Viewport {
	if v.Empty() {
		return v
	}

	next := v
	next.Start = clamp(v.Total-v.Height()+1, 1, v.Total)
	next.End = v.Total
	next.Cursor = v.Total
	return next
}

// JumpTo centers the window on line and moves the cursor to it. An invalid
// line leaves the viewport unchanged; the message says so either way.
func (v Viewport) JumpTo(line int) (Viewport, string) {
	if line < 1 || line > v.Total {
		return v, fmt.Sprintf("Invalid line number: %d", line)
	}

	return v.centerOn(line, v.Height()), fmt.Sprintf("Jumped to line %d", line)
}

// Resize fits the window to rows visible lines and re-centers it on the
// cursor. rows below 1 leave the viewport unchanged.
func (v Viewport) Resize(rows int) Viewport {
	if v.Empty() || rows < 1 {
		return v
	}

	return v.centerOn(clamp(v.Cursor, 1, v.Total), rows-1)
}

func (v Viewport) centerOn(line, height int) Viewport {
	next := v.place(line-height/2, height)
	next.Cursor = line
	return next
}

// place positions a window of the given height starting at start. Bounds are
// clamped to [1, Total] first; whichever bound was not pinned then moves to
// restore the height, as far as the file allows.
func (v Viewport) place(start, height int) Viewport {
	height = max(height, 0)

	start = clamp(start, 1, v.Total)
	end := start + height
	if end > v.Total {
		end = v.Total
		start = max(1, end-height)
	}

	v.Start = start
	v.End = end
	v.Cursor = clamp(v.Cursor, start, end)
	return v
}

func clamp(n, lo, hi int) int {
	return max(lo, min(n, hi))
}
