// Package diff renders the change a pending edit would make as a unified
// diff.
package diff

import (
	"fmt"
	"strings"
)

// ContextLines is the number of unchanged lines kept around each change.
const ContextLines = 3

// Op is the kind of a diff line.
type Op int

const (
	// OpContext is an unchanged line.
	OpContext Op = iota

	// OpAdd is a line only present after the change.
	OpAdd

	// OpRemove is a line only present before the change.
	OpRemove
)

// Prefix returns the unified diff marker for op.
func (o Op) Prefix() string {
	switch o {
	case OpAdd:
		return "+"
	case OpRemove:
		return "-"
	default:
		return " "
	}
}

// Line is one line of a hunk.
type Line struct {
	Op   Op
	Text string
}

// Hunk is a contiguous group of changes with surrounding context.
// Start fields are 1-based.
type Hunk struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Lines    []Line
}

// Header returns the "@@ -a,b +c,d @@" line.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
}

// Diff is the difference between two versions of a file.
type Diff struct {
	Path    string
	Hunks   []Hunk
	Added   int
	Removed int
}

// Lines compares before and after line by line. It returns nil when they
// are equal.
func Lines(path string, before, after []string) *Diff {
	if equal(before, after) {
		return nil
	}

	ops := operations(before, after)
	d := &Diff{Path: path, Hunks: group(ops)}
	for _, op := range ops {
		switch op.Op {
		case OpAdd:
			d.Added++
		case OpRemove:
			d.Removed++
		}
	}
	return d
}

// HasChanges reports whether d holds at least one hunk.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// String returns the diff in unified format with a/ and b/ headers.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n+++ b/%s\n", path, path)
	for _, hunk := range d.Hunks {
		b.WriteString(hunk.Header())
		b.WriteByte('\n')
		for _, line := range hunk.Lines {
			b.WriteString(line.Op.Prefix())
			b.WriteString(line.Text)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// operations walks the longest common subsequence of before and after,
// emitting removals ahead of additions at each point of divergence.
func operations(before, after []string) []Line {
	common := lcsTable(before, after)

	var ops []Line
	i, j := 0, 0
	for i < len(before) && j < len(after) {
		switch {
		case before[i] == after[j]:
			ops = append(ops, Line{Op: OpContext, Text: before[i]})
			i++
			j++
		case common[i+1][j] >= common[i][j+1]:
			ops = append(ops, Line{Op: OpRemove, Text: before[i]})
			i++
		default:
			ops = append(ops, Line{Op: OpAdd, Text: after[j]})
			j++
		}
	}
	for ; i < len(before); i++ {
		ops = append(ops, Line{Op: OpRemove, Text: before[i]})
	}
	for ; j < len(after); j++ {
		ops = append(ops, Line{Op: OpAdd, Text: after[j]})
	}
	return ops
}

// lcsTable returns t where t[i][j] is the LCS length of before[i:] and
// after[j:].
func lcsTable(before, after []string) [][]int {
	t := make([][]int, len(before)+1)
	for i := range t {
		t[i] = make([]int, len(after)+1)
	}
	for i := len(before) - 1; i >= 0; i-- {
		for j := len(after) - 1; j >= 0; j-- {
			if before[i] == after[j] {
				t[i][j] = t[i+1][j+1] + 1
			} else {
				t[i][j] = max(t[i+1][j], t[i][j+1])
			}
		}
	}
	return t
}

// group splits ops into hunks. Changes separated by at most 2*ContextLines
// unchanged lines share a hunk.
func group(ops []Line) []Hunk {
	type span struct{ start, end int }

	var spans []span
	for i := 0; i < len(ops); {
		if ops[i].Op == OpContext {
			i++
			continue
		}
		start := i
		for i < len(ops) && ops[i].Op != OpContext {
			i++
		}
		if n := len(spans); n > 0 && start-spans[n-1].end <= 2*ContextLines {
			spans[n-1].end = i
		} else {
			spans = append(spans, span{start, i})
		}
	}

	hunks := make([]Hunk, 0, len(spans))
	for _, s := range spans {
		hunks = append(hunks, hunk(ops, max(0, s.start-ContextLines), min(len(ops), s.end+ContextLines)))
	}
	return hunks
}

func hunk(ops []Line, from, to int) Hunk {
	h := Hunk{OldStart: 1, NewStart: 1}
	for _, op := range ops[:from] {
		if op.Op != OpAdd {
			h.OldStart++
		}
		if op.Op != OpRemove {
			h.NewStart++
		}
	}

	h.Lines = ops[from:to]
	for _, op := range h.Lines {
		if op.Op != OpAdd {
			h.OldCount++
		}
		if op.Op != OpRemove {
			h.NewCount++
		}
	}

	// An empty side starts one line earlier in unified format.
	if h.OldCount == 0 {
		h.OldStart--
	}
	if h.NewCount == 0 {
		h.NewStart--
	}
	return h
}
