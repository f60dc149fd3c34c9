package navigate_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/yaklabco/gliedit/pkg/buffer"
	"github.com/yaklabco/gliedit/pkg/navigate"
)

func TestParseLineSpec(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  navigate.LineSpec
	}{
		{"", navigate.All{}},
		{"  ", navigate.All{}},
		{"42", navigate.Single{Line: 42, Context: 3}},
		{" 7 ", navigate.Single{Line: 7, Context: 3}},
		{"42+5", navigate.Single{Line: 42, Context: 5}},
		{"42+0", navigate.Single{Line: 42, Context: 0}},
		{"10-50", navigate.Range{Start: 10, End: 50}},
		{"5-5", navigate.Range{Start: 5, End: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := navigate.ParseLineSpec(tt.input, 3)
			if err != nil {
				t.Fatalf("ParseLineSpec(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseLineSpec(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseLineSpec_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input     string
		offending string
	}{
		{"abc", `"abc"`},
		{"50-10", "cannot be greater"},
		{"-5", `""`},
		{"5-", `""`},
		{"x-5", `"x"`},
		{"5-y", `"y"`},
		{"4+", `""`},
		{"+4", `""`},
		{"4+z", `"z"`},
		{"1.5", `"1.5"`},
		{"99999999999", `"99999999999"`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			_, err := navigate.ParseLineSpec(tt.input, 3)
			if !errors.Is(err, buffer.ErrInvalidArguments) {
				t.Fatalf("ParseLineSpec(%q) error = %v, want ErrInvalidArguments", tt.input, err)
			}
			if !strings.Contains(err.Error(), tt.offending) {
				t.Errorf("error %q should mention %s", err, tt.offending)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		spec      navigate.LineSpec
		total     int
		wantStart int
		wantEnd   int
	}{
		{"all", navigate.All{}, 20, 1, 20},
		{"nil is all", nil, 4, 1, 4},
		{"single centered", navigate.Single{Line: 10, Context: 3}, 20, 7, 13},
		{"single clamped at top", navigate.Single{Line: 2, Context: 5}, 20, 1, 7},
		{"single clamped at bottom", navigate.Single{Line: 19, Context: 5}, 20, 14, 20},
		{"single without context", navigate.Single{Line: 5}, 20, 5, 5},
		{"range", navigate.Range{Start: 3, End: 8}, 20, 3, 8},
		{"empty file all", navigate.All{}, 0, 0, 0},
		{"empty file ignores bad single", navigate.Single{Line: 99}, 0, 0, 0},
		{"empty file ignores bad range", navigate.Range{Start: 5, End: 2}, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			start, end, err := navigate.Resolve(tt.spec, tt.total)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("Resolve() = (%d, %d), want (%d, %d)", start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestResolve_OutOfBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		spec      navigate.LineSpec
		requested int
	}{
		{"single zero", navigate.Single{Line: 0}, 0},
		{"single past end", navigate.Single{Line: 21, Context: 3}, 21},
		{"range start zero", navigate.Range{Start: 0, End: 4}, 0},
		{"range start past end", navigate.Range{Start: 25, End: 30}, 25},
		{"range end past end", navigate.Range{Start: 5, End: 30}, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := navigate.Resolve(tt.spec, 20)

			var oob *buffer.LineOutOfBoundsError
			if !errors.As(err, &oob) {
				t.Fatalf("Resolve() error = %v, want *LineOutOfBoundsError", err)
			}
			if oob.Requested != tt.requested || oob.Total != 20 {
				t.Errorf("got %+v, want requested %d of 20", oob, tt.requested)
			}
			if !errors.Is(err, buffer.ErrLineOutOfBounds) {
				t.Error("error should match ErrLineOutOfBounds")
			}
		})
	}
}

func TestResolve_InvertedRange(t *testing.T) {
	t.Parallel()

	_, _, err := navigate.Resolve(navigate.Range{Start: 8, End: 3}, 20)
	if !errors.Is(err, buffer.ErrInvalidArguments) {
		t.Errorf("error = %v, want ErrInvalidArguments", err)
	}
}
