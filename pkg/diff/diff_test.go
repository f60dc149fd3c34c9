package diff_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gliedit/pkg/diff"
)

func TestLines_Equal(t *testing.T) {
	t.Parallel()

	assert.Nil(t, diff.Lines("f", nil, nil))
	assert.Nil(t, diff.Lines("f", []string{"a", "b"}, []string{"a", "b"}))

	var d *diff.Diff
	assert.False(t, d.HasChanges())
	assert.Empty(t, d.String())
}

func TestLines_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		before []string
		after  []string
		want   string
	}{
		{
			name:   "replace middle line",
			before: []string{"a", "b", "c"},
			after:  []string{"a", "X", "c"},
			want:   "--- a/.gitleaksignore\n+++ b/.gitleaksignore\n@@ -1,3 +1,3 @@\n a\n-b\n+X\n c\n",
		},
		{
			name:   "delete last line",
			before: []string{"a", "b"},
			after:  []string{"a"},
			want:   "--- a/.gitleaksignore\n+++ b/.gitleaksignore\n@@ -1,2 +1,1 @@\n a\n-b\n",
		},
		{
			name:   "delete only line",
			before: []string{"a"},
			after:  nil,
			want:   "--- a/.gitleaksignore\n+++ b/.gitleaksignore\n@@ -1,1 +0,0 @@\n-a\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := diff.Lines(".gitleaksignore", tt.before, tt.after)
			require.NotNil(t, d)
			assert.Equal(t, tt.want, d.String())
		})
	}
}

func TestLines_SeparateHunks(t *testing.T) {
	t.Parallel()

	before := make([]string, 20)
	for i := range before {
		before[i] = fmt.Sprintf("l%d", i+1)
	}
	after := append([]string(nil), before...)
	after[1] = "X"
	after[17] = "Y"

	d := diff.Lines("f", before, after)
	require.NotNil(t, d)
	require.Len(t, d.Hunks, 2)

	assert.Equal(t, "@@ -1,5 +1,5 @@", d.Hunks[0].Header())
	assert.Equal(t, "@@ -15,6 +15,6 @@", d.Hunks[1].Header())
	assert.Equal(t, 2, d.Added)
	assert.Equal(t, 2, d.Removed)
}

func TestLines_NearbyChangesMerge(t *testing.T) {
	t.Parallel()

	before := []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}
	after := []string{"1", "two", "3", "4", "5", "6", "7", "eight", "9"}

	d := diff.Lines("f", before, after)
	require.NotNil(t, d)
	require.Len(t, d.Hunks, 1)
	assert.Equal(t, "@@ -1,9 +1,9 @@", d.Hunks[0].Header())
}

func TestOp_Prefix(t *testing.T) {
	t.Parallel()

	assert.Equal(t, " ", diff.OpContext.Prefix())
	assert.Equal(t, "+", diff.OpAdd.Prefix())
	assert.Equal(t, "-", diff.OpRemove.Prefix())
}
