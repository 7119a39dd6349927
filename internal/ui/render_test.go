package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdiff-dev/mdiff/internal/diff"
)

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "0 bytes", FormatSize(0))
	assert.Equal(t, "512 bytes", FormatSize(512))
	assert.Equal(t, "1 Kb", FormatSize(1500))
	assert.Equal(t, "12 Kb", FormatSize(12345))
}

func TestDiffLines_SortedByMigrationName(t *testing.T) {
	row := diff.Row{
		App:     "users",
		OnlyA:   []string{"0004_x"},
		OnlyB:   []string{"0002_b"},
		Matched: []string{"0001_a"},
		Changed: []string{"0003_c"},
	}

	lines := diffLines(row, false)
	require.Len(t, lines, 3, "matched entries are hidden by default")

	keys := make([]string, 0, len(lines))
	for _, line := range lines {
		keys = append(keys, line.key)
	}
	assert.Equal(t, []string{"0002_b", "0003_c", "0004_x"}, keys)

	lines = diffLines(row, true)
	require.Len(t, lines, 4)
	assert.Equal(t, "0001_a", lines[0].key)
}

func TestDiffLines_PlaceholderSides(t *testing.T) {
	row := diff.Row{
		App:   "users",
		OnlyA: []string{"0004_x"},
		OnlyB: []string{"0005_y"},
	}

	lines := diffLines(row, false)
	require.Len(t, lines, 2)

	// 0004_x exists in A only: name on the left, placeholder on the right.
	assert.Contains(t, lines[0].a, "0004_x")
	assert.Contains(t, lines[0].b, EmptyCell)

	// 0005_y exists in B only: placeholder on the left, name on the right.
	assert.Contains(t, lines[1].a, EmptyCell)
	assert.Contains(t, lines[1].b, "0005_y")
}
