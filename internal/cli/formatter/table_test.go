package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"CLIENT", "TIME"},
		[][]string{{"IDEOLA", "2.5h"}, {"ACME", "10.0h"}},
		1,
	))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, "CLIENT   TIME", lines[0])
	assert.Equal(t, "──────  ─────", lines[1])
	assert.Equal(t, "IDEOLA   2.5h", lines[2])
	assert.Equal(t, "ACME    10.0h", lines[3])
}

func TestRenderTable_ShortRowsAndNoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, nil))

	out := stripANSI(RenderTable([]string{"A", "B"}, [][]string{{"x"}}))
	assert.Contains(t, out, "x")
}
