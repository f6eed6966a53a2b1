package reporter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevColor := Out, NoColor
	Out, NoColor = &buf, true
	t.Cleanup(func() { Out, NoColor = prevOut, prevColor })
	return &buf
}

func TestStatusLines(t *testing.T) {
	buf := capture(t)
	Ok("parsed")
	Warn("careful")
	Err("broken")
	Info("plain")
	assert.Equal(t, "  ✓ parsed\n  ⚠ careful\n  ✗ broken\nplain\n", buf.String())
}

func TestTable(t *testing.T) {
	buf := capture(t)
	Table([]string{"table", "columns"}, [][]string{
		{"usuarios", "4"},
		{"pedidos"},
	})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, []string{
		"+----------+---------+",
		"| table    | columns |",
		"+----------+---------+",
		"| usuarios | 4       |",
		"| pedidos  |         |",
		"+----------+---------+",
	}, lines)
}

func TestTable_Truncates(t *testing.T) {
	buf := capture(t)
	Table([]string{"c"}, [][]string{{strings.Repeat("x", 50)}})
	assert.Contains(t, buf.String(), strings.Repeat("x", 37)+"...")
	assert.NotContains(t, buf.String(), strings.Repeat("x", 38))
}

func TestTable_NoColumns(t *testing.T) {
	buf := capture(t)
	Table(nil, [][]string{{"x"}})
	assert.Empty(t, buf.String())
}
