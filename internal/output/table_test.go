package output

import (
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func languages() []any {
	return []any{
		map[string]any{"language": "Rust", "creator": "Graydon Hoare", "year": uint64(2010)},
		map[string]any{"language": "Python", "creator": "Guido van Rossum", "year": uint64(1991)},
	}
}

func TestRenderTable(t *testing.T) {
	got := RenderTable(languages())

	want := strings.Join([]string{
		" creator          | language | year ",
		"------------------+----------+------",
		" Graydon Hoare    | Rust     | 2010 ",
		" Guido van Rossum | Python   | 1991 ",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestRenderTableMissingAndNull(t *testing.T) {
	rows := []any{
		map[string]any{"a": "x", "b": uint64(1)},
		map[string]any{"a": "y"},
		map[string]any{"a": nil, "b": uint64(3)},
	}

	got := RenderTable(rows)

	lines := strings.Split(got, "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, " a    | b ", lines[0])
	assert.Equal(t, " x    | 1 ", lines[2])
	assert.Equal(t, " y    |   ", lines[3], "missing key renders as an empty cell")
	assert.Equal(t, " null | 3 ", lines[4], "null renders as the text null")
}

func TestRenderTableCells(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"string", "hello", "hello"},
		{"bool", true, "true"},
		{"unsigned", uint64(18446744073709551615), "18446744073709551615"},
		{"negative", int64(-42), "-42"},
		{"float", 1.5, "1.5"},
		{"array", []any{uint64(1), "two"}, `[1,"two"]`},
		{"object", map[string]any{"k": "<v>"}, `{"k":"<v>"}`},
		{"null", nil, "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, cells := tableCells([]any{map[string]any{"v": tt.value}})
			require.Len(t, cells, 1)
			assert.Equal(t, tt.want, cells[0][0])
		})
	}
}

func TestRenderTableSkipsNonObjectRows(t *testing.T) {
	rows := []any{
		map[string]any{"n": uint64(1)},
		"stray",
		map[string]any{"n": uint64(2)},
	}

	got := RenderTable(rows)

	assert.Equal(t, " n \n---\n 1 \n 2 ", got)
}

func TestRenderTableEmpty(t *testing.T) {
	assert.Equal(t, "No results", RenderTable(nil))
	assert.Equal(t, "No results", RenderTable([]any{}))
}

func TestRenderTableNonObjectFirstRow(t *testing.T) {
	got := RenderTable([]any{uint64(1), "two"})

	assert.Equal(t, "[\n  1,\n  \"two\"\n]", got)
}

func TestRenderTableWrapsLongCells(t *testing.T) {
	long := strings.Repeat("x", maxCellWidth+10)

	got := RenderTable([]any{map[string]any{"v": long}})

	lines := strings.Split(got, "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, " "+strings.Repeat("x", maxCellWidth)+" ", lines[2])
	assert.Equal(t, " "+strings.Repeat("x", 10)+strings.Repeat(" ", maxCellWidth-10)+" ", lines[3])
}

func TestRenderTableKeepsHugeCellsWhole(t *testing.T) {
	huge := strings.Repeat("y", 2500)

	got := RenderTable([]any{map[string]any{"v": huge}})

	lines := strings.Split(got, "\n")[2:]
	var cell strings.Builder
	for _, l := range lines {
		cell.WriteString(strings.TrimSpace(l))
	}
	assert.Equal(t, huge, cell.String())
	assert.NotContains(t, got, "...")
}

func TestRenderTableGeneratedRows(t *testing.T) {
	faker := gofakeit.New(42)
	rows := make([]any, 0, 25)
	for range 25 {
		rows = append(rows, map[string]any{
			"name":     faker.Name(),
			"language": faker.ProgrammingLanguage(),
			"year":     uint64(faker.IntRange(1950, 2025)),
			"city":     faker.City(),
		})
	}

	got := RenderTable(rows)

	lines := strings.Split(got, "\n")
	require.Len(t, lines, len(rows)+2)
	assert.Contains(t, lines[0], " city ")
	width := len([]rune(lines[0]))
	for i, line := range lines {
		assert.Equal(t, width, len([]rune(line)), "line %d is misaligned", i)
	}
}
