// Package output renders query results as text tables, writes them to CSV
// or JSON files, and hands result files to a pager.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	noResults    = "No results"
	maxCellWidth = 60
)

// RenderTable renders rows as a psql-style table. Columns are the sorted
// keys of the first row; rows that are not objects are skipped. When the
// first row is not an object there are no columns and the rows are printed
// as indented JSON instead.
func RenderTable(rows []any) string {
	if len(rows) == 0 {
		return noResults
	}

	headers, cells := tableCells(rows)
	if len(headers) == 0 {
		out, err := marshalJSON(rows)
		if err != nil {
			return fmt.Sprint(rows)
		}
		return string(out)
	}

	var buf bytes.Buffer
	writeTable(&buf, headers, cells)
	return strings.TrimRight(buf.String(), "\n")
}

// tableCells returns the header and the cell text of every object row.
// A missing key renders as an empty cell and a null as "null".
func tableCells(rows []any) ([]string, [][]string) {
	first, ok := rows[0].(map[string]any)
	if !ok {
		return nil, nil
	}
	headers := sortedKeys(first)

	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		obj, ok := r.(map[string]any)
		if !ok {
			continue
		}
		line := make([]string, len(headers))
		for i, h := range headers {
			v, present := obj[h]
			switch {
			case !present:
				line[i] = ""
			case v == nil:
				line[i] = "null"
			default:
				line[i] = valueText(v)
			}
		}
		cells = append(cells, line)
	}
	return headers, cells
}

func writeTable(w io.Writer, headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}

	wrapped := make([][][]string, len(rows))
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for r, row := range rows {
		wrapped[r] = make([][]string, len(row))
		for c, cell := range row {
			lines := splitStringIntoLines(cell, maxCellWidth)
			wrapped[r][c] = lines
			for _, l := range lines {
				if n := utf8.RuneCountInString(l); n > widths[c] {
					widths[c] = n
				}
			}
		}
	}

	writeLine(w, headers, widths)
	for i, width := range widths {
		fmt.Fprint(w, strings.Repeat("-", width+2))
		if i != len(widths)-1 {
			fmt.Fprint(w, "+")
		}
	}
	fmt.Fprint(w, "\n")

	for _, row := range wrapped {
		height := 1
		for _, lines := range row {
			height = max(height, len(lines))
		}
		for l := 0; l < height; l++ {
			physical := make([]string, len(row))
			for c, lines := range row {
				if l < len(lines) {
					physical[c] = lines[l]
				}
			}
			writeLine(w, physical, widths)
		}
	}
}

func writeLine(w io.Writer, cells []string, widths []int) {
	for i, cell := range cells {
		pad := widths[i] - utf8.RuneCountInString(cell)
		fmt.Fprintf(w, " %s%s ", cell, strings.Repeat(" ", pad))
		if i != len(cells)-1 {
			fmt.Fprint(w, "|")
		}
	}
	fmt.Fprint(w, "\n")
}

func splitStringIntoLines(text string, maxWidth int) []string {
	if len(text) == 0 {
		return []string{""}
	}

	lines := strings.Split(text, "\n")
	finalLines := make([]string, 0, len(lines))

	for _, line := range lines {
		runes := []rune(line)
		if len(runes) <= maxWidth {
			finalLines = append(finalLines, line)
			continue
		}
		for i := 0; i < len(runes); i += maxWidth {
			end := min(i+maxWidth, len(runes))
			finalLines = append(finalLines, string(runes[i:end]))
		}
	}

	return finalLines
}

func sortedKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// valueText is the textual form of a value: strings verbatim, everything
// else as compact JSON.
func valueText(v any) string {
	if s, ok := v.(string); ok {
		return s
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Sprint(v)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
