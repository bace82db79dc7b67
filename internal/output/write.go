package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mesh-intelligence/gcue/pkg/types"
)

// FileNameLayout formats the reference time of an export file name.
const FileNameLayout = "Jan-02-15-04-05"

// FileName returns the export file name for ref and format.
func FileName(ref time.Time, format types.OutputFormat) string {
	return ref.Format(FileNameLayout) + "." + format.Extension()
}

// WriteResults encodes results in format and writes them under dir, which
// is created if needed. The content is fully encoded before the file is
// created, so a row that cannot be encoded leaves no file behind.
func WriteResults(results types.NonEmptyResults, dir string, format types.OutputFormat, ref time.Time) (string, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case types.FormatJSON:
		data, err = marshalJSON(results.List())
	default:
		data, err = marshalCSV(results)
	}
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: failed to create results directory %s: %w", types.ErrExport, dir, err)
	}

	path := filepath.Join(dir, FileName(ref, format))
	if err := writeFileAtomic(path, data); err != nil {
		return "", fmt.Errorf("%w: couldn't write output file %s: %w", types.ErrExport, path, err)
	}
	return path, nil
}

// marshalCSV projects every row onto the first row's keys. A missing key
// and a null both become an empty field.
func marshalCSV(results types.NonEmptyResults) ([]byte, error) {
	first, ok := results.First().(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected results to be an array of objects", types.ErrExport)
	}
	headers := sortedKeys(first)

	records := make([][]string, 0, results.Len()+1)
	records = append(records, headers)
	for i, r := range results.List() {
		obj, ok := r.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: expected results to be an array of objects, row %d is not an object", types.ErrExport, i+1)
		}
		record := make([]string, len(headers))
		for j, h := range headers {
			if v := obj[h]; v != nil {
				record[j] = valueText(v)
			}
		}
		records = append(records, record)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("%w: couldn't encode CSV: %w", types.ErrExport, err)
	}
	return buf.Bytes(), nil
}

func marshalJSON(rows []any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		return nil, fmt.Errorf("%w: couldn't serialize results to JSON: %w", types.ErrExport, err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// writeFileAtomic writes data using the temp-file, fsync, rename pattern.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".results-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
