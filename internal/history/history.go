// Package history persists the queries entered at the console as a
// newline-delimited file.
package history

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// MaxEntries is the number of entries kept when the log is saved.
const MaxEntries = 1000

// Log is an ordered list of submitted queries backed by a file.
type Log struct {
	path    string
	entries []string
}

// New returns an empty log bound to path.
func New(path string) *Log {
	return &Log{path: path}
}

// Load reads the log at path. A missing file yields an empty log.
func Load(path string) (*Log, error) {
	l := New(path)

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return l, nil
	}
	if err != nil {
		return l, fmt.Errorf("opening history file %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := scanner.Text(); strings.TrimSpace(line) != "" {
			l.entries = append(l.entries, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return l, fmt.Errorf("reading history file %s: %w", path, err)
	}
	return l, nil
}

// Path returns the file the log is saved to.
func (l *Log) Path() string {
	return l.path
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// Append records entry with surrounding whitespace trimmed. Empty entries
// and an immediate repeat of the last entry are ignored. Entries are stored
// on one line each, so each line break becomes a single space; all other
// whitespace is kept as entered.
func (l *Log) Append(entry string) error {
	entry = lineBreaks.Replace(strings.TrimSpace(entry))
	if entry == "" {
		return errors.New("history entry is empty")
	}
	if n := len(l.entries); n > 0 && l.entries[n-1] == entry {
		return nil
	}
	l.entries = append(l.entries, entry)
	return nil
}

// Entries returns the entries, oldest first.
func (l *Log) Entries() []string {
	return append([]string(nil), l.entries...)
}

// Save rewrites the file with the last MaxEntries entries, creating the
// parent directory if needed.
func (l *Log) Save() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("creating history directory: %w", err)
	}

	entries := l.entries
	if len(entries) > MaxEntries {
		entries = entries[len(entries)-MaxEntries:]
	}

	var b strings.Builder
	for _, e := range entries {
		b.WriteString(e)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(l.path, []byte(b.String()), 0o600); err != nil {
		return fmt.Errorf("writing history file %s: %w", l.path, err)
	}
	return nil
}
