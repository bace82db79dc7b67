package history

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "none", "history.txt")

	l, err := Load(path)

	require.NoError(t, err)
	assert.Empty(t, l.Entries())
	assert.Equal(t, path, l.Path())
}

func TestLoadSkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.txt")
	require.NoError(t, os.WriteFile(path, []byte("MATCH (n) RETURN n\n\n  \nRETURN 1\n"), 0o600))

	l, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, []string{"MATCH (n) RETURN n", "RETURN 1"}, l.Entries())
}

func TestAppend(t *testing.T) {
	tests := []struct {
		name    string
		entries []string
		want    []string
		wantErr bool
	}{
		{name: "single", entries: []string{"RETURN 1"}, want: []string{"RETURN 1"}},
		{name: "consecutive duplicate", entries: []string{"RETURN 1", "RETURN 1"}, want: []string{"RETURN 1"}},
		{name: "non consecutive duplicate", entries: []string{"RETURN 1", "RETURN 2", "RETURN 1"}, want: []string{"RETURN 1", "RETURN 2", "RETURN 1"}},
		{name: "multi line folded", entries: []string{"MATCH (n)\r\nRETURN n"}, want: []string{"MATCH (n) RETURN n"}},
		{name: "bare carriage return folded", entries: []string{"MATCH (n)\rRETURN n"}, want: []string{"MATCH (n) RETURN n"}},
		{name: "surrounding whitespace trimmed", entries: []string{"  RETURN 1 \n"}, want: []string{"RETURN 1"}},
		{name: "inner whitespace kept", entries: []string{"MATCH (n)  WHERE n.name = 'a   b'\tRETURN n"}, want: []string{"MATCH (n)  WHERE n.name = 'a   b'\tRETURN n"}},
		{name: "blank rejected", entries: []string{"   "}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(filepath.Join(t.TempDir(), "history.txt"))
			var err error
			for _, e := range tt.entries {
				err = l.Append(e)
			}
			if tt.wantErr {
				assert.Error(t, err)
				assert.Empty(t, l.Entries())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, l.Entries())
		})
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "gcue", "history.txt")
	l := New(path)
	require.NoError(t, l.Append("MATCH (n) RETURN n LIMIT 5"))
	require.NoError(t, l.Append("RETURN 1"))

	require.NoError(t, l.Save())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, l.Entries(), loaded.Entries())
}

func TestSaveAndLoadKeepsLiteralWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.txt")
	query := `MATCH (n) WHERE n.name = "a   b" RETURN n`
	l := New(path)
	require.NoError(t, l.Append(query))
	require.NoError(t, l.Save())

	loaded, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, []string{query}, loaded.Entries())
}

func TestSaveKeepsLastEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.txt")
	l := New(path)
	for i := range MaxEntries + 5 {
		require.NoError(t, l.Append(fmt.Sprintf("RETURN %d", i)))
	}

	require.NoError(t, l.Save())

	loaded, err := Load(path)
	require.NoError(t, err)
	entries := loaded.Entries()
	require.Len(t, entries, MaxEntries)
	assert.Equal(t, "RETURN 5", entries[0])
	assert.Equal(t, fmt.Sprintf("RETURN %d", MaxEntries+4), entries[len(entries)-1])
}

func TestEntriesReturnsCopy(t *testing.T) {
	l := New("history.txt")
	require.NoError(t, l.Append("RETURN 1"))

	entries := l.Entries()
	entries[0] = "changed"

	assert.Equal(t, []string{"RETURN 1"}, l.Entries())
}

func TestSaveFailsWhenParentIsAFile(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))
	l := New(filepath.Join(blocker, "history.txt"))
	require.NoError(t, l.Append("RETURN 1"))

	assert.Error(t, l.Save())
}
