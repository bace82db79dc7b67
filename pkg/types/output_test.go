package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{in: "csv", want: FormatCSV},
		{in: "json", want: FormatJSON},
		{in: "  json ", want: FormatJSON},
		{in: "xml", wantErr: true},
		{in: "JSON", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOutputFormat(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidFormat)
				assert.Contains(t, err.Error(), "allowed values: [csv, json]")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOutputFormatFlagValue(t *testing.T) {
	var f OutputFormat
	assert.Equal(t, "csv", f.String())

	require.NoError(t, f.Set("json"))
	assert.Equal(t, FormatJSON, f)
	assert.Equal(t, "json", f.Extension())

	require.Error(t, f.Set("yaml"))
	assert.Equal(t, FormatJSON, f, "failed Set must not change the value")

	require.NoError(t, f.UnmarshalText([]byte("csv")))
	text, err := f.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "csv", string(text))
}

func TestBenchmarkNumRuns(t *testing.T) {
	_, err := NewBenchmarkNumRuns(0)
	require.ErrorIs(t, err, ErrInvalidNumRuns)

	n, err := NewBenchmarkNumRuns(5)
	require.NoError(t, err)
	assert.Equal(t, uint16(5), n.Value())

	require.ErrorIs(t, n.Set("0"), ErrInvalidNumRuns)
	require.Error(t, n.Set("abc"))
	require.NoError(t, n.Set("12"))
	assert.Equal(t, "12", n.String())
}

func TestPager(t *testing.T) {
	_, err := NewPager("   ")
	require.ErrorIs(t, err, ErrEmptyPager)

	p, err := NewPager("less -S -R")
	require.NoError(t, err)
	assert.Equal(t, "less", p.Program)
	assert.Equal(t, []string{"-S", "-R"}, p.Args)
	assert.Equal(t, "less -S -R", p.String())

	cmd := p.Command(t.Context(), "/tmp/results.csv")
	assert.Equal(t, []string{"less", "-S", "-R", "/tmp/results.csv"}, cmd.Args)
	assert.Equal(t, []string{"-S", "-R"}, p.Args, "Command must not mutate the pager args")
}
