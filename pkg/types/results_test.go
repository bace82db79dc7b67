package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNonEmptyResults(t *testing.T) {
	t.Run("rejects empty list", func(t *testing.T) {
		_, err := NewNonEmptyResults(nil)
		require.ErrorIs(t, err, ErrEmptyResults)

		_, err = NewNonEmptyResults([]any{})
		require.ErrorIs(t, err, ErrEmptyResults)
	})

	t.Run("first and list are defined", func(t *testing.T) {
		rows := []any{map[string]any{"a": uint64(1)}, map[string]any{"a": uint64(2)}}
		res, err := NewNonEmptyResults(rows)
		require.NoError(t, err)

		assert.Equal(t, rows[0], res.First())
		assert.Equal(t, rows, res.List())
		assert.Equal(t, 2, res.Len())
	})

	t.Run("caller slices do not alias the rows", func(t *testing.T) {
		rows := []any{"a", "b"}
		res, err := NewNonEmptyResults(rows)
		require.NoError(t, err)

		rows[0] = "changed"
		list := res.List()
		list[1] = "changed"

		assert.Equal(t, []any{"a", "b"}, res.List())
		assert.Equal(t, "a", res.First())
	})
}

func TestResultsFrom(t *testing.T) {
	t.Run("zero rows is empty", func(t *testing.T) {
		res := ResultsFrom([]any{})
		assert.True(t, res.Empty())
		assert.Equal(t, 0, res.Len())

		_, ok := res.NonEmpty()
		assert.False(t, ok)
	})

	t.Run("zero value is empty", func(t *testing.T) {
		var res QueryResults
		assert.True(t, res.Empty())
	})

	t.Run("one row is non-empty", func(t *testing.T) {
		res := ResultsFrom([]any{"x"})
		require.False(t, res.Empty())

		rows, ok := res.NonEmpty()
		require.True(t, ok)
		assert.Equal(t, "x", rows.First())
		assert.Equal(t, 1, res.Len())
	})
}
