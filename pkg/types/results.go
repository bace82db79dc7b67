package types

import "errors"

// ErrEmptyResults is returned when NonEmptyResults is built from zero rows.
var ErrEmptyResults = errors.New("results list is empty")

// NonEmptyResults holds at least one result row. The zero value is not
// usable; construct it with NewNonEmptyResults or through ResultsFrom.
type NonEmptyResults struct {
	rows []any
}

// NewNonEmptyResults copies rows, returning ErrEmptyResults when rows is
// empty.
func NewNonEmptyResults(rows []any) (NonEmptyResults, error) {
	if len(rows) == 0 {
		return NonEmptyResults{}, ErrEmptyResults
	}
	return NonEmptyResults{rows: append([]any(nil), rows...)}, nil
}

// List returns a copy of every row in backend order.
func (r NonEmptyResults) List() []any {
	return append([]any(nil), r.rows...)
}

// First returns the first row. It is always defined.
func (r NonEmptyResults) First() any {
	return r.rows[0]
}

// Len returns the number of rows (always >= 1).
func (r NonEmptyResults) Len() int {
	return len(r.rows)
}

// QueryResults is the outcome of one executed query: either empty or
// carrying NonEmptyResults.
type QueryResults struct {
	nonEmpty *NonEmptyResults
}

// ResultsFrom folds rows into QueryResults; zero rows yield an empty result.
func ResultsFrom(rows []any) QueryResults {
	res, err := NewNonEmptyResults(rows)
	if err != nil {
		return QueryResults{}
	}
	return QueryResults{nonEmpty: &res}
}

// Empty reports whether the query returned no rows.
func (q QueryResults) Empty() bool {
	return q.nonEmpty == nil
}

// NonEmpty returns the rows and true when at least one row was returned.
func (q QueryResults) NonEmpty() (NonEmptyResults, bool) {
	if q.nonEmpty == nil {
		return NonEmptyResults{}, false
	}
	return *q.nonEmpty, true
}

// Len returns the number of rows, zero for an empty result.
func (q QueryResults) Len() int {
	if q.nonEmpty == nil {
		return 0
	}
	return q.nonEmpty.Len()
}
