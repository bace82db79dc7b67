package types

import (
	"context"
	"errors"
)

// QueryExecutor runs opaque query strings against one backend. Calls are
// made sequentially; implementations need not be safe for concurrent use.
type QueryExecutor interface {
	// ExecuteQuery runs query and folds the returned rows into QueryResults.
	ExecuteQuery(ctx context.Context, query string) (QueryResults, error)

	// DBURI returns the connection URI, used for display only.
	DBURI() string

	// Close releases the backend connection.
	Close(ctx context.Context) error
}

// Backend errors.
var (
	ErrConnection         = errors.New("couldn't connect to database")
	ErrExecution          = errors.New("couldn't execute query")
	ErrUnexpectedResponse = errors.New("unexpected response received")
)
