// Package types defines the QueryExecutor interface, the query result model,
// export and pager settings, connection configuration, and the standard
// errors shared by every gcue component.
//
// A result row is a canonical value: nil, bool, uint64 (non-negative
// integers), int64 (negative integers), float64 (finite), string, []any, or
// map[string]any. Rows are produced by the backend adapters only.
package types
