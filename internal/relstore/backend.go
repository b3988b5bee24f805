package relstore

import "context"

// Backend is the narrow surface Store needs from either database driver:
// execute DDL, and bulk-load rows into one table. SQLite and PostgreSQL
// implement this very differently (a batched parameterized INSERT vs.
// COPY FROM STDIN) but Store itself stays dialect-agnostic.
type Backend interface {
	Dialect() Dialect
	Exec(ctx context.Context, query string) error
	BulkInsert(ctx context.Context, table string, columns []string, rows [][]any) error
	// Commit persists everything inserted so far. Store calls it after
	// every flush: SQLite commits its open transaction each time and
	// begins the next; PostgreSQL skips the commit until commit_interval
	// rows have accumulated (spec.md §4.7).
	Commit(ctx context.Context) error
	Close() error
}
