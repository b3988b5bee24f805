package relstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteBackend drives a SQLite database directly through database/sql,
// bypassing GORM so that table/junction DDL and bulk inserts can be built
// from a runtime-derived Schema rather than a compile-time struct tag set
// (see the package doc and DESIGN.md).
type SQLiteBackend struct {
	db *sql.DB
	tx *sql.Tx
}

// OpenSQLite opens (or creates) the SQLite file at path and begins a
// transaction; each Commit ends it and begins the next, and Close rolls
// back whatever is still uncommitted. Use ":memory:" for an in-memory
// database.
func OpenSQLite(path string) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	tx, err := db.Begin()
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("begin sqlite transaction: %w", err)
	}
	return &SQLiteBackend{db: db, tx: tx}, nil
}

func (b *SQLiteBackend) Dialect() Dialect { return DialectSQLite }

// DB exposes the underlying *sql.DB, primarily so tests and diagnostics
// can query past what Store's own interface needs.
func (b *SQLiteBackend) DB() *sql.DB { return b.db }

func (b *SQLiteBackend) Exec(ctx context.Context, query string) error {
	_, err := b.tx.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf("sqlite exec: %w", err)
	}
	return nil
}

// BulkInsert builds one parameterized multi-row INSERT, the "many-row
// variant" spec.md §4.7 calls for on SQLite.
func (b *SQLiteBackend) BulkInsert(ctx context.Context, table string, columns []string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}

	quotedCols := make([]string, len(columns))
	for i, c := range columns {
		quotedCols[i] = QuoteIdent(c)
	}

	placeholderGroup := "(" + strings.TrimSuffix(strings.Repeat("?,", len(columns)), ",") + ")"
	groups := make([]string, len(rows))
	args := make([]any, 0, len(rows)*len(columns))
	for i, row := range rows {
		groups[i] = placeholderGroup
		args = append(args, row...)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		QuoteIdent(table), strings.Join(quotedCols, ", "), strings.Join(groups, ", "))

	if _, err := b.tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("sqlite bulk insert into %s: %w", table, err)
	}
	return nil
}

func (b *SQLiteBackend) Commit(ctx context.Context) error {
	if err := b.tx.Commit(); err != nil {
		return fmt.Errorf("sqlite commit: %w", err)
	}
	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("sqlite begin next transaction: %w", err)
	}
	b.tx = tx
	return nil
}

// Analyze runs SQLite's ANALYZE, the statistics refresh spec.md §4.7
// calls for on a clean close.
func (b *SQLiteBackend) Analyze(ctx context.Context) error {
	return b.Exec(ctx, "ANALYZE")
}

func (b *SQLiteBackend) Close() error {
	if b.tx != nil {
		_ = b.tx.Rollback()
	}
	return b.db.Close()
}
