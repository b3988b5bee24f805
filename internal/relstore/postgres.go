package relstore

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresBackend drives PostgreSQL through pgx directly (not GORM), using
// pgx.CopyFrom for bulk loads, the fastest bulk-insert path the driver
// exposes and the one spec.md §4.7 names explicitly.
type PostgresBackend struct {
	pool *pgxpool.Pool
	tx   pgx.Tx

	commitInterval int
	rowsSinceCommit int
}

// OpenPostgres connects to dsn and begins the transaction load happens
// under. commitInterval, if > 0, makes Commit a no-op until that many rows
// have been inserted since the last commit (spec.md §4.7 "PostgreSQL
// resilience option").
func OpenPostgres(ctx context.Context, dsn string, commitInterval int) (*PostgresBackend, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	tx, err := pool.Begin(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("begin postgres transaction: %w", err)
	}
	return &PostgresBackend{pool: pool, tx: tx, commitInterval: commitInterval}, nil
}

func (b *PostgresBackend) Dialect() Dialect { return DialectPostgres }

func (b *PostgresBackend) Exec(ctx context.Context, query string) error {
	if _, err := b.tx.Exec(ctx, query); err != nil {
		return fmt.Errorf("postgres exec: %w", err)
	}
	return nil
}

func (b *PostgresBackend) BulkInsert(ctx context.Context, table string, columns []string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}
	n, err := b.tx.CopyFrom(ctx, pgx.Identifier{table}, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("postgres copy into %s: %w", table, err)
	}
	b.rowsSinceCommit += int(n)
	return nil
}

// Commit persists the current transaction and opens the next one. When a
// commit_interval is configured, Commit is a no-op until that many rows
// have accumulated since the last real commit, limiting how often very
// long loads pay the commit cost while still bounding work lost on crash.
func (b *PostgresBackend) Commit(ctx context.Context) error {
	if b.commitInterval > 0 && b.rowsSinceCommit < b.commitInterval {
		return nil
	}
	return b.forceCommit(ctx)
}

func (b *PostgresBackend) forceCommit(ctx context.Context) error {
	if err := b.tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres commit: %w", err)
	}
	tx, err := b.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres begin next transaction: %w", err)
	}
	b.tx = tx
	b.rowsSinceCommit = 0
	return nil
}

// ForceCommit commits regardless of commit_interval, used by Store.Close
// on a clean exit so nothing is left uncommitted.
func (b *PostgresBackend) ForceCommit(ctx context.Context) error {
	return b.forceCommit(ctx)
}

func (b *PostgresBackend) Close() error {
	if b.tx != nil {
		_ = b.tx.Rollback(context.Background())
	}
	b.pool.Close()
	return nil
}
