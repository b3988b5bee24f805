package relstore

import (
	"context"
	"fmt"
)

// Store is the relational sink proper: it derives a schema for each
// record type on first write, buffers rows per table, and flushes batches
// to the Backend (spec.md §4.7).
type Store struct {
	backend   Backend
	batchSize int

	tableFields func(table string) func(field string) bool

	schemas map[string]Schema
	ready   map[string]bool

	mainBuffer map[string][]MainRow
	jctBuffer  map[string][]JunctionRow
	jctTable   map[string]Junction // junction name -> Junction
	jctParent  map[string]string   // junction name -> parent table

	cleanExit bool
}

// NewStore builds a Store over an already-open Backend.
func NewStore(backend Backend, batchSize int) *Store {
	if batchSize <= 0 {
		batchSize = 10000
	}
	return &Store{
		backend:    backend,
		batchSize:  batchSize,
		schemas:    map[string]Schema{},
		ready:      map[string]bool{},
		mainBuffer: map[string][]MainRow{},
		jctBuffer:  map[string][]JunctionRow{},
		jctTable:   map[string]Junction{},
		jctParent:  map[string]string{},
	}
}

// Write buffers one record under its lower-cased type name as the table
// (spec.md §4.7 point 1), deriving and creating the schema on first sight
// of that type.
func (s *Store) Write(ctx context.Context, table string, record any) error {
	schema, err := s.ensureTable(ctx, table, record)
	if err != nil {
		return err
	}

	mainRow, junctionRows, err := Rows(schema, record, cannedMainTableFields(table))
	if err != nil {
		return fmt.Errorf("relstore: deriving row for %s: %w", table, err)
	}

	s.mainBuffer[table] = append(s.mainBuffer[table], mainRow)
	if len(s.mainBuffer[table]) >= s.batchSize {
		if err := s.flushMain(ctx, table); err != nil {
			return err
		}
	}

	for _, j := range schema.Junctions {
		rows := junctionRows[j.Name]
		if len(rows) == 0 {
			continue
		}
		s.jctBuffer[j.Name] = append(s.jctBuffer[j.Name], rows...)
		if len(s.jctBuffer[j.Name]) >= s.batchSize {
			if err := s.flushJunction(ctx, j.Name); err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *Store) ensureTable(ctx context.Context, table string, sample any) (Schema, error) {
	if schema, ok := s.schemas[table]; ok {
		return schema, nil
	}

	// Derive the shape first regardless of path: the canned-DDL branch
	// still needs to know the table + junction table names it's about to
	// (re)create in order to drop-if-exists them first (spec.md §4.7
	// "On first write ... drop-if-exists the table (and junctions), then
	// create" applies uniformly, not just to the derived-schema path).
	schema := Derive(table, sample, cannedMainTableFields(table))

	if err := s.backend.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", QuoteIdent(schema.Table))); err != nil {
		return Schema{}, fmt.Errorf("relstore: drop %s: %w", table, err)
	}
	for _, j := range schema.Junctions {
		if err := s.backend.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", QuoteIdent(j.Name))); err != nil {
			return Schema{}, fmt.Errorf("relstore: drop %s: %w", j.Name, err)
		}
	}

	if canned, ok := cannedSchema(s.backend.Dialect(), table); ok {
		for _, stmt := range splitStatements(canned) {
			if err := s.backend.Exec(ctx, stmt); err != nil {
				return Schema{}, fmt.Errorf("relstore: canned schema for %s: %w", table, err)
			}
		}
	} else {
		if err := s.backend.Exec(ctx, CreateTableSQL(s.backend.Dialect(), schema)); err != nil {
			return Schema{}, fmt.Errorf("relstore: create %s: %w", table, err)
		}
		for _, j := range schema.Junctions {
			if err := s.backend.Exec(ctx, CreateJunctionSQL(s.backend.Dialect(), table, j)); err != nil {
				return Schema{}, fmt.Errorf("relstore: create %s: %w", j.Name, err)
			}
		}
	}

	for _, j := range schema.Junctions {
		s.jctTable[j.Name] = j
		s.jctParent[j.Name] = table
	}
	s.schemas[table] = schema
	s.ready[table] = true
	return schema, nil
}

func (s *Store) flushMain(ctx context.Context, table string) error {
	rows := s.mainBuffer[table]
	if len(rows) == 0 {
		return nil
	}
	schema := s.schemas[table]
	columns := make([]string, len(schema.Columns))
	for i, c := range schema.Columns {
		columns[i] = c.Name
	}
	generic := make([][]any, len(rows))
	for i, r := range rows {
		generic[i] = r
	}
	if err := s.backend.BulkInsert(ctx, table, columns, generic); err != nil {
		return fmt.Errorf("relstore: flush %s: %w", table, err)
	}
	s.mainBuffer[table] = s.mainBuffer[table][:0]
	return s.backend.Commit(ctx)
}

func (s *Store) flushJunction(ctx context.Context, junctionName string) error {
	rows := s.jctBuffer[junctionName]
	if len(rows) == 0 {
		return nil
	}
	j := s.jctTable[junctionName]
	parent := s.jctParent[junctionName]

	var columns []string
	if j.ScalarColumn != "" {
		columns = []string{parent + "_id", j.ScalarColumn}
	} else {
		columns = append([]string{parent + "_id"}, columnNames(j.Columns)...)
	}

	generic := make([][]any, len(rows))
	for i, r := range rows {
		generic[i] = r
	}
	if err := s.backend.BulkInsert(ctx, junctionName, columns, generic); err != nil {
		return fmt.Errorf("relstore: flush %s: %w", junctionName, err)
	}
	s.jctBuffer[junctionName] = s.jctBuffer[junctionName][:0]
	return s.backend.Commit(ctx)
}

func columnNames(cols []Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Name
	}
	return out
}

// MarkClean records that the run finished without error; Close uses this
// to decide whether to run index DDL (spec.md §4.7 "Close" / §7 "clean
// exit" vs "exception exit").
func (s *Store) MarkClean() { s.cleanExit = true }

// Close flushes every buffered table, then — only on a clean exit — loads
// and executes the canned index DDL for each table (deduplicated, since
// junctions don't get their own index resource) and commits.
func (s *Store) Close(ctx context.Context) error {
	defer func() { _ = s.backend.Close() }()

	for table := range s.mainBuffer {
		if err := s.flushMain(ctx, table); err != nil {
			return err
		}
	}
	for name := range s.jctBuffer {
		if err := s.flushJunction(ctx, name); err != nil {
			return err
		}
	}

	if !s.cleanExit {
		return nil
	}

	for table := range s.schemas {
		if indices, ok := cannedIndices(s.backend.Dialect(), table); ok {
			for _, stmt := range splitStatements(indices) {
				if err := s.backend.Exec(ctx, stmt); err != nil {
					return fmt.Errorf("relstore: indices for %s: %w", table, err)
				}
			}
		}
	}

	if sqlite, ok := s.backend.(*SQLiteBackend); ok {
		if err := sqlite.Analyze(ctx); err != nil {
			return fmt.Errorf("relstore: analyze: %w", err)
		}
	}

	if pg, ok := s.backend.(*PostgresBackend); ok {
		if err := pg.ForceCommit(ctx); err != nil {
			return err
		}
		return nil
	}

	return s.backend.Commit(ctx)
}
