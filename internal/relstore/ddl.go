package relstore

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed resources/*.sql
var cannedDDL embed.FS

// cannedSchema returns the packaged CREATE TABLE statements for table
// (one per dialect), if a resource exists — "the SQL resource wins over
// the derivation" (spec.md §4.7 point 4). Only "release" ships canned DDL
// in this build (see DESIGN.md); every other entity is schema-derived.
func cannedSchema(d Dialect, table string) (string, bool) {
	name := fmt.Sprintf("resources/%s_%s.sql", dialectPrefix(d), table)
	b, err := cannedDDL.ReadFile(name)
	if err != nil {
		return "", false
	}
	return string(b), true
}

// cannedIndices returns the packaged index/constraint DDL for table, run
// only on a clean close (spec.md §4.7 "Close").
func cannedIndices(d Dialect, table string) (string, bool) {
	name := fmt.Sprintf("resources/%s_%s_indices.sql", dialectPrefix(d), table)
	b, err := cannedDDL.ReadFile(name)
	if err != nil {
		return "", false
	}
	return string(b), true
}

func dialectPrefix(d Dialect) string {
	if d == DialectPostgres {
		return "postgres"
	}
	return "sqlite"
}

// splitStatements splits a canned DDL resource into individual statements
// at every semicolon; good enough for the hand-authored
// packaged files, which never embed a semicolon inside a string literal.
func splitStatements(sql string) []string {
	var out []string
	for _, stmt := range strings.Split(sql, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

// cannedMainTableFields reports which fields a canned DDL resource stores
// directly on the main table rather than as a junction — only relevant
// for "release", whose canned resource keeps every collection as a
// junction, so this always returns false here; a canned resource that
// chose to inline a field (e.g. as JSON) would report true for it and
// Derive would skip deriving a junction for that field.
func cannedMainTableFields(table string) func(field string) bool {
	return func(field string) bool { return false }
}
