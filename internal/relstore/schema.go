// Package relstore implements C7, the relational sink: it derives a table
// (and junction-table) schema from a record type the first time it's
// seen, buffers rows per table, and bulk-flushes on a batch threshold —
// SQLite via github.com/mattn/go-sqlite3 and PostgreSQL via
// github.com/jackc/pgx/v5's native COPY FROM STDIN. Neither driver is used
// this way anywhere in the teacher (waugzee drives both exclusively
// through GORM), but both are already indirect dependencies of the
// teacher's go.mod (pulled in by gorm.io/driver/sqlite and
// gorm.io/driver/postgres) and are promoted to direct, hand-driven use
// here because GORM's static struct-tag schema can't express runtime
// schema derivation plus generated junction tables (spec.md §4.7,
// justified in DESIGN.md).
package relstore

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Dialect selects SQL type mapping and identifier quoting.
type Dialect int

const (
	DialectSQLite Dialect = iota
	DialectPostgres
)

// FieldKind is the coarse Go-value classification used for type mapping
// (spec.md §4.7 point 5).
type FieldKind int

const (
	KindInt FieldKind = iota
	KindFloat
	KindString
	KindBool
	KindBytes
)

// Column is one derived main-table column.
type Column struct {
	Name       string
	Kind       FieldKind
	PrimaryKey bool
}

// Junction is a derived child table for a homogeneous list field (spec.md
// §4.7 point 3).
type Junction struct {
	// Name is "<parent_table>_<singular(field)>".
	Name string
	// FieldName is the originating struct field's JSON name, used to pull
	// the collection back out of a record during Rows.
	FieldName string
	// ScalarColumn is set for scalar element types (u64/string); Columns
	// is set for nested-record element types. Exactly one is non-empty.
	ScalarColumn string
	ScalarKind   FieldKind
	Columns      []Column
}

// Schema is the derived (or canned) shape for one record type.
type Schema struct {
	Table      string
	Columns    []Column
	Junctions  []Junction
}

// Derive builds a Schema by reflecting over one record value's struct
// fields, each named by its json tag (or its Go name when untagged; a "-"
// tag skips it); a field whose Go type is a slice is a junction candidate
// unless mainTableFields reports it should stay in the main table
// (canned-DDL override, spec.md §4.7 point 4).
func Derive(tableName string, sample any, mainTableFields func(field string) bool) Schema {
	t := reflect.TypeOf(sample)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	schema := Schema{Table: tableName}
	primaryAssigned := false

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := jsonFieldName(f)
		if name == "" || name == "-" {
			continue
		}

		ft := f.Type
		for ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}

		if ft.Kind() == reflect.Slice && (mainTableFields == nil || !mainTableFields(name)) {
			schema.Junctions = append(schema.Junctions, deriveJunction(tableName, name, ft))
			continue
		}

		kind, ok := kindOf(ft)
		if !ok {
			// Non-list complex values (e.g. a nested struct pointer like
			// parent_label) are stored JSON-encoded in the main table.
			kind = KindString
		}

		col := Column{Name: name, Kind: kind}
		if !primaryAssigned && kind == KindInt {
			col.PrimaryKey = true
			primaryAssigned = true
		}
		schema.Columns = append(schema.Columns, col)
	}

	return schema
}

func deriveJunction(tableName, field string, elemType reflect.Type) Junction {
	singular := singularize(field)
	j := Junction{Name: tableName + "_" + singular, FieldName: field}

	for elemType.Kind() == reflect.Pointer {
		elemType = elemType.Elem()
	}

	if kind, ok := kindOf(elemType); ok {
		j.ScalarColumn = singular
		j.ScalarKind = kind
		return j
	}

	// Nested record element: flatten its fields as junction columns.
	for i := 0; i < elemType.NumField(); i++ {
		f := elemType.Field(i)
		name := jsonFieldName(f)
		if name == "" || name == "-" {
			continue
		}
		ft := f.Type
		for ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Slice {
			// One level of junction-of-junction (e.g. track.artists)
			// collapses to a JSON column rather than a third table tier;
			// the spec only describes one level of decomposition.
			j.Columns = append(j.Columns, Column{Name: name, Kind: KindString})
			continue
		}
		kind, ok := kindOf(ft)
		if !ok {
			kind = KindString
		}
		j.Columns = append(j.Columns, Column{Name: name, Kind: kind})
	}
	return j
}

func kindOf(t reflect.Type) (FieldKind, bool) {
	switch t.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return KindInt, true
	case reflect.Float32, reflect.Float64:
		return KindFloat, true
	case reflect.String:
		return KindString, true
	case reflect.Bool:
		return KindBool, true
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return KindBytes, true
		}
		return 0, false
	default:
		return 0, false
	}
}

func jsonFieldName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" {
		return f.Name
	}
	parts := strings.Split(tag, ",")
	return parts[0]
}

// singularize applies the fixed heuristic of spec.md §4.7: trailing
// "ies"->"y", else "es"->"", else "s"->"", else unchanged.
func singularize(field string) string {
	switch {
	case strings.HasSuffix(field, "ies"):
		return strings.TrimSuffix(field, "ies") + "y"
	case strings.HasSuffix(field, "es"):
		return strings.TrimSuffix(field, "es")
	case strings.HasSuffix(field, "s"):
		return strings.TrimSuffix(field, "s")
	default:
		return field
	}
}

// primaryKeyValue returns the value of row's primary-key column, the value
// every junction row for this record must be prefixed with (spec.md §4.7
// "junction rows carry the parent id").
func (s Schema) primaryKeyValue(row MainRow) any {
	for i, c := range s.Columns {
		if c.PrimaryKey {
			return row[i]
		}
	}
	return nil
}

// ColumnType renders a Column's SQL type for the given dialect, including
// the PRIMARY KEY clause where applicable (spec.md §4.7 point 5).
func (c Column) ColumnType(d Dialect) string {
	var base string
	switch d {
	case DialectSQLite:
		switch c.Kind {
		case KindInt:
			base = "INTEGER"
		case KindFloat:
			base = "REAL"
		case KindBool:
			base = "INTEGER"
		case KindBytes:
			base = "BLOB"
		default:
			base = "TEXT"
		}
		if c.PrimaryKey {
			return base + " PRIMARY KEY"
		}
		return base
	case DialectPostgres:
		switch c.Kind {
		case KindInt:
			base = "BIGINT"
		case KindFloat:
			base = "DOUBLE PRECISION"
		case KindBool:
			base = "BOOLEAN"
		case KindBytes:
			base = "BYTEA"
		default:
			base = "TEXT"
		}
		if c.PrimaryKey {
			return base + " PRIMARY KEY"
		}
		return base
	default:
		return base
	}
}

// QuoteIdent quotes a trusted identifier (table/column name sourced from
// schema metadata, not user input) for safe inclusion in generated DDL/DML
// (spec.md §4.7 "Identifier safety").
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// QuoteLiteralInt is a defensive helper for embedding a known-integer
// literal (e.g. a batch size) directly in generated SQL text.
func QuoteLiteralInt(n int) string {
	return strconv.Itoa(n)
}

// CreateTableSQL synthesizes a CREATE TABLE statement from a derived
// Schema's main-table columns, used when no canned DDL resource exists
// for this table.
func CreateTableSQL(d Dialect, s Schema) string {
	var cols []string
	for _, c := range s.Columns {
		cols = append(cols, fmt.Sprintf("%s %s", QuoteIdent(c.Name), c.ColumnType(d)))
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", QuoteIdent(s.Table), strings.Join(cols, ", "))
}

// CreateJunctionSQL synthesizes a junction table's CREATE TABLE.
func CreateJunctionSQL(d Dialect, parentTable string, j Junction) string {
	parentIDCol := Column{Name: parentTable + "_id", Kind: KindInt}
	cols := []string{fmt.Sprintf("%s %s", QuoteIdent(parentIDCol.Name), parentIDCol.ColumnType(d))}

	if j.ScalarColumn != "" {
		col := Column{Name: j.ScalarColumn, Kind: j.ScalarKind}
		cols = append(cols, fmt.Sprintf("%s %s", QuoteIdent(col.Name), col.ColumnType(d)))
	} else {
		for _, c := range j.Columns {
			cols = append(cols, fmt.Sprintf("%s %s", QuoteIdent(c.Name), c.ColumnType(d)))
		}
	}

	return fmt.Sprintf("CREATE TABLE %s (%s)", QuoteIdent(j.Name), strings.Join(cols, ", "))
}
