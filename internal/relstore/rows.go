package relstore

import (
	"encoding/json"
	"reflect"
)

// MainRow is one record's values for its main-table columns, in the order
// given by Schema.Columns.
type MainRow []any

// JunctionRow is one element's values for a junction table: the parent
// record's primary key, followed by either the scalar value or the
// flattened nested-record fields, in Junction.Columns order.
type JunctionRow []any

// Rows splits a record into its main-table row and, keyed by junction
// table name, the rows produced from that field's collection (spec.md
// §4.7 "Write path"). mainTableFields mirrors the one passed to Derive:
// fields it reports true for are JSON-encoded into the main table instead
// of becoming a junction.
func Rows(schema Schema, record any, mainTableFields func(field string) bool) (MainRow, map[string][]JunctionRow, error) {
	v := reflect.ValueOf(record)
	for v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	t := v.Type()

	byName := map[string]reflect.Value{}
	for i := 0; i < t.NumField(); i++ {
		name := jsonFieldName(t.Field(i))
		if name == "" || name == "-" {
			continue
		}
		byName[name] = v.Field(i)
	}

	main := make(MainRow, 0, len(schema.Columns))
	for _, col := range schema.Columns {
		fv, ok := byName[col.Name]
		if !ok {
			main = append(main, nil)
			continue
		}
		val, err := scalarValue(fv, col.Kind)
		if err != nil {
			return nil, nil, err
		}
		main = append(main, val)
	}

	parentID := schema.primaryKeyValue(main)

	junctions := map[string][]JunctionRow{}
	for _, j := range schema.Junctions {
		fv, ok := byName[j.FieldName]
		if !ok || fv.Kind() != reflect.Slice {
			continue
		}
		rows := make([]JunctionRow, 0, fv.Len())
		for i := 0; i < fv.Len(); i++ {
			elem := fv.Index(i)
			if j.ScalarColumn != "" {
				val, err := scalarValue(elem, j.ScalarKind)
				if err != nil {
					return nil, nil, err
				}
				rows = append(rows, JunctionRow{parentID, val})
				continue
			}
			row, err := nestedRow(elem, j.Columns)
			if err != nil {
				return nil, nil, err
			}
			rows = append(rows, append(JunctionRow{parentID}, row...))
		}
		junctions[j.Name] = rows
	}

	return main, junctions, nil
}

func nestedRow(elem reflect.Value, cols []Column) (JunctionRow, error) {
	for elem.Kind() == reflect.Pointer {
		elem = elem.Elem()
	}
	byName := map[string]reflect.Value{}
	for i := 0; i < elem.NumField(); i++ {
		name := jsonFieldName(elem.Type().Field(i))
		if name == "" || name == "-" {
			continue
		}
		byName[name] = elem.Field(i)
	}
	row := make(JunctionRow, 0, len(cols))
	for _, c := range cols {
		fv, ok := byName[c.Name]
		if !ok {
			row = append(row, nil)
			continue
		}
		val, err := scalarValue(fv, c.Kind)
		if err != nil {
			return nil, err
		}
		row = append(row, val)
	}
	return row, nil
}

func scalarValue(fv reflect.Value, kind FieldKind) (any, error) {
	for fv.Kind() == reflect.Pointer {
		if fv.IsNil() {
			return nil, nil
		}
		fv = fv.Elem()
	}

	switch fv.Kind() {
	case reflect.Slice, reflect.Struct, reflect.Map:
		if kind == KindBytes {
			if b, ok := fv.Interface().([]byte); ok {
				return b, nil
			}
		}
		b, err := json.Marshal(fv.Interface())
		if err != nil {
			return nil, err
		}
		return string(b), nil
	default:
		return fv.Interface(), nil
	}
}
