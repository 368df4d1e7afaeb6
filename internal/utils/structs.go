package utils

import (
	"fmt"
	"reflect"
	"sync"
)

// ColumnTag names the struct tag shared by scany scans and squirrel inserts.
const ColumnTag = "db"

type taggedField struct {
	index  int
	column string
}

var fieldCache sync.Map

func taggedFields(t reflect.Type) []taggedField {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]taggedField)
	}

	fields := make([]taggedField, 0, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		column := f.Tag.Get(ColumnTag)
		if column == "" || column == "-" {
			continue
		}
		fields = append(fields, taggedField{index: i, column: column})
	}

	actual, _ := fieldCache.LoadOrStore(t, fields)
	return actual.([]taggedField)
}

func structValue(input any) reflect.Value {
	v := reflect.ValueOf(input)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		panic(fmt.Sprintf("utils: expected a struct or pointer to struct, got %T", input))
	}
	return v
}

// StructTagValues lists the column names of a record struct in field order.
func StructTagValues(input any) []string {
	fields := taggedFields(structValue(input).Type())

	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.column
	}
	return columns
}

// StructToMap maps column names to field values for inserts.
func StructToMap(input any) map[string]any {
	v := structValue(input)
	fields := taggedFields(v.Type())

	out := make(map[string]any, len(fields))
	for _, f := range fields {
		out[f.column] = v.Field(f.index).Interface()
	}
	return out
}

func ErrorWrapOrNil(err error, msg string) error {
	switch {
	case err == nil:
		return nil
	case msg == "":
		return err
	default:
		return fmt.Errorf("%s: %w", msg, err)
	}
}
