package postgres

import (
	"reflect"
	"sync"
)

// ExtractDBColumns lists the "db" tags of T in field order, descending into
// embedded structs such as entity.Document.
//
//	ExtractDBColumns[stock_in.Addition]() // ["id", "number", "date", "note", "created_at"]
func ExtractDBColumns[T any]() []string {
	var zero T
	meta := metadataFor(reflect.TypeOf(zero))
	return append([]string(nil), meta.columns...)
}

// StructToMap maps db column to field value for every tagged field of v.
func StructToMap(v any) map[string]any {
	rv := reflect.Indirect(reflect.ValueOf(v))
	if rv.Kind() != reflect.Struct {
		return nil
	}

	meta := metadataFor(rv.Type())
	res := make(map[string]any, len(meta.columns))
	for i, col := range meta.columns {
		res[col] = rv.FieldByIndex(meta.paths[i]).Interface()
	}
	return res
}

// ColumnValues returns the values of v for cols, in that order.
func ColumnValues(v any, cols []string) []any {
	m := StructToMap(v)
	vals := make([]any, len(cols))
	for i, col := range cols {
		vals[i] = m[col]
	}
	return vals
}

type typeMetadata struct {
	columns []string
	paths   [][]int // field index path per column
}

var typeCache sync.Map // reflect.Type -> *typeMetadata

func metadataFor(t reflect.Type) *typeMetadata {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return &typeMetadata{}
	}
	if cached, ok := typeCache.Load(t); ok {
		return cached.(*typeMetadata)
	}

	meta := &typeMetadata{}
	if t.Kind() == reflect.Struct {
		collectFields(t, nil, meta)
	}
	typeCache.Store(t, meta)
	return meta
}

func collectFields(t reflect.Type, prefix []int, meta *typeMetadata) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		path := append(append([]int(nil), prefix...), i)

		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			collectFields(f.Type, path, meta)
			continue
		}

		tag := f.Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}
		meta.columns = append(meta.columns, tag)
		meta.paths = append(meta.paths, path)
	}
}
