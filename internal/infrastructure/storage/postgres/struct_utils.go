package postgres

import (
	"reflect"
	"sync"
)

// ExtractDBColumns extracts all column names from struct "db" tags, in
// field order. Embedded structs (like ledger.StockEntry) are flattened.
//
// Usage:
//
//	columns := ExtractDBColumns[ledger.InwardStockEntry]()
//	// Returns: ["id", "product_id", "quantity", ..., "supplier", "remarks"]
func ExtractDBColumns[T any]() []string {
	var zero T
	meta := getOrCreateTypeMetadata(reflect.TypeOf(zero))
	cols := make([]string, 0, len(meta.fields))
	for _, fi := range meta.fields {
		cols = append(cols, fi.dbTag)
	}
	return cols
}

// StructValues returns the values of the "db"-tagged fields of v in the
// same order as ExtractDBColumns.
func StructValues(v any) []any {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	meta := getOrCreateTypeMetadata(rv.Type())
	values := make([]any, 0, len(meta.fields))
	for _, fi := range meta.fields {
		values = append(values, rv.FieldByIndex(fi.index).Interface())
	}
	return values
}

// fieldInfo contains pre-computed metadata about a struct field.
type fieldInfo struct {
	index []int  // Field index path, through embedded structs
	dbTag string // Database column name
}

// typeMetadata contains cached reflection metadata for a type.
type typeMetadata struct {
	fields []fieldInfo
}

// Global cache for type metadata (thread-safe).
var typeCache sync.Map // map[reflect.Type]*typeMetadata

// getOrCreateTypeMetadata returns cached metadata or creates it if not exists.
func getOrCreateTypeMetadata(t reflect.Type) *typeMetadata {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if cached, ok := typeCache.Load(t); ok {
		return cached.(*typeMetadata)
	}

	meta := &typeMetadata{}
	if t.Kind() == reflect.Struct {
		meta.fields = collectFields(t, nil)
	}

	typeCache.Store(t, meta)
	return meta
}

func collectFields(t reflect.Type, prefix []int) []fieldInfo {
	var fields []fieldInfo
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		index := append(append([]int{}, prefix...), i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			fields = append(fields, collectFields(field.Type, index)...)
			continue
		}

		tag := field.Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}
		fields = append(fields, fieldInfo{index: index, dbTag: tag})
	}
	return fields
}
