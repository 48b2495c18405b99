package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/jassmeen122/techmentorai/core"
	"github.com/spf13/cast"
)

type filter struct {
	field string
	op    core.Operator
	value any
}

// filterable is implemented by the select, update and delete builders.
type filterable[B any] interface {
	Eq(field string, value any) B
	Gt(field string, value any) B
	Gte(field string, value any) B
	Lt(field string, value any) B
	Lte(field string, value any) B
}

func applyFilters[B filterable[B]](builder B, filterList []filter) B {
	for _, f := range filterList {
		switch f.op {
		case core.OpEq:
			builder = builder.Eq(f.field, f.value)
		case core.OpGt:
			builder = builder.Gt(f.field, f.value)
		case core.OpGte:
			builder = builder.Gte(f.field, f.value)
		case core.OpLt:
			builder = builder.Lt(f.field, f.value)
		case core.OpLte:
			builder = builder.Lte(f.field, f.value)
		}
	}
	return builder
}

// parseFilter parses "field=value". The value is converted to the column
// type when table is registered, and read as JSON otherwise.
func (a *app) parseFilter(table core.Table, op core.Operator, arg string) (filter, error) {
	field, raw, ok := strings.Cut(arg, "=")
	if !ok || field == "" {
		return filter{}, fmt.Errorf("filter %q: expected field=value", arg)
	}
	value, err := a.columnValue(table, field, raw)
	if err != nil {
		return filter{}, err
	}
	return filter{field: field, op: op, value: value}, nil
}

// parseIn parses "field=v1,v2,...".
func (a *app) parseIn(table core.Table, arg string) (string, []any, error) {
	field, raw, ok := strings.Cut(arg, "=")
	if !ok || field == "" {
		return "", nil, fmt.Errorf("filter %q: expected field=v1,v2", arg)
	}
	var values []any
	for _, part := range strings.Split(raw, ",") {
		value, err := a.columnValue(table, field, part)
		if err != nil {
			return "", nil, err
		}
		values = append(values, value)
	}
	return field, values, nil
}

// parseDocument decodes a JSON object and converts its numbers to the
// column types of table.
func (a *app) parseDocument(table core.Table, raw string) (core.Document, error) {
	decoded, err := decodeJSON(raw)
	if err != nil {
		return nil, err
	}
	object, ok := decoded.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected a JSON object, got %T", decoded)
	}
	doc := make(core.Document, len(object))
	for column, value := range object {
		if doc[column], err = a.convert(table, column, value); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// columnValue converts a command-line string for column.
func (a *app) columnValue(table core.Table, column, raw string) (any, error) {
	field := a.field(table, column)
	if field == nil {
		decoded, err := decodeJSON(raw)
		if err != nil {
			return raw, nil
		}
		return a.convert(table, column, decoded)
	}
	return a.convert(table, column, raw)
}

// convert casts value to the Go type of column. Unknown columns keep JSON
// semantics with numbers turned into int64 or float64.
func (a *app) convert(table core.Table, column string, value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	field := a.field(table, column)
	if field == nil {
		return plainNumber(value), nil
	}

	t := field.Type
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	var (
		out any
		err error
	)
	switch t.Kind() {
	case reflect.String:
		// time.Time columns land here too: timestamps travel as strings.
		out, err = cast.ToStringE(value)
	case reflect.Bool:
		out, err = cast.ToBoolE(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		out, err = cast.ToInt64E(value)
	case reflect.Float32, reflect.Float64:
		out, err = cast.ToFloat64E(value)
	case reflect.Struct:
		if _, isNumber := value.(json.Number); isNumber {
			return plainNumber(value), nil
		}
		out, err = cast.ToStringE(value)
	default:
		return plainNumber(value), nil
	}
	if err != nil {
		return nil, fmt.Errorf("column %s.%s: %w", table, column, err)
	}
	return out, nil
}

func (a *app) field(table core.Table, column string) *core.FieldMeta {
	if a.registry == nil {
		return nil
	}
	schema, err := a.registry.Lookup(table)
	if err != nil {
		return nil
	}
	return schema.Column(column)
}

func decodeJSON(raw string) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader([]byte(raw)))
	decoder.UseNumber()
	var v any
	if err := decoder.Decode(&v); err != nil {
		return nil, fmt.Errorf("invalid JSON %q: %w", raw, err)
	}
	if decoder.More() {
		return nil, fmt.Errorf("invalid JSON %q: trailing data", raw)
	}
	return v, nil
}

// plainNumber replaces json.Number values, recursively, with int64 or float64.
func plainNumber(v any) any {
	switch value := v.(type) {
	case json.Number:
		if n, err := value.Int64(); err == nil {
			return n
		}
		f, _ := value.Float64()
		return f
	case map[string]any:
		for k, item := range value {
			value[k] = plainNumber(item)
		}
		return value
	case []any:
		for i, item := range value {
			value[i] = plainNumber(item)
		}
		return value
	}
	return v
}
