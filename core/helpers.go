// Package core provides the building blocks of the techmentorai data layer.
// This file contains helper functions for reflection, field mapping,
// condition folding, and common value transformations.
package core

import (
	"fmt"
	"reflect"
	"strings"
	"unsafe"

	"github.com/spf13/cast"
)

// offsetOf returns the memory offset of a struct field selected by the given selector function.
//
// Example:
//
//	type Badge struct {
//	    ID   string
//	    Name string
//	}
//
//	offset := offsetOf(func(b *Badge) *string { return &b.Name })
func offsetOf[T any, F any](selector func(*T) *F) uintptr {
	var zero T
	base := uintptr(unsafe.Pointer(&zero))
	ptr := selector(&zero)
	return uintptr(unsafe.Pointer(ptr)) - base
}

// foldConditionsAnd combines multiple conditions into a single condition
// using logical AND. If zero conditions are provided, it returns nil.
// If one condition is provided, it returns that condition.
func foldConditionsAnd(conds ...*Condition) *Condition {
	switch len(conds) {
	case 0:
		return nil
	case 1:
		return conds[0]
	default:
		return &Condition{
			Operator: &OpAnd,
			Children: append([]*Condition{}, conds...),
		}
	}
}

// columnOf returns the column name of a struct field for the given tag key.
func columnOf(sf reflect.StructField, tagKey string) (string, bool) {
	name, options, _ := strings.Cut(sf.Tag.Get(tagKey), ",")
	if name == "-" {
		return "", false
	}
	if name == "" {
		name = sf.Name
	}
	return name, strings.Contains(options, "omitempty")
}

// DecodeDocument maps a document into a struct instance of type T.
//
// Columns are matched against the `db` tag first and then, case-insensitively,
// against the Go field name. It uses reflection to assign values, with
// support for:
//  1. Exact type matching
//  2. Value → pointer conversions (e.g. string → *string)
//  3. Pointer → value conversions (e.g. *string → string)
//  4. Scalar coercion (e.g. int32 → int, int64 → float64, []byte → string)
//
// Example:
//
//	var badge tables.Badge
//	err := core.DecodeDocument(doc, &badge)
func DecodeDocument[T any](doc Document, out *T) error {
	value := reflect.ValueOf(out).Elem()
	if value.Kind() != reflect.Struct {
		return fmt.Errorf("DecodeDocument: %T is not a struct", out)
	}
	structType := value.Type()

	for docKey, docValue := range doc {
		field := fieldForColumn(value, structType, docKey)
		if !field.IsValid() || !field.CanSet() {
			continue
		}
		if err := assign(field, docValue); err != nil {
			return fmt.Errorf("DecodeDocument: column %q: %w", docKey, err)
		}
	}
	return nil
}

// EncodeDocument converts a struct into a Document keyed by `db` tag names.
// Fields tagged with omitempty are skipped when they hold their zero value,
// and nil pointers are always skipped.
func EncodeDocument(v any) (Document, error) {
	return encodeDocument(v, false)
}

// EncodePatch converts a struct into the partial Document of an update. Only
// non-zero fields and non-nil pointers are kept, so an unset field never
// overwrites a stored column. Setting a column to its zero value takes a
// Document or a pointer field.
//
// Example:
//
//	patch, err := core.EncodePatch(tables.Badge{Points: 10})
//	// Document{"points": 10}
func EncodePatch(v any) (Document, error) {
	return encodeDocument(v, true)
}

func encodeDocument(v any, skipZero bool) (Document, error) {
	value := reflect.ValueOf(v)
	if value.Kind() == reflect.Pointer {
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, fmt.Errorf("EncodeDocument: %T is not a struct", v)
	}

	doc := Document{}
	for _, sf := range reflect.VisibleFields(value.Type()) {
		if !sf.IsExported() || sf.Anonymous {
			continue
		}
		column, omitEmpty := columnOf(sf, "db")
		if column == "" {
			continue
		}
		fv := value.FieldByIndex(sf.Index)
		if fv.Kind() == reflect.Pointer {
			if fv.IsNil() {
				continue
			}
			doc[column] = fv.Elem().Interface()
			continue
		}
		if (omitEmpty || skipZero) && fv.IsZero() {
			continue
		}
		doc[column] = fv.Interface()
	}
	return doc, nil
}

func fieldForColumn(value reflect.Value, structType reflect.Type, column string) reflect.Value {
	for _, sf := range reflect.VisibleFields(structType) {
		if !sf.IsExported() || sf.Anonymous {
			continue
		}
		if name, _ := columnOf(sf, "db"); name == column {
			return value.FieldByIndex(sf.Index)
		}
	}
	return value.FieldByNameFunc(func(name string) bool { return strings.EqualFold(name, column) })
}

func assign(field reflect.Value, raw any) error {
	if raw == nil {
		// If the field is a pointer, set to nil; otherwise skip
		if field.Kind() == reflect.Pointer {
			field.Set(reflect.Zero(field.Type()))
		}
		return nil
	}

	rv := reflect.ValueOf(raw)

	// 1) exact type match
	if rv.Type().AssignableTo(field.Type()) {
		field.Set(rv)
		return nil
	}

	// 2) value → pointer
	if field.Kind() == reflect.Pointer {
		ptr := reflect.New(field.Type().Elem())
		if err := assign(ptr.Elem(), raw); err != nil {
			return err
		}
		field.Set(ptr)
		return nil
	}

	// 3) pointer → value
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		return assign(field, rv.Elem().Interface())
	}

	// 4) scalar coercion
	coerced, err := coerce(field.Type(), raw)
	if err != nil {
		return err
	}
	field.Set(coerced)
	return nil
}

func coerce(target reflect.Type, raw any) (reflect.Value, error) {
	var (
		out any
		err error
	)
	if target == timeType {
		t, err := cast.ToTimeE(raw)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(t), nil
	}
	switch target.Kind() {
	case reflect.String:
		out, err = cast.ToStringE(raw)
	case reflect.Bool:
		out, err = cast.ToBoolE(raw)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		out, err = cast.ToInt64E(raw)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		out, err = cast.ToUint64E(raw)
	case reflect.Float32, reflect.Float64:
		out, err = cast.ToFloat64E(raw)
	default:
		rv := reflect.ValueOf(raw)
		if rv.Type().ConvertibleTo(target) {
			return rv.Convert(target), nil
		}
		return reflect.Value{}, fmt.Errorf("cannot assign %T to %s", raw, target)
	}
	if err != nil {
		return reflect.Value{}, err
	}
	return reflect.ValueOf(out).Convert(target), nil
}
