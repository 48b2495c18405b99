package memory

import (
	"reflect"
	"strings"
	"time"

	"github.com/jassmeen122/techmentorai/core"
	"github.com/spf13/cast"
)

// match evaluates condition against doc. A nil condition matches everything.
func match(doc core.Document, condition *core.Condition) bool {
	if condition == nil || condition.Operator == nil {
		return true
	}
	if condition.IsLogical() {
		if *condition.Operator != core.OpAnd {
			return false
		}
		for _, child := range condition.Children {
			if !match(doc, child) {
				return false
			}
		}
		return true
	}

	value := doc[condition.FieldName]
	switch *condition.Operator {
	case core.OpEq:
		return equal(value, condition.Value)
	case core.OpGt:
		c, ok := compare(value, condition.Value)
		return ok && c > 0
	case core.OpGte:
		c, ok := compare(value, condition.Value)
		return ok && c >= 0
	case core.OpLt:
		c, ok := compare(value, condition.Value)
		return ok && c < 0
	case core.OpLte:
		c, ok := compare(value, condition.Value)
		return ok && c <= 0
	case core.OpIn:
		candidateList, ok := condition.Value.([]any)
		if !ok {
			candidateList = []any{condition.Value}
		}
		for _, candidate := range candidateList {
			if equal(value, candidate) {
				return true
			}
		}
		return false
	}
	return false
}

func equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if c, ok := compare(a, b); ok {
		return c == 0
	}
	return reflect.DeepEqual(a, b)
}

// compare orders two scalars. Numbers compare numerically regardless of
// their Go type, named string types compare as strings, and timestamps may
// be given as time.Time or as a parseable string.
func compare(a, b any) (int, bool) {
	left, right := scalar(a), scalar(b)
	if left == nil || right == nil {
		return 0, false
	}

	switch l := left.(type) {
	case float64:
		if r, ok := right.(float64); ok {
			return compareOrdered(l, r), true
		}
	case string:
		switch r := right.(type) {
		case string:
			return strings.Compare(l, r), true
		case time.Time:
			if lt, err := cast.ToTimeE(l); err == nil {
				return lt.Compare(r), true
			}
		}
	case time.Time:
		switch r := right.(type) {
		case time.Time:
			return l.Compare(r), true
		case string:
			if rt, err := cast.ToTimeE(r); err == nil {
				return l.Compare(rt), true
			}
		}
	case bool:
		if r, ok := right.(bool); ok {
			switch {
			case l == r:
				return 0, true
			case !l:
				return -1, true
			default:
				return 1, true
			}
		}
	}
	return 0, false
}

// compareForSort places missing values after every present value.
func compareForSort(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	if c, ok := compare(a, b); ok {
		return c
	}
	return 0
}

func scalar(v any) any {
	if v == nil {
		return nil
	}
	if t, ok := v.(time.Time); ok {
		return t
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		return scalar(rv.Elem().Interface())
	}
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	}
	return nil
}

func compareOrdered(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cloneDocument(doc core.Document) core.Document {
	if doc == nil {
		return nil
	}
	out := make(core.Document, len(doc))
	for k, v := range doc {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch value := v.(type) {
	case core.Document:
		return cloneDocument(value)
	case map[string]any:
		return map[string]any(cloneDocument(value))
	case []any:
		out := make([]any, len(value))
		for i, item := range value {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return append([]string(nil), value...)
	default:
		return v
	}
}
