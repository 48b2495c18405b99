// Package core provides the building blocks of the techmentorai data layer.
// This file defines the query descriptor, which accumulates the relational
// filter, sort, and limit state of a call chain before it is executed.
package core

import "fmt"

// Table identifies a collection/table known to the registry.
type Table string

// String returns the table name.
func (t Table) String() string { return string(t) }

// Query is the descriptor built by a relational call chain.
//
// Query is a value: every chaining method returns a new Query and leaves the
// receiver untouched, so a partially built chain can be shared and extended
// from several places. Filters are kept in insertion order and combined with
// AND when the descriptor is translated for a driver.
//
// Example:
//
//	q := core.NewQuery("badges").
//		Order("points", false).
//		Gte("points", 10).
//		Limit(5)
//	where := q.Where()
type Query struct {
	table      Table
	projection string
	filters    []*Condition
	sort       *Sort
	limit      int
	err        error
}

// NewQuery creates an empty descriptor bound to table.
func NewQuery(table Table) Query {
	return Query{table: table, projection: "*"}
}

// Table returns the bound table.
func (q Query) Table() Table { return q.table }

// Projection returns the recorded column list. Drivers return full documents;
// the projection is kept for callers that inspect the descriptor.
func (q Query) Projection() string { return q.projection }

// Err returns the first build error recorded on the chain, if any.
func (q Query) Err() error { return q.err }

// LimitValue returns the recorded limit, 0 when none was set.
func (q Query) LimitValue() int { return q.limit }

// SortRule returns the recorded sort directive, if any.
func (q Query) SortRule() (Sort, bool) {
	if q.sort == nil {
		return Sort{}, false
	}
	return *q.sort, true
}

// Filters returns a copy of the accumulated filters in insertion order.
func (q Query) Filters() []*Condition {
	out := make([]*Condition, len(q.filters))
	copy(out, q.filters)
	return out
}

// Select records the requested columns.
func (q Query) Select(columns string) Query {
	if columns == "" {
		columns = "*"
	}
	q.projection = columns
	return q
}

// Filter appends a filter on field using op.
func (q Query) Filter(field string, op Operator, value any) Query {
	if field == "" {
		return q.fail(fmt.Errorf("%w: filter %s without a field name", ErrInvalidQuery, op))
	}
	cond := Field(field)
	switch op {
	case OpEq:
		cond.Eq(value)
	case OpGt:
		cond.Gt(value)
	case OpGte:
		cond.Gte(value)
	case OpLt:
		cond.Lt(value)
	case OpLte:
		cond.Lte(value)
	case OpIn:
		if values, ok := value.([]any); ok {
			cond.In(values...)
		} else {
			cond.In(value)
		}
	default:
		return q.fail(fmt.Errorf("%w: unsupported operator %q", ErrInvalidQuery, op))
	}

	filters := make([]*Condition, len(q.filters), len(q.filters)+1)
	copy(filters, q.filters)
	q.filters = append(filters, cond)
	return q
}

// Eq adds an equality filter.
func (q Query) Eq(field string, value any) Query { return q.Filter(field, OpEq, value) }

// Gt adds a "greater than" filter.
func (q Query) Gt(field string, value any) Query { return q.Filter(field, OpGt, value) }

// Gte adds a "greater than or equal" filter.
func (q Query) Gte(field string, value any) Query { return q.Filter(field, OpGte, value) }

// Lt adds a "less than" filter.
func (q Query) Lt(field string, value any) Query { return q.Filter(field, OpLt, value) }

// Lte adds a "less than or equal" filter.
func (q Query) Lte(field string, value any) Query { return q.Filter(field, OpLte, value) }

// In adds a membership filter.
func (q Query) In(field string, values ...any) Query { return q.Filter(field, OpIn, values) }

// Order records the sort directive. A later call replaces an earlier one.
func (q Query) Order(field string, ascending bool) Query {
	if field == "" {
		return q.fail(fmt.Errorf("%w: order without a field name", ErrInvalidQuery))
	}
	order := 1
	if !ascending {
		order = -1
	}
	q.sort = &Sort{FieldName: field, Order: order}
	return q
}

// Limit caps the number of returned documents. n must be positive.
func (q Query) Limit(n int) Query {
	if n <= 0 {
		return q.fail(fmt.Errorf("%w: limit must be a positive integer, got %d", ErrInvalidQuery, n))
	}
	q.limit = n
	return q
}

// Where translates the descriptor into the driver-level options.
func (q Query) Where() *Where {
	where := &Where{
		Condition: foldConditionsAnd(q.filters...),
		Limit:     q.limit,
	}
	if q.sort != nil {
		where.Sort = []Sort{*q.sort}
	}
	return where
}

func (q Query) fail(err error) Query {
	if q.err == nil {
		q.err = err
	}
	return q
}
