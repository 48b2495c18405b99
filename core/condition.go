// Package core provides the building blocks of the techmentorai data layer.
// It defines abstractions for queries, table schemas, envelopes, and drivers.
package core

// Condition represents a single clause in a query filter.
//
// A condition targets a specific field (FieldName) with a given operator
// (Eq, Gt, In, etc.) and a comparison value. Conditions can also be nested
// using Children, which drivers combine with AND.
//
// Example:
//
//	cond := Field("points").Gt(18).And(Field("name").Eq("A"))
//
// The above creates a condition equivalent to:
//
//	(points > 18) AND (name = "A")
type Condition struct {
	FieldName string       // The field/column name this condition applies to
	Operator  *Operator    // The comparison operator (Eq, Gt, In, etc.)
	Value     any          // The comparison value
	Children  []*Condition // Nested conditions (AND expressions)
}

// Field starts a condition on the given field name.
func Field(name string) *Condition {
	return &Condition{FieldName: name}
}

// And combines this condition with additional conditions using the logical AND operator.
func (c *Condition) And(conditions ...*Condition) *Condition {
	return &Condition{
		Operator: &OpAnd,
		Children: append([]*Condition{c}, conditions...),
	}
}

// Eq sets this condition to check for equality (=).
func (c *Condition) Eq(v any) *Condition {
	c.Operator = &OpEq
	c.Value = v
	return c
}

// Gt sets this condition to check for "greater than" (>).
func (c *Condition) Gt(v any) *Condition {
	c.Operator = &OpGt
	c.Value = v
	return c
}

// Gte sets this condition to check for "greater than or equal" (>=).
func (c *Condition) Gte(v any) *Condition {
	c.Operator = &OpGte
	c.Value = v
	return c
}

// Lt sets this condition to check for "less than" (<).
func (c *Condition) Lt(v any) *Condition {
	c.Operator = &OpLt
	c.Value = v
	return c
}

// Lte sets this condition to check for "less than or equal" (<=).
func (c *Condition) Lte(v any) *Condition {
	c.Operator = &OpLte
	c.Value = v
	return c
}

// In sets this condition to check whether the field value is contained in the provided list.
func (c *Condition) In(values ...any) *Condition {
	c.Operator = &OpIn
	c.Value = values
	return c
}

// IsLogical reports whether the condition only groups children.
func (c *Condition) IsLogical() bool {
	return c != nil && len(c.Children) > 0
}
