// Package core provides the building blocks of the techmentorai data layer.
// This file defines the set of supported operators used in query conditions.
package core

// Operator represents a comparison or logical operator used in a query condition.
//
// Operators can be logical (AND) or value-based (EQ, GT, IN, etc.).
type Operator string

const (
	// Logical operators
	opAnd Operator = "AND"

	// Value-based operators
	opEq  Operator = "EQ"  // field = value
	opGt  Operator = "GT"  // field > value
	opGte Operator = "GTE" // field >= value
	opLt  Operator = "LT"  // field < value
	opLte Operator = "LTE" // field <= value
	opIn  Operator = "IN"  // field IN (value list)
)

// Public operator aliases exposed to drivers and callers.
//
// Example:
//
//	cond := &core.Condition{FieldName: "points", Operator: &core.OpGt, Value: 18}
var (
	OpAnd = opAnd
	OpEq  = opEq
	OpGt  = opGt
	OpGte = opGte
	OpLt  = opLt
	OpLte = opLte
	OpIn  = opIn
)

// ParseOperator resolves the lower-case relational name used by the facade
// ("eq", "gt", "gte", "lt", "lte", "in") into an Operator.
func ParseOperator(name string) (Operator, bool) {
	switch name {
	case "eq":
		return OpEq, true
	case "gt":
		return OpGt, true
	case "gte":
		return OpGte, true
	case "lt":
		return OpLt, true
	case "lte":
		return OpLte, true
	case "in":
		return OpIn, true
	}
	return "", false
}
