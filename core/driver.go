// Package core provides the building blocks of the techmentorai data layer.
// It defines abstractions for queries, table schemas, envelopes, and drivers.
package core

import "context"

// Sort represents an ordering rule used in queries.
//
// FieldName specifies which column/field to sort by.
// Order determines the direction: 1 for ascending (ASC), -1 for descending (DESC).
type Sort struct {
	FieldName string
	Order     int // 1 = ASC, -1 = DESC
}

// Where encapsulates the filtering and pagination options a driver executes.
//
// It contains:
//   - Condition: the root filter condition (composed of one or more *Condition).
//   - Sort: list of Sort rules to apply.
//   - Limit: maximum number of results to return (0 means unbounded).
type Where struct {
	Condition *Condition
	Sort      []Sort
	Limit     int
}

// Document is a single record as seen by the facade: a document in a
// collection or a row in a table.
type Document map[string]any

// Clone returns a shallow copy of the document.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Changes represents a set of field updates, mapping column names to new values.
// Drivers merge them into the matched record ($set semantics).
type Changes map[string]any

// Driver defines the contract for storage backends used by the facade.
//
// Each driver (MongoDriver, PostgresDriver, MemoryDriver) implements this
// interface. Connection pooling is owned by the driver; the facade asks for a
// collection on every operation.
type Driver interface {
	// Connect establishes a new connection or validates connectivity.
	Connect(ctx context.Context) error
	// Ping checks if the underlying database is reachable.
	Ping(ctx context.Context) error
	// Close terminates the connection and releases resources.
	Close(ctx context.Context) error

	// Collection resolves the collection/table described by schema.
	Collection(ctx context.Context, schema *SchemaCore) (Collection, error)
}

// Collection defines the per-collection operations the facade translates
// relational calls into.
type Collection interface {
	// Find retrieves every document matching the options, ordered by Sort.
	Find(ctx context.Context, where *Where) ([]Document, error)
	// FindOne retrieves the first document matching the options, or nil.
	FindOne(ctx context.Context, where *Where) (Document, error)
	// InsertOne persists a document and returns its identifier.
	InsertOne(ctx context.Context, doc Document) (any, error)
	// UpdateOne merges changes into the first document matching the options.
	UpdateOne(ctx context.Context, where *Where, changes Changes) error
	// DeleteOne removes the first document matching the options.
	DeleteOne(ctx context.Context, where *Where) error
	// CountDocuments returns the number of documents matching the options.
	CountDocuments(ctx context.Context, where *Where) (int64, error)
}
