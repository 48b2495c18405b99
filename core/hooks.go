// Package core provides the building blocks of the techmentorai data layer.
// This file defines lifecycle hooks that allow custom logic to be executed
// before or after persistence operations such as insert, update, delete, and find.
package core

// PreHook represents a lifecycle hook that runs before a persistence operation.
//
// Hooks are identified by string tokens (e.g., "pre:insert") and are
// registered per table schema. They allow defaults, transformation,
// or rejection to be applied before the operation is executed.
type PreHook string

// PostHook represents a lifecycle hook that runs after a persistence operation.
//
// Post hooks observe the document the operation produced. Their errors are
// reported in the envelope but do not undo the operation.
type PostHook string

const (
	// PreInsert is executed before a document is inserted.
	PreInsert PreHook = "pre:insert"
	// PreUpdate is executed on the patch before it is merged.
	PreUpdate PreHook = "pre:update"
	// PreDelete is executed before a document is deleted.
	PreDelete PreHook = "pre:delete"
	// PreFind is executed before a query (find operation) is performed.
	PreFind PreHook = "pre:find"

	// PostInsert is executed after a document is inserted and re-fetched.
	PostInsert PostHook = "post:insert"
	// PostUpdate is executed after a patch is merged.
	PostUpdate PostHook = "post:update"
	// PostDelete is executed after a document is deleted.
	PostDelete PostHook = "post:delete"
	// PostFind is executed for every document a query returns.
	PostFind PostHook = "post:find"
)

// HookFunc receives the document (or patch) an operation works on.
// PreFind and PreDelete hooks receive a nil document.
type HookFunc func(doc Document) error
