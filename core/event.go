// Package core provides the building blocks of the techmentorai data layer.
// It defines abstractions for queries, table schemas, events, and drivers.
package core

import "sync"

// Event represents a lifecycle event emitted by the facade.
//
// Events are triggered after successful insert, update, delete, and find
// operations. They allow callers to observe or react to changes in the
// persistence layer without wrapping the facade.
type Event string

const (
	// EventInsert is emitted after a document is inserted.
	EventInsert Event = "insert"
	// EventUpdate is emitted after a document is updated.
	EventUpdate Event = "update"
	// EventDelete is emitted after a document is deleted.
	EventDelete Event = "delete"
	// EventFind is emitted after documents are retrieved.
	EventFind Event = "find"
)

// EventHandler defines the callback signature for event listeners.
// The payload argument varies depending on the event type (InsertPayload,
// UpdatePayload, DeletePayload, FindPayload).
type EventHandler func(payload any)

// EventDispatcher manages a list of event handlers and dispatches them
// when the corresponding events are emitted.
type EventDispatcher struct {
	mutex       sync.RWMutex
	handlerList map[Event][]EventHandler
}

// NewEventDispatcher creates an empty dispatcher.
func NewEventDispatcher() *EventDispatcher {
	return &EventDispatcher{handlerList: make(map[Event][]EventHandler)}
}

// On registers an EventHandler for a specific Event.
//
// Example:
//
//	events.On(core.EventInsert, func(payload any) {
//	    if p, ok := payload.(core.InsertPayload); ok {
//	        log.Printf("%s inserted: %v", p.Table, p.Doc["id"])
//	    }
//	})
func (d *EventDispatcher) On(event Event, handler EventHandler) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.handlerList[event] = append(d.handlerList[event], handler)
}

// Emit triggers all registered handlers for the given Event.
//
// Handlers are executed asynchronously in separate goroutines.
// The payload type depends on the event being emitted.
func (d *EventDispatcher) Emit(event Event, payload any) {
	if d == nil {
		return
	}
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	if hs, ok := d.handlerList[event]; ok {
		for _, h := range hs {
			go h(payload)
		}
	}
}

// InsertPayload is passed to EventInsert handlers.
type InsertPayload struct {
	Table Table
	Doc   Document
}

// UpdatePayload is passed to EventUpdate handlers.
type UpdatePayload struct {
	Table   Table
	Where   *Where
	Changes Changes
}

// DeletePayload is passed to EventDelete handlers.
type DeletePayload struct {
	Table Table
	Where *Where
}

// FindPayload is passed to EventFind handlers.
type FindPayload struct {
	Table   Table
	Where   *Where
	DocList []Document
}
