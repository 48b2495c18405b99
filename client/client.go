// Package client exposes the relational-style facade used by the TechMentorAI
// application: table queries, the auth stub and the remote function shim.
//
// Every terminal operation returns an envelope. Store failures, validation
// failures and driver panics are reported in the envelope error and never
// escape as an error return or a panic.
package client

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jassmeen122/techmentorai/core"
	"go.uber.org/zap"
)

// TimestampLayout is the format of generated created_at/updated_at values.
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// Client binds a driver to a table registry.
type Client struct {
	driver   core.Driver
	registry *core.Registry
	logger   *zap.Logger
	chain    *core.Chain
	events   *core.EventDispatcher
	strict   bool
	newID    func() string
	now      func() time.Time

	// Auth is the session facade. It never authenticates anyone.
	Auth *Auth
	// Functions is the remote procedure shim.
	Functions *Functions
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for operation and stub logging.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRegistry restricts the client to the tables of registry. Without a
// registry any table name is accepted and documents are not validated.
func WithRegistry(registry *core.Registry) Option {
	return func(c *Client) { c.registry = registry }
}

// WithMiddleware appends middlewares to the operation chain.
func WithMiddleware(middlewares ...core.Middleware) Option {
	return func(c *Client) {
		for _, mw := range middlewares {
			c.chain.Use(mw)
		}
	}
}

// WithEvents sets the dispatcher lifecycle events are emitted on.
func WithEvents(events *core.EventDispatcher) Option {
	return func(c *Client) { c.events = events }
}

// WithStrictSchemas makes inserts fail when a required column is missing.
func WithStrictSchemas(strict bool) Option {
	return func(c *Client) { c.strict = strict }
}

// WithIDGenerator replaces the UUID generator used for missing primary keys.
func WithIDGenerator(fn func() string) Option {
	return func(c *Client) { c.newID = fn }
}

// WithClock replaces the clock used for timestamp columns.
func WithClock(fn func() time.Time) Option {
	return func(c *Client) { c.now = fn }
}

// New creates a client on top of driver.
//
// Example:
//
//	c := client.New(memory.NewMemoryDriver(),
//		client.WithRegistry(tables.Registry()),
//		client.WithLogger(logger),
//	)
//	res := c.From(tables.Badges).Select("*").Eq("name", "A").Execute(ctx)
func New(driver core.Driver, options ...Option) *Client {
	c := &Client{
		driver: driver,
		logger: zap.NewNop(),
		chain:  core.NewChain(),
		newID:  uuid.NewString,
		now:    time.Now,
	}
	for _, option := range options {
		option(c)
	}
	// Registered last so it runs first and also times the other middlewares.
	c.chain.Use(core.LoggingMiddleware(c.logger))

	c.Auth = &Auth{logger: c.logger}
	c.Functions = &Functions{logger: c.logger}
	return c
}

// From binds a table. No I/O is performed.
func (c *Client) From(table core.Table) *Table {
	return &Table{client: c, query: core.NewQuery(table)}
}

// Events returns the dispatcher lifecycle events are emitted on, or nil.
func (c *Client) Events() *core.EventDispatcher {
	return c.events
}

// Close releases the driver.
func (c *Client) Close(ctx context.Context) error {
	return c.driver.Close(ctx)
}

// resolve looks up the schema of table and the driver collection behind it.
func (c *Client) resolve(ctx context.Context, table core.Table) (*core.TableSchema, core.Collection, error) {
	schema := core.DynamicSchema(table)
	if c.registry != nil {
		var err error
		if schema, err = c.registry.Lookup(table); err != nil {
			return nil, nil, err
		}
	}
	collection, err := c.driver.Collection(ctx, &schema.SchemaCore)
	if err != nil {
		return nil, nil, err
	}
	return schema, collection, nil
}

// dispatch runs exec through the middleware chain. A panic raised by the
// driver is converted into an error.
func (c *Client) dispatch(ctx context.Context, op core.Operation, payload core.OperationPayload, exec func(ctx context.Context) error) error {
	return c.chain.Dispatch(ctx, op, payload, func(ctx context.Context) (err error) {
		defer c.recoverInto(op, payload.Table, &err)
		return exec(ctx)
	})
}

// recoverInto turns a panic into *errp. It must be deferred.
func (c *Client) recoverInto(op core.Operation, table core.Table, errp *error) {
	if r := recover(); r != nil {
		c.logger.Error("recovered panic in store operation",
			zap.String("op", string(op)),
			zap.String("table", string(table)),
			zap.Any("panic", r),
		)
		*errp = fmt.Errorf("store panic: %v", r)
	}
}

// report logs an error that is about to be returned inside an envelope.
func (c *Client) report(op core.Operation, table core.Table, err error) {
	if err == nil {
		return
	}
	info := core.NewErrorInfo(err)
	c.logger.Debug("operation returned an error envelope",
		zap.String("op", string(op)),
		zap.String("table", string(table)),
		zap.String("kind", string(info.Kind)),
		zap.Error(err),
	)
}

func (c *Client) timestamp() string {
	return c.now().UTC().Format(TimestampLayout)
}
