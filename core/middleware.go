// Package core provides the building blocks of the techmentorai data layer.
// This file defines the middleware system, which allows cross-cutting concerns
// (logging, metrics, auditing, etc.) to be applied to store operations.
package core

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Operation represents the type of store operation being executed.
//
// It is used within middlewares to distinguish between inserts, updates,
// deletes, counts, and queries.
type Operation string

const (
	// OperationInsert corresponds to an insert (create) operation.
	OperationInsert Operation = "insert"
	// OperationUpdate corresponds to an update operation.
	OperationUpdate Operation = "update"
	// OperationDelete corresponds to a delete operation.
	OperationDelete Operation = "delete"
	// OperationFind corresponds to a query (find) operation.
	OperationFind Operation = "find"
	// OperationCount corresponds to a count operation.
	OperationCount Operation = "count"
)

// OperationPayload describes the operation passed through the middleware chain.
type OperationPayload struct {
	Table Table
	Where *Where
	Doc   Document
}

// Handler is the function signature executed by the operation pipeline.
//
// It receives a context, the operation type, and the operation payload.
// Handlers are composed by middlewares to add cross-cutting logic.
type Handler func(ctx context.Context, op Operation, payload OperationPayload) error

// Middleware is a function that wraps a Handler with additional logic.
// They follow the decorator pattern.
type Middleware func(next Handler) Handler

// Chain is an ordered list of middlewares.
//
// Middlewares are executed in reverse registration order: the most
// recently registered middleware is executed first.
type Chain struct {
	middlewareList []Middleware
}

// NewChain creates a chain holding the given middlewares.
func NewChain(middlewares ...Middleware) *Chain {
	return &Chain{middlewareList: append([]Middleware{}, middlewares...)}
}

// Use registers a new middleware on the chain.
func (c *Chain) Use(mw Middleware) {
	c.middlewareList = append(c.middlewareList, mw)
}

// Dispatch executes an operation through the middleware chain.
//
// The exec function contains the core logic of the operation and is wrapped
// by the registered middlewares.
func (c *Chain) Dispatch(ctx context.Context, op Operation, payload OperationPayload, exec func(ctx context.Context) error) error {
	h := Handler(func(ctx context.Context, op Operation, payload OperationPayload) error {
		return exec(ctx)
	})
	if c != nil {
		// Wrap in registration order so the last registered ends up outermost.
		for _, mw := range c.middlewareList {
			h = mw(h)
		}
	}
	return h(ctx, op, payload)
}

// LoggingMiddleware logs all operations passing through the facade.
//
// It measures execution time and logs both success (debug) and error (warn)
// cases.
//
// Example:
//
//	chain.Use(core.LoggingMiddleware(logger))
func LoggingMiddleware(logger *zap.Logger) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, op Operation, payload OperationPayload) error {
			start := time.Now()
			err := next(ctx, op, payload)
			fields := []zap.Field{
				zap.String("op", string(op)),
				zap.String("table", string(payload.Table)),
				zap.Duration("took", time.Since(start)),
			}
			if err != nil {
				logger.Warn("store operation failed", append(fields, zap.Error(err))...)
			} else {
				logger.Debug("store operation", fields...)
			}
			return err
		}
	}
}

// MetricsMiddleware counts operations and observes their latency.
//
// Collectors are registered on registerer; registering twice on the same
// registerer reuses the existing collectors.
//
// Example:
//
//	mw, err := core.MetricsMiddleware(prometheus.DefaultRegisterer)
func MetricsMiddleware(registerer prometheus.Registerer) (Middleware, error) {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "techmentorai",
		Name:      "store_operations_total",
		Help:      "Store operations executed by the table facade.",
	}, []string{"table", "operation", "outcome"})
	histogram := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "techmentorai",
		Name:      "store_operation_duration_seconds",
		Help:      "Latency of store operations executed by the table facade.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"table", "operation"})

	if err := registerer.Register(counter); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			return nil, err
		}
		counter = already.ExistingCollector.(*prometheus.CounterVec)
	}
	if err := registerer.Register(histogram); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			return nil, err
		}
		histogram = already.ExistingCollector.(*prometheus.HistogramVec)
	}

	return func(next Handler) Handler {
		return func(ctx context.Context, op Operation, payload OperationPayload) error {
			start := time.Now()
			err := next(ctx, op, payload)
			outcome := "ok"
			if err != nil {
				outcome = "error"
			}
			counter.WithLabelValues(string(payload.Table), string(op), outcome).Inc()
			histogram.WithLabelValues(string(payload.Table), string(op)).Observe(time.Since(start).Seconds())
			return err
		}
	}, nil
}
