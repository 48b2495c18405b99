// Package core provides the building blocks of the techmentorai data layer.
// This file defines the error taxonomy surfaced inside result envelopes.
package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidQuery is reported when a call chain cannot be executed.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrUnknownTable is reported for table identifiers missing from the registry.
	ErrUnknownTable = errors.New("unknown table")
	// ErrNoRows is reported by single-row reads that matched nothing.
	ErrNoRows = errors.New("no rows returned")
	// ErrMultipleRows is reported by single-row reads that matched more than one document.
	ErrMultipleRows = errors.New("multiple rows returned")
	// ErrValidation is reported when a payload does not match the table schema.
	ErrValidation = errors.New("document does not match table schema")
	// ErrNotImplemented marks stubbed capabilities (auth, remote functions).
	ErrNotImplemented = errors.New("not implemented")
)

// ErrorKind classifies an ErrorInfo so callers can tell a stub apart from a
// genuine failure without parsing messages.
type ErrorKind string

const (
	KindStore          ErrorKind = "store"
	KindInvalidQuery   ErrorKind = "invalid_query"
	KindNotFound       ErrorKind = "not_found"
	KindMultipleRows   ErrorKind = "multiple_rows"
	KindValidation     ErrorKind = "validation"
	KindNotImplemented ErrorKind = "not_implemented"
)

// ErrorInfo is the error half of a result envelope.
//
// Only Message is part of the wire shape; Kind and the wrapped cause are
// available to Go callers through Kind, errors.Is and errors.As.
type ErrorInfo struct {
	Message string    `json:"message"`
	Kind    ErrorKind `json:"-"`
	cause   error
}

// NewErrorInfo converts err into an ErrorInfo, classifying it by sentinel.
// It returns nil for a nil error.
func NewErrorInfo(err error) *ErrorInfo {
	if err == nil {
		return nil
	}
	var info *ErrorInfo
	if errors.As(err, &info) {
		return info
	}
	return &ErrorInfo{Message: err.Error(), Kind: kindOf(err), cause: err}
}

// NotImplementedError builds the sentinel-backed error used by stubs.
func NotImplementedError(format string, args ...any) *ErrorInfo {
	err := fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotImplemented)
	return &ErrorInfo{Message: err.Error(), Kind: KindNotImplemented, cause: err}
}

// Error implements the error interface.
func (e *ErrorInfo) Error() string {
	return e.Message
}

// Unwrap exposes the original cause.
func (e *ErrorInfo) Unwrap() error {
	return e.cause
}

// NotImplemented reports whether the error comes from a stubbed capability.
func (e *ErrorInfo) NotImplemented() bool {
	return e != nil && e.Kind == KindNotImplemented
}

func kindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrNotImplemented):
		return KindNotImplemented
	case errors.Is(err, ErrNoRows):
		return KindNotFound
	case errors.Is(err, ErrMultipleRows):
		return KindMultipleRows
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrInvalidQuery), errors.Is(err, ErrUnknownTable):
		return KindInvalidQuery
	default:
		return KindStore
	}
}
