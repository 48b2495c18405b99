package core

import "encoding/json"

// Envelope is the uniform result of every terminal operation: exactly one of
// Data and Error is meaningful. On failure Data holds the zero value and is
// encoded as null.
type Envelope[T any] struct {
	Data  T          `json:"data"`
	Error *ErrorInfo `json:"error"`
}

// Ok wraps a successful result.
func Ok[T any](data T) Envelope[T] {
	return Envelope[T]{Data: data}
}

// Fail wraps a failure. A nil err still yields a failed envelope so that the
// one-of invariant holds for callers that construct envelopes by hand.
func Fail[T any](err error) Envelope[T] {
	info := NewErrorInfo(err)
	if info == nil {
		info = &ErrorInfo{Message: "unknown error", Kind: KindStore}
	}
	return Envelope[T]{Error: info}
}

// OK reports whether the envelope carries data.
func (e Envelope[T]) OK() bool {
	return e.Error == nil
}

// Err returns the envelope error as an error value, or nil.
func (e Envelope[T]) Err() error {
	if e.Error == nil {
		return nil
	}
	return e.Error
}

// MarshalJSON encodes {"data": ..., "error": ...} with data forced to null on failure.
func (e Envelope[T]) MarshalJSON() ([]byte, error) {
	if e.Error != nil {
		return json.Marshal(struct {
			Data  any        `json:"data"`
			Error *ErrorInfo `json:"error"`
		}{Data: nil, Error: e.Error})
	}
	return json.Marshal(struct {
		Data  T          `json:"data"`
		Error *ErrorInfo `json:"error"`
	}{Data: e.Data})
}

// Ack is the result of update and delete, which return no document.
type Ack struct {
	Error *ErrorInfo `json:"error"`
}

// AckOf builds an Ack from an optional error.
func AckOf(err error) Ack {
	return Ack{Error: NewErrorInfo(err)}
}

// OK reports whether the operation succeeded.
func (a Ack) OK() bool {
	return a.Error == nil
}

// Err returns the ack error as an error value, or nil.
func (a Ack) Err() error {
	if a.Error == nil {
		return nil
	}
	return a.Error
}
