package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeJSON(t *testing.T) {
	testList := []struct {
		name string
		env  json.Marshaler
		want string
	}{
		{"documents", Ok([]Document{{"id": "1"}}), `{"data":[{"id":"1"}],"error":null}`},
		{"empty list", Ok([]Document{}), `{"data":[],"error":null}`},
		{"count", Ok(int64(3)), `{"data":3,"error":null}`},
		{"failure hides data", Envelope[int64]{Data: 7, Error: &ErrorInfo{Message: "boom"}}, `{"data":null,"error":{"message":"boom"}}`},
		{"fail", Fail[Document](errors.New("boom")), `{"data":null,"error":{"message":"boom"}}`},
	}
	for _, tt := range testList {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := json.Marshal(tt.env)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(raw))
		})
	}
}

func TestFailWithNilError(t *testing.T) {
	env := Fail[Document](nil)
	assert.False(t, env.OK())
	require.NotNil(t, env.Error)
	assert.Equal(t, KindStore, env.Error.Kind)
}

func TestAck(t *testing.T) {
	ok := AckOf(nil)
	assert.True(t, ok.OK())
	assert.NoError(t, ok.Err())

	failed := AckOf(fmt.Errorf("delete: %w", ErrInvalidQuery))
	assert.False(t, failed.OK())
	assert.ErrorIs(t, failed.Err(), ErrInvalidQuery)

	raw, err := json.Marshal(failed)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":{"message":"delete: invalid query"}}`, string(raw))
}

func TestErrorKinds(t *testing.T) {
	testList := []struct {
		err  error
		want ErrorKind
	}{
		{errors.New("connection refused"), KindStore},
		{fmt.Errorf("x: %w", ErrInvalidQuery), KindInvalidQuery},
		{fmt.Errorf("x: %w", ErrUnknownTable), KindInvalidQuery},
		{fmt.Errorf("badges: %w", ErrNoRows), KindNotFound},
		{fmt.Errorf("badges: %w", ErrMultipleRows), KindMultipleRows},
		{fmt.Errorf("%w: points", ErrValidation), KindValidation},
		{NotImplementedError("authentication"), KindNotImplemented},
	}
	for _, tt := range testList {
		t.Run(string(tt.want)+"/"+tt.err.Error(), func(t *testing.T) {
			info := NewErrorInfo(tt.err)
			require.NotNil(t, info)
			assert.Equal(t, tt.want, info.Kind)
			assert.Equal(t, tt.err.Error(), info.Message)
			if cause := errors.Unwrap(tt.err); cause != nil {
				assert.ErrorIs(t, info, cause)
			}
		})
	}
	assert.Nil(t, NewErrorInfo(nil))
}

func TestErrorInfoPassesThrough(t *testing.T) {
	stub := NotImplementedError("function %q", "grade")
	wrapped := fmt.Errorf("invoke: %w", stub)
	assert.Same(t, stub, NewErrorInfo(wrapped))
	assert.True(t, stub.NotImplemented())
	assert.ErrorIs(t, stub, ErrNotImplemented)
	assert.Equal(t, `function "grade": not implemented`, stub.Error())

	var nilInfo *ErrorInfo
	assert.False(t, nilInfo.NotImplemented())
}
