package client

import (
	"context"

	"github.com/jassmeen122/techmentorai/core"
	"go.uber.org/zap"
)

// Names of the remote functions the shim answers.
const (
	FunctionExecuteCode = "execute-code"
	FunctionAnalyzeCode = "analyze-code"
)

// InvokeOptions carries the arguments of a remote function call.
type InvokeOptions struct {
	Body    any               `json:"body,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
}

// Functions answers remote function invocations with canned payloads.
type Functions struct {
	logger *zap.Logger
}

// Invoke returns a canned payload for execute-code and analyze-code and a
// not-implemented error for any other name.
//
// Example:
//
//	res := c.Functions.Invoke(ctx, client.FunctionExecuteCode, client.InvokeOptions{
//		Body: map[string]any{"code": "print(1)", "language": "python"},
//	})
func (f *Functions) Invoke(ctx context.Context, name string, options InvokeOptions) core.Envelope[map[string]any] {
	f.logger.Debug("function invoked", zap.String("function", name), zap.Any("body", options.Body))

	switch name {
	case FunctionExecuteCode:
		return core.Ok(map[string]any{
			"output": "Code execution is not implemented yet",
			"error":  nil,
		})
	case FunctionAnalyzeCode:
		return core.Ok(map[string]any{
			"analysis": "Code analysis is not implemented yet",
		})
	}
	return core.Fail[map[string]any](core.NotImplementedError("function %q", name))
}
