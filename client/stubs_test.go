package client

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/jassmeen122/techmentorai/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestAuthStub(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	session := c.Auth.GetSession(ctx)
	require.Nil(t, session.Error)
	assert.Nil(t, session.Data.Session)

	raw, err := json.Marshal(session)
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":{"session":null},"error":null}`, string(raw))

	user := c.Auth.GetUser(ctx)
	require.Nil(t, user.Error)
	assert.Nil(t, user.Data.User)

	called := false
	sub := c.Auth.OnAuthStateChange(func(AuthEvent, *Session) { called = true })
	require.Nil(t, sub.Error)
	require.NotNil(t, sub.Data.Subscription)
	assert.NotPanics(t, sub.Data.Subscription.Unsubscribe)
	assert.False(t, called)

	assert.Nil(t, c.Auth.SignOut(ctx).Error)
}

func TestAuthSignInIsNotImplemented(t *testing.T) {
	obs, logs := observer.New(zapcore.DebugLevel)
	c := newTestClient(t, WithLogger(zap.New(obs)))
	ctx := context.Background()
	credentials := Credentials{Email: "a@b.c", Password: "secret"}

	for name, res := range map[string]interface{ Err() error }{
		"sign in": c.Auth.SignInWithPassword(ctx, credentials),
		"sign up": c.Auth.SignUp(ctx, credentials),
	} {
		t.Run(name, func(t *testing.T) {
			err := res.Err()
			require.Error(t, err)
			var info *core.ErrorInfo
			require.ErrorAs(t, err, &info)
			assert.True(t, info.NotImplemented())
		})
	}

	entries := logs.FilterMessage("auth stub called").All()
	require.Len(t, entries, 2)
	for _, entry := range entries {
		assert.NotContains(t, entry.ContextMap(), "password")
	}
}

func TestFunctionsInvoke(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	body := InvokeOptions{Body: map[string]any{"code": "print(1)", "language": "python"}}

	t.Run("execute-code", func(t *testing.T) {
		res := c.Functions.Invoke(ctx, FunctionExecuteCode, body)
		require.Nil(t, res.Error)
		assert.Equal(t, "Code execution is not implemented yet", res.Data["output"])
		assert.Contains(t, res.Data, "error")
		assert.Nil(t, res.Data["error"])
	})

	t.Run("analyze-code", func(t *testing.T) {
		res := c.Functions.Invoke(ctx, FunctionAnalyzeCode, body)
		require.Nil(t, res.Error)
		assert.Equal(t, map[string]any{"analysis": "Code analysis is not implemented yet"}, res.Data)
	})

	t.Run("unknown function", func(t *testing.T) {
		res := c.Functions.Invoke(ctx, "grade-exam", InvokeOptions{})
		require.NotNil(t, res.Error)
		assert.Equal(t, core.KindNotImplemented, res.Error.Kind)
		assert.ErrorIs(t, res.Err(), core.ErrNotImplemented)
		assert.Contains(t, res.Error.Message, "grade-exam")
		assert.Nil(t, res.Data)
	})

	t.Run("wire shape", func(t *testing.T) {
		raw, err := json.Marshal(c.Functions.Invoke(ctx, FunctionExecuteCode, body))
		require.NoError(t, err)
		assert.JSONEq(t, `{"data":{"output":"Code execution is not implemented yet","error":null},"error":null}`, string(raw))
	})
}
