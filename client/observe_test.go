package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jassmeen122/techmentorai/core"
	"github.com/jassmeen122/techmentorai/tables"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestHooks(t *testing.T) {
	ctx := context.Background()

	t.Run("pre insert can reject", func(t *testing.T) {
		registry := tables.Registry()
		schema, err := registry.Lookup(tables.Badges)
		require.NoError(t, err)
		schema.RegisterPreHook(core.PreInsert, func(doc core.Document) error {
			if doc["name"] == "forbidden" {
				return errors.New("name is reserved")
			}
			return nil
		})
		c := newTestClient(t, WithRegistry(registry))

		res := c.From(tables.Badges).Insert(ctx, core.Document{"name": "forbidden"})
		require.NotNil(t, res.Error)
		assert.Contains(t, res.Error.Message, "name is reserved")
		assert.Equal(t, int64(0), c.From(tables.Badges).Count(ctx).Data)

		assert.Nil(t, c.From(tables.Badges).Insert(ctx, core.Document{"name": "fine"}).Error)
	})

	t.Run("pre insert can transform", func(t *testing.T) {
		registry := tables.Registry()
		schema, err := registry.Lookup(tables.Badges)
		require.NoError(t, err)
		schema.RegisterPreHook(core.PreInsert, func(doc core.Document) error {
			doc["icon"] = "default.svg"
			return nil
		})
		c := newTestClient(t, WithRegistry(registry))

		res := c.From(tables.Badges).Insert(ctx, core.Document{"name": "A"})
		require.Nil(t, res.Error)
		assert.Equal(t, "default.svg", res.Data["icon"])
	})

	t.Run("post find sees every document", func(t *testing.T) {
		registry := tables.Registry()
		schema, err := registry.Lookup(tables.Badges)
		require.NoError(t, err)
		seen := 0
		schema.RegisterPostHook(core.PostFind, func(doc core.Document) error {
			seen++
			return nil
		})
		c := newTestClient(t, WithRegistry(registry))
		mustInsert(t, c, tables.Badges, core.Document{"name": "A"})
		mustInsert(t, c, tables.Badges, core.Document{"name": "B"})

		require.Nil(t, c.From(tables.Badges).Execute(ctx).Error)
		assert.Equal(t, 2, seen)
	})

	t.Run("pre find guards every read", func(t *testing.T) {
		registry := tables.Registry()
		schema, err := registry.Lookup(tables.Badges)
		require.NoError(t, err)
		c := newTestClient(t, WithRegistry(registry))
		mustInsert(t, c, tables.Badges, core.Document{"name": "A"})
		schema.RegisterPreHook(core.PreFind, func(core.Document) error { return errors.New("reads are closed") })

		for name, err := range map[string]error{
			"execute": c.From(tables.Badges).Execute(ctx).Err(),
			"single":  c.From(tables.Badges).Single(ctx).Err(),
			"count":   c.From(tables.Badges).Count(ctx).Err(),
		} {
			assert.ErrorContains(t, err, "reads are closed", name)
		}
	})

	t.Run("registries do not share hooks", func(t *testing.T) {
		first := tables.Registry()
		schema, err := first.Lookup(tables.Badges)
		require.NoError(t, err)
		schema.RegisterPreHook(core.PreInsert, func(core.Document) error { return errors.New("nope") })

		c := newTestClient(t)
		assert.Nil(t, c.From(tables.Badges).Insert(ctx, core.Document{"name": "A"}).Error)
	})
}

func TestEventsAreEmitted(t *testing.T) {
	ctx := context.Background()
	events := core.NewEventDispatcher()
	inserted := make(chan core.InsertPayload, 1)
	deleted := make(chan core.DeletePayload, 1)
	events.On(core.EventInsert, func(payload any) { inserted <- payload.(core.InsertPayload) })
	events.On(core.EventDelete, func(payload any) { deleted <- payload.(core.DeletePayload) })

	c := newTestClient(t, WithEvents(events))
	assert.Same(t, events, c.Events())

	doc := mustInsert(t, c, tables.Badges, core.Document{"name": "A"})
	select {
	case payload := <-inserted:
		assert.Equal(t, tables.Badges, payload.Table)
		assert.Equal(t, doc["id"], payload.Doc["id"])
	case <-time.After(time.Second):
		t.Fatal("insert event not received")
	}

	require.Nil(t, c.From(tables.Badges).Delete().Eq("id", doc["id"]).Execute(ctx).Error)
	select {
	case payload := <-deleted:
		assert.Equal(t, tables.Badges, payload.Table)
	case <-time.After(time.Second):
		t.Fatal("delete event not received")
	}
}

func TestFindEventGetsOwnDocuments(t *testing.T) {
	events := core.NewEventDispatcher()
	found := make(chan core.FindPayload, 1)
	release := make(chan struct{})
	events.On(core.EventFind, func(payload any) {
		<-release
		found <- payload.(core.FindPayload)
	})
	c := newTestClient(t, WithEvents(events))
	mustInsert(t, c, tables.Badges, core.Document{"name": "A"})

	res := c.From(tables.Badges).Execute(context.Background())
	require.Nil(t, res.Error)
	res.Data[0]["name"] = "changed by caller"
	close(release)

	select {
	case payload := <-found:
		require.Len(t, payload.DocList, 1)
		assert.Equal(t, "A", payload.DocList[0]["name"])
	case <-time.After(time.Second):
		t.Fatal("find event not received")
	}
}

func TestOperationsAreLogged(t *testing.T) {
	ctx := context.Background()
	obs, logs := observer.New(zapcore.DebugLevel)
	c := newTestClient(t, WithLogger(zap.New(obs)))

	mustInsert(t, c, tables.Badges, core.Document{"name": "A"})
	c.From(tables.Badges).Eq("id", "missing").Single(ctx)

	ops := logs.FilterMessage("store operation").All()
	require.Len(t, ops, 2)
	assert.Equal(t, "insert", ops[0].ContextMap()["op"])
	assert.Equal(t, "badges", ops[0].ContextMap()["table"])
	assert.Equal(t, "find", ops[1].ContextMap()["op"])

	failed := logs.FilterMessage("operation returned an error envelope").All()
	require.Len(t, failed, 1)
	assert.Equal(t, string(core.KindNotFound), failed[0].ContextMap()["kind"])
}

func TestPanicIsLogged(t *testing.T) {
	obs, logs := observer.New(zapcore.ErrorLevel)
	c := New(&fakeDriver{collection: &fakeCollection{panicWith: "boom"}}, WithLogger(zap.New(obs)))

	res := c.From("badges").Count(context.Background())
	require.NotNil(t, res.Error)
	assert.Equal(t, 1, logs.FilterMessage("recovered panic in store operation").Len())
}

func TestMetricsMiddleware(t *testing.T) {
	ctx := context.Background()
	registry := prometheus.NewRegistry()
	mw, err := core.MetricsMiddleware(registry)
	require.NoError(t, err)
	c := newTestClient(t, WithMiddleware(mw))

	mustInsert(t, c, tables.Badges, core.Document{"name": "A"})
	c.From(tables.Badges).Execute(ctx)
	c.From(tables.Badges).Execute(ctx)

	count, err := testutil.GatherAndCount(registry, "techmentorai_store_operations_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
