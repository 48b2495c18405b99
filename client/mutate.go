package client

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/jassmeen122/techmentorai/core"
)

//region Insert

// Insert stores one document and returns it as re-read from the store.
//
// data is a core.Document, a map[string]any or a row struct from package
// tables. A missing primary key is generated, timestamp columns are filled,
// column defaults are applied and the document is validated against the
// table schema before it reaches the driver.
//
// Example:
//
//	res := c.From(tables.Badges).Insert(ctx, core.Document{"name": "A", "points": 5})
//	if res.Error != nil {
//		return res.Error
//	}
//	id := res.Data["id"]
func (t *Table) Insert(ctx context.Context, data any) core.Envelope[core.Document] {
	doc, err := t.client.insert(ctx, t.query.Table(), data)
	if err != nil {
		t.client.report(core.OperationInsert, t.query.Table(), err)
		return core.Fail[core.Document](err)
	}
	return core.Ok(doc)
}

func (c *Client) insert(ctx context.Context, table core.Table, data any) (inserted core.Document, err error) {
	defer c.recoverInto(core.OperationInsert, table, &err)

	doc, err := toDocument(data)
	if err != nil {
		return nil, err
	}
	schema, collection, err := c.resolve(ctx, table)
	if err != nil {
		return nil, err
	}

	schema.ApplyDefaults(doc)
	if isBlank(doc[schema.PrimaryKey]) {
		doc[schema.PrimaryKey] = c.newID()
	}
	now := c.timestamp()
	for _, column := range []string{schema.CreatedAtColumn(), schema.UpdatedAtColumn()} {
		if column != "" && isBlank(doc[column]) {
			doc[column] = now
		}
	}

	if err := schema.RunPre(core.PreInsert, doc); err != nil {
		return nil, err
	}
	if err := schema.Validate(doc, c.strict); err != nil {
		return nil, err
	}

	payload := core.OperationPayload{Table: table, Doc: doc}
	err = c.dispatch(ctx, core.OperationInsert, payload, func(ctx context.Context) error {
		id, err := collection.InsertOne(ctx, doc)
		if err != nil {
			return err
		}
		byID := &core.Where{Condition: core.Field(schema.PrimaryKey).Eq(id)}
		if inserted, err = collection.FindOne(ctx, byID); err != nil {
			return err
		}
		if inserted == nil {
			return fmt.Errorf("inserted document %s=%v not found on re-read", schema.PrimaryKey, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := schema.RunPost(core.PostInsert, inserted); err != nil {
		return nil, err
	}
	c.events.Emit(core.EventInsert, core.InsertPayload{Table: table, Doc: inserted.Clone()})
	return inserted, nil
}

//endregion

//region Update

// Update starts a partial update: the columns of patch are merged into the
// first document matching the filters chained after it. A row struct patch
// only carries its non-zero fields.
//
// Example:
//
//	ack := c.From(tables.Badges).Update(core.Document{"points": 10}).Eq("id", id).Execute(ctx)
func (t *Table) Update(patch any) *Update {
	return &Update{client: t.client, query: t.query, patch: patch}
}

// Update is an immutable update builder.
type Update struct {
	client *Client
	query  core.Query
	patch  any
}

func (u *Update) with(query core.Query) *Update {
	return &Update{client: u.client, query: query, patch: u.patch}
}

func (u *Update) Eq(field string, value any) *Update  { return u.with(u.query.Eq(field, value)) }
func (u *Update) Gt(field string, value any) *Update  { return u.with(u.query.Gt(field, value)) }
func (u *Update) Gte(field string, value any) *Update { return u.with(u.query.Gte(field, value)) }
func (u *Update) Lt(field string, value any) *Update  { return u.with(u.query.Lt(field, value)) }
func (u *Update) Lte(field string, value any) *Update { return u.with(u.query.Lte(field, value)) }

// Execute applies the patch. A filter that matches nothing is not an error.
func (u *Update) Execute(ctx context.Context) core.Ack {
	err := u.client.update(ctx, u.query, u.patch)
	u.client.report(core.OperationUpdate, u.query.Table(), err)
	return core.AckOf(err)
}

func (c *Client) update(ctx context.Context, query core.Query, patch any) (err error) {
	defer c.recoverInto(core.OperationUpdate, query.Table(), &err)

	if err := query.Err(); err != nil {
		return err
	}
	if len(query.Filters()) == 0 {
		return fmt.Errorf("%w: update on %s requires a filter", core.ErrInvalidQuery, query.Table())
	}
	changes, err := toPatch(patch)
	if err != nil {
		return err
	}
	schema, collection, err := c.resolve(ctx, query.Table())
	if err != nil {
		return err
	}
	if err := schema.CheckQuery(query); err != nil {
		return err
	}

	if err := schema.RunPre(core.PreUpdate, changes); err != nil {
		return err
	}
	if column := schema.UpdatedAtColumn(); column != "" && len(changes) > 0 {
		if _, ok := changes[column]; !ok {
			changes[column] = c.timestamp()
		}
	}
	if err := schema.Validate(changes, false); err != nil {
		return err
	}
	if len(changes) == 0 {
		return nil
	}

	where := query.Where()
	payload := core.OperationPayload{Table: query.Table(), Where: where, Doc: changes}
	err = c.dispatch(ctx, core.OperationUpdate, payload, func(ctx context.Context) error {
		return collection.UpdateOne(ctx, where, core.Changes(changes))
	})
	if err != nil {
		return err
	}

	if err := schema.RunPost(core.PostUpdate, changes); err != nil {
		return err
	}
	c.events.Emit(core.EventUpdate, core.UpdatePayload{Table: query.Table(), Where: where, Changes: core.Changes(changes)})
	return nil
}

//endregion

//region Delete

// Delete starts a delete of the first document matching the filters chained
// after it.
//
// Example:
//
//	ack := c.From(tables.Badges).Delete().Eq("id", id).Execute(ctx)
func (t *Table) Delete() *Delete {
	return &Delete{client: t.client, query: t.query}
}

// Delete is an immutable delete builder.
type Delete struct {
	client *Client
	query  core.Query
}

func (d *Delete) with(query core.Query) *Delete {
	return &Delete{client: d.client, query: query}
}

func (d *Delete) Eq(field string, value any) *Delete  { return d.with(d.query.Eq(field, value)) }
func (d *Delete) Gt(field string, value any) *Delete  { return d.with(d.query.Gt(field, value)) }
func (d *Delete) Gte(field string, value any) *Delete { return d.with(d.query.Gte(field, value)) }
func (d *Delete) Lt(field string, value any) *Delete  { return d.with(d.query.Lt(field, value)) }
func (d *Delete) Lte(field string, value any) *Delete { return d.with(d.query.Lte(field, value)) }

// Execute removes the document. A filter that matches nothing is not an error.
func (d *Delete) Execute(ctx context.Context) core.Ack {
	err := d.client.delete(ctx, d.query)
	d.client.report(core.OperationDelete, d.query.Table(), err)
	return core.AckOf(err)
}

func (c *Client) delete(ctx context.Context, query core.Query) (err error) {
	defer c.recoverInto(core.OperationDelete, query.Table(), &err)

	if err := query.Err(); err != nil {
		return err
	}
	if len(query.Filters()) == 0 {
		return fmt.Errorf("%w: delete on %s requires a filter", core.ErrInvalidQuery, query.Table())
	}
	schema, collection, err := c.resolve(ctx, query.Table())
	if err != nil {
		return err
	}
	if err := schema.CheckQuery(query); err != nil {
		return err
	}
	if err := schema.RunPre(core.PreDelete, nil); err != nil {
		return err
	}

	where := query.Where()
	payload := core.OperationPayload{Table: query.Table(), Where: where}
	err = c.dispatch(ctx, core.OperationDelete, payload, func(ctx context.Context) error {
		return collection.DeleteOne(ctx, where)
	})
	if err != nil {
		return err
	}

	if err := schema.RunPost(core.PostDelete, nil); err != nil {
		return err
	}
	c.events.Emit(core.EventDelete, core.DeletePayload{Table: query.Table(), Where: where})
	return nil
}

//endregion

//region helpers

// toDocument copies data into a fresh document.
func toDocument(data any) (core.Document, error) {
	switch v := data.(type) {
	case nil:
		return nil, fmt.Errorf("%w: nil payload", core.ErrInvalidQuery)
	case core.Document:
		return v.Clone(), nil
	case map[string]any:
		return core.Document(v).Clone(), nil
	case core.Changes:
		return core.Document(v).Clone(), nil
	default:
		doc, err := core.EncodeDocument(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", core.ErrInvalidQuery, err)
		}
		return doc, nil
	}
}

// toPatch is toDocument for updates: a row struct contributes only its
// non-zero fields.
func toPatch(data any) (core.Document, error) {
	switch data.(type) {
	case nil, core.Document, map[string]any, core.Changes:
		return toDocument(data)
	}
	doc, err := core.EncodePatch(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidQuery, err)
	}
	return doc, nil
}

// isBlank reports whether a generated column should be filled.
func isBlank(v any) bool {
	switch value := v.(type) {
	case nil:
		return true
	case string:
		return value == ""
	case time.Time:
		return value.IsZero()
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

//endregion
