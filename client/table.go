package client

import (
	"context"
	"fmt"

	"github.com/jassmeen122/techmentorai/core"
)

// Order is the sort direction passed to Order.
type Order struct {
	Ascending bool
}

//region Table

// Table is a handle bound by From. Its chain methods start a Select; its
// Execute is the deferred "select everything" read.
type Table struct {
	client *Client
	query  core.Query
}

// Name returns the bound table.
func (t *Table) Name() core.Table { return t.query.Table() }

// Select records the requested columns. Full documents are always returned.
func (t *Table) Select(columns string) *Select {
	return &Select{client: t.client, query: t.query.Select(columns)}
}

func (t *Table) Eq(field string, value any) *Select  { return t.Select("*").Eq(field, value) }
func (t *Table) Gt(field string, value any) *Select  { return t.Select("*").Gt(field, value) }
func (t *Table) Gte(field string, value any) *Select { return t.Select("*").Gte(field, value) }
func (t *Table) Lt(field string, value any) *Select  { return t.Select("*").Lt(field, value) }
func (t *Table) Lte(field string, value any) *Select { return t.Select("*").Lte(field, value) }
func (t *Table) In(field string, values ...any) *Select {
	return t.Select("*").In(field, values...)
}
func (t *Table) Order(field string, order Order) *Select { return t.Select("*").Order(field, order) }
func (t *Table) Limit(n int) *Select                     { return t.Select("*").Limit(n) }

// Execute reads every document of the table.
func (t *Table) Execute(ctx context.Context) core.Envelope[[]core.Document] {
	return t.Select("*").Execute(ctx)
}

// Single returns the only document of the table.
func (t *Table) Single(ctx context.Context) core.Envelope[core.Document] {
	return t.Select("*").Single(ctx)
}

// Count counts the documents of the table.
func (t *Table) Count(ctx context.Context) core.Envelope[int64] {
	return t.Select("*").Count(ctx)
}

//endregion

//region Select

// Select is an immutable read builder. Every chain method returns a new
// builder; filters are combined with AND in the order they were added.
//
// Example:
//
//	res := c.From(tables.Badges).
//		Select("*").
//		Order("points", client.Order{Ascending: false}).
//		Gte("points", 10).
//		Limit(5).
//		Execute(ctx)
type Select struct {
	client *Client
	query  core.Query
}

func (s *Select) with(query core.Query) *Select {
	return &Select{client: s.client, query: query}
}

// Query returns the accumulated descriptor.
func (s *Select) Query() core.Query { return s.query }

func (s *Select) Eq(field string, value any) *Select  { return s.with(s.query.Eq(field, value)) }
func (s *Select) Gt(field string, value any) *Select  { return s.with(s.query.Gt(field, value)) }
func (s *Select) Gte(field string, value any) *Select { return s.with(s.query.Gte(field, value)) }
func (s *Select) Lt(field string, value any) *Select  { return s.with(s.query.Lt(field, value)) }
func (s *Select) Lte(field string, value any) *Select { return s.with(s.query.Lte(field, value)) }
func (s *Select) In(field string, values ...any) *Select {
	return s.with(s.query.In(field, values...))
}

// Order sets the sort directive, replacing any earlier one.
func (s *Select) Order(field string, order Order) *Select {
	return s.with(s.query.Order(field, order.Ascending))
}

// Limit caps the number of returned documents. n must be positive.
func (s *Select) Limit(n int) *Select { return s.with(s.query.Limit(n)) }

// Execute runs the query and returns the matching documents in order. An
// empty match yields an empty, non-nil slice.
func (s *Select) Execute(ctx context.Context) core.Envelope[[]core.Document] {
	docList, err := s.client.find(ctx, s.query.Where(), s.query)
	if err != nil {
		s.client.report(core.OperationFind, s.query.Table(), err)
		return core.Fail[[]core.Document](err)
	}
	return core.Ok(docList)
}

// Single returns the one document matching the accumulated filters. It
// fails with core.ErrNoRows when nothing matches and core.ErrMultipleRows
// when more than one document does.
func (s *Select) Single(ctx context.Context) core.Envelope[core.Document] {
	where := s.query.Where()
	if where.Limit == 0 || where.Limit > 2 {
		where.Limit = 2
	}

	docList, err := s.client.find(ctx, where, s.query)
	switch {
	case err != nil:
	case len(docList) == 0:
		err = fmt.Errorf("%s: %w", s.query.Table(), core.ErrNoRows)
	case len(docList) > 1:
		err = fmt.Errorf("%s: %w", s.query.Table(), core.ErrMultipleRows)
	}
	if err != nil {
		s.client.report(core.OperationFind, s.query.Table(), err)
		return core.Fail[core.Document](err)
	}
	return core.Ok(docList[0])
}

// Count returns the number of matching documents, capped by Limit.
func (s *Select) Count(ctx context.Context) core.Envelope[int64] {
	count, err := s.client.count(ctx, s.query)
	if err != nil {
		s.client.report(core.OperationCount, s.query.Table(), err)
		return core.Fail[int64](err)
	}
	return core.Ok(count)
}

//endregion

//region execution

// find runs a read for query using where, which may differ from
// query.Where() in its limit.
func (c *Client) find(ctx context.Context, where *core.Where, query core.Query) (docList []core.Document, err error) {
	defer c.recoverInto(core.OperationFind, query.Table(), &err)

	if err := query.Err(); err != nil {
		return nil, err
	}
	schema, collection, err := c.resolve(ctx, query.Table())
	if err != nil {
		return nil, err
	}
	if err := schema.CheckQuery(query); err != nil {
		return nil, err
	}
	if err := schema.RunPre(core.PreFind, nil); err != nil {
		return nil, err
	}

	payload := core.OperationPayload{Table: query.Table(), Where: where}
	err = c.dispatch(ctx, core.OperationFind, payload, func(ctx context.Context) error {
		var err error
		docList, err = collection.Find(ctx, where)
		return err
	})
	if err != nil {
		return nil, err
	}
	if docList == nil {
		docList = []core.Document{}
	}

	for _, doc := range docList {
		if err := schema.RunPost(core.PostFind, doc); err != nil {
			return nil, err
		}
	}
	c.events.Emit(core.EventFind, core.FindPayload{Table: query.Table(), Where: where, DocList: cloneAll(docList)})
	return docList, nil
}

func (c *Client) count(ctx context.Context, query core.Query) (count int64, err error) {
	defer c.recoverInto(core.OperationCount, query.Table(), &err)

	if err := query.Err(); err != nil {
		return 0, err
	}
	schema, collection, err := c.resolve(ctx, query.Table())
	if err != nil {
		return 0, err
	}
	if err := schema.CheckQuery(query); err != nil {
		return 0, err
	}
	// Counting is a read: the same PreFind hooks that guard Execute apply.
	if err := schema.RunPre(core.PreFind, nil); err != nil {
		return 0, err
	}

	where := query.Where()
	payload := core.OperationPayload{Table: query.Table(), Where: where}
	err = c.dispatch(ctx, core.OperationCount, payload, func(ctx context.Context) error {
		var err error
		count, err = collection.CountDocuments(ctx, where)
		return err
	})
	return count, err
}

// cloneAll copies docList so that event handlers never share documents
// with the caller.
func cloneAll(docList []core.Document) []core.Document {
	out := make([]core.Document, len(docList))
	for i, doc := range docList {
		out[i] = doc.Clone()
	}
	return out
}

//endregion
