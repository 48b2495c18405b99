// Package memory provides an in-process document store implementing
// core.Driver. It backs local CLI runs and facade tests.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/jassmeen122/techmentorai/core"
)

// ErrClosed is returned by every operation after Close.
var ErrClosed = errors.New("memory: driver closed")

//region MemoryDriver

// MemoryDriver keeps documents in maps protected by a RWMutex.
//
// Example:
//
//	driver := memory.NewMemoryDriver()
//	c := client.New(driver, client.WithRegistry(tables.Registry()))
type MemoryDriver struct {
	mutex  sync.RWMutex
	data   map[string]*memoryTable
	closed bool
}

var _ core.Driver = (*MemoryDriver)(nil)

// NewMemoryDriver creates an empty store.
func NewMemoryDriver() *MemoryDriver {
	return &MemoryDriver{data: make(map[string]*memoryTable)}
}

func (driver *MemoryDriver) Connect(ctx context.Context) error {
	return driver.Ping(ctx)
}

func (driver *MemoryDriver) Ping(ctx context.Context) error {
	driver.mutex.RLock()
	defer driver.mutex.RUnlock()
	if driver.closed {
		return ErrClosed
	}
	return nil
}

// Close drops every stored document.
func (driver *MemoryDriver) Close(ctx context.Context) error {
	driver.mutex.Lock()
	defer driver.mutex.Unlock()
	driver.closed = true
	driver.data = make(map[string]*memoryTable)
	return nil
}

// Collection returns the table for schema, creating it on first use.
func (driver *MemoryDriver) Collection(ctx context.Context, schema *core.SchemaCore) (core.Collection, error) {
	if schema.Collection == "" {
		return nil, errors.New("memory: collection name is empty")
	}
	key := schema.Collection
	if schema.Database != "" {
		key = schema.Database + "." + schema.Collection
	}

	driver.mutex.Lock()
	defer driver.mutex.Unlock()
	if driver.closed {
		return nil, ErrClosed
	}
	table, ok := driver.data[key]
	if !ok {
		primaryKey := schema.PrimaryKey
		if primaryKey == "" {
			primaryKey = core.DefaultPrimaryKey
		}
		table = &memoryTable{driver: driver, primaryKey: primaryKey}
		driver.data[key] = table
	}
	return table, nil
}

//endregion

//region memoryTable

type memoryTable struct {
	driver       *MemoryDriver
	mutex        sync.RWMutex
	documentList []core.Document
	primaryKey   string
}

func (t *memoryTable) Find(ctx context.Context, where *core.Where) ([]core.Document, error) {
	if err := t.check(ctx); err != nil {
		return nil, err
	}
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	indexList := t.matching(where)
	resultList := make([]core.Document, 0, len(indexList))
	for _, i := range indexList {
		resultList = append(resultList, cloneDocument(t.documentList[i]))
	}
	return resultList, nil
}

func (t *memoryTable) FindOne(ctx context.Context, where *core.Where) (core.Document, error) {
	if err := t.check(ctx); err != nil {
		return nil, err
	}
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	indexList := t.matching(where)
	if len(indexList) == 0 {
		return nil, nil
	}
	return cloneDocument(t.documentList[indexList[0]]), nil
}

func (t *memoryTable) InsertOne(ctx context.Context, doc core.Document) (any, error) {
	if err := t.check(ctx); err != nil {
		return nil, err
	}
	stored := cloneDocument(doc)
	if stored == nil {
		stored = core.Document{}
	}
	id, ok := stored[t.primaryKey]
	if !ok || id == nil {
		id = uuid.NewString()
		stored[t.primaryKey] = id
	}

	t.mutex.Lock()
	defer t.mutex.Unlock()
	for _, existing := range t.documentList {
		if equal(existing[t.primaryKey], id) {
			return nil, fmt.Errorf("memory: duplicate key %s=%v", t.primaryKey, id)
		}
	}
	t.documentList = append(t.documentList, stored)
	return id, nil
}

func (t *memoryTable) UpdateOne(ctx context.Context, where *core.Where, changes core.Changes) error {
	if err := t.check(ctx); err != nil {
		return err
	}
	t.mutex.Lock()
	defer t.mutex.Unlock()

	indexList := t.matching(firstOf(where))
	if len(indexList) == 0 {
		return nil
	}
	target := t.documentList[indexList[0]]
	for column, value := range changes {
		target[column] = cloneValue(value)
	}
	return nil
}

func (t *memoryTable) DeleteOne(ctx context.Context, where *core.Where) error {
	if err := t.check(ctx); err != nil {
		return err
	}
	t.mutex.Lock()
	defer t.mutex.Unlock()

	indexList := t.matching(firstOf(where))
	if len(indexList) == 0 {
		return nil
	}
	i := indexList[0]
	t.documentList = append(t.documentList[:i], t.documentList[i+1:]...)
	return nil
}

func (t *memoryTable) CountDocuments(ctx context.Context, where *core.Where) (int64, error) {
	if err := t.check(ctx); err != nil {
		return 0, err
	}
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return int64(len(t.matching(where))), nil
}

func (t *memoryTable) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return t.driver.Ping(ctx)
}

// matching returns the indexes of the documents selected by where, sorted
// and limited. Callers hold t.mutex.
func (t *memoryTable) matching(where *core.Where) []int {
	var condition *core.Condition
	if where != nil {
		condition = where.Condition
	}

	indexList := []int{}
	for i, doc := range t.documentList {
		if match(doc, condition) {
			indexList = append(indexList, i)
		}
	}

	if where != nil && len(where.Sort) > 0 {
		sort.SliceStable(indexList, func(a, b int) bool {
			left, right := t.documentList[indexList[a]], t.documentList[indexList[b]]
			for _, sortItem := range where.Sort {
				c := compareForSort(left[sortItem.FieldName], right[sortItem.FieldName])
				if c == 0 {
					continue
				}
				if sortItem.Order < 0 {
					return c > 0
				}
				return c < 0
			}
			return false
		})
	}

	if where != nil && where.Limit > 0 && len(indexList) > where.Limit {
		indexList = indexList[:where.Limit]
	}
	return indexList
}

// firstOf narrows where to a single document.
func firstOf(where *core.Where) *core.Where {
	if where == nil {
		return &core.Where{Limit: 1}
	}
	narrowed := *where
	narrowed.Limit = 1
	return &narrowed
}

//endregion
