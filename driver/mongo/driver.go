// Package mongo implements the document-store driver of the table facade on
// top of the official MongoDB Go driver.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jassmeen122/techmentorai/core"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodb "go.mongodb.org/mongo-driver/mongo"
	mopt "go.mongodb.org/mongo-driver/mongo/options"
)

//region MongoDriver

// MongoDriver adapts a MongoDB client to the core.Driver contract.
type MongoDriver struct {
	client          *mongodb.Client
	defaultDatabase string
}

var _ core.Driver = (*MongoDriver)(nil)

// NewMongoDriver connects to uri and verifies connectivity.
func NewMongoDriver(ctx context.Context, uri string, defaultDB string) (*MongoDriver, error) {
	opts := mopt.Client().ApplyURI(uri)
	opts.SetConnectTimeout(10 * time.Second).SetServerSelectionTimeout(10 * time.Second)
	client, err := mongodb.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo: ping: %w", err)
	}
	return &MongoDriver{client: client, defaultDatabase: defaultDB}, nil
}

// NewMongoDriverFromClient wraps an already connected client.
func NewMongoDriverFromClient(client *mongodb.Client, defaultDB string) *MongoDriver {
	return &MongoDriver{client: client, defaultDatabase: defaultDB}
}

func (driver *MongoDriver) dbFor(schema *core.SchemaCore) (*mongodb.Database, error) {
	dbName := driver.defaultDatabase
	if schema.Database != "" {
		dbName = schema.Database
	}
	if dbName == "" {
		return nil, errors.New("mongo: database name is empty (set it on the schema or in NewMongoDriver)")
	}
	return driver.client.Database(dbName), nil
}

func (driver *MongoDriver) Connect(ctx context.Context) error {
	return driver.client.Ping(ctx, nil)
}

func (driver *MongoDriver) Ping(ctx context.Context) error {
	return driver.client.Ping(ctx, nil)
}

func (driver *MongoDriver) Close(ctx context.Context) error {
	return driver.client.Disconnect(ctx)
}

// Collection resolves the MongoDB collection backing schema.
func (driver *MongoDriver) Collection(ctx context.Context, schema *core.SchemaCore) (core.Collection, error) {
	if schema.Collection == "" {
		return nil, errors.New("mongo: collection name is empty")
	}
	db, err := driver.dbFor(schema)
	if err != nil {
		return nil, err
	}
	return &mongoCollection{
		collection: db.Collection(schema.Collection),
		primaryKey: schema.PrimaryKey,
	}, nil
}

//endregion

//region mongoCollection

type mongoCollection struct {
	collection *mongodb.Collection
	primaryKey string
}

func (c *mongoCollection) Find(ctx context.Context, where *core.Where) ([]core.Document, error) {
	return c.find(ctx, where, false)
}

func (c *mongoCollection) FindOne(ctx context.Context, where *core.Where) (core.Document, error) {
	docList, err := c.find(ctx, where, true)
	if err != nil {
		return nil, err
	}
	if len(docList) == 0 {
		return nil, nil
	}
	return docList[0], nil
}

func (c *mongoCollection) find(ctx context.Context, where *core.Where, single bool) ([]core.Document, error) {
	if err := checkWhere(where); err != nil {
		return nil, err
	}
	filter := buildFilter(safeCondition(where))
	findOpts := mopt.Find().SetProjection(bson.M{"_id": 0})

	if where != nil && len(where.Sort) > 0 {
		findOpts.SetSort(buildSort(where.Sort))
	}
	if single {
		findOpts.SetLimit(1)
	} else if where != nil && where.Limit > 0 {
		findOpts.SetLimit(int64(where.Limit))
	}

	cursor, err := c.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	resultList := []core.Document{}
	for cursor.Next(ctx) {
		var bsonMap bson.M
		if err := cursor.Decode(&bsonMap); err != nil {
			return nil, err
		}
		resultList = append(resultList, toDocument(bsonMap))
		if single {
			break
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return resultList, nil
}

func (c *mongoCollection) InsertOne(ctx context.Context, doc core.Document) (any, error) {
	result, err := c.collection.InsertOne(ctx, bson.M(doc))
	if err != nil {
		return nil, err
	}
	if id, ok := doc[c.primaryKey]; ok {
		return id, nil
	}
	return result.InsertedID, nil
}

func (c *mongoCollection) UpdateOne(ctx context.Context, where *core.Where, changes core.Changes) error {
	if err := checkWhere(where); err != nil {
		return err
	}
	for column := range changes {
		if err := checkFieldName(column); err != nil {
			return err
		}
	}
	filter := buildFilter(safeCondition(where))
	update := bson.M{"$set": bson.M(changes)}
	_, err := c.collection.UpdateOne(ctx, filter, update)
	return err
}

func (c *mongoCollection) DeleteOne(ctx context.Context, where *core.Where) error {
	if err := checkWhere(where); err != nil {
		return err
	}
	filter := buildFilter(safeCondition(where))
	_, err := c.collection.DeleteOne(ctx, filter)
	return err
}

func (c *mongoCollection) CountDocuments(ctx context.Context, where *core.Where) (int64, error) {
	if err := checkWhere(where); err != nil {
		return 0, err
	}
	filter := buildFilter(safeCondition(where))
	countOpts := mopt.Count()
	if where != nil && where.Limit > 0 {
		countOpts.SetLimit(int64(where.Limit))
	}
	return c.collection.CountDocuments(ctx, filter, countOpts)
}

//endregion

//region Helpers

// buildFilter translates a condition tree into a MongoDB query document.
//
// Example:
//
//	buildFilter(core.Field("points").Gte(10))
//	// bson.M{"points": bson.M{"$gte": 10}}
func buildFilter(condition *core.Condition) bson.M {
	if condition == nil || condition.Operator == nil {
		return bson.M{}
	}
	if len(condition.Children) > 0 {
		childFilterList := make([]bson.M, 0, len(condition.Children))
		for _, child := range condition.Children {
			childFilterList = append(childFilterList, buildFilter(child))
		}
		if *condition.Operator == core.OpAnd {
			return bson.M{"$and": childFilterList}
		}
		return bson.M{}
	}

	fieldName := condition.FieldName
	switch *condition.Operator {
	case core.OpEq:
		return bson.M{fieldName: condition.Value}
	case core.OpGt:
		return bson.M{fieldName: bson.M{"$gt": condition.Value}}
	case core.OpGte:
		return bson.M{fieldName: bson.M{"$gte": condition.Value}}
	case core.OpLt:
		return bson.M{fieldName: bson.M{"$lt": condition.Value}}
	case core.OpLte:
		return bson.M{fieldName: bson.M{"$lte": condition.Value}}
	case core.OpIn:
		var array []any
		switch v := condition.Value.(type) {
		case []any:
			array = v
		default:
			array = []any{condition.Value}
		}
		return bson.M{fieldName: bson.M{"$in": array}}
	default:
		return bson.M{}
	}
}

// checkWhere rejects filter and sort fields that MongoDB would read as
// operators.
func checkWhere(where *core.Where) error {
	if where == nil {
		return nil
	}
	for _, sortItem := range where.Sort {
		if err := checkFieldName(sortItem.FieldName); err != nil {
			return err
		}
	}
	return checkCondition(where.Condition)
}

func checkCondition(condition *core.Condition) error {
	if condition == nil {
		return nil
	}
	for _, child := range condition.Children {
		if err := checkCondition(child); err != nil {
			return err
		}
	}
	if len(condition.Children) > 0 {
		return nil
	}
	return checkFieldName(condition.FieldName)
}

func checkFieldName(name string) error {
	if name == "" || strings.HasPrefix(name, "$") {
		return fmt.Errorf("%w: mongo: invalid field name %q", core.ErrInvalidQuery, name)
	}
	return nil
}

func buildSort(sortList []core.Sort) bson.D {
	sortDoc := bson.D{}
	for _, sortItem := range sortList {
		direction := 1
		if sortItem.Order < 0 {
			direction = -1
		}
		sortDoc = append(sortDoc, bson.E{Key: sortItem.FieldName, Value: direction})
	}
	return sortDoc
}

// safeCondition returns the root condition of where, or nil for an
// unfiltered query.
func safeCondition(where *core.Where) *core.Condition {
	if where == nil {
		return nil
	}
	return where.Condition
}

// toDocument converts a decoded BSON map into plain Go values.
func toDocument(m bson.M) core.Document {
	doc := make(core.Document, len(m))
	for k, v := range m {
		doc[k] = normalize(v)
	}
	return doc
}

func normalize(v any) any {
	switch value := v.(type) {
	case bson.M:
		return map[string]any(toDocument(value))
	case bson.D:
		return map[string]any(toDocument(value.Map()))
	case bson.A:
		out := make([]any, len(value))
		for i, item := range value {
			out[i] = normalize(item)
		}
		return out
	case primitive.DateTime:
		return value.Time().UTC()
	case primitive.ObjectID:
		return value.Hex()
	default:
		return v
	}
}

//endregion
