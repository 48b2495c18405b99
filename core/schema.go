// Package core provides the building blocks of the techmentorai data layer.
// This file defines the schema system, which maps Go row structs to
// collections/tables, describes fields, and compiles the JSON Schema used to
// validate payloads at the facade boundary.
package core

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/xeipuuv/gojsonschema"
)

// DefaultPrimaryKey is the identifier column used when no field is marked
// with PrimaryKey.
const DefaultPrimaryKey = "id"

// FieldMeta represents a struct field mapped to a database column.
//
// It contains metadata such as the Go field name, database column name,
// type information, constraints (primary key, required), default value,
// and special markers for timestamp fields (createdAt, updatedAt).
type FieldMeta struct {
	StructFieldName    string       // Name of the field in the Go struct
	DatabaseColumnName string       // Name of the column in the database
	Type               reflect.Type // Go type of the field
	IsPrimaryKey       bool         // Whether this field is a primary key
	IsRequired         bool         // Whether inserts must provide this field
	DefaultValue       any          // Default value applied on insert (if any)
	AllowedValues      []any        // Enumerated values accepted by validation
	MemoryOffset       uintptr      // Memory offset within the struct

	// Special timestamp markers
	IsCreatedAt bool
	IsUpdatedAt bool
}

// FieldOption is a function used to configure a FieldMeta.
type FieldOption func(*FieldMeta)

// PrimaryKey marks the field as a primary key.
func PrimaryKey() FieldOption {
	return func(f *FieldMeta) { f.IsPrimaryKey = true }
}

// Required marks the field as required on insert.
func Required() FieldOption {
	return func(f *FieldMeta) { f.IsRequired = true }
}

// Default sets a default value for the field.
func Default(value any) FieldOption {
	return func(f *FieldMeta) { f.DefaultValue = value }
}

// OneOf restricts the field to an enumerated set of values.
func OneOf[V any](values ...V) FieldOption {
	return func(f *FieldMeta) {
		f.AllowedValues = f.AllowedValues[:0]
		for _, v := range values {
			f.AllowedValues = append(f.AllowedValues, v)
		}
	}
}

// CreatedAt marks the field as the createdAt timestamp.
func CreatedAt() FieldOption {
	return func(f *FieldMeta) { f.IsCreatedAt = true }
}

// UpdatedAt marks the field as the updatedAt timestamp.
func UpdatedAt() FieldOption {
	return func(f *FieldMeta) { f.IsUpdatedAt = true }
}

// SchemaCore contains the minimal schema information drivers need at runtime.
//
// It includes the database name, collection/table name, fields, and a
// map of fields indexed by their memory offsets.
type SchemaCore struct {
	Database       string
	Collection     string
	PrimaryKey     string
	Fields         []*FieldMeta
	fieldsByOffset map[uintptr]*FieldMeta
}

// TableSchema extends SchemaCore with runtime metadata.
//
// It contains registered hooks, the compiled validators, and cached
// references to special fields (primary key, createdAt, updatedAt).
type TableSchema struct {
	SchemaCore
	Table        Table
	PreHookList  map[PreHook][]HookFunc
	PostHookList map[PostHook][]HookFunc

	mutex           sync.RWMutex
	typeValidator   *gojsonschema.Schema
	strictValidator *gojsonschema.Schema
	createdAtField  *FieldMeta
	updatedAtField  *FieldMeta
}

// RegisterPreHook registers a pre-operation hook for the schema.
func (s *TableSchema) RegisterPreHook(hook PreHook, fn HookFunc) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.PreHookList[hook] = append(s.PreHookList[hook], fn)
}

// RegisterPostHook registers a post-operation hook for the schema.
func (s *TableSchema) RegisterPostHook(hook PostHook, fn HookFunc) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.PostHookList[hook] = append(s.PostHookList[hook], fn)
}

// RunPre executes all registered PreHooks for the given operation, stopping
// at the first error.
func (s *TableSchema) RunPre(hook PreHook, doc Document) error {
	s.mutex.RLock()
	fnList := s.PreHookList[hook]
	s.mutex.RUnlock()
	for _, fn := range fnList {
		if err := fn(doc); err != nil {
			return fmt.Errorf("%s hook on %s: %w", hook, s.Table, err)
		}
	}
	return nil
}

// RunPost executes all registered PostHooks for the given operation.
func (s *TableSchema) RunPost(hook PostHook, doc Document) error {
	s.mutex.RLock()
	fnList := s.PostHookList[hook]
	s.mutex.RUnlock()
	for _, fn := range fnList {
		if err := fn(doc); err != nil {
			return fmt.Errorf("%s hook on %s: %w", hook, s.Table, err)
		}
	}
	return nil
}

// Column returns the field mapped to the given column name, or nil.
func (s *TableSchema) Column(name string) *FieldMeta {
	for _, f := range s.Fields {
		if f.DatabaseColumnName == name {
			return f
		}
	}
	return nil
}

// CheckQuery rejects filters and sort directives on columns the table does
// not declare. Tables without declared fields accept any column.
func (s *TableSchema) CheckQuery(q Query) error {
	if len(s.Fields) == 0 {
		return nil
	}
	var check func(c *Condition) error
	check = func(c *Condition) error {
		if c == nil {
			return nil
		}
		for _, child := range c.Children {
			if err := check(child); err != nil {
				return err
			}
		}
		if len(c.Children) == 0 && s.Column(c.FieldName) == nil {
			return fmt.Errorf("%w: unknown column %q on %s", ErrInvalidQuery, c.FieldName, s.Table)
		}
		return nil
	}
	for _, c := range q.filters {
		if err := check(c); err != nil {
			return err
		}
	}
	if q.sort != nil && s.Column(q.sort.FieldName) == nil {
		return fmt.Errorf("%w: unknown sort column %q on %s", ErrInvalidQuery, q.sort.FieldName, s.Table)
	}
	return nil
}

// CreatedAtColumn returns the createdAt column name, or "" when the table has none.
func (s *TableSchema) CreatedAtColumn() string {
	if s.createdAtField == nil {
		return ""
	}
	return s.createdAtField.DatabaseColumnName
}

// UpdatedAtColumn returns the updatedAt column name, or "" when the table has none.
func (s *TableSchema) UpdatedAtColumn() string {
	if s.updatedAtField == nil {
		return ""
	}
	return s.updatedAtField.DatabaseColumnName
}

// ApplyDefaults fills missing columns that declare a default value.
func (s *TableSchema) ApplyDefaults(doc Document) {
	for _, f := range s.Fields {
		if f.DefaultValue == nil {
			continue
		}
		if _, ok := doc[f.DatabaseColumnName]; !ok {
			doc[f.DatabaseColumnName] = f.DefaultValue
		}
	}
}

// Validate checks doc against the table schema. Field types and enumerations
// are always checked; strict additionally requires every Required field.
// Tables without declared fields accept any document.
func (s *TableSchema) Validate(doc Document, strict bool) error {
	validator := s.typeValidator
	if strict {
		validator = s.strictValidator
	}
	if validator == nil {
		return nil
	}

	result, err := validator.Validate(gojsonschema.NewGoLoader(map[string]any(doc)))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if !result.Valid() {
		var errs []string
		for _, desc := range result.Errors() {
			errs = append(errs, desc.String())
		}
		sort.Strings(errs)
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(errs, "; "))
	}
	return nil
}

// SchemaBuilder is used to construct a schema definition from a Go struct.
//
// It collects field metadata using reflection and applies customization
// through SchemaOptions.
type SchemaBuilder[T any] struct {
	database       string
	collection     string
	tagKey         string
	structType     reflect.Type
	fields         []*FieldMeta
	fieldsByOffset map[uintptr]*FieldMeta
}

// SchemaOption represents a function that customizes the schema builder.
type SchemaOption[T any] func(*SchemaBuilder[T])

// TagKey sets the struct tag key to use for database column mapping.
func TagKey[T any](key string) SchemaOption[T] {
	return func(schemaBuilder *SchemaBuilder[T]) { schemaBuilder.tagKey = key }
}

// Collection sets the collection/table name for the schema.
func CollectionName[T any](name Table) SchemaOption[T] {
	return func(schemaBuilder *SchemaBuilder[T]) { schemaBuilder.collection = string(name) }
}

// Database sets the database name for the schema.
func Database[T any](name string) SchemaOption[T] {
	return func(schemaBuilder *SchemaBuilder[T]) { schemaBuilder.database = name }
}

// OverrideField allows modifying the metadata of a specific field
// (e.g., making it required, a primary key, a timestamp, etc.).
func OverrideField[T any, F any](selector func(*T) *F, opts ...FieldOption) SchemaOption[T] {
	return func(schemaBuilder *SchemaBuilder[T]) {
		if schemaBuilder.fieldsByOffset == nil || len(schemaBuilder.fields) == 0 {
			return
		}
		offset := offsetOf(selector)
		if field, ok := schemaBuilder.fieldsByOffset[offset]; ok {
			for _, opt := range opts {
				opt(field)
			}
		} else {
			panic("core: OverrideField: field not found by selector")
		}
	}
}

// Schema builds a TableSchema by reflecting on the fields of T and applying
// the given SchemaOptions.
//
// Example:
//
//	badges := core.Schema[Badge](
//		core.CollectionName[Badge]("badges"),
//		core.OverrideField(func(b *Badge) *string { return &b.ID }, core.PrimaryKey()),
//		core.OverrideField(func(b *Badge) *string { return &b.Name }, core.Required()),
//	)
func Schema[T any](options ...SchemaOption[T]) *TableSchema {
	var zero T
	structType := reflect.TypeOf(zero)
	if structType.Kind() == reflect.Pointer {
		structType = structType.Elem()
	}

	builder := &SchemaBuilder[T]{
		structType: structType,
	}

	// Apply options before building fields (CollectionName/Database/TagKey)
	for _, option := range options {
		option(builder)
	}
	builder.fieldsByOffset = make(map[uintptr]*FieldMeta)

	tagKey := builder.tagKey
	if tagKey == "" {
		tagKey = "db"
	}
	for _, sf := range reflect.VisibleFields(structType) {
		if !sf.IsExported() || sf.Anonymous {
			continue
		}
		dbName, _, _ := strings.Cut(sf.Tag.Get(tagKey), ",")
		if dbName == "-" {
			continue
		}
		if dbName == "" {
			dbName = sf.Name
		}

		field := &FieldMeta{
			StructFieldName:    sf.Name,
			DatabaseColumnName: dbName,
			Type:               sf.Type,
			MemoryOffset:       sf.Offset,
		}
		builder.fields = append(builder.fields, field)
		builder.fieldsByOffset[sf.Offset] = field
	}

	// Re-apply options so that OverrideField can work after fields exist
	for _, option := range options {
		option(builder)
	}

	if builder.collection == "" {
		panic(fmt.Sprintf("core: schema for %s has no collection name", structType.Name()))
	}
	return newTableSchema(Table(builder.collection), builder.database, builder.fields, builder.fieldsByOffset)
}

// DynamicSchema describes a table with no declared fields. It keys documents
// by DefaultPrimaryKey and accepts any payload.
func DynamicSchema(table Table) *TableSchema {
	return newTableSchema(table, "", nil, map[uintptr]*FieldMeta{})
}

func newTableSchema(table Table, database string, fields []*FieldMeta, byOffset map[uintptr]*FieldMeta) *TableSchema {
	meta := &TableSchema{
		SchemaCore: SchemaCore{
			Database:       database,
			Collection:     string(table),
			PrimaryKey:     DefaultPrimaryKey,
			Fields:         fields,
			fieldsByOffset: byOffset,
		},
		Table:        table,
		PreHookList:  make(map[PreHook][]HookFunc),
		PostHookList: make(map[PostHook][]HookFunc),
	}

	// Detect special fields once
	for _, f := range fields {
		if f.IsPrimaryKey {
			meta.PrimaryKey = f.DatabaseColumnName
		}
		if f.IsCreatedAt {
			meta.createdAtField = f
		}
		if f.IsUpdatedAt {
			meta.updatedAtField = f
		}
	}

	if len(fields) > 0 {
		meta.typeValidator = mustCompile(table, jsonSchemaFor(fields, false))
		meta.strictValidator = mustCompile(table, jsonSchemaFor(fields, true))
	}
	return meta
}

// jsonSchemaFor describes the fields as a JSON Schema object. Unknown
// properties are allowed: documents may carry columns the schema predates.
func jsonSchemaFor(fields []*FieldMeta, strict bool) map[string]any {
	properties := make(map[string]any, len(fields))
	required := []string{}
	for _, f := range fields {
		property := jsonTypeFor(f.Type)
		if len(f.AllowedValues) > 0 {
			enum := append([]any{}, f.AllowedValues...)
			if isNullable(f.Type) {
				enum = append(enum, nil)
			}
			property["enum"] = enum
		}
		properties[f.DatabaseColumnName] = property
		if strict && f.IsRequired {
			required = append(required, f.DatabaseColumnName)
		}
	}
	schema := map[string]any{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": true,
	}
	if len(required) > 0 {
		sort.Strings(required)
		schema["required"] = required
	}
	return schema
}

var (
	timeType    = reflect.TypeOf(time.Time{})
	rawJSONType = reflect.TypeOf(json.RawMessage{})
)

func jsonTypeFor(t reflect.Type) map[string]any {
	nullable := false
	if t.Kind() == reflect.Pointer {
		nullable = true
		t = t.Elem()
	}

	var name string
	switch {
	case t == timeType:
		name = "string"
	case t == rawJSONType, t.Kind() == reflect.Interface:
		return map[string]any{}
	default:
		switch t.Kind() {
		case reflect.String:
			name = "string"
		case reflect.Bool:
			name = "boolean"
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			name = "number"
		case reflect.Slice, reflect.Array:
			name = "array"
		case reflect.Map, reflect.Struct:
			name = "object"
		default:
			return map[string]any{}
		}
	}

	if nullable {
		return map[string]any{"type": []string{name, "null"}}
	}
	return map[string]any{"type": name}
}

func isNullable(t reflect.Type) bool {
	return t.Kind() == reflect.Pointer
}

func mustCompile(table Table, schema map[string]any) *gojsonschema.Schema {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(schema))
	if err != nil {
		panic(fmt.Sprintf("core: invalid generated json schema for %s: %v", table, err))
	}
	return compiled
}

// Registry maps table identifiers to their schemas.
type Registry struct {
	mutex  sync.RWMutex
	tables map[Table]*TableSchema
}

// NewRegistry creates a registry holding the given schemas.
func NewRegistry(schemas ...*TableSchema) *Registry {
	registry := &Registry{tables: make(map[Table]*TableSchema, len(schemas))}
	for _, s := range schemas {
		registry.Register(s)
	}
	return registry
}

// Register adds or replaces a schema.
func (r *Registry) Register(schema *TableSchema) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.tables[schema.Table] = schema
}

// Lookup returns the schema registered for table.
func (r *Registry) Lookup(table Table) (*TableSchema, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	schema, ok := r.tables[table]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	return schema, nil
}

// Tables lists the registered table identifiers in lexical order.
func (r *Registry) Tables() []Table {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	tableList := make([]Table, 0, len(r.tables))
	for t := range r.tables {
		tableList = append(tableList, t)
	}
	sort.Slice(tableList, func(i, j int) bool { return tableList[i] < tableList[j] })
	return tableList
}
