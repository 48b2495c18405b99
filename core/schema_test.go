package core

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type level string

type sampleRow struct {
	Key       string    `db:"key"`
	Name      string    `db:"name"`
	Level     level     `db:"level"`
	Score     int       `db:"score"`
	Note      *string   `db:"note"`
	Hidden    string    `db:"-"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func sampleSchema() *TableSchema {
	return Schema[sampleRow](
		CollectionName[sampleRow]("samples"),
		Database[sampleRow]("app"),
		OverrideField(func(r *sampleRow) *string { return &r.Key }, PrimaryKey()),
		OverrideField(func(r *sampleRow) *string { return &r.Name }, Required()),
		OverrideField(func(r *sampleRow) *level { return &r.Level }, Default(level("low")), OneOf[level]("low", "high")),
		OverrideField(func(r *sampleRow) *time.Time { return &r.CreatedAt }, CreatedAt()),
		OverrideField(func(r *sampleRow) *time.Time { return &r.UpdatedAt }, UpdatedAt()),
	)
}

func TestSchemaReflection(t *testing.T) {
	s := sampleSchema()

	assert.Equal(t, Table("samples"), s.Table)
	assert.Equal(t, "samples", s.Collection)
	assert.Equal(t, "app", s.Database)
	assert.Equal(t, "key", s.PrimaryKey)
	assert.Equal(t, "created_at", s.CreatedAtColumn())
	assert.Equal(t, "updated_at", s.UpdatedAtColumn())
	assert.Nil(t, s.Column("Hidden"))

	name := s.Column("name")
	require.NotNil(t, name)
	assert.True(t, name.IsRequired)
	assert.Equal(t, "Name", name.StructFieldName)
	assert.Equal(t, []any{level("low"), level("high")}, s.Column("level").AllowedValues)
}

func TestSchemaWithoutCollectionPanics(t *testing.T) {
	assert.Panics(t, func() { Schema[sampleRow]() })
}

func TestApplyDefaults(t *testing.T) {
	s := sampleSchema()

	doc := Document{"name": "a"}
	s.ApplyDefaults(doc)
	assert.Equal(t, level("low"), doc["level"])

	doc = Document{"name": "a", "level": "high"}
	s.ApplyDefaults(doc)
	assert.Equal(t, "high", doc["level"])
}

func TestValidate(t *testing.T) {
	s := sampleSchema()
	note := "n"

	testList := []struct {
		name    string
		doc     Document
		strict  bool
		wantErr string
	}{
		{name: "valid", doc: Document{"name": "a", "level": "low", "score": 3}},
		{name: "typed enum value", doc: Document{"name": "a", "level": level("high")}},
		{name: "missing required is fine when lenient", doc: Document{"score": 1}},
		{name: "unknown columns are allowed", doc: Document{"name": "a", "extra": []int{1}}},
		{name: "nullable column accepts null", doc: Document{"note": nil}},
		{name: "nullable column accepts pointer", doc: Document{"note": &note}},
		{name: "time value", doc: Document{"created_at": time.Now()}},
		{name: "wrong type", doc: Document{"score": "three"}, wantErr: "score"},
		{name: "not nullable", doc: Document{"name": nil}, wantErr: "name"},
		{name: "outside enumeration", doc: Document{"level": "mid"}, wantErr: "level"},
		{name: "strict requires", doc: Document{"score": 1}, strict: true, wantErr: "name is required"},
		{name: "strict valid", doc: Document{"name": "a"}, strict: true},
	}
	for _, tt := range testList {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Validate(tt.doc, tt.strict)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCheckQuery(t *testing.T) {
	s := sampleSchema()

	assert.NoError(t, s.CheckQuery(NewQuery("samples")))
	assert.NoError(t, s.CheckQuery(NewQuery("samples").Eq("name", "a").In("level", "low").Order("score", false)))

	testList := []Query{
		NewQuery("samples").Eq("Hidden", "x"),
		NewQuery("samples").Eq("name", "a").Gt("rank", 1),
		NewQuery("samples").Order("$natural", true),
	}
	for _, q := range testList {
		assert.ErrorIs(t, s.CheckQuery(q), ErrInvalidQuery)
	}

	assert.NoError(t, DynamicSchema("scratch").CheckQuery(NewQuery("scratch").Eq("anything", 1)))
}

func TestDynamicSchemaAcceptsAnything(t *testing.T) {
	s := DynamicSchema("scratch")
	assert.Equal(t, DefaultPrimaryKey, s.PrimaryKey)
	assert.Empty(t, s.CreatedAtColumn())
	assert.NoError(t, s.Validate(Document{"x": func() {}}, true))
}

func TestHooksRunInOrder(t *testing.T) {
	s := sampleSchema()
	var calls []string
	s.RegisterPreHook(PreInsert, func(doc Document) error {
		calls = append(calls, "first")
		doc["name"] = "set by hook"
		return nil
	})
	s.RegisterPreHook(PreInsert, func(Document) error {
		calls = append(calls, "second")
		return errors.New("stop")
	})
	s.RegisterPreHook(PreInsert, func(Document) error {
		calls = append(calls, "third")
		return nil
	})

	doc := Document{}
	err := s.RunPre(PreInsert, doc)
	require.Error(t, err)
	assert.Equal(t, "pre:insert hook on samples: stop", err.Error())
	assert.Equal(t, []string{"first", "second"}, calls)
	assert.Equal(t, "set by hook", doc["name"])

	assert.NoError(t, s.RunPost(PostInsert, doc))
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry(sampleSchema(), DynamicSchema("b_table"))

	s, err := registry.Lookup("samples")
	require.NoError(t, err)
	assert.Equal(t, "key", s.PrimaryKey)

	_, err = registry.Lookup("missing")
	assert.ErrorIs(t, err, ErrUnknownTable)

	assert.Equal(t, []Table{"b_table", "samples"}, registry.Tables())

	registry.Register(DynamicSchema("samples"))
	s, err = registry.Lookup("samples")
	require.NoError(t, err)
	assert.Equal(t, DefaultPrimaryKey, s.PrimaryKey)
}
