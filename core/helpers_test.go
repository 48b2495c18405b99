package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOffsetOf(t *testing.T) {
	keyOffset := offsetOf(func(r *sampleRow) *string { return &r.Key })
	nameOffset := offsetOf(func(r *sampleRow) *string { return &r.Name })
	assert.Zero(t, keyOffset)
	assert.Greater(t, nameOffset, keyOffset)
}

func TestFoldConditionsAnd(t *testing.T) {
	assert.Nil(t, foldConditionsAnd())

	one := Field("a").Eq(1)
	assert.Same(t, one, foldConditionsAnd(one))

	two := foldConditionsAnd(one, Field("b").Eq(2))
	require.True(t, two.IsLogical())
	assert.Len(t, two.Children, 2)
}

func TestDecodeDocument(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	doc := Document{
		"key":        "k1",
		"name":       []byte("bytes become strings"),
		"level":      "high",
		"score":      int32(7),
		"note":       "pointer target",
		"created_at": "2024-03-01T09:30:00.000000Z",
		"updated_at": created,
		"unknown":    "ignored",
	}
	var row sampleRow
	require.NoError(t, DecodeDocument(doc, &row))

	assert.Equal(t, "k1", row.Key)
	assert.Equal(t, "bytes become strings", row.Name)
	assert.Equal(t, level("high"), row.Level)
	assert.Equal(t, 7, row.Score)
	require.NotNil(t, row.Note)
	assert.Equal(t, "pointer target", *row.Note)
	assert.True(t, row.CreatedAt.Equal(created))
	assert.True(t, row.UpdatedAt.Equal(created))
}

func TestDecodeDocumentNulls(t *testing.T) {
	note := "was set"
	row := sampleRow{Name: "kept", Note: &note}
	require.NoError(t, DecodeDocument(Document{"name": nil, "note": nil}, &row))
	assert.Equal(t, "kept", row.Name)
	assert.Nil(t, row.Note)
}

func TestDecodeDocumentErrors(t *testing.T) {
	var row sampleRow
	err := DecodeDocument(Document{"score": "not a number"}, &row)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `column "score"`)

	var notStruct int
	assert.Error(t, DecodeDocument(Document{}, &notStruct))
}

func TestDecodeDocumentFallsBackToFieldName(t *testing.T) {
	type untagged struct {
		UserID string
	}
	var row untagged
	require.NoError(t, DecodeDocument(Document{"userid": "u1"}, &row))
	assert.Equal(t, "u1", row.UserID)
}

func TestEncodeDocument(t *testing.T) {
	type row struct {
		ID    string  `db:"id,omitempty"`
		Name  string  `db:"name"`
		Note  *string `db:"note"`
		Skip  string  `db:"-"`
		Count int
	}
	note := "n"

	doc, err := EncodeDocument(row{Name: "a", Note: &note, Skip: "x", Count: 2})
	require.NoError(t, err)
	assert.Equal(t, Document{"name": "a", "note": "n", "Count": 2}, doc)

	doc, err = EncodeDocument(&row{ID: "1"})
	require.NoError(t, err)
	assert.Equal(t, Document{"id": "1", "name": "", "Count": 0}, doc)

	_, err = EncodeDocument(42)
	assert.Error(t, err)
}

func TestEncodePatch(t *testing.T) {
	type row struct {
		ID     string    `db:"id"`
		Name   string    `db:"name"`
		Points int       `db:"points"`
		Read   *bool     `db:"read"`
		At     time.Time `db:"at"`
	}
	no := false

	patch, err := EncodePatch(row{Points: 10})
	require.NoError(t, err)
	assert.Equal(t, Document{"points": 10}, patch)

	patch, err = EncodePatch(&row{Read: &no})
	require.NoError(t, err)
	assert.Equal(t, Document{"read": false}, patch)

	patch, err = EncodePatch(row{})
	require.NoError(t, err)
	assert.Empty(t, patch)

	_, err = EncodePatch("x")
	assert.Error(t, err)
}

func TestDocumentClone(t *testing.T) {
	var empty Document
	assert.Nil(t, empty.Clone())

	doc := Document{"a": 1}
	clone := doc.Clone()
	clone["a"] = 2
	assert.Equal(t, 1, doc["a"])
}
