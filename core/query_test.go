package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryIsImmutable(t *testing.T) {
	base := NewQuery("badges").Gte("points", 10)
	a := base.Eq("name", "A")
	b := base.Eq("name", "B").Limit(3)

	require.Len(t, base.Filters(), 1)
	require.Len(t, a.Filters(), 2)
	require.Len(t, b.Filters(), 2)
	assert.Equal(t, "A", a.Filters()[1].Value)
	assert.Equal(t, "B", b.Filters()[1].Value)
	assert.Zero(t, base.LimitValue())
	assert.Equal(t, 3, b.LimitValue())

	filters := base.Filters()
	filters[0] = Field("x").Eq(1)
	assert.Equal(t, "points", base.Filters()[0].FieldName)
}

func TestQueryWhere(t *testing.T) {
	testList := []struct {
		name  string
		query Query
		want  *Where
	}{
		{
			name:  "no filters",
			query: NewQuery("badges"),
			want:  &Where{},
		},
		{
			name:  "single filter is not wrapped",
			query: NewQuery("badges").Eq("id", "1"),
			want:  &Where{Condition: Field("id").Eq("1")},
		},
		{
			name:  "filters are combined with AND in call order",
			query: NewQuery("badges").Gte("points", 10).Lt("points", 50).Eq("name", "A"),
			want: &Where{Condition: &Condition{
				Operator: &OpAnd,
				Children: []*Condition{
					Field("points").Gte(10),
					Field("points").Lt(50),
					Field("name").Eq("A"),
				},
			}},
		},
		{
			name:  "order and limit",
			query: NewQuery("badges").Order("points", false).Limit(5),
			want:  &Where{Sort: []Sort{{FieldName: "points", Order: -1}}, Limit: 5},
		},
		{
			name:  "later order replaces earlier",
			query: NewQuery("badges").Order("points", false).Order("name", true),
			want:  &Where{Sort: []Sort{{FieldName: "name", Order: 1}}},
		},
		{
			name:  "in keeps its values",
			query: NewQuery("badges").In("name", "A", "B"),
			want:  &Where{Condition: Field("name").In("A", "B")},
		},
	}
	for _, tt := range testList {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.query.Err())
			assert.Equal(t, tt.want, tt.query.Where())
		})
	}
}

func TestQueryErrors(t *testing.T) {
	testList := []struct {
		name  string
		query Query
	}{
		{"zero limit", NewQuery("badges").Limit(0)},
		{"negative limit", NewQuery("badges").Limit(-5)},
		{"empty filter field", NewQuery("badges").Eq("", 1)},
		{"empty order field", NewQuery("badges").Order("", true)},
		{"unsupported operator", NewQuery("badges").Filter("name", Operator("LIKE"), "A%")},
	}
	for _, tt := range testList {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.query.Err(), ErrInvalidQuery)
		})
	}

	t.Run("first error wins", func(t *testing.T) {
		q := NewQuery("badges").Limit(0).Eq("", 1)
		assert.Contains(t, q.Err().Error(), "limit")
	})
}

func TestQueryProjection(t *testing.T) {
	assert.Equal(t, "*", NewQuery("badges").Projection())
	assert.Equal(t, "*", NewQuery("badges").Select("").Projection())
	assert.Equal(t, "id, name", NewQuery("badges").Select("id, name").Projection())
}

func TestParseOperator(t *testing.T) {
	for name, want := range map[string]Operator{
		"eq": OpEq, "gt": OpGt, "gte": OpGte, "lt": OpLt, "lte": OpLte, "in": OpIn,
	} {
		got, ok := ParseOperator(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, got)
	}
	_, ok := ParseOperator("like")
	assert.False(t, ok)
}

func TestConditionAnd(t *testing.T) {
	cond := Field("a").Eq(1).And(Field("b").Gt(2))
	require.True(t, cond.IsLogical())
	assert.Equal(t, OpAnd, *cond.Operator)
	require.Len(t, cond.Children, 2)
	assert.Equal(t, "a", cond.Children[0].FieldName)
	assert.False(t, cond.Children[1].IsLogical())
}
