package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIndexDerivesUnique(t *testing.T) {
	assert.True(t, NewIndex(PrimaryKeyName, IndexKindPrimary, []string{"id"}).Unique)
	assert.True(t, NewIndex("uq_email", IndexKindUnique, []string{"email"}).Unique)
	assert.False(t, NewIndex("idx_name", IndexKindIndex, []string{"name"}).Unique)
}

func TestTableFindColumn(t *testing.T) {
	table := &Table{
		Name: "users",
		Columns: []*Column{
			{Name: "id"},
			{Name: "Email"},
		},
	}

	t.Run("case insensitive", func(t *testing.T) {
		col := table.FindColumn("email")
		require.NotNil(t, col)
		assert.Equal(t, "Email", col.Name)
	})

	t.Run("missing", func(t *testing.T) {
		assert.Nil(t, table.FindColumn("nope"))
	})
}

func TestTableFindIndexAndPrimaryKey(t *testing.T) {
	pk := NewIndex(PrimaryKeyName, IndexKindPrimary, []string{"id"})
	idx := NewIndex("idx_name", IndexKindIndex, []string{"name"})
	table := &Table{Name: "users", Indexes: []*Index{idx, pk}}

	assert.Same(t, idx, table.FindIndex("IDX_NAME"))
	assert.Nil(t, table.FindIndex("other"))
	assert.Same(t, pk, table.PrimaryKey())
	assert.Nil(t, (&Table{}).PrimaryKey())
}

func TestTableString(t *testing.T) {
	table := &Table{
		Name:    "users",
		Columns: []*Column{{Name: "id"}, {Name: "email"}},
		Indexes: []*Index{NewIndex(PrimaryKeyName, IndexKindPrimary, []string{"id"})},
	}
	assert.Equal(t, "Table: users (2 cols, 1 indexes, 0 partitions)", table.String())
}

func TestSchemaPreservesInsertionOrder(t *testing.T) {
	s := NewSchema()
	s.Put(&Table{Name: "zeta"})
	s.Put(&Table{Name: "alpha"})
	s.Put(&Table{Name: "mid"})

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, s.Names())
}

func TestSchemaPutReplacesInPlace(t *testing.T) {
	s := NewSchema()
	s.Put(&Table{Name: "a", Comment: "first"})
	s.Put(&Table{Name: "b"})
	s.Put(&Table{Name: "a", Comment: "second"})

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"a", "b"}, s.Names())
	assert.Equal(t, "second", s.Get("a").Comment)
}

func TestSchemaGetMissing(t *testing.T) {
	s := NewSchema()
	assert.Nil(t, s.Get("users"))
}

func TestSchemaZeroValue(t *testing.T) {
	var s Schema
	assert.Nil(t, s.Get("a"))
	s.Put(&Table{Name: "a"})
	assert.NotNil(t, s.Get("a"))
	assert.Equal(t, 1, s.Len())
}

func TestSchemaTablesReturnsCopy(t *testing.T) {
	s := NewSchema()
	s.Put(&Table{Name: "a"})
	tables := s.Tables()
	tables[0] = &Table{Name: "changed"}

	assert.Equal(t, "a", s.Tables()[0].Name)
}
