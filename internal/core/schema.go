// Package core contains the table metadata model shared by every schema
// source and every output format. Extraction builds it once per run and the
// renderers only read it.
package core

import (
	"fmt"
	"strings"
)

// Column represents a single table attribute.
type Column struct {
	Name string `json:"name"`
	// Type is the raw type as declared, e.g. "VARCHAR(255)" or "int(11) unsigned".
	Type     string `json:"type"`
	Nullable bool   `json:"nullable"`
	// Default is empty both when no default is declared and when the declared
	// default is the empty string. The two cases are not distinguished.
	Default       string `json:"default"`
	AutoIncrement bool   `json:"autoIncrement"`
	Comment       string `json:"comment"`
}

// IndexKind is an ENUM with all index kinds that can be documented.
type IndexKind string

const (
	IndexKindPrimary IndexKind = "PRIMARY KEY"
	IndexKindUnique  IndexKind = "UNIQUE"
	IndexKindIndex   IndexKind = "INDEX"
)

// PrimaryKeyName is the reserved index name of a primary key.
const PrimaryKeyName = "PRIMARY"

// Index represents one index or key definition on a table.
type Index struct {
	Name    string    `json:"name"`
	Kind    IndexKind `json:"kind"`
	Columns []string  `json:"columns"`
	Unique  bool      `json:"unique"`
}

// NewIndex builds an index and derives Unique from kind.
func NewIndex(name string, kind IndexKind, columns []string) *Index {
	return &Index{
		Name:    name,
		Kind:    kind,
		Columns: columns,
		Unique:  kind.IsUnique(),
	}
}

// IsUnique reports whether indexes of this kind enforce uniqueness.
func (k IndexKind) IsUnique() bool {
	return k == IndexKindPrimary || k == IndexKindUnique
}

// Partition represents one partition definition.
type Partition struct {
	Name string `json:"name"`
	// Type is the raw keyword following PARTITION BY (RANGE, HASH, KEY, ...).
	Type       string `json:"type"`
	Expression string `json:"expression"`
	// Value is the upper bound for RANGE partitions and a placeholder
	// naming the partition number for HASH/KEY partitions.
	Value string `json:"value"`
}

// Table aggregates everything documented about one table.
type Table struct {
	Name       string       `json:"name"`
	Columns    []*Column    `json:"columns"`
	Indexes    []*Index     `json:"indexes"`
	Partitions []*Partition `json:"partitions"`
	Comment    string       `json:"comment"`
}

// FindColumn looks for a column by name inside a table.
func (t *Table) FindColumn(name string) *Column {
	for _, c := range t.Columns {
		if strings.EqualFold(c.Name, name) {
			return c
		}
	}
	return nil
}

// FindIndex looks for an index by name inside a table.
func (t *Table) FindIndex(name string) *Index {
	for _, i := range t.Indexes {
		if strings.EqualFold(i.Name, name) {
			return i
		}
	}
	return nil
}

// PrimaryKey returns the primary key index of the table.
func (t *Table) PrimaryKey() *Index {
	for _, i := range t.Indexes {
		if i.Kind == IndexKindPrimary {
			return i
		}
	}
	return nil
}

// String returns a short summary of the table.
func (t *Table) String() string {
	return fmt.Sprintf("Table: %s (%d cols, %d indexes, %d partitions)",
		t.Name, len(t.Columns), len(t.Indexes), len(t.Partitions))
}

// Schema is an ordered mapping of table name to table metadata.
// The zero value is ready to use.
type Schema struct {
	tables []*Table
	byName map[string]int
}

// NewSchema returns an empty schema.
func NewSchema() *Schema {
	return &Schema{byName: make(map[string]int)}
}

// Put stores t under its name. A table with a name already present replaces
// the earlier one and keeps the earlier position.
func (s *Schema) Put(t *Table) {
	if s.byName == nil {
		s.byName = make(map[string]int)
	}
	if pos, ok := s.byName[t.Name]; ok {
		s.tables[pos] = t
		return
	}
	s.byName[t.Name] = len(s.tables)
	s.tables = append(s.tables, t)
}

// Get returns the table stored under name, or nil.
func (s *Schema) Get(name string) *Table {
	pos, ok := s.byName[name]
	if !ok {
		return nil
	}
	return s.tables[pos]
}

// Len returns the number of tables.
func (s *Schema) Len() int { return len(s.tables) }

// Tables returns the tables in insertion order.
func (s *Schema) Tables() []*Table {
	out := make([]*Table, len(s.tables))
	copy(out, s.tables)
	return out
}

// Names returns the table names in insertion order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.tables))
	for i, t := range s.tables {
		names[i] = t.Name
	}
	return names
}
