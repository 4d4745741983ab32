// Package mysqldump converts the <table_structure> elements written by
// `mysqldump --xml` into table metadata. The element already carries
// structured rows, so no SQL is parsed here.
package mysqldump

import (
	"strconv"
	"strings"

	"tabledoc/internal/core"
)

// TableStructure is one <table_structure> element.
type TableStructure struct {
	Name    string   `xml:"name,attr"`
	Comment string   `xml:"Comment,attr"`
	Fields  []Field  `xml:"field"`
	Keys    []Key    `xml:"key"`
	Options *Options `xml:"options"`
}

// Field is one <field> row, as printed by SHOW FULL COLUMNS.
type Field struct {
	Field   string `xml:"Field,attr"`
	Type    string `xml:"Type,attr"`
	Null    string `xml:"Null,attr"`
	Key     string `xml:"Key,attr"`
	Default string `xml:"Default,attr"`
	Extra   string `xml:"Extra,attr"`
	Comment string `xml:"Comment,attr"`
}

// Key is one <key> row, as printed by SHOW KEYS. A multi-column index spans
// several rows sharing Key_name.
type Key struct {
	Table      string `xml:"Table,attr"`
	NonUnique  string `xml:"Non_unique,attr"`
	KeyName    string `xml:"Key_name,attr"`
	SeqInIndex string `xml:"Seq_in_index,attr"`
	ColumnName string `xml:"Column_name,attr"`
	SubPart    string `xml:"Sub_part,attr"`
	IndexType  string `xml:"Index_type,attr"`
}

// Options is the <options> row, as printed by SHOW TABLE STATUS.
type Options struct {
	Name    string `xml:"Name,attr"`
	Engine  string `xml:"Engine,attr"`
	Comment string `xml:"Comment,attr"`
}

// Convert builds a table from the element. Partitions are never present in
// mysqldump structure output, so the result has none. A table without
// fields comes back with no columns and must not be stored.
func Convert(ts *TableStructure) *core.Table {
	return &core.Table{
		Name:    ts.Name,
		Columns: Columns(ts.Fields),
		Indexes: Indexes(ts.Keys),
		Comment: ts.TableComment(),
	}
}

// TableComment prefers the comment attribute of the element itself and
// falls back to the one reported in <options>.
func (ts *TableStructure) TableComment() string {
	if ts.Comment != "" {
		return ts.Comment
	}
	if ts.Options != nil {
		return ts.Options.Comment
	}
	return ""
}

// Columns maps field rows to columns in row order.
func Columns(fields []Field) []*core.Column {
	cols := make([]*core.Column, 0, len(fields))
	for _, f := range fields {
		cols = append(cols, &core.Column{
			Name:          f.Field,
			Type:          f.Type,
			Nullable:      f.Null == "YES",
			Default:       f.Default,
			AutoIncrement: strings.Contains(f.Extra, "auto_increment"),
			Comment:       f.Comment,
		})
	}
	return cols
}

// Indexes groups key rows by Key_name, keeping the order in which each name
// first appears and the row order of its columns.
func Indexes(keys []Key) []*core.Index {
	var indexes []*core.Index
	byName := make(map[string]*core.Index)

	for _, k := range keys {
		col := k.ColumnName
		if n, err := strconv.Atoi(k.SubPart); err == nil && n > 0 {
			col += "(" + k.SubPart + ")"
		}

		if idx, ok := byName[k.KeyName]; ok {
			idx.Columns = append(idx.Columns, col)
			continue
		}

		idx := core.NewIndex(k.KeyName, keyKind(k), []string{col})
		byName[k.KeyName] = idx
		indexes = append(indexes, idx)
	}
	return indexes
}

func keyKind(k Key) core.IndexKind {
	switch {
	case k.KeyName == core.PrimaryKeyName:
		return core.IndexKindPrimary
	case k.NonUnique != "1":
		return core.IndexKindUnique
	default:
		return core.IndexKindIndex
	}
}
