package core

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError represents a structural problem found in extracted metadata.
type ValidationError struct {
	Entity  string
	Name    string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in %s %q field %q: %s", e.Entity, e.Name, e.Field, e.Message)
	}
	return fmt.Sprintf("validation error in %s %q: %s", e.Entity, e.Name, e.Message)
}

// Validate checks every table of the schema and returns all problems joined.
func (s *Schema) Validate() error {
	if s == nil {
		return &ValidationError{Entity: "schema", Message: "schema is nil"}
	}
	var errs []error
	for _, t := range s.tables {
		if err := t.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Validate checks that the table is fit for documentation. Problems are
// returned joined; nothing is modified.
func (t *Table) Validate() error {
	if t == nil {
		return &ValidationError{Entity: "table", Message: "table is nil"}
	}
	if strings.TrimSpace(t.Name) == "" {
		return &ValidationError{Entity: "table", Name: "(empty)", Message: "table name is empty"}
	}
	if len(t.Columns) == 0 {
		return &ValidationError{Entity: "table", Name: t.Name, Message: "table has no columns"}
	}

	var errs []error
	seenCols := make(map[string]bool, len(t.Columns))
	for i, c := range t.Columns {
		if c == nil {
			errs = append(errs, &ValidationError{Entity: "table", Name: t.Name, Message: fmt.Sprintf("column at index %d is nil", i)})
			continue
		}
		if strings.TrimSpace(c.Name) == "" {
			errs = append(errs, &ValidationError{Entity: "table", Name: t.Name, Message: fmt.Sprintf("column at index %d has no name", i)})
			continue
		}
		nameLower := strings.ToLower(c.Name)
		if seenCols[nameLower] {
			errs = append(errs, &ValidationError{Entity: "table", Name: t.Name, Message: fmt.Sprintf("duplicate column name %q", c.Name)})
		}
		seenCols[nameLower] = true
	}

	for _, idx := range t.Indexes {
		if err := idx.validate(t); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (i *Index) validate(t *Table) error {
	if i == nil {
		return &ValidationError{Entity: "table", Name: t.Name, Message: "index is nil"}
	}
	if len(i.Columns) == 0 {
		return &ValidationError{Entity: "index", Name: i.Name, Field: "columns", Message: "index has no columns"}
	}
	if i.Kind == IndexKindPrimary && i.Name != PrimaryKeyName {
		return &ValidationError{Entity: "index", Name: i.Name, Field: "name", Message: "primary key must be named PRIMARY"}
	}
	for _, col := range i.Columns {
		if t.FindColumn(baseColumnName(col)) == nil {
			return &ValidationError{Entity: "index", Name: i.Name, Field: "columns", Message: fmt.Sprintf("unknown column %q", col)}
		}
	}
	return nil
}

// baseColumnName strips a key-part prefix length or sort order, e.g.
// "title(20) DESC" -> "title".
func baseColumnName(keyPart string) string {
	name := strings.TrimSpace(keyPart)
	if i := strings.IndexAny(name, "( "); i > 0 {
		name = name[:i]
	}
	return name
}
