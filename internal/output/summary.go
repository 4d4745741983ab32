package output

import (
	"fmt"
	"strings"

	"tabledoc/internal/core"
)

// FormatSummary formats a schema as a compact console summary.
// Example output:
//
//	Schema Summary
//	==============
//
//	Tables:      2
//	Columns:     9
//	Indexes:     4
//	Partitions:  0
//
//	Details:
//	  users (5 cols, 3 idx) User accounts
//	  orders (4 cols, 1 idx)
func FormatSummary(s *core.Schema) string {
	if s == nil || s.Len() == 0 {
		return "No tables found.\n"
	}

	var sb strings.Builder

	cols, idx, parts := countParts(s)

	sb.WriteString("Schema Summary\n")
	sb.WriteString("==============\n\n")

	fmt.Fprintf(&sb, "Tables:      %d\n", s.Len())
	fmt.Fprintf(&sb, "Columns:     %d\n", cols)
	fmt.Fprintf(&sb, "Indexes:     %d\n", idx)
	fmt.Fprintf(&sb, "Partitions:  %d\n", parts)

	sb.WriteString("\nDetails:\n")
	for _, t := range s.Tables() {
		line := fmt.Sprintf("  %s (%s)", t.Name, describeTable(t))
		if t.Comment != "" {
			line += " " + t.Comment
		}
		sb.WriteString(line + "\n")
	}

	return sb.String()
}

func countParts(s *core.Schema) (columns, indexes, partitions int) {
	for _, t := range s.Tables() {
		columns += len(t.Columns)
		indexes += len(t.Indexes)
		partitions += len(t.Partitions)
	}
	return
}

// describeTable returns a short listing of what a table contains.
func describeTable(t *core.Table) string {
	parts := []string{fmt.Sprintf("%d cols", len(t.Columns))}

	if n := len(t.Indexes); n > 0 {
		parts = append(parts, fmt.Sprintf("%d idx", n))
	}
	if n := len(t.Partitions); n > 0 {
		parts = append(parts, fmt.Sprintf("%d partitions", n))
	}
	if pk := t.PrimaryKey(); pk == nil {
		parts = append(parts, "no primary key")
	}

	return strings.Join(parts, ", ")
}
