package output

import (
	"fmt"
	"strings"

	"tabledoc/internal/core"
)

type markdownFormatter struct{}

func (markdownFormatter) Extension() string { return "md" }

// FormatTable renders one table as a Markdown page. Empty cells show "-".
func (markdownFormatter) FormatTable(t *core.Table) (string, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Table definition: %s\n\n", t.Name)
	sb.WriteString("## Table information\n\n")
	fmt.Fprintf(&sb, "- **Table name**: %s\n", t.Name)
	if t.Comment != "" {
		fmt.Fprintf(&sb, "- **Description**: %s\n", t.Comment)
	}
	fmt.Fprintf(&sb, "- **Columns**: %d\n\n", len(t.Columns))

	sb.WriteString("## Columns\n\n")
	sb.WriteString("| Column | Type | Nullable | Default | Extra | Description |\n")
	sb.WriteString("|--------|------|----------|---------|-------|-------------|\n")
	for _, c := range t.Columns {
		extra := ""
		if c.AutoIncrement {
			extra = "AUTO_INCREMENT"
		}
		fmt.Fprintf(&sb, "| **%s** | `%s` | %s | %s | %s | %s |\n",
			cell(c.Name), cell(c.Type), yesNo(c.Nullable), orDash(c.Default), orDash(extra), orDash(c.Comment))
	}

	if len(t.Indexes) > 0 {
		sb.WriteString("\n## Indexes\n\n")
		sb.WriteString("| Index | Kind | Columns | Unique |\n")
		sb.WriteString("|-------|------|---------|--------|\n")
		for _, idx := range t.Indexes {
			fmt.Fprintf(&sb, "| **%s** | `%s` | %s | %s |\n",
				cell(idx.Name), idx.Kind, cell(strings.Join(idx.Columns, ", ")), yesNo(idx.Unique))
		}
	}

	if len(t.Partitions) > 0 {
		sb.WriteString("\n## Partitions\n\n")
		sb.WriteString("| Partition | Type | Expression | Value |\n")
		sb.WriteString("|-----------|------|------------|-------|\n")
		for _, p := range t.Partitions {
			fmt.Fprintf(&sb, "| **%s** | `%s` | %s | %s |\n",
				cell(p.Name), cell(p.Type), cell(p.Expression), cell(p.Value))
		}
	}

	return sb.String(), nil
}

// FormatIndex renders the list of documented tables.
func (markdownFormatter) FormatIndex(s *core.Schema, meta IndexMeta) (string, error) {
	var sb strings.Builder

	sb.WriteString("# Database table definitions\n\n")
	sb.WriteString("## Overview\n\n")
	fmt.Fprintf(&sb, "- **Database**: %s\n", meta.Database)
	fmt.Fprintf(&sb, "- **Tables**: %d\n\n", s.Len())
	sb.WriteString("## Tables\n\n")

	for _, t := range s.Tables() {
		comment := t.Comment
		if comment == "" {
			comment = noDescription
		}
		fmt.Fprintf(&sb, "### [%s](%s.md)\n\n", t.Name, SafeFileName(t.Name))
		fmt.Fprintf(&sb, "- **Description**: %s\n", comment)
		fmt.Fprintf(&sb, "- **Columns**: %d\n\n", len(t.Columns))
	}

	fmt.Fprintf(&sb, "_Generated: %s_\n", meta.GeneratedAt.Format(generatedAtLayout))
	return sb.String(), nil
}

// cell keeps a value from breaking the table row it is written into.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return cell(s)
}
