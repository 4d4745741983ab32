package output

import (
	"encoding/json"

	"tabledoc/internal/core"
)

type jsonFormatter struct{}

type tablePayload struct {
	Format string `json:"format"`
	*core.Table
}

type indexEntry struct {
	Name        string `json:"name"`
	Comment     string `json:"comment"`
	ColumnCount int    `json:"columnCount"`
	Page        string `json:"page"`
}

type indexPayload struct {
	Format      string       `json:"format"`
	Database    string       `json:"database"`
	TableCount  int          `json:"tableCount"`
	GeneratedAt string       `json:"generatedAt"`
	Tables      []indexEntry `json:"tables"`
}

type Payload interface {
	tablePayload | indexPayload
}

func (jsonFormatter) Extension() string { return "json" }

func (jsonFormatter) FormatTable(t *core.Table) (string, error) {
	return marshalJSON(tablePayload{Format: string(FormatJSON), Table: t})
}

func (f jsonFormatter) FormatIndex(s *core.Schema, meta IndexMeta) (string, error) {
	payload := indexPayload{
		Format:      string(FormatJSON),
		Database:    meta.Database,
		TableCount:  s.Len(),
		GeneratedAt: meta.GeneratedAt.Format(generatedAtLayout),
		Tables:      make([]indexEntry, 0, s.Len()),
	}
	for _, t := range s.Tables() {
		payload.Tables = append(payload.Tables, indexEntry{
			Name:        t.Name,
			Comment:     t.Comment,
			ColumnCount: len(t.Columns),
			Page:        PageName(t.Name, f),
		})
	}
	return marshalJSON(payload)
}

func marshalJSON[T Payload](payload T) (string, error) {
	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b) + "\n", nil
}
