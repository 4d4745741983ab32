package output

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"tabledoc/internal/core"
)

//go:embed templates/*.html.tmpl
var templatesFS embed.FS

type htmlFormatter struct {
	tmpl *template.Template
}

func newHTMLFormatter() (htmlFormatter, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"join":  strings.Join,
		"yesNo": yesNo,
		"page":  func(name string) string { return SafeFileName(name) + ".html" },
	}).ParseFS(templatesFS, "templates/*.html.tmpl")
	if err != nil {
		return htmlFormatter{}, fmt.Errorf("failed to parse HTML templates: %w", err)
	}
	return htmlFormatter{tmpl: tmpl}, nil
}

func (htmlFormatter) Extension() string { return "html" }

// FormatTable renders the detail page of one table. All values are escaped.
func (f htmlFormatter) FormatTable(t *core.Table) (string, error) {
	return f.execute("table.html.tmpl", t)
}

// FormatIndex renders the overview page linking every table page.
func (f htmlFormatter) FormatIndex(s *core.Schema, meta IndexMeta) (string, error) {
	type entry struct {
		Name        string
		Comment     string
		ColumnCount int
	}
	data := struct {
		Database    string
		TableCount  int
		Tables      []entry
		GeneratedAt string
		NoComment   string
	}{
		Database:    meta.Database,
		TableCount:  s.Len(),
		GeneratedAt: meta.GeneratedAt.Format(generatedAtLayout),
		NoComment:   noDescription,
	}
	for _, t := range s.Tables() {
		data.Tables = append(data.Tables, entry{Name: t.Name, Comment: t.Comment, ColumnCount: len(t.Columns)})
	}
	return f.execute("index.html.tmpl", data)
}

func (f htmlFormatter) execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := f.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}
