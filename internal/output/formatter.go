// Package output renders extracted table metadata as documentation pages.
// Every format produces one page per table plus an optional index page
// linking them; HTML, Markdown and JSON are available.
package output

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"tabledoc/internal/core"
)

// Format is an enum type representing the available output formats.
type Format string

const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// IndexMeta carries the run level facts shown on the index page.
type IndexMeta struct {
	// Database is the name shown as the documented database, normally the
	// base name of the output directory.
	Database    string
	GeneratedAt time.Time
}

// Formatter renders table and index pages in one format.
type Formatter interface {
	// Extension is the file extension of rendered pages, without the dot.
	Extension() string
	FormatTable(*core.Table) (string, error)
	FormatIndex(*core.Schema, IndexMeta) (string, error)
}

// NewFormatter creates a new Formatter instance based on the given name.
// If no format is specified, defaults to HTML format.
func NewFormatter(name string) (Formatter, error) {
	format, err := ParseFormat(name)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatMarkdown:
		return markdownFormatter{}, nil
	case FormatJSON:
		return jsonFormatter{}, nil
	default:
		return newHTMLFormatter()
	}
}

// ParseFormat validates a format name. "md" is accepted for markdown.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case "", FormatHTML:
		return FormatHTML, nil
	case FormatMarkdown, "md":
		return FormatMarkdown, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format: %s; use 'html', 'markdown', or 'json'", name)
	}
}

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// SafeFileName replaces every character outside [a-zA-Z0-9_-] with '_'.
func SafeFileName(name string) string {
	return unsafeFileChars.ReplaceAllString(name, "_")
}

// PageName is the file name of the page documenting table.
func PageName(table string, f Formatter) string {
	return SafeFileName(table) + "." + f.Extension()
}

const generatedAtLayout = "2006-01-02 15:04:05"

const noDescription = "No description"

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}
