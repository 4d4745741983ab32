// Package source streams table definitions out of a MySQL XML export.
//
// Two document shapes are understood and may be mixed in one file:
// phpMyAdmin exports carry a CREATE TABLE statement as the text of a
// <pma:table name="..."> element, while `mysqldump --xml` writes structured
// <table_structure name="..."> elements. Elements are returned one at a time
// in document order, so the export is never loaded into memory as a whole.
package source

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"

	"tabledoc/internal/parser/mysqldump"
)

// Dialect names the export shape an element was read from.
type Dialect string

const (
	DialectPhpMyAdmin Dialect = "phpmyadmin"
	DialectMysqldump  Dialect = "mysqldump"
)

const (
	phpMyAdminElement = "table"
	mysqldumpElement  = "table_structure"
)

// ErrOpen is returned when the export file cannot be opened.
var ErrOpen = errors.New("failed to open export")

// Element is one table definition found in the export.
type Element struct {
	Dialect Dialect
	Name    string
	// Statement is the CREATE TABLE text of a phpMyAdmin element.
	Statement string
	// Structure is the decoded mysqldump element.
	Structure *mysqldump.TableStructure
}

// Reader yields elements from an XML document.
type Reader struct {
	dec    *xml.Decoder
	closer io.Closer
}

// Open opens the export at path for streaming.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrOpen, path, err)
	}
	r := NewReader(f)
	r.closer = f
	return r, nil
}

// NewReader reads elements from r. The caller keeps ownership of r.
func NewReader(r io.Reader) *Reader {
	return &Reader{dec: xml.NewDecoder(r)}
}

// Next returns the next table element, or io.EOF at the end of the
// document. Elements without a name attribute are skipped. Any other error
// means the document is malformed from this point on.
func (r *Reader) Next() (*Element, error) {
	for {
		tok, err := r.dec.Token()
		if err == io.EOF {
			return nil, io.EOF
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read XML: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case phpMyAdminElement:
			if !hasNameAttr(start) {
				continue
			}
			var el struct {
				Name string `xml:"name,attr"`
				Text string `xml:",chardata"`
			}
			if err := r.dec.DecodeElement(&el, &start); err != nil {
				return nil, fmt.Errorf("failed to decode table %q: %w", attrValue(start, "name"), err)
			}
			return &Element{
				Dialect:   DialectPhpMyAdmin,
				Name:      el.Name,
				Statement: el.Text,
			}, nil

		case mysqldumpElement:
			if !hasNameAttr(start) {
				continue
			}
			var ts mysqldump.TableStructure
			if err := r.dec.DecodeElement(&ts, &start); err != nil {
				return nil, fmt.Errorf("failed to decode table structure %q: %w", attrValue(start, "name"), err)
			}
			return &Element{
				Dialect:   DialectMysqldump,
				Name:      ts.Name,
				Structure: &ts,
			}, nil
		}
	}
}

// Close releases the underlying file when the reader was created by Open.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

func hasNameAttr(start xml.StartElement) bool {
	for _, a := range start.Attr {
		if a.Name.Local == "name" {
			return true
		}
	}
	return false
}

func attrValue(start xml.StartElement, local string) string {
	for _, a := range start.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}
