// Package extract turns a stream of table elements into the ordered schema
// that the renderers document.
package extract

import (
	"errors"
	"fmt"
	"io"

	"tabledoc/internal/core"
	"tabledoc/internal/logging"
	"tabledoc/internal/parser/mysql"
	"tabledoc/internal/parser/mysqldump"
	"tabledoc/internal/source"
)

// ElementSource yields table elements until io.EOF.
type ElementSource interface {
	Next() (*source.Element, error)
}

// Options configures one extraction run.
type Options struct {
	// Include, when non-empty, keeps only the named tables.
	Include []string
	// Exclude drops the named tables. It is consulted after Include.
	Exclude []string
	// Mode selects how phpMyAdmin CREATE TABLE statements are read.
	Mode   mysql.Mode
	Logger logging.Logger
}

// Stats counts what happened to the elements of one run.
type Stats struct {
	Elements int
	Stored   int
	Empty    int
	Filtered int
}

// Extractor builds schemas from element streams.
type Extractor struct {
	include map[string]bool
	exclude map[string]bool
	parser  *mysql.Parser
	logger  logging.Logger
	stats   Stats
}

// NewExtractor creates an extractor for opts.
func NewExtractor(opts Options) *Extractor {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	mode := opts.Mode
	if mode == "" {
		mode = mysql.ModePattern
	}
	return &Extractor{
		include: toSet(opts.Include),
		exclude: toSet(opts.Exclude),
		parser:  mysql.NewParser(mode),
		logger:  logger,
	}
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

// Stats returns the counters of the last Extract call.
func (e *Extractor) Stats() Stats { return e.stats }

// Extract consumes src until it is exhausted. Tables without columns and
// tables rejected by the filters are dropped. A later table with the same
// name replaces an earlier one. A read error ends the stream early: it is
// logged and the tables read so far are returned.
func (e *Extractor) Extract(src ElementSource) *core.Schema {
	e.stats = Stats{}
	schema := core.NewSchema()

	for {
		el, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			e.logger.Warn("stopped reading export, keeping %d table(s): %v", schema.Len(), err)
			break
		}
		e.stats.Elements++

		table := e.convert(el)
		if len(table.Columns) == 0 {
			e.stats.Empty++
			e.logger.Verbose("skipping table %q: no columns found", el.Name)
			continue
		}
		if !e.Keep(table.Name) {
			e.stats.Filtered++
			e.logger.Verbose("skipping table %q: filtered out", table.Name)
			continue
		}

		if schema.Get(table.Name) != nil {
			e.logger.Warn("table %q appears more than once, keeping the last definition", table.Name)
		}
		if err := table.Validate(); err != nil {
			e.logger.Warn("table %q: %v", table.Name, err)
		}
		schema.Put(table)
	}

	e.stats.Stored = schema.Len()
	return schema
}

// Keep reports whether a table passes the include and exclude filters.
func (e *Extractor) Keep(name string) bool {
	if len(e.include) > 0 && !e.include[name] {
		return false
	}
	return !e.exclude[name]
}

func (e *Extractor) convert(el *source.Element) *core.Table {
	switch el.Dialect {
	case source.DialectMysqldump:
		if el.Structure == nil {
			return &core.Table{Name: el.Name}
		}
		table := mysqldump.Convert(el.Structure)
		table.Name = el.Name
		return table

	default:
		st := e.parser.Parse(el.Statement)
		for _, clause := range st.Skipped {
			e.logger.Verbose("table %q: ignoring clause %q", el.Name, clause)
		}
		for _, w := range st.Warnings {
			e.logger.Warn("table %q: %s", el.Name, w)
		}
		return &core.Table{
			Name:       el.Name,
			Columns:    st.Columns,
			Indexes:    st.Indexes,
			Partitions: st.Partitions,
			Comment:    st.Comment,
		}
	}
}

// ExtractFile opens the export at path and extracts its schema. Failing to
// open the file is the only error.
func ExtractFile(path string, opts Options) (*core.Schema, Stats, error) {
	r, err := source.Open(path)
	if err != nil {
		return nil, Stats{}, err
	}
	defer r.Close()

	e := NewExtractor(opts)
	schema := e.Extract(r)
	e.logger.Verbose("%s: %s", path, e.stats)
	return schema, e.Stats(), nil
}

// String formats the counters for the console.
func (s Stats) String() string {
	return fmt.Sprintf("%d table element(s) read, %d documented, %d without columns, %d filtered",
		s.Elements, s.Stored, s.Empty, s.Filtered)
}
