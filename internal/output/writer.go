package output

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tabledoc/internal/core"
	"tabledoc/internal/logging"
)

// Writer writes rendered pages into one directory.
type Writer struct {
	dir       string
	formatter Formatter
	logger    logging.Logger
	now       func() time.Time
}

// NewWriter creates a writer for dir. A nil logger discards messages.
func NewWriter(dir string, f Formatter, logger logging.Logger) *Writer {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Writer{
		dir:       dir,
		formatter: f,
		logger:    logger,
		now:       time.Now,
	}
}

// Write renders one page per table in schema order and, when withIndex is
// set, an index page named index.<ext>. It returns the written paths. The
// first render or write failure stops the run.
func (w *Writer) Write(s *core.Schema, withIndex bool) ([]string, error) {
	var written []string

	for _, t := range s.Tables() {
		page, err := w.formatter.FormatTable(t)
		if err != nil {
			return written, fmt.Errorf("failed to render table %s: %w", t.Name, err)
		}
		path := filepath.Join(w.dir, PageName(t.Name, w.formatter))
		if err := os.WriteFile(path, []byte(page), 0o644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		w.logger.Verbose("wrote %s", path)
		written = append(written, path)
	}

	if !withIndex {
		return written, nil
	}

	meta := IndexMeta{
		Database:    filepath.Base(w.dir),
		GeneratedAt: w.now(),
	}
	page, err := w.formatter.FormatIndex(s, meta)
	if err != nil {
		return written, fmt.Errorf("failed to render index: %w", err)
	}
	path := filepath.Join(w.dir, "index."+w.formatter.Extension())
	if err := os.WriteFile(path, []byte(page), 0o644); err != nil {
		return written, fmt.Errorf("failed to write index %s: %w", path, err)
	}
	w.logger.Verbose("wrote %s", path)
	return append(written, path), nil
}
