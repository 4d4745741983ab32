// Package mysql reads table metadata from a running MySQL, MariaDB or TiDB
// server. Since they expose the same information_schema views, one reader
// serves all three; the server flavor is only detected for logging.
//
// Tables are produced as mysqldump structure elements, so a live database
// flows through the same conversion as a `mysqldump --xml` export.
package mysql

import (
	"context"
	"database/sql"
	"io"

	_ "github.com/go-sql-driver/mysql"
	"github.com/juju/errors"

	"tabledoc/internal/source"
)

// Connect opens a connection pool for dsn and checks that the server answers.
func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, errors.Annotate(err, "open database")
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Annotate(err, "connect to database")
	}
	return db, nil
}

type introspectCtx struct {
	ctx context.Context
	db  *sql.DB
}

// Source yields one element per base table of the current database, in name
// order. Column and key rows are queried lazily as each table is reached.
type Source struct {
	ic       *introspectCtx
	database string
	server   Server
	tables   []tableRow
	pos      int
}

// NewSource lists the tables of the database selected by the connection.
func NewSource(ctx context.Context, db *sql.DB) (*Source, error) {
	ic := &introspectCtx{ctx: ctx, db: db}

	var database sql.NullString
	if err := db.QueryRowContext(ctx, "SELECT DATABASE()").Scan(&database); err != nil {
		return nil, errors.Annotate(err, "select current database")
	}
	if !database.Valid || database.String == "" {
		return nil, errors.New("no database selected; add one to the DSN")
	}

	server, err := detectServer(ctx, db)
	if err != nil {
		return nil, errors.Trace(err)
	}

	tables, err := listTables(ic)
	if err != nil {
		return nil, errors.Trace(err)
	}

	return &Source{
		ic:       ic,
		database: database.String,
		server:   server,
		tables:   tables,
	}, nil
}

// Database returns the name of the database being read.
func (s *Source) Database() string { return s.database }

// Server returns the detected server flavor and version.
func (s *Source) Server() Server { return s.server }

// Len returns the number of tables the source will yield.
func (s *Source) Len() int { return len(s.tables) }

// Next returns the next table, or io.EOF once every table was read.
func (s *Source) Next() (*source.Element, error) {
	if s.pos >= len(s.tables) {
		return nil, io.EOF
	}
	t := s.tables[s.pos]
	s.pos++

	ts, err := structure(s.ic, t)
	if err != nil {
		return nil, errors.Annotatef(err, "read table %s", t.name)
	}
	return &source.Element{
		Dialect:   source.DialectMysqldump,
		Name:      t.name,
		Structure: ts,
	}, nil
}
