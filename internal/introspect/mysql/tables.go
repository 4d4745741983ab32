package mysql

import (
	"database/sql"

	"github.com/juju/errors"

	"tabledoc/internal/parser/mysqldump"
)

type tableRow struct {
	name    string
	engine  string
	comment string
}

func listTables(ic *introspectCtx) ([]tableRow, error) {
	rows, err := ic.db.QueryContext(ic.ctx, `
		SELECT table_name, engine, table_comment
		FROM information_schema.tables
		WHERE table_schema = DATABASE() AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`)
	if err != nil {
		return nil, errors.Annotate(err, "list tables")
	}
	defer rows.Close()

	var tables []tableRow
	for rows.Next() {
		var name, engine, comment sql.NullString
		if err := rows.Scan(&name, &engine, &comment); err != nil {
			return nil, errors.Trace(err)
		}
		tables = append(tables, tableRow{
			name:    name.String,
			engine:  engine.String,
			comment: comment.String,
		})
	}
	return tables, errors.Trace(rows.Err())
}

// structure assembles the rows mysqldump would print for the table.
func structure(ic *introspectCtx, t tableRow) (*mysqldump.TableStructure, error) {
	fields, err := introspectColumns(ic, t.name)
	if err != nil {
		return nil, err
	}
	keys, err := introspectKeys(ic, t.name)
	if err != nil {
		return nil, err
	}
	return &mysqldump.TableStructure{
		Name:   t.name,
		Fields: fields,
		Keys:   keys,
		Options: &mysqldump.Options{
			Name:    t.name,
			Engine:  t.engine,
			Comment: t.comment,
		},
	}, nil
}
