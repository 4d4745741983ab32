package mysql

import (
	"database/sql"
	"strings"

	"github.com/juju/errors"

	"tabledoc/internal/parser/mysqldump"
)

func introspectColumns(ic *introspectCtx, table string) ([]mysqldump.Field, error) {
	rows, err := ic.db.QueryContext(ic.ctx, `
		SELECT
			c.column_name,
			c.column_type,
			c.is_nullable,
			c.column_key,
			c.column_default,
			c.extra,
			c.column_comment
		FROM information_schema.columns c
		WHERE c.table_schema = DATABASE() AND c.table_name = ?
		ORDER BY c.ordinal_position
	`, table)
	if err != nil {
		return nil, errors.Annotate(err, "query columns")
	}
	defer rows.Close()

	var fields []mysqldump.Field
	for rows.Next() {
		var name, colType, nullable, key, defaultVal, extra, comment sql.NullString
		if err := rows.Scan(&name, &colType, &nullable, &key, &defaultVal, &extra, &comment); err != nil {
			return nil, errors.Trace(err)
		}
		fields = append(fields, mysqldump.Field{
			Field:   name.String,
			Type:    colType.String,
			Null:    nullable.String,
			Key:     key.String,
			Default: normalizeDefault(defaultVal),
			Extra:   extra.String,
			Comment: comment.String,
		})
	}
	return fields, errors.Trace(rows.Err())
}

// normalizeDefault maps information_schema defaults to SHOW COLUMNS form.
// MariaDB reports literal defaults quoted and a missing default as NULL.
func normalizeDefault(v sql.NullString) string {
	if !v.Valid || v.String == "NULL" {
		return ""
	}
	s := v.String
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		s = strings.ReplaceAll(s[1:len(s)-1], "''", "'")
	}
	return s
}
