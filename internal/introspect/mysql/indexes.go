package mysql

import (
	"database/sql"
	"strconv"

	"github.com/juju/errors"

	"tabledoc/internal/parser/mysqldump"
)

// introspectKeys returns one row per indexed column, primary key first,
// in the order SHOW KEYS would print them.
func introspectKeys(ic *introspectCtx, table string) ([]mysqldump.Key, error) {
	rows, err := ic.db.QueryContext(ic.ctx, `
		SELECT
			s.index_name,
			s.non_unique,
			s.seq_in_index,
			s.column_name,
			s.sub_part,
			s.index_type
		FROM information_schema.statistics s
		WHERE s.table_schema = DATABASE() AND s.table_name = ?
		ORDER BY s.index_name <> 'PRIMARY', s.non_unique, s.index_name, s.seq_in_index
	`, table)
	if err != nil {
		return nil, errors.Annotate(err, "query indexes")
	}
	defer rows.Close()

	var keys []mysqldump.Key
	for rows.Next() {
		var (
			indexName, column, indexType sql.NullString
			nonUnique, seq               int64
			subPart                      sql.NullInt64
		)
		if err := rows.Scan(&indexName, &nonUnique, &seq, &column, &subPart, &indexType); err != nil {
			return nil, errors.Trace(err)
		}

		k := mysqldump.Key{
			Table:      table,
			NonUnique:  strconv.FormatInt(nonUnique, 10),
			KeyName:    indexName.String,
			SeqInIndex: strconv.FormatInt(seq, 10),
			ColumnName: column.String,
			IndexType:  indexType.String,
		}
		if subPart.Valid {
			k.SubPart = strconv.FormatInt(subPart.Int64, 10)
		}
		keys = append(keys, k)
	}
	return keys, errors.Trace(rows.Err())
}
