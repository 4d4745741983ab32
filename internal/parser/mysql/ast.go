package mysql

import (
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/pingcap/tidb/pkg/parser"
	"github.com/pingcap/tidb/pkg/parser/ast"
	"github.com/pingcap/tidb/pkg/parser/format"
	_ "github.com/pingcap/tidb/pkg/parser/test_driver"

	"tabledoc/internal/core"
)

var errNoCreateTable = errors.New("no CREATE TABLE statement found")

// ASTParser reads CREATE TABLE statements with the TiDB MySQL grammar.
type ASTParser struct {
	p *parser.Parser
}

// NewASTParser creates a new grammar based statement parser.
func NewASTParser() *ASTParser {
	return &ASTParser{
		p: parser.New(),
	}
}

// Parse converts the first CREATE TABLE statement found in sql.
func (a *ASTParser) Parse(sql string) (*Statement, error) {
	stmtNodes, _, err := a.p.Parse(sql, "", "")
	if err != nil {
		return nil, fmt.Errorf("failed to parse statement: %w", err)
	}

	for _, node := range stmtNodes {
		if createStmt, ok := node.(*ast.CreateTableStmt); ok {
			return a.convertCreateTable(createStmt), nil
		}
	}
	return nil, errNoCreateTable
}

func (a *ASTParser) convertCreateTable(stmt *ast.CreateTableStmt) *Statement {
	st := &Statement{}

	for _, opt := range stmt.Options {
		if opt.Tp == ast.TableOptionComment {
			st.Comment = html.UnescapeString(opt.StrValue)
		}
	}

	for _, colDef := range stmt.Cols {
		col := &core.Column{
			Name:     colDef.Name.Name.O,
			Type:     columnType(colDef.Tp.String()),
			Nullable: true,
		}
		for _, opt := range colDef.Options {
			a.applyColumnOption(st, col, opt)
		}
		st.Columns = append(st.Columns, col)
	}

	for _, constraint := range stmt.Constraints {
		if idx := a.convertConstraint(constraint); idx != nil {
			st.Indexes = append(st.Indexes, idx)
		}
	}

	if stmt.Partition != nil {
		st.Partitions = a.convertPartitions(stmt.Partition)
	}
	return st
}

func (a *ASTParser) applyColumnOption(st *Statement, col *core.Column, opt *ast.ColumnOption) {
	if opt == nil {
		return
	}

	switch opt.Tp {
	case ast.ColumnOptionNotNull:
		col.Nullable = false
	case ast.ColumnOptionNull:
		col.Nullable = true
	case ast.ColumnOptionAutoIncrement:
		col.AutoIncrement = true
	case ast.ColumnOptionDefaultValue:
		if s := a.exprToString(opt.Expr); s != nil {
			col.Default = *s
		}
	case ast.ColumnOptionComment:
		if s := a.exprToString(opt.Expr); s != nil {
			col.Comment = html.UnescapeString(*s)
		}
	case ast.ColumnOptionPrimaryKey:
		col.Nullable = false
		st.Indexes = append(st.Indexes, core.NewIndex(core.PrimaryKeyName, core.IndexKindPrimary, []string{col.Name}))
	case ast.ColumnOptionUniqKey:
		st.Indexes = append(st.Indexes, core.NewIndex(col.Name, core.IndexKindUnique, []string{col.Name}))
	}
}

func (a *ASTParser) convertConstraint(constraint *ast.Constraint) *core.Index {
	columns := make([]string, 0, len(constraint.Keys))
	for _, key := range constraint.Keys {
		if key == nil || key.Column == nil {
			continue
		}
		name := key.Column.Name.O
		if key.Length > 0 {
			name += "(" + strconv.Itoa(key.Length) + ")"
		}
		columns = append(columns, name)
	}
	if len(columns) == 0 {
		return nil
	}

	switch constraint.Tp {
	case ast.ConstraintPrimaryKey:
		return core.NewIndex(core.PrimaryKeyName, core.IndexKindPrimary, columns)
	case ast.ConstraintUniq, ast.ConstraintUniqKey, ast.ConstraintUniqIndex:
		return core.NewIndex(constraint.Name, core.IndexKindUnique, columns)
	case ast.ConstraintIndex, ast.ConstraintKey, ast.ConstraintFulltext:
		return core.NewIndex(constraint.Name, core.IndexKindIndex, columns)
	default:
		return nil
	}
}

func (a *ASTParser) convertPartitions(opts *ast.PartitionOptions) []*core.Partition {
	ptype := opts.Tp.String()
	if opts.Linear {
		ptype = "LINEAR " + ptype
	}

	expr := ""
	if opts.Expr != nil {
		expr = restoreNode(opts.Expr)
	} else if len(opts.ColumnNames) > 0 {
		ptype += " COLUMNS"
		names := make([]string, 0, len(opts.ColumnNames))
		for _, cn := range opts.ColumnNames {
			names = append(names, cn.Name.O)
		}
		expr = strings.Join(names, ",")
	}

	var parts []*core.Partition
	for _, def := range opts.Definitions {
		value, ok := definitionValue(def.Clause)
		if !ok {
			continue
		}
		parts = append(parts, &core.Partition{
			Name:       def.Name.O,
			Type:       ptype,
			Expression: expr,
			Value:      value,
		})
	}
	if len(parts) > 0 {
		return parts
	}

	if opts.Num > MaxPartitions {
		return nil
	}
	for n := uint64(0); n < opts.Num; n++ {
		parts = append(parts, &core.Partition{
			Name:       "p" + strconv.FormatUint(n, 10),
			Type:       ptype,
			Expression: expr,
			Value:      PartitionPlaceholder(int(n)),
		})
	}
	return parts
}

func definitionValue(clause ast.PartitionDefinitionClause) (string, bool) {
	switch c := clause.(type) {
	case *ast.PartitionDefinitionClauseLessThan:
		values := make([]string, 0, len(c.Exprs))
		for _, e := range c.Exprs {
			values = append(values, restoreNode(e))
		}
		return strings.Join(values, ","), true
	case *ast.PartitionDefinitionClauseIn:
		var values []string
		for _, row := range c.Values {
			for _, e := range row {
				values = append(values, restoreNode(e))
			}
		}
		return strings.Join(values, ","), true
	default:
		return "", false
	}
}

// restoreNode prints a node back to SQL without identifier quoting.
func restoreNode(node ast.Node) string {
	var sb strings.Builder
	restoreCtx := format.NewRestoreCtx(format.DefaultRestoreFlags, &sb)
	if err := node.Restore(restoreCtx); err != nil {
		return ""
	}
	return strings.ReplaceAll(sb.String(), "`", "")
}

// exprToString restores a literal expression and strips the surrounding
// quotes and charset introducer of string literals.
func (a *ASTParser) exprToString(expr ast.ExprNode) *string {
	if expr == nil {
		return nil
	}
	var sb strings.Builder
	restoreCtx := format.NewRestoreCtx(format.DefaultRestoreFlags, &sb)
	if err := expr.Restore(restoreCtx); err != nil {
		return nil
	}
	s := sb.String()

	if strings.Contains(s, "'") {
		start := strings.Index(s, "'")
		end := strings.LastIndex(s, "'")
		if start != -1 && end != -1 && start < end {
			s = strings.ReplaceAll(s[start+1:end], "''", "'")
		}
	}
	if strings.HasPrefix(strings.ToUpper(s), "CURRENT_TIMESTAMP") {
		s = strings.TrimSuffix(s, "()")
	}

	return &s
}

// columnType drops the charset and collation that the field type printer
// appends to character types.
func columnType(typeRaw string) string {
	for _, marker := range []string{" CHARACTER SET ", " COLLATE "} {
		if i := strings.Index(typeRaw, marker); i >= 0 {
			typeRaw = typeRaw[:i]
		}
	}
	return strings.TrimSpace(typeRaw)
}
