package mysql

import (
	"html"
	"strings"

	"tabledoc/internal/core"
)

// Statement holds what could be recovered from one CREATE TABLE statement.
// An empty Columns slice means the statement could not be used.
type Statement struct {
	Columns    []*core.Column
	Indexes    []*core.Index
	Partitions []*core.Partition
	Comment    string

	// Skipped lists body clauses that were neither a column nor a key.
	Skipped []string
	// Warnings are non-fatal notes about how the statement was read.
	Warnings []string
}

// ParseStatement reads a CREATE TABLE ... ( ... ) ENGINE=... statement with
// the pattern rules. Every part degrades to an empty result on its own;
// when the body cannot be located no columns and no indexes are returned.
func ParseStatement(sql string) *Statement {
	st := &Statement{}

	if body, ok := isolateBody(sql); ok {
		for _, clause := range splitTopLevel(body) {
			col, isCol := ParseColumnClause(clause)
			if isCol {
				st.Columns = append(st.Columns, col)
			}
			idx, isIdx := ParseIndexClause(clause)
			if isIdx {
				st.Indexes = append(st.Indexes, idx)
			}
			if !isCol && !isIdx {
				st.Skipped = append(st.Skipped, clause)
			}
		}
	}

	st.Partitions = ExtractPartitions(sql)
	st.Comment = ExtractTableComment(sql)
	return st
}

// isolateBody returns the text between the first '(' after CREATE TABLE and
// its matching ')', provided the ENGINE clause follows right after it.
func isolateBody(sql string) (string, bool) {
	start := indexFold(sql, "CREATE TABLE")
	if start < 0 {
		return "", false
	}
	open := strings.IndexByte(sql[start:], '(')
	if open < 0 {
		return "", false
	}
	open += start
	closing := matchClose(sql, open)
	if closing < 0 {
		return "", false
	}
	tail := strings.TrimLeft(sql[closing+1:], " \t\r\n")
	if !hasPrefixFold(tail, "ENGINE") {
		return "", false
	}
	return sql[open+1 : closing], true
}

// ExtractTableComment returns the table level COMMENT = '...' option,
// HTML-entity-decoded. Column comments are nested in the body and never match.
func ExtractTableComment(sql string) string {
	toks := tokenize(stripVersionComments(sql))
	for i := 0; i+2 < len(toks); i++ {
		if toks[i].isWord("COMMENT") && toks[i+1].isPunct("=") && toks[i+2].kind == tokString {
			return html.UnescapeString(toks[i+2].text)
		}
	}
	return ""
}
