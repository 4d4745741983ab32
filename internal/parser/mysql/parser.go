// Package mysql extracts table metadata from the CREATE TABLE statements
// embedded in phpMyAdmin exports. The default pattern mode reads only the
// statement shapes those exports produce; the AST mode runs the TiDB MySQL
// grammar and falls back to the pattern rules when it cannot parse a statement.
package mysql

import (
	"fmt"
	"strings"
)

// Mode selects how CREATE TABLE statements are read.
type Mode string

const (
	ModePattern Mode = "pattern"
	ModeAST     Mode = "ast"
)

// ParseMode validates a mode name. Empty selects ModePattern.
func ParseMode(name string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(name))) {
	case "", ModePattern:
		return ModePattern, nil
	case ModeAST:
		return ModeAST, nil
	default:
		return "", fmt.Errorf("unsupported parse mode: %s; use 'pattern' or 'ast'", name)
	}
}

// Parser reads CREATE TABLE statements in the configured mode.
type Parser struct {
	mode Mode
	ast  *ASTParser
}

// NewParser creates a parser for mode.
func NewParser(mode Mode) *Parser {
	p := &Parser{mode: mode}
	if mode == ModeAST {
		p.ast = NewASTParser()
	}
	return p
}

// Mode returns the configured mode.
func (p *Parser) Mode() Mode { return p.mode }

// Parse reads one statement. It never fails: unreadable parts are empty.
func (p *Parser) Parse(sql string) *Statement {
	if p.mode != ModeAST {
		return ParseStatement(sql)
	}

	st, err := p.ast.Parse(sql)
	if err == nil {
		return st
	}
	st = ParseStatement(sql)
	st.Warnings = append(st.Warnings, fmt.Sprintf("falling back to pattern rules: %v", err))
	return st
}
