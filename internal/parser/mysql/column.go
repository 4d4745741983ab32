package mysql

import (
	"html"
	"strings"

	"tabledoc/internal/core"
)

// typeModifiers are keywords that belong to the declared type when they
// directly follow it.
var typeModifiers = []string{"UNSIGNED", "SIGNED", "ZEROFILL"}

// isIndexClause reports whether a body clause defines a key rather than a column.
func isIndexClause(clause string) bool {
	return hasKeywordPrefix(clause, "PRIMARY KEY") ||
		hasKeywordPrefix(clause, "UNIQUE KEY") ||
		hasKeywordPrefix(clause, "KEY")
}

// ParseColumnClause parses one column definition from a CREATE TABLE body,
// e.g. "`id` INT(11) NOT NULL AUTO_INCREMENT COMMENT 'PK',".
// It reports false for empty clauses, key definitions and anything that does
// not have the `name` type attributes shape.
func ParseColumnClause(clause string) (*core.Column, bool) {
	clause = strings.TrimSpace(clause)
	if clause == "" || isIndexClause(clause) || clause[0] != '`' {
		return nil, false
	}

	name, end := scanQuoted(clause, 0)
	if name == "" || end >= len(clause) || !isSpace(clause[end]) {
		return nil, false
	}

	rest := strings.TrimLeft(clause[end:], " \t\r\n")
	typ, n := scanType(rest)
	if typ == "" {
		return nil, false
	}

	attrs := strings.TrimSpace(rest[n:])
	attrs = strings.TrimSpace(strings.TrimSuffix(attrs, ","))

	col := &core.Column{
		Name:     name,
		Type:     typ,
		Nullable: true,
	}
	applyAttributes(col, tokenize(attrs))
	return col, true
}

// scanType reads the type token at the start of s: a word optionally followed
// by one parenthesized argument list kept as a unit, plus trailing numeric
// modifiers. It returns the type and the number of bytes consumed.
func scanType(s string) (string, int) {
	i := 0
	for i < len(s) && isWordByte(s[i]) {
		i++
	}
	if i == 0 {
		return "", 0
	}
	if i < len(s) && s[i] == '(' {
		if closing := matchClose(s, i); closing > 0 {
			i = closing + 1
		}
	}
	typ := s[:i]

	for {
		j := i
		for j < len(s) && isSpace(s[j]) {
			j++
		}
		k := j
		for k < len(s) && isWordByte(s[k]) {
			k++
		}
		if j == i || k == j || !isTypeModifier(s[j:k]) {
			break
		}
		typ += " " + s[j:k]
		i = k
	}
	return typ, i
}

func isTypeModifier(word string) bool {
	for _, m := range typeModifiers {
		if strings.EqualFold(word, m) {
			return true
		}
	}
	return false
}

// applyAttributes fills nullability, default, auto-increment and comment from
// the tokens following the type. The first COMMENT and DEFAULT win.
func applyAttributes(col *core.Column, toks []token) {
	var haveDefault, haveComment bool
	for i, tok := range toks {
		if tok.kind != tokWord {
			continue
		}
		var next *token
		if i+1 < len(toks) {
			next = &toks[i+1]
		}
		switch strings.ToUpper(tok.text) {
		case "NOT":
			if next != nil && next.isWord("NULL") {
				col.Nullable = false
			}
		case "AUTO_INCREMENT":
			col.AutoIncrement = true
		case "COMMENT":
			if !haveComment && next != nil && next.kind == tokString {
				col.Comment = html.UnescapeString(next.text)
				haveComment = true
			}
		case "DEFAULT":
			if !haveDefault && next != nil {
				col.Default, haveDefault = defaultValue(toks[i+1:])
			}
		}
	}
}

// defaultValue returns the literal following DEFAULT. A quoted value loses
// its quotes; a bare value keeps a directly attached argument list or
// quoted literal.
func defaultValue(toks []token) (string, bool) {
	first := toks[0]
	switch first.kind {
	case tokString:
		return first.text, true
	case tokWord:
		// Attached groups and introduced literals: CURRENT_TIMESTAMP(6),
		// b'0', x'1F', _utf8mb4'abc'.
		if len(toks) > 1 && toks[1].pos == first.end &&
			(toks[1].kind == tokGroup || toks[1].kind == tokString) {
			return first.text + toks[1].raw(), true
		}
		return first.text, true
	case tokGroup, tokIdent:
		return first.raw(), true
	default:
		return "", false
	}
}
