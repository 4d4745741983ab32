package mysql

import (
	"strings"

	"tabledoc/internal/core"
)

// ParseIndexClause recognizes the key definitions found in a CREATE TABLE
// body, in priority order: PRIMARY KEY (cols), UNIQUE KEY name (cols) and
// KEY name (cols). INDEX is accepted as a synonym of KEY, and FULLTEXT or
// SPATIAL keys are documented as plain indexes.
func ParseIndexClause(clause string) (*core.Index, bool) {
	clause = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(clause), ","))
	toks := tokenize(clause)

	if len(toks) >= 2 && toks[0].isWord("CONSTRAINT") {
		toks = toks[1:]
		if toks[0].kind == tokIdent || (toks[0].kind == tokWord && !isConstraintKeyword(toks[0])) {
			toks = toks[1:]
		}
	}
	if len(toks) == 0 {
		return nil, false
	}

	switch {
	case len(toks) >= 2 && toks[0].isWord("PRIMARY") && toks[1].isWord("KEY"):
		cols := keyColumns(toks[2:])
		if len(cols) == 0 {
			return nil, false
		}
		return core.NewIndex(core.PrimaryKeyName, core.IndexKindPrimary, cols), true

	case toks[0].isWord("UNIQUE"):
		rest := toks[1:]
		if len(rest) > 0 && isKeyKeyword(rest[0]) {
			rest = rest[1:]
		}
		return namedIndex(rest, core.IndexKindUnique)

	case toks[0].isWord("FULLTEXT") || toks[0].isWord("SPATIAL"):
		rest := toks[1:]
		if len(rest) > 0 && isKeyKeyword(rest[0]) {
			rest = rest[1:]
		}
		return namedIndex(rest, core.IndexKindIndex)

	case isKeyKeyword(toks[0]):
		return namedIndex(toks[1:], core.IndexKindIndex)
	}
	return nil, false
}

func isKeyKeyword(t token) bool {
	return t.isWord("KEY") || t.isWord("INDEX")
}

func isConstraintKeyword(t token) bool {
	return t.isWord("PRIMARY") || t.isWord("UNIQUE") || t.isWord("FOREIGN") || t.isWord("CHECK")
}

// namedIndex expects "name [USING type] (cols)".
func namedIndex(toks []token, kind core.IndexKind) (*core.Index, bool) {
	if len(toks) < 2 || (toks[0].kind != tokIdent && toks[0].kind != tokWord) {
		return nil, false
	}
	name := toks[0].text
	if name == "" {
		return nil, false
	}
	cols := keyColumns(toks[1:])
	if len(cols) == 0 {
		return nil, false
	}
	return core.NewIndex(name, kind, cols), true
}

// keyColumns reads the column list from the first group token, skipping an
// index type clause such as USING BTREE in front of it.
func keyColumns(toks []token) []string {
	for _, tok := range toks {
		switch {
		case tok.kind == tokGroup:
			return splitKeyParts(tok.text)
		case tok.isWord("USING") || tok.isWord("BTREE") || tok.isWord("HASH"):
			continue
		default:
			return nil
		}
	}
	return nil
}

// splitKeyParts splits "`a`,`b`(10)" into ["a", "b(10)"].
func splitKeyParts(list string) []string {
	parts := splitTopLevel(list)
	cols := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(strings.ReplaceAll(p, "`", ""))
		if p != "" {
			cols = append(cols, p)
		}
	}
	return cols
}
