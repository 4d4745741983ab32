package mysql

import (
	"strings"
)

type tokenKind int

const (
	tokWord   tokenKind = iota // bare run: keyword, number, type name
	tokString                  // '...' or "...", text holds the unescaped content
	tokIdent                   // `...`, text holds the identifier
	tokGroup                   // (...), text holds the raw inner text
	tokPunct                   // , = ;
)

type token struct {
	kind  tokenKind
	text  string
	pos   int
	end   int
	quote byte // delimiter of a tokString
}

func (t token) isWord(kw string) bool {
	return t.kind == tokWord && strings.EqualFold(t.text, kw)
}

func (t token) isPunct(p string) bool {
	return t.kind == tokPunct && t.text == p
}

// raw returns the token as it would appear in source, modulo quote escaping.
func (t token) raw() string {
	switch t.kind {
	case tokGroup:
		return "(" + t.text + ")"
	case tokIdent:
		return "`" + t.text + "`"
	case tokString:
		q := string(t.quote)
		return q + strings.ReplaceAll(t.text, q, q+q) + q
	default:
		return t.text
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isWordByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isDelimiter(c byte) bool {
	switch c {
	case ',', ';', '=', '(', ')', '\'', '"', '`':
		return true
	}
	return isSpace(c)
}

// tokenize splits s into top-level tokens. Parenthesized groups are returned
// as a single token, so anything nested inside them is invisible at this level.
// Unterminated strings and groups run to the end of input.
func tokenize(s string) []token {
	var toks []token
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case isSpace(c):
			i++
		case c == '\'' || c == '"':
			text, end := scanQuoted(s, i)
			toks = append(toks, token{kind: tokString, text: text, pos: i, end: end, quote: c})
			i = end
		case c == '`':
			text, end := scanQuoted(s, i)
			toks = append(toks, token{kind: tokIdent, text: text, pos: i, end: end})
			i = end
		case c == '(':
			closing := matchClose(s, i)
			if closing < 0 {
				toks = append(toks, token{kind: tokGroup, text: s[i+1:], pos: i, end: len(s)})
				i = len(s)
				continue
			}
			toks = append(toks, token{kind: tokGroup, text: s[i+1 : closing], pos: i, end: closing + 1})
			i = closing + 1
		case c == ',' || c == ';' || c == '=':
			toks = append(toks, token{kind: tokPunct, text: string(c), pos: i, end: i + 1})
			i++
		case c == ')':
			// stray closing paren
			i++
		default:
			start := i
			for i < len(s) && !isDelimiter(s[i]) {
				i++
			}
			toks = append(toks, token{kind: tokWord, text: s[start:i], pos: start, end: i})
		}
	}
	return toks
}

// scanQuoted reads a quoted literal starting at s[start] and returns its
// unescaped content and the index just past the closing quote. A doubled
// quote character stands for itself; backslash escapes apply to strings only.
func scanQuoted(s string, start int) (string, int) {
	q := s[start]
	var sb strings.Builder
	i := start + 1
	for i < len(s) {
		c := s[i]
		switch {
		case c == '\\' && q != '`' && i+1 < len(s):
			sb.WriteByte(unescapeByte(s[i+1]))
			i += 2
		case c == q:
			if i+1 < len(s) && s[i+1] == q {
				sb.WriteByte(q)
				i += 2
				continue
			}
			return sb.String(), i + 1
		default:
			sb.WriteByte(c)
			i++
		}
	}
	return sb.String(), len(s)
}

func unescapeByte(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	default:
		return c
	}
}

// skipQuoted returns the index just past the quoted literal at s[start].
func skipQuoted(s string, start int) int {
	_, end := scanQuoted(s, start)
	return end
}

// matchClose returns the index of the ')' matching the '(' at s[open],
// ignoring parentheses inside quoted literals, or -1.
func matchClose(s string, open int) int {
	depth := 0
	for i := open; i < len(s); {
		switch s[i] {
		case '\'', '"', '`':
			i = skipQuoted(s, i)
			continue
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
		i++
	}
	return -1
}

// splitTopLevel splits s on commas that are outside quotes and parentheses.
// Parts are trimmed; empty parts are dropped.
func splitTopLevel(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); {
		switch s[i] {
		case '\'', '"', '`':
			i = skipQuoted(s, i)
			continue
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				if p := strings.TrimSpace(s[start:i]); p != "" {
					parts = append(parts, p)
				}
				start = i + 1
			}
		}
		i++
	}
	if p := strings.TrimSpace(s[start:]); p != "" {
		parts = append(parts, p)
	}
	return parts
}

// indexFold is a case-insensitive strings.Index for ASCII keywords.
func indexFold(s, substr string) int {
	n := len(substr)
	for i := 0; i+n <= len(s); i++ {
		if strings.EqualFold(s[i:i+n], substr) {
			return i
		}
	}
	return -1
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// hasKeywordPrefix reports whether s starts with the space separated keyword
// sequence kw, e.g. "PRIMARY KEY" matches "PRIMARY  KEY (`id`)".
func hasKeywordPrefix(s, kw string) bool {
	rest := s
	for _, word := range strings.Fields(kw) {
		rest = strings.TrimLeft(rest, " \t\r\n")
		if !hasPrefixFold(rest, word) {
			return false
		}
		rest = rest[len(word):]
		if rest != "" && isWordByte(rest[0]) {
			return false
		}
	}
	return true
}

// stripVersionComments unwraps MySQL executable comments such as
// "/*!50100 PARTITION BY ... */" so their content is parsed like plain SQL.
func stripVersionComments(s string) string {
	if !strings.Contains(s, "/*!") {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	open := 0
	for i := 0; i < len(s); {
		switch {
		case strings.HasPrefix(s[i:], "/*!"):
			i += 3
			for i < len(s) && s[i] >= '0' && s[i] <= '9' {
				i++
			}
			sb.WriteByte(' ')
			open++
		case open > 0 && strings.HasPrefix(s[i:], "*/"):
			i += 2
			sb.WriteByte(' ')
			open--
		case s[i] == '\'' || s[i] == '"' || s[i] == '`':
			end := skipQuoted(s, i)
			sb.WriteString(s[i:end])
			i = end
		default:
			sb.WriteByte(s[i])
			i++
		}
	}
	return sb.String()
}
