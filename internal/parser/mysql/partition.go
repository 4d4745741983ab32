package mysql

import (
	"fmt"
	"strconv"
	"strings"

	"tabledoc/internal/core"
)

// MaxPartitions is the largest partition count MySQL accepts. Larger counts
// are treated as unreadable.
const MaxPartitions = 8192

// PartitionPlaceholder formats the value shown for a HASH or KEY partition,
// which has no bound of its own.
func PartitionPlaceholder(n int) string {
	return fmt.Sprintf("partition %d", n)
}

// ExtractPartitions finds PARTITION BY <type> (<expr>) followed by either a
// parenthesized definition list or a PARTITIONS n clause. Definitions with
// VALUES LESS THAN or VALUES IN produce one partition each; otherwise a
// partition count produces p0..p(n-1). Anything else yields no partitions.
func ExtractPartitions(stmt string) []*core.Partition {
	toks := tokenize(stripVersionComments(stmt))

	start := -1
	for i := 0; i+1 < len(toks); i++ {
		if toks[i].isWord("PARTITION") && toks[i+1].isWord("BY") {
			start = i + 2
			break
		}
	}
	if start < 0 {
		return nil
	}

	var typeWords []string
	i := start
	for i < len(toks) && toks[i].kind == tokWord {
		typeWords = append(typeWords, toks[i].text)
		i++
	}
	if len(typeWords) == 0 || i >= len(toks) || toks[i].kind != tokGroup {
		return nil
	}
	ptype := strings.Join(typeWords, " ")
	expr := strings.TrimSpace(toks[i].text)
	rest := toks[i+1:]

	var defs []token
	if len(rest) > 0 && rest[0].kind == tokGroup {
		defs = tokenize(rest[0].text)
	} else {
		defs = rest
	}

	if parts := valuePartitions(defs, ptype, expr); len(parts) > 0 {
		return parts
	}

	n, ok := partitionCount(defs)
	if !ok {
		n, ok = partitionCount(rest)
	}
	if !ok {
		return nil
	}
	parts := make([]*core.Partition, 0, n)
	for p := 0; p < n; p++ {
		parts = append(parts, &core.Partition{
			Name:       "p" + strconv.Itoa(p),
			Type:       ptype,
			Expression: expr,
			Value:      PartitionPlaceholder(p),
		})
	}
	return parts
}

// valuePartitions reads "PARTITION name VALUES LESS THAN (v)" and
// "PARTITION name VALUES IN (list)" definitions in order.
func valuePartitions(toks []token, ptype, expr string) []*core.Partition {
	var parts []*core.Partition
	for i := 0; i+3 < len(toks); i++ {
		if !toks[i].isWord("PARTITION") {
			continue
		}
		name := toks[i+1]
		if name.kind != tokWord && name.kind != tokIdent {
			continue
		}
		if !toks[i+2].isWord("VALUES") {
			continue
		}
		value, ok := partitionBound(toks[i+3:])
		if !ok {
			continue
		}
		parts = append(parts, &core.Partition{
			Name:       name.text,
			Type:       ptype,
			Expression: expr,
			Value:      value,
		})
	}
	return parts
}

func partitionBound(toks []token) (string, bool) {
	switch {
	case len(toks) >= 3 && toks[0].isWord("LESS") && toks[1].isWord("THAN"):
		if toks[2].kind == tokGroup {
			return strings.TrimSpace(toks[2].text), true
		}
		if toks[2].isWord("MAXVALUE") {
			return "MAXVALUE", true
		}
	case len(toks) >= 2 && toks[0].isWord("IN") && toks[1].kind == tokGroup:
		return strings.TrimSpace(toks[1].text), true
	}
	return "", false
}

func partitionCount(toks []token) (int, bool) {
	for i := 0; i+1 < len(toks); i++ {
		if !toks[i].isWord("PARTITIONS") {
			continue
		}
		n, err := strconv.Atoi(toks[i+1].text)
		if err != nil || n < 0 || n > MaxPartitions || toks[i+1].kind != tokWord {
			return 0, false
		}
		return n, true
	}
	return 0, false
}
