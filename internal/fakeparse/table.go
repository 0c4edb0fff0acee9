// SPDX-License-Identifier: Apache-2.0

package fakeparse

import (
	"strings"

	"github.com/oapi-codegen/nullable"

	"github.com/pglint/pglint/pkg/ir"
)

func parseCreateTable(stmt string, defaultSchema string) (ir.Node, bool) {
	upper := strings.ToUpper(stmt)
	unlogged := strings.Contains(upper, "UNLOGGED")
	temporary := indexWord(upper, "TEMPORARY") >= 0 || indexWord(upper, "TEMP") >= 0
	ifNotExists := strings.Contains(upper, "IF NOT EXISTS")

	rest, ok := afterKeyword(stmt, "TABLE")
	if !ok {
		return nil, false
	}
	rest = trimLeadingWord(rest, "IF")
	rest = trimLeadingWord(rest, "NOT")
	rest = trimLeadingWord(rest, "EXISTS")

	name, rest := firstToken(rest)
	if name == "" {
		return nil, false
	}
	rest = strings.TrimSpace(rest)

	qname := qualify(name, defaultSchema)

	if idx := indexWord(strings.ToUpper(rest), "PARTITION"); idx >= 0 && hasPrefixWord(strings.ToUpper(strings.TrimSpace(rest)), "PARTITION") {
		return parsePartitionOf(rest, qname), true
	}

	inner, after, ok := matchParens(rest)
	if !ok {
		return ir.CreateTable{Name: qname, IfNotExists: ifNotExists, Temporary: temporary, Unlogged: unlogged}, true
	}

	ct := ir.CreateTable{Name: qname, IfNotExists: ifNotExists, Temporary: temporary, Unlogged: unlogged}
	for _, entry := range splitTopLevel(inner, ',') {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if con, isCon := parseTableConstraint(entry, defaultSchema); isCon {
			ct.Constraints = append(ct.Constraints, con)
			continue
		}
		if col, isCol := parseColumnDef(entry); isCol {
			ct.Columns = append(ct.Columns, col)
		}
	}

	if pb, ok := parsePartitionBy(after); ok {
		ct.PartitionBy = nullable.NewNullableWithValue(pb)
	}

	return ct, true
}

// parsePartitionOf handles `CREATE TABLE child PARTITION OF parent ...`,
// a form with no column list of its own.
func parsePartitionOf(rest string, child ir.QualifiedName) ir.Node {
	afterPartition, _ := afterKeyword(rest, "PARTITION")
	afterOf, _ := afterKeyword(afterPartition, "OF")
	parentName, _ := firstToken(afterOf)
	ct := ir.CreateTable{Name: child}
	if parentName != "" {
		ct.PartitionOf = nullable.NewNullableWithValue(qualifyKey(parentName, child.Schema))
	}
	return ct
}

func parsePartitionBy(s string) (ir.PartitionBy, bool) {
	upper := strings.ToUpper(s)
	idx := indexWord(upper, "PARTITION")
	if idx < 0 {
		return ir.PartitionBy{}, false
	}
	after, ok := afterKeyword(s[idx:], "PARTITION")
	if !ok {
		return ir.PartitionBy{}, false
	}
	after, ok = afterKeyword(after, "BY")
	if !ok {
		return ir.PartitionBy{}, false
	}
	after = strings.TrimSpace(after)

	var strategy ir.PartitionStrategy
	switch {
	case hasPrefixWord(strings.ToUpper(after), "RANGE"):
		strategy = ir.PartitionByRange
	case hasPrefixWord(strings.ToUpper(after), "LIST"):
		strategy = ir.PartitionByList
	case hasPrefixWord(strings.ToUpper(after), "HASH"):
		strategy = ir.PartitionByHash
	default:
		return ir.PartitionBy{}, false
	}

	inner, _, ok := matchParens(after)
	if !ok {
		return ir.PartitionBy{}, false
	}
	return ir.PartitionBy{Strategy: strategy, Columns: splitColumnList(inner)}, true
}

// parseTableConstraint recognizes a table-level constraint entry, with
// or without a leading CONSTRAINT name clause.
func parseTableConstraint(entry string, defaultSchema string) (ir.Constraint, bool) {
	name := ""
	body := entry
	if hasPrefixWord(strings.ToUpper(entry), "CONSTRAINT") {
		afterKw, _ := afterKeyword(entry, "CONSTRAINT")
		name, body = firstToken(afterKw)
	}
	bodyUpper := strings.ToUpper(strings.TrimSpace(body))

	switch {
	case hasPrefixWord(bodyUpper, "PRIMARY"):
		inner, rest, ok := matchParens(body)
		if !ok {
			return nil, false
		}
		pk := ir.PrimaryKeyConstraint{Name: name, Columns: splitColumnList(inner)}
		if idx, ok := usingIndexName(rest); ok {
			pk.UsingIndex = nullable.NewNullableWithValue(idx)
		}
		return pk, true

	case hasPrefixWord(bodyUpper, "FOREIGN"):
		inner, rest, ok := matchParens(body)
		if !ok {
			return nil, false
		}
		refTable, refCols := parseReferences(rest)
		return ir.ForeignKeyConstraint{
			Name:       name,
			Columns:    splitColumnList(inner),
			RefTable:   qualifyKey(refTable, defaultSchema),
			RefColumns: refCols,
			NotValid:   strings.Contains(strings.ToUpper(rest), "NOT VALID"),
		}, true

	case hasPrefixWord(bodyUpper, "UNIQUE"):
		uq := ir.UniqueConstraint{Name: name}
		if inner, rest, ok := matchParens(body); ok {
			uq.Columns = splitColumnList(inner)
			if idx, ok := usingIndexName(rest); ok {
				uq.UsingIndex = nullable.NewNullableWithValue(idx)
			}
		} else if idx, ok := usingIndexName(body); ok {
			uq.UsingIndex = nullable.NewNullableWithValue(idx)
		}
		return uq, true

	case hasPrefixWord(bodyUpper, "CHECK"):
		inner, rest, ok := matchParens(body)
		if !ok {
			return nil, false
		}
		return ir.CheckConstraint{
			Name:              name,
			Expression:        strings.TrimSpace(inner),
			NotValid:          strings.Contains(strings.ToUpper(rest), "NOT VALID"),
			ReferencedColumns: extractIdentifiers(inner),
		}, true

	case hasPrefixWord(bodyUpper, "EXCLUDE"):
		return ir.ExcludeConstraint{Name: name}, true
	}

	return nil, false
}

// usingIndexName recognizes `USING INDEX idx_name` in a constraint's
// trailing clause.
func usingIndexName(s string) (string, bool) {
	after, ok := afterKeyword(s, "USING")
	if !ok {
		return "", false
	}
	after, ok = afterKeyword(after, "INDEX")
	if !ok {
		return "", false
	}
	name, _ := firstToken(after)
	if name == "" {
		return "", false
	}
	return name, true
}

// parseReferences extracts the referenced table and column list from
// the text following a FOREIGN KEY's own column list, e.g.
// `REFERENCES customers(id)`.
func parseReferences(s string) (table string, cols []string) {
	after, ok := afterKeyword(s, "REFERENCES")
	if !ok {
		return "", nil
	}
	after = strings.TrimSpace(after)
	name, rest := firstToken(after)
	inner, _, ok := matchParens(rest)
	if ok {
		cols = splitColumnList(inner)
	}
	return name, cols
}

// parseColumnDef recognizes `name type [constraints...]`. It does not
// handle multi-word type names (e.g. "double precision",
// "timestamp without time zone") beyond the first token plus an
// optional trailing parenthesized precision/scale/length.
func parseColumnDef(entry string) (ir.ColumnDef, bool) {
	entry = strings.TrimSpace(entry)
	name, rest := firstToken(entry)
	if name == "" {
		return ir.ColumnDef{}, false
	}
	rest = strings.TrimSpace(rest)
	typeName, rest := firstToken(rest)
	if inner, after, ok := matchParens(rest); ok && strings.TrimSpace(rest) != "" && strings.HasPrefix(strings.TrimSpace(rest), "(") {
		typeName += "(" + inner + ")"
		rest = after
	}
	if typeName == "" {
		return ir.ColumnDef{}, false
	}

	col := ir.ColumnDef{Name: strings.Trim(name, `"`), TypeName: typeName, Nullable: true}
	upperRest := strings.ToUpper(rest)

	if strings.Contains(upperRest, "NOT NULL") {
		col.Nullable = false
	}
	if hasPrefixWord(strings.TrimSpace(upperRest), "PRIMARY") || indexWord(upperRest, "PRIMARY") >= 0 {
		col.PrimaryKey = true
	}
	if indexWord(upperRest, "UNIQUE") >= 0 {
		col.Unique = true
	}
	if defAfter, ok := afterKeyword(rest, "DEFAULT"); ok {
		expr, _ := nextExpression(defAfter)
		if expr != "" {
			col.Default = nullable.NewNullableWithValue(expr)
		}
	}
	return col, true
}

// nextExpression returns a leading single-quoted literal of s, or
// otherwise its first token; for a function-call default such as `now()`
// that token is the bare function name ("now") without its parentheses.
func nextExpression(s string) (string, string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ""
	}
	if s[0] == '\'' {
		end := strings.IndexByte(s[1:], '\'')
		if end >= 0 {
			return s[:end+2], s[end+2:]
		}
	}
	return firstToken(s)
}

// splitColumnList splits a parenthesized column list on commas and
// trims quoting/whitespace from each entry.
func splitColumnList(s string) []string {
	parts := splitTopLevel(s, ',')
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		p = strings.Trim(p, `"`)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// extractIdentifiers does a best-effort scan of a CHECK expression for
// bare column-like identifiers, skipping SQL keywords and literals. This
// is necessarily approximate for a keyword-driven recognizer.
func extractIdentifiers(expr string) []string {
	var out []string
	var cur strings.Builder
	flush := func() {
		tok := cur.String()
		cur.Reset()
		if tok == "" || isSQLKeyword(tok) || isNumeric(tok) {
			return
		}
		out = append(out, tok)
	}
	inQuote := false
	for i := 0; i < len(expr); i++ {
		c := expr[i]
		if c == '\'' {
			inQuote = !inQuote
			flush()
			continue
		}
		if inQuote {
			continue
		}
		if isIdentByte(c) && !(c >= '0' && c <= '9' && cur.Len() == 0) {
			cur.WriteByte(c)
		} else {
			flush()
		}
	}
	flush()
	return dedupe(out)
}

func isNumeric(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return s != ""
}

func isSQLKeyword(tok string) bool {
	switch strings.ToUpper(tok) {
	case "AND", "OR", "NOT", "NULL", "TRUE", "FALSE", "IS", "IN", "LIKE", "BETWEEN":
		return true
	}
	return false
}

func dedupe(in []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
