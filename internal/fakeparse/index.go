// SPDX-License-Identifier: Apache-2.0

package fakeparse

import (
	"strings"

	"github.com/oapi-codegen/nullable"

	"github.com/pglint/pglint/pkg/ir"
)

func parseCreateIndex(stmt string, defaultSchema string) (ir.Node, bool) {
	upper := strings.ToUpper(stmt)
	unique := indexWord(upper, "UNIQUE") >= 0 && indexWord(upper, "UNIQUE") < indexWord(upper, "INDEX")
	concurrent := strings.Contains(upper, "CONCURRENTLY")
	ifNotExists := strings.Contains(upper, "IF NOT EXISTS")

	rest, ok := afterKeyword(stmt, "INDEX")
	if !ok {
		return nil, false
	}
	rest = trimLeadingWord(rest, "CONCURRENTLY")
	rest = trimLeadingWord(rest, "IF")
	rest = trimLeadingWord(rest, "NOT")
	rest = trimLeadingWord(rest, "EXISTS")

	var name nullable.Nullable[string]
	trimmedRest := strings.TrimSpace(rest)
	if !hasPrefixWord(strings.ToUpper(trimmedRest), "ON") {
		tok, r := firstToken(trimmedRest)
		if tok != "" {
			name = nullable.NewNullableWithValue(tok)
			rest = r
		}
	}

	rest, ok = afterKeyword(rest, "ON")
	if !ok {
		return nil, false
	}
	rest = trimLeadingWord(rest, "ONLY")
	tableName, rest := firstToken(rest)
	if tableName == "" {
		return nil, false
	}

	method := ""
	if after, ok := afterKeyword(rest, "USING"); ok {
		method, rest = firstToken(after)
	}

	inner, after, ok := matchParens(rest)
	if !ok {
		return nil, false
	}

	ci := ir.CreateIndex{
		Name:         name,
		Table:        qualifyKey(tableName, defaultSchema),
		Unique:       unique,
		Concurrent:   concurrent,
		IfNotExists:  ifNotExists,
		AccessMethod: method,
	}
	for _, entry := range splitTopLevel(inner, ',') {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		entry = stripSortModifiers(entry)
		tok, trailing := firstToken(entry)
		if tok != entry && strings.TrimSpace(trailing) != "" {
			ci.Entries = append(ci.Entries, ir.IndexExpression{Text: entry, ReferencedColumns: extractIdentifiers(entry)})
			continue
		}
		ci.Entries = append(ci.Entries, ir.IndexColumn{Name: strings.Trim(entry, `"`)})
	}

	if whereAfter, ok := afterKeyword(after, "WHERE"); ok {
		ci.Where = nullable.NewNullableWithValue(strings.TrimSpace(whereAfter))
	}

	return ci, true
}

// stripSortModifiers drops trailing ASC/DESC/NULLS FIRST/NULLS LAST
// tokens from a column-list entry, which are not part of the column
// name or expression itself.
func stripSortModifiers(entry string) string {
	fs := fields(entry)
	for len(fs) > 1 {
		last := strings.ToUpper(fs[len(fs)-1])
		if last == "ASC" || last == "DESC" || last == "FIRST" || last == "LAST" || last == "NULLS" {
			fs = fs[:len(fs)-1]
			continue
		}
		break
	}
	return strings.Join(fs, " ")
}

func parseDropIndex(stmt string) (ir.Node, bool) {
	upper := strings.ToUpper(stmt)
	concurrent := strings.Contains(upper, "CONCURRENTLY")
	ifExists := strings.Contains(upper, "IF EXISTS")

	rest, ok := afterKeyword(stmt, "INDEX")
	if !ok {
		return nil, false
	}
	rest = trimLeadingWord(rest, "CONCURRENTLY")
	rest = trimLeadingWord(rest, "IF")
	rest = trimLeadingWord(rest, "EXISTS")
	name, _ := firstToken(rest)
	if name == "" {
		return nil, false
	}
	return ir.DropIndex{Name: strings.Trim(name, `"`), Concurrent: concurrent, IfExists: ifExists}, true
}
