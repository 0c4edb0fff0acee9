// SPDX-License-Identifier: Apache-2.0

// Package fakeparse is a deliberately small, keyword-driven recognizer
// for the common DDL/DML forms pkg/ir models. It is not a SQL parser:
// anything it cannot classify becomes ir.Unparseable, and anything it
// recognizes but chooses not to model becomes ir.Ignored. A real front
// end (pg_query_go, a Liquibase bridge, ...) lives outside this module;
// this package exists only so the rest of the repository is exercisable
// end to end without vendoring a full PostgreSQL grammar.
package fakeparse

import (
	"strings"

	"github.com/pglint/pglint/pkg/ir"
)

// Parse splits sql into statements and recognizes each one, attaching a
// Span derived from startLine and the statement's position in the
// source text. Unqualified table/schema names are qualified with
// defaultSchema, matching the normalization the real front end is
// assumed to perform before the core ever sees a Node.
func Parse(sql string, defaultSchema string, startLine int) []ir.Located {
	stmts := splitStatements(sql)
	out := make([]ir.Located, 0, len(stmts))
	line := startLine
	for _, s := range stmts {
		text := strings.TrimSpace(s.text)
		if text == "" {
			line += s.lines
			continue
		}
		node := recognize(text, defaultSchema)
		out = append(out, ir.Located{
			Node: node,
			Span: ir.Span{StartLine: line, EndLine: line + s.lines},
		})
		line += s.lines
	}
	return out
}

func recognize(stmt string, defaultSchema string) ir.Node {
	upper := strings.ToUpper(stmt)

	switch {
	case hasPrefix(upper, "CREATE TABLE") || hasPrefix(upper, "CREATE UNLOGGED TABLE") || hasPrefix(upper, "CREATE TEMPORARY TABLE") || hasPrefix(upper, "CREATE TEMP TABLE"):
		if n, ok := parseCreateTable(stmt, defaultSchema); ok {
			return n
		}
	case hasPrefix(upper, "CREATE UNIQUE INDEX") || hasPrefix(upper, "CREATE INDEX"):
		if n, ok := parseCreateIndex(stmt, defaultSchema); ok {
			return n
		}
	case hasPrefix(upper, "DROP INDEX"):
		if n, ok := parseDropIndex(stmt); ok {
			return n
		}
	case hasPrefix(upper, "DROP TABLE"):
		if n, ok := parseDropTable(stmt, defaultSchema); ok {
			return n
		}
	case hasPrefix(upper, "DROP SCHEMA"):
		if n, ok := parseDropSchema(stmt); ok {
			return n
		}
	case hasPrefix(upper, "ALTER TABLE"):
		if n, ok := parseAlterTable(stmt, defaultSchema); ok {
			return n
		}
	case hasPrefix(upper, "TRUNCATE"):
		if n, ok := parseTruncate(stmt, defaultSchema); ok {
			return n
		}
	case hasPrefix(upper, "INSERT INTO"):
		if n, ok := parseInsert(stmt, defaultSchema); ok {
			return n
		}
	case hasPrefix(upper, "UPDATE"):
		if n, ok := parseUpdate(stmt, defaultSchema); ok {
			return n
		}
	case hasPrefix(upper, "DELETE FROM"):
		if n, ok := parseDelete(stmt, defaultSchema); ok {
			return n
		}
	case hasPrefix(upper, "VACUUM FULL") || upper == "VACUUM FULL":
		return parseVacuumFull(stmt, defaultSchema)
	case hasPrefix(upper, "CLUSTER"):
		if n, ok := parseCluster(stmt, defaultSchema); ok {
			return n
		}
	case hasPrefix(upper, "COMMENT ON") || hasPrefix(upper, "GRANT") || hasPrefix(upper, "REVOKE"):
		return ir.Ignored{RawSQL: stmt}
	}

	return ir.Unparseable{RawSQL: stmt}
}

func hasPrefix(upper, prefix string) bool {
	return strings.HasPrefix(strings.Join(strings.Fields(upper), " "), prefix)
}

// qualify attaches defaultSchema to name if it carries no "schema."
// prefix already.
func qualify(name, defaultSchema string) ir.QualifiedName {
	name = strings.Trim(name, `"`)
	if idx := strings.IndexByte(name, '.'); idx >= 0 {
		return ir.QualifiedName{Schema: strings.Trim(name[:idx], `"`), Name: strings.Trim(name[idx+1:], `"`)}
	}
	return ir.QualifiedName{Schema: defaultSchema, Name: name}
}

func qualifyKey(name, defaultSchema string) string {
	return qualify(name, defaultSchema).Key()
}

type rawStatement struct {
	text  string
	lines int
}

// splitStatements strips "--" line comments and splits on top-level
// semicolons, never inside parentheses or quoted strings.
func splitStatements(sql string) []rawStatement {
	var out []rawStatement
	var b strings.Builder
	depth := 0
	inSingleQuote := false
	lineCount := 0
	stmtLines := 0

	lines := strings.Split(sql, "\n")
	for _, rawLine := range lines {
		lineCount++
		stmtLines++
		line := rawLine
		if idx := findLineCommentStart(line); idx >= 0 {
			line = line[:idx]
		}
		for i := 0; i < len(line); i++ {
			c := line[i]
			switch {
			case c == '\'' && !inSingleQuote:
				inSingleQuote = true
			case c == '\'' && inSingleQuote:
				inSingleQuote = false
			case c == '(' && !inSingleQuote:
				depth++
			case c == ')' && !inSingleQuote:
				if depth > 0 {
					depth--
				}
			case c == ';' && !inSingleQuote && depth == 0:
				out = append(out, rawStatement{text: b.String(), lines: stmtLines})
				b.Reset()
				stmtLines = 0
				continue
			}
			b.WriteByte(c)
		}
		b.WriteByte('\n')
	}
	if strings.TrimSpace(b.String()) != "" {
		out = append(out, rawStatement{text: b.String(), lines: stmtLines})
	}
	return out
}

func findLineCommentStart(line string) int {
	inQuote := false
	for i := 0; i < len(line)-1; i++ {
		if line[i] == '\'' {
			inQuote = !inQuote
			continue
		}
		if !inQuote && line[i] == '-' && line[i+1] == '-' {
			return i
		}
	}
	return -1
}
