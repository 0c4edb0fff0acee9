// SPDX-License-Identifier: Apache-2.0

package fakeparse

import (
	"strings"

	"github.com/pglint/pglint/pkg/ir"
)

func parseDropTable(stmt string, defaultSchema string) (ir.Node, bool) {
	upper := strings.ToUpper(stmt)
	ifExists := strings.Contains(upper, "IF EXISTS")
	cascade := indexWord(upper, "CASCADE") >= 0

	rest, ok := afterKeyword(stmt, "TABLE")
	if !ok {
		return nil, false
	}
	rest = trimLeadingWord(rest, "IF")
	rest = trimLeadingWord(rest, "EXISTS")
	name, _ := firstToken(rest)
	if name == "" {
		return nil, false
	}
	return ir.DropTable{Name: qualifyKey(name, defaultSchema), IfExists: ifExists, Cascade: cascade}, true
}

func parseDropSchema(stmt string) (ir.Node, bool) {
	upper := strings.ToUpper(stmt)
	ifExists := strings.Contains(upper, "IF EXISTS")
	cascade := indexWord(upper, "CASCADE") >= 0

	rest, ok := afterKeyword(stmt, "SCHEMA")
	if !ok {
		return nil, false
	}
	rest = trimLeadingWord(rest, "IF")
	rest = trimLeadingWord(rest, "EXISTS")
	name, _ := firstToken(rest)
	if name == "" {
		return nil, false
	}
	return ir.DropSchema{Schema: strings.Trim(name, `"`), IfExists: ifExists, Cascade: cascade}, true
}

func parseTruncate(stmt string, defaultSchema string) (ir.Node, bool) {
	upper := strings.ToUpper(stmt)
	cascade := indexWord(upper, "CASCADE") >= 0

	rest, ok := afterKeyword(stmt, "TRUNCATE")
	if !ok {
		return nil, false
	}
	rest = trimLeadingWord(rest, "TABLE")
	rest = trimLeadingWord(rest, "ONLY")
	name, _ := firstToken(rest)
	if name == "" {
		return nil, false
	}
	return ir.TruncateTable{Table: qualifyKey(name, defaultSchema), Cascade: cascade}, true
}
