// SPDX-License-Identifier: Apache-2.0

package fakeparse

import "github.com/pglint/pglint/pkg/ir"

func parseInsert(stmt string, defaultSchema string) (ir.Node, bool) {
	rest, ok := afterKeyword(stmt, "INTO")
	if !ok {
		return nil, false
	}
	name, _ := firstToken(rest)
	if name == "" {
		return nil, false
	}
	return ir.InsertInto{Table: qualifyKey(name, defaultSchema)}, true
}

func parseUpdate(stmt string, defaultSchema string) (ir.Node, bool) {
	rest, ok := afterKeyword(stmt, "UPDATE")
	if !ok {
		return nil, false
	}
	rest = trimLeadingWord(rest, "ONLY")
	name, _ := firstToken(rest)
	if name == "" {
		return nil, false
	}
	return ir.UpdateTable{Table: qualifyKey(name, defaultSchema)}, true
}

func parseDelete(stmt string, defaultSchema string) (ir.Node, bool) {
	rest, ok := afterKeyword(stmt, "FROM")
	if !ok {
		return nil, false
	}
	rest = trimLeadingWord(rest, "ONLY")
	name, _ := firstToken(rest)
	if name == "" {
		return nil, false
	}
	return ir.DeleteFrom{Table: qualifyKey(name, defaultSchema)}, true
}
