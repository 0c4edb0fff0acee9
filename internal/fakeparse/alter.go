// SPDX-License-Identifier: Apache-2.0

package fakeparse

import (
	"strings"

	"github.com/pglint/pglint/pkg/ir"
)

// parseAlterTable recognizes `ALTER TABLE table action [, action ...]`.
// A RENAME TO / RENAME COLUMN clause produces its own top-level Node
// (ir.RenameTable / ir.RenameColumn) rather than an AlterAction, matching
// how pkg/ir models renames as statements of their own. When a rename
// clause is present only the rename Node is returned; any other actions
// in the same statement are dropped (Postgres does not accept a rename
// combined with other actions in one statement).
func parseAlterTable(stmt string, defaultSchema string) (ir.Node, bool) {
	rest, ok := afterKeyword(stmt, "TABLE")
	if !ok {
		return nil, false
	}
	rest = trimLeadingWord(rest, "IF")
	rest = trimLeadingWord(rest, "EXISTS")
	rest = trimLeadingWord(rest, "ONLY")

	tableName, rest := firstToken(rest)
	if tableName == "" {
		return nil, false
	}
	tableKey := qualifyKey(tableName, defaultSchema)
	rest = strings.TrimSpace(rest)

	if after, ok := afterKeyword(rest, "RENAME"); ok {
		return parseRenameClause(after, tableKey)
	}
	if after, ok := afterKeyword(rest, "DISABLE"); ok {
		if trigAfter, ok := afterKeyword(after, "TRIGGER"); ok {
			trigger, _ := firstToken(trigAfter)
			if trigger != "" {
				return ir.DisableTrigger{Table: tableKey, Trigger: strings.Trim(trigger, `"`)}, true
			}
		}
	}

	at := ir.AlterTable{Table: tableKey}
	for _, clause := range splitTopLevel(rest, ',') {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}
		if action, ok := parseAlterAction(clause, defaultSchema); ok {
			at.Actions = append(at.Actions, action)
		}
	}
	if len(at.Actions) == 0 {
		return nil, false
	}
	return at, true
}

func parseRenameClause(after string, tableKey string) (ir.Node, bool) {
	after = strings.TrimSpace(after)
	if colAfter, ok := afterKeyword(after, "COLUMN"); ok {
		return parseRenameToPair(colAfter, func(from, to string) ir.Node {
			return ir.RenameColumn{Table: tableKey, From: from, To: to}
		})
	}
	return parseRenameToPair(after, func(from, to string) ir.Node {
		return ir.RenameTable{From: tableKey, To: qualifyKey(to, schemaOf(tableKey))}
	})
}

func schemaOf(tableKey string) string {
	idx := strings.IndexByte(tableKey, '.')
	if idx < 0 {
		return ""
	}
	return tableKey[:idx]
}

// parseRenameToPair recognizes `[from] TO to` (the "from" name is only
// present for RENAME COLUMN; RENAME TO on the table itself has no
// leading name).
func parseRenameToPair(s string, build func(from, to string) ir.Node) (ir.Node, bool) {
	s = strings.TrimSpace(s)
	upper := strings.ToUpper(s)
	toIdx := indexWord(upper, "TO")
	if toIdx < 0 {
		return nil, false
	}
	before := strings.TrimSpace(s[:toIdx])
	after := strings.TrimSpace(s[toIdx+2:])
	to, _ := firstToken(after)
	if to == "" {
		return nil, false
	}
	from, _ := firstToken(before)
	return build(strings.Trim(from, `"`), strings.Trim(to, `"`)), true
}

func parseAlterAction(clause string, defaultSchema string) (ir.AlterAction, bool) {
	upper := strings.ToUpper(clause)

	switch {
	case hasPrefixWord(upper, "ADD"):
		return parseAddClause(clause, defaultSchema)
	case hasPrefixWord(upper, "DROP"):
		return parseDropClause(clause)
	case hasPrefixWord(upper, "ALTER"):
		return parseAlterColumnClause(clause)
	case hasPrefixWord(upper, "ATTACH"):
		after, _ := afterKeyword(clause, "PARTITION")
		child, _ := firstToken(after)
		if child == "" {
			return nil, false
		}
		return ir.AttachPartition{Child: qualifyKey(child, defaultSchema)}, true
	case hasPrefixWord(upper, "DETACH"):
		concurrent := strings.Contains(upper, "CONCURRENTLY")
		after, _ := afterKeyword(clause, "PARTITION")
		after = trimLeadingWord(after, "CONCURRENTLY")
		child, _ := firstToken(after)
		if child == "" {
			return nil, false
		}
		return ir.DetachPartition{Child: qualifyKey(child, defaultSchema), Concurrent: concurrent}, true
	}

	return ir.Other{Raw: clause}, true
}

func parseAddClause(clause string, defaultSchema string) (ir.AlterAction, bool) {
	after, _ := afterKeyword(clause, "ADD")
	after = strings.TrimSpace(after)
	upper := strings.ToUpper(after)

	if hasPrefixWord(upper, "COLUMN") {
		after, _ = afterKeyword(after, "COLUMN")
		after = trimLeadingWord(after, "IF")
		after = trimLeadingWord(after, "NOT")
		after = trimLeadingWord(after, "EXISTS")
	}
	if hasPrefixWord(upper, "CONSTRAINT") || hasPrefixWord(upper, "PRIMARY") ||
		hasPrefixWord(upper, "FOREIGN") || hasPrefixWord(upper, "UNIQUE") ||
		hasPrefixWord(upper, "CHECK") || hasPrefixWord(upper, "EXCLUDE") {
		con, ok := parseTableConstraint(after, defaultSchema)
		if !ok {
			return nil, false
		}
		return ir.AddConstraint{Constraint: con}, true
	}

	col, ok := parseColumnDef(after)
	if !ok {
		return nil, false
	}
	return ir.AddColumn{Column: col}, true
}

func parseDropClause(clause string) (ir.AlterAction, bool) {
	after, _ := afterKeyword(clause, "DROP")
	after = strings.TrimSpace(after)
	upper := strings.ToUpper(after)

	switch {
	case hasPrefixWord(upper, "COLUMN"):
		after, _ = afterKeyword(after, "COLUMN")
		after = trimLeadingWord(after, "IF")
		after = trimLeadingWord(after, "EXISTS")
		name, _ := firstToken(after)
		if name == "" {
			return nil, false
		}
		return ir.DropColumn{Name: strings.Trim(name, `"`)}, true
	case hasPrefixWord(upper, "CONSTRAINT"):
		return nil, false
	}
	return nil, false
}

// parseAlterColumnClause recognizes `ALTER [COLUMN] col TYPE t`,
// `ALTER [COLUMN] col SET NOT NULL`, `ALTER [COLUMN] col DROP NOT NULL`,
// `ALTER [COLUMN] col SET DEFAULT expr`, `ALTER [COLUMN] col DROP
// DEFAULT`.
func parseAlterColumnClause(clause string) (ir.AlterAction, bool) {
	after, _ := afterKeyword(clause, "ALTER")
	after = strings.TrimSpace(after)
	after = trimLeadingWord(after, "COLUMN")
	col, rest := firstToken(after)
	if col == "" {
		return nil, false
	}
	col = strings.Trim(col, `"`)
	rest = strings.TrimSpace(rest)
	upper := strings.ToUpper(rest)

	switch {
	case hasPrefixWord(upper, "TYPE"):
		typeAfter, _ := afterKeyword(rest, "TYPE")
		typeName, _ := firstToken(strings.TrimSpace(typeAfter))
		if inner, _, ok := matchParens(strings.TrimSpace(typeAfter)[len(typeName):]); ok {
			typeName += "(" + inner + ")"
		}
		return ir.AlterColumnType{Column: col, New: typeName}, true
	case hasPrefixWord(upper, "SET"):
		setAfter, _ := afterKeyword(rest, "SET")
		setAfter = strings.TrimSpace(setAfter)
		setUpper := strings.ToUpper(setAfter)
		switch {
		case hasPrefixWord(setUpper, "NOT"):
			return ir.SetNotNull{Column: col}, true
		case hasPrefixWord(setUpper, "DEFAULT"):
			defAfter, _ := afterKeyword(setAfter, "DEFAULT")
			expr, _ := nextExpression(defAfter)
			return ir.SetDefault{Column: col, Default: expr}, true
		}
	case hasPrefixWord(upper, "DROP"):
		dropAfter, _ := afterKeyword(rest, "DROP")
		dropAfter = strings.TrimSpace(dropAfter)
		dropUpper := strings.ToUpper(dropAfter)
		switch {
		case hasPrefixWord(dropUpper, "NOT"):
			return ir.DropNotNull{Column: col}, true
		case hasPrefixWord(dropUpper, "DEFAULT"):
			return ir.DropDefault{Column: col}, true
		}
	}
	return nil, false
}
