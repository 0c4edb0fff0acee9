// SPDX-License-Identifier: Apache-2.0

package rules

import (
	"fmt"

	"github.com/pglint/pglint/pkg/ir"
	"github.com/pglint/pglint/pkg/lintcontext"
	"github.com/pglint/pglint/pkg/severity"
)

// columnTypeRule is the shared shape for the single-column type
// anti-pattern rules: inspect every column mentioned in CreateTable or
// AddColumn/AlterColumnType and flag those whose type matches a
// predicate.
type columnTypeRule struct {
	baseRule
	matches func(typeName string) bool
	message func(table, column, typeName string) string
}

func (r *columnTypeRule) Check(statements []ir.Located, ctx *lintcontext.Context) []severity.Finding {
	var out []severity.Finding
	for _, loc := range statements {
		switch n := loc.Node.(type) {
		case ir.CreateTable:
			for _, col := range n.Columns {
				if r.matches(normalizeType(col.TypeName)) {
					out = append(out, finding(r, loc, r.message(n.Name.Key(), col.Name, col.TypeName), ctx.File))
				}
			}
		case ir.AlterTable:
			for _, action := range n.Actions {
				switch a := action.(type) {
				case ir.AddColumn:
					if r.matches(normalizeType(a.Column.TypeName)) {
						out = append(out, finding(r, loc, r.message(n.Table, a.Column.Name, a.Column.TypeName), ctx.File))
					}
				case ir.AlterColumnType:
					if r.matches(normalizeType(a.New)) {
						out = append(out, finding(r, loc, r.message(n.Table, a.Column, a.New), ctx.File))
					}
				}
			}
		}
	}
	return out
}

func init() {
	register(&columnTypeRule{
		baseRule: baseRule{
			id:          "PGM101",
			sev:         severity.Minor,
			description: "timestamp without time zone",
			explanation: "timestamp stores a naive wall-clock value with no time zone information; values silently assume the session's time zone at read time. timestamptz stores an absolute instant and is almost always what's intended.",
		},
		matches: func(t string) bool { return t == "timestamp" || hasTypeBase(t, "timestamp") },
		message: func(table, column, typeName string) string {
			return fmt.Sprintf("%s.%s: %s has no time zone, prefer timestamptz", table, column, typeName)
		},
	})

	register(&columnTypeRule{
		baseRule: baseRule{
			id:          "PGM102",
			sev:         severity.Minor,
			description: "timestamp(0) truncates sub-second precision",
			explanation: "timestamp(0) and timestamptz(0) round to whole seconds, which is rarely intended and silently discards precision other columns in the same system may retain.",
		},
		matches: func(t string) bool { return typeHasZeroPrecision(t) },
		message: func(table, column, typeName string) string {
			return fmt.Sprintf("%s.%s: %s truncates sub-second precision", table, column, typeName)
		},
	})

	register(&columnTypeRule{
		baseRule: baseRule{
			id:          "PGM103",
			sev:         severity.Minor,
			description: "char(n) pads with trailing spaces",
			explanation: "char(n) blank-pads to its full length and almost never behaves the way newcomers expect; varchar(n) or text with a check constraint is preferred.",
		},
		matches: func(t string) bool { base, _ := parseTypeArgs(t); return base == "char" || base == "character" },
		message: func(table, column, typeName string) string {
			return fmt.Sprintf("%s.%s: %s pads with trailing spaces, prefer varchar or text", table, column, typeName)
		},
	})

	register(&columnTypeRule{
		baseRule: baseRule{
			id:          "PGM104",
			sev:         severity.Minor,
			description: "money type has surprising rounding and locale behavior",
			explanation: "money is tied to the database's lc_monetary setting and rounds in ways that surprise callers; numeric is the recommended type for currency values.",
		},
		matches: func(t string) bool { return t == "money" },
		message: func(table, column, typeName string) string {
			return fmt.Sprintf("%s.%s: money has locale-dependent formatting and rounding, prefer numeric", table, column)
		},
	})

	register(&columnTypeRule{
		baseRule: baseRule{
			id:          "PGM105",
			sev:         severity.Info,
			description: "json stores text, jsonb stores a parsed binary form",
			explanation: "json preserves key order and whitespace but reparses on every access and cannot be indexed directly; jsonb is almost always the right default.",
		},
		matches: func(t string) bool { return t == "json" },
		message: func(table, column, typeName string) string {
			return fmt.Sprintf("%s.%s: json reparses on every access, prefer jsonb", table, column)
		},
	})

	register(&columnTypeRule{
		baseRule: baseRule{
			id:          "PGM106",
			sev:         severity.Minor,
			description: "serial/bigserial/smallserial predate identity columns",
			explanation: "serial types are sugar over a separately-owned sequence with ownership and permission quirks; GENERATED { ALWAYS | BY DEFAULT } AS IDENTITY is the SQL-standard replacement.",
		},
		matches: func(t string) bool { return t == "serial" || t == "bigserial" || t == "smallserial" },
		message: func(table, column, typeName string) string {
			return fmt.Sprintf("%s.%s: %s predates identity columns, prefer GENERATED ... AS IDENTITY", table, column, typeName)
		},
	})
}

func hasTypeBase(t, base string) bool {
	b, _ := parseTypeArgs(t)
	return b == base
}

func typeHasZeroPrecision(t string) bool {
	base, args := parseTypeArgs(t)
	if base != "timestamp" && base != "timestamptz" && base != "time" && base != "timetz" {
		return false
	}
	return len(args) == 1 && args[0] == "0"
}
