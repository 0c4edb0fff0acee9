// SPDX-License-Identifier: Apache-2.0

package rules

import (
	"fmt"
	"strings"

	"github.com/pglint/pglint/pkg/catalog"
	"github.com/pglint/pglint/pkg/ir"
	"github.com/pglint/pglint/pkg/lintcontext"
	"github.com/pglint/pglint/pkg/severity"
)

// indexWithoutConcurrentlyRule flags CREATE/DROP INDEX against an
// existing table that omits CONCURRENTLY, and flags CONCURRENTLY itself
// when it appears inside a transactional unit, where Postgres rejects it
// outright.
type indexWithoutConcurrentlyRule struct{ baseRule }

func init() {
	register(&indexWithoutConcurrentlyRule{baseRule{
		id:          "PGM001",
		sev:         severity.Critical,
		description: "index built or dropped without CONCURRENTLY on an existing table",
		explanation: "CREATE INDEX and DROP INDEX take an ACCESS EXCLUSIVE (DROP) or SHARE (CREATE) lock that blocks writes for the duration of the index scan, unless CONCURRENTLY is used. CONCURRENTLY cannot run inside a transaction block, so a migration tool that wraps units in a transaction must run such units outside one.",
	}})
}

func (r *indexWithoutConcurrentlyRule) Check(statements []ir.Located, ctx *lintcontext.Context) []severity.Finding {
	var out []severity.Finding
	for _, loc := range statements {
		switch n := loc.Node.(type) {
		case ir.CreateIndex:
			if n.Concurrent && ctx.RunInTransaction {
				out = append(out, finding(r, loc, "CREATE INDEX CONCURRENTLY cannot run inside a transaction", ctx.File))
				continue
			}
			if !n.Concurrent && ctx.IsExistingTable(n.Table) {
				out = append(out, finding(r, loc, fmt.Sprintf("CREATE INDEX on existing table %s without CONCURRENTLY locks out writes", n.Table), ctx.File))
			}
		case ir.DropIndex:
			if n.Concurrent && ctx.RunInTransaction {
				out = append(out, finding(r, loc, "DROP INDEX CONCURRENTLY cannot run inside a transaction", ctx.File))
				continue
			}
			if !n.Concurrent {
				if tableKey, ok := ctx.After.TableForIndex(n.Name); ok && ctx.IsExistingTable(tableKey) {
					out = append(out, finding(r, loc, fmt.Sprintf("DROP INDEX %s on existing table %s without CONCURRENTLY locks out writes", n.Name, tableKey), ctx.File))
				}
			}
		}
	}
	return out
}

// alterColumnTypeUnsafeRule flags ALTER COLUMN ... TYPE on an existing
// table unless the cast is one of the fixed set of binary-coercible (or
// otherwise known-safe) type changes.
type alterColumnTypeUnsafeRule struct{ baseRule }

func init() {
	register(&alterColumnTypeUnsafeRule{baseRule{
		id:          "PGM002",
		sev:         severity.Critical,
		description: "ALTER COLUMN TYPE on an existing table may rewrite the table",
		explanation: "Most type changes require Postgres to rewrite every row and take an ACCESS EXCLUSIVE lock for the duration. A short list of casts are metadata-only or otherwise safe: widening varchar/bit/varbit, varchar-to-text, numeric precision increases at equal scale, and timestamp-to-timestamptz (safe only when the session and stored values are UTC).",
	}})
}

func (r *alterColumnTypeUnsafeRule) Check(statements []ir.Located, ctx *lintcontext.Context) []severity.Finding {
	var out []severity.Finding
	for _, loc := range statements {
		alter, ok := loc.Node.(ir.AlterTable)
		if !ok || !ctx.IsExistingTable(alter.Table) {
			continue
		}
		for _, action := range alter.Actions {
			act, ok := action.(ir.AlterColumnType)
			if !ok {
				continue
			}
			oldType, ok := ir.GetOpt(act.Old)
			if !ok {
				table := ctx.Before.Get(alter.Table)
				if table == nil {
					continue
				}
				col := table.GetColumn(act.Column)
				if col == nil {
					continue
				}
				oldType = col.TypeName
			}
			switch alterColumnTypeSafety(oldType, act.New) {
			case severity.CastUnsafe:
				out = append(out, finding(r, loc, fmt.Sprintf("column %s.%s: %s -> %s may rewrite the table", alter.Table, act.Column, oldType, act.New), ctx.File))
			case severity.CastInfo:
				out = append(out, findingWithSeverity(r, severity.Info, loc, fmt.Sprintf("column %s.%s: %s -> %s is safe only when values are UTC", alter.Table, act.Column, oldType, act.New), ctx.File))
			}
		}
	}
	return out
}

// addForeignKeyWithoutNotValidRule flags ADD CONSTRAINT ... FOREIGN KEY
// on an existing table that omits NOT VALID.
type addForeignKeyWithoutNotValidRule struct{ baseRule }

func init() {
	register(&addForeignKeyWithoutNotValidRule{baseRule{
		id:          "PGM003",
		sev:         severity.Critical,
		description: "foreign key added to an existing table without NOT VALID",
		explanation: "Adding a FOREIGN KEY constraint validates every existing row under an ACCESS EXCLUSIVE lock unless NOT VALID is specified, deferring validation to a separate VALIDATE CONSTRAINT step that only takes a SHARE UPDATE EXCLUSIVE lock.",
	}})
}

func (r *addForeignKeyWithoutNotValidRule) Check(statements []ir.Located, ctx *lintcontext.Context) []severity.Finding {
	var out []severity.Finding
	for _, loc := range statements {
		alter, ok := loc.Node.(ir.AlterTable)
		if !ok || !ctx.IsExistingTable(alter.Table) {
			continue
		}
		for _, action := range alter.Actions {
			ac, ok := action.(ir.AddConstraint)
			if !ok {
				continue
			}
			fk, ok := ac.Constraint.(ir.ForeignKeyConstraint)
			if !ok || fk.NotValid {
				continue
			}
			out = append(out, finding(r, loc, fmt.Sprintf("foreign key %s on %s added without NOT VALID", fk.Name, alter.Table), ctx.File))
		}
	}
	return out
}

// addCheckWithoutNotValidRule flags ADD CONSTRAINT ... CHECK on an
// existing table that omits NOT VALID.
type addCheckWithoutNotValidRule struct{ baseRule }

func init() {
	register(&addCheckWithoutNotValidRule{baseRule{
		id:          "PGM004",
		sev:         severity.Critical,
		description: "check constraint added to an existing table without NOT VALID",
		explanation: "Adding a CHECK constraint scans and validates every existing row under an ACCESS EXCLUSIVE lock unless NOT VALID is specified.",
	}})
}

func (r *addCheckWithoutNotValidRule) Check(statements []ir.Located, ctx *lintcontext.Context) []severity.Finding {
	var out []severity.Finding
	for _, loc := range statements {
		alter, ok := loc.Node.(ir.AlterTable)
		if !ok || !ctx.IsExistingTable(alter.Table) {
			continue
		}
		for _, action := range alter.Actions {
			ac, ok := action.(ir.AddConstraint)
			if !ok {
				continue
			}
			chk, ok := ac.Constraint.(ir.CheckConstraint)
			if !ok || chk.NotValid {
				continue
			}
			out = append(out, finding(r, loc, fmt.Sprintf("check constraint %s on %s added without NOT VALID", chk.Name, alter.Table), ctx.File))
		}
	}
	return out
}

// addPKOrUniqueWithoutIndexRule flags ADD CONSTRAINT ... PRIMARY KEY/
// UNIQUE that builds a fresh index rather than reusing one created
// earlier with CONCURRENTLY via USING INDEX.
type addPKOrUniqueWithoutIndexRule struct{ baseRule }

func init() {
	register(&addPKOrUniqueWithoutIndexRule{baseRule{
		id:          "PGM005",
		sev:         severity.Major,
		description: "primary key or unique constraint added without reusing a pre-built index",
		explanation: "ADD CONSTRAINT ... PRIMARY KEY/UNIQUE builds its backing index under an ACCESS EXCLUSIVE lock unless USING INDEX names an index already built (typically CONCURRENTLY, in an earlier unit).",
	}})
}

func (r *addPKOrUniqueWithoutIndexRule) Check(statements []ir.Located, ctx *lintcontext.Context) []severity.Finding {
	var out []severity.Finding
	for _, loc := range statements {
		alter, ok := loc.Node.(ir.AlterTable)
		if !ok || !ctx.IsExistingTable(alter.Table) {
			continue
		}
		for _, action := range alter.Actions {
			ac, ok := action.(ir.AddConstraint)
			if !ok {
				continue
			}
			switch c := ac.Constraint.(type) {
			case ir.PrimaryKeyConstraint:
				if _, usesIndex := ir.GetOpt(c.UsingIndex); !usesIndex {
					out = append(out, finding(r, loc, fmt.Sprintf("primary key on %s built without a pre-existing unique index", alter.Table), ctx.File))
				}
			case ir.UniqueConstraint:
				if _, usesIndex := ir.GetOpt(c.UsingIndex); !usesIndex {
					out = append(out, finding(r, loc, fmt.Sprintf("unique constraint %s on %s built without a pre-existing unique index", c.Name, alter.Table), ctx.File))
				}
			}
		}
	}
	return out
}

// dropColumnDropsConstraintRule covers the four drop-column cascade rules
// (unique, primary key, foreign key, check). Every kind only looks at
// tables present before this unit, so a table created earlier in the
// same unit never fires; FK-kind additionally requires the table not to
// be counted as created in this change (ctx.IsExistingTable).
type dropColumnDropsConstraintRule struct {
	baseRule
	kind string
}

func init() {
	register(&dropColumnDropsConstraintRule{baseRule{
		id:          "PGM006",
		sev:         severity.Major,
		description: "dropping a column silently drops a unique constraint",
		explanation: "DROP COLUMN cascades to any constraint defined over that column. A dropped unique constraint is easy to miss in review since Postgres issues no error, only a NOTICE.",
	}, "unique"})
	register(&dropColumnDropsConstraintRule{baseRule{
		id:          "PGM007",
		sev:         severity.Major,
		description: "dropping a column silently drops the primary key",
		explanation: "DROP COLUMN cascades to the primary key constraint when the column is part of it, leaving the table without a primary key.",
	}, "pk"})
	register(&dropColumnDropsConstraintRule{baseRule{
		id:          "PGM008",
		sev:         severity.Major,
		description: "dropping a column silently drops a foreign key",
		explanation: "DROP COLUMN cascades to any foreign key constraint defined over that column.",
	}, "fk"})
	register(&dropColumnDropsConstraintRule{baseRule{
		id:          "PGM009",
		sev:         severity.Minor,
		description: "dropping a column silently drops a check constraint",
		explanation: "DROP COLUMN cascades to any check constraint that references that column.",
	}, "check"})
}

func (r *dropColumnDropsConstraintRule) Check(statements []ir.Located, ctx *lintcontext.Context) []severity.Finding {
	var out []severity.Finding
	for _, loc := range statements {
		alter, ok := loc.Node.(ir.AlterTable)
		if !ok {
			continue
		}
		before := ctx.Before.Get(alter.Table)
		if before == nil {
			continue
		}
		if r.kind == "fk" && !ctx.IsExistingTable(alter.Table) {
			continue
		}
		for _, action := range alter.Actions {
			drop, ok := action.(ir.DropColumn)
			if !ok {
				continue
			}
			for _, c := range before.ConstraintsInvolvingColumn(drop.Name) {
				switch v := c.(type) {
				case catalog.Unique:
					if r.kind != "unique" {
						continue
					}
					if v.Name == catalog.PKeyIndexName(alter.Table) {
						continue
					}
					out = append(out, finding(r, loc, fmt.Sprintf("dropping %s.%s drops unique constraint %s", alter.Table, drop.Name, v.Name), ctx.File))
				case catalog.PrimaryKey:
					if r.kind != "pk" {
						continue
					}
					out = append(out, finding(r, loc, fmt.Sprintf("dropping %s.%s drops the primary key", alter.Table, drop.Name), ctx.File))
				case catalog.ForeignKey:
					if r.kind != "fk" {
						continue
					}
					out = append(out, finding(r, loc, fmt.Sprintf("dropping %s.%s drops foreign key %s", alter.Table, drop.Name, v.Name), ctx.File))
				case catalog.Check:
					if r.kind != "check" {
						continue
					}
					out = append(out, finding(r, loc, fmt.Sprintf("dropping %s.%s leaves check constraint %s referencing a removed column", alter.Table, drop.Name, v.Name), ctx.File))
				}
			}
		}
	}
	return out
}

// volatileFunctionDefaultRule flags ADD COLUMN/SET DEFAULT using a
// volatile function call on an existing table, where Postgres must
// evaluate the function once per existing row under lock.
type volatileFunctionDefaultRule struct{ baseRule }

var volatileFunctionNames = map[string]bool{
	"now":              true,
	"current_timestamp": true,
	"clock_timestamp":  true,
	"random":           true,
	"gen_random_uuid":  true,
	"uuid_generate_v4": true,
	"nextval":          true,
}

func init() {
	register(&volatileFunctionDefaultRule{baseRule{
		id:          "PGM010",
		sev:         severity.Major,
		description: "column default calls a volatile function on an existing table",
		explanation: "A DEFAULT that calls a volatile function (now(), random(), nextval(), uuid generators) cannot be applied as a single fast metadata change; Postgres must compute and store a value per existing row.",
	}})
}

func (r *volatileFunctionDefaultRule) Check(statements []ir.Located, ctx *lintcontext.Context) []severity.Finding {
	var out []severity.Finding
	check := func(loc ir.Located, table, column, expr string) {
		if !ctx.IsExistingTable(table) {
			return
		}
		if isVolatileDefault(expr) {
			out = append(out, finding(r, loc, fmt.Sprintf("default for %s.%s calls a volatile function: %s", table, column, expr), ctx.File))
		}
	}
	for _, loc := range statements {
		switch n := loc.Node.(type) {
		case ir.AlterTable:
			for _, action := range n.Actions {
				switch a := action.(type) {
				case ir.AddColumn:
					if def, ok := ir.GetOpt(a.Column.Default); ok {
						check(loc, n.Table, a.Column.Name, def)
					}
				case ir.SetDefault:
					check(loc, n.Table, a.Column, a.Default)
				}
			}
		}
	}
	return out
}

func isVolatileDefault(expr string) bool {
	lower := normalizeType(expr)
	for name := range volatileFunctionNames {
		if strings.Contains(lower, name+"(") || lower == name {
			return true
		}
	}
	return false
}

// clusterOnExistingTableRule flags CLUSTER on an existing table.
type clusterOnExistingTableRule struct{ baseRule }

func init() {
	register(&clusterOnExistingTableRule{baseRule{
		id:          "PGM011",
		sev:         severity.Critical,
		description: "CLUSTER on an existing table",
		explanation: "CLUSTER rewrites the entire table and holds an ACCESS EXCLUSIVE lock for the duration, blocking reads and writes.",
	}})
}

func (r *clusterOnExistingTableRule) Check(statements []ir.Located, ctx *lintcontext.Context) []severity.Finding {
	var out []severity.Finding
	for _, loc := range statements {
		n, ok := loc.Node.(ir.Cluster)
		if !ok || !ctx.IsExistingTable(n.Table) {
			continue
		}
		out = append(out, finding(r, loc, fmt.Sprintf("CLUSTER on existing table %s", n.Table), ctx.File))
	}
	return out
}

// vacuumFullOnExistingTableRule flags VACUUM FULL on an existing table.
type vacuumFullOnExistingTableRule struct{ baseRule }

func init() {
	register(&vacuumFullOnExistingTableRule{baseRule{
		id:          "PGM012",
		sev:         severity.Major,
		description: "VACUUM FULL on an existing table",
		explanation: "VACUUM FULL rewrites the entire table and holds an ACCESS EXCLUSIVE lock for the duration.",
	}})
}

func (r *vacuumFullOnExistingTableRule) Check(statements []ir.Located, ctx *lintcontext.Context) []severity.Finding {
	var out []severity.Finding
	for _, loc := range statements {
		n, ok := loc.Node.(ir.VacuumFull)
		if !ok {
			continue
		}
		table, ok := ir.GetOpt(n.Table)
		if !ok || !ctx.IsExistingTable(table) {
			continue
		}
		out = append(out, finding(r, loc, fmt.Sprintf("VACUUM FULL on existing table %s", table), ctx.File))
	}
	return out
}
