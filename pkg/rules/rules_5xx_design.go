// SPDX-License-Identifier: Apache-2.0

package rules

import (
	"fmt"

	"github.com/pglint/pglint/pkg/catalog"
	"github.com/pglint/pglint/pkg/ir"
	"github.com/pglint/pglint/pkg/lintcontext"
	"github.com/pglint/pglint/pkg/severity"
)

// fkWithoutCoveringIndexRule requires every added foreign key to be
// covered by an index on the referencing side, consulting the partition
// parent's indexes when the referencing table is itself a partition
// child with no covering index of its own.
type fkWithoutCoveringIndexRule struct{ baseRule }

func init() {
	register(&fkWithoutCoveringIndexRule{baseRule{
		id:          "PGM501",
		sev:         severity.Major,
		description: "foreign key without a covering index on the referencing side",
		explanation: "Postgres does not automatically index the referencing side of a foreign key. Without one, deleting or updating a row on the referenced side forces a sequential scan of the referencing table to enforce the constraint.",
	}})
}

func (r *fkWithoutCoveringIndexRule) Check(statements []ir.Located, ctx *lintcontext.Context) []severity.Finding {
	var out []severity.Finding
	for _, loc := range statements {
		for _, added := range foreignKeysAddedIn(loc) {
			table := ctx.After.Get(added.TableKey)
			if table == nil {
				continue
			}
			if tableHasFKCoverage(ctx.After, table, added.FK.Columns) {
				continue
			}
			out = append(out, finding(r, loc, fmt.Sprintf("foreign key %s on %s(%v) has no covering index", added.FK.Name, added.TableKey, added.FK.Columns), ctx.File))
		}
	}
	return out
}

// tableHasFKCoverage implements the three-way coverage check: plain
// tables and partitioned tables consult their own indexes (partitioned
// tables only count non-ONLY indexes, which recurse to children);
// partition children fall back to the parent's indexes when they have
// none of their own, and are suppressed entirely if the parent is
// missing from the catalog.
func tableHasFKCoverage(after *catalog.Catalog, table *catalog.TableState, cols []string) bool {
	if table.HasCoveringIndex(cols) {
		return true
	}
	if parentKey, ok := ir.GetOpt(table.ParentTable); ok {
		parent := after.Get(parentKey)
		if parent == nil {
			return true
		}
		return parent.HasCoveringIndex(cols)
	}
	return false
}

type tableWithoutPKRule struct{ baseRule }

func init() {
	register(&tableWithoutPKRule{baseRule{
		id:          "PGM502",
		sev:         severity.Major,
		description: "table has no primary key",
		explanation: "Tables without a primary key complicate replication, upserts, and ORM tooling. Partition children inherit their parent's primary key and temporary tables are exempt.",
	}})
}

func (r *tableWithoutPKRule) Check(statements []ir.Located, ctx *lintcontext.Context) []severity.Finding {
	var out []severity.Finding
	for _, loc := range statements {
		ct, ok := loc.Node.(ir.CreateTable)
		if !ok || ct.Temporary {
			continue
		}
		table := ctx.After.Get(ct.Name.Key())
		if table == nil || table.HasPrimaryKey {
			continue
		}
		if table.HasUniqueNotNull() {
			continue
		}
		if ctx.PartitionChildInheritsPK(ct, ct.Name.Key()) {
			continue
		}
		out = append(out, finding(r, loc, fmt.Sprintf("table %s has no primary key", ct.Name.Key()), ctx.File))
	}
	return out
}

type uniqueNotNullInsteadOfPKRule struct{ baseRule }

func init() {
	register(&uniqueNotNullInsteadOfPKRule{baseRule{
		id:          "PGM503",
		sev:         severity.Minor,
		description: "UNIQUE NOT NULL used instead of a primary key",
		explanation: "A UNIQUE constraint over not-null columns behaves like a primary key for most purposes but is less discoverable to tooling that specifically looks for a PK.",
	}})
}

func (r *uniqueNotNullInsteadOfPKRule) Check(statements []ir.Located, ctx *lintcontext.Context) []severity.Finding {
	var out []severity.Finding
	for _, loc := range statements {
		ct, ok := loc.Node.(ir.CreateTable)
		if !ok {
			continue
		}
		table := ctx.After.Get(ct.Name.Key())
		if table == nil || table.HasPrimaryKey {
			continue
		}
		if table.HasUniqueNotNull() {
			out = append(out, finding(r, loc, fmt.Sprintf("table %s uses UNIQUE NOT NULL instead of a primary key", ct.Name.Key()), ctx.File))
		}
	}
	return out
}

type renameTableRule struct{ baseRule }

func init() {
	register(&renameTableRule{baseRule{
		id:          "PGM504",
		sev:         severity.Minor,
		description: "table renamed",
		explanation: "Renaming a table breaks any client or dependent database object that references the old name until it is updated to match.",
	}})
}

func (r *renameTableRule) Check(statements []ir.Located, ctx *lintcontext.Context) []severity.Finding {
	var createdWithOldName = map[string]bool{}
	for _, loc := range statements {
		if ct, ok := loc.Node.(ir.CreateTable); ok {
			createdWithOldName[ct.Name.Key()] = true
		}
	}
	var out []severity.Finding
	for _, loc := range statements {
		n, ok := loc.Node.(ir.RenameTable)
		if !ok || !ctx.IsExistingTable(n.From) {
			continue
		}
		if createdWithOldName[n.From] {
			continue
		}
		out = append(out, finding(r, loc, fmt.Sprintf("table %s renamed to %s", n.From, n.To), ctx.File))
	}
	return out
}

type renameColumnRule struct{ baseRule }

func init() {
	register(&renameColumnRule{baseRule{
		id:          "PGM505",
		sev:         severity.Minor,
		description: "column renamed",
		explanation: "Renaming a column breaks any client or view that references the old name until it is updated to match.",
	}})
}

func (r *renameColumnRule) Check(statements []ir.Located, ctx *lintcontext.Context) []severity.Finding {
	var out []severity.Finding
	for _, loc := range statements {
		n, ok := loc.Node.(ir.RenameColumn)
		if !ok || !ctx.IsExistingTable(n.Table) {
			continue
		}
		out = append(out, finding(r, loc, fmt.Sprintf("column %s.%s renamed to %s", n.Table, n.From, n.To), ctx.File))
	}
	return out
}

type createUnloggedTableRule struct{ baseRule }

func init() {
	register(&createUnloggedTableRule{baseRule{
		id:          "PGM506",
		sev:         severity.Info,
		description: "CREATE UNLOGGED TABLE",
		explanation: "Unlogged tables skip WAL writes for speed but are truncated on crash recovery and are not replicated to standbys.",
	}})
}

func (r *createUnloggedTableRule) Check(statements []ir.Located, ctx *lintcontext.Context) []severity.Finding {
	var out []severity.Finding
	for _, loc := range statements {
		n, ok := loc.Node.(ir.CreateTable)
		if !ok || !n.Unlogged {
			continue
		}
		out = append(out, finding(r, loc, fmt.Sprintf("table %s created UNLOGGED", n.Name.Key()), ctx.File))
	}
	return out
}

type dropNotNullRule struct{ baseRule }

func init() {
	register(&dropNotNullRule{baseRule{
		id:          "PGM507",
		sev:         severity.Minor,
		description: "DROP NOT NULL on an existing table",
		explanation: "Removing a NOT NULL constraint widens what every downstream reader of this column must now tolerate; it is easy to do by accident when only one of several constraints needed to change.",
	}})
}

func (r *dropNotNullRule) Check(statements []ir.Located, ctx *lintcontext.Context) []severity.Finding {
	var out []severity.Finding
	for _, loc := range statements {
		alter, ok := loc.Node.(ir.AlterTable)
		if !ok || !ctx.IsExistingTable(alter.Table) {
			continue
		}
		for _, action := range alter.Actions {
			dn, ok := action.(ir.DropNotNull)
			if !ok {
				continue
			}
			out = append(out, finding(r, loc, fmt.Sprintf("%s.%s: DROP NOT NULL", alter.Table, dn.Column), ctx.File))
		}
	}
	return out
}
