// SPDX-License-Identifier: Apache-2.0

// Package replay interprets ir.Node statements against a catalog,
// mutating it to faithfully reproduce PostgreSQL's cascading DDL
// effects. Apply is pure and deterministic: given the same
// catalog and statements, it produces the same resulting catalog every
// time, and it never panics — statements that reference objects absent
// from the catalog are silently skipped.
package replay

import (
	"github.com/pglint/pglint/pkg/catalog"
	"github.com/pglint/pglint/pkg/ir"
)

// Apply interprets each statement in order, mutating cat. Statements
// referencing a table absent from the catalog no-op (the table may
// belong to an untracked schema, or may simply never have been created
// in the portion of history this engine has replayed).
func Apply(cat *catalog.Catalog, statements []ir.Located) {
	for _, loc := range statements {
		applyNode(cat, loc.Node)
	}
}

func applyNode(cat *catalog.Catalog, node ir.Node) {
	switch n := node.(type) {
	case ir.CreateTable:
		applyCreateTable(cat, n)
	case ir.AlterTable:
		applyAlterTable(cat, n)
	case ir.CreateIndex:
		applyCreateIndex(cat, n)
	case ir.DropIndex:
		applyDropIndex(cat, n)
	case ir.DropTable:
		applyDropTable(cat, n)
	case ir.DropSchema:
		applyDropSchema(cat, n)
	case ir.RenameTable:
		applyRenameTable(cat, n)
	case ir.RenameColumn:
		applyRenameColumn(cat, n)
	case ir.AlterIndexAttachPartition:
		applyAlterIndexAttachPartition(cat, n)
	case ir.Unparseable:
		applyUnparseable(cat, n)
	case ir.TruncateTable, ir.InsertInto, ir.UpdateTable, ir.DeleteFrom,
		ir.VacuumFull, ir.Cluster, ir.DisableTrigger, ir.Ignored:
		// No catalog mutation. DML and maintenance statements are
		// inspected directly by rules from the statement list; Ignored
		// is deliberately unmodelled DDL.
	}
}
