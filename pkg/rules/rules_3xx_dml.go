// SPDX-License-Identifier: Apache-2.0

package rules

import (
	"fmt"

	"github.com/pglint/pglint/pkg/ir"
	"github.com/pglint/pglint/pkg/lintcontext"
	"github.com/pglint/pglint/pkg/severity"
)

type insertInMigrationRule struct{ baseRule }

func init() {
	register(&insertInMigrationRule{baseRule{
		id:          "PGM301",
		sev:         severity.Info,
		description: "INSERT against a pre-existing table",
		explanation: "Data-modifying statements in a schema migration are sometimes intentional (seed/backfill data) but deserve a second look, since they run once and are not easily replayed.",
	}})
}

func (r *insertInMigrationRule) Check(statements []ir.Located, ctx *lintcontext.Context) []severity.Finding {
	var out []severity.Finding
	for _, loc := range statements {
		n, ok := loc.Node.(ir.InsertInto)
		if !ok || !ctx.IsExistingTable(n.Table) {
			continue
		}
		out = append(out, finding(r, loc, fmt.Sprintf("INSERT into existing table %s", n.Table), ctx.File))
	}
	return out
}

type updateInMigrationRule struct{ baseRule }

func init() {
	register(&updateInMigrationRule{baseRule{
		id:          "PGM302",
		sev:         severity.Minor,
		description: "UPDATE against a pre-existing table",
		explanation: "An unbounded UPDATE in a migration can lock and rewrite every matching row; it deserves review for a WHERE clause and batching strategy.",
	}})
}

func (r *updateInMigrationRule) Check(statements []ir.Located, ctx *lintcontext.Context) []severity.Finding {
	var out []severity.Finding
	for _, loc := range statements {
		n, ok := loc.Node.(ir.UpdateTable)
		if !ok || !ctx.IsExistingTable(n.Table) {
			continue
		}
		out = append(out, finding(r, loc, fmt.Sprintf("UPDATE existing table %s", n.Table), ctx.File))
	}
	return out
}

type deleteInMigrationRule struct{ baseRule }

func init() {
	register(&deleteInMigrationRule{baseRule{
		id:          "PGM303",
		sev:         severity.Minor,
		description: "DELETE against a pre-existing table",
		explanation: "An unbounded DELETE in a migration removes data irreversibly and deserves review for a WHERE clause and batching strategy.",
	}})
}

func (r *deleteInMigrationRule) Check(statements []ir.Located, ctx *lintcontext.Context) []severity.Finding {
	var out []severity.Finding
	for _, loc := range statements {
		n, ok := loc.Node.(ir.DeleteFrom)
		if !ok || !ctx.IsExistingTable(n.Table) {
			continue
		}
		out = append(out, finding(r, loc, fmt.Sprintf("DELETE from existing table %s", n.Table), ctx.File))
	}
	return out
}
