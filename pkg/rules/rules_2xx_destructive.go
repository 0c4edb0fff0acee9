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

type dropTableRule struct{ baseRule }

func init() {
	register(&dropTableRule{baseRule{
		id:          "PGM201",
		sev:         severity.Blocker,
		description: "DROP TABLE on an existing table",
		explanation: "Dropping a table destroys its data irreversibly once the migration commits.",
	}})
}

func (r *dropTableRule) Check(statements []ir.Located, ctx *lintcontext.Context) []severity.Finding {
	var out []severity.Finding
	for _, loc := range statements {
		n, ok := loc.Node.(ir.DropTable)
		if !ok || n.Cascade || !ctx.IsExistingTable(n.Name) {
			continue
		}
		out = append(out, finding(r, loc, fmt.Sprintf("DROP TABLE %s", n.Name), ctx.File))
	}
	return out
}

type dropTableCascadeRule struct{ baseRule }

func init() {
	register(&dropTableCascadeRule{baseRule{
		id:          "PGM202",
		sev:         severity.Blocker,
		description: "DROP TABLE CASCADE on an existing table",
		explanation: "CASCADE additionally drops every dependent object — foreign keys from other tables, views, and partition children — without listing them in the statement itself.",
	}})
}

func (r *dropTableCascadeRule) Check(statements []ir.Located, ctx *lintcontext.Context) []severity.Finding {
	var out []severity.Finding
	for _, loc := range statements {
		n, ok := loc.Node.(ir.DropTable)
		if !ok || !n.Cascade || !ctx.IsExistingTable(n.Name) {
			continue
		}
		dependents := fkDependentsOf(ctx.Before, n.Name)
		msg := fmt.Sprintf("DROP TABLE %s CASCADE", n.Name)
		if len(dependents) > 0 {
			msg += fmt.Sprintf(" also drops foreign keys from: %s", strings.Join(dependents, ", "))
		}
		out = append(out, finding(r, loc, msg, ctx.File))
	}
	return out
}

// fkDependentsOf returns the keys of tables (other than target) whose
// foreign keys reference target, per the catalog's recorded state.
func fkDependentsOf(before *catalog.Catalog, target string) []string {
	return referencingTables(before, target)
}

// referencingTables returns the keys of every table with a foreign key
// whose RefTable is target.
func referencingTables(before *catalog.Catalog, target string) []string {
	var out []string
	for _, t := range before.Tables() {
		if t.Name == target {
			continue
		}
		for _, c := range t.Constraints {
			if fk, ok := c.(catalog.ForeignKey); ok && fk.RefTable == target {
				out = append(out, t.Name)
				break
			}
		}
	}
	return out
}

type truncateTableRule struct{ baseRule }

func init() {
	register(&truncateTableRule{baseRule{
		id:          "PGM203",
		sev:         severity.Critical,
		description: "TRUNCATE on an existing table",
		explanation: "TRUNCATE removes every row and cannot be undone by a down migration; it also takes an ACCESS EXCLUSIVE lock.",
	}})
}

func (r *truncateTableRule) Check(statements []ir.Located, ctx *lintcontext.Context) []severity.Finding {
	var out []severity.Finding
	for _, loc := range statements {
		n, ok := loc.Node.(ir.TruncateTable)
		if !ok || n.Cascade || !ctx.IsExistingTable(n.Table) {
			continue
		}
		out = append(out, finding(r, loc, fmt.Sprintf("TRUNCATE %s", n.Table), ctx.File))
	}
	return out
}

type truncateTableCascadeRule struct{ baseRule }

func init() {
	register(&truncateTableCascadeRule{baseRule{
		id:          "PGM204",
		sev:         severity.Critical,
		description: "TRUNCATE ... CASCADE on an existing table",
		explanation: "CASCADE additionally truncates every table with a foreign key referencing this one.",
	}})
}

func (r *truncateTableCascadeRule) Check(statements []ir.Located, ctx *lintcontext.Context) []severity.Finding {
	var out []severity.Finding
	for _, loc := range statements {
		n, ok := loc.Node.(ir.TruncateTable)
		if !ok || !n.Cascade || !ctx.IsExistingTable(n.Table) {
			continue
		}
		dependents := referencingTables(ctx.Before, n.Table)
		msg := fmt.Sprintf("TRUNCATE %s CASCADE", n.Table)
		if len(dependents) > 0 {
			msg += fmt.Sprintf(" also truncates: %s", strings.Join(dependents, ", "))
		}
		out = append(out, finding(r, loc, msg, ctx.File))
	}
	return out
}

type dropSchemaCascadeRule struct{ baseRule }

func init() {
	register(&dropSchemaCascadeRule{baseRule{
		id:          "PGM205",
		sev:         severity.Blocker,
		description: "DROP SCHEMA ... CASCADE",
		explanation: "Drops every object in the schema, including tables this engine never tracked. This rule always fires on a CASCADE drop, since untracked objects may exist beyond the catalog's knowledge.",
	}})
}

func (r *dropSchemaCascadeRule) Check(statements []ir.Located, ctx *lintcontext.Context) []severity.Finding {
	var out []severity.Finding
	for _, loc := range statements {
		n, ok := loc.Node.(ir.DropSchema)
		if !ok || !n.Cascade {
			continue
		}
		var known []string
		prefix := n.Schema + "."
		for _, t := range ctx.Before.Tables() {
			if strings.HasPrefix(t.Name, prefix) {
				known = append(known, t.Name)
			}
		}
		msg := fmt.Sprintf("DROP SCHEMA %s CASCADE", n.Schema)
		if len(known) > 0 {
			msg += fmt.Sprintf(" drops catalog-known tables: %s", strings.Join(known, ", "))
		}
		out = append(out, finding(r, loc, msg, ctx.File))
	}
	return out
}
