// SPDX-License-Identifier: Apache-2.0

package rules

import (
	"fmt"

	"github.com/pglint/pglint/pkg/ir"
	"github.com/pglint/pglint/pkg/lintcontext"
	"github.com/pglint/pglint/pkg/severity"
)

// missingIfExistsOnDropRule flags DROP TABLE/INDEX/SCHEMA statements that
// omit IF EXISTS, which fail the whole migration outright if the object
// is already gone (e.g. a retried partial run).
type missingIfExistsOnDropRule struct{ baseRule }

func init() {
	register(&missingIfExistsOnDropRule{baseRule{
		id:          "PGM401",
		sev:         severity.Minor,
		description: "DROP statement without IF EXISTS",
		explanation: "A bare DROP errors out if the object was already removed by an earlier, partially-applied run of the same migration; IF EXISTS makes the statement safe to retry.",
	}})
}

func (r *missingIfExistsOnDropRule) Check(statements []ir.Located, ctx *lintcontext.Context) []severity.Finding {
	var out []severity.Finding
	for _, loc := range statements {
		switch n := loc.Node.(type) {
		case ir.DropTable:
			if !n.IfExists {
				out = append(out, finding(r, loc, fmt.Sprintf("DROP TABLE %s without IF EXISTS", n.Name), ctx.File))
			}
		case ir.DropIndex:
			if !n.IfExists {
				out = append(out, finding(r, loc, fmt.Sprintf("DROP INDEX %s without IF EXISTS", n.Name), ctx.File))
			}
		case ir.DropSchema:
			if !n.IfExists {
				out = append(out, finding(r, loc, fmt.Sprintf("DROP SCHEMA %s without IF EXISTS", n.Schema), ctx.File))
			}
		}
	}
	return out
}

// missingIfNotExistsOnCreateRule flags CREATE TABLE/INDEX statements that
// omit IF NOT EXISTS.
type missingIfNotExistsOnCreateRule struct{ baseRule }

func init() {
	register(&missingIfNotExistsOnCreateRule{baseRule{
		id:          "PGM402",
		sev:         severity.Minor,
		description: "CREATE statement without IF NOT EXISTS",
		explanation: "A bare CREATE errors out if the object was already created by an earlier, partially-applied run of the same migration; IF NOT EXISTS makes the statement safe to retry.",
	}})
}

func (r *missingIfNotExistsOnCreateRule) Check(statements []ir.Located, ctx *lintcontext.Context) []severity.Finding {
	var out []severity.Finding
	for _, loc := range statements {
		switch n := loc.Node.(type) {
		case ir.CreateTable:
			if !n.IfNotExists {
				out = append(out, finding(r, loc, fmt.Sprintf("CREATE TABLE %s without IF NOT EXISTS", n.Name.Key()), ctx.File))
			}
		case ir.CreateIndex:
			if !n.IfNotExists {
				name, _ := ir.GetOpt(n.Name)
				if name == "" {
					name = "(unnamed)"
				}
				out = append(out, finding(r, loc, fmt.Sprintf("CREATE INDEX %s without IF NOT EXISTS", name), ctx.File))
			}
		}
	}
	return out
}

// redundantCreateIfNotExistsRule flags CREATE TABLE IF NOT EXISTS
// against a table that already exists: the statement silently becomes a
// no-op, which is easy to mistake for the table having been (re)created
// with the columns/constraints written in the statement.
type redundantCreateIfNotExistsRule struct{ baseRule }

func init() {
	register(&redundantCreateIfNotExistsRule{baseRule{
		id:          "PGM403",
		sev:         severity.Major,
		description: "CREATE TABLE IF NOT EXISTS for an already-existing table",
		explanation: "When the table already exists, IF NOT EXISTS makes Postgres silently skip the statement; none of the written columns, constraints, or options are applied, which is rarely the author's intent.",
	}})
}

func (r *redundantCreateIfNotExistsRule) Check(statements []ir.Located, ctx *lintcontext.Context) []severity.Finding {
	var out []severity.Finding
	for _, loc := range statements {
		n, ok := loc.Node.(ir.CreateTable)
		if !ok || !n.IfNotExists {
			continue
		}
		if ctx.Before.Has(n.Name.Key()) {
			out = append(out, finding(r, loc, fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s is a no-op, table already exists", n.Name.Key()), ctx.File))
		}
	}
	return out
}
