// SPDX-License-Identifier: Apache-2.0

package rules

import (
	"fmt"

	"github.com/pglint/pglint/pkg/ir"
	"github.com/pglint/pglint/pkg/lintcontext"
	"github.com/pglint/pglint/pkg/severity"
)

// undersizedIntegerPKRule flags a primary key backed by int2/int4 columns,
// which overflow far sooner than int8 and are expensive to widen once a
// table is large. It checks both CreateTable (inline or table-level PK)
// and AlterTable ADD CONSTRAINT ... PRIMARY KEY, resolving the PK's
// columns from the referenced index first when USING INDEX is used.
type undersizedIntegerPKRule struct{ baseRule }

func init() {
	register(&undersizedIntegerPKRule{baseRule{
		id:          "PGM107",
		sev:         severity.Minor,
		description: "primary key backed by an undersized integer type",
		explanation: "int2 (32767 max) and int4 (~2.1 billion max) primary keys run out of room sooner than a large table's lifetime would suggest, and widening a PK column in place is a full table rewrite. int8 costs little extra storage for most row sizes.",
	}})
}

var undersizedIntegerTypes = map[string]bool{
	"int2":      true,
	"smallint":  true,
	"int4":      true,
	"int":       true,
	"integer":   true,
}

func (r *undersizedIntegerPKRule) Check(statements []ir.Located, ctx *lintcontext.Context) []severity.Finding {
	var out []severity.Finding
	for _, loc := range statements {
		switch n := loc.Node.(type) {
		case ir.CreateTable:
			pkCols := inlinePKColumns(n)
			r.checkColumns(&out, loc, n.Name.Key(), pkCols, columnTypesOf(n.Columns), ctx.File)
		case ir.AlterTable:
			for _, action := range n.Actions {
				ac, ok := action.(ir.AddConstraint)
				if !ok {
					continue
				}
				pk, ok := ac.Constraint.(ir.PrimaryKeyConstraint)
				if !ok {
					continue
				}
				cols := pk.Columns
				if idx, usesIndex := ir.GetOpt(pk.UsingIndex); usesIndex && len(cols) == 0 {
					if table := ctx.After.Get(n.Table); table != nil {
						cols = indexPlainColumns(table, idx)
					}
				}
				table := ctx.After.Get(n.Table)
				if table == nil {
					continue
				}
				types := map[string]string{}
				for _, col := range table.Columns {
					types[col.Name] = col.TypeName
				}
				r.checkColumns(&out, loc, n.Table, cols, types, ctx.File)
			}
		}
	}
	return out
}

func (r *undersizedIntegerPKRule) checkColumns(out *[]severity.Finding, loc ir.Located, table string, pkCols []string, types map[string]string, file string) {
	for _, col := range pkCols {
		t := normalizeType(types[col])
		if undersizedIntegerTypes[t] {
			*out = append(*out, finding(r, loc, fmt.Sprintf("%s.%s: primary key column is %s, consider int8/bigint", table, col, t), file))
		}
	}
}

func inlinePKColumns(n ir.CreateTable) []string {
	var cols []string
	for _, col := range n.Columns {
		if col.PrimaryKey {
			cols = append(cols, col.Name)
		}
	}
	for _, c := range n.Constraints {
		if pk, ok := c.(ir.PrimaryKeyConstraint); ok {
			cols = append(cols, pk.Columns...)
		}
	}
	return cols
}

func columnTypesOf(cols []ir.ColumnDef) map[string]string {
	out := make(map[string]string, len(cols))
	for _, c := range cols {
		out[c.Name] = c.TypeName
	}
	return out
}
