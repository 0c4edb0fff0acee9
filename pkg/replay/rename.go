// SPDX-License-Identifier: Apache-2.0

package replay

import (
	"strings"

	"github.com/pglint/pglint/pkg/catalog"
	"github.com/pglint/pglint/pkg/ir"
)

func applyRenameTable(cat *catalog.Catalog, n ir.RenameTable) {
	// Remember what this table's relationships were before Remove()
	// severed them, so they can be rebuilt under the new key.
	children := append([]string(nil), cat.PartitionChildren(n.From)...)
	old := cat.Remove(n.From)
	if old == nil {
		return
	}
	parent, hadParent := ir.GetOpt(old.ParentTable)

	old.Name = n.To
	old.DisplayName = n.To
	cat.Insert(old)

	for _, ix := range old.Indexes {
		if ix.Name != "" {
			cat.RegisterIndex(ix.Name, n.To)
		}
	}

	if hadParent {
		cat.AttachPartition(parent, n.To)
	}
	for _, child := range children {
		cat.AttachPartition(n.To, child)
	}
}

func applyRenameColumn(cat *catalog.Catalog, n ir.RenameColumn) {
	table := cat.Get(n.Table)
	if table == nil {
		return
	}

	if col := table.GetColumn(n.From); col != nil {
		col.Name = n.To
	}

	for i := range table.Indexes {
		ix := &table.Indexes[i]
		for j, e := range ix.Entries {
			switch v := e.(type) {
			case catalog.IndexColumn:
				if v.Name == n.From {
					ix.Entries[j] = catalog.IndexColumn{Name: n.To}
				}
			case catalog.IndexExpression:
				// The expression's text is deliberately left stale: the
				// engine does not re-parse expression text on column
				// rename, only the referenced-columns list is updated
				// (see DESIGN.md open question 2).
				ix.Entries[j] = catalog.IndexExpression{
					Text:              v.Text,
					ReferencedColumns: renameInList(v.ReferencedColumns, n.From, n.To),
				}
			}
		}
	}

	for i := range table.Constraints {
		switch v := table.Constraints[i].(type) {
		case catalog.PrimaryKey:
			v.Columns = renameInList(v.Columns, n.From, n.To)
			table.Constraints[i] = v
		case catalog.Unique:
			v.Columns = renameInList(v.Columns, n.From, n.To)
			table.Constraints[i] = v
		case catalog.ForeignKey:
			v.Columns = renameInList(v.Columns, n.From, n.To)
			if v.RefTable == table.Name {
				v.RefColumns = renameInList(v.RefColumns, n.From, n.To)
			}
			table.Constraints[i] = v
		case catalog.Check:
			v.Expression = wordBoundaryReplace(v.Expression, n.From, n.To)
			table.Constraints[i] = v
		}
	}

	if pb, ok := ir.GetOpt(table.PartitionBy); ok {
		pb.Columns = renameInList(pb.Columns, n.From, n.To)
		table.PartitionBy = someCatalogPartitionBy(ir.PartitionBy{
			Strategy: ir.PartitionStrategy(pb.Strategy),
			Columns:  pb.Columns,
		})
	}
}

func renameInList(cols []string, from, to string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		if c == from {
			out[i] = to
		} else {
			out[i] = c
		}
	}
	return out
}

// wordBoundaryReplace replaces whole-word occurrences of from with to in
// expr, leaving partial-identifier matches (e.g. "from_date" when
// renaming "from") untouched.
func wordBoundaryReplace(expr, from, to string) string {
	if from == "" {
		return expr
	}
	var b strings.Builder
	i := 0
	for i < len(expr) {
		idx := strings.Index(expr[i:], from)
		if idx == -1 {
			b.WriteString(expr[i:])
			break
		}
		start := i + idx
		end := start + len(from)
		before := byte(0)
		if start > 0 {
			before = expr[start-1]
		}
		after := byte(0)
		if end < len(expr) {
			after = expr[end]
		}
		if isWordByte(before) || isWordByte(after) {
			b.WriteString(expr[i:end])
		} else {
			b.WriteString(expr[i : start])
			b.WriteString(to)
		}
		i = end
	}
	return b.String()
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}
