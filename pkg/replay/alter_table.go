// SPDX-License-Identifier: Apache-2.0

package replay

import (
	"github.com/oapi-codegen/nullable"

	"github.com/pglint/pglint/pkg/catalog"
	"github.com/pglint/pglint/pkg/ir"
)

func applyAlterTable(cat *catalog.Catalog, n ir.AlterTable) {
	table := cat.Get(n.Table)
	if table == nil {
		return
	}
	for _, action := range n.Actions {
		applyAlterAction(cat, table, action)
	}
}

func applyAlterAction(cat *catalog.Catalog, table *catalog.TableState, action ir.AlterAction) {
	switch a := action.(type) {
	case ir.AddColumn:
		table.Columns = append(table.Columns, convertColumn(a.Column))
		if a.Column.PrimaryKey {
			addConstraintToTable(table, catalog.PrimaryKey{Columns: []string{a.Column.Name}})
			synthesizePKIndexes(cat, table)
		}
		if a.Column.Unique {
			addConstraintToTable(table, catalog.Unique{Columns: []string{a.Column.Name}})
		}

	case ir.DropColumn:
		for _, ix := range table.IndexesInvolvingColumn(a.Name) {
			if ix.Name != "" {
				cat.UnregisterIndex(ix.Name)
			}
		}
		table.RemoveColumn(a.Name)

	case ir.AddConstraint:
		applyAddConstraint(cat, table, a.Constraint)

	case ir.AlterColumnType:
		if col := table.GetColumn(a.Column); col != nil {
			col.TypeName = a.New
		}

	case ir.SetNotNull:
		if col := table.GetColumn(a.Column); col != nil {
			col.Nullable = false
		}

	case ir.DropNotNull:
		if col := table.GetColumn(a.Column); col != nil {
			col.Nullable = true
		}

	case ir.SetDefault:
		if col := table.GetColumn(a.Column); col != nil {
			col.HasDefault = true
			col.DefaultExpr = nullable.NewNullableWithValue(a.Default)
		}

	case ir.DropDefault:
		if col := table.GetColumn(a.Column); col != nil {
			col.HasDefault = false
			col.DefaultExpr = nullable.NewNullNullable[string]()
		}

	case ir.AttachPartition:
		if cat.Has(a.Child) {
			cat.AttachPartition(table.Name, a.Child)
		}

	case ir.DetachPartition:
		cat.DetachPartition(table.Name, a.Child)

	case ir.Other:
		// No modelled effect.
	}
}

// applyAddConstraint handles ALTER TABLE ... ADD CONSTRAINT, including
// the USING INDEX form for PRIMARY KEY / UNIQUE.
func applyAddConstraint(cat *catalog.Catalog, table *catalog.TableState, c ir.Constraint) {
	switch v := c.(type) {
	case ir.PrimaryKeyConstraint:
		cols := v.Columns
		if idxName, ok := ir.GetOpt(v.UsingIndex); ok && len(cols) == 0 {
			cols = resolveUsingIndexColumns(table, idxName)
		}
		addConstraintToTable(table, catalog.PrimaryKey{Name: v.Name, Columns: cols})
		synthesizePKIndexes(cat, table)

	case ir.UniqueConstraint:
		cols := v.Columns
		if idxName, ok := ir.GetOpt(v.UsingIndex); ok && len(cols) == 0 {
			cols = resolveUsingIndexColumns(table, idxName)
		}
		addConstraintToTable(table, catalog.Unique{Name: v.Name, Columns: cols})

	case ir.ForeignKeyConstraint:
		addConstraintToTable(table, catalog.ForeignKey{
			Name:       v.Name,
			Columns:    v.Columns,
			RefTable:   v.RefTable,
			RefColumns: v.RefColumns,
			NotValid:   v.NotValid,
		})

	case ir.CheckConstraint:
		addConstraintToTable(table, catalog.Check{
			Name:              v.Name,
			Expression:        v.Expression,
			NotValid:          v.NotValid,
			ReferencedColumns: v.ReferencedColumns,
		})

	case ir.ExcludeConstraint:
		addConstraintToTable(table, catalog.Exclude{Name: v.Name})
	}
}
