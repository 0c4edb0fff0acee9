// SPDX-License-Identifier: Apache-2.0

package replay

import (
	"github.com/oapi-codegen/nullable"

	"github.com/pglint/pglint/pkg/catalog"
	"github.com/pglint/pglint/pkg/ir"
)

func convertColumn(c ir.ColumnDef) catalog.ColumnState {
	col := catalog.ColumnState{
		Name:     c.Name,
		TypeName: c.TypeName,
		Nullable: c.Nullable,
	}
	if def, ok := ir.GetOpt(c.Default); ok {
		col.HasDefault = true
		col.DefaultExpr = nullable.NewNullableWithValue(def)
	}
	return col
}

// convertConstraint converts an ir.Constraint written inline in a CREATE
// TABLE statement. USING INDEX is not valid CREATE TABLE syntax in
// Postgres (only ALTER TABLE ADD CONSTRAINT supports it), so it is never
// resolved here; see applyAddConstraint in alter_table.go for that.
func convertConstraint(c ir.Constraint) catalog.Constraint {
	switch v := c.(type) {
	case ir.PrimaryKeyConstraint:
		return catalog.PrimaryKey{Name: v.Name, Columns: v.Columns}
	case ir.ForeignKeyConstraint:
		return catalog.ForeignKey{
			Name:       v.Name,
			Columns:    v.Columns,
			RefTable:   v.RefTable,
			RefColumns: v.RefColumns,
			NotValid:   v.NotValid,
		}
	case ir.UniqueConstraint:
		return catalog.Unique{Name: v.Name, Columns: v.Columns}
	case ir.CheckConstraint:
		return catalog.Check{
			Name:              v.Name,
			Expression:        v.Expression,
			NotValid:          v.NotValid,
			ReferencedColumns: v.ReferencedColumns,
		}
	case ir.ExcludeConstraint:
		return catalog.Exclude{Name: v.Name}
	default:
		return nil
	}
}

// resolveUsingIndexColumns resolves a PRIMARY KEY / UNIQUE constraint
// added `USING INDEX idx` to the plain-column entries of that index. If
// the index does not exist, the constraint is stored with empty columns
// (see DESIGN.md open question 1).
func resolveUsingIndexColumns(table *catalog.TableState, indexName string) []string {
	ix := table.GetIndex(indexName)
	if ix == nil {
		return nil
	}
	var cols []string
	for _, e := range ix.Entries {
		if c, ok := e.(catalog.IndexColumn); ok {
			cols = append(cols, c.Name)
		}
	}
	return cols
}

func addConstraintToTable(table *catalog.TableState, c catalog.Constraint) {
	table.Constraints = append(table.Constraints, c)
	if _, ok := c.(catalog.PrimaryKey); ok {
		table.HasPrimaryKey = true
	}
}

func nullableString(s string) nullable.Nullable[string] {
	return nullable.NewNullableWithValue(s)
}

func someCatalogPartitionBy(pb ir.PartitionBy) nullable.Nullable[catalog.PartitionBy] {
	return nullable.NewNullableWithValue(catalog.PartitionBy{
		Strategy: catalog.PartitionStrategy(pb.Strategy),
		Columns:  pb.Columns,
	})
}

func convertIndexEntries(entries []ir.IndexEntry) []catalog.IndexEntry {
	out := make([]catalog.IndexEntry, 0, len(entries))
	for _, e := range entries {
		switch v := e.(type) {
		case ir.IndexColumn:
			out = append(out, catalog.IndexColumn{Name: v.Name})
		case ir.IndexExpression:
			out = append(out, catalog.IndexExpression{Text: v.Text, ReferencedColumns: v.ReferencedColumns})
		}
	}
	return out
}

// synthesizePKIndexes ensures every PrimaryKey constraint on table has a
// backing `{table}_pkey` unique index registered in the catalog,
// mirroring how Postgres implements primary keys.
func synthesizePKIndexes(cat *catalog.Catalog, table *catalog.TableState) {
	for _, c := range table.Constraints {
		pk, ok := c.(catalog.PrimaryKey)
		if !ok {
			continue
		}
		name := catalog.PKeyIndexName(table.Name)
		if table.GetIndex(name) != nil {
			continue
		}
		entries := make([]catalog.IndexEntry, 0, len(pk.Columns))
		for _, col := range pk.Columns {
			entries = append(entries, catalog.IndexColumn{Name: col})
		}
		table.Indexes = append(table.Indexes, catalog.IndexState{
			Name:    name,
			Entries: entries,
			Unique:  true,
		})
		cat.RegisterIndex(name, table.Name)
	}
}
