// SPDX-License-Identifier: Apache-2.0

package replay

import (
	"github.com/pglint/pglint/pkg/catalog"
	"github.com/pglint/pglint/pkg/ir"
)

func applyCreateTable(cat *catalog.Catalog, n ir.CreateTable) {
	key := n.Name.Key()
	if n.IfNotExists && cat.Has(key) {
		return
	}

	table := &catalog.TableState{
		Name:        key,
		DisplayName: n.Name.Display(""),
	}

	for _, col := range n.Columns {
		table.Columns = append(table.Columns, convertColumn(col))
	}

	for _, c := range n.Constraints {
		addConstraintToTable(table, convertConstraint(c))
	}

	// Inline column constraints (PRIMARY KEY / UNIQUE shorthand) are
	// promoted to table-level constraints, the same way Postgres treats
	// `id int PRIMARY KEY` as shorthand for a table constraint.
	for _, col := range n.Columns {
		if col.PrimaryKey {
			addConstraintToTable(table, catalog.PrimaryKey{Columns: []string{col.Name}})
		}
		if col.Unique {
			addConstraintToTable(table, catalog.Unique{Columns: []string{col.Name}})
		}
	}

	if pb, ok := ir.GetOpt(n.PartitionBy); ok {
		table.IsPartitioned = true
		table.PartitionBy = someCatalogPartitionBy(pb)
	}

	cat.Insert(table)

	if parent, ok := ir.GetOpt(n.PartitionOf); ok {
		if parentTable := cat.Get(parent); parentTable != nil {
			table.Columns = append(table.Columns, parentTable.Columns...)
		}
		cat.AttachPartition(parent, key)
	}

	// Every PK constraint, whether inline or table-level, gets a
	// synthetic unique index backing it, mirroring how Postgres
	// implements a primary key.
	synthesizePKIndexes(cat, table)
}
