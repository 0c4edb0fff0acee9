// SPDX-License-Identifier: Apache-2.0

package replay

import (
	"github.com/pglint/pglint/pkg/catalog"
	"github.com/pglint/pglint/pkg/ir"
)

func applyCreateIndex(cat *catalog.Catalog, n ir.CreateIndex) {
	table := cat.Get(n.Table)
	if table == nil {
		return
	}

	name, _ := ir.GetOpt(n.Name)

	if n.IfNotExists && name != "" && table.GetIndex(name) != nil {
		return
	}

	ix := catalog.IndexState{
		Name:    name,
		Entries: convertIndexEntries(n.Entries),
		Unique:  n.Unique,
		Only:    n.Only,
	}
	if where, ok := ir.GetOpt(n.Where); ok {
		ix.Where = nullableString(where)
	}

	table.Indexes = append(table.Indexes, ix)
	if name != "" {
		cat.RegisterIndex(name, table.Name)
	}
}

func applyDropIndex(cat *catalog.Catalog, n ir.DropIndex) {
	tableKey, ok := cat.TableForIndex(n.Name)
	if !ok {
		return
	}
	table := cat.Get(tableKey)
	if table == nil {
		return
	}
	for i, ix := range table.Indexes {
		if ix.Name == n.Name {
			table.Indexes = append(table.Indexes[:i], table.Indexes[i+1:]...)
			break
		}
	}
	cat.UnregisterIndex(n.Name)
}

func applyAlterIndexAttachPartition(cat *catalog.Catalog, n ir.AlterIndexAttachPartition) {
	tableKey, ok := cat.TableForIndex(n.ParentIndex)
	if !ok {
		return
	}
	table := cat.Get(tableKey)
	if table == nil {
		return
	}
	if ix := table.GetIndex(n.ParentIndex); ix != nil {
		ix.Only = false
	}
}
