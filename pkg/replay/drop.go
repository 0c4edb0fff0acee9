// SPDX-License-Identifier: Apache-2.0

package replay

import (
	"strings"

	"github.com/pglint/pglint/pkg/catalog"
	"github.com/pglint/pglint/pkg/ir"
)

func applyDropTable(cat *catalog.Catalog, n ir.DropTable) {
	if !cat.Has(n.Name) {
		return
	}
	if n.Cascade {
		dropRecursive(cat, n.Name)
		return
	}
	// Without CASCADE, partition children are preserved but their
	// parent_table link goes stale — mirroring how Postgres would have
	// refused this DROP outright had there been live dependents.
	cat.Remove(n.Name)
}

func dropRecursive(cat *catalog.Catalog, key string) {
	children := append([]string(nil), cat.PartitionChildren(key)...)
	for _, child := range children {
		dropRecursive(cat, child)
	}
	cat.Remove(key)
}

func applyDropSchema(cat *catalog.Catalog, n ir.DropSchema) {
	if !n.Cascade {
		return
	}
	prefix := n.Schema + "."
	var toRemove []string
	for _, t := range cat.Tables() {
		if strings.HasPrefix(t.Name, prefix) {
			toRemove = append(toRemove, t.Name)
		}
	}
	for _, key := range toRemove {
		cat.Remove(key)
	}
}
