// SPDX-License-Identifier: Apache-2.0

// Package lintcontext provides the read-only view of catalog state and
// change metadata that rules inspect.
package lintcontext

import (
	"github.com/pglint/pglint/pkg/catalog"
	"github.com/pglint/pglint/pkg/ir"
)

// Context is handed to every rule's Check call. Rules must not retain
// borrows of Before/After past the call that received them.
type Context struct {
	Before *catalog.Catalog
	After  *catalog.Catalog

	TablesCreatedInChange map[string]struct{}

	RunInTransaction bool
	IsDown           bool
	File             string
}

// IsExistingTable reports whether key names a table that existed before
// this change and was not itself (re)created as part of it.
func (c *Context) IsExistingTable(key string) bool {
	if !c.Before.Has(key) {
		return false
	}
	_, created := c.TablesCreatedInChange[key]
	return !created
}

// PartitionChildInheritsPK returns true (suppressing PK-related rules)
// when the table is a partition child — either because irParent names a
// parent in the current statement's PARTITION OF clause, or because the
// catalog already recorded a parent — and either that parent has a
// primary key in After, or the parent is absent from After entirely
// (conservative: assume production parents have PKs).
func (c *Context) PartitionChildInheritsPK(irParent ir.Node, key string) bool {
	parent, ok := partitionParentOf(irParent, c.After, key)
	if !ok {
		return false
	}

	parentTable := c.After.Get(parent)
	if parentTable == nil {
		return true
	}
	return parentTable.HasPrimaryKey
}

func partitionParentOf(irParent ir.Node, after *catalog.Catalog, key string) (string, bool) {
	if ct, ok := irParent.(ir.CreateTable); ok {
		if parent, ok := ir.GetOpt(ct.PartitionOf); ok {
			return parent, true
		}
	}
	if table := after.Get(key); table != nil {
		if parent, ok := ir.GetOpt(table.ParentTable); ok {
			return parent, true
		}
	}
	return "", false
}
