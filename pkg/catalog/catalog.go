// SPDX-License-Identifier: Apache-2.0

// Package catalog models in-memory PostgreSQL schema state: tables,
// their columns/indexes/constraints, and the partition relationships
// between tables. It is mutated exclusively by pkg/replay and read by
// pkg/rules through pkg/lintcontext.
package catalog

import (
	"sort"

	"github.com/oapi-codegen/nullable"
)

// Catalog is a mapping from table key ("schema.name") to TableState,
// plus a secondary index-name -> table-key reverse map for O(1) lookup,
// plus a parent-key -> child-keys partition map.
type Catalog struct {
	tables            map[string]*TableState
	indexOwner        map[string]string
	partitionChildren map[string][]string
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{
		tables:            make(map[string]*TableState),
		indexOwner:        make(map[string]string),
		partitionChildren: make(map[string][]string),
	}
}

// Get returns the table with the given key, or nil if absent.
func (c *Catalog) Get(key string) *TableState {
	return c.tables[key]
}

// GetMut is an alias for Get; catalog tables are always mutable through
// their pointer, there is no separate read-only view at this layer.
func (c *Catalog) GetMut(key string) *TableState {
	return c.tables[key]
}

// Has reports whether a table with the given key exists.
func (c *Catalog) Has(key string) bool {
	_, ok := c.tables[key]
	return ok
}

// Tables returns every tracked table, sorted by key for deterministic
// iteration.
func (c *Catalog) Tables() []*TableState {
	keys := make([]string, 0, len(c.tables))
	for k := range c.tables {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]*TableState, 0, len(keys))
	for _, k := range keys {
		out = append(out, c.tables[k])
	}
	return out
}

// Insert adds a table to the catalog and registers every one of its
// non-empty index names in the reverse map.
func (c *Catalog) Insert(t *TableState) {
	c.tables[t.Name] = t
	for _, ix := range t.Indexes {
		if ix.Name != "" {
			c.indexOwner[ix.Name] = t.Name
		}
	}
}

// Remove removes a table, deregistering its indexes, clearing any
// partitionChildren entry for it, and removing it from its parent's
// child list. It returns the removed table, or nil if it did not exist.
func (c *Catalog) Remove(key string) *TableState {
	t, ok := c.tables[key]
	if !ok {
		return nil
	}
	for _, ix := range t.Indexes {
		if ix.Name != "" {
			delete(c.indexOwner, ix.Name)
		}
	}
	delete(c.tables, key)
	delete(c.partitionChildren, key)

	if parent, ok := optString(t.ParentTable); ok {
		c.removeChild(parent, key)
	}
	return t
}

// RegisterIndex binds an index name to its owning table in the reverse
// map. Empty index names are never registered.
func (c *Catalog) RegisterIndex(indexName, tableKey string) {
	if indexName == "" {
		return
	}
	c.indexOwner[indexName] = tableKey
}

// UnregisterIndex removes an index name from the reverse map.
func (c *Catalog) UnregisterIndex(indexName string) {
	delete(c.indexOwner, indexName)
}

// TableForIndex returns the key of the table that owns the given index,
// or "", false if the index is unknown.
func (c *Catalog) TableForIndex(indexName string) (string, bool) {
	key, ok := c.indexOwner[indexName]
	return key, ok
}

// AttachPartition links child as a partition of parent, maintaining both
// directions of the relationship.
func (c *Catalog) AttachPartition(parent, child string) {
	childTable, ok := c.tables[child]
	if !ok {
		return
	}
	childTable.ParentTable = nullable.NewNullableWithValue(parent)
	c.addChild(parent, child)
}

// DetachPartition removes the partition relationship between parent and
// child, maintaining both directions.
func (c *Catalog) DetachPartition(parent, child string) {
	if childTable, ok := c.tables[child]; ok {
		childTable.ParentTable = nullable.NewNullNullable[string]()
	}
	c.removeChild(parent, child)
}

// PartitionChildren returns the keys of every direct partition child of
// parent.
func (c *Catalog) PartitionChildren(parent string) []string {
	return c.partitionChildren[parent]
}

func (c *Catalog) addChild(parent, child string) {
	children := c.partitionChildren[parent]
	for _, existing := range children {
		if existing == child {
			return
		}
	}
	c.partitionChildren[parent] = append(children, child)
}

func (c *Catalog) removeChild(parent, child string) {
	children := c.partitionChildren[parent]
	for i, existing := range children {
		if existing == child {
			c.partitionChildren[parent] = append(children[:i], children[i+1:]...)
			return
		}
	}
}

// Clone returns a deep, independent copy of the catalog, used to produce
// the "before" snapshot handed to rules alongside the mutated "after"
// catalog. The before snapshot is dropped once the rules that needed it
// have returned.
func (c *Catalog) Clone() *Catalog {
	out := New()
	for key, t := range c.tables {
		out.tables[key] = cloneTable(t)
	}
	for idx, table := range c.indexOwner {
		out.indexOwner[idx] = table
	}
	for parent, children := range c.partitionChildren {
		cp := make([]string, len(children))
		copy(cp, children)
		out.partitionChildren[parent] = cp
	}
	return out
}

func cloneTable(t *TableState) *TableState {
	cp := *t
	cp.Columns = append([]ColumnState(nil), t.Columns...)
	cp.Indexes = append([]IndexState(nil), t.Indexes...)
	for i := range cp.Indexes {
		cp.Indexes[i].Entries = append([]IndexEntry(nil), t.Indexes[i].Entries...)
	}
	cp.Constraints = append([]Constraint(nil), t.Constraints...)
	return &cp
}
