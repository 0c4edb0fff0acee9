// SPDX-License-Identifier: Apache-2.0

package catalog

import "github.com/oapi-codegen/nullable"

// ColumnState is one column of a TableState.
type ColumnState struct {
	Name        string
	TypeName    string
	Nullable    bool
	HasDefault  bool
	DefaultExpr nullable.Nullable[string]
}

// IndexEntry is one entry in an index's column list, mirroring
// ir.IndexEntry but owned by the catalog.
type IndexEntry interface {
	isIndexEntry()
}

type IndexColumn struct {
	Name string
}

type IndexExpression struct {
	Text              string
	ReferencedColumns []string
}

func (IndexColumn) isIndexEntry()     {}
func (IndexExpression) isIndexEntry() {}

// IndexState is one index defined on a table.
type IndexState struct {
	Name    string
	Entries []IndexEntry
	Unique  bool
	Where   nullable.Nullable[string]
	// Only records whether the index was created with ONLY, meaning it
	// does not recurse to partition children.
	Only bool
}

// leadingColumns returns the index's entries that are plain columns, in
// order, stopping at the first expression entry (an expression cannot be
// part of a column-prefix match for FK coverage).
func (ix IndexState) leadingColumns() ([]string, bool) {
	cols := make([]string, 0, len(ix.Entries))
	for _, e := range ix.Entries {
		col, ok := e.(IndexColumn)
		if !ok {
			return cols, false
		}
		cols = append(cols, col.Name)
	}
	return cols, true
}

// referencesColumn reports whether any entry of the index references the
// given column, either directly or via an expression's referenced-column
// list.
func (ix IndexState) referencesColumn(name string) bool {
	for _, e := range ix.Entries {
		switch v := e.(type) {
		case IndexColumn:
			if v.Name == name {
				return true
			}
		case IndexExpression:
			if containsColumn(v.ReferencedColumns, name) {
				return true
			}
		}
	}
	return false
}

// TableState models a single table's schema as currently understood by
// the catalog.
type TableState struct {
	// Name is the canonical "schema.table" catalog key.
	Name string
	// DisplayName is a user-facing name, possibly omitting a default
	// schema prefix.
	DisplayName string

	Columns     []ColumnState
	Indexes     []IndexState
	Constraints []Constraint

	HasPrimaryKey bool

	// Incomplete is set when an Unparseable statement mentioned this
	// table; rules may down-weight or suppress findings accordingly.
	Incomplete bool

	IsPartitioned bool
	PartitionBy   nullable.Nullable[PartitionBy]
	ParentTable   nullable.Nullable[string]
}

type PartitionStrategy string

const (
	PartitionByRange PartitionStrategy = "range"
	PartitionByList  PartitionStrategy = "list"
	PartitionByHash  PartitionStrategy = "hash"
)

type PartitionBy struct {
	Strategy PartitionStrategy
	Columns  []string
}

// GetColumn returns a column by name, or nil if absent.
func (t *TableState) GetColumn(name string) *ColumnState {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i]
		}
	}
	return nil
}

// GetIndex returns an index by name, or nil if absent.
func (t *TableState) GetIndex(name string) *IndexState {
	for i := range t.Indexes {
		if t.Indexes[i].Name == name {
			return &t.Indexes[i]
		}
	}
	return nil
}

// recomputeHasPrimaryKey recalculates HasPrimaryKey from Constraints.
func (t *TableState) recomputeHasPrimaryKey() {
	for _, c := range t.Constraints {
		if _, ok := c.(PrimaryKey); ok {
			t.HasPrimaryKey = true
			return
		}
	}
	t.HasPrimaryKey = false
}

// PKeyIndexName returns the conventional name Postgres gives the
// synthetic unique index backing a table's primary key, given the
// table's catalog key ("schema.table"). Postgres names the index after
// the table's unqualified name, since the index lives in the same
// schema as the table.
func PKeyIndexName(tableKey string) string {
	return unqualified(tableKey) + "_pkey"
}

// optString reads a nullable.Nullable[string], returning ("", false) when
// the value is unset or explicitly null.
func optString(n nullable.Nullable[string]) (string, bool) {
	if n.IsSpecified() && !n.IsNull() {
		return n.MustGet(), true
	}
	return "", false
}

// unqualified strips a "schema." prefix from a catalog key.
func unqualified(key string) string {
	for i := 0; i < len(key); i++ {
		if key[i] == '.' {
			return key[i+1:]
		}
	}
	return key
}
