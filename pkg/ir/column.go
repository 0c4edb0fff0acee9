// SPDX-License-Identifier: Apache-2.0

package ir

import "github.com/oapi-codegen/nullable"

// ColumnDef describes one column in a CREATE TABLE statement or an
// AddColumn alter-table action.
type ColumnDef struct {
	Name      string
	TypeName  string
	Nullable  bool
	Default   nullable.Nullable[string]
	// PrimaryKey and Unique record inline constraint shorthand, e.g.
	// `id int PRIMARY KEY` or `email text UNIQUE`. The replay layer
	// promotes these into table-level constraints.
	PrimaryKey bool
	Unique     bool
}

// HasDefault reports whether a DEFAULT clause was present at all
// (independent of whether the default expression itself is non-empty).
func (c ColumnDef) HasDefault() bool {
	return c.Default.IsSpecified()
}

// PartitionStrategy enumerates the three partitioning strategies Postgres
// supports.
type PartitionStrategy string

const (
	PartitionByRange PartitionStrategy = "range"
	PartitionByList  PartitionStrategy = "list"
	PartitionByHash  PartitionStrategy = "hash"
)

// PartitionBy describes a table's PARTITION BY clause.
type PartitionBy struct {
	Strategy PartitionStrategy
	Columns  []string
}
