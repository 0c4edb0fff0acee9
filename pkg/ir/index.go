// SPDX-License-Identifier: Apache-2.0

package ir

import "github.com/oapi-codegen/nullable"

// IndexEntry is one entry in an index's column list: either a plain
// column reference or an expression. ReferencedColumns is populated by
// the parsing front end at parse time — this package never re-derives it
// from Text.
type IndexEntry interface {
	isIndexEntry()
}

// IndexColumn is a plain column reference.
type IndexColumn struct {
	Name string
}

// IndexExpression is a computed expression, e.g. `lower(email)`.
type IndexExpression struct {
	Text              string
	ReferencedColumns []string
}

func (IndexColumn) isIndexEntry()     {}
func (IndexExpression) isIndexEntry() {}

// CreateIndex is `CREATE [UNIQUE] INDEX [CONCURRENTLY] [name] ON table
// [USING method] (entries) [WHERE predicate]`.
type CreateIndex struct {
	// Name is nil for `CREATE INDEX ON t (...)` with no explicit name.
	Name        nullable.Nullable[string]
	Table       string
	Entries     []IndexEntry
	Unique      bool
	Concurrent  bool
	Where       nullable.Nullable[string]
	Only        bool
	IfNotExists bool
	AccessMethod string
}

// DropIndex is `DROP INDEX [CONCURRENTLY] [IF EXISTS] name`.
type DropIndex struct {
	Name       string
	Concurrent bool
	IfExists   bool
}

func (CreateIndex) isNode() {}
func (DropIndex) isNode()   {}
