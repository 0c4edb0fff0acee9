// SPDX-License-Identifier: Apache-2.0

package ir

import "github.com/oapi-codegen/nullable"

// CreateTable is `CREATE TABLE [IF NOT EXISTS] name (...) [PARTITION BY
// ...] [PARTITION OF parent ...]`.
type CreateTable struct {
	Name        QualifiedName
	Columns     []ColumnDef
	Constraints []Constraint
	IfNotExists bool
	Temporary   bool
	Unlogged    bool
	PartitionBy nullable.Nullable[PartitionBy]
	// PartitionOf is the parent table key when this is a
	// `CREATE TABLE ... PARTITION OF parent` statement.
	PartitionOf nullable.Nullable[string]
}

func (CreateTable) isNode() {}

// AlterAction is one clause of a (possibly multi-clause) ALTER TABLE
// statement.
type AlterAction interface {
	isAlterAction()
}

type AddColumn struct {
	Column ColumnDef
}

type DropColumn struct {
	Name string
}

type AddConstraint struct {
	Constraint Constraint
}

// AlterColumnType is `ALTER COLUMN col TYPE newtype`. Old is populated by
// the parsing front end when it can resolve the previous type from
// context; when absent, replay consults the catalog.
type AlterColumnType struct {
	Column string
	New    string
	Old    nullable.Nullable[string]
}

type SetNotNull struct {
	Column string
}

type DropNotNull struct {
	Column string
}

type SetDefault struct {
	Column  string
	Default string
}

type DropDefault struct {
	Column string
}

type AttachPartition struct {
	Child string
}

type DetachPartition struct {
	Child      string
	Concurrent bool
}

// Other is a catch-all for ALTER TABLE actions the engine has no
// dedicated semantics for (e.g. OWNER TO, SET STORAGE). It is a distinct
// variant from Unparseable: the statement parsed fine, the engine simply
// has nothing to do with this particular clause.
type Other struct {
	Raw string
}

func (AddColumn) isAlterAction()       {}
func (DropColumn) isAlterAction()      {}
func (AddConstraint) isAlterAction()   {}
func (AlterColumnType) isAlterAction() {}
func (SetNotNull) isAlterAction()      {}
func (DropNotNull) isAlterAction()     {}
func (SetDefault) isAlterAction()      {}
func (DropDefault) isAlterAction()     {}
func (AttachPartition) isAlterAction() {}
func (DetachPartition) isAlterAction() {}
func (Other) isAlterAction()           {}

// AlterTable is `ALTER TABLE table action [, action ...]`.
type AlterTable struct {
	Table   string
	Actions []AlterAction
}

func (AlterTable) isNode() {}
