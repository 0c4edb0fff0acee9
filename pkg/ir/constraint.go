// SPDX-License-Identifier: Apache-2.0

package ir

import "github.com/oapi-codegen/nullable"

// Constraint is the closed sum type of table constraints the IR can
// carry, mirroring catalog.Constraint but expressed exactly as written
// in the source statement (before replay resolves USING INDEX columns,
// for example).
type Constraint interface {
	isConstraint()
}

// PrimaryKeyConstraint is `PRIMARY KEY (cols...)` or
// `ADD CONSTRAINT ... PRIMARY KEY USING INDEX idx`.
type PrimaryKeyConstraint struct {
	Name       string
	Columns    []string
	UsingIndex nullable.Nullable[string]
}

// ForeignKeyConstraint is `FOREIGN KEY (cols) REFERENCES table(cols)`.
type ForeignKeyConstraint struct {
	Name       string
	Columns    []string
	RefTable   string
	RefColumns []string
	NotValid   bool
}

// UniqueConstraint is `UNIQUE (cols...)` or
// `ADD CONSTRAINT ... UNIQUE USING INDEX idx`.
type UniqueConstraint struct {
	Name       string
	Columns    []string
	UsingIndex nullable.Nullable[string]
}

// CheckConstraint is `CHECK (expr)`. ReferencedColumns is populated by
// the parsing front end at parse time — this package never re-derives it
// from Expression.
type CheckConstraint struct {
	Name              string
	Expression        string
	NotValid          bool
	ReferencedColumns []string
}

// ExcludeConstraint is `EXCLUDE USING gist (...)`.
type ExcludeConstraint struct {
	Name string
}

func (PrimaryKeyConstraint) isConstraint() {}
func (ForeignKeyConstraint) isConstraint() {}
func (UniqueConstraint) isConstraint()     {}
func (CheckConstraint) isConstraint()      {}
func (ExcludeConstraint) isConstraint()    {}
