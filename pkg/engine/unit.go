// SPDX-License-Identifier: Apache-2.0

// Package engine wires pkg/catalog, pkg/replay, pkg/lintcontext, and
// pkg/rules into the single-pass pipeline that turns a stream of
// migration units into findings.
package engine

import (
	"github.com/google/uuid"

	"github.com/pglint/pglint/pkg/ir"
)

// Unit is one migration unit: a source file's worth of statements,
// ordered, plus the metadata the pipeline needs to decide how to
// process it. ID is opaque and used only in diagnostics.
type Unit struct {
	ID               uuid.UUID
	Statements       []ir.Located
	SourceFile       string
	StartLine        int
	RunInTransaction bool
	IsDown           bool
}

// NewUnit builds a Unit with a freshly generated ID.
func NewUnit(statements []ir.Located, sourceFile string, startLine int, runInTransaction, isDown bool) Unit {
	return Unit{
		ID:               uuid.New(),
		Statements:       statements,
		SourceFile:       sourceFile,
		StartLine:        startLine,
		RunInTransaction: runInTransaction,
		IsDown:           isDown,
	}
}
