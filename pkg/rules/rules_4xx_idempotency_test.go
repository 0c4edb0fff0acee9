// SPDX-License-Identifier: Apache-2.0

package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pglint/pglint/pkg/ir"
)

func TestMissingIfExistsOnDrop(t *testing.T) {
	t.Parallel()
	r := findRule(t, "PGM401")

	existing := []ir.Located{located(ir.CreateTable{Name: ir.QualifiedName{Schema: "public", Name: "orders"}})}

	assert.Len(t, runRule(t, r, existing, []ir.Located{located(ir.DropTable{Name: "public.orders"})}, checkOpts{}), 1)
	assert.Len(t, runRule(t, r, existing, []ir.Located{located(ir.DropTable{Name: "public.orders", IfExists: true})}, checkOpts{}), 0)
}

func TestMissingIfNotExistsOnCreate(t *testing.T) {
	t.Parallel()
	r := findRule(t, "PGM402")

	assert.Len(t, runRule(t, r, nil, []ir.Located{located(ir.CreateTable{Name: ir.QualifiedName{Schema: "public", Name: "orders"}})}, checkOpts{}), 1)
	assert.Len(t, runRule(t, r, nil, []ir.Located{located(ir.CreateTable{Name: ir.QualifiedName{Schema: "public", Name: "orders"}, IfNotExists: true})}, checkOpts{}), 0)
}

func TestRedundantCreateIfNotExists(t *testing.T) {
	t.Parallel()
	r := findRule(t, "PGM403")

	existing := []ir.Located{located(ir.CreateTable{Name: ir.QualifiedName{Schema: "public", Name: "orders"}})}

	unit := []ir.Located{located(ir.CreateTable{Name: ir.QualifiedName{Schema: "public", Name: "orders"}, IfNotExists: true})}
	assert.Len(t, runRule(t, r, existing, unit, checkOpts{}), 1)

	freshUnit := []ir.Located{located(ir.CreateTable{Name: ir.QualifiedName{Schema: "public", Name: "new_table"}, IfNotExists: true})}
	assert.Len(t, runRule(t, r, existing, freshUnit, checkOpts{}), 0)
}
