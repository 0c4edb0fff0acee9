// SPDX-License-Identifier: Apache-2.0

package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pglint/pglint/pkg/ir"
)

func TestDropTableRules(t *testing.T) {
	t.Parallel()

	existing := []ir.Located{located(ir.CreateTable{Name: ir.QualifiedName{Schema: "public", Name: "orders"}})}

	t.Run("plain drop fires PGM201 only", func(t *testing.T) {
		t.Parallel()
		unit := []ir.Located{located(ir.DropTable{Name: "public.orders"})}
		assert.Len(t, runRule(t, findRule(t, "PGM201"), existing, unit, checkOpts{}), 1)
		assert.Len(t, runRule(t, findRule(t, "PGM202"), existing, unit, checkOpts{}), 0)
	})

	t.Run("cascade drop fires PGM202 only", func(t *testing.T) {
		t.Parallel()
		unit := []ir.Located{located(ir.DropTable{Name: "public.orders", Cascade: true})}
		assert.Len(t, runRule(t, findRule(t, "PGM201"), existing, unit, checkOpts{}), 0)
		assert.Len(t, runRule(t, findRule(t, "PGM202"), existing, unit, checkOpts{}), 1)
	})
}

func TestTruncateRules(t *testing.T) {
	t.Parallel()
	existing := []ir.Located{located(ir.CreateTable{Name: ir.QualifiedName{Schema: "public", Name: "orders"}})}

	unit := []ir.Located{located(ir.TruncateTable{Table: "public.orders"})}
	assert.Len(t, runRule(t, findRule(t, "PGM203"), existing, unit, checkOpts{}), 1)

	cascadeUnit := []ir.Located{located(ir.TruncateTable{Table: "public.orders", Cascade: true})}
	assert.Len(t, runRule(t, findRule(t, "PGM204"), existing, cascadeUnit, checkOpts{}), 1)
}

func TestDropSchemaCascadeAlwaysFires(t *testing.T) {
	t.Parallel()
	r := findRule(t, "PGM205")

	existing := []ir.Located{located(ir.CreateTable{Name: ir.QualifiedName{Schema: "reporting", Name: "daily"}})}
	unit := []ir.Located{located(ir.DropSchema{Schema: "reporting", Cascade: true})}

	got := runRule(t, r, existing, unit, checkOpts{})
	if assert.Len(t, got, 1) {
		assert.Contains(t, got[0].Message, "reporting.daily")
	}

	noCascadeUnit := []ir.Located{located(ir.DropSchema{Schema: "reporting"})}
	assert.Len(t, runRule(t, r, existing, noCascadeUnit, checkOpts{}), 0)
}
