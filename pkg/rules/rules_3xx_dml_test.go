// SPDX-License-Identifier: Apache-2.0

package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pglint/pglint/pkg/ir"
)

func TestDMLRulesSkipNewTables(t *testing.T) {
	t.Parallel()

	existing := []ir.Located{located(ir.CreateTable{Name: ir.QualifiedName{Schema: "public", Name: "orders"}})}

	t.Run("insert into existing table fires", func(t *testing.T) {
		t.Parallel()
		unit := []ir.Located{located(ir.InsertInto{Table: "public.orders"})}
		assert.Len(t, runRule(t, findRule(t, "PGM301"), existing, unit, checkOpts{}), 1)
	})

	t.Run("insert into table created in this unit does not fire", func(t *testing.T) {
		t.Parallel()
		unit := []ir.Located{
			located(ir.CreateTable{Name: ir.QualifiedName{Schema: "public", Name: "seed_data"}}),
			located(ir.InsertInto{Table: "public.seed_data"}),
		}
		assert.Len(t, runRule(t, findRule(t, "PGM301"), existing, unit, checkOpts{}), 0)
	})

	t.Run("update and delete on existing table fire", func(t *testing.T) {
		t.Parallel()
		assert.Len(t, runRule(t, findRule(t, "PGM302"), existing, []ir.Located{located(ir.UpdateTable{Table: "public.orders"})}, checkOpts{}), 1)
		assert.Len(t, runRule(t, findRule(t, "PGM303"), existing, []ir.Located{located(ir.DeleteFrom{Table: "public.orders"})}, checkOpts{}), 1)
	})
}
