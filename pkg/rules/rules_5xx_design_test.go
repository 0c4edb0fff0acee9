// SPDX-License-Identifier: Apache-2.0

package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pglint/pglint/pkg/ir"
)

func TestFKWithoutCoveringIndex(t *testing.T) {
	t.Parallel()
	r := findRule(t, "PGM501")

	existing := []ir.Located{
		located(ir.CreateTable{Name: ir.QualifiedName{Schema: "public", Name: "customers"}, Columns: []ir.ColumnDef{{Name: "id", TypeName: "int8", PrimaryKey: true}}}),
		located(ir.CreateTable{Name: ir.QualifiedName{Schema: "public", Name: "orders"}, Columns: []ir.ColumnDef{{Name: "customer_id", TypeName: "int8"}}}),
	}

	fkConstraint := ir.ForeignKeyConstraint{Name: "fk_customer", Columns: []string{"customer_id"}, RefTable: "public.customers", RefColumns: []string{"id"}, NotValid: true}

	t.Run("no covering index fires", func(t *testing.T) {
		t.Parallel()
		unit := []ir.Located{located(ir.AlterTable{Table: "public.orders", Actions: []ir.AlterAction{ir.AddConstraint{Constraint: fkConstraint}}})}
		assert.Len(t, runRule(t, r, existing, unit, checkOpts{}), 1)
	})

	t.Run("covering index in the same unit suppresses", func(t *testing.T) {
		t.Parallel()
		unit := []ir.Located{
			located(ir.AlterTable{Table: "public.orders", Actions: []ir.AlterAction{ir.AddConstraint{Constraint: fkConstraint}}}),
			located(ir.CreateIndex{Table: "public.orders", Entries: []ir.IndexEntry{ir.IndexColumn{Name: "customer_id"}}}),
		}
		assert.Len(t, runRule(t, r, existing, unit, checkOpts{}), 0)
	})
}

func TestTableWithoutPrimaryKey(t *testing.T) {
	t.Parallel()
	r := findRule(t, "PGM502")

	t.Run("no pk fires", func(t *testing.T) {
		t.Parallel()
		unit := []ir.Located{located(ir.CreateTable{Name: ir.QualifiedName{Schema: "public", Name: "widgets"}, Columns: []ir.ColumnDef{{Name: "id", TypeName: "int8"}}})}
		assert.Len(t, runRule(t, r, nil, unit, checkOpts{}), 1)
	})

	t.Run("with pk does not fire", func(t *testing.T) {
		t.Parallel()
		unit := []ir.Located{located(ir.CreateTable{Name: ir.QualifiedName{Schema: "public", Name: "widgets"}, Columns: []ir.ColumnDef{{Name: "id", TypeName: "int8", PrimaryKey: true}}})}
		assert.Len(t, runRule(t, r, nil, unit, checkOpts{}), 0)
	})

	t.Run("temporary table is exempt", func(t *testing.T) {
		t.Parallel()
		unit := []ir.Located{located(ir.CreateTable{Name: ir.QualifiedName{Schema: "public", Name: "scratch"}, Temporary: true, Columns: []ir.ColumnDef{{Name: "id", TypeName: "int8"}}})}
		assert.Len(t, runRule(t, r, nil, unit, checkOpts{}), 0)
	})

	t.Run("unique not null suppresses", func(t *testing.T) {
		t.Parallel()
		unit := []ir.Located{located(ir.CreateTable{
			Name:        ir.QualifiedName{Schema: "public", Name: "widgets"},
			Columns:     []ir.ColumnDef{{Name: "sku", TypeName: "text", Nullable: false}},
			Constraints: []ir.Constraint{ir.UniqueConstraint{Name: "widgets_sku_key", Columns: []string{"sku"}}},
		})}
		assert.Len(t, runRule(t, r, nil, unit, checkOpts{}), 0)
	})
}

func TestRenameTableSuppressedOnSwap(t *testing.T) {
	t.Parallel()
	r := findRule(t, "PGM504")

	existing := []ir.Located{located(ir.CreateTable{Name: ir.QualifiedName{Schema: "public", Name: "orders"}})}

	t.Run("plain rename fires", func(t *testing.T) {
		t.Parallel()
		unit := []ir.Located{located(ir.RenameTable{From: "public.orders", To: "public.orders_old"})}
		assert.Len(t, runRule(t, r, existing, unit, checkOpts{}), 1)
	})

	t.Run("rename-away-and-recreate swap is suppressed", func(t *testing.T) {
		t.Parallel()
		unit := []ir.Located{
			located(ir.RenameTable{From: "public.orders", To: "public.orders_old"}),
			located(ir.CreateTable{Name: ir.QualifiedName{Schema: "public", Name: "orders"}}),
		}
		assert.Len(t, runRule(t, r, existing, unit, checkOpts{}), 0)
	})
}

func TestCreateUnloggedTable(t *testing.T) {
	t.Parallel()
	r := findRule(t, "PGM506")

	unit := []ir.Located{located(ir.CreateTable{Name: ir.QualifiedName{Schema: "public", Name: "cache"}, Unlogged: true})}
	assert.Len(t, runRule(t, r, nil, unit, checkOpts{}), 1)
}

func TestDropNotNullOnExistingTable(t *testing.T) {
	t.Parallel()
	r := findRule(t, "PGM507")

	existing := []ir.Located{located(ir.CreateTable{Name: ir.QualifiedName{Schema: "public", Name: "orders"}, Columns: []ir.ColumnDef{{Name: "note", TypeName: "text"}}})}
	unit := []ir.Located{located(ir.AlterTable{Table: "public.orders", Actions: []ir.AlterAction{ir.DropNotNull{Column: "note"}}})}
	assert.Len(t, runRule(t, r, existing, unit, checkOpts{}), 1)
}
