// SPDX-License-Identifier: Apache-2.0

package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pglint/pglint/pkg/ir"
	"github.com/pglint/pglint/pkg/severity"
)

func TestIndexWithoutConcurrently(t *testing.T) {
	t.Parallel()
	r := findRule(t, "PGM001")

	existing := []ir.Located{located(ir.CreateTable{
		Name:    ir.QualifiedName{Schema: "public", Name: "orders"},
		Columns: []ir.ColumnDef{{Name: "id", TypeName: "int8"}},
	})}

	testCases := []struct {
		name string
		unit []ir.Located
		txn  bool
		want int
	}{
		{
			name: "create index without concurrently on existing table fires",
			unit: []ir.Located{located(ir.CreateIndex{Table: "public.orders", Entries: []ir.IndexEntry{ir.IndexColumn{Name: "id"}}})},
			want: 1,
		},
		{
			name: "create index concurrently is fine outside a transaction",
			unit: []ir.Located{located(ir.CreateIndex{Table: "public.orders", Concurrent: true, Entries: []ir.IndexEntry{ir.IndexColumn{Name: "id"}}})},
			want: 0,
		},
		{
			name: "create index concurrently inside a transaction fires",
			unit: []ir.Located{located(ir.CreateIndex{Table: "public.orders", Concurrent: true, Entries: []ir.IndexEntry{ir.IndexColumn{Name: "id"}}})},
			txn:  true,
			want: 1,
		},
		{
			name: "create index on table created in this unit does not fire",
			unit: []ir.Located{
				located(ir.CreateTable{Name: ir.QualifiedName{Schema: "public", Name: "new_table"}}),
				located(ir.CreateIndex{Table: "public.new_table", Entries: []ir.IndexEntry{ir.IndexColumn{Name: "id"}}}),
			},
			want: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := runRule(t, r, existing, tc.unit, checkOpts{runInTransaction: tc.txn})
			assert.Len(t, got, tc.want)
		})
	}
}

func TestAlterColumnTypeUnsafe(t *testing.T) {
	t.Parallel()
	r := findRule(t, "PGM002")

	existing := []ir.Located{located(ir.CreateTable{
		Name: ir.QualifiedName{Schema: "public", Name: "orders"},
		Columns: []ir.ColumnDef{
			{Name: "note", TypeName: "varchar(10)"},
		},
	})}

	testCases := []struct {
		name    string
		newType string
		wantLen int
		wantSev severity.Severity
	}{
		{name: "widening varchar is safe", newType: "varchar(20)", wantLen: 0},
		{name: "narrowing varchar is unsafe", newType: "varchar(5)", wantLen: 1, wantSev: severity.Critical},
		{name: "varchar to text is safe", newType: "text", wantLen: 0},
		{name: "arbitrary type change is unsafe", newType: "int4", wantLen: 1, wantSev: severity.Critical},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			unit := []ir.Located{located(ir.AlterTable{
				Table: "public.orders",
				Actions: []ir.AlterAction{
					ir.AlterColumnType{Column: "note", New: tc.newType},
				},
			})}
			got := runRule(t, r, existing, unit, checkOpts{})
			assert.Len(t, got, tc.wantLen)
			if tc.wantLen > 0 {
				assert.Equal(t, tc.wantSev, got[0].Severity)
			}
		})
	}
}

func TestAlterColumnTypeTimestampToTZIsInfo(t *testing.T) {
	t.Parallel()
	r := findRule(t, "PGM002")

	existing := []ir.Located{located(ir.CreateTable{
		Name:    ir.QualifiedName{Schema: "public", Name: "orders"},
		Columns: []ir.ColumnDef{{Name: "created_at", TypeName: "timestamp"}},
	})}
	unit := []ir.Located{located(ir.AlterTable{
		Table:   "public.orders",
		Actions: []ir.AlterAction{ir.AlterColumnType{Column: "created_at", New: "timestamptz"}},
	})}

	got := runRule(t, r, existing, unit, checkOpts{})
	if assert.Len(t, got, 1) {
		assert.Equal(t, severity.Info, got[0].Severity)
	}
}

func TestAddForeignKeyWithoutNotValid(t *testing.T) {
	t.Parallel()
	r := findRule(t, "PGM003")

	existing := []ir.Located{
		located(ir.CreateTable{Name: ir.QualifiedName{Schema: "public", Name: "customers"}, Columns: []ir.ColumnDef{{Name: "id", TypeName: "int8", PrimaryKey: true}}}),
		located(ir.CreateTable{Name: ir.QualifiedName{Schema: "public", Name: "orders"}, Columns: []ir.ColumnDef{{Name: "customer_id", TypeName: "int8"}}}),
	}

	testCases := []struct {
		name     string
		notValid bool
		want     int
	}{
		{name: "without not valid fires", notValid: false, want: 1},
		{name: "with not valid is clean", notValid: true, want: 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			unit := []ir.Located{located(ir.AlterTable{
				Table: "public.orders",
				Actions: []ir.AlterAction{ir.AddConstraint{Constraint: ir.ForeignKeyConstraint{
					Name: "fk_customer", Columns: []string{"customer_id"}, RefTable: "public.customers",
					RefColumns: []string{"id"}, NotValid: tc.notValid,
				}}},
			})}
			got := runRule(t, r, existing, unit, checkOpts{})
			assert.Len(t, got, tc.want)
		})
	}
}

func TestDropColumnDropsConstraints(t *testing.T) {
	t.Parallel()

	existing := []ir.Located{
		located(ir.CreateTable{
			Name: ir.QualifiedName{Schema: "public", Name: "widgets"},
			Columns: []ir.ColumnDef{
				{Name: "id", TypeName: "int8"},
				{Name: "sku", TypeName: "text"},
			},
			Constraints: []ir.Constraint{
				ir.PrimaryKeyConstraint{Columns: []string{"id"}},
				ir.UniqueConstraint{Name: "widgets_sku_key", Columns: []string{"sku"}},
			},
		}),
	}

	unit := []ir.Located{located(ir.AlterTable{
		Table:   "public.widgets",
		Actions: []ir.AlterAction{ir.DropColumn{Name: "sku"}},
	})}

	uniqueRule := findRule(t, "PGM006")
	got := runRule(t, uniqueRule, existing, unit, checkOpts{})
	assert.Len(t, got, 1)

	pkUnit := []ir.Located{located(ir.AlterTable{
		Table:   "public.widgets",
		Actions: []ir.AlterAction{ir.DropColumn{Name: "id"}},
	})}
	pkRule := findRule(t, "PGM007")
	got = runRule(t, pkRule, existing, pkUnit, checkOpts{})
	assert.Len(t, got, 1)
}

func TestClusterOnExistingTable(t *testing.T) {
	t.Parallel()
	r := findRule(t, "PGM011")

	existing := []ir.Located{located(ir.CreateTable{Name: ir.QualifiedName{Schema: "public", Name: "orders"}})}

	got := runRule(t, r, existing, []ir.Located{located(ir.Cluster{Table: "public.orders"})}, checkOpts{})
	assert.Len(t, got, 1)

	newUnit := []ir.Located{
		located(ir.CreateTable{Name: ir.QualifiedName{Schema: "public", Name: "brand_new"}}),
		located(ir.Cluster{Table: "public.brand_new"}),
	}
	got = runRule(t, r, existing, newUnit, checkOpts{})
	assert.Len(t, got, 0)
}
