// SPDX-License-Identifier: Apache-2.0

package replay_test

import (
	"testing"

	"github.com/oapi-codegen/nullable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pglint/pglint/pkg/catalog"
	"github.com/pglint/pglint/pkg/ir"
	"github.com/pglint/pglint/pkg/replay"
)

func located(n ir.Node) ir.Located {
	return ir.Located{Node: n}
}

func TestDropColumnUnregistersItsIndexesFromReverseMap(t *testing.T) {
	cat := catalog.New()
	replay.Apply(cat, []ir.Located{
		located(ir.CreateTable{
			Name:    ir.QualifiedName{Schema: "public", Name: "orders"},
			Columns: []ir.ColumnDef{{Name: "id", TypeName: "int8", PrimaryKey: true}},
		}),
		located(ir.CreateIndex{
			Name:    nullable.NewNullableWithValue("idx_orders_id"),
			Table:   "public.orders",
			Entries: []ir.IndexEntry{ir.IndexColumn{Name: "id"}},
		}),
	})

	if _, ok := cat.TableForIndex("idx_orders_id"); !ok {
		t.Fatal("index should be registered before the column is dropped")
	}

	replay.Apply(cat, []ir.Located{
		located(ir.AlterTable{
			Table:   "public.orders",
			Actions: []ir.AlterAction{ir.DropColumn{Name: "id"}},
		}),
	})

	table := cat.Get("public.orders")
	require.NotNil(t, table)
	assert.Nil(t, table.GetIndex("idx_orders_id"), "index referencing the dropped column must be removed from the table")

	_, ok := cat.TableForIndex("idx_orders_id")
	assert.False(t, ok, "reverse map must not retain an index that no longer exists on any table")

	_, ok = cat.TableForIndex(catalog.PKeyIndexName("public.orders"))
	assert.False(t, ok, "the synthesized PK index dropped along with its only column must also be unregistered")
}
