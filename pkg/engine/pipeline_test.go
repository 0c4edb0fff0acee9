// SPDX-License-Identifier: Apache-2.0

package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pglint/pglint/pkg/engine"
	"github.com/pglint/pglint/pkg/ir"
	"github.com/pglint/pglint/pkg/rules"
	"github.com/pglint/pglint/pkg/severity"
)

func located(n ir.Node) ir.Located {
	return ir.Located{Node: n}
}

func allRules(t *testing.T) []rules.Rule {
	t.Helper()
	return rules.All()
}

func TestReplayDoesNotLint(t *testing.T) {
	t.Parallel()

	p := engine.New(nil)
	unit := engine.NewUnit([]ir.Located{located(ir.DropTable{Name: "public.orders"})}, "001.sql", 1, false, false)
	p.Replay(unit)

	assert.False(t, p.Catalog().Has("public.orders"))
}

func TestLintAccumulatesFindingsAcrossRules(t *testing.T) {
	t.Parallel()

	p := engine.New(nil)

	create := engine.NewUnit([]ir.Located{located(ir.CreateTable{
		Name:    ir.QualifiedName{Schema: "public", Name: "orders"},
		Columns: []ir.ColumnDef{{Name: "id", TypeName: "int8", PrimaryKey: true}},
	})}, "001.sql", 1, false, false)
	findings := p.Lint(create, allRules(t))
	require.Len(t, findings, 1, "only PGM402 (CREATE TABLE without IF NOT EXISTS) applies to this unit")
	assert.Equal(t, "PGM402", findings[0].RuleID)

	dropUnit := engine.NewUnit([]ir.Located{located(ir.DropTable{Name: "public.orders"})}, "002.sql", 1, false, false)
	findings = p.Lint(dropUnit, allRules(t))

	ids := make([]string, len(findings))
	for i, f := range findings {
		ids[i] = f.RuleID
	}
	assert.Contains(t, ids, "PGM201")
	assert.Contains(t, ids, "PGM401")
}

func TestLintIfNotExistsIdempotence(t *testing.T) {
	t.Parallel()

	p := engine.New(nil)

	create := engine.NewUnit([]ir.Located{located(ir.CreateTable{
		Name:    ir.QualifiedName{Schema: "public", Name: "orders"},
		Columns: []ir.ColumnDef{{Name: "id", TypeName: "int8", PrimaryKey: true}},
	})}, "001.sql", 1, false, false)
	p.Lint(create, allRules(t))

	idempotent := engine.NewUnit([]ir.Located{located(ir.CreateTable{
		Name:        ir.QualifiedName{Schema: "public", Name: "orders"},
		IfNotExists: true,
		Columns:     []ir.ColumnDef{{Name: "id", TypeName: "int8", PrimaryKey: true}},
	})}, "003.sql", 1, false, false)

	r, ok := rules.Get("PGM403")
	require.True(t, ok)
	findings := p.Lint(idempotent, []rules.Rule{r})
	assert.Len(t, findings, 1, "redundant IF NOT EXISTS on a pre-existing table should fire PGM403")

	insertUnit := engine.NewUnit([]ir.Located{
		located(ir.CreateTable{Name: ir.QualifiedName{Schema: "public", Name: "orders"}, IfNotExists: true}),
		located(ir.InsertInto{Table: "public.orders"}),
	}, "004.sql", 1, false, false)
	insertRule, ok := rules.Get("PGM301")
	require.True(t, ok)
	assert.Empty(t, p.Lint(insertUnit, []rules.Rule{insertRule}),
		"table created with IF NOT EXISTS against a table that already existed must still be treated as existing, not newly created")
}

func TestLintCapsDownMigrationSeverity(t *testing.T) {
	t.Parallel()

	p := engine.New(nil)
	create := engine.NewUnit([]ir.Located{located(ir.CreateTable{
		Name:    ir.QualifiedName{Schema: "public", Name: "orders"},
		Columns: []ir.ColumnDef{{Name: "id", TypeName: "int8", PrimaryKey: true}},
	})}, "001.sql", 1, false, false)
	p.Lint(create, allRules(t))

	down := engine.NewUnit([]ir.Located{located(ir.DropTable{Name: "public.orders", Cascade: true})}, "001.down.sql", 1, false, true)
	findings := p.Lint(down, allRules(t))
	require.NotEmpty(t, findings)
	for _, f := range findings {
		assert.Equal(t, severity.Info, f.Severity)
	}
}

func TestLintIsDeterministic(t *testing.T) {
	t.Parallel()

	buildFindings := func() []severity.Finding {
		p := engine.New(nil)
		create := engine.NewUnit([]ir.Located{located(ir.CreateTable{
			Name:    ir.QualifiedName{Schema: "public", Name: "orders"},
			Columns: []ir.ColumnDef{{Name: "note", TypeName: "json"}},
		})}, "001.sql", 1, false, false)
		p.Lint(create, allRules(t))

		alter := engine.NewUnit([]ir.Located{located(ir.AlterTable{
			Table:   "public.orders",
			Actions: []ir.AlterAction{ir.DropColumn{Name: "note"}},
		})}, "002.sql", 1, false, false)
		return p.Lint(alter, allRules(t))
	}

	first := buildFindings()
	second := buildFindings()
	assert.Equal(t, first, second)
}
