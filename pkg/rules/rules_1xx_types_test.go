// SPDX-License-Identifier: Apache-2.0

package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pglint/pglint/pkg/ir"
)

func TestColumnTypeAntiPatterns(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		ruleID   string
		typeName string
		want     int
	}{
		{name: "bare timestamp flagged", ruleID: "PGM101", typeName: "timestamp", want: 1},
		{name: "timestamptz not flagged", ruleID: "PGM101", typeName: "timestamptz", want: 0},
		{name: "timestamp(0) flagged", ruleID: "PGM102", typeName: "timestamp(0)", want: 1},
		{name: "timestamp(3) not flagged", ruleID: "PGM102", typeName: "timestamp(3)", want: 0},
		{name: "char(n) flagged", ruleID: "PGM103", typeName: "char(10)", want: 1},
		{name: "varchar not flagged by char rule", ruleID: "PGM103", typeName: "varchar(10)", want: 0},
		{name: "money flagged", ruleID: "PGM104", typeName: "money", want: 1},
		{name: "json flagged", ruleID: "PGM105", typeName: "json", want: 1},
		{name: "jsonb not flagged", ruleID: "PGM105", typeName: "jsonb", want: 0},
		{name: "serial flagged", ruleID: "PGM106", typeName: "serial", want: 1},
		{name: "bigserial flagged", ruleID: "PGM106", typeName: "bigserial", want: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			r := findRule(t, tc.ruleID)
			unit := []ir.Located{located(ir.CreateTable{
				Name:    ir.QualifiedName{Schema: "public", Name: "widgets"},
				Columns: []ir.ColumnDef{{Name: "c", TypeName: tc.typeName}},
			})}
			got := runRule(t, r, nil, unit, checkOpts{})
			assert.Len(t, got, tc.want)
		})
	}
}

func TestUndersizedIntegerPK(t *testing.T) {
	t.Parallel()
	r := findRule(t, "PGM107")

	testCases := []struct {
		name     string
		typeName string
		want     int
	}{
		{name: "int4 pk flagged", typeName: "int4", want: 1},
		{name: "int8 pk not flagged", typeName: "int8", want: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			unit := []ir.Located{located(ir.CreateTable{
				Name:    ir.QualifiedName{Schema: "public", Name: "widgets"},
				Columns: []ir.ColumnDef{{Name: "id", TypeName: tc.typeName, PrimaryKey: true}},
			})}
			got := runRule(t, r, nil, unit, checkOpts{})
			assert.Len(t, got, tc.want)
		})
	}
}
