// SPDX-License-Identifier: Apache-2.0

package fakeparse

import (
	"strings"

	"github.com/oapi-codegen/nullable"

	"github.com/pglint/pglint/pkg/ir"
)

// parseVacuumFull recognizes `VACUUM FULL [table]`. A bare `VACUUM FULL`
// targets the whole database, so Table is left empty in that case.
func parseVacuumFull(stmt string, defaultSchema string) ir.Node {
	rest, ok := afterKeyword(stmt, "FULL")
	if !ok {
		return ir.VacuumFull{}
	}
	name, _ := firstToken(strings.TrimSpace(rest))
	if name == "" {
		return ir.VacuumFull{}
	}
	return ir.VacuumFull{Table: nullable.NewNullableWithValue(qualifyKey(name, defaultSchema))}
}

func parseCluster(stmt string, defaultSchema string) (ir.Node, bool) {
	rest, ok := afterKeyword(stmt, "CLUSTER")
	if !ok {
		return nil, false
	}
	name, _ := firstToken(strings.TrimSpace(rest))
	if name == "" {
		return nil, false
	}
	return ir.Cluster{Table: qualifyKey(name, defaultSchema)}, true
}
