// SPDX-License-Identifier: Apache-2.0

package rules_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pglint/pglint/pkg/catalog"
	"github.com/pglint/pglint/pkg/ir"
	"github.com/pglint/pglint/pkg/lintcontext"
	"github.com/pglint/pglint/pkg/replay"
	"github.com/pglint/pglint/pkg/rules"
	"github.com/pglint/pglint/pkg/severity"
)

func located(n ir.Node) ir.Located {
	return ir.Located{Node: n}
}

// checkOpts configures the lint context a test builds before invoking a
// rule's Check.
type checkOpts struct {
	runInTransaction bool
	isDown           bool
}

// runRule replays before against a fresh catalog, clones it, replays
// unit against the clone, derives tables_created_in_change exactly as
// the pipeline would, and returns the findings a single rule produces.
func runRule(t *testing.T, r rules.Rule, before, unit []ir.Located, opts checkOpts) []severity.Finding {
	t.Helper()

	beforeCat := catalog.New()
	replay.Apply(beforeCat, before)

	after := beforeCat.Clone()
	replay.Apply(after, unit)

	created := map[string]struct{}{}
	for _, loc := range unit {
		ct, ok := loc.Node.(ir.CreateTable)
		if !ok {
			continue
		}
		key := ct.Name.Key()
		if ct.IfNotExists && beforeCat.Has(key) {
			continue
		}
		created[key] = struct{}{}
	}

	ctx := &lintcontext.Context{
		Before:                beforeCat,
		After:                 after,
		TablesCreatedInChange: created,
		RunInTransaction:      opts.runInTransaction,
		IsDown:                opts.isDown,
		File:                  "test.sql",
	}

	return r.Check(unit, ctx)
}

func findRule(t *testing.T, id string) rules.Rule {
	t.Helper()
	r, ok := rules.Get(id)
	require.True(t, ok, "rule %s not registered", id)
	return r
}

func ruleIDs(findings []severity.Finding) []string {
	out := make([]string, len(findings))
	for i, f := range findings {
		out[i] = f.RuleID
	}
	return out
}
