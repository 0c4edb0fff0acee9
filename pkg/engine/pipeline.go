// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"github.com/pglint/pglint/pkg/catalog"
	"github.com/pglint/pglint/pkg/ir"
	"github.com/pglint/pglint/pkg/lintcontext"
	"github.com/pglint/pglint/pkg/logging"
	"github.com/pglint/pglint/pkg/replay"
	"github.com/pglint/pglint/pkg/rules"
	"github.com/pglint/pglint/pkg/severity"
)

// Pipeline owns the single catalog that migration units are replayed
// against, in source order. It is not safe for concurrent use: units
// must be fed to Replay/Lint in the order they appear in the migration
// history, since each unit's mutation is the input to the next.
type Pipeline struct {
	cat *catalog.Catalog
	log logging.Logger
}

// New returns a Pipeline over an empty catalog.
func New(log logging.Logger) *Pipeline {
	if log == nil {
		log = logging.NewNoopLogger()
	}
	return &Pipeline{cat: catalog.New(), log: log}
}

// Catalog exposes the pipeline's live catalog for callers that need to
// inspect schema state between units (e.g. a CLI printing a summary).
// Callers must not mutate the returned catalog.
func (p *Pipeline) Catalog() *catalog.Catalog {
	return p.cat
}

// Replay applies a unit's statements without linting, for units that
// precede the range of interest (e.g. everything before a `--since`
// cutoff).
func (p *Pipeline) Replay(unit Unit) {
	p.log.Debug("replaying unit", "file", unit.SourceFile, "id", unit.ID.String())
	replay.Apply(p.cat, unit.Statements)
}

// Lint replays unit against the pipeline's catalog and runs every rule
// in activeRules against the resulting change, returning the
// accumulated findings with down-migration capping already applied.
func (p *Pipeline) Lint(unit Unit, activeRules []rules.Rule) []severity.Finding {
	p.log.Debug("linting unit", "file", unit.SourceFile, "id", unit.ID.String())

	before := p.cat.Clone()
	replay.Apply(p.cat, unit.Statements)

	created := tablesCreatedIn(unit.Statements, before)

	ctx := &lintcontext.Context{
		Before:                before,
		After:                 p.cat,
		TablesCreatedInChange: created,
		RunInTransaction:      unit.RunInTransaction,
		IsDown:                unit.IsDown,
		File:                  unit.SourceFile,
	}

	var findings []severity.Finding
	for _, r := range activeRules {
		findings = append(findings, r.Check(unit.Statements, ctx)...)
	}

	if unit.IsDown {
		findings = severity.Cap(findings, severity.Info)
	}

	p.log.Info("unit linted", "file", unit.SourceFile, "findings", len(findings))
	return findings
}

// tablesCreatedIn derives the set of table keys created by this unit's
// CreateTable statements, honoring the IF NOT EXISTS exception: a
// `CREATE TABLE IF NOT EXISTS` against a table that already existed
// before this unit is a no-op and must not be treated as a fresh table,
// or rules would be spuriously suppressed against it.
func tablesCreatedIn(statements []ir.Located, before *catalog.Catalog) map[string]struct{} {
	created := make(map[string]struct{})
	for _, loc := range statements {
		ct, ok := loc.Node.(ir.CreateTable)
		if !ok {
			continue
		}
		key := ct.Name.Key()
		if ct.IfNotExists && before.Has(key) {
			continue
		}
		created[key] = struct{}{}
	}
	return created
}
