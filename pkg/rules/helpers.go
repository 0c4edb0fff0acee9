// SPDX-License-Identifier: Apache-2.0

package rules

import (
	"strings"

	"github.com/pglint/pglint/pkg/catalog"
	"github.com/pglint/pglint/pkg/ir"
	"github.com/pglint/pglint/pkg/severity"
)

// baseRule supplies the four static Rule methods; concrete rules embed
// it and implement only Check.
type baseRule struct {
	id          string
	sev         severity.Severity
	description string
	explanation string
}

func (b baseRule) ID() string                       { return b.id }
func (b baseRule) DefaultSeverity() severity.Severity { return b.sev }
func (b baseRule) Description() string              { return b.description }
func (b baseRule) Explanation() string              { return b.explanation }

// indexPlainColumns returns the plain-column entries of the named index on
// table in order, skipping expression entries, or nil if the index is
// unknown. Mirrors replay's own
// USING INDEX resolution, kept separate since pkg/rules must not depend
// on pkg/replay.
func indexPlainColumns(table *catalog.TableState, indexName string) []string {
	ix := table.GetIndex(indexName)
	if ix == nil {
		return nil
	}
	var cols []string
	for _, e := range ix.Entries {
		if c, ok := e.(catalog.IndexColumn); ok {
			cols = append(cols, c.Name)
		}
	}
	return cols
}

// addedForeignKey pairs a freshly-added FK with the table it was added
// to, regardless of whether it arrived inline in a CREATE TABLE or via
// ALTER TABLE ADD CONSTRAINT.
type addedForeignKey struct {
	TableKey string
	FK       catalog.ForeignKey
}

func foreignKeysAddedIn(loc ir.Located) []addedForeignKey {
	var out []addedForeignKey
	switch n := loc.Node.(type) {
	case ir.CreateTable:
		for _, c := range n.Constraints {
			if fk, ok := c.(ir.ForeignKeyConstraint); ok {
				out = append(out, addedForeignKey{
					TableKey: n.Name.Key(),
					FK: catalog.ForeignKey{
						Name: fk.Name, Columns: fk.Columns,
						RefTable: fk.RefTable, RefColumns: fk.RefColumns,
						NotValid: fk.NotValid,
					},
				})
			}
		}
	case ir.AlterTable:
		for _, a := range n.Actions {
			ac, ok := a.(ir.AddConstraint)
			if !ok {
				continue
			}
			fk, ok := ac.Constraint.(ir.ForeignKeyConstraint)
			if !ok {
				continue
			}
			out = append(out, addedForeignKey{
				TableKey: n.Table,
				FK: catalog.ForeignKey{
					Name: fk.Name, Columns: fk.Columns,
					RefTable: fk.RefTable, RefColumns: fk.RefColumns,
					NotValid: fk.NotValid,
				},
			})
		}
	}
	return out
}

// normalizeType lowercases and strips whitespace so type-name comparisons
// are resilient to casing/spacing differences produced by different SQL
// formatting.
func normalizeType(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}

// findingWithSeverity builds a Finding like finding, but with an explicit
// severity overriding the rule's DefaultSeverity. Used by rules whose
// severity depends on the statement being checked (e.g. the
// AlterColumnType safety classification).
func findingWithSeverity(r Rule, sev severity.Severity, loc ir.Located, message, file string) severity.Finding {
	f := finding(r, loc, message, file)
	f.Severity = sev
	return f
}

