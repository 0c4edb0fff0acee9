// SPDX-License-Identifier: Apache-2.0

// Package rules implements the closed catalog of lint rules that run
// against each changed migration unit. The set of rules is fixed: adding
// one is a code change to this package, not a plugin registered at
// runtime.
package rules

import (
	"sort"

	"github.com/pglint/pglint/pkg/ir"
	"github.com/pglint/pglint/pkg/lintcontext"
	"github.com/pglint/pglint/pkg/severity"
)

// Rule is the uniform interface every lint rule implements.
type Rule interface {
	ID() string
	DefaultSeverity() severity.Severity
	Description() string
	Explanation() string
	Check(statements []ir.Located, ctx *lintcontext.Context) []severity.Finding
}

var registry = map[string]Rule{}

func register(r Rule) Rule {
	if _, exists := registry[r.ID()]; exists {
		panic("rules: duplicate rule id " + r.ID())
	}
	registry[r.ID()] = r
	return r
}

// All returns every registered rule, ordered by id.
func All() []Rule {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]Rule, 0, len(ids))
	for _, id := range ids {
		out = append(out, registry[id])
	}
	return out
}

// Get returns the rule with the given id, or false if unknown.
func Get(id string) (Rule, bool) {
	r, ok := registry[id]
	return r, ok
}

// finding builds a Finding for the given rule, located statement, and
// message.
func finding(r Rule, loc ir.Located, message string, file string) severity.Finding {
	return severity.Finding{
		RuleID:   r.ID(),
		Severity: r.DefaultSeverity(),
		Message:  message,
		File:     file,
		Span: severity.Span{
			StartLine:   loc.Span.StartLine,
			EndLine:     loc.Span.EndLine,
			StartOffset: loc.Span.StartOffset,
			EndOffset:   loc.Span.EndOffset,
		},
	}
}
