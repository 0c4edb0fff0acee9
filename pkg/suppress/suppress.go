// SPDX-License-Identifier: Apache-2.0

// Package suppress applies an already-computed suppression predicate to
// a finding list. It deliberately knows nothing about source comments or
// how a predicate gets built; that extraction lives entirely outside the
// core.
package suppress

import "github.com/pglint/pglint/pkg/severity"

// Predicate reports whether a finding at the given rule, file, and line
// should be dropped.
type Predicate func(ruleID, file string, line int) bool

// Apply returns findings with every entry matching predicate removed.
// A nil predicate suppresses nothing.
func Apply(findings []severity.Finding, predicate Predicate) []severity.Finding {
	if predicate == nil {
		return findings
	}
	out := make([]severity.Finding, 0, len(findings))
	for _, f := range findings {
		if predicate(f.RuleID, f.File, f.Span.StartLine) {
			continue
		}
		out = append(out, f)
	}
	return out
}
