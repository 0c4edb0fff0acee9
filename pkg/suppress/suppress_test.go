// SPDX-License-Identifier: Apache-2.0

package suppress_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pglint/pglint/pkg/severity"
	"github.com/pglint/pglint/pkg/suppress"
)

func TestApplyNilPredicateIsNoop(t *testing.T) {
	t.Parallel()

	findings := []severity.Finding{{RuleID: "PGM001", File: "a.sql"}}
	assert.Equal(t, findings, suppress.Apply(findings, nil))
}

func TestApplyDropsMatching(t *testing.T) {
	t.Parallel()

	findings := []severity.Finding{
		{RuleID: "PGM001", File: "a.sql", Span: severity.Span{StartLine: 10}},
		{RuleID: "PGM002", File: "a.sql", Span: severity.Span{StartLine: 20}},
	}

	predicate := func(ruleID, file string, line int) bool {
		return ruleID == "PGM001" && line == 10
	}

	got := suppress.Apply(findings, predicate)
	if assert.Len(t, got, 1) {
		assert.Equal(t, "PGM002", got[0].RuleID)
	}
}
