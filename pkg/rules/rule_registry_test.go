// SPDX-License-Identifier: Apache-2.0

package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pglint/pglint/pkg/rules"
)

func TestAllRulesRegisteredOnceAndSorted(t *testing.T) {
	t.Parallel()

	want := []string{
		"PGM001", "PGM002", "PGM003", "PGM004", "PGM005", "PGM006", "PGM007", "PGM008", "PGM009", "PGM010", "PGM011", "PGM012",
		"PGM101", "PGM102", "PGM103", "PGM104", "PGM105", "PGM106", "PGM107",
		"PGM201", "PGM202", "PGM203", "PGM204", "PGM205",
		"PGM301", "PGM302", "PGM303",
		"PGM401", "PGM402", "PGM403",
		"PGM501", "PGM502", "PGM503", "PGM504", "PGM505", "PGM506", "PGM507",
	}

	all := rules.All()
	got := make([]string, len(all))
	seen := make(map[string]bool, len(all))
	for i, r := range all {
		got[i] = r.ID()
		assert.False(t, seen[r.ID()], "duplicate rule id %s", r.ID())
		seen[r.ID()] = true
		assert.NotEmpty(t, r.Description())
		assert.NotEmpty(t, r.Explanation())
	}

	assert.Equal(t, want, got)
}

func TestGetUnknownRuleID(t *testing.T) {
	t.Parallel()

	_, ok := rules.Get("PGM999")
	assert.False(t, ok)

	r, ok := rules.Get("PGM001")
	require.True(t, ok)
	assert.Equal(t, "PGM001", r.ID())
}
