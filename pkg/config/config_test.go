// SPDX-License-Identifier: Apache-2.0

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pglint/pglint/pkg/config"
	"github.com/pglint/pglint/pkg/severity"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "pglint.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultActivatesEveryRule(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	assert.NotEmpty(t, cfg.ActiveRules)
	assert.Equal(t, severity.Critical, cfg.FailOn)
	assert.Equal(t, "public", cfg.DefaultSchema)
}

func TestLoadValidConfig(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
defaultSchema: app
activeRules:
  - PGM001
  - PGM201
severityOverrides:
  PGM001: blocker
failOn: major
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "app", cfg.DefaultSchema)
	assert.Equal(t, []string{"PGM001", "PGM201"}, cfg.ActiveRules)
	assert.Equal(t, severity.Blocker, cfg.SeverityOverrides["PGM001"])
	assert.Equal(t, severity.Major, cfg.FailOn)
}

func TestLoadRejectsUnknownRuleID(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
activeRules:
  - PGM999
`)

	_, err := config.Load(path)
	require.Error(t, err)
	var unknown *config.UnknownRuleError
	assert.ErrorAs(t, err, &unknown)
}

func TestLoadRejectsSchemaViolation(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
failOn: not-a-severity
`)

	_, err := config.Load(path)
	require.Error(t, err)
	var schemaErr *config.SchemaValidationError
	assert.ErrorAs(t, err, &schemaErr)
}

func TestSeverityForFallsBackToDefault(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	r := cfg.ActiveRuleSet()[0]
	assert.Equal(t, r.DefaultSeverity(), cfg.SeverityFor(r))
}
