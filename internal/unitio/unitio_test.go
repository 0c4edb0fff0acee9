// SPDX-License-Identifier: Apache-2.0

package unitio_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/pglint/pglint/internal/unitio"
	"github.com/pglint/pglint/pkg/ir"
)

// writeArchive materializes a txtar archive as a directory of real files,
// letting one fixture represent an entire migration folder.
func writeArchive(t *testing.T, archive string) string {
	t.Helper()
	dir := t.TempDir()
	a := txtar.Parse([]byte(archive))
	for _, f := range a.Files {
		path := filepath.Join(dir, f.Name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, f.Data, 0o644))
	}
	return dir
}

const migrationFolder = `
-- 001_create_accounts.sql --
CREATE TABLE accounts (
	id bigint PRIMARY KEY,
	email text NOT NULL
);

-- 002_add_balance.sql --
ALTER TABLE accounts ADD COLUMN balance numeric(10,2) DEFAULT 0;

-- 002_add_balance.down.sql --
ALTER TABLE accounts DROP COLUMN balance;

-- readme.md --
not a migration file, should be skipped
`

func TestLoadDirOrdersAndClassifiesFiles(t *testing.T) {
	t.Parallel()

	dir := writeArchive(t, migrationFolder)
	units, err := unitio.LoadDir(dir, "public")
	require.NoError(t, err)
	require.Len(t, units, 3)

	assert.Contains(t, units[0].SourceFile, "001_create_accounts.sql")
	assert.False(t, units[0].IsDown)
	require.Len(t, units[0].Statements, 1)
	_, ok := units[0].Statements[0].Node.(ir.CreateTable)
	assert.True(t, ok)

	assert.Contains(t, units[1].SourceFile, "002_add_balance.down.sql")
	assert.True(t, units[1].IsDown)

	assert.Contains(t, units[2].SourceFile, "002_add_balance.sql")
	assert.False(t, units[2].IsDown)
}

func TestLoadDirSkipsNonSQLFiles(t *testing.T) {
	t.Parallel()

	dir := writeArchive(t, migrationFolder)
	units, err := unitio.LoadDir(dir, "public")
	require.NoError(t, err)
	for _, u := range units {
		assert.NotContains(t, u.SourceFile, "readme.md")
	}
}

func TestLoadDirMissingDirectoryErrors(t *testing.T) {
	t.Parallel()

	_, err := unitio.LoadDir(filepath.Join(t.TempDir(), "does-not-exist"), "public")
	assert.Error(t, err)
}

func TestLoadDirEmptyDirectory(t *testing.T) {
	t.Parallel()

	units, err := unitio.LoadDir(t.TempDir(), "public")
	require.NoError(t, err)
	assert.Empty(t, units)
}
