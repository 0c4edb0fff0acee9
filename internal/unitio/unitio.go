// SPDX-License-Identifier: Apache-2.0

// Package unitio turns a directory of SQL migration files into the
// ordered stream of engine.Unit values the rest of the engine consumes,
// recognizing each file's statements with internal/fakeparse.
package unitio

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pglint/pglint/internal/fakeparse"
	"github.com/pglint/pglint/pkg/engine"
)

// LoadDir walks dir non-recursively, sorts entries lexically (migration
// authors are expected to prefix file names with a sortable timestamp,
// the same convention pgroll's own migration directories use), and
// parses each regular file into one Unit. Files named "*.down.sql" are
// flagged IsDown; every other ".sql" file is an up migration. Files
// without a ".sql" extension are skipped.
func LoadDir(dir string, defaultSchema string) ([]engine.Unit, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration directory %q: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	units := make([]engine.Unit, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		contents, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration file %q: %w", path, err)
		}

		isDown := strings.HasSuffix(name, ".down.sql")
		statements := fakeparse.Parse(string(contents), defaultSchema, 1)
		units = append(units, engine.NewUnit(statements, path, 1, true, isDown))
	}

	return units, nil
}
