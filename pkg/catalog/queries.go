// SPDX-License-Identifier: Apache-2.0

package catalog

import "sort"

// HasCoveringIndex reports whether some index's leading entries (in
// order) equal fkColumns, the index is not partial, not ONLY, and every
// leading entry is a plain column (never an expression). Used by the
// foreign-key-without-covering-index rule.
func (t *TableState) HasCoveringIndex(fkColumns []string) bool {
	for _, ix := range t.Indexes {
		if ix.Where.IsSpecified() && !ix.Where.IsNull() {
			continue
		}
		if ix.Only {
			continue
		}
		cols, allPlain := ix.leadingColumns()
		if !allPlain {
			continue
		}
		if len(cols) < len(fkColumns) {
			continue
		}
		if stringsEqualPrefix(cols, fkColumns) {
			return true
		}
	}
	return false
}

func stringsEqualPrefix(cols, prefix []string) bool {
	for i, c := range prefix {
		if cols[i] != c {
			return false
		}
	}
	return true
}

// HasUniqueCovering reports whether some unique index matches columns
// exactly in order, or some Unique constraint matches the set of columns
// (order-independent).
func (t *TableState) HasUniqueCovering(columns []string) bool {
	for _, ix := range t.Indexes {
		if !ix.Unique {
			continue
		}
		cols, allPlain := ix.leadingColumns()
		if !allPlain || len(cols) != len(columns) {
			continue
		}
		if stringsEqualPrefix(cols, columns) {
			return true
		}
	}
	for _, c := range t.Constraints {
		u, ok := c.(Unique)
		if !ok {
			continue
		}
		if sameColumnSet(u.Columns, columns) {
			return true
		}
	}
	return false
}

func sameColumnSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	sa := append([]string(nil), a...)
	sb := append([]string(nil), b...)
	sort.Strings(sa)
	sort.Strings(sb)
	for i := range sa {
		if sa[i] != sb[i] {
			return false
		}
	}
	return true
}

// HasUniqueNotNull reports whether some Unique constraint's columns are
// all non-nullable.
func (t *TableState) HasUniqueNotNull() bool {
	for _, c := range t.Constraints {
		u, ok := c.(Unique)
		if !ok {
			continue
		}
		allNotNull := true
		for _, colName := range u.Columns {
			col := t.GetColumn(colName)
			if col == nil || col.Nullable {
				allNotNull = false
				break
			}
		}
		if allNotNull && len(u.Columns) > 0 {
			return true
		}
	}
	return false
}

// ConstraintsInvolvingColumn returns every constraint whose column list
// contains the given column. A Check constraint is matched through its
// referenced-columns list; an Exclude constraint carries no column list
// and is never matched.
func (t *TableState) ConstraintsInvolvingColumn(col string) []Constraint {
	var out []Constraint
	for _, c := range t.Constraints {
		if containsColumn(columnsOf(c), col) {
			out = append(out, c)
		}
	}
	return out
}

// IndexesInvolvingColumn returns every index that references the given
// column, either as a plain column entry or via an expression's
// referenced-columns list.
func (t *TableState) IndexesInvolvingColumn(col string) []IndexState {
	var out []IndexState
	for _, ix := range t.Indexes {
		if ix.referencesColumn(col) {
			out = append(out, ix)
		}
	}
	return out
}

// RemoveColumn removes the column, removes any index referencing it,
// removes any PK/FK/Unique constraint whose column list contains it, and
// recomputes HasPrimaryKey. Check and Exclude constraints are preserved,
// mirroring PostgreSQL's own DROP COLUMN behavior for those kinds.
// Callers must unregister the removed indexes from the catalog's
// name-to-table reverse map themselves (e.g. via IndexesInvolvingColumn
// before calling this), since TableState has no back-reference to do it.
func (t *TableState) RemoveColumn(name string) {
	for i, col := range t.Columns {
		if col.Name == name {
			t.Columns = append(t.Columns[:i], t.Columns[i+1:]...)
			break
		}
	}

	kept := t.Indexes[:0:0]
	for _, ix := range t.Indexes {
		if !ix.referencesColumn(name) {
			kept = append(kept, ix)
		}
	}
	t.Indexes = kept

	keptConstraints := t.Constraints[:0:0]
	for _, c := range t.Constraints {
		switch v := c.(type) {
		case PrimaryKey:
			if !containsColumn(v.Columns, name) {
				keptConstraints = append(keptConstraints, c)
			}
		case ForeignKey:
			if !containsColumn(v.Columns, name) {
				keptConstraints = append(keptConstraints, c)
			}
		case Unique:
			if !containsColumn(v.Columns, name) {
				keptConstraints = append(keptConstraints, c)
			}
		default:
			// Check and Exclude constraints are preserved unconditionally.
			keptConstraints = append(keptConstraints, c)
		}
	}
	t.Constraints = keptConstraints

	t.recomputeHasPrimaryKey()
}
