// SPDX-License-Identifier: Apache-2.0

package ir

import "github.com/oapi-codegen/nullable"

// GetOpt reads a nullable.Nullable[T], returning (zero, false) when the
// value is unset or was explicitly set to null. It exists so callers
// never need to reason about nullable's tri-state (unset/null/value)
// directly — for this engine's purposes, null and unset are
// indistinguishable ("nothing to resolve").
func GetOpt[T any](n nullable.Nullable[T]) (T, bool) {
	var zero T
	if !n.IsSpecified() || n.IsNull() {
		return zero, false
	}
	return n.MustGet(), true
}
