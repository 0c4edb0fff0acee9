// SPDX-License-Identifier: Apache-2.0

package rules

import (
	"strconv"
	"strings"

	"github.com/pglint/pglint/pkg/severity"
)

// parseTypeArgs splits a type name like "numeric(10,2)" into its base
// name and parenthesized argument list. Types with no parenthesized
// arguments return a nil arg list.
func parseTypeArgs(t string) (base string, args []string) {
	t = normalizeType(t)
	open := strings.IndexByte(t, '(')
	if open < 0 {
		return t, nil
	}
	closeParen := strings.LastIndexByte(t, ')')
	if closeParen < open {
		return strings.TrimSpace(t[:open]), nil
	}
	base = strings.TrimSpace(t[:open])
	for _, p := range strings.Split(t[open+1:closeParen], ",") {
		args = append(args, strings.TrimSpace(p))
	}
	return base, args
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// alterColumnTypeSafety classifies an ALTER COLUMN ... TYPE change per the
// fixed set of known-safe casts; everything not explicitly recognized is
// unsafe.
func alterColumnTypeSafety(oldType, newType string) severity.CastSafetyClass {
	oldBase, oldArgs := parseTypeArgs(oldType)
	newBase, newArgs := parseTypeArgs(newType)

	isVarchar := func(b string) bool { return b == "varchar" || b == "character varying" }

	switch {
	case isVarchar(oldBase) && isVarchar(newBase):
		if len(oldArgs) == 1 && len(newArgs) == 1 {
			if atoiOrZero(newArgs[0]) >= atoiOrZero(oldArgs[0]) {
				return severity.CastSafe
			}
		}
		return severity.CastUnsafe
	case isVarchar(oldBase) && newBase == "text":
		return severity.CastSafe
	case oldBase == "numeric" && newBase == "numeric":
		if len(oldArgs) == 2 && len(newArgs) == 2 &&
			atoiOrZero(newArgs[0]) >= atoiOrZero(oldArgs[0]) &&
			atoiOrZero(newArgs[1]) == atoiOrZero(oldArgs[1]) {
			return severity.CastSafe
		}
		return severity.CastUnsafe
	case oldBase == "bit" && newBase == "bit":
		if len(oldArgs) == 1 && len(newArgs) == 1 && atoiOrZero(newArgs[0]) >= atoiOrZero(oldArgs[0]) {
			return severity.CastSafe
		}
		return severity.CastUnsafe
	case oldBase == "varbit" && newBase == "varbit":
		if len(oldArgs) == 1 && len(newArgs) == 1 && atoiOrZero(newArgs[0]) >= atoiOrZero(oldArgs[0]) {
			return severity.CastSafe
		}
		return severity.CastUnsafe
	case oldBase == "timestamp" && newBase == "timestamptz":
		return severity.CastInfo
	default:
		return severity.CastUnsafe
	}
}
