// SPDX-License-Identifier: Apache-2.0

package fakeparse

import "strings"

// splitTopLevel splits s on sep, ignoring separators nested inside
// parentheses or single-quoted strings.
func splitTopLevel(s string, sep byte) []string {
	var out []string
	var b strings.Builder
	depth := 0
	inQuote := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
		case c == '(' && !inQuote:
			depth++
		case c == ')' && !inQuote:
			if depth > 0 {
				depth--
			}
		case c == sep && !inQuote && depth == 0:
			out = append(out, b.String())
			b.Reset()
			continue
		}
		b.WriteByte(c)
	}
	out = append(out, b.String())
	return out
}

// matchParens returns the substring between the first top-level '(' and
// its matching ')', and the text that followed the close paren.
func matchParens(s string) (inner string, rest string, ok bool) {
	start := strings.IndexByte(s, '(')
	if start < 0 {
		return "", s, false
	}
	depth := 0
	inQuote := false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
		case c == '(' && !inQuote:
			depth++
		case c == ')' && !inQuote:
			depth--
			if depth == 0 {
				return s[start+1 : i], s[i+1:], true
			}
		}
	}
	return "", s, false
}

func fields(s string) []string {
	return strings.Fields(s)
}

func containsWord(fs []string, word string) bool {
	for _, f := range fs {
		if strings.EqualFold(f, word) {
			return true
		}
	}
	return false
}

func indexOfWord(fs []string, word string) int {
	for i, f := range fs {
		if strings.EqualFold(f, word) {
			return i
		}
	}
	return -1
}
