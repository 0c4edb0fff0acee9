// SPDX-License-Identifier: Apache-2.0

package fakeparse

import "strings"

func isIdentByte(c byte) bool {
	return c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}

// indexWord finds the first standalone (word-boundary) occurrence of an
// already-uppercased keyword inside an already-uppercased haystack.
func indexWord(upperHaystack, upperKeyword string) int {
	start := 0
	for {
		idx := strings.Index(upperHaystack[start:], upperKeyword)
		if idx < 0 {
			return -1
		}
		abs := start + idx
		before := abs == 0 || !isIdentByte(upperHaystack[abs-1])
		afterPos := abs + len(upperKeyword)
		after := afterPos >= len(upperHaystack) || !isIdentByte(upperHaystack[afterPos])
		if before && after {
			return abs
		}
		start = abs + 1
	}
}

func hasPrefixWord(upper, keyword string) bool {
	return indexWord(upper, keyword) == 0
}

// afterKeyword returns the text following the first standalone
// occurrence of keyword in s, or "", false if keyword does not occur.
func afterKeyword(s, keyword string) (string, bool) {
	upper := strings.ToUpper(s)
	idx := indexWord(upper, strings.ToUpper(keyword))
	if idx < 0 {
		return "", false
	}
	return s[idx+len(keyword):], true
}

// trimLeadingWord removes a case-insensitive leading keyword (and
// surrounding whitespace) from s if present.
func trimLeadingWord(s, keyword string) string {
	trimmed := strings.TrimSpace(s)
	upper := strings.ToUpper(trimmed)
	if hasPrefixWord(upper, strings.ToUpper(keyword)) {
		return strings.TrimSpace(trimmed[len(keyword):])
	}
	return trimmed
}

// firstToken returns the first identifier-like token in s and the
// remainder of the string after it.
func firstToken(s string) (token string, rest string) {
	s = strings.TrimSpace(s)
	i := 0
	for i < len(s) && (isIdentByte(s[i]) || s[i] == '.' || s[i] == '"') {
		i++
	}
	return s[:i], s[i:]
}
