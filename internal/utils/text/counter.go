// Package text provides small helpers for cleaning up text from the news API
// before it is displayed or used as a cache key.
package text

import "strings"

// CountRunes counts Unicode characters rather than bytes, so that titles in
// any script are measured the same way.
//
//	CountRunes("hello")  // 5
//	CountRunes("日本語")  // 3
func CountRunes(s string) int {
	return len([]rune(s))
}

// CollapseSpace trims s and replaces every run of whitespace with one space.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate shortens s to at most max runes, ending with an ellipsis when cut.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
