// ABOUTME: Plain-text helpers shared by the extractors
// ABOUTME: Word counting and excerpt slicing over extracted text content

package text

import (
	"strings"
	"unicode/utf8"
)

// WordCount returns the number of whitespace-separated tokens in s.
// Empty or all-whitespace input counts as zero words.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// Excerpt returns the first n characters of s. Characters are runes, so
// multi-byte text is never cut mid-character.
func Excerpt(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
