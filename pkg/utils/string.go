// Package utils provides text helpers shared by the normalizer and exporter.
package utils

import "unicode/utf8"

// Truncate cuts str to at most maxRunes characters. Multi-byte characters are
// never split.
func Truncate(str string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}

	if utf8.RuneCountInString(str) <= maxRunes {
		return str
	}

	runes := []rune(str)

	return string(runes[:maxRunes])
}

// RuneLen returns the number of characters in str.
func RuneLen(str string) int {
	return utf8.RuneCountInString(str)
}
