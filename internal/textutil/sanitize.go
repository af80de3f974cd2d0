package textutil

import (
	"strings"
	"unicode"
)

// SanitizeFileName makes name safe to use as a single path element. Path
// separators, colons and asterisks become dashes. Quotes, angle brackets,
// pipes, question marks and control characters are dropped.
func SanitizeFileName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == '*':
			return '-'
		case strings.ContainsRune(`?"<>|`, r), unicode.IsControl(r):
			return -1
		}
		return r
	}, strings.TrimSpace(name))
	return strings.TrimSpace(cleaned)
}
