// Package normalize provides text normalization for search input.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// SearchTerm canonicalizes a raw search query: null bytes are dropped,
// accented characters are decomposed to their ASCII base (so "Café"
// matches "cafe"), combining marks are removed, and the result is
// lowercased and trimmed.
func SearchTerm(raw string) string {
	s := sanitizeString(raw)

	// Decompose accented characters, then drop the combining marks.
	s = norm.NFKD.String(s)
	s = strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Mn, r) {
			return -1
		}
		return r
	}, s)

	return strings.ToLower(strings.TrimSpace(s))
}

// sanitizeString removes null bytes, which can cause issues in the
// database layer and in JSON parsing.
func sanitizeString(s string) string {
	return strings.Map(func(r rune) rune {
		if r == 0 {
			return -1
		}
		return r
	}, s)
}
