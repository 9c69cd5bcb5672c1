package query

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Characters stripped from query text during normalization. Hyphens are
// deliberately absent: card names like "tamiyo-s-journal" keep them.
const punctuation = "~`!@#$%^&*(){}[];:\"'<,.>?/\\|_+="

var (
	// Match runs of whitespace
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// CollapseWhitespace reduces internal whitespace runs to single spaces and
// trims the ends.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRuns.ReplaceAllString(s, " "))
}

// Normalize converts raw query text to its canonical searchable form:
//   - Converts to lowercase
//   - Normalizes unicode (removes accents)
//   - Strips punctuation (hyphens are preserved)
//   - Collapses duplicate whitespace
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = removeAccents(s)
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(punctuation, r) {
			return -1
		}
		return r
	}, s)
	return CollapseWhitespace(s)
}

// removeAccents removes diacritical marks from unicode characters.
func removeAccents(s string) string {
	// Decompose unicode characters (NFD normalization)
	result := norm.NFD.String(s)

	// Remove combining characters (accents, diacritics)
	var b strings.Builder
	for _, r := range result {
		if !unicode.Is(unicode.Mn, r) { // Mn = Mark, Nonspacing
			b.WriteRune(r)
		}
	}

	return b.String()
}
