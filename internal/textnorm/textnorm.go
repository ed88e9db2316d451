// Package textnorm cleans raw multilingual scripture text. It preserves
// Devanagari script and essential punctuation while stripping noise left
// over from OCR and scraping.
package textnorm

import (
	"regexp"
	"strings"
)

var (
	// Characters allowed to survive normalization: letters, digits,
	// underscore, whitespace, basic punctuation, the Devanagari block
	// (U+0900-U+097F, which includes the danda marks and vowel signs).
	disallowed = regexp.MustCompile(`[^\p{L}\p{N}_\s.,;:!?\-'"` + "ऀ-ॿ" + `]`)

	multiDot   = regexp.MustCompile(`\.{2,}`)
	multiComma = regexp.MustCompile(`,{2,}`)
	multiDanda = regexp.MustCompile(`।{2,}`)
	spaces     = regexp.MustCompile(`\s+`)
)

// Normalize cleans a raw string for indexing and matching. It never fails;
// empty input yields an empty string. The function is pure and idempotent:
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	s := disallowed.ReplaceAllString(raw, " ")

	s = multiDot.ReplaceAllString(s, ".")
	s = multiComma.ReplaceAllString(s, ",")
	s = multiDanda.ReplaceAllString(s, "।")

	s = spaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// FoldCase lowercases ASCII letters while leaving Devanagari and other
// scripts untouched. Used to build lexical search text.
func FoldCase(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}
