package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// StripDiacritics removes combining marks so "Almodóvar" compares equal to
// "Almodovar". Input is returned unchanged if the transform fails.
func StripDiacritics(value string) string {
	out, _, err := transform.String(diacriticStripper, value)
	if err != nil {
		return value
	}
	return out
}

// FoldName normalizes a person or group name for comparison: diacritics
// stripped, lowercased, punctuation dropped, whitespace collapsed.
func FoldName(value string) string {
	value = StripDiacritics(strings.TrimSpace(value))
	var b strings.Builder
	b.Grow(len(value))
	lastSpace := false
	for _, r := range strings.ToLower(value) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		case unicode.IsSpace(r):
			if !lastSpace && b.Len() > 0 {
				b.WriteByte(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// NormalizeForComparison reduces a title to a bare comparison key: symbols
// mapped to words, diacritics stripped, everything but letters and digits
// removed.
func NormalizeForComparison(value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	normalized := strings.ToLower(StripDiacritics(value))
	normalized = strings.ReplaceAll(normalized, "&", "and")
	normalized = strings.ReplaceAll(normalized, "+", "and")

	var b strings.Builder
	for _, r := range normalized {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
