package textutil

import (
	"strings"
	"unicode"
)

// significantWordMinLen filters out articles and other short connective words
// when checking title overlap.
const significantWordMinLen = 3

// SignificantWords returns the lowercased words of value with at least
// significantWordMinLen characters.
func SignificantWords(value string) []string {
	fields := strings.FieldsFunc(strings.ToLower(StripDiacritics(value)), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	words := make([]string, 0, len(fields))
	for _, field := range fields {
		if len([]rune(field)) >= significantWordMinLen {
			words = append(words, field)
		}
	}
	return words
}

// SharesSignificantWord reports whether two strings have at least one
// significant word in common.
func SharesSignificantWord(a, b string) bool {
	wordsA := SignificantWords(a)
	if len(wordsA) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(wordsA))
	for _, w := range wordsA {
		set[w] = struct{}{}
	}
	for _, w := range SignificantWords(b) {
		if _, ok := set[w]; ok {
			return true
		}
	}
	return false
}
