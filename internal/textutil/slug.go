package textutil

import (
	"strings"
	"unicode"
)

// Slug converts a title to the lowercase hyphenated form used in
// rating-source page paths. Diacritics are stripped and runs of
// non-alphanumeric characters collapse to a single hyphen.
func Slug(value string) string {
	value = strings.ToLower(StripDiacritics(strings.TrimSpace(value)))
	var b strings.Builder
	b.Grow(len(value))
	lastHyphen := false
	for _, r := range value {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen && b.Len() > 0 {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
