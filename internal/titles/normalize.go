package titles

import (
	"regexp"
	"strings"
)

// Rule is a single named rewrite applied during normalization. Rules never
// fail; a rule that would leave the title empty returns its input unchanged.
type Rule struct {
	Name  string
	apply func(string) string
}

var (
	whitespacePattern = regexp.MustCompile(`\s+`)

	// "Studio Ghibli Forever presents: Spirited Away" -> keep what follows.
	presentsPattern = regexp.MustCompile(`(?i)^.*?\bpresents\s*:\s*`)

	// Screening-type prefixes venues prepend to the film title.
	prefixPattern = regexp.MustCompile(`(?i)^(?:preview|members'? screening|relaxed screening|parent (?:&|and) baby screening|kids'? club|senior screening)\s*:\s*`)

	// Parenthetical and bracketed annotations: "(35mm)", "[Subtitled]", "(1977)".
	bracketPattern = regexp.MustCompile(`\s*[(\[][^)\]]*[)\]]`)

	// Trailing marketing decoration, possibly preceded by a separator.
	suffixPattern = regexp.MustCompile(`(?i)\s*[-–:+]?\s*(?:\d+(?:th|st|nd|rd)\s+anniversary(?:\s+(?:edition|restoration|screening))?|(?:4k|2k)(?:\s+restoration)?|restoration|restored|re-?release|director'?s\s+cut|extended\s+cut|final\s+cut|uncut|preview|q\s*&\s*a(?:\s+screening)?|sing-?along)\s*$`)

	// Trailing BBFC-style certificates.
	certPattern = regexp.MustCompile(`(?i)\s+(?:U|PG|12A?|15|18|R18)\s*$`)
)

// Rules is the ordered rewrite list applied by Normalize.
var Rules = []Rule{
	{Name: "presents-marker", apply: func(s string) string {
		return presentsPattern.ReplaceAllString(s, "")
	}},
	{Name: "screening-prefix", apply: func(s string) string {
		return prefixPattern.ReplaceAllString(s, "")
	}},
	{Name: "bracketed-annotations", apply: func(s string) string {
		return bracketPattern.ReplaceAllString(s, " ")
	}},
	{Name: "trailing-year", apply: func(s string) string {
		return trailingDashYearPattern.ReplaceAllString(s, "")
	}},
	{Name: "marketing-suffix", apply: stripMarketingSuffixes},
	{Name: "certificate", apply: func(s string) string {
		return certPattern.ReplaceAllString(s, "")
	}},
	{Name: "collapse-whitespace", apply: func(s string) string {
		return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
	}},
}

// Normalize strips promotional and venue decoration from a raw listing title.
// It is total (never fails) and idempotent.
func Normalize(raw string) string {
	title := strings.TrimSpace(raw)
	for _, rule := range Rules {
		next := strings.TrimSpace(rule.apply(title))
		if next == "" {
			continue
		}
		title = next
	}
	return title
}

// stripMarketingSuffixes removes trailing decoration until no pattern
// matches, so stacked suffixes like "4K Restoration + Q&A" fall away in one
// rule application.
func stripMarketingSuffixes(s string) string {
	for {
		next := suffixPattern.ReplaceAllString(s, "")
		if next == s || strings.TrimSpace(next) == "" {
			return s
		}
		s = next
	}
}
