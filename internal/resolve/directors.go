package resolve

import (
	"strings"

	"marquee/internal/textutil"
)

// directorAliases maps folded director names to the folded form the catalog
// uses. Venue listings credit a handful of directors under informal names;
// the table is deliberately explicit rather than a general nickname
// expansion, which would over-match short names.
var directorAliases = map[string]string{
	"charlie chaplin": "charles chaplin",
}

// canonicalDirector folds a director name for comparison and grouping,
// collapsing known aliases onto one form.
func canonicalDirector(name string) string {
	folded := textutil.FoldName(name)
	if alias, ok := directorAliases[folded]; ok {
		return alias
	}
	return folded
}

// DirectorsMatch reports whether a venue-supplied director name matches any
// of a candidate's credited directors. Matching is case and diacritic
// insensitive and accepts substring containment in either direction, so
// "Kurosawa" matches "Akira Kurosawa".
func DirectorsMatch(supplied string, credited []string) bool {
	want := canonicalDirector(supplied)
	if want == "" {
		return false
	}
	for _, name := range credited {
		got := canonicalDirector(name)
		if got == "" {
			continue
		}
		if got == want || strings.Contains(got, want) || strings.Contains(want, got) {
			return true
		}
	}
	return false
}
