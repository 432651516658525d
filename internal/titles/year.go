package titles

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Cinema first opened its doors in 1895; nothing earlier is a release year.
const earliestReleaseYear = 1895

var (
	trailingBracketYearPattern = regexp.MustCompile(`[(\[](\d{4})[)\]]\s*$`)
	trailingDashYearPattern    = regexp.MustCompile(`[-–]\s*(\d{4})\s*$`)
	anyBracketYearPattern      = regexp.MustCompile(`[(\[](\d{4})[)\]]`)
)

// Normalized is the search-ready form of a raw listing title.
type Normalized struct {
	Title string
	Year  int
}

// Derive normalizes a raw title and extracts a year hint. The hint prefers a
// year annotated on the title itself; failing that it falls back to the
// supplied release date or the venue page's stated year, when plausible.
func Derive(raw, releaseDate string, websiteYear int) Normalized {
	return Normalized{
		Title: Normalize(raw),
		Year:  YearHint(raw, releaseDate, websiteYear),
	}
}

// YearHint extracts the most trustworthy year annotation available. Returns 0
// when nothing plausible is found.
func YearHint(raw, releaseDate string, websiteYear int) int {
	trimmed := strings.TrimSpace(raw)
	for _, pattern := range []*regexp.Regexp{trailingBracketYearPattern, trailingDashYearPattern, anyBracketYearPattern} {
		if matches := pattern.FindStringSubmatch(trimmed); len(matches) == 2 {
			if year := plausibleYear(matches[1]); year > 0 {
				return year
			}
		}
	}
	if year := plausibleYear(yearFromDate(releaseDate)); year > 0 {
		return year
	}
	if websiteYear >= earliestReleaseYear && websiteYear <= time.Now().Year()+1 {
		return websiteYear
	}
	return 0
}

// yearFromDate extracts a 4-character year prefix from a date string
// (e.g. "1977-11-14" -> "1977").
func yearFromDate(date string) string {
	date = strings.TrimSpace(date)
	if len(date) >= 4 {
		return date[:4]
	}
	return ""
}

func plausibleYear(value string) int {
	year, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	if year < earliestReleaseYear || year > time.Now().Year()+1 {
		return 0
	}
	return year
}
