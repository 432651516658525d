package resolve

import (
	"fmt"
)

// Record is the propagation view of one screening row: its canonical
// binding when resolved plus the enrichment fields propagation may fill.
type Record struct {
	ID          int64
	MovieID     int64
	Director    string
	Year        int
	ReleaseDate string
	Synopsis    string
	Genres      []string
	IMDBID      string
}

// Resolved reports whether the record carries a canonical binding.
func (r *Record) Resolved() bool {
	return r != nil && r.MovieID > 0
}

func (r *Record) groupYear() int {
	if year := releaseYear(r.ReleaseDate); year > 0 {
		return year
	}
	return r.Year
}

// Propagate fills unresolved records in place from resolved siblings that
// share a (director, release year) signature. A group with two or more
// distinct canonical IDs among its resolved members is ambiguous and is left
// untouched. Running Propagate twice over the same records is a no-op.
func Propagate(records []*Record) {
	groups := make(map[string][]*Record)
	for _, record := range records {
		if record == nil || record.Director == "" {
			continue
		}
		year := record.groupYear()
		if year == 0 {
			continue
		}
		key := fmt.Sprintf("%s|%d", canonicalDirector(record.Director), year)
		groups[key] = append(groups[key], record)
	}

	for _, group := range groups {
		var source *Record
		ambiguous := false
		for _, record := range group {
			if !record.Resolved() {
				continue
			}
			if source == nil {
				source = record
				continue
			}
			if record.MovieID != source.MovieID {
				ambiguous = true
				break
			}
		}
		if source == nil || ambiguous {
			continue
		}

		for _, record := range group {
			if record.Resolved() {
				continue
			}
			record.MovieID = source.MovieID
			if record.ReleaseDate == "" {
				record.ReleaseDate = source.ReleaseDate
			}
			if record.Synopsis == "" {
				record.Synopsis = source.Synopsis
			}
			if len(record.Genres) == 0 {
				record.Genres = append([]string(nil), source.Genres...)
			}
			if record.IMDBID == "" {
				record.IMDBID = source.IMDBID
			}
			record.Director = source.Director
		}
	}
}
