package store

import "time"

// Screening is one persisted screening row: the raw fields captured from a
// cinema website plus the enrichment columns filled in by later runs.
type Screening struct {
	ID             int64
	Cinema         string
	FilmTitle      string
	ScreeningStart time.Time

	// Optional fields scraped from the listing. Empty or zero when the
	// website did not expose them.
	Director    string
	WebsiteYear int
	ReleaseDate string

	// Enrichment columns. MovieID is the canonical catalog identifier; zero
	// means the row is unresolved. Rating is nil until a rating has been
	// extracted for the row's film.
	MovieID   int64
	Synopsis  string
	Genres    []string
	IMDBID    string
	Rating    *float64
	RatingURL string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Resolved reports whether the row has been bound to a canonical movie.
func (s *Screening) Resolved() bool {
	return s != nil && s.MovieID > 0
}

// Rated reports whether a rating has been stored for the row.
func (s *Screening) Rated() bool {
	return s != nil && s.Rating != nil
}

// IdentityUpdate binds one row to a canonical movie and carries the catalog
// metadata that should be written alongside the binding. Values are final:
// the caller has already applied any fill-if-missing rules.
type IdentityUpdate struct {
	RecordID    int64
	MovieID     int64
	Director    string
	ReleaseDate string
	Synopsis    string
	Genres      []string
	IMDBID      string
}

// RatingUpdate records a rating for every row bound to one canonical movie.
type RatingUpdate struct {
	MovieID   int64
	Rating    *float64
	RatingURL string
}

// Summary aggregates row counts for status reporting.
type Summary struct {
	Cinema   string
	Total    int
	Resolved int
	Rated    int
}
