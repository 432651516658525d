package resolve

import (
	"strconv"

	"marquee/internal/catalog"
)

// Identity is the accepted binding of a screening record to a canonical
// catalog movie.
type Identity struct {
	MovieID     int64
	Title       string
	ReleaseDate string
	Director    string
	Synopsis    string
	Genres      []string
	IMDBID      string
}

// identityFromDetails builds an Identity from a catalog detail fetch.
func identityFromDetails(details *catalog.Details) *Identity {
	directors := details.Directors()
	director := ""
	if len(directors) > 0 {
		director = directors[0]
	}
	return &Identity{
		MovieID:     details.ID,
		Title:       details.Title,
		ReleaseDate: details.ReleaseDate,
		Director:    director,
		Synopsis:    details.Overview,
		Genres:      details.GenreNames(),
		IMDBID:      details.ExternalIDs.IMDBID,
	}
}

// ReleaseYear returns the year component of the release date, or zero.
func (i *Identity) ReleaseYear() int {
	if i == nil || len(i.ReleaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(i.ReleaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}
