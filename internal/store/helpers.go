package store

import (
	"database/sql"
	"encoding/json"
	"strings"
	"time"
)

const screeningColumns = "id, cinema, film_title, screening_start, director, website_year, release_date, movie_id, synopsis, genres_json, imdb_id, rating, rating_url, created_at, updated_at"

func scanScreening(scanner interface{ Scan(dest ...any) error }) (*Screening, error) {
	var (
		id          int64
		cinema      string
		filmTitle   string
		startRaw    string
		director    sql.NullString
		websiteYear sql.NullInt64
		releaseDate sql.NullString
		movieID     sql.NullInt64
		synopsis    sql.NullString
		genresJSON  sql.NullString
		imdbID      sql.NullString
		rating      sql.NullFloat64
		ratingURL   sql.NullString
		createdRaw  string
		updatedRaw  string
	)

	if err := scanner.Scan(
		&id,
		&cinema,
		&filmTitle,
		&startRaw,
		&director,
		&websiteYear,
		&releaseDate,
		&movieID,
		&synopsis,
		&genresJSON,
		&imdbID,
		&rating,
		&ratingURL,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	row := &Screening{
		ID:          id,
		Cinema:      cinema,
		FilmTitle:   filmTitle,
		Director:    director.String,
		WebsiteYear: int(websiteYear.Int64),
		ReleaseDate: releaseDate.String,
		MovieID:     movieID.Int64,
		Synopsis:    synopsis.String,
		IMDBID:      imdbID.String,
		RatingURL:   ratingURL.String,
	}
	row.ScreeningStart = parseTimestamp(startRaw)
	row.CreatedAt = parseTimestamp(createdRaw)
	row.UpdatedAt = parseTimestamp(updatedRaw)
	if rating.Valid {
		value := rating.Float64
		row.Rating = &value
	}
	if genresJSON.Valid && genresJSON.String != "" {
		if err := json.Unmarshal([]byte(genresJSON.String), &row.Genres); err != nil {
			row.Genres = nil
		}
	}
	return row, nil
}

func parseTimestamp(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return ts
	}
	return time.Time{}
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}

func nullableInt(value int) any {
	if value == 0 {
		return nil
	}
	return value
}

func nullableInt64(value int64) any {
	if value == 0 {
		return nil
	}
	return value
}

func encodeGenres(genres []string) any {
	if len(genres) == 0 {
		return nil
	}
	data, err := json.Marshal(genres)
	if err != nil {
		return nil
	}
	return string(data)
}
