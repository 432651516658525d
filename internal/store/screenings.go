package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ListOptions narrows the rows returned by List.
type ListOptions struct {
	// MissingRatingOnly restricts the result to rows without a stored rating.
	MissingRatingOnly bool
	// Cinema restricts the result to one cinema when non-empty.
	Cinema string
	// Limit caps the number of rows when positive.
	Limit int
}

// Insert persists one screening row. Rows that repeat an existing
// (cinema, film_title, screening_start) triple are ignored so that ingesting
// the same export twice does not duplicate work; the returned bool is false
// for such duplicates.
func (s *Store) Insert(ctx context.Context, row *Screening) (bool, error) {
	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)

	res, err := s.db.ExecContext(
		ctx,
		`INSERT OR IGNORE INTO screenings (
            cinema, film_title, screening_start, director, website_year, release_date,
            created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		row.Cinema,
		row.FilmTitle,
		row.ScreeningStart.UTC().Format(time.RFC3339Nano),
		nullableString(row.Director),
		nullableInt(row.WebsiteYear),
		nullableString(row.ReleaseDate),
		timestamp,
		timestamp,
	)
	if err != nil {
		return false, fmt.Errorf("insert screening: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return false, nil
	}

	row.ID, err = res.LastInsertId()
	if err != nil {
		return false, fmt.Errorf("last insert id: %w", err)
	}
	row.CreatedAt = now
	row.UpdatedAt = now
	return true, nil
}

// GetByID fetches one row, or nil when it does not exist.
func (s *Store) GetByID(ctx context.Context, id int64) (*Screening, error) {
	row, err := scanScreening(s.db.QueryRowContext(
		ctx,
		"SELECT "+screeningColumns+" FROM screenings WHERE id = ?",
		id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get screening %d: %w", id, err)
	}
	return row, nil
}

// List returns rows matching the options, ordered by id for deterministic
// runs.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]*Screening, error) {
	var (
		clauses []string
		args    []any
	)
	if opts.MissingRatingOnly {
		clauses = append(clauses, "rating IS NULL")
	}
	if opts.Cinema != "" {
		clauses = append(clauses, "cinema = ?")
		args = append(args, opts.Cinema)
	}

	query := "SELECT " + screeningColumns + " FROM screenings"
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY id"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list screenings: %w", err)
	}
	defer rows.Close()

	var result []*Screening
	for rows.Next() {
		row, scanErr := scanScreening(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan screening: %w", scanErr)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate screenings: %w", err)
	}
	return result, nil
}

// ApplyChunk commits one chunk's identity bindings and rating updates in a
// single transaction. Either every update in the chunk lands or none does,
// so an interrupted run can resume from the last committed chunk.
func (s *Store) ApplyChunk(ctx context.Context, identities []IdentityUpdate, ratings []RatingUpdate) error {
	if len(identities) == 0 && len(ratings) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin chunk tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	timestamp := time.Now().UTC().Format(time.RFC3339Nano)

	for _, update := range identities {
		if _, err := tx.ExecContext(
			ctx,
			`UPDATE screenings SET
                movie_id = ?,
                director = ?,
                release_date = ?,
                synopsis = ?,
                genres_json = ?,
                imdb_id = ?,
                updated_at = ?
            WHERE id = ?`,
			nullableInt64(update.MovieID),
			nullableString(update.Director),
			nullableString(update.ReleaseDate),
			nullableString(update.Synopsis),
			encodeGenres(update.Genres),
			nullableString(update.IMDBID),
			timestamp,
			update.RecordID,
		); err != nil {
			return fmt.Errorf("apply identity for row %d: %w", update.RecordID, err)
		}
	}

	for _, update := range ratings {
		var ratingValue any
		if update.Rating != nil {
			ratingValue = *update.Rating
		}
		if _, err := tx.ExecContext(
			ctx,
			`UPDATE screenings SET
                rating = ?,
                rating_url = ?,
                updated_at = ?
            WHERE movie_id = ?`,
			ratingValue,
			nullableString(update.RatingURL),
			timestamp,
			update.MovieID,
		); err != nil {
			return fmt.Errorf("apply rating for movie %d: %w", update.MovieID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit chunk: %w", err)
	}
	return nil
}

// Summaries aggregates per-cinema counts for status output.
func (s *Store) Summaries(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT cinema,
               COUNT(1),
               SUM(CASE WHEN movie_id IS NOT NULL THEN 1 ELSE 0 END),
               SUM(CASE WHEN rating IS NOT NULL THEN 1 ELSE 0 END)
        FROM screenings
        GROUP BY cinema
        ORDER BY cinema`)
	if err != nil {
		return nil, fmt.Errorf("summarize screenings: %w", err)
	}
	defer rows.Close()

	var result []Summary
	for rows.Next() {
		var summary Summary
		if err := rows.Scan(&summary.Cinema, &summary.Total, &summary.Resolved, &summary.Rated); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		result = append(result, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate summaries: %w", err)
	}
	return result, nil
}
