// Package ingest loads screening exports produced by the scraping
// collaborators into the row store.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"marquee/internal/logging"
	"marquee/internal/services"
	"marquee/internal/store"
)

// Record is the JSON shape of one scraped screening. Unknown fields are
// ignored so scraper-side additions do not break older binaries.
type Record struct {
	Cinema         string `json:"cinema"`
	FilmTitle      string `json:"filmTitle"`
	ScreeningStart string `json:"screeningStart"`
	Director       string `json:"director,omitempty"`
	WebsiteYear    int    `json:"websiteYear,omitempty"`
	ReleaseDate    string `json:"releaseDate,omitempty"`
}

// Summary reports what an ingest run did.
type Summary struct {
	Total     int
	Inserted  int
	Duplicate int
	Invalid   int
}

// File ingests a JSON export from disk.
func File(ctx context.Context, st *store.Store, path string, logger *slog.Logger) (Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return Summary{}, services.Wrap(services.ErrValidation, "ingest", "open", fmt.Sprintf("open export %s", path), err)
	}
	defer f.Close()
	return Reader(ctx, st, f, logger)
}

// Reader ingests a JSON array of records. Rows missing required fields or
// carrying unparseable timestamps are counted and skipped, never fatal.
func Reader(ctx context.Context, st *store.Store, r io.Reader, logger *slog.Logger) (Summary, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "ingest")

	var records []Record
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&records); err != nil {
		return Summary{}, services.Wrap(services.ErrValidation, "ingest", "decode", "parse screening export", err)
	}

	summary := Summary{Total: len(records)}
	for _, record := range records {
		row, err := toScreening(record)
		if err != nil {
			summary.Invalid++
			logger.Warn("skipping invalid record",
				logging.String(logging.FieldCinema, record.Cinema),
				logging.String("film_title", record.FilmTitle),
				logging.Error(err))
			continue
		}

		inserted, err := st.Insert(ctx, row)
		if err != nil {
			return summary, fmt.Errorf("insert %q: %w", row.FilmTitle, err)
		}
		if inserted {
			summary.Inserted++
		} else {
			summary.Duplicate++
		}
	}

	logger.Info("ingest complete",
		logging.Int("total", summary.Total),
		logging.Int("inserted", summary.Inserted),
		logging.Int("duplicates", summary.Duplicate),
		logging.Int("invalid", summary.Invalid))
	return summary, nil
}

func toScreening(record Record) (*store.Screening, error) {
	cinema := strings.TrimSpace(record.Cinema)
	title := strings.TrimSpace(record.FilmTitle)
	if cinema == "" {
		return nil, fmt.Errorf("missing cinema")
	}
	if title == "" {
		return nil, fmt.Errorf("missing film title")
	}

	start, err := parseStart(record.ScreeningStart)
	if err != nil {
		return nil, err
	}

	return &store.Screening{
		Cinema:         cinema,
		FilmTitle:      title,
		ScreeningStart: start,
		Director:       strings.TrimSpace(record.Director),
		WebsiteYear:    record.WebsiteYear,
		ReleaseDate:    strings.TrimSpace(record.ReleaseDate),
	}, nil
}

func parseStart(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("missing screening start")
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02 15:04"} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable screening start %q", raw)
}
