package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"marquee/internal/catalog"
	"marquee/internal/config"
	"marquee/internal/logging"
	"marquee/internal/ratings"
	"marquee/internal/resolve"
	"marquee/internal/services"
	"marquee/internal/store"
	"marquee/internal/titles"
)

// Options controls one enrichment run.
type Options struct {
	// Force widens the work set to every row instead of only rows missing
	// a rating.
	Force bool
	// Cinema restricts the run to one cinema when non-empty.
	Cinema string
	// Limit caps the number of rows pulled into the work set.
	Limit int
	// ChunkSize overrides the configured chunk size when positive.
	ChunkSize int
}

// Summary reports what a run accomplished.
type Summary struct {
	RunID      string
	Rows       int
	Resolved   int
	Unresolved int
	Movies     int
	Rated      int
	NoURL      int
	NoRating   int
	Skipped    int
	Chunks     int
}

// Pipeline wires the resolution stages together over one store.
type Pipeline struct {
	cfg           *config.Config
	store         *store.Store
	disambiguator *resolve.Disambiguator
	resolver      *ratings.Resolver
	cache         *ratings.URLCache
	lock          *flock.Flock
	logger        *slog.Logger
	minDelay      time.Duration
	maxDelay      time.Duration
	rng           *rand.Rand
}

// New constructs the enrichment pipeline. The rating URL cache is loaded
// from disk here and flushed after every committed chunk.
func New(cfg *config.Config, st *store.Store, catalogClient catalog.Searcher, ratingClient *ratings.Client, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}

	cache := ratings.NewURLCache(cfg.RatingCachePath(), logger)
	return &Pipeline{
		cfg:           cfg,
		store:         st,
		disambiguator: resolve.NewDisambiguator(catalogClient, cfg.Enrich.DirectorFetchLimit, logger),
		resolver:      ratings.NewResolver(ratingClient, cache, cfg.Ratings.SearchResults, logger),
		cache:         cache,
		lock:          flock.New(cfg.LockPath()),
		logger:        logging.NewComponentLogger(logger, "enrich"),
		minDelay:      time.Duration(cfg.Enrich.MinDelayMillis) * time.Millisecond,
		maxDelay:      time.Duration(cfg.Enrich.MaxDelayMillis) * time.Millisecond,
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// movieUnit is the per-canonical-ID unit of rating work. Rows sharing a
// canonical ID are enriched together so each external ID is fetched at most
// once per run.
type movieUnit struct {
	movieID int64
	title   string
	year    int
	records []*resolve.Record
}

// Run executes one enrichment pass. Only configuration-class failures abort
// the run; per-item failures are logged and skipped.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*Summary, error) {
	runID := uuid.NewString()
	logger := p.logger.With(logging.String(logging.FieldRunID, runID))

	locked, err := p.lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "enrich", "lock", "acquire run lock", err)
	}
	if !locked {
		return nil, services.Wrap(services.ErrConfiguration, "enrich", "lock", "another enrichment run is active", nil)
	}
	defer func() { _ = p.lock.Unlock() }()

	rows, err := p.store.List(ctx, store.ListOptions{
		MissingRatingOnly: !opts.Force,
		Cinema:            opts.Cinema,
		Limit:             opts.Limit,
	})
	if err != nil {
		return nil, err
	}

	summary := &Summary{RunID: runID, Rows: len(rows)}
	logger.Info("enrichment run starting",
		logging.Int("rows", len(rows)),
		logging.Bool("force", opts.Force))
	if len(rows) == 0 {
		return summary, nil
	}

	records, queries := p.resolveIdentities(ctx, logger, rows, summary)

	resolve.Propagate(records)

	units := groupByMovie(records, queries)
	summary.Movies = len(units)
	for _, record := range records {
		if record.Resolved() {
			summary.Resolved++
		} else {
			summary.Unresolved++
		}
	}

	chunkSize := opts.ChunkSize
	if chunkSize <= 0 {
		chunkSize = p.cfg.Enrich.ChunkSize
	}

	if err := p.processChunks(ctx, logger, units, chunkSize, summary); err != nil {
		return summary, err
	}

	logger.Info("enrichment run complete",
		logging.Int("rows", summary.Rows),
		logging.Int("resolved", summary.Resolved),
		logging.Int("unresolved", summary.Unresolved),
		logging.Int("movies", summary.Movies),
		logging.Int("rated", summary.Rated),
		logging.Int("no_url", summary.NoURL),
		logging.Int("no_rating", summary.NoRating),
		logging.Int("skipped", summary.Skipped),
		logging.Int("chunks", summary.Chunks))
	return summary, nil
}

// resolveIdentities binds unresolved rows to canonical movies. It returns
// the propagation view of every row plus the normalized query each row
// produced, keyed by row ID.
func (p *Pipeline) resolveIdentities(ctx context.Context, logger *slog.Logger, rows []*store.Screening, summary *Summary) ([]*resolve.Record, map[int64]titles.Normalized) {
	records := make([]*resolve.Record, 0, len(rows))
	queries := make(map[int64]titles.Normalized, len(rows))

	for _, row := range rows {
		norm := titles.Derive(row.FilmTitle, row.ReleaseDate, row.WebsiteYear)
		queries[row.ID] = norm

		record := &resolve.Record{
			ID:          row.ID,
			MovieID:     row.MovieID,
			Director:    row.Director,
			Year:        norm.Year,
			ReleaseDate: row.ReleaseDate,
			Synopsis:    row.Synopsis,
			Genres:      row.Genres,
			IMDBID:      row.IMDBID,
		}
		records = append(records, record)

		if record.Resolved() {
			continue
		}

		identity, err := p.disambiguator.Resolve(ctx, resolve.Query{
			Title:    norm.Title,
			Year:     norm.Year,
			Director: row.Director,
		})
		if err != nil {
			summary.Skipped++
			logger.Warn("identity resolution failed",
				logging.String(logging.FieldCinema, row.Cinema),
				logging.String("title", norm.Title),
				logging.Error(err))
			continue
		}
		if identity == nil {
			logger.Info("unresolved",
				logging.String(logging.FieldCinema, row.Cinema),
				logging.String("title", norm.Title),
				logging.String("director", row.Director))
			continue
		}

		record.MovieID = identity.MovieID
		record.Director = identity.Director
		record.ReleaseDate = identity.ReleaseDate
		if record.Synopsis == "" {
			record.Synopsis = identity.Synopsis
		}
		if len(record.Genres) == 0 {
			record.Genres = identity.Genres
		}
		if record.IMDBID == "" {
			record.IMDBID = identity.IMDBID
		}

		logger.Info("resolved",
			logging.String(logging.FieldCinema, row.Cinema),
			logging.String("title", norm.Title),
			logging.Int64(logging.FieldMovieID, identity.MovieID),
			logging.String("canonical_title", identity.Title))
	}

	return records, queries
}

// groupByMovie collects resolved records into per-canonical-ID units in
// first-seen order.
func groupByMovie(records []*resolve.Record, queries map[int64]titles.Normalized) []*movieUnit {
	var (
		units []*movieUnit
		index = make(map[int64]*movieUnit)
	)
	for _, record := range records {
		if !record.Resolved() {
			continue
		}
		unit, ok := index[record.MovieID]
		if !ok {
			norm := queries[record.ID]
			year := norm.Year
			if y := releaseYearOf(record.ReleaseDate); y > 0 {
				year = y
			}
			unit = &movieUnit{movieID: record.MovieID, title: norm.Title, year: year}
			index[record.MovieID] = unit
			units = append(units, unit)
		}
		unit.records = append(unit.records, record)
	}
	return units
}

func (p *Pipeline) processChunks(ctx context.Context, logger *slog.Logger, units []*movieUnit, chunkSize int, summary *Summary) error {
	first := true
	for start := 0; start < len(units); start += chunkSize {
		end := start + chunkSize
		if end > len(units) {
			end = len(units)
		}
		chunk := units[start:end]

		var (
			identityUpdates []store.IdentityUpdate
			ratingUpdates   []store.RatingUpdate
		)
		for _, unit := range chunk {
			for _, record := range unit.records {
				identityUpdates = append(identityUpdates, store.IdentityUpdate{
					RecordID:    record.ID,
					MovieID:     record.MovieID,
					Director:    record.Director,
					ReleaseDate: record.ReleaseDate,
					Synopsis:    record.Synopsis,
					Genres:      record.Genres,
					IMDBID:      record.IMDBID,
				})
			}

			if !first {
				if err := p.pause(ctx); err != nil {
					return err
				}
			}
			first = false

			rating, binding, found, err := p.resolver.FetchRating(ctx, unit.movieID, unit.title, unit.year)
			switch {
			case err != nil:
				summary.Skipped++
				logger.Warn("rating fetch failed",
					logging.Int64(logging.FieldMovieID, unit.movieID),
					logging.String("title", unit.title),
					logging.Error(err))
			case !binding.Usable():
				summary.NoURL++
				logger.Info("no rating URL",
					logging.Int64(logging.FieldMovieID, unit.movieID),
					logging.String("title", unit.title))
			case !found:
				summary.NoRating++
				logger.Info("no rating",
					logging.Int64(logging.FieldMovieID, unit.movieID),
					logging.String("title", unit.title),
					logging.String("url", binding.URL))
			default:
				summary.Rated++
				value := rating
				ratingUpdates = append(ratingUpdates, store.RatingUpdate{
					MovieID:   unit.movieID,
					Rating:    &value,
					RatingURL: binding.URL,
				})
				logger.Info("rated",
					logging.Int64(logging.FieldMovieID, unit.movieID),
					logging.String("title", unit.title),
					logging.Float64("rating", rating),
					logging.String("confidence", string(binding.Confidence)))
			}
		}

		if err := p.store.ApplyChunk(ctx, identityUpdates, ratingUpdates); err != nil {
			return fmt.Errorf("commit chunk: %w", err)
		}
		if err := p.cache.Flush(); err != nil {
			logger.Warn("rating cache flush failed", logging.Error(err))
		}
		summary.Chunks++

		logger.Info("chunk committed",
			logging.Int("chunk", summary.Chunks),
			logging.Int("movies", len(chunk)),
			logging.Int("ratings", len(ratingUpdates)))
	}
	return nil
}

// pause sleeps for a randomized interval between external requests. The
// jitter is a politeness measure toward the rating site, not a performance
// knob.
func (p *Pipeline) pause(ctx context.Context) error {
	delay := p.minDelay
	if span := p.maxDelay - p.minDelay; span > 0 {
		delay += time.Duration(p.rng.Float64() * float64(span))
	}
	if delay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}

// Cache exposes the pipeline's rating URL cache for CLI inspection.
func (p *Pipeline) Cache() *ratings.URLCache {
	return p.cache
}

func releaseYearOf(releaseDate string) int {
	if len(releaseDate) < 4 {
		return 0
	}
	year := 0
	for _, r := range releaseDate[:4] {
		if r < '0' || r > '9' {
			return 0
		}
		year = year*10 + int(r-'0')
	}
	return year
}
