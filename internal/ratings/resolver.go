package ratings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"marquee/internal/logging"
	"marquee/internal/services"
	"marquee/internal/textutil"
)

// Resolver maps canonical movies to rating page URLs. Lookups consult the
// persistent URL cache first, then guess page slugs verified against the
// page's catalog back-reference, and finally fall back to the site's search.
type Resolver struct {
	client      *Client
	cache       *URLCache
	searchLimit int
	logger      *slog.Logger
}

// NewResolver constructs a Resolver. searchLimit caps how many search
// results are fetched for verification per movie.
func NewResolver(client *Client, cache *URLCache, searchLimit int, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = logging.NewNop()
	}
	if searchLimit <= 0 {
		searchLimit = 5
	}
	return &Resolver{
		client:      client,
		cache:       cache,
		searchLimit: searchLimit,
		logger:      logging.NewComponentLogger(logger, "ratingresolver"),
	}
}

// Resolve finds the rating page for a movie. Usable outcomes are cached so
// later runs and repeat screenings of the same film skip the network.
// Transient failures surface as errors; a film the site simply does not have
// yields a Binding with ConfidenceNone and no error.
func (r *Resolver) Resolve(ctx context.Context, movieID int64, title string, year int) (Binding, error) {
	if movieID <= 0 {
		return Binding{Confidence: ConfidenceNone}, services.Wrap(services.ErrValidation, "ratings", "resolve", "movie ID must be positive", nil)
	}

	if entry, found := r.cache.Lookup(movieID); found {
		return Binding{URL: entry.URL, Confidence: entry.Confidence}, nil
	}

	binding, err := r.resolveBySlug(ctx, movieID, title, year)
	if err != nil {
		return Binding{Confidence: ConfidenceNone}, err
	}
	if !binding.Usable() {
		binding, err = r.resolveBySearch(ctx, movieID, searchQuery(title, year))
		if err != nil {
			return Binding{Confidence: ConfidenceNone}, err
		}
	}

	if binding.Usable() {
		if cacheErr := r.cache.Store(CacheEntry{
			MovieID:    movieID,
			Title:      title,
			URL:        binding.URL,
			Confidence: binding.Confidence,
		}); cacheErr != nil {
			r.logger.Warn("failed to cache rating url",
				logging.Int64(logging.FieldMovieID, movieID),
				logging.Error(cacheErr))
		}
		return binding, nil
	}

	r.logger.Debug("no rating page found",
		logging.Int64(logging.FieldMovieID, movieID),
		logging.String("title", title))
	return Binding{Confidence: ConfidenceNone}, nil
}

func (r *Resolver) resolveBySlug(ctx context.Context, movieID int64, title string, year int) (Binding, error) {
	for _, slug := range slugCandidates(title, year) {
		pageURL := r.client.FilmURL(slug)
		doc, err := r.client.FetchPage(ctx, pageURL)
		if errors.Is(err, services.ErrNotFound) {
			continue
		}
		if err != nil {
			return Binding{Confidence: ConfidenceNone}, err
		}
		if VerifyBackReference(doc, movieID) {
			r.logger.Debug("resolved rating page by slug",
				logging.Int64(logging.FieldMovieID, movieID),
				logging.String("url", pageURL))
			return Binding{URL: pageURL, Confidence: ConfidenceVerified}, nil
		}
	}
	return Binding{Confidence: ConfidenceNone}, nil
}

func (r *Resolver) resolveBySearch(ctx context.Context, movieID int64, title string) (Binding, error) {
	results, err := r.client.Search(ctx, title, r.searchLimit)
	if errors.Is(err, services.ErrNotFound) {
		return Binding{Confidence: ConfidenceNone}, nil
	}
	if err != nil {
		return Binding{Confidence: ConfidenceNone}, err
	}
	if len(results) == 0 {
		return Binding{Confidence: ConfidenceNone}, nil
	}

	for _, pageURL := range results {
		doc, err := r.client.FetchPage(ctx, pageURL)
		if errors.Is(err, services.ErrNotFound) {
			continue
		}
		if err != nil {
			return Binding{Confidence: ConfidenceNone}, err
		}
		if VerifyBackReference(doc, movieID) {
			r.logger.Debug("resolved rating page by search",
				logging.Int64(logging.FieldMovieID, movieID),
				logging.String("url", pageURL))
			return Binding{URL: pageURL, Confidence: ConfidenceVerified}, nil
		}
	}

	// None of the results named the expected movie. The top result is still
	// the best available guess, so keep it with reduced trust.
	r.logger.Debug("falling back to unverified search result",
		logging.Int64(logging.FieldMovieID, movieID),
		logging.String("url", results[0]))
	return Binding{URL: results[0], Confidence: ConfidenceUnverified}, nil
}

// searchQuery appends the year hint to narrow full-text search results for
// common titles.
func searchQuery(title string, year int) string {
	if year > 0 {
		return title + " " + strconv.Itoa(year)
	}
	return title
}

// slugCandidates produces page slug guesses for a title, most specific
// first. Sites disambiguate same-title films by suffixing the release year,
// so the plain slug is tried before year-suffixed variants.
func slugCandidates(title string, year int) []string {
	var (
		candidates []string
		seen       = make(map[string]struct{})
	)
	add := func(slug string) {
		if slug == "" {
			return
		}
		if _, dup := seen[slug]; dup {
			return
		}
		seen[slug] = struct{}{}
		candidates = append(candidates, slug)
	}

	base := textutil.Slug(title)
	add(base)
	add(textutil.Slug(strings.ReplaceAll(title, "&", " and ")))
	if year > 0 {
		suffix := "-" + strconv.Itoa(year)
		add(base + suffix)
		add(textutil.Slug(strings.ReplaceAll(title, "&", " and ")) + suffix)
	}
	return candidates
}

// FetchRating resolves a movie's page and extracts its rating in one call.
// The bool reports whether a rating was found.
func (r *Resolver) FetchRating(ctx context.Context, movieID int64, title string, year int) (float64, Binding, bool, error) {
	binding, err := r.Resolve(ctx, movieID, title, year)
	if err != nil || !binding.Usable() {
		return 0, binding, false, err
	}

	doc, err := r.client.FetchPage(ctx, binding.URL)
	if err != nil {
		return 0, binding, false, fmt.Errorf("fetch rating page: %w", err)
	}

	rating, found := ExtractRating(doc)
	return rating, binding, found, nil
}
