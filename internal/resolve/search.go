package resolve

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"marquee/internal/catalog"
)

type searchCacheEntry struct {
	resp    *catalog.Response
	expires time.Time
}

type detailCacheEntry struct {
	details *catalog.Details
	expires time.Time
}

// catalogSearch wraps the catalog client with a short-lived response cache
// and a politeness delay between requests. Repeat lookups within a run (the
// same film listed by several cinemas) hit the cache instead of the API.
type catalogSearch struct {
	client     catalog.Searcher
	cache      map[string]searchCacheEntry
	details    map[int64]detailCacheEntry
	cacheTTL   time.Duration
	rateLimit  time.Duration
	mu         sync.Mutex
	lastLookup time.Time
}

func newCatalogSearch(client catalog.Searcher) *catalogSearch {
	if client == nil {
		return &catalogSearch{}
	}
	return &catalogSearch{
		client:     client,
		cache:      make(map[string]searchCacheEntry),
		details:    make(map[int64]detailCacheEntry),
		cacheTTL:   10 * time.Minute,
		rateLimit:  250 * time.Millisecond,
		lastLookup: time.Unix(0, 0),
	}
}

func (s *catalogSearch) pace(ctx context.Context) error {
	s.mu.Lock()
	wait := s.rateLimit - time.Since(s.lastLookup)
	if wait > 0 {
		s.mu.Unlock()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		s.mu.Lock()
	}
	s.lastLookup = time.Now()
	s.mu.Unlock()
	return nil
}

func (s *catalogSearch) search(ctx context.Context, title string, opts catalog.SearchOptions) (*catalog.Response, error) {
	if s == nil || s.client == nil {
		return nil, errors.New("catalog client unavailable")
	}

	key := fmt.Sprintf("%s|%s", strings.ToLower(strings.TrimSpace(title)), opts.CacheKey())
	now := time.Now()

	s.mu.Lock()
	if entry, ok := s.cache[key]; ok && now.Before(entry.expires) {
		resp := entry.resp
		s.mu.Unlock()
		return resp, nil
	}
	s.mu.Unlock()

	if err := s.pace(ctx); err != nil {
		return nil, err
	}

	resp, err := s.client.SearchMovieWithOptions(ctx, title, opts)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.cache != nil {
		s.cache[key] = searchCacheEntry{resp: resp, expires: time.Now().Add(s.cacheTTL)}
	}
	s.mu.Unlock()
	return resp, nil
}

func (s *catalogSearch) movieDetails(ctx context.Context, movieID int64) (*catalog.Details, error) {
	if s == nil || s.client == nil {
		return nil, errors.New("catalog client unavailable")
	}

	now := time.Now()
	s.mu.Lock()
	if entry, ok := s.details[movieID]; ok && now.Before(entry.expires) {
		details := entry.details
		s.mu.Unlock()
		return details, nil
	}
	s.mu.Unlock()

	if err := s.pace(ctx); err != nil {
		return nil, err
	}

	details, err := s.client.GetMovieDetails(ctx, movieID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.details != nil {
		s.details[movieID] = detailCacheEntry{details: details, expires: time.Now().Add(s.cacheTTL)}
	}
	s.mu.Unlock()
	return details, nil
}

// candidates runs a year-filtered search first and retries without the year
// when it comes back empty. Venue-stated years are wrong often enough that
// an empty filtered result is never a final negative.
func (s *catalogSearch) candidates(ctx context.Context, title string, year int) ([]catalog.Result, error) {
	if year > 0 {
		resp, err := s.search(ctx, title, catalog.SearchOptions{Year: year})
		if err != nil {
			return nil, err
		}
		if len(resp.Results) > 0 {
			return resp.Results, nil
		}
	}

	resp, err := s.search(ctx, title, catalog.SearchOptions{})
	if err != nil {
		return nil, err
	}
	return resp.Results, nil
}
