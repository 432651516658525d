package ratings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"marquee/internal/logging"
)

// CacheEntry represents a cached mapping from canonical movie ID to a
// rating page URL.
type CacheEntry struct {
	MovieID    int64      `json:"movie_id"`
	Title      string     `json:"title"`
	URL        string     `json:"url"`
	Confidence Confidence `json:"confidence"`
	CachedAt   time.Time  `json:"cached_at"`
}

// URLCache provides thread-safe access to the rating URL cache. Mutations
// stay in memory until Flush is called, so a batch run can persist the cache
// together with each chunk's database commit.
type URLCache struct {
	path    string
	logger  *slog.Logger
	mu      sync.RWMutex
	entries map[int64]CacheEntry
}

// NewURLCache creates a new cache instance. If path is empty, the cache is
// non-functional (all operations become no-ops). The cache file is created
// lazily on first Flush.
func NewURLCache(path string, logger *slog.Logger) *URLCache {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "ratingcache")

	c := &URLCache{
		path:    path,
		logger:  logger,
		entries: make(map[int64]CacheEntry),
	}

	if path == "" {
		return c
	}

	if err := c.load(); err != nil {
		logger.Warn("failed to load rating url cache",
			logging.String(logging.FieldEventType, "rating_cache_load_failed"),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "cache will start empty"),
			logging.String(logging.FieldImpact, "previously resolved rating URLs will be looked up again"))
	}

	return c
}

// Lookup returns the cached binding for the given movie ID if present.
func (c *URLCache) Lookup(movieID int64) (CacheEntry, bool) {
	if movieID <= 0 || c.path == "" {
		return CacheEntry{}, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, found := c.entries[movieID]
	return entry, found
}

// Store adds or updates an entry in memory. Call Flush to persist.
func (c *URLCache) Store(entry CacheEntry) error {
	if entry.MovieID <= 0 {
		return errors.New("movie ID must be positive")
	}
	if c.path == "" {
		return nil
	}
	if entry.CachedAt.IsZero() {
		entry.CachedAt = time.Now().UTC()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[entry.MovieID] = entry
	return nil
}

// Flush writes the in-memory entries to disk atomically.
func (c *URLCache) Flush() error {
	if c.path == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.save(); err != nil {
		return fmt.Errorf("persist rating cache: %w", err)
	}
	return nil
}

// List returns all cache entries sorted by CachedAt descending.
func (c *URLCache) List() []CacheEntry {
	if c.path == "" {
		return nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entries := make([]CacheEntry, 0, len(c.entries))
	for _, entry := range c.entries {
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CachedAt.After(entries[j].CachedAt)
	})

	return entries
}

// Clear removes all entries and persists the empty cache immediately.
func (c *URLCache) Clear() error {
	if c.path == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[int64]CacheEntry)

	if err := c.save(); err != nil {
		return fmt.Errorf("persist rating cache: %w", err)
	}

	c.logger.Debug("cleared rating url cache")
	return nil
}

// Count returns the number of entries in the cache.
func (c *URLCache) Count() int {
	if c.path == "" {
		return 0
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

func (c *URLCache) load() error {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read cache file: %w", err)
	}

	if len(data) == 0 {
		return nil
	}

	var entries []CacheEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse cache file: %w", err)
	}

	c.entries = make(map[int64]CacheEntry, len(entries))
	for _, entry := range entries {
		if entry.MovieID > 0 {
			c.entries[entry.MovieID] = entry
		}
	}

	c.logger.Debug("loaded rating url cache",
		logging.Int("entry_count", len(c.entries)),
		logging.String("path", c.path))

	return nil
}

func (c *URLCache) save() error {
	entries := make([]CacheEntry, 0, len(c.entries))
	for _, entry := range c.entries {
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CachedAt.After(entries[j].CachedAt)
	})

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace cache file: %w", err)
	}

	return nil
}
