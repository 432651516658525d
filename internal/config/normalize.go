package config

import (
	"os"
	"strings"
)

// normalize expands paths, applies environment fallbacks, and trims values so
// validation sees canonical input.
func (c *Config) normalize() error {
	if c.Catalog.APIKey == "" {
		if key, ok := os.LookupEnv("TMDB_API_KEY"); ok {
			c.Catalog.APIKey = key
		}
	}
	c.Catalog.APIKey = strings.TrimSpace(c.Catalog.APIKey)
	c.Catalog.BaseURL = strings.TrimRight(strings.TrimSpace(c.Catalog.BaseURL), "/")
	c.Catalog.Language = strings.TrimSpace(c.Catalog.Language)
	c.Ratings.BaseURL = strings.TrimRight(strings.TrimSpace(c.Ratings.BaseURL), "/")
	c.Ratings.UserAgent = strings.TrimSpace(c.Ratings.UserAgent)

	for _, field := range []*string{&c.Paths.DataDir, &c.Paths.LogDir} {
		expanded, err := expandPath(*field)
		if err != nil {
			return err
		}
		*field = expanded
	}
	return nil
}
