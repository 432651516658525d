package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateRatings(); err != nil {
		return err
	}
	if err := c.validateEnrich(); err != nil {
		return err
	}
	if err := c.validatePaths(); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if c.Catalog.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/marquee/config.toml"
		}
		return fmt.Errorf("catalog.api_key is required. Set TMDB_API_KEY env var or edit %s (create with 'marquee config init')", defaultPath)
	}
	if c.Catalog.BaseURL == "" {
		return errors.New("catalog.base_url must be set")
	}
	return nil
}

func (c *Config) validateRatings() error {
	if c.Ratings.BaseURL == "" {
		return errors.New("ratings.base_url must be set")
	}
	if c.Ratings.SearchResults <= 0 {
		return errors.New("ratings.search_results must be positive")
	}
	if c.Ratings.RequestTimeout <= 0 {
		return errors.New("ratings.request_timeout must be positive")
	}
	return nil
}

func (c *Config) validateEnrich() error {
	if c.Enrich.ChunkSize <= 0 {
		return errors.New("enrich.chunk_size must be positive")
	}
	if c.Enrich.MinDelayMillis < 0 || c.Enrich.MaxDelayMillis < c.Enrich.MinDelayMillis {
		return errors.New("enrich delay bounds invalid: require 0 <= min_delay_millis <= max_delay_millis")
	}
	if c.Enrich.DirectorFetchLimit <= 0 {
		return errors.New("enrich.director_fetch_limit must be positive")
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	return nil
}
