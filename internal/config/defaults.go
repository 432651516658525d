package config

const (
	defaultDataDir            = "~/.local/share/marquee"
	defaultLogDir             = "~/.local/share/marquee/logs"
	defaultCatalogBaseURL     = "https://api.themoviedb.org/3"
	defaultCatalogLanguage    = "en-US"
	defaultRatingsBaseURL     = "https://letterboxd.com"
	defaultRatingsUserAgent   = "marquee/dev"
	defaultRatingsSearch      = 5
	defaultRatingsTimeout     = 15
	defaultChunkSize          = 25
	defaultMinDelayMillis     = 250
	defaultMaxDelayMillis     = 750
	defaultDirectorFetchLimit = 20
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Catalog: Catalog{
			BaseURL:  defaultCatalogBaseURL,
			Language: defaultCatalogLanguage,
		},
		Ratings: Ratings{
			BaseURL:        defaultRatingsBaseURL,
			UserAgent:      defaultRatingsUserAgent,
			SearchResults:  defaultRatingsSearch,
			RequestTimeout: defaultRatingsTimeout,
		},
		Enrich: Enrich{
			ChunkSize:          defaultChunkSize,
			MinDelayMillis:     defaultMinDelayMillis,
			MaxDelayMillis:     defaultMaxDelayMillis,
			DirectorFetchLimit: defaultDirectorFetchLimit,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
