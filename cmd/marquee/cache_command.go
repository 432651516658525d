package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"marquee/internal/ratings"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the rating URL cache",
		Long: `Inspect and manage the rating URL cache.

The cache stores mappings from canonical movie IDs to rating site URLs so
repeat runs skip the slug-probe and search requests.`,
	}

	cacheCmd.AddCommand(newCacheListCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))

	return cacheCmd
}

func (c *commandContext) openRatingCache() (*ratings.URLCache, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	return ratings.NewURLCache(cfg.RatingCachePath(), logger), nil
}

func newCacheListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached rating URL mappings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := ctx.openRatingCache()
			if err != nil {
				return err
			}

			entries := cache.List()
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "Rating URL cache: empty")
				return nil
			}

			fmt.Fprintf(out, "Rating URL cache: %d entries\n\n", len(entries))
			const stampLayout = "2006-01-02"
			for i, entry := range entries {
				cachedAt := "unknown"
				if !entry.CachedAt.IsZero() {
					cachedAt = entry.CachedAt.Local().Format(stampLayout)
				}
				fmt.Fprintf(out, "  %d. %s\n", i+1, entry.Title)
				fmt.Fprintf(out, "     Movie: %d | %s (%s) | Cached: %s\n\n",
					entry.MovieID, entry.URL, entry.Confidence, cachedAt)
			}
			return nil
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached rating URL mappings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := ctx.openRatingCache()
			if err != nil {
				return err
			}

			count := cache.Count()
			if err := cache.Clear(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d cache entries\n", count)
			return nil
		},
	}
}
