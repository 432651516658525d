package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"marquee/internal/catalog"
	"marquee/internal/enrich"
	"marquee/internal/ratings"
	"marquee/internal/store"
)

func newEnrichCommand(ctx *commandContext) *cobra.Command {
	var (
		force     bool
		limit     int
		chunkSize int
		cinema    string
	)

	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Resolve identities and fetch ratings for stored screenings",
		Long: `Run the enrichment pipeline over the screening store.

By default only rows without a stored rating are processed; --force widens
the work set to every row. The run commits results chunk by chunk, so an
interrupted run can simply be restarted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			st, err := store.Open(cfg)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			catalogClient, err := catalog.New(cfg.Catalog.APIKey, cfg.Catalog.BaseURL, cfg.Catalog.Language)
			if err != nil {
				return fmt.Errorf("catalog client: %w", err)
			}
			ratingClient := ratings.NewClient(
				cfg.Ratings.BaseURL,
				cfg.Ratings.UserAgent,
				time.Duration(cfg.Ratings.RequestTimeout)*time.Second,
				logger,
			)

			pipeline := enrich.New(cfg, st, catalogClient, ratingClient, logger)
			summary, err := pipeline.Run(cmd.Context(), enrich.Options{
				Force:     force,
				Cinema:    cinema,
				Limit:     limit,
				ChunkSize: chunkSize,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run %s\n", summary.RunID)
			fmt.Fprintf(out, "  rows: %d (resolved %d, unresolved %d)\n", summary.Rows, summary.Resolved, summary.Unresolved)
			fmt.Fprintf(out, "  movies: %d (rated %d, no URL %d, no rating %d, skipped %d)\n",
				summary.Movies, summary.Rated, summary.NoURL, summary.NoRating, summary.Skipped)
			fmt.Fprintf(out, "  chunks committed: %d\n", summary.Chunks)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Process every row, not just rows missing a rating")
	cmd.Flags().IntVar(&limit, "limit", 0, "Cap the number of rows in the work set")
	cmd.Flags().IntVar(&chunkSize, "chunk-size", 0, "Override the configured chunk size")
	cmd.Flags().StringVar(&cinema, "cinema", "", "Restrict the run to one cinema")
	return cmd
}
