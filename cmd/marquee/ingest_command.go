package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"marquee/internal/ingest"
	"marquee/internal/store"
)

func newIngestCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <export.json>",
		Short: "Load a scraped screening export into the store",
		Args:  cobra.ExactArgs(1),
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

			summary, err := ingest.File(cmd.Context(), st, args[0], logger)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Ingested %d of %d records (%d duplicates, %d invalid)\n",
				summary.Inserted, summary.Total, summary.Duplicate, summary.Invalid)
			return nil
		},
	}
}
