package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"marquee/internal/store"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show per-cinema enrichment progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			st, err := store.Open(cfg)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			summaries, err := st.Summaries(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(summaries) == 0 {
				fmt.Fprintln(out, "Store is empty; run 'marquee ingest' first.")
				return nil
			}

			headers := []string{"Cinema", "Screenings", "Resolved", "Rated"}
			rows := make([][]string, 0, len(summaries))
			totals := store.Summary{}
			for _, s := range summaries {
				rows = append(rows, []string{
					s.Cinema,
					strconv.Itoa(s.Total),
					strconv.Itoa(s.Resolved),
					strconv.Itoa(s.Rated),
				})
				totals.Total += s.Total
				totals.Resolved += s.Resolved
				totals.Rated += s.Rated
			}
			rows = append(rows, []string{
				"total",
				strconv.Itoa(totals.Total),
				strconv.Itoa(totals.Resolved),
				strconv.Itoa(totals.Rated),
			})

			aligns := []columnAlignment{alignLeft, alignRight, alignRight, alignRight}
			if stdoutIsTerminal() {
				fmt.Fprintln(out, renderTable(headers, rows, aligns))
			} else {
				fmt.Fprintln(out, renderPlain(headers, rows))
			}
			return nil
		},
	}
}
