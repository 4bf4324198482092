package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/drawwatch/internal/core/domain"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show archived draws for a day",
	Long: `Show the draws archived for a day. Defaults to today in the
configured time zone. Draws are kept across restarts only when
storage.dir is set.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().String("date", "", "day to show (YYYY-MM-DD)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}

	raw, err := cmd.Flags().GetString("date")
	if err != nil {
		return fmt.Errorf("getting date flag: %w", err)
	}
	date := domain.DateOf(time.Now(), s.AppSettings.Collector.Location())
	if raw != "" {
		if date, err = domain.ParseDate(raw); err != nil {
			return err
		}
	}

	draws, err := s.History.DrawsOn(cmd.Context(), date)
	if errors.Is(err, domain.ErrArchiveUnavailable) {
		return errors.New("history is not enabled")
	}
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}
	if len(draws) == 0 {
		cmd.Printf("No draws archived for %s.\n", date)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SOURCE\tGAME\tNUMBERS\tDRAWN AT")
	for _, d := range draws {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.SourceID, d.Subgame, d.Numbers, d.DrawnAt.Format(time.RFC3339))
	}
	return w.Flush()
}
