package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/drawwatch/internal/core/domain"
	"github.com/custodia-labs/drawwatch/internal/core/ports/driving"
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Run one poll cycle",
	Long: `Run a single poll cycle now: every source inside its draw window is
fetched, and newly settled results are merged into today's snapshot.`,
	RunE: runCollect,
}

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Print today's snapshot",
	Long: `Print today's results. A poll cycle runs first when the cached
snapshot is missing or stale.`,
	RunE: runToday,
}

func init() {
	todayCmd.Flags().Bool("json", false, "print JSON")
	rootCmd.AddCommand(collectCmd)
	rootCmd.AddCommand(todayCmd)
}

func runCollect(cmd *cobra.Command, _ []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}

	report, err := s.Snapshot.Poll(cmd.Context())
	if report != nil {
		printReport(cmd, report)
	}
	if err != nil {
		return fmt.Errorf("poll failed: %w", err)
	}
	return nil
}

func runToday(cmd *cobra.Command, _ []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("getting json flag: %w", err)
	}

	view, err := s.Snapshot.Today(cmd.Context())
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}

	cmd.Printf("Results for %s (%d of %d sources)\n",
		view.AsOfDate, len(view.SourcesWithResults), len(view.SourcesConsidered))
	if view.Stale {
		cmd.Println("(stale: last poll failed)")
	}
	for _, id := range view.SourcesWithResults {
		cmd.Printf("  %s\n", id)
		payload := view.Results[id]
		for _, name := range subgames(payload) {
			draw := payload[name]
			cmd.Printf("    %-12s %-16s %s\n", name, draw.Numbers, draw.Date.Format("2006-01-02 15:04 MST"))
		}
	}
	return nil
}

func printReport(cmd *cobra.Command, r *driving.PollReport) {
	if r.Shared {
		cmd.Println("Joined a poll already in progress.")
	}
	if len(r.Eligible) == 0 {
		cmd.Println("No sources inside their draw window.")
		return
	}
	cmd.Printf("Polled %d source(s):\n", len(r.Eligible))
	for _, id := range r.Eligible {
		outcome := r.Outcomes[id]
		if outcome.Reason != "" {
			cmd.Printf("  %-12s %s: %s\n", id, outcome.Kind, outcome.Reason)
			continue
		}
		cmd.Printf("  %-12s %s\n", id, outcome.Kind)
	}
	if len(r.NewlySettled) > 0 {
		cmd.Printf("Newly settled: %s\n", strings.Join(r.NewlySettled, ", "))
	}
	for _, d := range r.Defects {
		cmd.Printf("Warning: %s/%s has unreadable date %q\n", d.SourceID, d.Subgame, d.Raw)
	}
}

func subgames(p domain.Payload) []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
