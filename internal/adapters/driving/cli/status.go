package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/drawwatch/internal/core/ports/driving"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's search state per source",
	RunE:  runStatus,
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "List sources and their draw times",
	RunE:  runSchedule,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(scheduleCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}

	statuses, err := s.Source.Status(cmd.Context())
	if err != nil {
		return fmt.Errorf("reading status: %w", err)
	}
	if len(statuses) == 0 {
		cmd.Println("No sources configured.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SOURCE\tDRAW\tSTATE\tATTEMPTS\tLAST ATTEMPT")
	for _, st := range statuses {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			st.Source.ID, drawAt(st), searchState(st), attemptCount(st), lastAttempt(st))
	}
	return w.Flush()
}

func runSchedule(cmd *cobra.Command, _ []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}

	sources := s.Source.List()
	if len(sources) == 0 {
		cmd.Println("No sources configured.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SOURCE\tNAME\tDRAW TIME\tURL")
	for _, src := range sources {
		drawTime := src.RawDrawTime
		if !src.Valid {
			drawTime += " (invalid)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", src.ID, src.DisplayName(), drawTime, src.URL)
	}
	return w.Flush()
}

func drawAt(st driving.SourceStatus) string {
	if !st.Source.Valid || st.DrawAt.IsZero() {
		return "-"
	}
	return st.DrawAt.Format("15:04 MST")
}

func searchState(st driving.SourceStatus) string {
	switch {
	case !st.Source.Valid:
		return "invalid: " + st.Source.Defect
	case st.Settled:
		return "settled"
	case st.Search != nil:
		return string(st.Search.State)
	case st.InWindow:
		return "due"
	default:
		return "waiting"
	}
}

func attemptCount(st driving.SourceStatus) string {
	if st.Search == nil {
		return "0"
	}
	return fmt.Sprintf("%d", st.Search.Attempts)
}

func lastAttempt(st driving.SourceStatus) string {
	if st.Search == nil || st.Search.LastAttempt.IsZero() {
		return "-"
	}
	return st.Search.LastAttempt.Format(time.Kitchen)
}
