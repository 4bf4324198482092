package cli

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/drawwatch/internal/adapters/driving/tui"
	"github.com/custodia-labs/drawwatch/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:     "tui",
	Aliases: []string{"watch"},
	Short:   "Launch the live terminal dashboard",
	Long: `Launch the live terminal dashboard for drawwatch.

The dashboard shows every source with its draw time, today's search state
and any results collected so far. The background poll runs while it is open.
When stdout is not a terminal the current status is printed instead.

Controls:
  ↑/k, ↓/j - Navigate sources
  r        - Refresh
  p        - Poll now
  ?        - Toggle help
  q        - Quit`,
	RunE: runTUI,
}

// isTerminal reports whether the dashboard can take over the screen.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func init() {
	tuiCmd.Flags().Duration("refresh", tui.DefaultRefresh, "dashboard refresh interval")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}

	if !isTerminal() {
		return runStatus(cmd, args)
	}

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	refresh, err := cmd.Flags().GetDuration("refresh")
	if err != nil {
		return fmt.Errorf("getting refresh flag: %w", err)
	}

	// Log lines would tear the alt screen.
	logger.SetOutput(io.Discard)
	defer logger.SetOutput(os.Stderr)

	stop := startScheduler(cmd.Context(), s)
	defer stop()

	app, err := tui.NewApp(&tui.Ports{Snapshot: s.Snapshot, Source: s.Source})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context()).WithRefresh(refresh)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
