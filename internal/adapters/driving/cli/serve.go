package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/drawwatch/internal/adapters/driving/api"
	"github.com/custodia-labs/drawwatch/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve results over HTTP",
	Long: `Start the HTTP API and the background draw poll.

The listen address comes from api.addr in config.toml, overridden by the
PORT environment variable and then by --addr.

Routes:
  GET  /api/lottery-results   Today's snapshot
  GET  /api/lottery-schedule  Configured draw times
  GET  /api/status            Per-source search state
  GET  /api/history?date=     Archived draws for a day
  POST /api/poll              Force a poll cycle`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides api.addr and PORT)")
	serveCmd.Flags().Bool("no-scheduler", false, "serve without the background poll")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}

	addr, err := cmd.Flags().GetString("addr")
	if err != nil {
		return fmt.Errorf("getting addr flag: %w", err)
	}
	addr = listenAddr(addr, os.Getenv("PORT"), s.AppSettings.API.Addr)

	noScheduler, err := cmd.Flags().GetBool("no-scheduler")
	if err != nil {
		return fmt.Errorf("getting no-scheduler flag: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if !noScheduler {
		stop := startScheduler(ctx, s)
		defer stop()
	}

	handler := api.NewHandler(s.Snapshot, s.Source, s.History)
	router := api.NewRouter(handler, s.AppSettings.API.AllowedOrigin)

	logger.Info("serve: listening on %s", addr)
	cmd.Printf("drawwatch listening on %s\n", addr)
	return api.NewServer(addr, router).Run(ctx)
}

// listenAddr picks the flag, then PORT, then the configured address.
func listenAddr(flag, port, configured string) string {
	switch {
	case flag != "":
		return flag
	case port != "":
		return ":" + port
	case configured != "":
		return configured
	default:
		return ":10000"
	}
}

// startScheduler runs the scheduler in the background when enabled and
// returns a function that stops it.
func startScheduler(ctx context.Context, s *Services) func() {
	if s.Scheduler == nil || !s.SchedulerConfig.Enabled {
		return func() {}
	}

	schedulerCtx, cancel := context.WithCancel(ctx)
	go func() {
		if err := s.Scheduler.Start(schedulerCtx); err != nil {
			logger.Warn("scheduler stopped: %v", err)
		}
	}()

	return func() {
		cancel()
		if err := s.Scheduler.Stop(); err != nil {
			logger.Warn("scheduler stop error: %v", err)
		}
	}
}
