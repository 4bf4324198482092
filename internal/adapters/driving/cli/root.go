// Package cli provides the drawwatch command line interface.
// It implements a driving adapter following hexagonal architecture principles.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/drawwatch/internal/app"
	"github.com/custodia-labs/drawwatch/internal/core/domain"
	"github.com/custodia-labs/drawwatch/internal/core/ports/driving"
	"github.com/custodia-labs/drawwatch/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// skipWiring marks commands that run without loading configuration.
const skipWiring = "skip-wiring"

// Services holds the driving ports the commands call.
type Services struct {
	Snapshot        driving.SnapshotService
	Source          driving.SourceService
	History         driving.HistoryService
	Settings        driving.SettingsService
	Scheduler       driving.Scheduler
	SchedulerConfig domain.SchedulerConfig
	AppSettings     domain.AppSettings
	ConfigPath      string

	// Close releases resources. Optional.
	Close func() error
}

var (
	verbose   bool
	configDir string

	services     *Services
	ownsServices bool
)

// buildServices wires the application from configDir.
var buildServices = func(dir string) (*Services, error) {
	a, err := app.New(dir, app.Options{})
	if err != nil {
		return nil, err
	}
	return &Services{
		Snapshot:        a.Collector,
		Source:          a.Sources,
		History:         a.History,
		Settings:        a.SettingsService,
		Scheduler:       a.Scheduler,
		SchedulerConfig: a.SettingsService.GetSchedulerConfig(),
		AppSettings:     *a.Settings,
		ConfigPath:      a.ConfigPath,
		Close:           a.Close,
	}, nil
}

var rootCmd = &cobra.Command{
	Use:   "drawwatch",
	Short: "Collect daily lottery draw results",
	Long: `drawwatch polls lottery result publishers around their scheduled draw
times, merges the results into a per-day snapshot and serves it over HTTP,
MCP and a terminal dashboard.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.drawwatch)")
}

// SetServices injects pre-built services, bypassing configuration loading.
func SetServices(s *Services) {
	services = s
	ownsServices = false
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if cmd.Annotations[skipWiring] == "true" || services != nil {
		return nil
	}
	s, err := buildServices(configDir)
	if err != nil {
		return err
	}
	services = s
	ownsServices = true
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if !ownsServices || services == nil {
		return nil
	}
	s := services
	services, ownsServices = nil, false
	if s.Close != nil {
		return s.Close()
	}
	return nil
}

var errNotConfigured = errors.New("services not configured")

func requireServices() (*Services, error) {
	if services == nil {
		return nil, errNotConfigured
	}
	return services, nil
}
