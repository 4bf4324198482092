package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change settings stored in config.toml.

Keys are dotted paths, for example collector.timezone or cache.ttl_seconds.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a single setting and save config.toml.

Values that look like integers, decimals or booleans are stored as such;
anything else is stored as a string. Changes take effect on the next start.

Examples:
  drawwatch settings set collector.timezone America/Chicago
  drawwatch settings set collector.workers 5
  drawwatch settings set storage.dir data`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}

	settings, err := s.Settings.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	if s.ConfigPath != "" {
		cmd.Printf("File: %s\n", s.ConfigPath)
	}
	cmd.Println()

	c := settings.Collector
	cmd.Println("[Collector]")
	cmd.Printf("  Timezone: %s\n", c.Timezone)
	cmd.Printf("  Window: %s before to %s after the draw\n", c.Lead, c.Trail)
	cmd.Printf("  Max search: %s\n", c.MaxSearch)
	cmd.Printf("  Poll interval: %s\n", c.PollInterval)
	cmd.Printf("  Workers: %d\n", c.Workers)
	cmd.Printf("  Task timeout: %s\n", c.TaskTimeout)
	cmd.Printf("  Batch deadline: %s\n", c.BatchDeadline)
	cmd.Printf("  Chunks: %d sources, %s apart\n", c.ChunkSize, c.ChunkPause)
	cmd.Printf("  Retries: %d attempts from %s\n", c.RetryAttempts, c.RetryBase)
	cmd.Println()

	cmd.Println("[Cache]")
	cmd.Printf("  TTL: %s\n", settings.Cache.TTL)
	cmd.Println()

	cmd.Println("[Transport]")
	cmd.Printf("  Rate: %g requests/s\n", settings.Transport.RequestsPerSecond)
	cmd.Printf("  User agent: %s\n", settings.Transport.UserAgent)
	cmd.Printf("  Timeout: %s\n", settings.Transport.Timeout)
	cmd.Println()

	cmd.Println("[Registry]")
	cmd.Printf("  Path: %s\n", settings.Registry.Path)
	cmd.Printf("  Strict: %s\n", yesNo(settings.Registry.Strict))
	cmd.Println()

	cmd.Println("[Storage]")
	if settings.Storage.Dir != "" {
		cmd.Printf("  Dir: %s\n", settings.Storage.Dir)
	} else {
		cmd.Println("  Dir: (memory only)")
	}
	cmd.Println()

	cmd.Println("[API]")
	cmd.Printf("  Address: %s\n", settings.API.Addr)
	if settings.API.AllowedOrigin != "" {
		cmd.Printf("  Allowed origin: %s\n", settings.API.AllowedOrigin)
	}
	cmd.Println()

	if err := s.Settings.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("Configuration is valid.")
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}

	key := strings.TrimSpace(args[0])
	value := parseValue(args[1])
	if err := s.Settings.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	cmd.Printf("Set %s = %v\n", key, value)
	if err := s.Settings.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	}
	return nil
}

// parseValue converts a command line value to the narrowest TOML type.
func parseValue(raw string) any {
	raw = strings.TrimSpace(raw)
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
