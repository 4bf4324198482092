package services

import (
	"fmt"
	"strconv"
	"time"

	"github.com/custodia-labs/drawwatch/internal/core/domain"
	"github.com/custodia-labs/drawwatch/internal/core/ports/driven"
	"github.com/custodia-labs/drawwatch/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyTimezone          = "collector.timezone"
	keyLeadMinutes       = "collector.lead_minutes"
	keyTrailMinutes      = "collector.trail_minutes"
	keyMaxSearchMinutes  = "collector.max_search_minutes"
	keyPollIntervalSecs  = "collector.poll_interval_seconds"
	keyWorkers           = "collector.workers"
	keyTaskTimeoutSecs   = "collector.task_timeout_seconds"
	keyBatchDeadlineSecs = "collector.batch_deadline_seconds"
	keyChunkSize         = "collector.chunk_size"
	keyChunkPauseMS      = "collector.chunk_pause_ms"
	keyRetryAttempts     = "collector.retry_attempts"
	keyRetryBaseMS       = "collector.retry_base_ms"
	keyCacheTTLSecs      = "cache.ttl_seconds"
	keyRequestsPerSecond = "transport.requests_per_second"
	keyUserAgent         = "transport.user_agent"
	keyTransportTimeout  = "transport.timeout_seconds"
	keySchedulerEnabled  = "scheduler.enabled"
	keySchedulerTick     = "scheduler.tick_seconds"
	keyRegistryPath      = "registry.path"
	keyRegistryStrict    = "registry.strict"
	keyStorageDir        = "storage.dir"
	keyAPIAddr           = "api.addr"
	keyAPIAllowedOrigin  = "api.allowed_origin"
)

// SettingsService resolves application settings from the config store,
// filling unset keys from the defaults.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	d := domain.DefaultAppSettings()
	c := d.Collector

	settings := &domain.AppSettings{
		Collector: domain.CollectorSettings{
			Timezone:      s.getString(keyTimezone, c.Timezone),
			Lead:          s.getDuration(keyLeadMinutes, time.Minute, c.Lead),
			Trail:         s.getDuration(keyTrailMinutes, time.Minute, c.Trail),
			MaxSearch:     s.getDuration(keyMaxSearchMinutes, time.Minute, c.MaxSearch),
			PollInterval:  s.getDuration(keyPollIntervalSecs, time.Second, c.PollInterval),
			Workers:       s.getInt(keyWorkers, c.Workers),
			TaskTimeout:   s.getDuration(keyTaskTimeoutSecs, time.Second, c.TaskTimeout),
			BatchDeadline: s.getDuration(keyBatchDeadlineSecs, time.Second, c.BatchDeadline),
			ChunkSize:     s.getInt(keyChunkSize, c.ChunkSize),
			ChunkPause:    s.getDuration(keyChunkPauseMS, time.Millisecond, c.ChunkPause),
			RetryAttempts: s.getInt(keyRetryAttempts, c.RetryAttempts),
			RetryBase:     s.getDuration(keyRetryBaseMS, time.Millisecond, c.RetryBase),
		},
		Cache: domain.CacheSettings{
			TTL: s.getDuration(keyCacheTTLSecs, time.Second, d.Cache.TTL),
		},
		Transport: domain.TransportSettings{
			RequestsPerSecond: s.getFloat(keyRequestsPerSecond, d.Transport.RequestsPerSecond),
			UserAgent:         s.getString(keyUserAgent, d.Transport.UserAgent),
			Timeout:           s.getDuration(keyTransportTimeout, time.Second, d.Transport.Timeout),
		},
		Registry: domain.RegistrySettings{
			Path:   s.getString(keyRegistryPath, d.Registry.Path),
			Strict: s.getBool(keyRegistryStrict, d.Registry.Strict),
		},
		Storage: domain.StorageSettings{
			Dir: s.getString(keyStorageDir, d.Storage.Dir),
		},
		API: domain.APISettings{
			Addr:          s.getString(keyAPIAddr, d.API.Addr),
			AllowedOrigin: s.getString(keyAPIAllowedOrigin, d.API.AllowedOrigin),
		},
	}

	return settings, nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Set stores a single setting by key.
func (s *SettingsService) Set(key string, value any) error {
	if key == "" {
		return fmt.Errorf("%w: empty settings key", domain.ErrInvalidInput)
	}
	if err := s.configStore.Set(key, value); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Validate checks that the current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	c := settings.Collector

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, keyTimezone, err)
	}
	if c.Lead < 0 || c.Trail < 0 {
		return fmt.Errorf("%w: lead and trail must not be negative", domain.ErrInvalidInput)
	}
	if c.MaxSearch <= 0 || c.PollInterval <= 0 {
		return fmt.Errorf("%w: max search and poll interval must be positive", domain.ErrInvalidInput)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: %s must be at least 1", domain.ErrInvalidInput, keyWorkers)
	}
	if c.TaskTimeout <= 0 || c.BatchDeadline <= 0 {
		return fmt.Errorf("%w: task timeout and batch deadline must be positive", domain.ErrInvalidInput)
	}
	if c.TaskTimeout > c.BatchDeadline {
		return fmt.Errorf("%w: task timeout %s exceeds batch deadline %s",
			domain.ErrInvalidInput, c.TaskTimeout, c.BatchDeadline)
	}
	if settings.Cache.TTL <= 0 {
		return fmt.Errorf("%w: %s must be positive", domain.ErrInvalidInput, keyCacheTTLSecs)
	}
	return nil
}

// GetSchedulerConfig returns the scheduler configuration.
// The draw poll runs every poll interval unless configured otherwise.
func (s *SettingsService) GetSchedulerConfig() domain.SchedulerConfig {
	defaults := domain.DefaultSchedulerConfig()

	if _, exists := s.configStore.Get(keySchedulerEnabled); exists {
		defaults.Enabled = s.configStore.GetBool(keySchedulerEnabled)
	}
	defaults.Tick = s.getDuration(keySchedulerTick, time.Second, defaults.Tick)

	prefix := "scheduler.draw_poll."
	taskCfg := defaults.TaskConfigs[domain.TaskIDDrawPoll]
	if _, exists := s.configStore.Get(prefix + "enabled"); exists {
		taskCfg.Enabled = s.configStore.GetBool(prefix + "enabled")
	}
	if interval := s.configStore.GetString(prefix + "interval"); interval != "" {
		if d, err := time.ParseDuration(interval); err == nil {
			taskCfg.Interval = d
		}
	}
	defaults.TaskConfigs[domain.TaskIDDrawPoll] = taskCfg

	return defaults
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

// getDuration reads an integer count of unit.
func (s *SettingsService) getDuration(key string, unit, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return time.Duration(val) * unit
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	raw, exists := s.configStore.Get(key)
	if !exists {
		return defaultVal
	}
	switch v := raw.(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
