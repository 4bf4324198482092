// Package app assembles drawwatch's adapters and services from configuration.
//
// It is the composition root: the only package that knows every concrete
// adapter. Driving adapters receive the ports it exposes.
package app

import (
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/drawwatch/internal/adapters/driven/config/file"
	"github.com/custodia-labs/drawwatch/internal/adapters/driven/extract"
	"github.com/custodia-labs/drawwatch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/drawwatch/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/drawwatch/internal/adapters/driven/transport"
	"github.com/custodia-labs/drawwatch/internal/core/domain"
	"github.com/custodia-labs/drawwatch/internal/core/ports/driven"
	"github.com/custodia-labs/drawwatch/internal/core/services"
	"github.com/custodia-labs/drawwatch/internal/logger"
)

// App holds the wired services for one process.
type App struct {
	Settings   *domain.AppSettings
	ConfigDir  string
	ConfigPath string

	SettingsService *services.SettingsService
	Collector       *services.Collector
	Sources         *services.SourceService
	History         *services.HistoryService
	Scheduler       *services.Scheduler

	store *sqlite.Store
}

// Options tweak assembly, mainly for tests.
type Options struct {
	// ConfigStore replaces the config.toml store.
	ConfigStore driven.ConfigStore

	// Transport replaces the HTTP client.
	Transport driven.DocumentTransport

	// Clock replaces the wall clock.
	Clock services.Clock
}

// New reads configuration from configDir and wires every component.
// An empty configDir uses ~/.drawwatch.
func New(configDir string, opts Options) (*App, error) {
	if configDir == "" {
		dir, err := file.DefaultConfigDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}

	cfgStore := opts.ConfigStore
	if cfgStore == nil {
		fileStore, err := file.NewConfigStore(configDir)
		if err != nil {
			logger.Warn("config: %v, using defaults", err)
			cfgStore = memory.NewConfigStore()
		} else {
			cfgStore = fileStore
		}
	}

	settingsSvc := services.NewSettingsService(cfgStore)
	settings, err := settingsSvc.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	if err := settingsSvc.Validate(); err != nil {
		return nil, err
	}

	registryPath := settings.Registry.Path
	if !filepath.IsAbs(registryPath) {
		registryPath = filepath.Join(configDir, registryPath)
	}
	sourceFile, err := file.LoadSources(registryPath)
	if err != nil {
		return nil, fmt.Errorf("loading sources: %w", err)
	}

	registry, err := services.NewSourceRegistry(sourceFile.Sources, settings.Registry.Strict)
	if registry == nil {
		return nil, fmt.Errorf("building registry: %w", err)
	}
	if err != nil {
		for _, defect := range unjoin(err) {
			logger.Warn("registry: %v", defect)
		}
	}

	extractor, err := extract.NewSelectorExtractor(sourceFile.Selectors)
	if err != nil {
		return nil, fmt.Errorf("compiling selectors: %w", err)
	}

	docs := opts.Transport
	if docs == nil {
		docs = transport.NewClient(settings.Transport)
	}

	clock := opts.Clock
	if clock == nil {
		clock = services.SystemClock
	}

	a := &App{
		Settings:        settings,
		ConfigDir:       configDir,
		ConfigPath:      cfgStore.Path(),
		SettingsService: settingsSvc,
	}

	var (
		archive    driven.ResultArchive
		schedStore driven.SchedulerStore
	)
	if dir := settings.Storage.Dir; dir != "" {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(configDir, dir)
		}
		store, err := sqlite.NewStore(dir)
		if err != nil {
			return nil, fmt.Errorf("opening storage: %w", err)
		}
		a.store = store
		archive = store.ResultArchive()
		schedStore = store.SchedulerStore()
	} else {
		archive = memory.NewResultArchive()
		schedStore = memory.NewSchedulerStore()
	}

	col := settings.Collector
	loc := col.Location()

	policy := services.RetryPolicy{
		MaxAttempts: col.RetryAttempts,
		Backoff:     services.ExponentialBackoff(col.RetryBase, 2, col.TaskTimeout),
	}
	fetcher := services.NewSourceFetcher(docs, extractor, policy, loc, clock)
	evaluator := services.NewEligibilityEvaluator(services.EligibilityConfigFrom(col))
	cache := services.NewResultCache(settings.Cache.TTL, loc)

	a.Collector = services.NewCollector(services.CollectorDeps{
		Registry:    registry,
		Evaluator:   evaluator,
		Coordinator: services.NewCoordinator(fetcher, services.CoordinatorConfigFrom(col)),
		Merger:      services.NewSnapshotMerger(loc),
		Cache:       cache,
		Archive:     archive,
		Clock:       clock,
	}, col)
	a.Sources = services.NewSourceService(registry, evaluator, cache, clock)
	a.History = services.NewHistoryService(archive)
	a.Scheduler = services.NewScheduler(settingsSvc.GetSchedulerConfig(), schedStore, a.Collector)

	logger.Debug("app: %d sources from %s, storage %q", registry.Len(), registryPath, settings.Storage.Dir)
	return a, nil
}

// Close releases persistent storage.
func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

func unjoin(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}
