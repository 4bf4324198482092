package domain

import "time"

// DefaultTimezone is the reference zone draw times are expressed in.
const DefaultTimezone = "America/New_York"

// AppSettings holds all user-configurable settings.
type AppSettings struct {
	Collector CollectorSettings
	Cache     CacheSettings
	Transport TransportSettings
	Registry  RegistrySettings
	Storage   StorageSettings
	API       APISettings
}

// CollectorSettings configures eligibility windows and batch execution.
type CollectorSettings struct {
	// Timezone is the IANA name of the reference time zone.
	Timezone string

	// Lead is how long before the draw time a source becomes eligible.
	Lead time.Duration

	// Trail is how long after the draw time a search may still start.
	Trail time.Duration

	// MaxSearch bounds how long a search runs once started.
	MaxSearch time.Duration

	// PollInterval is the minimum spacing between attempts for one source.
	PollInterval time.Duration

	// Workers is the size of the fetch worker pool.
	Workers int

	// TaskTimeout bounds a single source fetch.
	TaskTimeout time.Duration

	// BatchDeadline bounds a whole batch.
	BatchDeadline time.Duration

	// ChunkSize splits large batches into sequential sub-batches.
	ChunkSize int

	// ChunkPause is the pause between sub-batches.
	ChunkPause time.Duration

	// RetryAttempts is the maximum number of transport attempts per fetch.
	RetryAttempts int

	// RetryBase is the first backoff delay.
	RetryBase time.Duration
}

// CacheSettings configures the result cache.
type CacheSettings struct {
	// TTL is the freshness horizon of the cached snapshot.
	TTL time.Duration
}

// TransportSettings configures outbound HTTP.
type TransportSettings struct {
	RequestsPerSecond float64
	UserAgent         string
	Timeout           time.Duration
}

// RegistrySettings locates the source registry file.
type RegistrySettings struct {
	// Path is the sources file (.toml, .yaml or .yml).
	Path string

	// Strict rejects the whole registry when any entry is malformed.
	Strict bool
}

// StorageSettings locates persistent state.
type StorageSettings struct {
	// Dir holds the sqlite database. Empty keeps history in memory only.
	Dir string
}

// APISettings configures the HTTP API.
type APISettings struct {
	Addr          string
	AllowedOrigin string
}

// Location loads the configured reference zone, falling back to UTC.
func (c CollectorSettings) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DefaultCollectorSettings returns the defaults used for unset keys.
func DefaultCollectorSettings() CollectorSettings {
	return CollectorSettings{
		Timezone:      DefaultTimezone,
		Lead:          5 * time.Minute,
		Trail:         45 * time.Minute,
		MaxSearch:     30 * time.Minute,
		PollInterval:  2 * time.Minute,
		Workers:       3,
		TaskTimeout:   30 * time.Second,
		BatchDeadline: 90 * time.Second,
		ChunkSize:     5,
		ChunkPause:    500 * time.Millisecond,
		RetryAttempts: 3,
		RetryBase:     time.Second,
	}
}

// DefaultAppSettings returns sensible defaults for all settings.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Collector: DefaultCollectorSettings(),
		Cache:     CacheSettings{TTL: 10 * time.Minute},
		Transport: TransportSettings{
			RequestsPerSecond: 2,
			UserAgent:         "drawwatch/1.0",
			Timeout:           20 * time.Second,
		},
		Registry: RegistrySettings{Path: "sources.toml"},
		API:      APISettings{Addr: ":10000"},
	}
}
