package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/drawwatch/internal/core/domain"
)

// SnapshotService is the inbound "get today's results" operation.
type SnapshotService interface {
	// Today returns the current snapshot for today, running a poll cycle
	// when the cache is missing or past its freshness horizon.
	// Returns domain.ErrNoResults only when neither a live batch nor the
	// cache has data.
	Today(ctx context.Context) (*SnapshotView, error)

	// Poll runs one poll cycle regardless of cache freshness.
	Poll(ctx context.Context) (*PollReport, error)
}

// SnapshotView is the externally visible shape of a snapshot.
type SnapshotView struct {
	// AsOfDate is the day the results belong to.
	AsOfDate domain.Date

	// Results maps source ID to its sub-game draws.
	Results map[string]domain.Payload

	// SourcesConsidered lists every registered source in registry order.
	SourcesConsidered []string

	// SourcesWithResults lists settled sources in registry order.
	SourcesWithResults []string

	// CachedAt is when the served snapshot was stored. Zero if never stored.
	CachedAt time.Time

	// Stale is true when the snapshot was served as a fallback after a failed batch.
	Stale bool
}

// PollReport summarises one poll cycle.
type PollReport struct {
	// RunID identifies the cycle.
	RunID string

	// StartedAt and EndedAt bound the cycle.
	StartedAt time.Time
	EndedAt   time.Time

	// Eligible lists the sources fetched this cycle.
	Eligible []string

	// Outcomes holds the per-source outcome of the batch.
	Outcomes map[string]domain.FetchOutcome

	// NewlySettled lists sources that gained a result this cycle.
	NewlySettled []string

	// Defects lists draw dates that could not be normalized.
	Defects []domain.DateDefect

	// Shared is true when the caller joined a cycle already in flight.
	Shared bool
}
