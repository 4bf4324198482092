package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/drawwatch/internal/core/domain"
)

// SourceService exposes the source registry and today's search state.
type SourceService interface {
	// List returns all registered sources in registry order.
	List() []domain.Source

	// Get returns one source by ID.
	Get(id string) (*domain.Source, error)

	// Schedule maps source ID to its configured draw time.
	Schedule() map[string]string

	// Status returns today's eligibility state for every source.
	Status(ctx context.Context) ([]SourceStatus, error)
}

// SourceStatus combines a source with its current search state.
type SourceStatus struct {
	Source   domain.Source
	DrawAt   time.Time
	Search   *domain.ActiveSearch
	Settled  bool
	InWindow bool
}

// HistoryService reads settled draws from the archive.
type HistoryService interface {
	// DrawsOn returns archived draws for date.
	// Returns domain.ErrArchiveUnavailable when no archive is configured.
	DrawsOn(ctx context.Context, date domain.Date) ([]domain.ArchivedDraw, error)
}
