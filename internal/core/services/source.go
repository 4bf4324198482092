package services

import (
	"context"

	"github.com/custodia-labs/drawwatch/internal/core/domain"
	"github.com/custodia-labs/drawwatch/internal/core/ports/driven"
	"github.com/custodia-labs/drawwatch/internal/core/ports/driving"
)

// Ensure SourceService implements the interface.
var _ driving.SourceService = (*SourceService)(nil)

// SourceService exposes the registry together with today's search state.
// It only reads evaluator state; it never counts as an attempt.
type SourceService struct {
	registry  *SourceRegistry
	evaluator *EligibilityEvaluator
	cache     *ResultCache
	now       Clock
}

// NewSourceService creates a new source service.
func NewSourceService(
	registry *SourceRegistry,
	evaluator *EligibilityEvaluator,
	cache *ResultCache,
	clock Clock,
) *SourceService {
	if clock == nil {
		clock = SystemClock
	}
	return &SourceService{
		registry:  registry,
		evaluator: evaluator,
		cache:     cache,
		now:       clock,
	}
}

// List returns all registered sources in registry order.
func (s *SourceService) List() []domain.Source {
	return s.registry.All()
}

// Get returns one source by ID.
func (s *SourceService) Get(id string) (*domain.Source, error) {
	src, err := s.registry.Get(id)
	if err != nil {
		return nil, err
	}
	return &src, nil
}

// Schedule maps source ID to its configured draw time.
func (s *SourceService) Schedule() map[string]string {
	return s.registry.Schedule()
}

// Status returns today's eligibility state for every source.
func (s *SourceService) Status(_ context.Context) ([]driving.SourceStatus, error) {
	now := s.now()
	loc := s.evaluator.Location()
	today := domain.DateOf(now, loc)

	var settled domain.Snapshot
	if entry, ok := s.cache.Current(now); ok {
		settled = entry.Snapshot
	}

	sources := s.registry.All()
	out := make([]driving.SourceStatus, 0, len(sources))
	for _, src := range sources {
		status := driving.SourceStatus{
			Source:   src,
			Search:   s.evaluator.Search(src.ID, now),
			Settled:  settled.Settled(src.ID),
			InWindow: s.evaluator.InWindow(src, now),
		}
		if src.Valid {
			status.DrawAt = src.DrawTime.On(today, loc)
		}
		out = append(out, status)
	}
	return out, nil
}

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService reads settled draws back from the archive.
type HistoryService struct {
	archive driven.ResultArchive
}

// NewHistoryService creates a history service. A nil archive makes every
// lookup fail with domain.ErrArchiveUnavailable.
func NewHistoryService(archive driven.ResultArchive) *HistoryService {
	return &HistoryService{archive: archive}
}

// DrawsOn returns archived draws for date.
func (s *HistoryService) DrawsOn(ctx context.Context, date domain.Date) ([]domain.ArchivedDraw, error) {
	if s.archive == nil {
		return nil, domain.ErrArchiveUnavailable
	}
	if date.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	return s.archive.DrawsOn(ctx, date)
}
