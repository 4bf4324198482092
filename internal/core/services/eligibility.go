package services

import (
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/drawwatch/internal/core/domain"
	"github.com/custodia-labs/drawwatch/internal/logger"
)

// EligibilityConfig holds the window parameters of the evaluator.
type EligibilityConfig struct {
	// Location is the reference zone draw times are expressed in.
	Location *time.Location

	// Lead opens the window before the draw time.
	Lead time.Duration

	// Trail is the latest a search may start after the draw time.
	Trail time.Duration

	// MaxSearch bounds a search once started.
	MaxSearch time.Duration

	// PollInterval is the minimum spacing between two eligible answers.
	PollInterval time.Duration
}

// EligibilityConfigFrom derives the evaluator config from collector settings.
func EligibilityConfigFrom(s domain.CollectorSettings) EligibilityConfig {
	return EligibilityConfig{
		Location:     s.Location(),
		Lead:         s.Lead,
		Trail:        s.Trail,
		MaxSearch:    s.MaxSearch,
		PollInterval: s.PollInterval,
	}
}

// EligibilityEvaluator decides, per source, whether fetching now is worthwhile.
// It owns the per-source ActiveSearch table; all access goes through mu so the
// check-and-create sequence is atomic per source.
type EligibilityEvaluator struct {
	cfg EligibilityConfig

	mu       sync.Mutex
	searches map[string]*domain.ActiveSearch
	reported map[string]bool
}

// NewEligibilityEvaluator creates an evaluator with an empty search table.
func NewEligibilityEvaluator(cfg EligibilityConfig) *EligibilityEvaluator {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &EligibilityEvaluator{
		cfg:      cfg,
		searches: make(map[string]*domain.ActiveSearch),
		reported: make(map[string]bool),
	}
}

// Location returns the reference zone.
func (e *EligibilityEvaluator) Location() *time.Location {
	return e.cfg.Location
}

// ShouldFetch reports whether src should be fetched at now, given the results
// already collected today. A true answer is counted as an attempt.
func (e *EligibilityEvaluator) ShouldFetch(src domain.Source, now time.Time, todays domain.Snapshot) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	today := domain.DateOf(now, e.cfg.Location)
	if todays.AsOfDate == today && todays.Settled(src.ID) {
		return false
	}

	if !src.Valid {
		if !e.reported[src.ID] {
			e.reported[src.ID] = true
			logger.Warn("eligibility: skipping %s, configuration defect: %s", src.ID, src.Defect)
		}
		return false
	}

	search := e.current(src.ID, today)
	if search != nil && (search.Found || search.State == domain.SearchStopped) {
		return false
	}

	drawAt := src.DrawTime.On(today, e.cfg.Location)

	if search == nil {
		if now.Before(drawAt.Add(-e.cfg.Lead)) {
			return false
		}
		if now.After(drawAt.Add(e.cfg.Trail)) {
			e.searches[src.ID] = &domain.ActiveSearch{
				SourceID: src.ID,
				Day:      today,
				State:    domain.SearchStopped,
			}
			logger.Debug("eligibility: %s missed its window (draw at %s)", src.ID, drawAt.Format(time.Kitchen))
			return false
		}
		start := now
		e.searches[src.ID] = &domain.ActiveSearch{
			SourceID:    src.ID,
			Day:         today,
			State:       domain.SearchSearching,
			StartTime:   &start,
			LastAttempt: now,
			Attempts:    1,
		}
		logger.Debug("eligibility: %s entered its window", src.ID)
		return true
	}

	if search.Elapsed(now) > e.cfg.MaxSearch {
		search.StartTime = nil
		search.State = domain.SearchStopped
		logger.Info("eligibility: %s search expired after %d attempts", src.ID, search.Attempts)
		return false
	}

	if now.Sub(search.LastAttempt) < e.cfg.PollInterval {
		return false
	}

	search.Attempts++
	search.LastAttempt = now
	return true
}

// MarkFound settles sourceID for the day of now; its search stops.
func (e *EligibilityEvaluator) MarkFound(sourceID string, now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()

	today := domain.DateOf(now, e.cfg.Location)
	search := e.current(sourceID, today)
	if search == nil {
		search = &domain.ActiveSearch{SourceID: sourceID, Day: today}
		e.searches[sourceID] = search
	}
	search.Found = true
	search.StartTime = nil
	search.State = domain.SearchStopped
}

// InWindow reports whether now falls inside src's window, without touching state.
func (e *EligibilityEvaluator) InWindow(src domain.Source, now time.Time) bool {
	if !src.Valid {
		return false
	}
	drawAt := src.DrawTime.On(domain.DateOf(now, e.cfg.Location), e.cfg.Location)
	return !now.Before(drawAt.Add(-e.cfg.Lead)) && !now.After(drawAt.Add(e.cfg.Trail))
}

// Search returns a copy of sourceID's search for the day of now, or nil.
func (e *EligibilityEvaluator) Search(sourceID string, now time.Time) *domain.ActiveSearch {
	e.mu.Lock()
	defer e.mu.Unlock()

	search := e.current(sourceID, domain.DateOf(now, e.cfg.Location))
	if search == nil {
		return nil
	}
	return copySearch(search)
}

// Searches returns copies of all searches for the day of now, sorted by source ID.
func (e *EligibilityEvaluator) Searches(now time.Time) []domain.ActiveSearch {
	e.mu.Lock()
	defer e.mu.Unlock()

	today := domain.DateOf(now, e.cfg.Location)
	out := make([]domain.ActiveSearch, 0, len(e.searches))
	for id := range e.searches {
		if search := e.current(id, today); search != nil {
			out = append(out, *copySearch(search))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SourceID < out[j].SourceID })
	return out
}

// current returns today's search for id, discarding one left over from another day.
// Caller must hold mu.
func (e *EligibilityEvaluator) current(id string, today domain.Date) *domain.ActiveSearch {
	search, ok := e.searches[id]
	if !ok {
		return nil
	}
	if search.Day != today {
		delete(e.searches, id)
		return nil
	}
	return search
}

func copySearch(s *domain.ActiveSearch) *domain.ActiveSearch {
	out := *s
	if s.StartTime != nil {
		start := *s.StartTime
		out.StartTime = &start
	}
	return &out
}
