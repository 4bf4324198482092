package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/custodia-labs/drawwatch/internal/core/domain"
	"github.com/custodia-labs/drawwatch/internal/core/ports/driven"
	"github.com/custodia-labs/drawwatch/internal/core/ports/driving"
	"github.com/custodia-labs/drawwatch/internal/logger"
)

// Ensure Collector implements the interface.
var _ driving.SnapshotService = (*Collector)(nil)

// BatchRunner fetches a batch of sources under per-task and batch deadlines.
type BatchRunner interface {
	RunBatch(ctx context.Context, sources []domain.Source, perTask, deadline time.Duration) (map[string]domain.FetchOutcome, error)
}

// Ensure Coordinator implements BatchRunner.
var _ BatchRunner = (*Coordinator)(nil)

// Collector runs poll cycles and serves today's snapshot from the cache.
// At most one poll cycle runs per calendar date at a time; concurrent
// callers join the cycle in flight.
type Collector struct {
	registry    *SourceRegistry
	evaluator   *EligibilityEvaluator
	coordinator BatchRunner
	merger      *SnapshotMerger
	cache       *ResultCache
	archive     driven.ResultArchive
	now         Clock

	taskTimeout   time.Duration
	batchDeadline time.Duration

	group singleflight.Group
}

// CollectorDeps bundles the collaborators of a Collector.
// Archive and Clock are optional.
type CollectorDeps struct {
	Registry    *SourceRegistry
	Evaluator   *EligibilityEvaluator
	Coordinator BatchRunner
	Merger      *SnapshotMerger
	Cache       *ResultCache
	Archive     driven.ResultArchive
	Clock       Clock
}

// NewCollector creates a collector using the deadlines from settings.
func NewCollector(deps CollectorDeps, settings domain.CollectorSettings) *Collector {
	clock := deps.Clock
	if clock == nil {
		clock = SystemClock
	}
	return &Collector{
		registry:      deps.Registry,
		evaluator:     deps.Evaluator,
		coordinator:   deps.Coordinator,
		merger:        deps.Merger,
		cache:         deps.Cache,
		archive:       deps.Archive,
		now:           clock,
		taskTimeout:   settings.TaskTimeout,
		batchDeadline: settings.BatchDeadline,
	}
}

// Today returns today's snapshot. A fresh same-day cache entry is served
// without fetching; otherwise one poll cycle runs first. When the cycle
// faults, today's cache entry is served unchanged and marked stale.
func (c *Collector) Today(ctx context.Context) (*driving.SnapshotView, error) {
	now := c.now()
	if entry, ok := c.cache.Fresh(now); ok {
		return c.view(entry.Snapshot, entry.CachedAt, false), nil
	}

	_, pollErr := c.Poll(ctx)

	now = c.now()
	entry, ok := c.cache.Current(now)
	if pollErr != nil {
		if ok {
			logger.Warn("collector: poll cycle failed, serving cached snapshot from %s: %v",
				entry.CachedAt.Format(time.RFC3339), pollErr)
			return c.view(entry.Snapshot, entry.CachedAt, true), nil
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrNoResults, pollErr)
	}
	if ok {
		return c.view(entry.Snapshot, entry.CachedAt, false), nil
	}
	return c.view(domain.NewSnapshot(domain.DateOf(now, c.evaluator.Location())), time.Time{}, false), nil
}

// Poll runs one poll cycle for today, or joins the one already running.
// The cycle is not tied to any single caller: a caller whose ctx ends stops
// waiting, while the cycle runs on to its batch deadline for the others.
func (c *Collector) Poll(ctx context.Context) (*driving.PollReport, error) {
	key := domain.DateOf(c.now(), c.evaluator.Location()).String()
	ch := c.group.DoChan(key, func() (any, error) {
		return c.poll(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Val == nil {
			return nil, res.Err
		}
		report := *res.Val.(*driving.PollReport)
		report.Shared = res.Shared
		return &report, res.Err
	}
}

// poll evaluates eligibility, fetches the eligible sources and merges the
// batch into today's snapshot. The cache is written only when the batch
// settled at least one new source.
func (c *Collector) poll(ctx context.Context) (*driving.PollReport, error) {
	start := c.now()
	report := &driving.PollReport{
		RunID:     uuid.NewString(),
		StartedAt: start,
	}

	today := domain.DateOf(start, c.evaluator.Location())
	todays := domain.NewSnapshot(today)
	if entry, ok := c.cache.Current(start); ok {
		todays = entry.Snapshot
	}

	var eligible []domain.Source
	for _, src := range c.registry.All() {
		if c.evaluator.ShouldFetch(src, start, todays) {
			eligible = append(eligible, src)
			report.Eligible = append(report.Eligible, src.ID)
		}
	}
	if len(eligible) == 0 {
		logger.Debug("collector: run %s: no eligible sources", report.RunID)
		report.EndedAt = c.now()
		return report, nil
	}

	logger.Info("collector: run %s: fetching %s", report.RunID, strings.Join(report.Eligible, ", "))
	outcomes, err := c.coordinator.RunBatch(ctx, eligible, c.taskTimeout, c.batchDeadline)
	if err != nil {
		report.EndedAt = c.now()
		logger.Error("collector: run %s: %v", report.RunID, err)
		return report, err
	}
	report.Outcomes = outcomes

	mergedAt := c.now()
	merged := c.merger.Merge(todays, outcomes, mergedAt)
	report.NewlySettled = merged.NewlySettled
	report.Defects = merged.Defects

	for _, id := range merged.NewlySettled {
		c.evaluator.MarkFound(id, mergedAt)
	}
	if len(merged.NewlySettled) > 0 {
		c.cache.Store(merged.Snapshot, mergedAt)
		c.archiveDraws(ctx, report.RunID, merged, mergedAt)
	}

	logFailures(report.RunID, outcomes)
	report.EndedAt = c.now()
	return report, nil
}

func (c *Collector) archiveDraws(ctx context.Context, runID string, merged MergeResult, at time.Time) {
	if c.archive == nil {
		return
	}
	var draws []domain.ArchivedDraw
	for _, id := range merged.NewlySettled {
		payload := merged.Snapshot.Results[id]
		subgames := make([]string, 0, len(payload))
		for subgame := range payload {
			subgames = append(subgames, subgame)
		}
		sort.Strings(subgames)
		for _, subgame := range subgames {
			draw := payload[subgame]
			draws = append(draws, domain.ArchivedDraw{
				SourceID:    id,
				Subgame:     subgame,
				Numbers:     draw.Numbers,
				DrawDate:    merged.Snapshot.AsOfDate,
				DrawnAt:     draw.Date,
				CollectedAt: at,
				RunID:       runID,
			})
		}
	}
	if err := c.archive.SaveDraws(ctx, draws); err != nil {
		logger.Warn("collector: run %s: archive: %v", runID, err)
	}
}

// logFailures writes one summary line for the sources that errored or timed out.
func logFailures(runID string, outcomes map[string]domain.FetchOutcome) {
	var failed []string
	for id, outcome := range outcomes {
		switch outcome.Kind {
		case domain.OutcomeError, domain.OutcomeTimeout:
			failed = append(failed, fmt.Sprintf("%s (%s)", id, outcome))
		}
	}
	if len(failed) == 0 {
		return
	}
	sort.Strings(failed)
	logger.Warn("collector: run %s: %d source(s) failed: %s", runID, len(failed), strings.Join(failed, ", "))
}

func (c *Collector) view(s domain.Snapshot, cachedAt time.Time, stale bool) *driving.SnapshotView {
	considered := c.registry.IDs()
	withResults := make([]string, 0, len(s.Results))
	for _, id := range considered {
		if s.Settled(id) {
			withResults = append(withResults, id)
		}
	}
	return &driving.SnapshotView{
		AsOfDate:           s.AsOfDate,
		Results:            s.Results,
		SourcesConsidered:  considered,
		SourcesWithResults: withResults,
		CachedAt:           cachedAt,
		Stale:              stale,
	}
}
