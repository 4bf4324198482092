package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/drawwatch/internal/core/domain"
	"github.com/custodia-labs/drawwatch/internal/logger"
)

// Fetcher fetches one source. Implementations must fold every failure into
// the returned outcome.
type Fetcher interface {
	Fetch(ctx context.Context, src domain.Source) domain.FetchOutcome
}

// Ensure SourceFetcher implements Fetcher.
var _ Fetcher = (*SourceFetcher)(nil)

// CoordinatorConfig sizes the worker pool and the chunking of a batch.
type CoordinatorConfig struct {
	Workers    int
	ChunkSize  int
	ChunkPause time.Duration
}

// CoordinatorConfigFrom derives the coordinator config from collector settings.
func CoordinatorConfigFrom(s domain.CollectorSettings) CoordinatorConfig {
	return CoordinatorConfig{
		Workers:    s.Workers,
		ChunkSize:  s.ChunkSize,
		ChunkPause: s.ChunkPause,
	}
}

// Coordinator runs fetches for a batch of sources on a bounded worker pool.
type Coordinator struct {
	fetcher Fetcher
	cfg     CoordinatorConfig
}

// NewCoordinator creates a coordinator. Non-positive sizes fall back to one
// worker and a single chunk.
func NewCoordinator(fetcher Fetcher, cfg CoordinatorConfig) *Coordinator {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Coordinator{fetcher: fetcher, cfg: cfg}
}

type taskResult struct {
	sourceID string
	outcome  domain.FetchOutcome
}

// RunBatch fetches every source and returns one outcome per source ID.
//
// Each task is bounded by perTask and the whole batch by deadline; sources
// still unreported when the deadline fires are recorded as Timeout and the
// call returns at once. The error is reserved for coordinator faults: the
// parent context cancelled before any result, or a panic in the coordinator.
func (c *Coordinator) RunBatch(
	ctx context.Context,
	sources []domain.Source,
	perTask, deadline time.Duration,
) (results map[string]domain.FetchOutcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			results = nil
			err = fmt.Errorf("%w: panic: %v", domain.ErrCoordinatorFault, r)
		}
	}()

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCoordinatorFault, ctxErr)
	}

	results = make(map[string]domain.FetchOutcome, len(sources))
	if len(sources) == 0 {
		return results, nil
	}

	batchCtx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	for i, chunk := range chunkSources(sources, c.cfg.ChunkSize) {
		if i > 0 && c.cfg.ChunkPause > 0 {
			timer := time.NewTimer(c.cfg.ChunkPause)
			select {
			case <-batchCtx.Done():
				timer.Stop()
			case <-timer.C:
			}
		}
		if batchCtx.Err() != nil {
			break
		}
		c.runChunk(batchCtx, chunk, perTask, results)
	}

	if errors.Is(ctx.Err(), context.Canceled) && len(results) == 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrCoordinatorFault, ctx.Err())
	}

	var timedOut int
	for _, src := range sources {
		if _, ok := results[src.ID]; !ok {
			results[src.ID] = domain.TimedOut()
			timedOut++
		}
	}
	if timedOut > 0 {
		logger.Warn("coordinator: batch deadline reached, %d source(s) unreported", timedOut)
	}
	return results, nil
}

// runChunk feeds chunk to the worker pool and collects outcomes until every
// task reported or ctx is done.
func (c *Coordinator) runChunk(
	ctx context.Context,
	chunk []domain.Source,
	perTask time.Duration,
	results map[string]domain.FetchOutcome,
) {
	tasks := make(chan domain.Source)
	out := make(chan taskResult, len(chunk))

	workers := c.cfg.Workers
	if workers > len(chunk) {
		workers = len(chunk)
	}
	done := make(chan struct{}, workers)
	remaining := workers
	for i := 0; i < workers; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for src := range tasks {
				out <- taskResult{sourceID: src.ID, outcome: c.runTask(ctx, src, perTask)}
			}
		}()
	}

	go func() {
		defer close(tasks)
		for _, src := range chunk {
			select {
			case tasks <- src:
			case <-ctx.Done():
				return
			}
		}
	}()

	for reported := 0; reported < len(chunk); {
		select {
		case r := <-out:
			results[r.sourceID] = r.outcome
			reported++
		case <-done:
			remaining--
			if remaining == 0 {
				c.drain(out, results)
				return
			}
		case <-ctx.Done():
			c.drain(out, results)
			return
		}
	}
}

// drain records outcomes already buffered on out without blocking.
func (c *Coordinator) drain(out <-chan taskResult, results map[string]domain.FetchOutcome) {
	for {
		select {
		case r := <-out:
			results[r.sourceID] = r.outcome
		default:
			return
		}
	}
}

// runTask runs one fetch in its own goroutine and stops waiting after perTask.
// A panic in the fetch becomes an Error outcome for this source only.
func (c *Coordinator) runTask(ctx context.Context, src domain.Source, perTask time.Duration) domain.FetchOutcome {
	taskCtx, cancel := context.WithTimeout(ctx, perTask)
	defer cancel()

	done := make(chan domain.FetchOutcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- domain.Failed(fmt.Sprintf("panic: %v", r))
			}
		}()
		done <- c.fetcher.Fetch(taskCtx, src)
	}()

	select {
	case outcome := <-done:
		return outcome
	case <-taskCtx.Done():
		logger.Debug("coordinator: %s timed out", src.ID)
		return domain.TimedOut()
	}
}

func chunkSources(sources []domain.Source, size int) [][]domain.Source {
	if size < 1 || size >= len(sources) {
		return [][]domain.Source{sources}
	}
	chunks := make([][]domain.Source, 0, (len(sources)+size-1)/size)
	for start := 0; start < len(sources); start += size {
		end := start + size
		if end > len(sources) {
			end = len(sources)
		}
		chunks = append(chunks, sources[start:end])
	}
	return chunks
}
