package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/drawwatch/internal/core/domain"
)

// fetcherFunc adapts a function to the Fetcher interface.
type fetcherFunc func(ctx context.Context, src domain.Source) domain.FetchOutcome

func (f fetcherFunc) Fetch(ctx context.Context, src domain.Source) domain.FetchOutcome {
	return f(ctx, src)
}

func foundFor(id string) domain.FetchOutcome {
	return domain.Found(domain.Payload{"main": {Numbers: id + "-1-2", ObservedDate: "2024-03-01"}})
}

func sourcesNamed(ids ...string) []domain.Source {
	out := make([]domain.Source, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.Source{ID: id, URL: "https://results.example/" + id, Valid: true})
	}
	return out
}

func TestCoordinator_RunBatch_AllComplete(t *testing.T) {
	c := NewCoordinator(fetcherFunc(func(_ context.Context, src domain.Source) domain.FetchOutcome {
		return foundFor(src.ID)
	}), CoordinatorConfig{Workers: 3, ChunkSize: 5})

	results, err := c.RunBatch(context.Background(), sourcesNamed("a", "b", "c", "d"), time.Second, 5*time.Second)

	require.NoError(t, err)
	require.Len(t, results, 4)
	for _, id := range []string{"a", "b", "c", "d"} {
		assert.True(t, results[id].IsFound(), id)
	}
}

func TestCoordinator_RunBatch_Empty(t *testing.T) {
	c := NewCoordinator(fetcherFunc(func(context.Context, domain.Source) domain.FetchOutcome {
		t.Fatal("fetch must not be called")
		return domain.NotFound()
	}), CoordinatorConfig{Workers: 3})

	results, err := c.RunBatch(context.Background(), nil, time.Second, time.Second)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestCoordinator_RunBatch_PerTaskTimeout(t *testing.T) {
	c := NewCoordinator(fetcherFunc(func(_ context.Context, src domain.Source) domain.FetchOutcome {
		if src.ID == "slow" {
			// Ignores its context, like a stuck network call.
			time.Sleep(300 * time.Millisecond)
		}
		return foundFor(src.ID)
	}), CoordinatorConfig{Workers: 2})

	start := time.Now()
	results, err := c.RunBatch(context.Background(), sourcesNamed("slow", "fast"), 30*time.Millisecond, 5*time.Second)

	require.NoError(t, err)
	assert.Less(t, time.Since(start), 250*time.Millisecond, "must not wait for the stuck fetch")
	assert.Equal(t, domain.OutcomeTimeout, results["slow"].Kind)
	assert.True(t, results["fast"].IsFound())
}

func TestCoordinator_RunBatch_BatchDeadline(t *testing.T) {
	c := NewCoordinator(fetcherFunc(func(context.Context, domain.Source) domain.FetchOutcome {
		time.Sleep(time.Second)
		return domain.NotFound()
	}), CoordinatorConfig{Workers: 2})

	start := time.Now()
	results, err := c.RunBatch(context.Background(), sourcesNamed("a", "b", "c", "d", "e"), 10*time.Second, 50*time.Millisecond)

	require.NoError(t, err)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
	require.Len(t, results, 5, "every source gets an outcome")
	for id, outcome := range results {
		assert.Equal(t, domain.OutcomeTimeout, outcome.Kind, id)
	}
}

func TestCoordinator_RunBatch_PanicIsolated(t *testing.T) {
	c := NewCoordinator(fetcherFunc(func(_ context.Context, src domain.Source) domain.FetchOutcome {
		if src.ID == "boom" {
			panic("nil selector")
		}
		return foundFor(src.ID)
	}), CoordinatorConfig{Workers: 3})

	results, err := c.RunBatch(context.Background(), sourcesNamed("a", "boom", "c"), time.Second, 5*time.Second)

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeError, results["boom"].Kind)
	assert.Contains(t, results["boom"].Reason, "nil selector")
	assert.True(t, results["a"].IsFound())
	assert.True(t, results["c"].IsFound())
}

func TestCoordinator_RunBatch_BoundsConcurrency(t *testing.T) {
	var inFlight, peak atomic.Int32
	c := NewCoordinator(fetcherFunc(func(_ context.Context, src domain.Source) domain.FetchOutcome {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		inFlight.Add(-1)
		return foundFor(src.ID)
	}), CoordinatorConfig{Workers: 2})

	ids := make([]string, 8)
	for i := range ids {
		ids[i] = fmt.Sprintf("s%d", i)
	}
	results, err := c.RunBatch(context.Background(), sourcesNamed(ids...), time.Second, 5*time.Second)

	require.NoError(t, err)
	assert.Len(t, results, 8)
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestCoordinator_RunBatch_ChunkPause(t *testing.T) {
	c := NewCoordinator(fetcherFunc(func(_ context.Context, src domain.Source) domain.FetchOutcome {
		return foundFor(src.ID)
	}), CoordinatorConfig{Workers: 3, ChunkSize: 2, ChunkPause: 40 * time.Millisecond})

	start := time.Now()
	results, err := c.RunBatch(context.Background(), sourcesNamed("a", "b", "c", "d", "e"), time.Second, 5*time.Second)

	require.NoError(t, err)
	assert.Len(t, results, 5)
	assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond, "two pauses between three chunks")
}

func TestCoordinator_RunBatch_DeadlineDuringPause(t *testing.T) {
	c := NewCoordinator(fetcherFunc(func(_ context.Context, src domain.Source) domain.FetchOutcome {
		return foundFor(src.ID)
	}), CoordinatorConfig{Workers: 1, ChunkSize: 1, ChunkPause: time.Second})

	results, err := c.RunBatch(context.Background(), sourcesNamed("a", "b"), time.Second, 100*time.Millisecond)

	require.NoError(t, err)
	assert.True(t, results["a"].IsFound())
	assert.Equal(t, domain.OutcomeTimeout, results["b"].Kind)
}

func TestCoordinator_RunBatch_CancelledParentIsFault(t *testing.T) {
	c := NewCoordinator(fetcherFunc(func(_ context.Context, src domain.Source) domain.FetchOutcome {
		return foundFor(src.ID)
	}), CoordinatorConfig{Workers: 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := c.RunBatch(ctx, sourcesNamed("a"), time.Second, time.Second)
	assert.Nil(t, results)
	assert.ErrorIs(t, err, domain.ErrCoordinatorFault)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestChunkSources(t *testing.T) {
	src := sourcesNamed("a", "b", "c", "d", "e")

	tests := []struct {
		name string
		size int
		want []int
	}{
		{"no chunking", 0, []int{5}},
		{"larger than batch", 10, []int{5}},
		{"even split", 5, []int{5}},
		{"remainder", 2, []int{2, 2, 1}},
		{"one each", 1, []int{1, 1, 1, 1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := chunkSources(src, tt.size)
			sizes := make([]int, len(chunks))
			for i, c := range chunks {
				sizes[i] = len(c)
			}
			assert.Equal(t, tt.want, sizes)
		})
	}
}

func TestCoordinatorConfigFrom(t *testing.T) {
	cfg := CoordinatorConfigFrom(domain.DefaultCollectorSettings())
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, 5, cfg.ChunkSize)
	assert.Equal(t, 500*time.Millisecond, cfg.ChunkPause)
}
