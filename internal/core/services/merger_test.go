package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/drawwatch/internal/core/domain"
)

func TestSnapshotMerger_Merge_OnlyFoundMutates(t *testing.T) {
	loc := newYork(t)
	m := NewSnapshotMerger(loc)
	now := clockAt(loc, 13, 5)

	result := m.Merge(domain.Snapshot{}, map[string]domain.FetchOutcome{
		"a": foundFor("a"),
		"b": domain.NotFound(),
		"c": domain.NotAvailable(),
		"d": domain.TimedOut(),
		"e": domain.Failed("HTTP 500"),
		"f": domain.Found(nil),
	}, now)

	assert.Equal(t, domain.DateOf(now, loc), result.Snapshot.AsOfDate)
	assert.Equal(t, []string{"a"}, result.Snapshot.SourceIDs())
	assert.Equal(t, []string{"a"}, result.NewlySettled)
	assert.Empty(t, result.Defects)
}

func TestSnapshotMerger_Merge_NormalizesDates(t *testing.T) {
	loc := newYork(t)
	m := NewSnapshotMerger(loc)
	now := clockAt(loc, 13, 5)

	result := m.Merge(domain.Snapshot{}, map[string]domain.FetchOutcome{
		"a": domain.Found(domain.Payload{
			"pick3": {Numbers: "1-2-3", ObservedDate: "2024-03-01T13:00:00"},
			"pick4": {Numbers: "1-2-3-4", ObservedDate: "tonight"},
		}),
	}, now)

	payload := result.Snapshot.Results["a"]
	assert.True(t, payload["pick3"].Date.Equal(clockAt(loc, 13, 0)))
	assert.True(t, payload["pick4"].Date.Equal(now))
	assert.Equal(t, []domain.DateDefect{{SourceID: "a", Subgame: "pick4", Raw: "tonight"}}, result.Defects)
}

func TestSnapshotMerger_Merge_Monotonic(t *testing.T) {
	loc := newYork(t)
	m := NewSnapshotMerger(loc)
	now := clockAt(loc, 13, 5)

	first := m.Merge(domain.Snapshot{}, map[string]domain.FetchOutcome{"a": foundFor("a")}, now)
	original := first.Snapshot.Results["a"]

	for _, outcome := range []domain.FetchOutcome{
		domain.Found(domain.Payload{"main": {Numbers: "9-9-9", ObservedDate: "2024-03-01"}}),
		domain.NotFound(),
		domain.Failed("boom"),
		domain.TimedOut(),
	} {
		again := m.Merge(first.Snapshot, map[string]domain.FetchOutcome{"a": outcome}, now.Add(time.Minute))
		assert.Equal(t, original, again.Snapshot.Results["a"], outcome.String())
		assert.Empty(t, again.NewlySettled)
	}
}

func TestSnapshotMerger_Merge_Idempotent(t *testing.T) {
	loc := newYork(t)
	m := NewSnapshotMerger(loc)
	now := clockAt(loc, 13, 5)
	batch := map[string]domain.FetchOutcome{"a": foundFor("a"), "b": foundFor("b")}

	once := m.Merge(domain.Snapshot{}, batch, now)
	twice := m.Merge(once.Snapshot, batch, now)

	assert.Equal(t, once.Snapshot, twice.Snapshot)
	assert.Empty(t, twice.NewlySettled)
}

func TestSnapshotMerger_Merge_Commutative(t *testing.T) {
	loc := newYork(t)
	m := NewSnapshotMerger(loc)
	now := clockAt(loc, 13, 5)
	batchA := map[string]domain.FetchOutcome{"a": foundFor("a"), "b": domain.NotFound()}
	batchB := map[string]domain.FetchOutcome{"c": foundFor("c"), "d": domain.TimedOut()}

	ab := m.Merge(m.Merge(domain.Snapshot{}, batchA, now).Snapshot, batchB, now)
	ba := m.Merge(m.Merge(domain.Snapshot{}, batchB, now).Snapshot, batchA, now)

	assert.Equal(t, ab.Snapshot.SourceIDs(), ba.Snapshot.SourceIDs())
	assert.Equal(t, ab.Snapshot, ba.Snapshot)
}

func TestSnapshotMerger_Merge_DoesNotMutateInput(t *testing.T) {
	loc := newYork(t)
	m := NewSnapshotMerger(loc)
	now := clockAt(loc, 13, 5)

	existing := m.Merge(domain.Snapshot{}, map[string]domain.FetchOutcome{"a": foundFor("a")}, now).Snapshot
	before := existing.Clone()

	_ = m.Merge(existing, map[string]domain.FetchOutcome{"b": foundFor("b")}, now)

	assert.Equal(t, before, existing)
}

func TestSnapshotMerger_Merge_DayRolloverStartsEmpty(t *testing.T) {
	loc := newYork(t)
	m := NewSnapshotMerger(loc)

	yesterday := m.Merge(domain.Snapshot{}, map[string]domain.FetchOutcome{"a": foundFor("a")}, clockAt(loc, 13, 5))
	today := clockAt(loc, 13, 5).AddDate(0, 0, 1)

	result := m.Merge(yesterday.Snapshot, map[string]domain.FetchOutcome{"b": foundFor("b")}, today)

	assert.Equal(t, domain.DateOf(today, loc), result.Snapshot.AsOfDate)
	assert.Equal(t, []string{"b"}, result.Snapshot.SourceIDs(), "never mixes days")
}

func TestSnapshotMerger_Merge_NewlySettledSorted(t *testing.T) {
	loc := newYork(t)
	m := NewSnapshotMerger(loc)

	result := m.Merge(domain.Snapshot{}, map[string]domain.FetchOutcome{
		"c": foundFor("c"), "a": foundFor("a"), "b": foundFor("b"),
	}, clockAt(loc, 13, 5))

	require.Len(t, result.NewlySettled, 3)
	assert.Equal(t, []string{"a", "b", "c"}, result.NewlySettled)
}
