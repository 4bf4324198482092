package services

import (
	"sort"
	"time"

	"github.com/custodia-labs/drawwatch/internal/core/domain"
	"github.com/custodia-labs/drawwatch/internal/logger"
)

// MergeResult is the outcome of folding one batch into a snapshot.
type MergeResult struct {
	// Snapshot is the new snapshot; the input snapshot is left untouched.
	Snapshot domain.Snapshot

	// NewlySettled lists the sources this batch settled, sorted.
	NewlySettled []string

	// Defects lists draw dates that fell back to the merge time.
	Defects []domain.DateDefect
}

// SnapshotMerger folds batches of fetch outcomes into the day's snapshot.
// Merging is additive: a settled source is never overwritten or removed.
type SnapshotMerger struct {
	loc *time.Location
}

// NewSnapshotMerger creates a merger for the reference zone loc.
func NewSnapshotMerger(loc *time.Location) *SnapshotMerger {
	if loc == nil {
		loc = time.UTC
	}
	return &SnapshotMerger{loc: loc}
}

// Merge returns existing with every Found outcome of batch added.
// A snapshot for another day is replaced by an empty one for today first.
func (m *SnapshotMerger) Merge(existing domain.Snapshot, batch map[string]domain.FetchOutcome, now time.Time) MergeResult {
	today := domain.DateOf(now, m.loc)

	var next domain.Snapshot
	if existing.AsOfDate == today && existing.Results != nil {
		next = existing.Clone()
	} else {
		next = domain.NewSnapshot(today)
	}

	ids := make([]string, 0, len(batch))
	for id := range batch {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result := MergeResult{}
	for _, id := range ids {
		outcome := batch[id]
		if !outcome.IsFound() || next.Settled(id) {
			continue
		}
		payload, defects := m.normalize(id, outcome.Payload, now)
		next.Results[id] = payload
		result.NewlySettled = append(result.NewlySettled, id)
		result.Defects = append(result.Defects, defects...)
	}

	result.Snapshot = next
	return result
}

// normalize returns a copy of p with every draw's Date set from its ObservedDate.
func (m *SnapshotMerger) normalize(sourceID string, p domain.Payload, now time.Time) (domain.Payload, []domain.DateDefect) {
	subgames := make([]string, 0, len(p))
	for subgame := range p {
		subgames = append(subgames, subgame)
	}
	sort.Strings(subgames)

	var defects []domain.DateDefect
	out := make(domain.Payload, len(p))
	for _, subgame := range subgames {
		draw := p[subgame]
		date, step := NormalizeDate(draw.ObservedDate, m.loc, now)
		if step == StepFallback {
			logger.Warn("merge: %s/%s: unreadable draw date %q, using merge time", sourceID, subgame, draw.ObservedDate)
			defects = append(defects, domain.DateDefect{SourceID: sourceID, Subgame: subgame, Raw: draw.ObservedDate})
		}
		draw.Date = date
		out[subgame] = draw
	}
	return out, defects
}
