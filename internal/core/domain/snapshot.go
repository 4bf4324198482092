package domain

import (
	"sort"
	"time"
)

// Snapshot is the merged view of all sources' results for one calendar day.
// A published snapshot is never mutated; the merger returns a new value.
type Snapshot struct {
	// AsOfDate is the day the results belong to.
	AsOfDate Date

	// Results maps a source ID to its settled payload.
	Results map[string]Payload
}

// NewSnapshot returns an empty snapshot for date.
func NewSnapshot(date Date) Snapshot {
	return Snapshot{AsOfDate: date, Results: make(map[string]Payload)}
}

// Settled reports whether sourceID already has a result in the snapshot.
func (s Snapshot) Settled(sourceID string) bool {
	p, ok := s.Results[sourceID]
	return ok && len(p) > 0
}

// SourceIDs returns the settled source IDs in sorted order.
func (s Snapshot) SourceIDs() []string {
	ids := make([]string, 0, len(s.Results))
	for id := range s.Results {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{AsOfDate: s.AsOfDate, Results: make(map[string]Payload, len(s.Results))}
	for id, p := range s.Results {
		out.Results[id] = p.Clone()
	}
	return out
}

// CacheEntry is the single current snapshot held by the result cache.
type CacheEntry struct {
	Snapshot Snapshot
	CachedAt time.Time
}

// DateDefect records an observed date that had to fall back to the merge time.
type DateDefect struct {
	SourceID string `json:"sourceId"`
	Subgame  string `json:"subgame"`
	Raw      string `json:"raw"`
}
