package domain

import "time"

// SearchState is the lifecycle state of an ActiveSearch.
type SearchState string

// Active search states.
const (
	// SearchNotStarted means the source has not entered its window today.
	SearchNotStarted SearchState = "not_started"

	// SearchSearching means the source is inside its window and being polled.
	SearchSearching SearchState = "searching"

	// SearchStopped means the source was found or its window expired.
	SearchStopped SearchState = "stopped"
)

// ActiveSearch tracks one source's eligibility window for one day.
type ActiveSearch struct {
	// SourceID identifies the source.
	SourceID string

	// Day is the calendar date this search belongs to.
	Day Date

	// State is the current lifecycle state.
	State SearchState

	// StartTime is when the source entered its window. Nil when not searching.
	StartTime *time.Time

	// LastAttempt is when the source was last reported eligible.
	LastAttempt time.Time

	// Attempts counts how many times the source was reported eligible today.
	Attempts int

	// Found is true once a result was merged for the day.
	Found bool
}

// Elapsed returns how long the search has been running at now.
// Returns zero if the search has no start time.
func (a *ActiveSearch) Elapsed(now time.Time) time.Duration {
	if a.StartTime == nil {
		return 0
	}
	return now.Sub(*a.StartTime)
}
