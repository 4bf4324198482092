// Package messages defines Bubbletea message types for the TUI.
package messages

import (
	"time"

	"github.com/custodia-labs/drawwatch/internal/core/ports/driving"
)

// Tick triggers a periodic refresh.
type Tick struct {
	At time.Time
}

// SnapshotLoaded carries today's snapshot, or the reason there is none.
type SnapshotLoaded struct {
	View *driving.SnapshotView
	Err  error
}

// StatusLoaded carries per-source search state.
type StatusLoaded struct {
	Statuses []driving.SourceStatus
	Err      error
}

// PollCompleted carries the result of a forced poll.
type PollCompleted struct {
	Report *driving.PollReport
	Err    error
}
