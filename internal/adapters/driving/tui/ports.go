// Package tui provides a live terminal dashboard for drawwatch.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"errors"

	"github.com/custodia-labs/drawwatch/internal/core/ports/driving"
)

// ErrMissingPorts is returned when a required port is nil.
var ErrMissingPorts = errors.New("tui: snapshot and source services are required")

// Ports aggregates the driving ports the dashboard needs.
type Ports struct {
	// Snapshot serves today's results and forced polls.
	Snapshot driving.SnapshotService

	// Source exposes the registry and search state.
	Source driving.SourceService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Snapshot == nil || p.Source == nil {
		return ErrMissingPorts
	}
	return nil
}
