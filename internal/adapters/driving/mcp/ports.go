package mcp

import (
	"github.com/custodia-labs/drawwatch/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server needs.
type Ports struct {
	// Snapshot serves today's results and forced polls.
	Snapshot driving.SnapshotService

	// Source exposes the registry and schedule.
	Source driving.SourceService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Snapshot == nil {
		return ErrMissingSnapshotService
	}
	if p.Source == nil {
		return ErrMissingSourceService
	}
	return nil
}
