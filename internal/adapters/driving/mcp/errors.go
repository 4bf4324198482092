// Package mcp provides an MCP (Model Context Protocol) server adapter for drawwatch.
// It lets AI assistants read today's draw results and the source schedule.
package mcp

import "errors"

// ErrMissingSnapshotService is returned when the snapshot service is not provided.
var ErrMissingSnapshotService = errors.New("mcp: snapshot service is required")

// ErrMissingSourceService is returned when the source service is not provided.
var ErrMissingSourceService = errors.New("mcp: source service is required")
