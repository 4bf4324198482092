// Package domain defines the core business entities for drawwatch.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Source: A publisher of draw results with a daily draw time
//   - ActiveSearch: Per-source, per-day eligibility window tracking
//   - FetchOutcome: The tagged result of one fetch attempt
//   - Snapshot: The merged, per-day view of all settled sources
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
