// Package services implements the driving port interfaces.
// Services contain the collection logic and orchestrate
// calls to driven ports (adapters).
//
// A poll cycle runs leaf-first: the EligibilityEvaluator picks the sources
// worth fetching, the Coordinator fetches them on a bounded worker pool
// through a SourceFetcher, the SnapshotMerger folds the outcomes into
// today's snapshot and the ResultCache holds the result for readers.
// The Collector ties the cycle together behind driving.SnapshotService.
//
// Services are pure Go with no CGO.
package services
