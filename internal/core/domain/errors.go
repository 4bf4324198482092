package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownSource indicates the source ID is not in the registry.
	ErrUnknownSource = errors.New("unknown source")

	// ErrInvalidSchedule indicates a missing or malformed draw time.
	ErrInvalidSchedule = errors.New("invalid schedule")

	// ErrDuplicateSource indicates the same source ID was configured twice.
	ErrDuplicateSource = errors.New("duplicate source")

	// ErrCoordinatorFault indicates a batch failed outside per-source isolation.
	ErrCoordinatorFault = errors.New("coordinator fault")

	// ErrNoResults indicates neither a live batch nor the cache produced data.
	// This is the only collection failure surfaced to callers.
	ErrNoResults = errors.New("no results available")

	// ErrArchiveUnavailable indicates no result archive is configured.
	ErrArchiveUnavailable = errors.New("result archive unavailable")
)
