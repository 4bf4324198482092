package domain

import "time"

// OutcomeKind tags the variant held by a FetchOutcome.
type OutcomeKind int

// Fetch outcome variants.
const (
	// OutcomeFound means at least one of today's draws was extracted.
	OutcomeFound OutcomeKind = iota + 1

	// OutcomeNotAvailable means the source answered but has nothing published.
	OutcomeNotAvailable

	// OutcomeNotFound means the document held no draws for today.
	OutcomeNotFound

	// OutcomeTimeout means the task or batch deadline passed first.
	OutcomeTimeout

	// OutcomeError means the fetch failed after retries.
	OutcomeError
)

// String returns the string representation.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeFound:
		return "found"
	case OutcomeNotAvailable:
		return "not_available"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeTimeout:
		return "timeout"
	case OutcomeError:
		return "error"
	default:
		return "unknown"
	}
}

// Draw is one sub-game result published by a source.
type Draw struct {
	// Numbers is the drawn numbers as published (e.g., "3-7-1").
	Numbers string `json:"numbers"`

	// ObservedDate is the raw date string read from the source.
	ObservedDate string `json:"-"`

	// Date is the normalized, offset-aware draw instant.
	// Zero until the snapshot merger has normalized ObservedDate.
	Date time.Time `json:"date"`
}

// Payload maps a sub-game name to its draw.
type Payload map[string]Draw

// Clone returns a copy of the payload.
func (p Payload) Clone() Payload {
	if p == nil {
		return nil
	}
	out := make(Payload, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// RawDraw is the extractor's view of a draw: unvalidated strings.
type RawDraw struct {
	Numbers string
	RawDate string
}

// RawPayload maps a sub-game name to its raw draw.
type RawPayload map[string]RawDraw

// FetchOutcome is the result of one fetch attempt for one source.
// Only OutcomeFound carries a payload; only OutcomeError carries a reason.
type FetchOutcome struct {
	Kind    OutcomeKind
	Payload Payload
	Reason  string
}

// Found returns a Found outcome carrying p.
func Found(p Payload) FetchOutcome {
	return FetchOutcome{Kind: OutcomeFound, Payload: p}
}

// NotAvailable returns a NotAvailable outcome.
func NotAvailable() FetchOutcome {
	return FetchOutcome{Kind: OutcomeNotAvailable}
}

// NotFound returns a NotFound outcome.
func NotFound() FetchOutcome {
	return FetchOutcome{Kind: OutcomeNotFound}
}

// TimedOut returns a Timeout outcome.
func TimedOut() FetchOutcome {
	return FetchOutcome{Kind: OutcomeTimeout}
}

// Failed returns an Error outcome with reason.
func Failed(reason string) FetchOutcome {
	return FetchOutcome{Kind: OutcomeError, Reason: reason}
}

// IsFound reports whether the outcome carries a usable payload.
func (o FetchOutcome) IsFound() bool {
	return o.Kind == OutcomeFound && len(o.Payload) > 0
}

// String returns the kind, with the reason for errors.
func (o FetchOutcome) String() string {
	if o.Kind == OutcomeError && o.Reason != "" {
		return o.Kind.String() + ": " + o.Reason
	}
	return o.Kind.String()
}
