package driven

import "github.com/custodia-labs/drawwatch/internal/core/domain"

// FieldExtractor maps a fetched document to raw draw strings.
// The core treats it as opaque; an empty result means nothing was published.
type FieldExtractor interface {
	// Extract returns the sub-game draws found in doc for src.
	Extract(doc []byte, src domain.Source) (domain.RawPayload, error)
}
