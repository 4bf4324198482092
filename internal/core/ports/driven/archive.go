package driven

import (
	"context"

	"github.com/custodia-labs/drawwatch/internal/core/domain"
)

// ResultArchive keeps settled draws beyond the in-memory cache.
// It is optional: collection works without it.
type ResultArchive interface {
	// SaveDraws records newly settled draws. Saving a draw twice is a no-op.
	SaveDraws(ctx context.Context, draws []domain.ArchivedDraw) error

	// DrawsOn returns the archived draws for a date, ordered by source then sub-game.
	DrawsOn(ctx context.Context, date domain.Date) ([]domain.ArchivedDraw, error)
}
