package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/drawwatch/internal/core/domain"
	"github.com/custodia-labs/drawwatch/internal/core/ports/driven"
)

var _ driven.ResultArchive = (*ResultArchive)(nil)

type drawKey struct {
	sourceID string
	subgame  string
	date     domain.Date
}

// ResultArchive is an in-memory driven.ResultArchive.
type ResultArchive struct {
	mu    sync.RWMutex
	draws map[drawKey]domain.ArchivedDraw
}

// NewResultArchive creates an empty archive.
func NewResultArchive() *ResultArchive {
	return &ResultArchive{draws: make(map[drawKey]domain.ArchivedDraw)}
}

// SaveDraws stores draws not already archived. The batch is validated first,
// so an invalid draw stores nothing.
func (a *ResultArchive) SaveDraws(_ context.Context, draws []domain.ArchivedDraw) error {
	for _, d := range draws {
		if d.SourceID == "" || d.DrawDate.IsZero() {
			return fmt.Errorf("%w: archived draw needs a source and a date", domain.ErrInvalidInput)
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	for _, d := range draws {
		key := drawKey{sourceID: d.SourceID, subgame: d.Subgame, date: d.DrawDate}
		if _, exists := a.draws[key]; !exists {
			a.draws[key] = d
		}
	}
	return nil
}

// DrawsOn returns the draws for date, ordered by source then sub-game.
func (a *ResultArchive) DrawsOn(_ context.Context, date domain.Date) ([]domain.ArchivedDraw, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var out []domain.ArchivedDraw
	for key, d := range a.draws {
		if key.date == date {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SourceID != out[j].SourceID {
			return out[i].SourceID < out[j].SourceID
		}
		return out[i].Subgame < out[j].Subgame
	})
	return out, nil
}
