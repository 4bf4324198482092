package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/drawwatch/internal/core/domain"
)

// SourceRegistry is the static, ordered mapping from source ID to source.
// It is built once at startup and never mutated.
type SourceRegistry struct {
	order   []string
	sources map[string]domain.Source
}

// NewSourceRegistry validates configs and builds a registry in configuration order.
//
// A malformed or missing draw time does not abort loading: the source is
// registered with Valid=false and the defect is returned in the joined error,
// so the caller can log it once and keep running. With strict set, any defect
// is fatal and no registry is returned. Empty or duplicate IDs are always fatal.
func NewSourceRegistry(configs []domain.SourceConfig, strict bool) (*SourceRegistry, error) {
	r := &SourceRegistry{
		order:   make([]string, 0, len(configs)),
		sources: make(map[string]domain.Source, len(configs)),
	}

	var defects []error
	for _, cfg := range configs {
		id := strings.TrimSpace(cfg.ID)
		if id == "" {
			return nil, fmt.Errorf("%w: source with empty id", domain.ErrInvalidInput)
		}
		if _, exists := r.sources[id]; exists {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateSource, id)
		}

		src := domain.Source{
			ID:          id,
			Name:        cfg.Name,
			RawDrawTime: cfg.DrawTime,
			URL:         cfg.URL,
			Valid:       true,
		}
		tod, err := domain.ParseTimeOfDay(cfg.DrawTime)
		if err != nil {
			schedErr := &domain.ScheduleError{SourceID: id, Value: cfg.DrawTime, Err: err}
			src.Valid = false
			src.Defect = schedErr.Error()
			defects = append(defects, schedErr)
		} else {
			src.DrawTime = tod
		}

		r.order = append(r.order, id)
		r.sources[id] = src
	}

	if len(defects) > 0 {
		joined := errors.Join(defects...)
		if strict {
			return nil, joined
		}
		return r, joined
	}
	return r, nil
}

// Get returns the source with id.
func (r *SourceRegistry) Get(id string) (domain.Source, error) {
	src, ok := r.sources[id]
	if !ok {
		return domain.Source{}, fmt.Errorf("%w: %s", domain.ErrUnknownSource, id)
	}
	return src, nil
}

// All returns every source in registry order.
func (r *SourceRegistry) All() []domain.Source {
	out := make([]domain.Source, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.sources[id])
	}
	return out
}

// IDs returns every source ID in registry order.
func (r *SourceRegistry) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered sources.
func (r *SourceRegistry) Len() int {
	return len(r.order)
}

// Schedule maps each source ID to its configured draw time string.
func (r *SourceRegistry) Schedule() map[string]string {
	out := make(map[string]string, len(r.order))
	for _, id := range r.order {
		out[id] = r.sources[id].RawDrawTime
	}
	return out
}
