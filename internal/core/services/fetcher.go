package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/drawwatch/internal/core/domain"
	"github.com/custodia-labs/drawwatch/internal/core/ports/driven"
	"github.com/custodia-labs/drawwatch/internal/logger"
)

// SourceFetcher performs one fetch for one source: transport under a retry
// policy, field extraction, then today's-date filtering.
type SourceFetcher struct {
	transport driven.DocumentTransport
	extractor driven.FieldExtractor
	retry     RetryPolicy
	loc       *time.Location
	now       Clock
}

// NewSourceFetcher creates a fetcher. Only transport failures flagged
// retryable by the transport are retried, whatever policy.Retryable says.
func NewSourceFetcher(
	transport driven.DocumentTransport,
	extractor driven.FieldExtractor,
	policy RetryPolicy,
	loc *time.Location,
	clock Clock,
) *SourceFetcher {
	if loc == nil {
		loc = time.UTC
	}
	if clock == nil {
		clock = SystemClock
	}
	policy.Retryable = driven.IsRetryable
	return &SourceFetcher{
		transport: transport,
		extractor: extractor,
		retry:     policy,
		loc:       loc,
		now:       clock,
	}
}

// Fetch returns the outcome of fetching src. It never panics and never
// returns an error: every failure is folded into the outcome.
func (f *SourceFetcher) Fetch(ctx context.Context, src domain.Source) (outcome domain.FetchOutcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = domain.Failed(fmt.Sprintf("panic: %v", r))
		}
	}()

	if src.URL == "" {
		return domain.Failed("no url configured")
	}

	var doc []byte
	attempts, err := f.retry.Do(ctx, func(ctx context.Context) error {
		body, err := f.transport.Get(ctx, src.URL)
		if err != nil {
			logger.Debug("fetch: %s: %v", src.ID, err)
			return err
		}
		doc = body
		return nil
	})
	switch {
	case err == nil:
	case errors.Is(err, driven.ErrNoContent):
		return domain.NotAvailable()
	case errors.Is(err, context.DeadlineExceeded), ctx.Err() != nil:
		return domain.TimedOut()
	default:
		return domain.Failed(fmt.Sprintf("after %d attempt(s): %v", attempts, err))
	}

	raw, err := f.extractor.Extract(doc, src)
	if err != nil {
		return domain.Failed(fmt.Sprintf("extract: %v", err))
	}
	if len(raw) == 0 {
		return domain.NotFound()
	}

	payload := f.todaysDraws(src.ID, raw)
	if len(payload) == 0 {
		return domain.NotFound()
	}
	return domain.Found(payload)
}

// todaysDraws keeps draws whose observed date is today in the reference zone.
// A date that cannot be read is kept and left to the merger's fallback.
func (f *SourceFetcher) todaysDraws(sourceID string, raw domain.RawPayload) domain.Payload {
	now := f.now()
	today := domain.DateOf(now, f.loc)

	payload := make(domain.Payload, len(raw))
	for subgame, draw := range raw {
		numbers := strings.TrimSpace(draw.Numbers)
		if numbers == "" {
			continue
		}
		observed, step := NormalizeDate(draw.RawDate, f.loc, now)
		if step != StepFallback && domain.DateOf(observed, f.loc) != today {
			logger.Debug("fetch: %s/%s: discarding draw dated %s", sourceID, subgame, draw.RawDate)
			continue
		}
		payload[subgame] = domain.Draw{Numbers: numbers, ObservedDate: draw.RawDate}
	}
	return payload
}
