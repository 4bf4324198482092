package services

import (
	"context"
	"math"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// BackoffFunc builds a fresh backoff schedule for one Do call.
type BackoffFunc func() backoff.BackOff

// ExponentialBackoff returns base, base*factor, base*factor^2, ... capped at maxDelay,
// without jitter. A maxDelay of zero leaves the delay uncapped.
func ExponentialBackoff(base time.Duration, factor float64, maxDelay time.Duration) BackoffFunc {
	if maxDelay <= 0 {
		maxDelay = time.Duration(math.MaxInt64)
	}
	return func() backoff.BackOff {
		return backoff.NewExponentialBackOff(
			backoff.WithInitialInterval(base),
			backoff.WithMultiplier(factor),
			backoff.WithRandomizationFactor(0),
			backoff.WithMaxInterval(maxDelay),
			backoff.WithMaxElapsedTime(0),
		)
	}
}

// RetryPolicy bounds how often a failing operation is repeated.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// Backoff builds the pause schedule between attempts. Nil retries immediately.
	Backoff BackoffFunc

	// Retryable decides whether an error is worth another attempt.
	// Nil retries every error.
	Retryable func(error) bool
}

// DefaultRetryPolicy returns 3 attempts with 1s, 2s backoff capped at 10s.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		Backoff:     ExponentialBackoff(time.Second, 2, 10*time.Second),
	}
}

// Do runs op until it succeeds, returns a non-retryable error, attempts are
// exhausted, or ctx is done. It returns the last error and the number of attempts made.
func (p RetryPolicy) Do(ctx context.Context, op func(ctx context.Context) error) (int, error) {
	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var schedule backoff.BackOff = &backoff.ZeroBackOff{}
	if p.Backoff != nil {
		schedule = p.Backoff()
	}
	schedule = backoff.WithContext(backoff.WithMaxRetries(schedule, uint64(maxAttempts-1)), ctx)

	attempts := 0
	err := backoff.Retry(func() error {
		attempts++
		err := op(ctx)
		if err != nil && p.Retryable != nil && !p.Retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}, schedule)
	return attempts, err
}
