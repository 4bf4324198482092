package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExponentialBackoff(t *testing.T) {
	schedule := ExponentialBackoff(time.Second, 2, 10*time.Second)()

	want := []time.Duration{
		time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second,
		10 * time.Second, 10 * time.Second,
	}
	for i, d := range want {
		assert.Equal(t, d, schedule.NextBackOff(), "step %d", i+1)
	}
}

func TestExponentialBackoff_FreshSchedulePerCall(t *testing.T) {
	build := ExponentialBackoff(time.Second, 2, 0)

	first := build()
	first.NextBackOff()
	first.NextBackOff()

	assert.Equal(t, time.Second, build().NextBackOff())
}

func TestDefaultRetryPolicy(t *testing.T) {
	p := DefaultRetryPolicy()
	assert.Equal(t, 3, p.MaxAttempts)
	require.NotNil(t, p.Backoff)
	assert.Equal(t, time.Second, p.Backoff().NextBackOff())
}

func noDelay() backoff.BackOff { return &backoff.ZeroBackOff{} }

func TestRetryPolicy_Do(t *testing.T) {
	errTransient := errors.New("transient")
	errPermanent := errors.New("permanent")

	tests := []struct {
		name         string
		failures     []error
		wantAttempts int
		wantErr      error
	}{
		{"first try", nil, 1, nil},
		{"recovers", []error{errTransient, errTransient}, 3, nil},
		{"exhausted", []error{errTransient, errTransient, errTransient, errTransient}, 3, errTransient},
		{"permanent stops", []error{errPermanent, errTransient}, 1, errPermanent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := RetryPolicy{
				MaxAttempts: 3,
				Backoff:     noDelay,
				Retryable:   func(err error) bool { return !errors.Is(err, errPermanent) },
			}
			calls := 0
			attempts, err := p.Do(context.Background(), func(context.Context) error {
				calls++
				if calls <= len(tt.failures) {
					return tt.failures[calls-1]
				}
				return nil
			})

			assert.Equal(t, tt.wantAttempts, attempts)
			assert.Equal(t, tt.wantAttempts, calls)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestRetryPolicy_Do_ZeroAttemptsRunsOnce(t *testing.T) {
	calls := 0
	attempts, err := RetryPolicy{}.Do(context.Background(), func(context.Context) error {
		calls++
		return errors.New("boom")
	})
	assert.Error(t, err)
	assert.Equal(t, 1, attempts)
	assert.Equal(t, 1, calls)
}

func TestRetryPolicy_Do_HonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := RetryPolicy{MaxAttempts: 5, Backoff: func() backoff.BackOff {
		return backoff.NewConstantBackOff(time.Hour)
	}}

	calls := 0
	start := time.Now()
	attempts, err := p.Do(ctx, func(context.Context) error {
		calls++
		cancel()
		return errors.New("fail")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
	assert.Equal(t, 1, calls)
	assert.Less(t, time.Since(start), time.Second)
}

func TestRetryPolicy_Do_WaitsBetweenAttempts(t *testing.T) {
	p := RetryPolicy{MaxAttempts: 3, Backoff: func() backoff.BackOff {
		return backoff.NewConstantBackOff(20 * time.Millisecond)
	}}

	start := time.Now()
	attempts, err := p.Do(context.Background(), func(context.Context) error {
		return errors.New("fail")
	})

	assert.Error(t, err)
	assert.Equal(t, 3, attempts)
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}
