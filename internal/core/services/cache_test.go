package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/drawwatch/internal/core/domain"
)

func settledSnapshot(loc *time.Location, now time.Time, ids ...string) domain.Snapshot {
	s := domain.NewSnapshot(domain.DateOf(now, loc))
	for _, id := range ids {
		s.Results[id] = domain.Payload{"main": {Numbers: id + "-1-2"}}
	}
	return s
}

func TestResultCache_Empty(t *testing.T) {
	loc := newYork(t)
	c := NewResultCache(10*time.Minute, loc)

	_, ok := c.Current(clockAt(loc, 13, 0))
	assert.False(t, ok)
	_, ok = c.Fresh(clockAt(loc, 13, 0))
	assert.False(t, ok)
}

func TestResultCache_Freshness(t *testing.T) {
	loc := newYork(t)
	c := NewResultCache(10*time.Minute, loc)
	stored := clockAt(loc, 13, 0)
	c.Store(settledSnapshot(loc, stored, "a"), stored)

	entry, ok := c.Fresh(clockAt(loc, 13, 9))
	require.True(t, ok)
	assert.True(t, entry.CachedAt.Equal(stored))
	assert.True(t, entry.Snapshot.Settled("a"))

	_, ok = c.Fresh(clockAt(loc, 13, 10))
	assert.False(t, ok, "expired at the TTL")

	_, ok = c.Current(clockAt(loc, 23, 59))
	assert.True(t, ok, "same-day entry stays current after expiry")
}

func TestResultCache_NeverServesPreviousDay(t *testing.T) {
	loc := newYork(t)
	c := NewResultCache(48*time.Hour, loc)
	stored := clockAt(loc, 23, 55)
	c.Store(settledSnapshot(loc, stored, "a"), stored)

	nextDay := stored.Add(10 * time.Minute)
	_, ok := c.Current(nextDay)
	assert.False(t, ok)
	_, ok = c.Fresh(nextDay)
	assert.False(t, ok, "a previous day's entry is never current even within the TTL")
}

func TestResultCache_ReturnsCopies(t *testing.T) {
	loc := newYork(t)
	c := NewResultCache(10*time.Minute, loc)
	now := clockAt(loc, 13, 0)

	snapshot := settledSnapshot(loc, now, "a")
	c.Store(snapshot, now)
	snapshot.Results["b"] = domain.Payload{"main": {Numbers: "x"}}

	entry, ok := c.Current(now)
	require.True(t, ok)
	assert.False(t, entry.Snapshot.Settled("b"))

	entry.Snapshot.Results["c"] = domain.Payload{"main": {Numbers: "y"}}
	again, _ := c.Current(now)
	assert.False(t, again.Snapshot.Settled("c"))
}
