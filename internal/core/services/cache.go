package services

import (
	"sync"
	"time"

	"github.com/custodia-labs/drawwatch/internal/core/domain"
)

// ResultCache holds the single most recent snapshot.
type ResultCache struct {
	ttl time.Duration
	loc *time.Location

	mu    sync.RWMutex
	entry *domain.CacheEntry
}

// NewResultCache creates an empty cache. Entries older than ttl are not fresh.
func NewResultCache(ttl time.Duration, loc *time.Location) *ResultCache {
	if loc == nil {
		loc = time.UTC
	}
	return &ResultCache{ttl: ttl, loc: loc}
}

// Current returns a copy of the entry if it belongs to the day of now.
func (c *ResultCache) Current(now time.Time) (domain.CacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.entry == nil || c.entry.Snapshot.AsOfDate != domain.DateOf(now, c.loc) {
		return domain.CacheEntry{}, false
	}
	return domain.CacheEntry{Snapshot: c.entry.Snapshot.Clone(), CachedAt: c.entry.CachedAt}, true
}

// Fresh returns the current entry if it is also younger than the TTL.
func (c *ResultCache) Fresh(now time.Time) (domain.CacheEntry, bool) {
	entry, ok := c.Current(now)
	if !ok || now.Sub(entry.CachedAt) >= c.ttl {
		return domain.CacheEntry{}, false
	}
	return entry, true
}

// Store replaces the entry with snapshot, cached at now.
func (c *ResultCache) Store(snapshot domain.Snapshot, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entry = &domain.CacheEntry{Snapshot: snapshot.Clone(), CachedAt: now}
}
