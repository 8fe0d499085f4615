package provider

import (
	"context"
	"sync"
	"time"

	"github.com/amirasaad/zakat/pkg/currency"
)

// Cached provides an in-memory cache in front of a Source.
type Cached struct {
	next Source
	ttl  time.Duration
	now  func() time.Time

	mu        sync.RWMutex
	value     *Snapshot
	expiresAt time.Time
}

// NewCached creates a new cache with the given TTL
func NewCached(next Source, ttl time.Duration) *Cached {
	return &Cached{next: next, ttl: ttl, now: time.Now}
}

// Snapshot returns the cached snapshot while it is fresh, and otherwise
// asks the wrapped source. Served hits are marked as cached.
func (c *Cached) Snapshot(ctx context.Context) (*Snapshot, error) {
	c.mu.RLock()
	if c.value != nil && c.now().Before(c.expiresAt) {
		s := c.value.clone()
		c.mu.RUnlock()
		s.Rates.Source = currency.RateSourceCached
		return s, nil
	}
	c.mu.RUnlock()

	s, err := c.next.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.value = s.clone()
	c.expiresAt = c.now().Add(c.ttl)
	c.mu.Unlock()
	return s, nil
}

// Metadata implements Source.
func (c *Cached) Metadata() Metadata {
	m := c.next.Metadata()
	m.Name = "cached:" + m.Name
	return m
}

// Clear removes the cached entry
func (c *Cached) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = nil
	c.expiresAt = time.Time{}
}
