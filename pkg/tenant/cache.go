package tenant

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/tenantguard/pkg/cache"
)

// Cache is the interface for tenant record caching implementations. The
// middleware consults it before hitting the Directory; entries are keyed by
// tenant identifier, never by anything derived from request data.
type Cache interface {
	// Get retrieves a cached record, reporting whether a live entry exists.
	Get(ctx context.Context, id uuid.UUID) (*Record, bool)

	// Set stores a record with the given TTL.
	Set(ctx context.Context, id uuid.UUID, rec *Record, ttl time.Duration)

	// Delete removes a record, e.g. after a tenant is suspended.
	Delete(ctx context.Context, id uuid.UUID)

	// Close releases any resources held by the cache.
	Close() error
}

// DefaultCacheSize is the default maximum number of cached tenant records.
const DefaultCacheSize = 1000

type cacheEntry struct {
	rec       *Record
	expiresAt time.Time
}

// memoryCache bounds resident tenant records with an LRU and treats entries
// past their TTL as misses. Expired entries fall out on access or under
// capacity pressure, so the capacity is the only memory bound that matters.
type memoryCache struct {
	lru *cache.LRU[uuid.UUID, cacheEntry]
}

// NewMemoryCache creates an in-process cache bounded to DefaultCacheSize
// entries.
func NewMemoryCache() Cache {
	return NewMemoryCacheWithSize(DefaultCacheSize)
}

// NewMemoryCacheWithSize creates an in-process cache bounded to maxSize
// entries.
func NewMemoryCacheWithSize(maxSize int) Cache {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}
	return &memoryCache{lru: cache.New[uuid.UUID, cacheEntry](maxSize)}
}

func (c *memoryCache) Get(ctx context.Context, id uuid.UUID) (*Record, bool) {
	entry, ok := c.lru.Get(id)
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		c.lru.Remove(id)
		return nil, false
	}
	return entry.rec, true
}

func (c *memoryCache) Set(ctx context.Context, id uuid.UUID, rec *Record, ttl time.Duration) {
	c.lru.Put(id, cacheEntry{rec: rec, expiresAt: time.Now().Add(ttl)})
}

func (c *memoryCache) Delete(ctx context.Context, id uuid.UUID) {
	c.lru.Remove(id)
}

func (c *memoryCache) Close() error { return nil }

// noopCache disables caching; every lookup goes to the Directory.
type noopCache struct{}

// NewNoopCache creates a cache that never stores anything. Useful in tests
// and for deployments where registry reads are cheap.
func NewNoopCache() Cache {
	return &noopCache{}
}

func (noopCache) Get(ctx context.Context, id uuid.UUID) (*Record, bool) { return nil, false }

func (noopCache) Set(ctx context.Context, id uuid.UUID, rec *Record, ttl time.Duration) {}

func (noopCache) Delete(ctx context.Context, id uuid.UUID) {}

func (noopCache) Close() error { return nil }
