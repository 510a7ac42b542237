// Package cache provides a generic, thread-safe LRU cache with a fixed
// capacity. It backs the in-process tenant record cache, where a bounded
// number of hot tenants should stay resident without growing memory with the
// tenant count.
//
// Create a cache with a capacity and use it like a map:
//
//	c := cache.New[uuid.UUID, *tenant.Record](1000)
//	c.Put(id, rec)
//	if rec, ok := c.Get(id); ok {
//		// rec is now the most recently used entry
//	}
//
// When the cache is full, Put evicts the least recently used entry. Get and
// Put both refresh recency; Remove and Clear drop entries immediately. All
// operations are O(1) and safe for concurrent use.
//
// The cache has no expiry of its own. Callers that need TTL semantics store
// the deadline inside the value and treat stale hits as misses.
package cache
