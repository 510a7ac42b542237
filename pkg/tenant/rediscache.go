package tenant

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// redisCache shares tenant records across instances through Redis. Cache
// misses and marshaling failures degrade to a Directory lookup; they are
// never fatal to the request.
type redisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache creates a Redis-backed cache. The client is owned by the
// caller; Close on the cache does not close it. An empty prefix defaults to
// "tenant:".
func NewRedisCache(client *redis.Client, prefix string) Cache {
	if prefix == "" {
		prefix = "tenant:"
	}
	return &redisCache{client: client, prefix: prefix}
}

func (c *redisCache) key(id uuid.UUID) string {
	return c.prefix + id.String()
}

func (c *redisCache) Get(ctx context.Context, id uuid.UUID) (*Record, bool) {
	data, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		return nil, false
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		// Corrupt entry: drop it so the next lookup repopulates.
		c.client.Del(ctx, c.key(id))
		return nil, false
	}
	return &rec, true
}

func (c *redisCache) Set(ctx context.Context, id uuid.UUID, rec *Record, ttl time.Duration) {
	data, err := json.Marshal(rec)
	if err != nil {
		return
	}
	c.client.Set(ctx, c.key(id), data, ttl)
}

func (c *redisCache) Delete(ctx context.Context, id uuid.UUID) {
	c.client.Del(ctx, c.key(id))
}

func (c *redisCache) Close() error {
	return nil
}
