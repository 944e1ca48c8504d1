package address

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "address:validate:"

// RedisCache is a Cache backed by Redis, for deployments where validation
// results should be shared across server instances. TTL is enforced
// server-side via key expiry.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a Redis-backed cache with the default TTL.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    CacheDuration,
	}
}

// Get returns the cached candidates for key. Any transport or decode
// failure degrades to a cache miss.
func (c *RedisCache) Get(ctx context.Context, key string) ([]Candidate, bool) {
	data, err := c.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Warning: redis cache read failed: %v", err)
		}
		return nil, false
	}

	var candidates []Candidate
	if err := json.Unmarshal(data, &candidates); err != nil {
		log.Printf("Warning: redis cache entry corrupt, dropping: %v", err)
		c.client.Del(ctx, redisKeyPrefix+key)
		return nil, false
	}
	return candidates, true
}

// Set stores candidates under key, replacing any previous entry.
func (c *RedisCache) Set(ctx context.Context, key string, candidates []Candidate) {
	data, err := json.Marshal(candidates)
	if err != nil {
		log.Printf("Warning: failed to encode candidates for cache: %v", err)
		return
	}
	if err := c.client.Set(ctx, redisKeyPrefix+key, data, c.ttl).Err(); err != nil {
		log.Printf("Warning: redis cache write failed: %v", err)
	}
}
