package address

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"
)

// CacheDuration is how long a resolved result set stays valid.
const CacheDuration = 24 * time.Hour

// Cache stores previously computed candidate lists keyed by CacheKey.
// Entries are overwritten wholesale, never merged.
type Cache interface {
	Get(ctx context.Context, key string) ([]Candidate, bool)
	Set(ctx context.Context, key string, candidates []Candidate)
}

// CacheKey derives the cache key from the case-normalized input so that
// differently-cased queries for the same address hit the same entry.
func CacheKey(raw string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(raw))))
	return hex.EncodeToString(sum[:])
}

type cacheEntry struct {
	candidates []Candidate
	expiresAt  time.Time
}

// MemoryCache is an in-process Cache with TTL expiry. Expiry is enforced
// lazily on Get; there is no background sweep. Size is unbounded beyond
// TTL expiry, which is acceptable while the set of distinct address
// strings stays small; use RedisCache when that assumption breaks.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryCache creates an in-memory cache with the default TTL.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]cacheEntry),
		ttl:     CacheDuration,
		now:     time.Now,
	}
}

// Get returns the cached candidates for key. An entry whose TTL has passed
// is removed at this point and reported absent.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]Candidate, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.candidates, true
}

// Set stores candidates under key, replacing any previous entry.
func (c *MemoryCache) Set(ctx context.Context, key string, candidates []Candidate) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		candidates: candidates,
		expiresAt:  c.now().Add(c.ttl),
	}
}
