package address

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheKeyNormalizesCase(t *testing.T) {
	assert.Equal(t, CacheKey("123 Main St"), CacheKey("123 MAIN ST"))
	assert.Equal(t, CacheKey("123 Main St"), CacheKey("  123 main st  "))
	assert.NotEqual(t, CacheKey("123 Main St"), CacheKey("124 Main St"))
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	candidates := []Candidate{{
		RawInput:         "123 Main St",
		FormattedAddress: "123 Main Street, Melbourne VIC 3000",
		Confidence:       0.95,
		Source:           SourceLLM,
	}}

	_, ok := cache.Get(ctx, CacheKey("123 Main St"))
	assert.False(t, ok)

	cache.Set(ctx, CacheKey("123 Main St"), candidates)

	got, ok := cache.Get(ctx, CacheKey("123 Main St"))
	require.True(t, ok)
	assert.Equal(t, candidates, got)
}

func TestMemoryCacheExpiry(t *testing.T) {
	now := time.Now()
	cache := NewMemoryCache()
	cache.now = func() time.Time { return now }

	ctx := context.Background()
	key := CacheKey("123 Main St")
	cache.Set(ctx, key, []Candidate{{FormattedAddress: "123 Main Street"}})

	// Just inside the TTL the entry is still served.
	now = now.Add(CacheDuration - time.Second)
	_, ok := cache.Get(ctx, key)
	assert.True(t, ok)

	// Past the TTL it is gone, and stays gone even if time moves back.
	now = now.Add(2 * time.Second)
	_, ok = cache.Get(ctx, key)
	assert.False(t, ok)

	now = now.Add(-time.Hour)
	_, ok = cache.Get(ctx, key)
	assert.False(t, ok)
}

func TestMemoryCacheOverwrite(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()
	key := CacheKey("123 Main St")

	cache.Set(ctx, key, []Candidate{{FormattedAddress: "old"}})
	cache.Set(ctx, key, []Candidate{{FormattedAddress: "new"}})

	got, ok := cache.Get(ctx, key)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].FormattedAddress)
}
