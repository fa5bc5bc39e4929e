package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryClient is an in-process Client. A run loads its source once, so the CLI
// never selects it; it stands in for Redis where a shared cache is simulated.
type MemoryClient struct {
	cache *gocache.Cache
}

// NewMemoryClient creates a memory cache with the given default TTL.
func NewMemoryClient(defaultTTL time.Duration) *MemoryClient {
	return &MemoryClient{
		cache: gocache.New(defaultTTL, 10*time.Minute),
	}
}

// Get retrieves a value from cache.
func (c *MemoryClient) Get(ctx context.Context, key string) ([]byte, error) {
	if val, found := c.cache.Get(key); found {
		if b, ok := val.([]byte); ok {
			return b, nil
		}
	}
	return nil, ErrCacheMiss
}

// Set stores a value in cache with TTL.
func (c *MemoryClient) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.cache.Set(key, value, ttl)
	return nil
}

// Delete removes a value from cache.
func (c *MemoryClient) Delete(ctx context.Context, key string) error {
	c.cache.Delete(key)
	return nil
}

// Close flushes the cache.
func (c *MemoryClient) Close() error {
	c.cache.Flush()
	return nil
}
