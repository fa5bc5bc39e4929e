// Package cache stores extracted documents between runs.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"
)

// ErrCacheMiss indicates a cache miss.
var ErrCacheMiss = errors.New("cache miss")

// Client defines the cache interface.
type Client interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// CacheKey generates a cache key from components.
func CacheKey(parts ...string) string {
	return strings.Join(parts, ":")
}

// ContentKey derives a key from document bytes so renamed files still hit.
// parts name the extraction settings that shape the cached value.
func ContentKey(content []byte, parts ...string) string {
	sum := sha256.Sum256(content)
	key := append([]string{"doc"}, parts...)
	return CacheKey(append(key, hex.EncodeToString(sum[:]))...)
}
