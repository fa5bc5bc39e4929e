package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseClient(t *testing.T, c Client) {
	t.Helper()
	ctx := context.Background()

	_, err := c.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	require.NoError(t, c.Delete(ctx, "k"))
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryClient(t *testing.T) {
	c := NewMemoryClient(time.Minute)
	defer c.Close()

	exerciseClient(t, c)
}

func TestRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	c, err := NewRedisClient(context.Background(), RedisConfig{Addr: mr.Addr(), Prefix: "test:"})
	require.NoError(t, err)
	defer c.Close()

	exerciseClient(t, c)

	require.NoError(t, c.Set(context.Background(), "prefixed", []byte("x"), time.Minute))
	assert.True(t, mr.Exists("test:prefixed"))
}

func TestRedisClient_Expiry(t *testing.T) {
	mr := miniredis.RunT(t)

	c, err := NewRedisClient(context.Background(), RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "short", []byte("x"), time.Second))
	mr.FastForward(2 * time.Second)

	_, err = c.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisClient(context.Background(), RedisConfig{Addr: addr})
	assert.Error(t, err)
}

func TestContentKey(t *testing.T) {
	a := ContentKey([]byte("same"), "pdf", "images=true")
	b := ContentKey([]byte("same"), "pdf", "images=true")
	c := ContentKey([]byte("same"), "pdf", "images=false")
	d := ContentKey([]byte("other"), "pdf", "images=true")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, d)
	assert.True(t, strings.HasPrefix(a, "doc:pdf:images=true:"))
}
