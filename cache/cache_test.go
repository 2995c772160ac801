package cache

import (
	"testing"
	"time"

	"sage-portal/geo"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMemoryLocationCache_GetSet(t *testing.T) {
	c := NewMemoryLocationCache(time.Minute)

	_, ok := c.Get("ip:1.2.3.4")
	assert.False(t, ok)

	c.Set("ip:1.2.3.4", &geo.Location{City: "Nice", PostalCode: "06000"})

	got, ok := c.Get("ip:1.2.3.4")
	require.True(t, ok)
	assert.Equal(t, "Nice", got.City)

	// returned value is a copy
	got.City = "Paris"
	again, _ := c.Get("ip:1.2.3.4")
	assert.Equal(t, "Nice", again.City)

	stats := c.Stats()
	assert.Equal(t, 1, stats["entries"])
	assert.Equal(t, 2, stats["hits"])
	assert.Equal(t, 1, stats["misses"])
}

func TestMemoryLocationCache_Expiry(t *testing.T) {
	c := NewMemoryLocationCache(time.Minute)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Set("k", &geo.Location{City: "Paris"})
	_, ok := c.Get("k")
	assert.True(t, ok)

	now = now.Add(time.Minute)
	_, ok = c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Purge())
	assert.Equal(t, 0, c.Stats()["entries"])
}

func TestMemoryLocationCache_IgnoresNilAndZeroTTL(t *testing.T) {
	c := NewMemoryLocationCache(time.Minute)
	c.Set("nil", nil)
	_, ok := c.Get("nil")
	assert.False(t, ok)

	disabled := NewMemoryLocationCache(0)
	disabled.Set("k", &geo.Location{City: "Nice"})
	_, ok = disabled.Get("k")
	assert.False(t, ok)
}

func TestRedisLocationCache_UnreachableDegradesToMiss(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond})
	defer rdb.Close()

	c := NewRedisLocationCache(rdb, time.Minute, zap.NewNop())
	c.Set("k", &geo.Location{City: "Nice"})

	_, ok := c.Get("k")
	assert.False(t, ok)
}
