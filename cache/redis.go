package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sage-portal/geo"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisKeyPrefix = "geo:"

// RedisLocationCache shares lookups between server instances. Redis failures
// degrade to cache misses.
type RedisLocationCache struct {
	rdb     *redis.Client
	ttl     time.Duration
	timeout time.Duration
	log     *zap.Logger
}

// ConnectRedis opens a client and checks it with PING.
func ConnectRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return rdb, nil
}

func NewRedisLocationCache(rdb *redis.Client, ttl time.Duration, log *zap.Logger) *RedisLocationCache {
	return &RedisLocationCache{
		rdb:     rdb,
		ttl:     ttl,
		timeout: 500 * time.Millisecond,
		log:     log,
	}
}

func (c *RedisLocationCache) Get(key string) (*geo.Location, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	raw, err := c.rdb.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.log.Warn("redis location cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	var loc geo.Location
	if err := json.Unmarshal(raw, &loc); err != nil {
		c.log.Warn("discarding corrupt location cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &loc, true
}

func (c *RedisLocationCache) Set(key string, loc *geo.Location) {
	if loc == nil || c.ttl <= 0 {
		return
	}
	raw, err := json.Marshal(loc)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	if err := c.rdb.Set(ctx, redisKeyPrefix+key, raw, c.ttl).Err(); err != nil {
		c.log.Warn("redis location cache write failed", zap.String("key", key), zap.Error(err))
	}
}
