package helpers

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes a redis client, or returns nil when addr is
// empty. Consumers treat a nil client as "feature off".
func NewRedisClient(addr, password string, db int) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func RedisSetJSON(ctx context.Context, rdb *redis.Client, key string, value interface{}, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, b, ttl).Err()
}

// RedisJSONCache stores JSON documents under a key prefix.
type RedisJSONCache struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisJSONCache(rdb *redis.Client, prefix string, ttl time.Duration) *RedisJSONCache {
	return &RedisJSONCache{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (c *RedisJSONCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	res, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(res, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisJSONCache) Set(ctx context.Context, key string, value any) error {
	return RedisSetJSON(ctx, c.rdb, c.prefix+key, value, c.ttl)
}
