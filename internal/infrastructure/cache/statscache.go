package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const statsKeyPrefix = "memberhub:stats:"

// StatsCache stores JSON-encoded stats results. Get reports false on a miss.
type StatsCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

type RedisStatsCache struct {
	client *redis.Client
}

func NewRedisStatsCache(client *redis.Client) *RedisStatsCache {
	return &RedisStatsCache{client: client}
}

func (c *RedisStatsCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := c.client.Get(ctx, statsKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get stats from redis: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cached stats: %w", err)
	}
	return true, nil
}

func (c *RedisStatsCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}
	if err := c.client.Set(ctx, statsKeyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store stats in redis: %w", err)
	}
	return nil
}

// NopStatsCache never hits.
type NopStatsCache struct{}

func (NopStatsCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }

func (NopStatsCache) Set(context.Context, string, interface{}, time.Duration) error { return nil }
