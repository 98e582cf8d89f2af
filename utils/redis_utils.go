package utils

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
)

type RedisClient struct {
	inner *redis.Client
}

var ctx = context.Background()

func GetRedisClient() *RedisClient {
	return &RedisClient{
		inner: redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT")),
			Password: os.Getenv("REDIS_PASSWD"),
			DB:       0, // use default DB
		})}
}

// GetTrendingPayload reads a cached trending ranking. The second return is
// false on miss or on any Redis failure, callers recompute in both cases.
func (r *RedisClient) GetTrendingPayload(key string) (string, bool) {
	payload, err := r.inner.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return payload, true
}

// CacheTrendingPayload stores a trending ranking under key for ttl.
func (r *RedisClient) CacheTrendingPayload(key string, payload string, ttl time.Duration) error {
	return r.inner.Set(ctx, key, payload, ttl).Err()
}
