package config

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects the gallery/statistics cache. Services treat a nil
// client as cache-off, so callers may continue without Redis.
func NewRedisClient(cfg *Config) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return client, nil
}
