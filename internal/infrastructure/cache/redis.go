package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/marcos-nsantos/imgstore/internal/infrastructure/config"
)

const dialTimeout = 3 * time.Second

// NewRedisClient connects to the metadata cache. A cache that does not answer
// a ping is reported as an error so callers can run without it.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr(),
		Password:    cfg.Password,
		DB:          cfg.DB,
		ClientName:  "imgstore",
		DialTimeout: dialTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("pinging metadata cache at %s: %w", cfg.Addr(), errors.Join(err, client.Close()))
	}

	return client, nil
}
