// AngelaMos | 2026
// redis.go

package core

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/articlehub/internal/config"
)

const revokedPrefix = "articlehub:revoked:"

type Redis struct {
	Client *redis.Client
}

func NewRedis(ctx context.Context, cfg config.RedisConfig) (*Redis, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	opts.PoolTimeout = 30 * time.Second
	opts.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Redis{Client: client}, nil
}

func (r *Redis) Close() error {
	if r.Client != nil {
		return r.Client.Close()
	}
	return nil
}

func (r *Redis) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := r.Client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}

	return nil
}

func (r *Redis) PoolStats() *redis.PoolStats {
	return r.Client.PoolStats()
}

// Revoke marks key as revoked until ttl elapses. A non-positive ttl is a
// no-op since the subject has already expired.
func (r *Redis) Revoke(ctx context.Context, key string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	if err := r.Client.Set(ctx, revokedPrefix+key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke %s: %w", key, err)
	}

	return nil
}

func (r *Redis) IsRevoked(ctx context.Context, key string) (bool, error) {
	n, err := r.Client.Exists(ctx, revokedPrefix+key).Result()
	if err != nil {
		return false, fmt.Errorf("check revoked %s: %w", key, err)
	}

	return n > 0, nil
}
