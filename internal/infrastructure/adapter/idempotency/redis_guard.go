package idempotency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amirhossein-jamali/lending-core/internal/domain/port/external"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "lc:webhook:event:"

// store is the subset of the redis client the guard uses
type store interface {
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisEventGuard remembers processed gateway event ids for a TTL
type RedisEventGuard struct {
	store store
	ttl   time.Duration
}

var _ external.EventGuard = (*RedisEventGuard)(nil)

// NewRedisEventGuard wraps an existing redis client
func NewRedisEventGuard(client store, ttl time.Duration) *RedisEventGuard {
	if ttl <= 0 {
		ttl = 48 * time.Hour
	}
	return &RedisEventGuard{store: client, ttl: ttl}
}

// NewRedisClient opens a redis client and verifies connectivity
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, errors.New("redis address is required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// CheckAndMark records eventID and reports whether it was already seen
func (g *RedisEventGuard) CheckAndMark(ctx context.Context, eventID string) (bool, error) {
	created, err := g.store.SetNX(ctx, keyPrefix+eventID, "1", g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("mark webhook event: %w", err)
	}
	return !created, nil
}

// Forget removes eventID so the gateway's retry is processed again
func (g *RedisEventGuard) Forget(ctx context.Context, eventID string) error {
	if err := g.store.Del(ctx, keyPrefix+eventID).Err(); err != nil {
		return fmt.Errorf("forget webhook event: %w", err)
	}
	return nil
}
