package cache

import (
	"context"

	"github.com/erp/accounting/internal/domain/shared"
	"github.com/erp/accounting/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Stores bundles the Redis client, if any, with the idempotency store built on it
type Stores struct {
	Redis       *redis.Client // nil when Redis is disabled or unreachable
	Idempotency shared.IdempotencyStore
}

// Close releases the idempotency store and the Redis client
func (s *Stores) Close() error {
	_ = s.Idempotency.Close()
	if s.Redis != nil {
		return s.Redis.Close()
	}
	return nil
}

// Open connects to Redis when enabled and builds the idempotency store on it.
// An unreachable Redis falls back to in-memory state with a warning.
func Open(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) *Stores {
	if !cfg.Enabled {
		logger.Info("Redis disabled, using in-memory idempotency store")
		return &Stores{Idempotency: NewInMemoryIdempotencyStore()}
	}

	client, err := NewRedisClient(ctx, cfg)
	if err != nil {
		logger.Warn("Redis unavailable, falling back to in-memory idempotency store; "+
			"replays are only detected per process",
			zap.Error(err),
		)
		return &Stores{Idempotency: NewInMemoryIdempotencyStore()}
	}

	logger.Info("Using Redis idempotency store", zap.String("addr", cfg.Addr()))
	return &Stores{
		Redis:       client,
		Idempotency: NewRedisIdempotencyStore(client, DefaultIdempotencyPrefix),
	}
}
