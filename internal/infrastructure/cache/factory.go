package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/kitabayar/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// KeyPrefix namespaces every Redis key written by the service
const KeyPrefix = "kitabayar:"

// Factory opens the Store selected by configuration
type Factory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
	sweepInterval         time.Duration
}

// FactoryOption configures a Factory
type FactoryOption func(*Factory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls falling back to memory when Redis is down. Default true.
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *Factory) {
		f.allowInMemoryFallback = allow
	}
}

// NewFactory creates a new factory
func NewFactory(cfg config.RedisConfig, opts ...FactoryOption) *Factory {
	f := &Factory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
		sweepInterval:         5 * time.Minute,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Open returns a Redis store when Redis is configured and reachable,
// otherwise an in-memory store if fallback is allowed.
func (f *Factory) Open(ctx context.Context) (Store, error) {
	if !f.redisConfig.Enabled() {
		f.logger.Info("Redis not configured, using in-memory cache")
		return NewMemoryStore(f.sweepInterval), nil
	}

	client, err := NewRedisClient(ctx, f.redisConfig)
	if err == nil {
		f.logger.Info("Using Redis cache", zap.String("addr", f.redisConfig.Addr()))
		return NewRedisStore(client, KeyPrefix), nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis required but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory cache. "+
		"Token revocations will not be shared between instances.",
		zap.Error(err),
	)
	return NewMemoryStore(f.sweepInterval), nil
}
