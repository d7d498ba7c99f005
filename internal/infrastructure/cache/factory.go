package cache

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/infrastructure/config"
)

// CategoryCacheFactory creates category caches based on configuration
type CategoryCacheFactory struct {
	cacheConfig           config.CacheConfig
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// CategoryCacheFactoryOption is a functional option for configuring the factory
type CategoryCacheFactoryOption func(*CategoryCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) CategoryCacheFactoryOption {
	return func(f *CategoryCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory cache
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) CategoryCacheFactoryOption {
	return func(f *CategoryCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewCategoryCacheFactory creates a new factory
func NewCategoryCacheFactory(cacheCfg config.CacheConfig, redisCfg config.RedisConfig, opts ...CategoryCacheFactoryOption) *CategoryCacheFactory {
	f := &CategoryCacheFactory{
		cacheConfig:           cacheCfg,
		redisConfig:           redisCfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateCache creates a category cache for the configured backend.
// With the redis backend, Redis connection failure falls back to the
// in-memory cache unless fallback is disabled.
func (f *CategoryCacheFactory) CreateCache() (CategoryCache, error) {
	ttl := f.cacheConfig.CategoryTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	if f.cacheConfig.Backend != "redis" {
		return NewInMemoryCategoryCache(ttl), nil
	}

	cache, err := NewRedisCategoryCache(RedisOptions{
		Addr:     f.redisConfig.Addr(),
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}, ttl)
	if err == nil {
		f.logger.Info("using Redis category cache")
		return cache, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for category cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory category cache. "+
		"Each instance will fetch and hold its own copy of the catalog.",
		zap.Error(err),
	)
	return NewInMemoryCategoryCache(ttl), nil
}
