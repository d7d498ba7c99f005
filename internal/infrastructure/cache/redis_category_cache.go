package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/storefront/backend/internal/domain/catalog"
)

// RedisCategoryCache implements CategoryCache using Redis.
// This is suitable for deployments where multiple storefront instances
// should share one cached copy of the catalog.
type RedisCategoryCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// RedisOptions holds Redis connection configuration for the cache
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisCategoryCache creates a new Redis-backed category cache
func NewRedisCategoryCache(opts RedisOptions, ttl time.Duration) (*RedisCategoryCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCategoryCache{
		client:    client,
		keyPrefix: "catalog:categories:",
		ttl:       ttl,
	}, nil
}

// NewRedisCategoryCacheWithClient creates a cache with an existing Redis client.
// Useful for testing or when sharing a client across components.
func NewRedisCategoryCacheWithClient(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisCategoryCache {
	if keyPrefix == "" {
		keyPrefix = "catalog:categories:"
	}
	return &RedisCategoryCache{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

// Get returns the cached listing for key, decoding the stored JSON
func (c *RedisCategoryCache) Get(ctx context.Context, key string) ([]catalog.Category, bool, error) {
	raw, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var categories []catalog.Category
	if err := json.Unmarshal(raw, &categories); err != nil {
		// A corrupt entry is treated as a miss rather than an error;
		// the caller refetches and overwrites it
		return nil, false, nil
	}

	return categories, true, nil
}

// Set stores a listing under key with the configured TTL
func (c *RedisCategoryCache) Set(ctx context.Context, key string, categories []catalog.Category) error {
	raw, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("failed to encode categories: %w", err)
	}

	if err := c.client.Set(ctx, c.keyPrefix+key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Close closes the underlying Redis client
func (c *RedisCategoryCache) Close() error {
	return c.client.Close()
}

// Ensure RedisCategoryCache implements CategoryCache
var _ CategoryCache = (*RedisCategoryCache)(nil)
