package cache

import (
	"context"
	"sync"
	"time"

	"github.com/storefront/backend/internal/domain/catalog"
)

// entry holds a cached listing with its expiration
type entry struct {
	categories []catalog.Category
	expiresAt  time.Time
}

// InMemoryCategoryCache implements CategoryCache using an in-memory map.
// This is suitable for single-instance deployments and testing.
type InMemoryCategoryCache struct {
	mu        sync.RWMutex
	ttl       time.Duration
	entries   map[string]entry
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryCategoryCache creates a new in-memory category cache.
// It starts a background goroutine to clean up expired entries.
func NewInMemoryCategoryCache(ttl time.Duration) *InMemoryCategoryCache {
	c := &InMemoryCategoryCache{
		ttl:      ttl,
		entries:  make(map[string]entry),
		stopChan: make(chan struct{}),
	}

	c.wg.Add(1)
	go c.cleanupLoop()

	return c
}

// Get returns the cached listing for key if present and not expired
func (c *InMemoryCategoryCache) Get(ctx context.Context, key string) ([]catalog.Category, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, exists := c.entries[key]
	if !exists {
		return nil, false, nil
	}
	if time.Now().After(e.expiresAt) {
		return nil, false, nil // Expired, treat as miss
	}

	return e.categories, true, nil
}

// Set stores a listing under key with the configured TTL
func (c *InMemoryCategoryCache) Set(ctx context.Context, key string, categories []catalog.Category) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		categories: categories,
		expiresAt:  time.Now().Add(c.ttl),
	}
	return nil
}

// Close stops the cleanup goroutine and releases resources.
// Safe to call multiple times.
func (c *InMemoryCategoryCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
		c.wg.Wait()
	})
	return nil
}

// cleanupLoop periodically removes expired entries
func (c *InMemoryCategoryCache) cleanupLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.removeExpired()
		}
	}
}

// removeExpired drops all entries past their expiration
func (c *InMemoryCategoryCache) removeExpired() {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}

// Ensure InMemoryCategoryCache implements CategoryCache
var _ CategoryCache = (*InMemoryCategoryCache)(nil)
