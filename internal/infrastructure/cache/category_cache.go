package cache

import (
	"context"

	"github.com/storefront/backend/internal/domain/catalog"
)

// CategoryCache is a short-lived, read-through cache for category listings.
// Keys are the request key of the listing call: (endpoint, language code).
// Entries go stale naturally via TTL; nothing proactively invalidates them.
type CategoryCache interface {
	// Get returns the cached listing for key, or ok=false on miss/expiry
	Get(ctx context.Context, key string) (categories []catalog.Category, ok bool, err error)
	// Set stores a listing under key for the cache's TTL
	Set(ctx context.Context, key string, categories []catalog.Category) error
	// Close releases cache resources
	Close() error
}
