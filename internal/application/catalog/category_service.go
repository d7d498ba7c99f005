package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/cache"
)

// CategoryFetcher is the outbound port to the commerce API category listing.
// Implemented by the upstream client in the infrastructure layer.
type CategoryFetcher interface {
	ListCategories(ctx context.Context, language string) ([]catalog.Category, error)
}

// CategoryService serves category listings through a short-lived cache with
// in-flight request coalescing: concurrent callers asking for the same
// language share one upstream fetch.
type CategoryService struct {
	fetcher         CategoryFetcher
	cache           cache.CategoryCache
	group           singleflight.Group
	logger          *zap.Logger
	defaultLanguage string
}

// CategoryServiceOption configures a CategoryService
type CategoryServiceOption func(*CategoryService)

// WithCategoryLogger sets the service logger
func WithCategoryLogger(logger *zap.Logger) CategoryServiceOption {
	return func(s *CategoryService) {
		s.logger = logger
	}
}

// NewCategoryService creates a CategoryService
func NewCategoryService(fetcher CategoryFetcher, categoryCache cache.CategoryCache, defaultLanguage string, opts ...CategoryServiceOption) *CategoryService {
	s := &CategoryService{
		fetcher:         fetcher,
		cache:           categoryCache,
		logger:          zap.NewNop(),
		defaultLanguage: defaultLanguage,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListCategories returns the category listing for the given language code,
// falling back to the configured default language when none is given.
// Fetch errors surface to the caller unchanged; there are no retries here.
func (s *CategoryService) ListCategories(ctx context.Context, language string) ([]catalog.Category, error) {
	if language == "" {
		language = s.defaultLanguage
	}
	key := listingKey(language)

	result, err, deduped := s.group.Do(key, func() (interface{}, error) {
		if cached, ok, cacheErr := s.cache.Get(ctx, key); cacheErr != nil {
			s.logger.Warn("category cache read failed", zap.String("key", key), zap.Error(cacheErr))
		} else if ok {
			return cached, nil
		}

		categories, fetchErr := s.fetcher.ListCategories(ctx, language)
		if fetchErr != nil {
			return nil, fetchErr
		}

		if cacheErr := s.cache.Set(ctx, key, categories); cacheErr != nil {
			s.logger.Warn("category cache write failed", zap.String("key", key), zap.Error(cacheErr))
		}
		return categories, nil
	})
	if err != nil {
		return nil, err
	}
	if deduped {
		s.logger.Debug("category fetch coalesced", zap.String("key", key))
	}
	return result.([]catalog.Category), nil
}

// FindProduct locates a product by id across the cached category listing
func (s *CategoryService) FindProduct(ctx context.Context, language, productID string) (catalog.Product, error) {
	categories, err := s.ListCategories(ctx, language)
	if err != nil {
		return catalog.Product{}, err
	}

	for i := range categories {
		if product := categories[i].ProductByID(productID); product != nil {
			return *product, nil
		}
	}
	return catalog.Product{}, shared.NewDomainError("PRODUCT_NOT_FOUND",
		fmt.Sprintf("product %q is not in the catalog", productID))
}

// listing keys carry the endpoint so future cached calls cannot collide
func listingKey(language string) string {
	return "get-categories:" + language
}
