package cart

import (
	"context"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
)

// ProductFinder resolves a product id against the catalog.
// Implemented by the catalog application service.
type ProductFinder interface {
	FindProduct(ctx context.Context, language, productID string) (catalog.Product, error)
}

// CartService maps product-level API requests onto a session's cart store.
// The store itself is passed per call because every session owns its own.
type CartService struct {
	products ProductFinder
	logger   *zap.Logger
}

// NewCartService creates a CartService
func NewCartService(products ProductFinder, logger *zap.Logger) *CartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartService{products: products, logger: logger}
}

// View returns the current cart snapshot
func (s *CartService) View(store *cart.Store) CartView {
	return toCartView(store)
}

// AddProduct resolves the product from the catalog and adds it to the cart.
// Adding a product already in the cart increments its quantity.
func (s *CartService) AddProduct(ctx context.Context, store *cart.Store, language, productID string, quantity int) (CartView, error) {
	if quantity < 1 {
		quantity = 1
	}

	product, err := s.products.FindProduct(ctx, language, productID)
	if err != nil {
		return CartView{}, err
	}

	item := cart.Item{
		ID:       product.ID,
		Title:    product.Title,
		Price:    product.Price,
		Quantity: quantity,
		Image:    product.PrimaryImage(),
	}
	if err := store.AddItem(item); err != nil {
		return CartView{}, err
	}

	s.logger.Debug("cart item added",
		zap.String("product_id", product.ID),
		zap.Int("quantity", quantity))
	return toCartView(store), nil
}

// UpdateQuantity steps an item's quantity up or down. Decrement floors at
// one; unknown ids are a no-op.
func (s *CartService) UpdateQuantity(store *cart.Store, itemID, direction string) (CartView, error) {
	dir, err := cart.ParseDirection(direction)
	if err != nil {
		return CartView{}, err
	}
	store.UpdateQuantity(itemID, dir)
	return toCartView(store), nil
}

// RemoveItem drops an item from the cart; removing a missing id is a no-op
func (s *CartService) RemoveItem(store *cart.Store, itemID string) CartView {
	store.RemoveItem(itemID)
	return toCartView(store)
}

// Clear empties the cart and drops the selected product
func (s *CartService) Clear(store *cart.Store) CartView {
	store.Clear()
	return toCartView(store)
}

// SelectProduct marks a catalog product as the one currently being viewed
func (s *CartService) SelectProduct(ctx context.Context, store *cart.Store, language, productID string) (CartView, error) {
	product, err := s.products.FindProduct(ctx, language, productID)
	if err != nil {
		return CartView{}, err
	}
	store.SelectProduct(&product)
	return toCartView(store), nil
}
