package cart

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

type stubFinder struct {
	products map[string]catalog.Product
}

func (f *stubFinder) FindProduct(_ context.Context, _, productID string) (catalog.Product, error) {
	if p, ok := f.products[productID]; ok {
		return p, nil
	}
	return catalog.Product{}, shared.NewDomainError("PRODUCT_NOT_FOUND", "product not found")
}

func newCartService() (*CartService, *cart.Store) {
	finder := &stubFinder{products: map[string]catalog.Product{
		"p1": {ID: "p1", Title: "Widget", Price: decimal.NewFromInt(100), Images: []string{"p1.jpg"}},
		"p2": {ID: "p2", Title: "Gadget", Price: decimal.NewFromInt(50)},
	}}
	return NewCartService(finder, nil), cart.NewStore()
}

func TestCartService_AddProduct(t *testing.T) {
	t.Run("resolves the product and adds a line", func(t *testing.T) {
		svc, store := newCartService()

		view, err := svc.AddProduct(context.Background(), store, "en", "p1", 2)
		require.NoError(t, err)
		require.Len(t, view.Items, 1)
		assert.Equal(t, "Widget", view.Items[0].Title)
		assert.Equal(t, 2, view.Items[0].Quantity)
		assert.Equal(t, "p1.jpg", view.Items[0].Image)
		assert.True(t, view.Total.Equal(decimal.NewFromInt(200)))
	})

	t.Run("adding the same product again increments the line", func(t *testing.T) {
		svc, store := newCartService()

		_, err := svc.AddProduct(context.Background(), store, "en", "p1", 2)
		require.NoError(t, err)
		view, err := svc.AddProduct(context.Background(), store, "en", "p1", 1)
		require.NoError(t, err)

		require.Len(t, view.Items, 1)
		assert.Equal(t, 3, view.Items[0].Quantity)
		assert.True(t, view.Total.Equal(decimal.NewFromInt(300)))
	})

	t.Run("quantity defaults to one", func(t *testing.T) {
		svc, store := newCartService()

		view, err := svc.AddProduct(context.Background(), store, "en", "p2", 0)
		require.NoError(t, err)
		assert.Equal(t, 1, view.Items[0].Quantity)
	})

	t.Run("unknown products are rejected", func(t *testing.T) {
		svc, store := newCartService()

		_, err := svc.AddProduct(context.Background(), store, "en", "nope", 1)
		require.Error(t, err)
		assert.True(t, store.IsEmpty())
	})
}

func TestCartService_UpdateQuantity(t *testing.T) {
	svc, store := newCartService()
	_, err := svc.AddProduct(context.Background(), store, "en", "p1", 2)
	require.NoError(t, err)

	view, err := svc.UpdateQuantity(store, "p1", "increment")
	require.NoError(t, err)
	assert.Equal(t, 3, view.Items[0].Quantity)

	view, err = svc.UpdateQuantity(store, "p1", "decrement")
	require.NoError(t, err)
	assert.Equal(t, 2, view.Items[0].Quantity)

	_, err = svc.UpdateQuantity(store, "p1", "sideways")
	assert.Error(t, err)
}

func TestCartService_RemoveAndClear(t *testing.T) {
	svc, store := newCartService()
	_, err := svc.AddProduct(context.Background(), store, "en", "p1", 1)
	require.NoError(t, err)
	_, err = svc.AddProduct(context.Background(), store, "en", "p2", 1)
	require.NoError(t, err)

	view := svc.RemoveItem(store, "p1")
	require.Len(t, view.Items, 1)
	assert.Equal(t, "p2", view.Items[0].ID)

	// Removing again is a no-op.
	view = svc.RemoveItem(store, "p1")
	assert.Len(t, view.Items, 1)

	view = svc.Clear(store)
	assert.True(t, view.IsEmpty)
	assert.True(t, view.Total.IsZero())
}

func TestCartService_SelectProduct(t *testing.T) {
	svc, store := newCartService()

	view, err := svc.SelectProduct(context.Background(), store, "en", "p2")
	require.NoError(t, err)
	require.NotNil(t, view.SelectedProduct)
	assert.Equal(t, "Gadget", view.SelectedProduct.Title)

	_, err = svc.SelectProduct(context.Background(), store, "en", "nope")
	assert.Error(t, err)
}
