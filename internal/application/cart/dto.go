package cart

import (
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
)

// ItemView is one cart line in API responses
type ItemView struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image,omitempty"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// CartView is the full cart snapshot returned by every cart operation
type CartView struct {
	Items           []ItemView       `json:"items"`
	Total           decimal.Decimal  `json:"total"`
	IsEmpty         bool             `json:"isEmpty"`
	SelectedProduct *catalog.Product `json:"selectedProduct,omitempty"`
}

func toItemView(item cart.Item) ItemView {
	return ItemView{
		ID:        item.ID,
		Title:     item.Title,
		Price:     item.Price,
		Quantity:  item.Quantity,
		Image:     item.Image,
		LineTotal: item.LineTotal(),
	}
}

func toCartView(store *cart.Store) CartView {
	items := store.Items()
	views := make([]ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, toItemView(item))
	}
	return CartView{
		Items:           views,
		Total:           store.Total(),
		IsEmpty:         store.IsEmpty(),
		SelectedProduct: store.SelectedProduct(),
	}
}
