package checkout

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/cart"
)

// deliveryLeadDays is how far out the promised delivery date is set
const deliveryLeadDays = 7

// OrderProduct is one ordered line in the wire shape the commerce API
// expects: a string product id and an integer quantity
type OrderProduct struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// OrderRequest is the order payload submitted to the commerce API. It is
// built fresh for each submission from the form fields and the live cart
// and never persisted.
type OrderRequest struct {
	FullName          string          `json:"fullName"`
	Email             string          `json:"email"`
	ContactNumber     string          `json:"contactNumber"`
	ShippingAddress   string          `json:"shippingAddress"`
	Notes             string          `json:"notes"`
	TransactionAmount decimal.Decimal `json:"transactionAmount"`
	OrderDeliveryDate string          `json:"orderDeliveryDate"`
	Products          []OrderProduct  `json:"products"`
}

// BuildOrderRequest assembles the order payload. The transaction amount is
// derived from the passed-in items, not from any cached snapshot.
func BuildOrderRequest(fields map[string]string, deliveryDate string, items []cart.Item) OrderRequest {
	products := make([]OrderProduct, 0, len(items))
	total := decimal.Zero
	for _, item := range items {
		products = append(products, OrderProduct{ID: item.ID, Quantity: item.Quantity})
		total = total.Add(item.LineTotal())
	}

	return OrderRequest{
		FullName:          fields[FieldFullName],
		Email:             fields[FieldEmail],
		ContactNumber:     fields[FieldContactNumber],
		ShippingAddress:   fields[FieldShippingAddress],
		Notes:             fields[FieldNotes],
		TransactionAmount: total,
		OrderDeliveryDate: deliveryDate,
		Products:          products,
	}
}

// DeliveryDate returns the read-only promised delivery date, seven calendar
// days from now, formatted as YYYY-MM-DD
func DeliveryDate(now time.Time) string {
	return now.AddDate(0, 0, deliveryLeadDays).Format("2006-01-02")
}
