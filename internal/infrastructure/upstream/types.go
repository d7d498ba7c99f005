package upstream

import (
	"encoding/json"
	"errors"

	"github.com/storefront/backend/internal/domain/catalog"
)

// Errors surfaced by the upstream client. Callers match with errors.Is;
// both map to the NetworkError class of failures and are never fatal to
// the process.
var (
	// ErrUnavailable means the commerce API could not be reached
	ErrUnavailable = errors.New("upstream: commerce API unavailable")
	// ErrRequestFailed means the commerce API rejected the request
	ErrRequestFailed = errors.New("upstream: commerce API request failed")
	// ErrInvalidResponse means the response body could not be parsed
	ErrInvalidResponse = errors.New("upstream: invalid response from commerce API")
)

// categoriesResponse is the envelope of the category listing endpoint
type categoriesResponse struct {
	Data []catalog.Category `json:"data"`
}

// PlaceOrderResponse carries the payment handoff returned for an accepted
// order. TransactionURL is the payment page the shopper is redirected to.
type PlaceOrderResponse struct {
	TransactionURL string `json:"transactionUrl"`
	OrderNumber    string `json:"orderNumber,omitempty"`
}

// placeOrderResponseEnvelope is the envelope of the order endpoint
type placeOrderResponseEnvelope struct {
	Data PlaceOrderResponse `json:"data"`
}

// orderProduct is one ordered line on the wire: string id, integer quantity
type orderProduct struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// orderPayload is the exact wire shape of the place-order body. The
// transaction amount is a JSON number with two decimal places.
type orderPayload struct {
	FullName          string         `json:"fullName"`
	Email             string         `json:"email"`
	ContactNumber     string         `json:"contactNumber"`
	ShippingAddress   string         `json:"shippingAddress"`
	Notes             string         `json:"notes"`
	TransactionAmount json.Number    `json:"transactionAmount"`
	OrderDeliveryDate string         `json:"orderDeliveryDate"`
	Products          []orderProduct `json:"products"`
}
