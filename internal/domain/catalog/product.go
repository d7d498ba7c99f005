package catalog

import "github.com/shopspring/decimal"

// Specification is a single key/value entry on a product spec sheet
type Specification struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Product represents a storefront product as served by the commerce API.
// Products are read-only here: the service only ever holds copies of what
// the upstream returns, it never creates or mutates them.
type Product struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Price          decimal.Decimal `json:"price"`
	Images         []string        `json:"images"`
	Category       string          `json:"category"`
	Description    string          `json:"description"`
	Features       []string        `json:"features"`
	Specifications []Specification `json:"specifications"`
	Tags           []string        `json:"tags"`
	DeliveryDays   int             `json:"deliveryDays"`
	IsNew          bool            `json:"isNew"`
}

// PrimaryImage returns the first image URL, or "" when the product has none
func (p *Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
