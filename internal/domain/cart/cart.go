package cart

import (
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// Direction indicates which way a quantity adjustment goes
type Direction string

const (
	DirectionIncrement Direction = "increment"
	DirectionDecrement Direction = "decrement"
)

// ParseDirection validates a direction string
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionIncrement, DirectionDecrement:
		return Direction(s), nil
	default:
		return "", shared.NewDomainError("INVALID_INPUT", "Direction must be 'increment' or 'decrement'")
	}
}

// Item is one cart line: a product id with a quantity and the display
// fields cached at the time the product was added
type Item struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Image    string          `json:"image"`
}

// LineTotal returns price * quantity for this line
func (i Item) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart holds the line items and the transiently selected product for one
// session. Items keep insertion order and hold at most one line per product
// id. Cart itself is not safe for concurrent use; Store serializes access.
type Cart struct {
	items    []Item
	selected *catalog.Product
}

// New creates an empty cart
func New() *Cart {
	return &Cart{}
}

// AddItem adds a line to the cart. Adding an id that is already present
// increments that line's quantity instead of appending a duplicate.
// Malformed input (empty id, non-positive price or quantity) is rejected.
func (c *Cart) AddItem(item Item) error {
	if err := validateItem(item); err != nil {
		return err
	}

	for i := range c.items {
		if c.items[i].ID == item.ID {
			c.items[i].Quantity += item.Quantity
			return nil
		}
	}

	c.items = append(c.items, item)
	return nil
}

// UpdateQuantity adjusts a line's quantity by one in the given direction.
// Decrement floors at 1; dropping a line entirely is RemoveItem's job.
// Unknown ids are a no-op.
func (c *Cart) UpdateQuantity(id string, direction Direction) {
	for i := range c.items {
		if c.items[i].ID != id {
			continue
		}
		switch direction {
		case DirectionIncrement:
			c.items[i].Quantity++
		case DirectionDecrement:
			if c.items[i].Quantity > 1 {
				c.items[i].Quantity--
			}
		}
		return
	}
}

// RemoveItem removes the line with the given id; no-op when absent
func (c *Cart) RemoveItem(id string) bool {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the cart and drops the selected product
func (c *Cart) Clear() {
	c.items = nil
	c.selected = nil
}

// SelectProduct records the product handed off to the details view
func (c *Cart) SelectProduct(p *catalog.Product) {
	c.selected = p
}

// SelectedProduct returns the currently selected product, or nil
func (c *Cart) SelectedProduct() *catalog.Product {
	return c.selected
}

// Items returns a copy of the cart lines in insertion order
func (c *Cart) Items() []Item {
	items := make([]Item, len(c.items))
	copy(items, c.items)
	return items
}

// Len returns the number of distinct lines
func (c *Cart) Len() int {
	return len(c.items)
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Total derives the cart total as sum(price * quantity) over all lines.
// It is always recomputed from the raw lines, never cached.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// validateItem rejects malformed cart input instead of silently storing it
func validateItem(item Item) error {
	if item.ID == "" {
		return shared.NewDomainError("INVALID_INPUT", "Cart item id cannot be empty")
	}
	if !item.Price.IsPositive() {
		return shared.NewDomainError("INVALID_INPUT", "Cart item price must be positive")
	}
	if item.Quantity < 1 {
		return shared.NewDomainError("INVALID_INPUT", "Cart item quantity must be at least 1")
	}
	return nil
}
