package cart

// EventType identifies which mutation a cart event describes
type EventType string

const (
	EventItemAdded       EventType = "cart.item_added"
	EventQuantityUpdated EventType = "cart.quantity_updated"
	EventItemRemoved     EventType = "cart.item_removed"
	EventCleared         EventType = "cart.cleared"
	EventProductSelected EventType = "cart.product_selected"
)

// Event is delivered synchronously to subscribers after each mutation
type Event struct {
	Type   EventType
	ItemID string // set for item-scoped events, empty otherwise
}

// Listener receives cart events. Listeners run synchronously on the
// mutating goroutine and must not call back into the store.
type Listener func(Event)
