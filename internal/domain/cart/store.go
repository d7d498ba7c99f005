package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/catalog"
)

// Store owns a Cart and serializes every access through a single mutex,
// so each operation is atomic with respect to concurrent request handlers.
// Stores are constructed per session and injected into whatever needs them;
// there is no process-wide cart.
//
// Every mutation notifies subscribers synchronously after it is applied.
type Store struct {
	mu        sync.Mutex
	cart      *Cart
	listeners map[int]Listener
	nextSub   int
}

// NewStore creates a store around an empty cart
func NewStore() *Store {
	return &Store{
		cart:      New(),
		listeners: make(map[int]Listener),
	}
}

// Subscribe registers a listener for cart events and returns the matching
// unsubscribe function. Safe to call from multiple goroutines.
func (s *Store) Subscribe(listener Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.listeners[id] = listener

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// AddItem adds a line to the cart, merging by id
func (s *Store) AddItem(item Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cart.AddItem(item); err != nil {
		return err
	}
	s.notify(Event{Type: EventItemAdded, ItemID: item.ID})
	return nil
}

// UpdateQuantity adjusts a line's quantity by one; no-op on unknown ids
func (s *Store) UpdateQuantity(id string, direction Direction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.UpdateQuantity(id, direction)
	s.notify(Event{Type: EventQuantityUpdated, ItemID: id})
}

// RemoveItem removes a line; calling it again for the same id is a no-op
func (s *Store) RemoveItem(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart.RemoveItem(id) {
		s.notify(Event{Type: EventItemRemoved, ItemID: id})
	}
}

// Clear empties the cart and drops the selected product
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Clear()
	s.notify(Event{Type: EventCleared})
}

// SelectProduct hands off the chosen product to the details view
func (s *Store) SelectProduct(p *catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.SelectProduct(p)
	s.notify(Event{Type: EventProductSelected})
}

// SelectedProduct returns the currently selected product, or nil
func (s *Store) SelectedProduct() *catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.SelectedProduct()
}

// Items returns a snapshot of the cart lines in insertion order
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Items()
}

// IsEmpty reports whether the cart has no lines
func (s *Store) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.IsEmpty()
}

// Total derives the current cart total
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Total()
}

// notify delivers an event to all subscribers. Caller holds the lock.
func (s *Store) notify(event Event) {
	for _, listener := range s.listeners {
		listener(event)
	}
}
