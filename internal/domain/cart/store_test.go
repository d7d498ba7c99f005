package cart

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/catalog"
)

func TestStore_NotifiesSubscribersSynchronously(t *testing.T) {
	store := NewStore()

	var events []Event
	unsubscribe := store.Subscribe(func(e Event) {
		events = append(events, e)
	})

	require.NoError(t, store.AddItem(newItem("p1", 100, 1)))
	store.UpdateQuantity("p1", DirectionIncrement)
	store.RemoveItem("p1")
	store.Clear()

	require.Len(t, events, 4)
	assert.Equal(t, EventItemAdded, events[0].Type)
	assert.Equal(t, "p1", events[0].ItemID)
	assert.Equal(t, EventQuantityUpdated, events[1].Type)
	assert.Equal(t, EventItemRemoved, events[2].Type)
	assert.Equal(t, EventCleared, events[3].Type)

	// After unsubscribe no further events are delivered
	unsubscribe()
	require.NoError(t, store.AddItem(newItem("p2", 10, 1)))
	assert.Len(t, events, 4)
}

func TestStore_RemoveOfMissingItemDoesNotNotify(t *testing.T) {
	store := NewStore()

	notified := 0
	defer store.Subscribe(func(Event) { notified++ })()

	store.RemoveItem("missing")
	assert.Zero(t, notified)
}

func TestStore_SelectProduct(t *testing.T) {
	store := NewStore()
	assert.Nil(t, store.SelectedProduct())

	p := &catalog.Product{ID: "p1", Title: "Widget", Price: decimal.NewFromInt(100)}
	store.SelectProduct(p)
	require.NotNil(t, store.SelectedProduct())
	assert.Equal(t, "p1", store.SelectedProduct().ID)

	// Clear drops the selection along with the items
	store.Clear()
	assert.Nil(t, store.SelectedProduct())
}

func TestStore_ConcurrentMutations(t *testing.T) {
	store := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.AddItem(newItem("p1", 100, 1))
			store.UpdateQuantity("p1", DirectionIncrement)
		}()
	}
	wg.Wait()

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 100, items[0].Quantity)
	assert.True(t, store.Total().Equal(decimal.NewFromInt(10000)))
}
