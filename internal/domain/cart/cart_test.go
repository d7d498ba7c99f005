package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newItem(id string, price float64, quantity int) Item {
	return Item{
		ID:       id,
		Title:    "Product " + id,
		Price:    decimal.NewFromFloat(price),
		Quantity: quantity,
		Image:    "https://cdn.example.com/" + id + ".jpg",
	}
}

func TestCart_AddItem(t *testing.T) {
	t.Run("appends new items in insertion order", func(t *testing.T) {
		c := New()
		require.NoError(t, c.AddItem(newItem("p1", 100, 1)))
		require.NoError(t, c.AddItem(newItem("p2", 50, 2)))

		items := c.Items()
		require.Len(t, items, 2)
		assert.Equal(t, "p1", items[0].ID)
		assert.Equal(t, "p2", items[1].ID)
	})

	t.Run("merges duplicate ids by incrementing quantity", func(t *testing.T) {
		c := New()
		require.NoError(t, c.AddItem(newItem("p1", 100, 2)))
		require.NoError(t, c.AddItem(newItem("p1", 100, 1)))

		items := c.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 3, items[0].Quantity)
		assert.True(t, items[0].LineTotal().Equal(decimal.NewFromInt(300)))
	})

	t.Run("distinct ids stay distinct with summed quantities", func(t *testing.T) {
		c := New()
		adds := []Item{
			newItem("a", 10, 1),
			newItem("b", 20, 2),
			newItem("a", 10, 3),
			newItem("c", 30, 1),
			newItem("b", 20, 1),
		}
		for _, item := range adds {
			require.NoError(t, c.AddItem(item))
		}

		items := c.Items()
		require.Len(t, items, 3)
		byID := map[string]int{}
		for _, item := range items {
			byID[item.ID] = item.Quantity
		}
		assert.Equal(t, map[string]int{"a": 4, "b": 3, "c": 1}, byID)
	})

	t.Run("rejects malformed items", func(t *testing.T) {
		c := New()
		assert.Error(t, c.AddItem(newItem("", 100, 1)))
		assert.Error(t, c.AddItem(newItem("p1", 0, 1)))
		assert.Error(t, c.AddItem(newItem("p1", -5, 1)))
		assert.Error(t, c.AddItem(newItem("p1", 100, 0)))
		assert.True(t, c.IsEmpty())
	})
}

func TestCart_UpdateQuantity(t *testing.T) {
	t.Run("increment adds one", func(t *testing.T) {
		c := New()
		require.NoError(t, c.AddItem(newItem("p1", 100, 1)))

		c.UpdateQuantity("p1", DirectionIncrement)
		assert.Equal(t, 2, c.Items()[0].Quantity)
	})

	t.Run("decrement never drops below one", func(t *testing.T) {
		c := New()
		require.NoError(t, c.AddItem(newItem("p1", 100, 2)))

		c.UpdateQuantity("p1", DirectionDecrement)
		assert.Equal(t, 1, c.Items()[0].Quantity)

		c.UpdateQuantity("p1", DirectionDecrement)
		assert.Equal(t, 1, c.Items()[0].Quantity, "decrement must floor at 1, not remove the line")
		assert.Equal(t, 1, c.Len())
	})

	t.Run("unknown id leaves the cart unchanged", func(t *testing.T) {
		c := New()
		require.NoError(t, c.AddItem(newItem("p1", 100, 2)))

		c.UpdateQuantity("missing", DirectionIncrement)
		items := c.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 2, items[0].Quantity)
	})
}

func TestCart_RemoveItem(t *testing.T) {
	c := New()
	require.NoError(t, c.AddItem(newItem("p1", 100, 1)))
	require.NoError(t, c.AddItem(newItem("p2", 50, 1)))

	assert.True(t, c.RemoveItem("p1"))
	require.Len(t, c.Items(), 1)
	assert.Equal(t, "p2", c.Items()[0].ID)

	// Second removal of the same id is a no-op
	assert.False(t, c.RemoveItem("p1"))
	assert.Len(t, c.Items(), 1)
}

func TestCart_Total(t *testing.T) {
	c := New()
	assert.True(t, c.Total().IsZero())

	require.NoError(t, c.AddItem(newItem("p1", 99.90, 2)))
	require.NoError(t, c.AddItem(newItem("p2", 0.10, 1)))
	assert.True(t, c.Total().Equal(decimal.NewFromFloat(199.90)), "got %s", c.Total())

	c.UpdateQuantity("p2", DirectionIncrement)
	assert.True(t, c.Total().Equal(decimal.NewFromFloat(200.00)))

	c.RemoveItem("p1")
	assert.True(t, c.Total().Equal(decimal.NewFromFloat(0.20)))

	c.Clear()
	assert.True(t, c.Total().IsZero())
}

func TestParseDirection(t *testing.T) {
	dir, err := ParseDirection("increment")
	require.NoError(t, err)
	assert.Equal(t, DirectionIncrement, dir)

	dir, err = ParseDirection("decrement")
	require.NoError(t, err)
	assert.Equal(t, DirectionDecrement, dir)

	_, err = ParseDirection("sideways")
	assert.Error(t, err)
}
