package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ladderbook/internal/pricing"
)

func TestPriceLevel_PushTailPreservesArrivalOrder(t *testing.T) {
	lvl := NewPriceLevel(100)
	lvl.PushTail(Order{ID: 1, Quantity: 10})
	lvl.PushTail(Order{ID: 2, Quantity: 20})
	lvl.PushTail(Order{ID: 3, Quantity: 30})

	head, ok := lvl.PeekHead()
	require.True(t, ok)
	assert.Equal(t, OrderID(1), head.ID)
	assert.Equal(t, pricing.Quantity(60), lvl.TotalQuantity())
	assert.Equal(t, 3, lvl.Len())
}

func TestPriceLevel_DecrementHeadKeepsPosition(t *testing.T) {
	lvl := NewPriceLevel(100)
	lvl.PushTail(Order{ID: 1, Quantity: 10})
	lvl.PushTail(Order{ID: 2, Quantity: 20})

	lvl.DecrementHead(4)
	head, ok := lvl.PeekHead()
	require.True(t, ok)
	assert.Equal(t, OrderID(1), head.ID, "partial fill must not move the maker to the tail")
	assert.Equal(t, pricing.Quantity(6), head.Quantity)
	assert.Equal(t, pricing.Quantity(26), lvl.TotalQuantity())
}

func TestPriceLevel_RemoveHead(t *testing.T) {
	lvl := NewPriceLevel(100)
	lvl.PushTail(Order{ID: 1, Quantity: 10})
	lvl.PushTail(Order{ID: 2, Quantity: 20})

	removed, ok := lvl.RemoveHead()
	require.True(t, ok)
	assert.Equal(t, OrderID(1), removed.ID)

	head, ok := lvl.PeekHead()
	require.True(t, ok)
	assert.Equal(t, OrderID(2), head.ID)
	assert.Equal(t, pricing.Quantity(20), lvl.TotalQuantity())
}

func TestPriceLevel_RemoveByID_Middle(t *testing.T) {
	lvl := NewPriceLevel(100)
	lvl.PushTail(Order{ID: 1, Quantity: 10})
	lvl.PushTail(Order{ID: 2, Quantity: 20})
	lvl.PushTail(Order{ID: 3, Quantity: 30})

	removed, ok := lvl.RemoveByID(2)
	require.True(t, ok)
	assert.Equal(t, pricing.Quantity(20), removed.Quantity)
	assert.Equal(t, pricing.Quantity(40), lvl.TotalQuantity())
	assert.Equal(t, 2, lvl.Len())

	head, _ := lvl.PeekHead()
	assert.Equal(t, OrderID(1), head.ID, "removing a non-head order must not disturb arrival order")

	_, ok = lvl.RemoveByID(2)
	assert.False(t, ok, "a second remove of the same id must fail")
}

func TestPriceLevel_EmptyAfterDraining(t *testing.T) {
	lvl := NewPriceLevel(100)
	lvl.PushTail(Order{ID: 1, Quantity: 10})

	_, ok := lvl.RemoveHead()
	require.True(t, ok)

	assert.True(t, lvl.Empty())
	assert.Equal(t, pricing.Quantity(0), lvl.TotalQuantity())
	_, ok = lvl.PeekHead()
	assert.False(t, ok)
}

func TestPriceLevel_TotalQuantityInvariant(t *testing.T) {
	lvl := NewPriceLevel(100)
	orders := []Order{
		{ID: 1, Quantity: 5},
		{ID: 2, Quantity: 7},
		{ID: 3, Quantity: 11},
	}
	for _, o := range orders {
		lvl.PushTail(o)
	}
	lvl.DecrementHead(2)
	lvl.RemoveByID(2)

	var sum pricing.Quantity
	for n := lvl.head; n != nil; n = n.next {
		sum += n.order.Quantity
	}
	assert.Equal(t, sum, lvl.TotalQuantity())
}
