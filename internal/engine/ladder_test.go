package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ladderbook/internal/pricing"
)

func TestPriceLadder_BidOrdersHighestFirst(t *testing.T) {
	ladder := NewPriceLadder(Bid)
	ladder.GetOrCreate(100).PushTail(Order{ID: 1, Quantity: 1})
	ladder.GetOrCreate(102).PushTail(Order{ID: 2, Quantity: 1})
	ladder.GetOrCreate(101).PushTail(Order{ID: 3, Quantity: 1})

	best, ok := ladder.Best()
	require.True(t, ok)
	assert.Equal(t, pricing.Price(102), best.Price)

	levels := ladder.Levels(10)
	require.Len(t, levels, 3)
	assert.Equal(t, []pricing.Price{102, 101, 100}, pricesOf(levels))
}

func TestPriceLadder_AskOrdersLowestFirst(t *testing.T) {
	ladder := NewPriceLadder(Ask)
	ladder.GetOrCreate(100).PushTail(Order{ID: 1, Quantity: 1})
	ladder.GetOrCreate(98).PushTail(Order{ID: 2, Quantity: 1})
	ladder.GetOrCreate(99).PushTail(Order{ID: 3, Quantity: 1})

	best, ok := ladder.Best()
	require.True(t, ok)
	assert.Equal(t, pricing.Price(98), best.Price)

	levels := ladder.Levels(10)
	require.Len(t, levels, 3)
	assert.Equal(t, []pricing.Price{98, 99, 100}, pricesOf(levels))
}

func TestPriceLadder_RemoveDropsEmptyLevel(t *testing.T) {
	ladder := NewPriceLadder(Bid)
	ladder.GetOrCreate(100).PushTail(Order{ID: 1, Quantity: 1})
	assert.Equal(t, 1, ladder.Len())

	ladder.Remove(100)
	assert.Equal(t, 0, ladder.Len())
	_, ok := ladder.Best()
	assert.False(t, ok)
}

func TestPriceLadder_LevelsTruncatesToK(t *testing.T) {
	ladder := NewPriceLadder(Bid)
	for p := pricing.Price(1); p <= 5; p++ {
		ladder.GetOrCreate(p).PushTail(Order{ID: OrderID(p), Quantity: 1})
	}
	levels := ladder.Levels(2)
	require.Len(t, levels, 2)
	assert.Equal(t, []pricing.Price{5, 4}, pricesOf(levels))
}

func pricesOf(levels []*PriceLevel) []pricing.Price {
	out := make([]pricing.Price, len(levels))
	for i, l := range levels {
		out[i] = l.Price
	}
	return out
}
