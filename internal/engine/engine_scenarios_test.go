package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The six literal end-to-end scenarios named in spec.md §8, each
// verbatim against the numbered description there.

func TestScenario1_EmptyBookSubmitBidRests(t *testing.T) {
	e := New()

	_, trades, err := e.Submit(Bid, 100, 1, 1, "u1")
	require.NoError(t, err)
	assert.Empty(t, trades)

	stats := e.Stats()
	require.NotNil(t, stats.BestBid)
	assert.EqualValues(t, 100, *stats.BestBid)
	assert.Nil(t, stats.BestAsk)
}

func TestScenario2_CrossingFillsAtMakerPriceAndEmptiesBook(t *testing.T) {
	e := New()

	_, _, err := e.Submit(Ask, 100, 1, 1, "maker")
	require.NoError(t, err)

	_, trades, err := e.Submit(Bid, 101, 1, 2, "taker")
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.EqualValues(t, 100, trades[0].Price)
	assert.EqualValues(t, 1, trades[0].Quantity)
	assert.EqualValues(t, 1, trades[0].Timestamp)

	summary := Summarize(1, trades)
	assert.Equal(t, StatusFilled, summary.Status)

	bids, asks := e.Depth(10)
	assert.Empty(t, bids)
	assert.Empty(t, asks)
}

func TestScenario3_PartialFillPriorityPreservedAcrossSubmits(t *testing.T) {
	e := New()

	makerID, _, err := e.Submit(Ask, 100, 2, 1, "maker")
	require.NoError(t, err)

	_, trades, err := e.Submit(Bid, 100, 1, 2, "taker1")
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.Equal(t, makerID, trades[0].MakerOrderID)

	_, trades, err = e.Submit(Bid, 100, 1, 3, "taker2")
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.Equal(t, makerID, trades[0].MakerOrderID, "the same maker fills the next crossing order too")
}

func TestScenario4_TwoMakersSamePriceFillInArrivalOrder(t *testing.T) {
	e := New()

	makerA, _, err := e.Submit(Ask, 100, 1, 1, "A")
	require.NoError(t, err)
	makerB, _, err := e.Submit(Ask, 100, 1, 2, "B")
	require.NoError(t, err)

	_, trades, err := e.Submit(Bid, 100, 2, 3, "taker")
	require.NoError(t, err)
	require.Len(t, trades, 2)
	assert.Equal(t, makerA, trades[0].MakerOrderID)
	assert.Equal(t, makerB, trades[1].MakerOrderID)
	assert.EqualValues(t, 100, trades[0].Price)
	assert.EqualValues(t, 100, trades[1].Price)
}

func TestScenario5_BestBidMatchedBeforeLowerBid(t *testing.T) {
	e := New()

	_, _, err := e.Submit(Bid, 99, 5, 1, "b1")
	require.NoError(t, err)
	_, _, err = e.Submit(Bid, 100, 5, 2, "b2")
	require.NoError(t, err)

	_, trades, err := e.Submit(Ask, 99, 7, 3, "seller")
	require.NoError(t, err)
	require.Len(t, trades, 2)
	assert.EqualValues(t, 100, trades[0].Price)
	assert.EqualValues(t, 5, trades[0].Quantity)
	assert.EqualValues(t, 99, trades[1].Price)
	assert.EqualValues(t, 2, trades[1].Quantity)

	bids, _ := e.Depth(10)
	require.Len(t, bids, 1)
	assert.EqualValues(t, 99, bids[0].Price)
	assert.EqualValues(t, 3, bids[0].Quantity)
}

func TestScenario6_CancelAuthorizationAndSuccess(t *testing.T) {
	e := New()

	id, _, err := e.Submit(Bid, 100, 1, 1, "u1")
	require.NoError(t, err)

	res := e.Cancel(id, "u2")
	assert.Equal(t, NotFound, res.Status, "cancel by a different owner must fail")

	bids, _ := e.Depth(10)
	require.Len(t, bids, 1, "order still rests after an unauthorized cancel attempt")

	res = e.Cancel(id, "u1")
	assert.Equal(t, Cancelled, res.Status)

	bids, _ = e.Depth(10)
	assert.Empty(t, bids)
}
