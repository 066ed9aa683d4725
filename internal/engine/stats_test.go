package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsTracker_RefreshBothSidesEmpty(t *testing.T) {
	s := NewStatsTracker()
	bids := NewPriceLadder(Bid)
	asks := NewPriceLadder(Ask)

	s.Refresh(bids, asks)
	snap := s.Snapshot()
	assert.Nil(t, snap.BestBid)
	assert.Nil(t, snap.BestAsk)
	assert.Nil(t, snap.Spread)
	assert.Nil(t, snap.Mid)
}

func TestStatsTracker_RefreshBothSidesPresent(t *testing.T) {
	s := NewStatsTracker()
	bids := NewPriceLadder(Bid)
	asks := NewPriceLadder(Ask)
	bids.GetOrCreate(99).PushTail(Order{ID: 1, Quantity: 1})
	asks.GetOrCreate(101).PushTail(Order{ID: 2, Quantity: 1})

	s.Refresh(bids, asks)
	snap := s.Snapshot()
	require.NotNil(t, snap.BestBid)
	require.NotNil(t, snap.BestAsk)
	assert.EqualValues(t, 99, *snap.BestBid)
	assert.EqualValues(t, 101, *snap.BestAsk)
	require.NotNil(t, snap.Spread)
	assert.EqualValues(t, 2, *snap.Spread)
	require.NotNil(t, snap.Mid)
	assert.Equal(t, 100.0, *snap.Mid)
}

func TestStatsTracker_RecordSubmitAccumulates(t *testing.T) {
	s := NewStatsTracker()
	s.RecordSubmit(nil, 1)
	snap := s.Snapshot()
	assert.EqualValues(t, 1, snap.OrdersCreated)
	assert.EqualValues(t, 0, snap.OrdersMatched)
	assert.Nil(t, snap.LastMatchTime)

	s.RecordSubmit([]Trade{{Price: 100, Quantity: 2}, {Price: 100, Quantity: 3}}, 42)
	snap = s.Snapshot()
	assert.EqualValues(t, 2, snap.OrdersCreated)
	assert.EqualValues(t, 2, snap.OrdersMatched)
	assert.Equal(t, 500.0, snap.VolumeTraded)
	require.NotNil(t, snap.LastMatchTime)
	assert.EqualValues(t, 42, *snap.LastMatchTime)
}

func TestStatsTracker_RecordCancel(t *testing.T) {
	s := NewStatsTracker()
	s.RecordCancel()
	s.RecordCancel()
	assert.EqualValues(t, 2, s.Snapshot().OrdersCancelled)
}
