package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize_New(t *testing.T) {
	s := Summarize(10, nil)
	assert.Equal(t, StatusNew, s.Status)
	assert.EqualValues(t, 0, s.Filled)
	assert.EqualValues(t, 10, s.Remaining)
	assert.Equal(t, 0.0, s.AvgPrice)
}

func TestSummarize_Filled(t *testing.T) {
	trades := []Trade{{Price: 100, Quantity: 4}, {Price: 100, Quantity: 6}}
	s := Summarize(10, trades)
	assert.Equal(t, StatusFilled, s.Status)
	assert.EqualValues(t, 10, s.Filled)
	assert.EqualValues(t, 0, s.Remaining)
	assert.Equal(t, 100.0, s.AvgPrice)
}

func TestSummarize_PartiallyFilled(t *testing.T) {
	trades := []Trade{{Price: 100, Quantity: 4}}
	s := Summarize(10, trades)
	assert.Equal(t, StatusPartiallyFilled, s.Status)
	assert.EqualValues(t, 4, s.Filled)
	assert.EqualValues(t, 6, s.Remaining)
	assert.Equal(t, 100.0, s.AvgPrice)
}

func TestSummarize_VWAPAcrossMultiplePrices(t *testing.T) {
	trades := []Trade{{Price: 100, Quantity: 1}, {Price: 102, Quantity: 1}}
	s := Summarize(2, trades)
	assert.Equal(t, 101.0, s.AvgPrice)
}

func TestTradeID_Deterministic(t *testing.T) {
	assert.Equal(t, "5_9", TradeID(5, 9))
	assert.Equal(t, TradeID(5, 9), TradeID(5, 9))
	assert.NotEqual(t, TradeID(5, 9), TradeID(9, 5))
}
