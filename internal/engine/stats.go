package engine

import "ladderbook/internal/pricing"

// Stats is a consistent market snapshot: the monotonic counters plus a
// derived top-of-book view. Spread and Mid are nil whenever either side
// of the book is empty (spec.md §4.4), since there is no meaningful
// top-of-book without both a best bid and a best ask.
type Stats struct {
	OrdersCreated   uint64
	OrdersMatched   uint64
	OrdersCancelled uint64
	// VolumeTraded accumulates Σ price·quantity in tick-units², the
	// same "notional" convention original_source's OrderBookStats uses
	// in floating decimal; callers scale by tickSize² at the API
	// boundary if they need real currency.
	VolumeTraded  float64
	BestBid       *pricing.Price
	BestAsk       *pricing.Price
	Spread        *int64
	Mid           *float64
	LastMatchTime *int64
}

// StatsTracker owns the monotonic counters and recomputes the derived
// top-of-book fields from the two ladders after every mutation. It does
// not take its own lock: the engine's book-wide mutex already serializes
// every call into it, matching the single-mutator-serialization design
// in spec.md §5 rather than adding a second, finer lock that buys
// nothing here.
type StatsTracker struct {
	stats Stats
}

// NewStatsTracker builds a zeroed tracker.
func NewStatsTracker() *StatsTracker {
	return &StatsTracker{}
}

// RecordSubmit folds one submit's outcome into the counters: it always
// increments OrdersCreated, and additionally accounts for any trades
// produced by the match step.
func (s *StatsTracker) RecordSubmit(trades []Trade, submitTimestamp int64) {
	s.stats.OrdersCreated++
	if len(trades) == 0 {
		return
	}
	s.stats.OrdersMatched += uint64(len(trades))
	for _, t := range trades {
		s.stats.VolumeTraded += float64(t.Price) * float64(t.Quantity)
	}
	ts := submitTimestamp
	s.stats.LastMatchTime = &ts
}

// RecordCancel folds a successful cancel into the counters.
func (s *StatsTracker) RecordCancel() {
	s.stats.OrdersCancelled++
}

// Refresh recomputes BestBid/BestAsk/Spread/Mid by peeking the ladders.
// Called after every mutator, per spec.md §4.4.
func (s *StatsTracker) Refresh(bids, asks *PriceLadder) {
	bestBid, hasBid := bids.BestPrice()
	bestAsk, hasAsk := asks.BestPrice()

	if hasBid {
		bb := bestBid
		s.stats.BestBid = &bb
	} else {
		s.stats.BestBid = nil
	}
	if hasAsk {
		ba := bestAsk
		s.stats.BestAsk = &ba
	} else {
		s.stats.BestAsk = nil
	}

	if hasBid && hasAsk {
		spread := int64(bestAsk) - int64(bestBid)
		s.stats.Spread = &spread
		mid := (float64(bestBid) + float64(bestAsk)) / 2
		s.stats.Mid = &mid
	} else {
		s.stats.Spread = nil
		s.stats.Mid = nil
	}
}

// Snapshot returns a copy of the current stats. Copying the struct
// (pointer fields included, but never mutated after Refresh replaces
// them) gives the caller a value that cannot be torn by a concurrent
// writer.
func (s *StatsTracker) Snapshot() Stats {
	return s.stats
}
