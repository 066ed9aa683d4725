//go:build ladderbook_debug

package engine

// checkInvariants asserts the book-wide invariants from spec.md §8 hold
// after a mutation. Only compiled into debug builds (-tags
// ladderbook_debug), matching the "asserted in debug builds, not
// production" language in spec.md §7 — grounded on the teacher's sparse,
// manual invariant checks rather than a pack assertion library, since
// none of the example repos bring one in.
func (e *Engine) checkInvariants() {
	bestBid, hasBid := e.bids.BestPrice()
	bestAsk, hasAsk := e.asks.BestPrice()
	if hasBid && hasAsk && bestBid >= bestAsk {
		panic("ladderbook: invariant violated: best bid crosses best ask")
	}

	resting := 0
	for _, ladder := range []*PriceLadder{e.bids, e.asks} {
		for _, lvl := range ladder.Levels(ladder.Len()) {
			if lvl.Empty() {
				panic("ladderbook: invariant violated: empty level left in ladder")
			}
			resting += lvl.Len()
		}
	}
	if resting != e.index.Len() {
		panic("ladderbook: invariant violated: order index disagrees with ladders")
	}
}
