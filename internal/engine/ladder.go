package engine

import (
	"github.com/tidwall/btree"

	"ladderbook/internal/pricing"
)

// PriceLadder is the totally ordered price → PriceLevel mapping for one
// side of the book. It is backed by github.com/tidwall/btree, the same
// ordered-map choice the teacher makes in internal/engine/orderbook.go
// (there as two separate BTreeG[*PriceLevel] aliases with inline
// comparators); this type generalizes that into one side-parameterized
// ladder so bid and ask share the same implementation and the same
// bounded-k scan used for Depth.
//
// A balanced ordered map is the right structure here, not a heap:
// Cancel must be able to remove an arbitrary level the instant its last
// resting order leaves, and a flat min/max-heap cannot do that without
// an O(n) scan (spec.md §4.2).
type PriceLadder struct {
	side Side
	tree *btree.BTreeG[*PriceLevel]
}

// NewPriceLadder builds an empty ladder ordered for the given side: bid
// ladders iterate highest price first, ask ladders lowest price first,
// so Best always returns element zero of an ascending scan.
func NewPriceLadder(side Side) *PriceLadder {
	var less func(a, b *PriceLevel) bool
	if side == Bid {
		less = func(a, b *PriceLevel) bool { return a.Price > b.Price }
	} else {
		less = func(a, b *PriceLevel) bool { return a.Price < b.Price }
	}
	return &PriceLadder{side: side, tree: btree.NewBTreeG(less)}
}

// Best returns the best (highest bid / lowest ask) non-empty level.
func (l *PriceLadder) Best() (*PriceLevel, bool) {
	return l.tree.Min()
}

// BestPrice is a convenience wrapper around Best for stats refresh.
func (l *PriceLadder) BestPrice() (pricing.Price, bool) {
	lvl, ok := l.tree.Min()
	if !ok {
		return 0, false
	}
	return lvl.Price, true
}

// GetOrCreate returns the existing level at price, or inserts and
// returns a fresh empty one.
func (l *PriceLadder) GetOrCreate(price pricing.Price) *PriceLevel {
	if lvl, ok := l.tree.Get(&PriceLevel{Price: price}); ok {
		return lvl
	}
	lvl := NewPriceLevel(price)
	l.tree.Set(lvl)
	return lvl
}

// Get returns the level at price, if one exists.
func (l *PriceLadder) Get(price pricing.Price) (*PriceLevel, bool) {
	return l.tree.Get(&PriceLevel{Price: price})
}

// Remove drops the level at price entirely. Callers must only do this
// once the level is empty — the ladder never retains an empty level.
func (l *PriceLadder) Remove(price pricing.Price) {
	l.tree.Delete(&PriceLevel{Price: price})
}

// Len returns the number of distinct price levels currently resting.
func (l *PriceLadder) Len() int {
	return l.tree.Len()
}

// Levels returns up to k levels in best-to-worst order.
func (l *PriceLadder) Levels(k int) []*PriceLevel {
	if k <= 0 {
		return nil
	}
	out := make([]*PriceLevel, 0, k)
	l.tree.Scan(func(lvl *PriceLevel) bool {
		out = append(out, lvl)
		return len(out) < k
	})
	return out
}
