package engine

import "ladderbook/internal/pricing"

// orderLocation is where a resting order can be found.
type orderLocation struct {
	side  Side
	price pricing.Price
}

// OrderIndex maps an order id to the side/price of its resting level,
// so Cancel can find an order in O(1) instead of scanning the ladder.
// It holds an entry iff the order is currently resting: filled,
// cancelled, and never-rested orders are absent (spec.md §3).
type OrderIndex struct {
	owners map[OrderID]string
	locs   map[OrderID]orderLocation
}

// NewOrderIndex builds an empty index.
func NewOrderIndex() *OrderIndex {
	return &OrderIndex{
		owners: make(map[OrderID]string),
		locs:   make(map[OrderID]orderLocation),
	}
}

// Put records that order id now rests at side/price, owned by owner.
func (idx *OrderIndex) Put(id OrderID, owner string, side Side, price pricing.Price) {
	idx.owners[id] = owner
	idx.locs[id] = orderLocation{side: side, price: price}
}

// Lookup returns the resting location of id, if it is currently resting.
func (idx *OrderIndex) Lookup(id OrderID) (side Side, price pricing.Price, owner string, ok bool) {
	loc, found := idx.locs[id]
	if !found {
		return 0, 0, "", false
	}
	return loc.side, loc.price, idx.owners[id], true
}

// Delete removes an order from the index once it is filled or cancelled.
func (idx *OrderIndex) Delete(id OrderID) {
	delete(idx.locs, id)
	delete(idx.owners, id)
}

// Len reports how many orders are currently indexed as resting.
func (idx *OrderIndex) Len() int {
	return len(idx.locs)
}
