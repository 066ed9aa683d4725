package engine

import "ladderbook/internal/pricing"

// levelNode is one link in a PriceLevel's FIFO chain.
type levelNode struct {
	order      Order
	prev, next *levelNode
}

// PriceLevel is the FIFO queue of resting orders at a single price. It
// is backed by a doubly linked list plus an order_id → node index so
// that every required operation — push-tail, peek-head, decrement the
// head on a partial fill, and remove an arbitrary order on cancel — is
// O(1) and preserves arrival order across partial fills (a maker that
// is partially filled keeps its place in line; it is never moved to
// the tail). This is the "linked list + hash index" design called out
// in spec.md §9, generalizing the teacher's slice-of-pointers
// PriceLevel (internal/engine/orderbook.go), which re-slices on every
// fill and therefore cannot remove an arbitrary element without an
// O(n) scan.
type PriceLevel struct {
	Price      pricing.Price
	head, tail *levelNode
	byID       map[OrderID]*levelNode
	total      pricing.Quantity
	count      int
}

// NewPriceLevel creates an empty level at the given price.
func NewPriceLevel(price pricing.Price) *PriceLevel {
	return &PriceLevel{
		Price: price,
		byID:  make(map[OrderID]*levelNode),
	}
}

// Empty reports whether the level currently holds no resting orders.
// A ladder must never retain an empty level (spec.md §3 invariant).
func (l *PriceLevel) Empty() bool { return l.count == 0 }

// Len returns the number of resting orders at this level.
func (l *PriceLevel) Len() int { return l.count }

// TotalQuantity returns the sum of resting orders' quantities. It is
// maintained incrementally by every mutator below rather than recomputed,
// so it is always O(1) to read and always consistent with the chain
// contents (a tested invariant, spec.md §8).
func (l *PriceLevel) TotalQuantity() pricing.Quantity { return l.total }

// PushTail appends a new resting order to the back of the queue.
func (l *PriceLevel) PushTail(o Order) {
	n := &levelNode{order: o}
	if l.tail == nil {
		l.head, l.tail = n, n
	} else {
		n.prev = l.tail
		l.tail.next = n
		l.tail = n
	}
	l.byID[o.ID] = n
	l.total += o.Quantity
	l.count++
}

// PeekHead returns the order at the front of the queue without removing it.
func (l *PriceLevel) PeekHead() (Order, bool) {
	if l.head == nil {
		return Order{}, false
	}
	return l.head.order, true
}

// DecrementHead reduces the head order's resting quantity by qty,
// preserving its queue position. The caller is responsible for popping
// the head separately once its quantity reaches zero.
func (l *PriceLevel) DecrementHead(qty pricing.Quantity) {
	if l.head == nil {
		return
	}
	l.head.order.Quantity -= qty
	l.total -= qty
}

// RemoveHead pops the order currently at the front of the queue,
// typically once a fill has reduced it to zero remaining quantity.
func (l *PriceLevel) RemoveHead() (Order, bool) {
	if l.head == nil {
		return Order{}, false
	}
	n := l.head
	l.unlink(n)
	return n.order, true
}

// RemoveByID removes an arbitrary resting order from the queue in O(1),
// used by Cancel. Arrival order of the remaining orders is unaffected.
func (l *PriceLevel) RemoveByID(id OrderID) (Order, bool) {
	n, ok := l.byID[id]
	if !ok {
		return Order{}, false
	}
	l.unlink(n)
	return n.order, true
}

func (l *PriceLevel) unlink(n *levelNode) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.prev, n.next = nil, nil
	delete(l.byID, n.order.ID)
	l.total -= n.order.Quantity
	l.count--
}
