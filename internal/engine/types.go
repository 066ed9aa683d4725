// Package engine implements the limit-order matching core: an ordered
// price ladder per side, per-price FIFO queues, an atomic match-and-rest
// step, and the live depth/stats/cancel-index machinery built on top of
// it.
package engine

import (
	"fmt"

	"ladderbook/internal/pricing"
)

// Side identifies which book an order rests on. The engine handles a
// single instrument, so unlike the teacher's AssetType/OrderType pair
// there is no asset dimension and no market-order variant — every
// inbound order is a limit order bounded by Price, per spec.md's
// explicit non-goals.
type Side int

const (
	Bid Side = iota
	Ask
)

func (s Side) String() string {
	if s == Bid {
		return "Bid"
	}
	return "Ask"
}

// OrderID is the monotonic identity assigned to every submitted order.
type OrderID uint64

// Order is a single inbound or resting limit order. Quantity is the
// unfilled remainder: once an order rests, every partial fill mutates
// Quantity in place rather than replacing the order, which is what lets
// the FIFO queue preserve arrival order across partial fills.
type Order struct {
	ID        OrderID
	Side      Side
	Price     pricing.Price
	Quantity  pricing.Quantity
	Timestamp int64 // caller-supplied milliseconds; a tiebreak only, never priority
	Owner     string
}

func (o Order) String() string {
	return fmt.Sprintf("Order{id=%d side=%s price=%s qty=%s owner=%s}",
		o.ID, o.Side, o.Price, o.Quantity, o.Owner)
}

// Trade records one fill produced by a single match step. Price is
// always the maker's resting price, never the taker's limit.
type Trade struct {
	MakerOrderID OrderID
	TakerOrderID OrderID
	Price        pricing.Price
	Quantity     pricing.Quantity
	Timestamp    int64
}

// TradeID derives a deterministic wire identifier for a trade from the
// two order ids it settles, per the external submit contract's
// trade_id requirement (spec.md §6; grounded on original_source's
// Fill::from(&Trade): format!("{}_{}", bid_order_id, ask_order_id)).
func TradeID(maker, taker OrderID) string {
	return fmt.Sprintf("%d_%d", maker, taker)
}

func (t Trade) String() string {
	return fmt.Sprintf("Trade{maker=%d taker=%d price=%s qty=%s ts=%d}",
		t.MakerOrderID, t.TakerOrderID, t.Price, t.Quantity, t.Timestamp)
}

// CancelStatus is the outcome of a Cancel call.
type CancelStatus int

const (
	// Cancelled means the order was resting and owned by the caller,
	// and has now been removed from the book.
	Cancelled CancelStatus = iota
	// NotFound covers both a genuinely absent order and one that
	// exists but is owned by someone else — see DESIGN.md for why
	// these are deliberately not distinguished on the wire.
	NotFound
)

// CancelResult is returned by Cancel.
type CancelResult struct {
	Status    CancelStatus
	Remaining pricing.Quantity
}
