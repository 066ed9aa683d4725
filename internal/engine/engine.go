package engine

import (
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"ladderbook/internal/pricing"
)

// DepthLevel is one aggregated rung returned by Depth: a price and the
// total resting quantity across every order at that price.
type DepthLevel struct {
	Price    pricing.Price
	Quantity pricing.Quantity
}

// Engine is the matching core for a single instrument: two price
// ladders, the FIFO levels they hold, the cancel index, and the stats
// snapshot, all mutated behind one book-wide lock.
//
// Submit and Cancel are serialized against each other by mu (a write
// lock, held only for the in-memory match — there is no I/O inside it,
// and no suspension point, per spec.md §5). Depth, Stats, and any other
// read take a read lock and may run concurrently with each other. This
// consolidates the teacher's scattered per-subsystem locks (e.g.
// net.Server's clientSessionsLock) into the single mutator-serialization
// point spec.md §9 calls for; finer-grained locking is possible but
// must preserve the priority law below, which a single lock does for
// free.
type Engine struct {
	mu     sync.RWMutex
	bids   *PriceLadder
	asks   *PriceLadder
	index  *OrderIndex
	stats  *StatsTracker
	nextID atomic.Uint64
}

// New builds an empty engine for one instrument.
func New() *Engine {
	return &Engine{
		bids:  NewPriceLadder(Bid),
		asks:  NewPriceLadder(Ask),
		index: NewOrderIndex(),
		stats: NewStatsTracker(),
	}
}

// Submit admits a new limit order, matches it against the opposite
// ladder under price-time priority, and rests any unfilled residue. It
// returns the assigned order id and the trades produced, in match
// order, so the caller can derive filled/remaining/VWAP (spec.md §4.1).
//
// order_id allocation uses an atomic counter outside the book lock so
// ids stay strictly increasing and unique across concurrent callers
// even while one caller is blocked waiting to acquire mu (spec.md §5).
func (e *Engine) Submit(side Side, price pricing.Price, quantity pricing.Quantity, timestamp int64, owner string) (OrderID, []Trade, error) {
	if price <= 0 {
		return 0, nil, ErrInvalidPrice
	}
	if quantity <= 0 {
		return 0, nil, ErrInvalidQuantity
	}
	if side != Bid && side != Ask {
		return 0, nil, ErrInvalidSide
	}

	id := OrderID(e.nextID.Add(1))

	e.mu.Lock()
	defer e.mu.Unlock()

	trades := e.match(id, side, price, timestamp, &quantity)

	if quantity > 0 {
		e.rest(id, side, price, quantity, timestamp, owner)
	}

	e.stats.RecordSubmit(trades, timestamp)
	e.stats.Refresh(e.bids, e.asks)
	e.checkInvariants()

	log.Debug().
		Uint64("order_id", uint64(id)).
		Str("side", side.String()).
		Str("price", price.String()).
		Int("trades", len(trades)).
		Msg("order submitted")

	return id, trades, nil
}

// match sweeps the opposite ladder while the inbound order crosses,
// draining resting liquidity in price-time priority and decrementing
// *remaining in place. It is the atomic step described in spec.md §4.1:
// every trade it produces is appended in the order it was produced, and
// a partially filled maker keeps its queue position because DecrementHead
// never reorders the level.
func (e *Engine) match(takerID OrderID, side Side, price pricing.Price, timestamp int64, remaining *pricing.Quantity) []Trade {
	opp := e.opposite(side)
	var trades []Trade

	for *remaining > 0 {
		lvl, ok := opp.Best()
		if !ok {
			break
		}
		if !crosses(side, price, lvl.Price) {
			break
		}

		maker, ok := lvl.PeekHead()
		if !ok {
			// A non-empty level always has a head; defensive only.
			break
		}

		fillQty := min(*remaining, maker.Quantity)
		tradeTimestamp := timestamp
		if maker.Timestamp < tradeTimestamp {
			tradeTimestamp = maker.Timestamp
		}

		trades = append(trades, Trade{
			MakerOrderID: maker.ID,
			TakerOrderID: takerID,
			Price:        lvl.Price,
			Quantity:     fillQty,
			Timestamp:    tradeTimestamp,
		})

		*remaining -= fillQty
		lvl.DecrementHead(fillQty)

		if maker.Quantity-fillQty == 0 {
			lvl.RemoveHead()
			e.index.Delete(maker.ID)
			if lvl.Empty() {
				opp.Remove(lvl.Price)
			}
		}
	}

	return trades
}

// crosses reports whether an inbound order at price crosses a resting
// level at oppositePrice, per the crossing rules in spec.md §4.1: equal
// prices cross (the tie rule), and a bid crosses any ask at or below its
// limit while an ask crosses any bid at or above its limit.
func crosses(side Side, price, oppositePrice pricing.Price) bool {
	if side == Bid {
		return price >= oppositePrice
	}
	return price <= oppositePrice
}

// rest inserts the unfilled residue of an order at the tail of its own
// ladder, creating the level if this is the first resting order there,
// and records it in the cancel index.
func (e *Engine) rest(id OrderID, side Side, price pricing.Price, quantity pricing.Quantity, timestamp int64, owner string) {
	own := e.own(side)
	lvl := own.GetOrCreate(price)
	lvl.PushTail(Order{
		ID:        id,
		Side:      side,
		Price:     price,
		Quantity:  quantity,
		Timestamp: timestamp,
		Owner:     owner,
	})
	e.index.Put(id, owner, side, price)
}

func (e *Engine) opposite(side Side) *PriceLadder {
	if side == Bid {
		return e.asks
	}
	return e.bids
}

func (e *Engine) own(side Side) *PriceLadder {
	if side == Bid {
		return e.bids
	}
	return e.asks
}

// Cancel removes a resting order on behalf of its owner. A cancel for
// an absent id and a cancel for an id owned by someone else both return
// NotFound — the source collapses authorization failure into the same
// response shape as not-found, and this engine preserves that wire
// contract deliberately (spec.md §9 Open Question; see DESIGN.md).
func (e *Engine) Cancel(id OrderID, owner string) CancelResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	side, price, restingOwner, ok := e.index.Lookup(id)
	if !ok || restingOwner != owner {
		log.Debug().Uint64("order_id", uint64(id)).Msg("cancel: not found or unauthorized")
		return CancelResult{Status: NotFound}
	}

	ladder := e.own(side)
	lvl, ok := ladder.Get(price)
	if !ok {
		return CancelResult{Status: NotFound}
	}
	order, ok := lvl.RemoveByID(id)
	if !ok {
		return CancelResult{Status: NotFound}
	}
	e.index.Delete(id)
	if lvl.Empty() {
		ladder.Remove(price)
	}

	e.stats.RecordCancel()
	e.stats.Refresh(e.bids, e.asks)
	e.checkInvariants()

	log.Debug().Uint64("order_id", uint64(id)).Str("remaining", order.Quantity.String()).Msg("order cancelled")

	return CancelResult{Status: Cancelled, Remaining: order.Quantity}
}

// Depth returns up to k best levels per side: bids descending, asks
// ascending, each level's aggregate reflecting a single logical instant
// since it is read entirely under one read-lock acquisition.
func (e *Engine) Depth(k int) (bids, asks []DepthLevel) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return toDepthLevels(e.bids.Levels(k)), toDepthLevels(e.asks.Levels(k))
}

func toDepthLevels(levels []*PriceLevel) []DepthLevel {
	out := make([]DepthLevel, len(levels))
	for i, lvl := range levels {
		out[i] = DepthLevel{Price: lvl.Price, Quantity: lvl.TotalQuantity()}
	}
	return out
}

// Stats returns a consistent snapshot of the market statistics.
func (e *Engine) Stats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.stats.Snapshot()
}
