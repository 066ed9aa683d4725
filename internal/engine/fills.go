package engine

import "ladderbook/internal/pricing"

// SubmitStatus mirrors the status field of the out-of-scope REST submit
// response (spec.md §6), computed here so the derivation is unit tested
// without a server: New iff no fills, Filled iff nothing remains, else
// PartiallyFilled.
type SubmitStatus int

const (
	StatusNew SubmitStatus = iota
	StatusPartiallyFilled
	StatusFilled
)

func (s SubmitStatus) String() string {
	switch s {
	case StatusNew:
		return "New"
	case StatusPartiallyFilled:
		return "PartiallyFilled"
	case StatusFilled:
		return "Filled"
	default:
		return "Unknown"
	}
}

// SubmitSummary is the derived view of one Submit call a REST front end
// would serialize: filled/remaining quantity, VWAP across the fills, and
// status.
type SubmitSummary struct {
	Filled    pricing.Quantity
	Remaining pricing.Quantity
	AvgPrice  float64
	Status    SubmitStatus
}

// Summarize derives a SubmitSummary from the quantity requested and the
// trades Submit produced for that order. average_price is 0 when
// nothing filled, per spec.md §6.
func Summarize(requested pricing.Quantity, trades []Trade) SubmitSummary {
	var filled pricing.Quantity
	var notional float64
	for _, t := range trades {
		filled += t.Quantity
		notional += float64(t.Price) * float64(t.Quantity)
	}

	remaining := requested - filled
	status := StatusNew
	if len(trades) > 0 {
		if remaining == 0 {
			status = StatusFilled
		} else {
			status = StatusPartiallyFilled
		}
	}

	avgPrice := 0.0
	if filled > 0 {
		avgPrice = notional / float64(filled)
	}

	return SubmitSummary{
		Filled:    filled,
		Remaining: remaining,
		AvgPrice:  avgPrice,
		Status:    status,
	}
}
