package engine

import "errors"

var (
	// ErrInvalidPrice is returned by Submit for a non-positive price.
	ErrInvalidPrice = errors.New("engine: price must be positive")
	// ErrInvalidQuantity is returned by Submit for a non-positive quantity.
	ErrInvalidQuantity = errors.New("engine: quantity must be positive")
	// ErrInvalidSide is returned by Submit for a side outside {Bid, Ask}.
	ErrInvalidSide = errors.New("engine: side must be Bid or Ask")
)
