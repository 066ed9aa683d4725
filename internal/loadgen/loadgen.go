// Package loadgen drives synthetic order flow against a running
// ladderbookd instance. It is grounded on two corpus sources: the
// quantity-list parsing in the teacher's cmd/client/client.go (here
// generalized into randomized quantities instead of a fixed list) and
// lightsgoout-go-quantcup's idea of a standalone synthetic order
// generator hammering a matching engine to exercise it under load.
// Each synthetic order gets its own uuid owner identity, reusing the
// teacher's google/uuid dependency for identity generation the way
// internal/net/messages.go used it for order ids.
package loadgen

import (
	"context"
	"math/rand"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"ladderbook/internal/engine"
	"ladderbook/internal/pricing"
	"ladderbook/internal/wire"
)

// Config parameterizes a synthetic order flow run.
type Config struct {
	// Addr is the ladderbookd address to connect to.
	Addr string
	// Orders is how many synthetic orders to submit before stopping. A
	// zero value means run until ctx is cancelled.
	Orders int
	// Center and Spread bound the uniform price range orders are drawn
	// from: [Center-Spread, Center+Spread].
	Center pricing.Price
	Spread pricing.Price
	// MaxQuantity bounds the uniform quantity range [1, MaxQuantity].
	MaxQuantity pricing.Quantity
	// Interval paces submissions; zero submits as fast as possible.
	Interval time.Duration
	// Seed makes a run reproducible; the zero value is used as a seed
	// like any other.
	Seed int64
}

// Run connects to Addr and submits synthetic orders per cfg until
// cfg.Orders have been sent or ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	conn, err := net.Dial("tcp", cfg.Addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	rng := rand.New(rand.NewSource(cfg.Seed))

	var ticker *time.Ticker
	if cfg.Interval > 0 {
		ticker = time.NewTicker(cfg.Interval)
		defer ticker.Stop()
	}

	sent := 0
	for cfg.Orders == 0 || sent < cfg.Orders {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		frame := randomSubmitFrame(rng, cfg)
		if _, err := conn.Write(frame.Encode()); err != nil {
			return err
		}
		log.Debug().
			Str("owner", frame.Owner).
			Str("side", frame.Side.String()).
			Str("price", frame.Price.String()).
			Str("qty", frame.Quantity.String()).
			Msg("loadgen: order submitted")
		sent++

		if ticker != nil {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
			}
		}
	}

	return nil
}

func randomSubmitFrame(rng *rand.Rand, cfg Config) wire.SubmitFrame {
	side := engine.Bid
	if rng.Intn(2) == 1 {
		side = engine.Ask
	}

	spread := int64(cfg.Spread)
	offset := pricing.Price(0)
	if spread > 0 {
		offset = pricing.Price(rng.Int63n(2*spread+1) - spread)
	}
	price := cfg.Center + offset
	if price <= 0 {
		price = 1
	}

	maxQty := int64(cfg.MaxQuantity)
	if maxQty < 1 {
		maxQty = 1
	}
	qty := pricing.Quantity(rng.Int63n(maxQty) + 1)

	return wire.SubmitFrame{
		Correlation: wire.NewCorrelationID(),
		Side:        side,
		Price:       price,
		Quantity:    qty,
		Timestamp:   time.Now().UnixMilli(),
		Owner:       uuid.New().String(),
	}
}
