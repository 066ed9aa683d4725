// Command ladderbookctl is a small CLI client for ladderbookd. Adapted
// from the teacher's cmd/client/client.go: the same flag surface and
// the same "dial, send one request, print the reports that come back"
// shape, rewired onto internal/wire's codec instead of the teacher's
// AssetType/OrderType-carrying NewOrder message.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"ladderbook/internal/engine"
	"ladderbook/internal/loadgen"
	"ladderbook/internal/pricing"
	"ladderbook/internal/wire"
)

func main() {
	serverAddr := flag.String("server", "127.0.0.1:9001", "address of the ladderbookd server")
	owner := flag.String("owner", "", "owner identity (required for submit/cancel)")
	action := flag.String("action", "submit", "action to perform: submit, cancel, depth, stats, flood")
	sideStr := flag.String("side", "buy", "order side: buy or sell")
	price := flag.Float64("price", 100.0, "limit price")
	qtyStr := flag.String("qty", "10", "quantity, or a comma-separated list to submit in sequence")
	tickSize := flag.Float64("tick-size", 0.01, "tick size used to quantize price/qty into fixed-point units")
	orderID := flag.Uint64("order-id", 0, "order id to cancel")
	depthK := flag.Int("depth", 10, "number of levels per side to request")
	floodOrders := flag.Int("flood-orders", 1000, "number of synthetic orders for -action=flood")
	floodSpread := flag.Float64("flood-spread", 1.0, "price spread for -action=flood, around -price")

	flag.Parse()

	if (*action == "submit" || *action == "cancel") && *owner == "" {
		fmt.Println("Error: -owner is required for submit/cancel")
		flag.Usage()
		os.Exit(1)
	}

	if strings.EqualFold(*action, "flood") {
		runFlood(*serverAddr, *price, *floodSpread, *tickSize, *floodOrders)
		return
	}

	conn, err := net.Dial("tcp", *serverAddr)
	if err != nil {
		log.Fatalf("failed to connect to %s: %v", *serverAddr, err)
	}
	defer conn.Close()

	go readReports(conn)

	side := engine.Bid
	if strings.EqualFold(*sideStr, "sell") {
		side = engine.Ask
	}

	switch strings.ToLower(*action) {
	case "submit":
		p, err := pricing.PriceFromFloat(*price, *tickSize)
		if err != nil {
			log.Fatalf("invalid price: %v", err)
		}
		for _, qty := range parseQuantities(*qtyStr) {
			q, err := pricing.QuantityFromFloat(qty, *tickSize)
			if err != nil {
				log.Printf("skipping invalid quantity %v: %v", qty, err)
				continue
			}
			frame := wire.SubmitFrame{
				Correlation: wire.NewCorrelationID(),
				Side:        side,
				Price:       p,
				Quantity:    q,
				Timestamp:   time.Now().UnixMilli(),
				Owner:       *owner,
			}
			if _, err := conn.Write(frame.Encode()); err != nil {
				log.Printf("failed to send submit: %v", err)
				continue
			}
			fmt.Printf("-> submitted %s %.2f x %.2f\n", strings.ToUpper(*sideStr), *price, qty)
			time.Sleep(5 * time.Millisecond)
		}

	case "cancel":
		frame := wire.CancelFrame{
			Correlation: wire.NewCorrelationID(),
			OrderID:     engine.OrderID(*orderID),
			Owner:       *owner,
		}
		if _, err := conn.Write(frame.Encode()); err != nil {
			log.Fatalf("failed to send cancel: %v", err)
		}
		fmt.Printf("-> cancel sent for order %d\n", *orderID)

	case "depth":
		frame := wire.DepthRequestFrame{Correlation: wire.NewCorrelationID(), K: uint16(*depthK)}
		if _, err := conn.Write(frame.Encode()); err != nil {
			log.Fatalf("failed to send depth request: %v", err)
		}

	case "stats":
		frame := wire.StatsRequestFrame{Correlation: wire.NewCorrelationID()}
		if _, err := conn.Write(frame.Encode()); err != nil {
			log.Fatalf("failed to send stats request: %v", err)
		}

	default:
		log.Fatalf("unknown action: %s", *action)
	}

	fmt.Println("listening for reports... (Ctrl+C to exit)")
	select {}
}

// runFlood drives internal/loadgen to submit a batch of synthetic
// orders, printing none of the reports back — it is a throughput
// exerciser, not an interactive session.
func runFlood(serverAddr string, center, spread, tickSize float64, orders int) {
	centerPrice, err := pricing.PriceFromFloat(center, tickSize)
	if err != nil {
		log.Fatalf("invalid -price: %v", err)
	}
	spreadPrice, err := pricing.PriceFromFloat(spread, tickSize)
	if err != nil {
		log.Fatalf("invalid -flood-spread: %v", err)
	}

	cfg := loadgen.Config{
		Addr:        serverAddr,
		Orders:      orders,
		Center:      centerPrice,
		Spread:      spreadPrice,
		MaxQuantity: 100,
	}
	fmt.Printf("-> flooding %s with %d synthetic orders around %.2f +/- %.2f\n", serverAddr, orders, center, spread)
	if err := loadgen.Run(context.Background(), cfg); err != nil {
		log.Fatalf("flood failed: %v", err)
	}
	fmt.Println("-> flood complete")
}

// parseQuantities splits a comma-separated string into floats, skipping
// any entry that fails to parse.
func parseQuantities(input string) []float64 {
	parts := strings.Split(input, ",")
	result := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			log.Printf("warning: invalid quantity %q, skipping", p)
			continue
		}
		result = append(result, v)
	}
	return result
}

func readReports(conn net.Conn) {
	buf := make([]byte, 4096)
	for {
		n, err := conn.Read(buf)
		if err != nil {
			log.Printf("connection closed: %v", err)
			return
		}

		parsed, err := wire.ParseReport(buf[:n])
		if err != nil {
			log.Printf("failed to parse report: %v", err)
			continue
		}

		switch parsed.Type {
		case wire.ReportAck:
			a := parsed.Ack
			fmt.Printf("[ACK] order=%d status=%s filled=%s remaining=%s avg_price=%.4f\n",
				a.OrderID, a.Status, a.Filled, a.Remaining, a.AvgPrice)
		case wire.ReportExecution:
			e := parsed.Exec
			fmt.Printf("[EXECUTION] %s trade_id=%s\n", e.Trade, e.TradeID)
		case wire.ReportCancel:
			c := parsed.Cancel
			status := "cancelled"
			if c.Status == engine.NotFound {
				status = "not_found"
			}
			fmt.Printf("[CANCEL] status=%s remaining=%s\n", status, c.Remaining)
		case wire.ReportDepth:
			d := parsed.Depth
			fmt.Printf("[DEPTH] bids=%v asks=%v\n", d.Bids, d.Asks)
		case wire.ReportStats:
			fmt.Printf("[STATS] %+v\n", parsed.StatsRep.Stats)
		case wire.ReportError:
			fmt.Printf("[ERROR] %s\n", parsed.Err.Message)
		}
	}
}
