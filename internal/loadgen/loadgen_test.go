package loadgen

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"ladderbook/internal/wire"
)

func TestRun_SubmitsRequestedOrderCount(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	const wantOrders = 5
	received := make(chan int, 1)

	go func() {
		conn, err := listener.Accept()
		if err != nil {
			received <- 0
			return
		}
		defer conn.Close()

		count := 0
		buf := make([]byte, 4096)
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		for count < wantOrders {
			n, err := conn.Read(buf)
			if err != nil {
				break
			}
			parsed, err := wire.ParseMessage(buf[:n])
			if err == nil && parsed.Type == wire.SubmitOrder {
				count++
			}
		}
		received <- count
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err = Run(ctx, Config{
		Addr:        listener.Addr().String(),
		Orders:      wantOrders,
		Center:      100,
		Spread:      5,
		MaxQuantity: 10,
		Seed:        1,
	})
	require.NoError(t, err)

	select {
	case n := <-received:
		require.Equal(t, wantOrders, n)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for server to observe orders")
	}
}
