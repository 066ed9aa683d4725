// Package demosrv is a small TCP front end that drives an
// engine.Engine over the internal/wire binary protocol. It exists to
// exercise the engine end-to-end and to give the teacher's
// gopkg.in/tomb.v2 and github.com/rs/zerolog dependencies a genuine
// home; it is not the JSON REST/streaming surface spec.md §6 describes,
// which remains an explicit non-goal.
//
// Adapted from the teacher's internal/net/server.go: the same
// accept-loop-hands-off-to-a-worker-pool-which-hands-off-to-a-session-
// handler shape, the same tomb.v2-supervised shutdown, the same
// per-connection read-deadline-then-requeue worker strategy. The
// teacher's Engine interface (PlaceOrder/CancelOrder/LogBook, all
// unimplemented stubs) is replaced with direct calls into a real
// *engine.Engine.
package demosrv

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"

	"ladderbook/internal/engine"
	"ladderbook/internal/wire"
)

const (
	maxFrameSize       = 4 * 1024
	defaultWorkerCount = 10
	defaultConnTimeout = 5 * time.Second
)

type inboundMessage struct {
	conn   net.Conn
	parsed wire.ParsedMessage
}

// Server is a demo TCP front end for one engine.Engine instance.
type Server struct {
	addr   string
	engine *engine.Engine

	pool   *workerPool
	cancel context.CancelFunc

	sessionsMu sync.Mutex
	sessions   map[string]net.Conn

	inbox chan inboundMessage
}

// New builds a server bound to addr (host:port) driving eng.
func New(addr string, eng *engine.Engine) *Server {
	return &Server{
		addr:     addr,
		engine:   eng,
		pool:     newWorkerPool(defaultWorkerCount),
		sessions: make(map[string]net.Conn),
		inbox:    make(chan inboundMessage, 1),
	}
}

// Shutdown stops a running server.
func (s *Server) Shutdown() {
	log.Info().Msg("demosrv: shutting down")
	if s.cancel != nil {
		s.cancel()
	}
}

// Run accepts connections until ctx is cancelled. It blocks; callers
// typically run it in its own goroutine.
func (s *Server) Run(ctx context.Context) error {
	defer s.Shutdown()

	ctx, s.cancel = context.WithCancel(ctx)
	t, ctx := tomb.WithContext(ctx)

	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return fmt.Errorf("demosrv: listen: %w", err)
	}
	defer func() {
		if err := listener.Close(); err != nil {
			log.Error().Err(err).Msg("demosrv: error closing listener")
		}
	}()

	t.Go(func() error {
		s.pool.Setup(t, s.handleConnection)
		return nil
	})
	t.Go(func() error {
		return s.sessionHandler(t)
	})

	log.Info().Str("addr", s.addr).Msg("demosrv: listening")

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
			conn, err := listener.Accept()
			if err != nil {
				log.Error().Err(err).Msg("demosrv: accept error")
				continue
			}
			s.addSession(conn)
			s.pool.AddTask(conn)
		}
	}
}

func (s *Server) addSession(conn net.Conn) {
	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()
	s.sessions[conn.RemoteAddr().String()] = conn
}

func (s *Server) deleteSession(addr string) {
	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()
	delete(s.sessions, addr)
}

// handleConnection reads exactly one frame off conn, forwards it to the
// session handler, and requeues the connection for its next frame —
// same shape as the teacher's handleConnection in internal/net/server.go.
func (s *Server) handleConnection(t *tomb.Tomb, conn net.Conn) error {
	select {
	case <-t.Dying():
		return nil
	default:
	}

	if err := conn.SetDeadline(time.Now().Add(defaultConnTimeout)); err != nil {
		log.Error().Err(err).Str("addr", conn.RemoteAddr().String()).Msg("demosrv: set deadline failed")
		s.closeConn(conn)
		return nil
	}

	buf := make([]byte, maxFrameSize)
	n, err := conn.Read(buf)
	if err != nil {
		s.closeConn(conn)
		return nil
	}

	parsed, err := wire.ParseMessage(buf[:n])
	if err != nil {
		log.Error().Err(err).Str("addr", conn.RemoteAddr().String()).Msg("demosrv: parse error")
		s.closeConn(conn)
		return nil
	}

	s.inbox <- inboundMessage{conn: conn, parsed: parsed}
	s.pool.AddTask(conn)
	return nil
}

func (s *Server) closeConn(conn net.Conn) {
	s.deleteSession(conn.RemoteAddr().String())
	if err := conn.Close(); err != nil {
		log.Error().Err(err).Str("addr", conn.RemoteAddr().String()).Msg("demosrv: close error")
	}
}

func (s *Server) sessionHandler(t *tomb.Tomb) error {
	for {
		select {
		case <-t.Dying():
			return nil
		case msg := <-s.inbox:
			s.handleMessage(msg.conn, msg.parsed)
		}
	}
}

func (s *Server) handleMessage(conn net.Conn, msg wire.ParsedMessage) {
	switch msg.Type {
	case wire.Heartbeat:
		return
	case wire.SubmitOrder:
		s.handleSubmit(conn, msg.Submit)
	case wire.CancelOrder:
		s.handleCancel(conn, msg.Cancel)
	case wire.DepthRequest:
		s.handleDepth(conn, msg.Depth)
	case wire.StatsRequest:
		s.handleStats(conn, msg.Stats)
	default:
		log.Error().Int("type", int(msg.Type)).Msg("demosrv: unhandled message type")
	}
}

func (s *Server) handleSubmit(conn net.Conn, f wire.SubmitFrame) {
	id, trades, err := s.engine.Submit(f.Side, f.Price, f.Quantity, f.Timestamp, f.Owner)
	if err != nil {
		log.Error().Err(err).Str("owner", f.Owner).Msg("demosrv: submit rejected")
		s.writeError(conn, f.Correlation, err)
		return
	}

	summary := engine.Summarize(f.Quantity, trades)
	s.write(conn, wire.AckReport{
		Correlation: f.Correlation,
		OrderID:     id,
		Status:      summary.Status,
		Filled:      summary.Filled,
		Remaining:   summary.Remaining,
		AvgPrice:    summary.AvgPrice,
	})

	for _, tr := range trades {
		s.write(conn, wire.ExecutionReport{
			Correlation: f.Correlation,
			Trade:       tr,
			TradeID:     engine.TradeID(tr.MakerOrderID, tr.TakerOrderID),
		})
	}
}

func (s *Server) handleCancel(conn net.Conn, f wire.CancelFrame) {
	res := s.engine.Cancel(f.OrderID, f.Owner)
	s.write(conn, wire.CancelReport{
		Correlation: f.Correlation,
		Status:      res.Status,
		Remaining:   res.Remaining,
	})
}

func (s *Server) handleDepth(conn net.Conn, f wire.DepthRequestFrame) {
	k := int(f.K)
	if k <= 0 {
		k = 10
	}
	bids, asks := s.engine.Depth(k)
	s.write(conn, wire.DepthReport{Correlation: f.Correlation, Bids: bids, Asks: asks})
}

func (s *Server) handleStats(conn net.Conn, f wire.StatsRequestFrame) {
	s.write(conn, wire.StatsReport{Correlation: f.Correlation, Stats: s.engine.Stats()})
}

type encoder interface {
	Encode() []byte
}

func (s *Server) write(conn net.Conn, msg encoder) {
	if _, err := conn.Write(msg.Encode()); err != nil {
		log.Error().Err(err).Str("addr", conn.RemoteAddr().String()).Msg("demosrv: write failed")
		s.closeConn(conn)
	}
}

func (s *Server) writeError(conn net.Conn, corr wire.CorrelationID, cause error) {
	s.write(conn, wire.ErrorReport{Correlation: corr, Message: cause.Error()})
}
