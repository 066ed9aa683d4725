// Package wire implements the binary frame codec used by the demo TCP
// front end (internal/demosrv, cmd/ladderbookd, cmd/ladderbookctl). It
// is adapted from the teacher's internal/net/messages.go: the same
// fixed-header-plus-BigEndian-fields framing approach and the same
// type-header dispatch on parse, generalized to carry ladderbook's fixed-point
// Price/Quantity instead of raw float64 and extended with Depth/Stats
// frames the teacher never defined.
//
// This is demo scaffolding only — it does not implement the JSON REST
// contract described in spec.md §6, which remains an out-of-scope
// external collaborator.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"

	"ladderbook/internal/engine"
	"ladderbook/internal/pricing"
)

var (
	ErrMessageTooShort    = errors.New("wire: message too short")
	ErrInvalidMessageType = errors.New("wire: invalid message type")
)

// MessageType identifies the kind of frame a client sends.
type MessageType uint16

const (
	Heartbeat MessageType = iota
	SubmitOrder
	CancelOrder
	DepthRequest
	StatsRequest
)

// ReportType identifies the kind of frame the server sends back.
type ReportType uint16

const (
	ReportAck ReportType = iota
	ReportExecution
	ReportError
	ReportDepth
	ReportStats
	ReportCancel
)

const headerLen = 2 // MessageType/ReportType, uint16 BigEndian
const correlationLen = 16

// CorrelationID is a per-request identifier that the server echoes back
// in every report it writes for that request, so a client can match a
// report to the request that produced it. It is unrelated to engine.OrderID, which is the spec-mandated
// monotonic identity — uuid is used here for the one identifier on the
// wire that is not order identity (grounded on the teacher's use of
// uuid.New().String() for Order.UUID in internal/net/messages.go).
type CorrelationID [16]byte

// NewCorrelationID mints a fresh, random correlation id.
func NewCorrelationID() CorrelationID {
	return CorrelationID(uuid.New())
}

func (c CorrelationID) String() string {
	return uuid.UUID(c).String()
}

// SubmitFrame is the client → server new-order request.
type SubmitFrame struct {
	Correlation CorrelationID
	Side        engine.Side
	Price       pricing.Price
	Quantity    pricing.Quantity
	Timestamp   int64
	Owner       string
}

// Encode serializes a SubmitFrame for transmission.
func (f SubmitFrame) Encode() []byte {
	ownerBytes := []byte(f.Owner)
	buf := make([]byte, headerLen+correlationLen+1+8+8+8+1+len(ownerBytes))

	off := 0
	binary.BigEndian.PutUint16(buf[off:], uint16(SubmitOrder))
	off += headerLen
	copy(buf[off:], f.Correlation[:])
	off += correlationLen
	buf[off] = byte(f.Side)
	off++
	binary.BigEndian.PutUint64(buf[off:], uint64(f.Price))
	off += 8
	binary.BigEndian.PutUint64(buf[off:], uint64(f.Quantity))
	off += 8
	binary.BigEndian.PutUint64(buf[off:], uint64(f.Timestamp))
	off += 8
	buf[off] = byte(len(ownerBytes))
	off++
	copy(buf[off:], ownerBytes)

	return buf
}

// DecodeSubmitFrame parses the body of a SubmitOrder message (header
// already stripped by ParseMessage).
func DecodeSubmitFrame(body []byte) (SubmitFrame, error) {
	const fixed = correlationLen + 1 + 8 + 8 + 8 + 1
	if len(body) < fixed {
		return SubmitFrame{}, ErrMessageTooShort
	}

	var f SubmitFrame
	off := 0
	copy(f.Correlation[:], body[off:off+correlationLen])
	off += correlationLen
	f.Side = engine.Side(body[off])
	off++
	f.Price = pricing.Price(binary.BigEndian.Uint64(body[off:]))
	off += 8
	f.Quantity = pricing.Quantity(binary.BigEndian.Uint64(body[off:]))
	off += 8
	f.Timestamp = int64(binary.BigEndian.Uint64(body[off:]))
	off += 8
	ownerLen := int(body[off])
	off++
	if len(body) < off+ownerLen {
		return SubmitFrame{}, ErrMessageTooShort
	}
	f.Owner = string(body[off : off+ownerLen])

	return f, nil
}

// CancelFrame is the client → server cancel request.
type CancelFrame struct {
	Correlation CorrelationID
	OrderID     engine.OrderID
	Owner       string
}

// Encode serializes a CancelFrame.
func (f CancelFrame) Encode() []byte {
	ownerBytes := []byte(f.Owner)
	buf := make([]byte, headerLen+correlationLen+8+1+len(ownerBytes))

	off := 0
	binary.BigEndian.PutUint16(buf[off:], uint16(CancelOrder))
	off += headerLen
	copy(buf[off:], f.Correlation[:])
	off += correlationLen
	binary.BigEndian.PutUint64(buf[off:], uint64(f.OrderID))
	off += 8
	buf[off] = byte(len(ownerBytes))
	off++
	copy(buf[off:], ownerBytes)

	return buf
}

// DecodeCancelFrame parses the body of a CancelOrder message.
func DecodeCancelFrame(body []byte) (CancelFrame, error) {
	const fixed = correlationLen + 8 + 1
	if len(body) < fixed {
		return CancelFrame{}, ErrMessageTooShort
	}

	var f CancelFrame
	off := 0
	copy(f.Correlation[:], body[off:off+correlationLen])
	off += correlationLen
	f.OrderID = engine.OrderID(binary.BigEndian.Uint64(body[off:]))
	off += 8
	ownerLen := int(body[off])
	off++
	if len(body) < off+ownerLen {
		return CancelFrame{}, ErrMessageTooShort
	}
	f.Owner = string(body[off : off+ownerLen])

	return f, nil
}

// DepthRequestFrame asks for up to K levels per side.
type DepthRequestFrame struct {
	Correlation CorrelationID
	K           uint16
}

func (f DepthRequestFrame) Encode() []byte {
	buf := make([]byte, headerLen+correlationLen+2)
	off := 0
	binary.BigEndian.PutUint16(buf[off:], uint16(DepthRequest))
	off += headerLen
	copy(buf[off:], f.Correlation[:])
	off += correlationLen
	binary.BigEndian.PutUint16(buf[off:], f.K)
	return buf
}

func DecodeDepthRequestFrame(body []byte) (DepthRequestFrame, error) {
	const fixed = correlationLen + 2
	if len(body) < fixed {
		return DepthRequestFrame{}, ErrMessageTooShort
	}
	var f DepthRequestFrame
	copy(f.Correlation[:], body[:correlationLen])
	f.K = binary.BigEndian.Uint16(body[correlationLen:])
	return f, nil
}

// StatsRequestFrame asks for the current market snapshot.
type StatsRequestFrame struct {
	Correlation CorrelationID
}

func (f StatsRequestFrame) Encode() []byte {
	buf := make([]byte, headerLen+correlationLen)
	binary.BigEndian.PutUint16(buf, uint16(StatsRequest))
	copy(buf[headerLen:], f.Correlation[:])
	return buf
}

func DecodeStatsRequestFrame(body []byte) (StatsRequestFrame, error) {
	if len(body) < correlationLen {
		return StatsRequestFrame{}, ErrMessageTooShort
	}
	var f StatsRequestFrame
	copy(f.Correlation[:], body[:correlationLen])
	return f, nil
}

// ParsedMessage is the result of parsing an inbound frame: the typed
// field matching Type is populated (none for a Heartbeat).
type ParsedMessage struct {
	Type   MessageType
	Submit SubmitFrame
	Cancel CancelFrame
	Depth  DepthRequestFrame
	Stats  StatsRequestFrame
}

// ParseMessage reads the 2-byte type header and dispatches to the
// matching decoder, mirroring the teacher's parseMessage switch in
// internal/net/messages.go.
func ParseMessage(raw []byte) (ParsedMessage, error) {
	if len(raw) < headerLen {
		return ParsedMessage{}, ErrMessageTooShort
	}
	t := MessageType(binary.BigEndian.Uint16(raw[:headerLen]))
	body := raw[headerLen:]

	switch t {
	case Heartbeat:
		return ParsedMessage{Type: Heartbeat}, nil
	case SubmitOrder:
		f, err := DecodeSubmitFrame(body)
		return ParsedMessage{Type: t, Submit: f}, err
	case CancelOrder:
		f, err := DecodeCancelFrame(body)
		return ParsedMessage{Type: t, Cancel: f}, err
	case DepthRequest:
		f, err := DecodeDepthRequestFrame(body)
		return ParsedMessage{Type: t, Depth: f}, err
	case StatsRequest:
		f, err := DecodeStatsRequestFrame(body)
		return ParsedMessage{Type: t, Stats: f}, err
	default:
		return ParsedMessage{}, fmt.Errorf("%w: %d", ErrInvalidMessageType, t)
	}
}

// AckReport acknowledges a Submit with the derived status summary.
type AckReport struct {
	Correlation CorrelationID
	OrderID     engine.OrderID
	Status      engine.SubmitStatus
	Filled      pricing.Quantity
	Remaining   pricing.Quantity
	AvgPrice    float64
}

func (r AckReport) Encode() []byte {
	buf := make([]byte, headerLen+correlationLen+8+1+8+8+8)
	off := 0
	binary.BigEndian.PutUint16(buf[off:], uint16(ReportAck))
	off += headerLen
	copy(buf[off:], r.Correlation[:])
	off += correlationLen
	binary.BigEndian.PutUint64(buf[off:], uint64(r.OrderID))
	off += 8
	buf[off] = byte(r.Status)
	off++
	binary.BigEndian.PutUint64(buf[off:], uint64(r.Filled))
	off += 8
	binary.BigEndian.PutUint64(buf[off:], uint64(r.Remaining))
	off += 8
	binary.BigEndian.PutUint64(buf[off:], math.Float64bits(r.AvgPrice))
	return buf
}

// ExecutionReport carries one trade produced by a submit.
type ExecutionReport struct {
	Correlation CorrelationID
	Trade       engine.Trade
	TradeID     string
}

func (r ExecutionReport) Encode() []byte {
	idBytes := []byte(r.TradeID)
	buf := make([]byte, headerLen+correlationLen+8+8+8+8+8+2+len(idBytes))
	off := 0
	binary.BigEndian.PutUint16(buf[off:], uint16(ReportExecution))
	off += headerLen
	copy(buf[off:], r.Correlation[:])
	off += correlationLen
	binary.BigEndian.PutUint64(buf[off:], uint64(r.Trade.MakerOrderID))
	off += 8
	binary.BigEndian.PutUint64(buf[off:], uint64(r.Trade.TakerOrderID))
	off += 8
	binary.BigEndian.PutUint64(buf[off:], uint64(r.Trade.Price))
	off += 8
	binary.BigEndian.PutUint64(buf[off:], uint64(r.Trade.Quantity))
	off += 8
	binary.BigEndian.PutUint64(buf[off:], uint64(r.Trade.Timestamp))
	off += 8
	binary.BigEndian.PutUint16(buf[off:], uint16(len(idBytes)))
	off += 2
	copy(buf[off:], idBytes)
	return buf
}

// ErrorReport carries a rejection or protocol error back to the client.
type ErrorReport struct {
	Correlation CorrelationID
	Message     string
}

func (r ErrorReport) Encode() []byte {
	msgBytes := []byte(r.Message)
	buf := make([]byte, headerLen+correlationLen+2+len(msgBytes))
	off := 0
	binary.BigEndian.PutUint16(buf[off:], uint16(ReportError))
	off += headerLen
	copy(buf[off:], r.Correlation[:])
	off += correlationLen
	binary.BigEndian.PutUint16(buf[off:], uint16(len(msgBytes)))
	off += 2
	copy(buf[off:], msgBytes)
	return buf
}

// CancelReport carries the outcome of a cancel request.
type CancelReport struct {
	Correlation CorrelationID
	Status      engine.CancelStatus
	Remaining   pricing.Quantity
}

func (r CancelReport) Encode() []byte {
	buf := make([]byte, headerLen+correlationLen+1+8)
	off := 0
	binary.BigEndian.PutUint16(buf[off:], uint16(ReportCancel))
	off += headerLen
	copy(buf[off:], r.Correlation[:])
	off += correlationLen
	buf[off] = byte(r.Status)
	off++
	binary.BigEndian.PutUint64(buf[off:], uint64(r.Remaining))
	return buf
}

// DepthReport carries a depth snapshot.
type DepthReport struct {
	Correlation CorrelationID
	Bids, Asks  []engine.DepthLevel
}

func (r DepthReport) Encode() []byte {
	size := headerLen + correlationLen + 1 + 1 + (len(r.Bids)+len(r.Asks))*16
	buf := make([]byte, size)
	off := 0
	binary.BigEndian.PutUint16(buf[off:], uint16(ReportDepth))
	off += headerLen
	copy(buf[off:], r.Correlation[:])
	off += correlationLen
	buf[off] = byte(len(r.Bids))
	off++
	buf[off] = byte(len(r.Asks))
	off++
	for _, lvl := range r.Bids {
		binary.BigEndian.PutUint64(buf[off:], uint64(lvl.Price))
		off += 8
		binary.BigEndian.PutUint64(buf[off:], uint64(lvl.Quantity))
		off += 8
	}
	for _, lvl := range r.Asks {
		binary.BigEndian.PutUint64(buf[off:], uint64(lvl.Price))
		off += 8
		binary.BigEndian.PutUint64(buf[off:], uint64(lvl.Quantity))
		off += 8
	}
	return buf
}

// StatsReport carries a stats snapshot: the three counters,
// VolumeTraded, and the optional BestBid, BestAsk and Spread, each
// optional field as a presence byte followed by a fixed-width value
// (absent when engine.Stats holds nil). Mid and LastMatchTime are not
// encoded.
type StatsReport struct {
	Correlation CorrelationID
	Stats       engine.Stats
}

func (r StatsReport) Encode() []byte {
	buf := make([]byte, headerLen+correlationLen+8+8+8+8+3*(1+8))
	off := 0
	binary.BigEndian.PutUint16(buf[off:], uint16(ReportStats))
	off += headerLen
	copy(buf[off:], r.Correlation[:])
	off += correlationLen
	binary.BigEndian.PutUint64(buf[off:], r.Stats.OrdersCreated)
	off += 8
	binary.BigEndian.PutUint64(buf[off:], r.Stats.OrdersMatched)
	off += 8
	binary.BigEndian.PutUint64(buf[off:], r.Stats.OrdersCancelled)
	off += 8
	binary.BigEndian.PutUint64(buf[off:], math.Float64bits(r.Stats.VolumeTraded))
	off += 8
	off = putOptionalPrice(buf, off, r.Stats.BestBid)
	off = putOptionalPrice(buf, off, r.Stats.BestAsk)
	off = putOptionalInt64(buf, off, r.Stats.Spread)
	return buf
}

func putOptionalPrice(buf []byte, off int, p *pricing.Price) int {
	if p == nil {
		buf[off] = 0
		off++
		off += 8
		return off
	}
	buf[off] = 1
	off++
	binary.BigEndian.PutUint64(buf[off:], uint64(*p))
	return off + 8
}

func putOptionalInt64(buf []byte, off int, v *int64) int {
	if v == nil {
		buf[off] = 0
		off++
		off += 8
		return off
	}
	buf[off] = 1
	off++
	binary.BigEndian.PutUint64(buf[off:], uint64(*v))
	return off + 8
}

// ParsedReport is the client-side counterpart of ParseMessage: it reads
// the 2-byte report header the server writes back and dispatches to the
// matching decoder, used by cmd/ladderbookctl to render server replies.
type ParsedReport struct {
	Type     ReportType
	Ack      AckReport
	Exec     ExecutionReport
	Err      ErrorReport
	Cancel   CancelReport
	Depth    DepthReport
	StatsRep StatsReport
}

// ParseReport decodes one server → client report frame.
func ParseReport(raw []byte) (ParsedReport, error) {
	if len(raw) < headerLen+correlationLen {
		return ParsedReport{}, ErrMessageTooShort
	}
	t := ReportType(binary.BigEndian.Uint16(raw[:headerLen]))
	var corr CorrelationID
	copy(corr[:], raw[headerLen:headerLen+correlationLen])
	body := raw[headerLen+correlationLen:]

	switch t {
	case ReportAck:
		if len(body) < 8+1+8+8+8 {
			return ParsedReport{}, ErrMessageTooShort
		}
		off := 0
		orderID := engine.OrderID(binary.BigEndian.Uint64(body[off:]))
		off += 8
		status := engine.SubmitStatus(body[off])
		off++
		filled := pricing.Quantity(binary.BigEndian.Uint64(body[off:]))
		off += 8
		remaining := pricing.Quantity(binary.BigEndian.Uint64(body[off:]))
		off += 8
		avgPrice := math.Float64frombits(binary.BigEndian.Uint64(body[off:]))
		return ParsedReport{Type: t, Ack: AckReport{
			Correlation: corr, OrderID: orderID, Status: status,
			Filled: filled, Remaining: remaining, AvgPrice: avgPrice,
		}}, nil

	case ReportExecution:
		if len(body) < 8+8+8+8+8+2 {
			return ParsedReport{}, ErrMessageTooShort
		}
		off := 0
		maker := engine.OrderID(binary.BigEndian.Uint64(body[off:]))
		off += 8
		taker := engine.OrderID(binary.BigEndian.Uint64(body[off:]))
		off += 8
		price := pricing.Price(binary.BigEndian.Uint64(body[off:]))
		off += 8
		qty := pricing.Quantity(binary.BigEndian.Uint64(body[off:]))
		off += 8
		ts := int64(binary.BigEndian.Uint64(body[off:]))
		off += 8
		idLen := int(binary.BigEndian.Uint16(body[off:]))
		off += 2
		if len(body) < off+idLen {
			return ParsedReport{}, ErrMessageTooShort
		}
		tradeID := string(body[off : off+idLen])
		return ParsedReport{Type: t, Exec: ExecutionReport{
			Correlation: corr,
			Trade: engine.Trade{
				MakerOrderID: maker, TakerOrderID: taker,
				Price: price, Quantity: qty, Timestamp: ts,
			},
			TradeID: tradeID,
		}}, nil

	case ReportError:
		if len(body) < 2 {
			return ParsedReport{}, ErrMessageTooShort
		}
		msgLen := int(binary.BigEndian.Uint16(body))
		if len(body) < 2+msgLen {
			return ParsedReport{}, ErrMessageTooShort
		}
		return ParsedReport{Type: t, Err: ErrorReport{
			Correlation: corr, Message: string(body[2 : 2+msgLen]),
		}}, nil

	case ReportCancel:
		if len(body) < 1+8 {
			return ParsedReport{}, ErrMessageTooShort
		}
		status := engine.CancelStatus(body[0])
		remaining := pricing.Quantity(binary.BigEndian.Uint64(body[1:]))
		return ParsedReport{Type: t, Cancel: CancelReport{
			Correlation: corr, Status: status, Remaining: remaining,
		}}, nil

	case ReportDepth:
		if len(body) < 2 {
			return ParsedReport{}, ErrMessageTooShort
		}
		numBids := int(body[0])
		numAsks := int(body[1])
		off := 2
		need := (numBids + numAsks) * 16
		if len(body) < off+need {
			return ParsedReport{}, ErrMessageTooShort
		}
		bids := make([]engine.DepthLevel, numBids)
		for i := range bids {
			bids[i] = engine.DepthLevel{
				Price:    pricing.Price(binary.BigEndian.Uint64(body[off:])),
				Quantity: pricing.Quantity(binary.BigEndian.Uint64(body[off+8:])),
			}
			off += 16
		}
		asks := make([]engine.DepthLevel, numAsks)
		for i := range asks {
			asks[i] = engine.DepthLevel{
				Price:    pricing.Price(binary.BigEndian.Uint64(body[off:])),
				Quantity: pricing.Quantity(binary.BigEndian.Uint64(body[off+8:])),
			}
			off += 16
		}
		return ParsedReport{Type: t, Depth: DepthReport{Correlation: corr, Bids: bids, Asks: asks}}, nil

	case ReportStats:
		const fixed = 8 + 8 + 8 + 8 + 3*(1+8)
		if len(body) < fixed {
			return ParsedReport{}, ErrMessageTooShort
		}
		off := 0
		var s engine.Stats
		s.OrdersCreated = binary.BigEndian.Uint64(body[off:])
		off += 8
		s.OrdersMatched = binary.BigEndian.Uint64(body[off:])
		off += 8
		s.OrdersCancelled = binary.BigEndian.Uint64(body[off:])
		off += 8
		s.VolumeTraded = math.Float64frombits(binary.BigEndian.Uint64(body[off:]))
		off += 8
		s.BestBid, off = getOptionalPrice(body, off)
		s.BestAsk, off = getOptionalPrice(body, off)
		s.Spread, _ = getOptionalInt64(body, off)
		return ParsedReport{Type: t, StatsRep: StatsReport{Correlation: corr, Stats: s}}, nil

	default:
		return ParsedReport{}, fmt.Errorf("%w: %d", ErrInvalidMessageType, t)
	}
}

func getOptionalPrice(buf []byte, off int) (*pricing.Price, int) {
	present := buf[off]
	off++
	v := pricing.Price(binary.BigEndian.Uint64(buf[off:]))
	off += 8
	if present == 0 {
		return nil, off
	}
	return &v, off
}

func getOptionalInt64(buf []byte, off int) (*int64, int) {
	present := buf[off]
	off++
	v := int64(binary.BigEndian.Uint64(buf[off:]))
	off += 8
	if present == 0 {
		return nil, off
	}
	return &v, off
}
