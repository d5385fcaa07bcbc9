// Package events decodes the perp event queue: a fixed header followed by a
// ring of 152-byte event slots, each tagged by its first byte.
package events

import (
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"

	"github.com/Aidin1998/mango_layouts/pkg/errors"
	"github.com/Aidin1998/mango_layouts/pkg/layout/codec"
	"github.com/Aidin1998/mango_layouts/pkg/layout/records"
)

const EventSize = 152

// EventType is the leading byte of an event slot.
type EventType uint8

const (
	EventFill EventType = iota
	EventOut
)

func (t EventType) String() string {
	switch t {
	case EventFill:
		return "fill"
	case EventOut:
		return "out"
	}
	return fmt.Sprintf("unknown(%d)", uint8(t))
}

func (t EventType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Event is one of *FillEvent, *OutEvent or *UnknownEvent.
type Event interface {
	Type() EventType

	decodeFrom(r *codec.Reader)
	encodeTo(w *codec.Writer)
}

// FillEvent records a match between a resting maker order and a taker.
// Side is from the taker's point of view.
type FillEvent struct {
	Side               records.Side      `json:"side"`
	MakerSlot          uint8             `json:"maker_slot"`
	MakerOut           bool              `json:"maker_out"`
	Maker              *solana.PublicKey `json:"maker"`
	MakerOrderID       decimal.Decimal   `json:"maker_order_id"`
	MakerClientOrderID uint64            `json:"maker_client_order_id"`
	BestInitial        decimal.Decimal   `json:"best_initial"`
	Timestamp          time.Time         `json:"timestamp"`
	Taker              *solana.PublicKey `json:"taker"`
	TakerOrderID       decimal.Decimal   `json:"taker_order_id"`
	TakerClientOrderID uint64            `json:"taker_client_order_id"`
	Price              decimal.Decimal   `json:"price"`
	Quantity           decimal.Decimal   `json:"quantity"`
}

func (*FillEvent) Type() EventType { return EventFill }

func (e *FillEvent) decodeFrom(r *codec.Reader) {
	r.ConstUint8("event_type", uint8(EventFill))
	e.Side = records.Side(r.Uint8("side"))
	e.MakerSlot = r.Uint8("maker_slot")
	e.MakerOut = r.Bool("maker_out")
	r.Skip("padding", 4)
	e.Maker = r.Identifier("maker")
	e.MakerOrderID = r.Signed("maker_order_id", 16)
	e.MakerClientOrderID = r.Uint64("maker_client_order_id")
	e.BestInitial = r.Signed("best_initial", 8)
	e.Timestamp = r.Timestamp("timestamp")
	e.Taker = r.Identifier("taker")
	e.TakerOrderID = r.Signed("taker_order_id", 16)
	e.TakerClientOrderID = r.Uint64("taker_client_order_id")
	e.Price = r.Signed("price", 8)
	e.Quantity = r.Signed("quantity", 8)
}

func (e *FillEvent) encodeTo(w *codec.Writer) {
	w.Uint8("event_type", uint8(EventFill))
	w.Byte("side", uint32(e.Side))
	w.Uint8("maker_slot", e.MakerSlot)
	w.Bool("maker_out", e.MakerOut)
	w.Pad("padding", 4)
	w.Identifier("maker", e.Maker)
	w.Signed("maker_order_id", e.MakerOrderID, 16)
	w.Uint64("maker_client_order_id", e.MakerClientOrderID)
	w.Signed("best_initial", e.BestInitial, 8)
	w.Timestamp("timestamp", e.Timestamp)
	w.Identifier("taker", e.Taker)
	w.Signed("taker_order_id", e.TakerOrderID, 16)
	w.Uint64("taker_client_order_id", e.TakerClientOrderID)
	w.Signed("price", e.Price, 8)
	w.Signed("quantity", e.Quantity, 8)
}

// OutEvent records an order leaving the book without a fill.
type OutEvent struct {
	Side     records.Side      `json:"side"`
	Slot     uint8             `json:"slot"`
	Owner    *solana.PublicKey `json:"owner"`
	Quantity decimal.Decimal   `json:"quantity"`
}

func (*OutEvent) Type() EventType { return EventOut }

func (e *OutEvent) decodeFrom(r *codec.Reader) {
	r.ConstUint8("event_type", uint8(EventOut))
	e.Side = records.Side(r.Uint8("side"))
	e.Slot = r.Uint8("slot")
	r.Skip("padding", 5)
	e.Owner = r.Identifier("owner")
	e.Quantity = r.Signed("quantity", 8)
	r.Skip("padding", EventSize-48)
}

func (e *OutEvent) encodeTo(w *codec.Writer) {
	w.Uint8("event_type", uint8(EventOut))
	w.Byte("side", uint32(e.Side))
	w.Uint8("slot", e.Slot)
	w.Pad("padding", 5)
	w.Identifier("owner", e.Owner)
	w.Signed("quantity", e.Quantity, 8)
	w.Pad("padding", EventSize-48)
}

// UnknownEvent is any slot whose type byte is neither fill nor out. Only
// the type and the owner position are read.
type UnknownEvent struct {
	EventType EventType         `json:"event_type"`
	Owner     *solana.PublicKey `json:"owner"`
}

func (e *UnknownEvent) Type() EventType { return e.EventType }

func (e *UnknownEvent) decodeFrom(r *codec.Reader) {
	e.EventType = EventType(r.Uint8("event_type"))
	r.Skip("padding", 7)
	e.Owner = r.Identifier("owner")
	r.Skip("padding", EventSize-40)
}

func (e *UnknownEvent) encodeTo(w *codec.Writer) {
	w.Fail("event_type", errors.Newf(errors.KindUnsupportedEncode, "event type %d is decode-only", uint8(e.EventType)))
}

func newEvent(t EventType) Event {
	switch t {
	case EventFill:
		return &FillEvent{}
	case EventOut:
		return &OutEvent{}
	}
	return &UnknownEvent{}
}

// DecodeEvent decodes the event slot at the start of data.
func DecodeEvent(data []byte) (Event, error) {
	var e Event
	if err := codec.DecodeWith(data, EventSize, func(r *codec.Reader) { e = DecodeEventFrom(r) }); err != nil {
		return nil, err
	}
	return e, nil
}

// DecodeEventFrom decodes one event slot at the reader's position. A slot
// cut short by the end of the buffer fails with MalformedEvent.
func DecodeEventFrom(r *codec.Reader) Event {
	if r.Err() != nil {
		return nil
	}
	if remaining := r.Remaining(); remaining < EventSize {
		r.Fail("", errors.Newf(errors.KindMalformedEvent, "event slot needs %d bytes, %d remain", EventSize, remaining))
		return nil
	}
	start := r.Offset()
	e := newEvent(EventType(r.PeekUint8("event_type")))
	e.decodeFrom(r)
	if r.Err() != nil {
		return nil
	}
	if consumed := r.Offset() - start; consumed != EventSize {
		r.Fail("", errors.Newf(errors.KindMalformedEvent, "%s layout consumed %d bytes, event size is %d", e.Type(), consumed, EventSize))
		return nil
	}
	return e
}

// EncodeEvent writes a fill or out event as a full slot. Unknown events
// cannot be encoded.
func EncodeEvent(e Event) ([]byte, error) {
	if e == nil {
		return nil, errors.Newf(errors.KindUnsupportedEncode, "no event to encode").At("event_type", 0)
	}
	w := codec.NewWriter(EventSize)
	e.encodeTo(w)
	return w.Finish(EventSize)
}
