package events

import (
	"encoding/json"

	"github.com/Aidin1998/mango_layouts/pkg/errors"
	"github.com/Aidin1998/mango_layouts/pkg/layout/codec"
	"github.com/Aidin1998/mango_layouts/pkg/layout/records"
)

const HeaderSize = records.MetaDataSize + 3*8

// Header is the fixed prefix of an event queue account.
type Header struct {
	MetaData records.MetaData `json:"meta_data"`
	Head     uint64           `json:"head"`
	Count    uint64           `json:"count"`
	SeqNum   uint64           `json:"seq_num"`
}

func DecodeHeader(data []byte) (*Header, error) {
	return codec.Decode(data, HeaderSize, (*Header).DecodeFrom)
}

func (h *Header) Encode() ([]byte, error) {
	return codec.Encode(h, HeaderSize, (*Header).EncodeTo)
}

func (h *Header) DecodeFrom(r *codec.Reader) {
	r.Struct("meta_data", func() { h.MetaData.DecodeFrom(r) })
	h.Head = r.Uint64("head")
	h.Count = r.Uint64("count")
	h.SeqNum = r.Uint64("seq_num")
}

func (h *Header) EncodeTo(w *codec.Writer) {
	w.Struct("meta_data", func() { h.MetaData.EncodeTo(w) })
	w.Uint64("head", h.Head)
	w.Uint64("count", h.Count)
	w.Uint64("seq_num", h.SeqNum)
}

// DecodeEvents decodes exactly h.SeqNum events from data, the bytes that
// follow the header. Slots past the last counted event are never read, so
// stale entries in the ring do not surface.
//
// Running out of bytes on a slot boundary fails with TruncatedInput; a final
// slot cut short fails with MalformedEvent.
func DecodeEvents(h *Header, data []byte) ([]Event, error) {
	return decodeEvents(h, codec.NewReader(data))
}

func decodeEvents(h *Header, r *codec.Reader) ([]Event, error) {
	capacity := h.SeqNum
	if slots := uint64(r.Remaining() / EventSize); slots < capacity {
		capacity = slots
	}
	events := make([]Event, 0, capacity)

	for i := 0; uint64(len(events)) < h.SeqNum; i++ {
		r.Element("events", i, func() {
			if r.Remaining() == 0 {
				r.Fail("", errors.Newf(errors.KindTruncatedInput, "header counts %d events, buffer holds %d", h.SeqNum, len(events)))
				return
			}
			if e := DecodeEventFrom(r); e != nil {
				events = append(events, e)
			}
		})
		if err := r.Err(); err != nil {
			return nil, err
		}
	}
	return events, nil
}

// EventQueue is a decoded event queue account.
type EventQueue struct {
	Header Header
	Events []Event
}

// DecodeEventQueue decodes the header and then the events that follow it.
// Error offsets are relative to the start of data.
func DecodeEventQueue(data []byte) (*EventQueue, error) {
	h, err := DecodeHeader(data)
	if err != nil {
		return nil, err
	}
	r := codec.NewReader(data)
	r.Skip("header", HeaderSize)
	events, err := decodeEvents(h, r)
	if err != nil {
		return nil, err
	}
	return &EventQueue{Header: *h, Events: events}, nil
}

type taggedEvent struct {
	Type  EventType `json:"type"`
	Event Event     `json:"event"`
}

func (q *EventQueue) MarshalJSON() ([]byte, error) {
	events := make([]taggedEvent, len(q.Events))
	for i, e := range q.Events {
		events[i] = taggedEvent{Type: e.Type(), Event: e}
	}
	return json.Marshal(struct {
		Header
		Events []taggedEvent `json:"events"`
	}{q.Header, events})
}
