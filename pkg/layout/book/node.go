// Package book decodes the crit-bit tree that backs a Mango perp order book.
//
// A book side is a fixed array of 88-byte nodes. Every node starts with a u32
// tag that selects one of five layouts; DecodeNode reads the tag first and
// then decodes the whole node through the layout the tag names.
package book

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"

	"github.com/Aidin1998/mango_layouts/pkg/errors"
	"github.com/Aidin1998/mango_layouts/pkg/layout/codec"
)

const NodeSize = 88

// NodeTag selects the layout of a node.
type NodeTag uint32

const (
	TagUninitialized NodeTag = iota
	TagInner
	TagLeaf
	TagFree
	TagLastFree
)

func (t NodeTag) String() string {
	switch t {
	case TagUninitialized:
		return "uninitialized"
	case TagInner:
		return "inner"
	case TagLeaf:
		return "leaf"
	case TagFree:
		return "free"
	case TagLastFree:
		return "last_free"
	}
	return fmt.Sprintf("NodeTag(%d)", uint32(t))
}

func (t NodeTag) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Node is one of *UninitializedNode, *InnerNode, *LeafNode, *FreeNode or
// *LastFreeNode.
type Node interface {
	Tag() NodeTag

	decodeFrom(r *codec.Reader)
	encodeTo(w *codec.Writer)
}

// UninitializedNode is a slot the program has never written. Its body is
// kept verbatim.
type UninitializedNode struct {
	Data hexutil.Bytes `json:"data"`
}

const uninitializedDataSize = NodeSize - 4

func (*UninitializedNode) Tag() NodeTag { return TagUninitialized }

func (n *UninitializedNode) decodeFrom(r *codec.Reader) {
	r.ConstUint32("tag", uint32(TagUninitialized))
	n.Data = r.Raw("data", uninitializedDataSize)
}

func (n *UninitializedNode) encodeTo(w *codec.Writer) {
	w.Uint32("tag", uint32(TagUninitialized))
	w.Raw("data", n.Data, uninitializedDataSize)
}

// InnerNode is a crit-bit branch. Key holds the shared prefix of both
// subtrees; PrefixLen is its length in bits.
type InnerNode struct {
	PrefixLen uint32          `json:"prefix_len"`
	Key       decimal.Decimal `json:"key"`
	Children  [2]uint32       `json:"children"`
}

func (*InnerNode) Tag() NodeTag { return TagInner }

func (n *InnerNode) decodeFrom(r *codec.Reader) {
	r.ConstUint32("tag", uint32(TagInner))
	n.PrefixLen = r.Uint32("prefix_len")
	n.Key = r.Unsigned("key", 16)
	for i := range n.Children {
		n.Children[i] = r.Uint32(fmt.Sprintf("children[%d]", i))
	}
	r.Skip("padding", 56)
}

func (n *InnerNode) encodeTo(w *codec.Writer) {
	w.Uint32("tag", uint32(TagInner))
	w.Uint32("prefix_len", n.PrefixLen)
	w.Unsigned("key", n.Key, 16)
	for i, child := range n.Children {
		w.Uint32(fmt.Sprintf("children[%d]", i), child)
	}
	w.Pad("padding", 56)
}

// LeafNode is a resting order.
type LeafNode struct {
	OwnerSlot     uint8             `json:"owner_slot"`
	Key           codec.OrderKey    `json:"key"`
	Owner         *solana.PublicKey `json:"owner"`
	Quantity      decimal.Decimal   `json:"quantity"`
	ClientOrderID uint64            `json:"client_order_id"`
	BestInitial   decimal.Decimal   `json:"best_initial"`
	Timestamp     time.Time         `json:"timestamp"`
}

func (*LeafNode) Tag() NodeTag { return TagLeaf }

func (n *LeafNode) decodeFrom(r *codec.Reader) {
	r.ConstUint32("tag", uint32(TagLeaf))
	n.OwnerSlot = r.Uint8("owner_slot")
	r.Skip("padding", 3)
	n.Key = r.OrderKey("key")
	n.Owner = r.Identifier("owner")
	n.Quantity = r.Unsigned("quantity", 8)
	n.ClientOrderID = r.Uint64("client_order_id")
	n.BestInitial = r.Signed("best_initial", 8)
	n.Timestamp = r.Timestamp("timestamp")
}

// encodeTo writes the key from its full 128-bit order id; the price and
// sequence facets are derived from it on decode.
func (n *LeafNode) encodeTo(w *codec.Writer) {
	w.Uint32("tag", uint32(TagLeaf))
	w.Uint8("owner_slot", n.OwnerSlot)
	w.Pad("padding", 3)
	w.Unsigned("key", n.Key.OrderID, codec.OrderKeySize)
	w.Identifier("owner", n.Owner)
	w.Unsigned("quantity", n.Quantity, 8)
	w.Uint64("client_order_id", n.ClientOrderID)
	w.Signed("best_initial", n.BestInitial, 8)
	w.Timestamp("timestamp", n.Timestamp)
}

// FreeNode is a slot on the free list; Next is the following free slot.
type FreeNode struct {
	Next uint32 `json:"next"`
}

func (*FreeNode) Tag() NodeTag { return TagFree }

func (n *FreeNode) decodeFrom(r *codec.Reader) {
	decodeFreeSlot(r, TagFree, &n.Next)
}

func (n *FreeNode) encodeTo(w *codec.Writer) {
	encodeFreeSlot(w, TagFree, n.Next)
}

// LastFreeNode terminates the free list.
type LastFreeNode struct {
	Next uint32 `json:"next"`
}

func (*LastFreeNode) Tag() NodeTag { return TagLastFree }

func (n *LastFreeNode) decodeFrom(r *codec.Reader) {
	decodeFreeSlot(r, TagLastFree, &n.Next)
}

func (n *LastFreeNode) encodeTo(w *codec.Writer) {
	encodeFreeSlot(w, TagLastFree, n.Next)
}

func decodeFreeSlot(r *codec.Reader, tag NodeTag, next *uint32) {
	r.ConstUint32("tag", uint32(tag))
	*next = r.Uint32("next")
	r.Skip("padding", 80)
}

func encodeFreeSlot(w *codec.Writer, tag NodeTag, next uint32) {
	w.Uint32("tag", uint32(tag))
	w.Uint32("next", next)
	w.Pad("padding", 80)
}

// newNode returns an empty node for tag, or nil for tags outside 0..4.
func newNode(tag NodeTag) Node {
	switch tag {
	case TagUninitialized:
		return &UninitializedNode{}
	case TagInner:
		return &InnerNode{}
	case TagLeaf:
		return &LeafNode{}
	case TagFree:
		return &FreeNode{}
	case TagLastFree:
		return &LastFreeNode{}
	}
	return nil
}

// DecodeNode decodes the node at the start of data.
func DecodeNode(data []byte) (Node, error) {
	var n Node
	if err := codec.DecodeWith(data, NodeSize, func(r *codec.Reader) { n = DecodeNodeFrom(r) }); err != nil {
		return nil, err
	}
	return n, nil
}

// DecodeNodeFrom decodes one node at the reader's position. It returns nil
// once the reader has failed.
func DecodeNodeFrom(r *codec.Reader) Node {
	start := r.Offset()
	tag := NodeTag(r.PeekUint32("tag"))
	if r.Err() != nil {
		return nil
	}
	n := newNode(tag)
	if n == nil {
		r.Fail("tag", errors.Newf(errors.KindUnknownVariant, "unknown node tag %d", uint32(tag)))
		return nil
	}
	n.decodeFrom(r)
	if r.Err() != nil {
		return nil
	}
	if consumed := r.Offset() - start; consumed != NodeSize {
		r.Fail(tag.String(), errors.Newf(errors.KindConstantMismatch, "%s layout consumed %d bytes, node size is %d", tag, consumed, NodeSize))
		return nil
	}
	return n
}

// EncodeNode writes n as a full 88-byte node carrying its own tag.
func EncodeNode(n Node) ([]byte, error) {
	w := codec.NewWriter(NodeSize)
	EncodeNodeTo(w, n)
	return w.Finish(NodeSize)
}

// EncodeNodeTo writes n at the writer's position. A nil node is written as
// an all-zero uninitialized slot.
func EncodeNodeTo(w *codec.Writer, n Node) {
	if n == nil {
		n = &UninitializedNode{}
	}
	n.encodeTo(w)
}
