package book

import (
	"encoding/json"

	"github.com/Aidin1998/mango_layouts/pkg/layout/codec"
	"github.com/Aidin1998/mango_layouts/pkg/layout/records"
)

const (
	MaxBookNodes   = 1024
	SideHeaderSize = records.MetaDataSize + 8 + 8 + 4 + 4 + 8
	SideSize       = SideHeaderSize + MaxBookNodes*NodeSize
)

// OrderBookSide is a Bids or Asks account.
type OrderBookSide struct {
	MetaData     records.MetaData
	BumpIndex    uint64
	FreeListLen  uint64
	FreeListHead uint32
	RootNode     uint32
	LeafCount    uint64
	Nodes        [MaxBookNodes]Node
}

func DecodeOrderBookSide(data []byte) (*OrderBookSide, error) {
	return codec.Decode(data, SideSize, (*OrderBookSide).DecodeFrom)
}

func (s *OrderBookSide) Encode() ([]byte, error) {
	return codec.Encode(s, SideSize, (*OrderBookSide).EncodeTo)
}

func (s *OrderBookSide) DecodeFrom(r *codec.Reader) {
	r.Struct("meta_data", func() { s.MetaData.DecodeFrom(r) })
	s.BumpIndex = r.Uint64("bump_index")
	s.FreeListLen = r.Uint64("free_list_len")
	s.FreeListHead = r.Uint32("free_list_head")
	s.RootNode = r.Uint32("root_node")
	s.LeafCount = r.Uint64("leaf_count")
	for i := range s.Nodes {
		r.Element("nodes", i, func() { s.Nodes[i] = DecodeNodeFrom(r) })
	}
}

func (s *OrderBookSide) EncodeTo(w *codec.Writer) {
	w.Struct("meta_data", func() { s.MetaData.EncodeTo(w) })
	w.Uint64("bump_index", s.BumpIndex)
	w.Uint64("free_list_len", s.FreeListLen)
	w.Uint32("free_list_head", s.FreeListHead)
	w.Uint32("root_node", s.RootNode)
	w.Uint64("leaf_count", s.LeafCount)
	for i := range s.Nodes {
		w.Element("nodes", i, func() { EncodeNodeTo(w, s.Nodes[i]) })
	}
}

// Leaves returns the leaf nodes in slot order.
func (s *OrderBookSide) Leaves() []*LeafNode {
	var leaves []*LeafNode
	for _, n := range s.Nodes {
		if leaf, ok := n.(*LeafNode); ok {
			leaves = append(leaves, leaf)
		}
	}
	return leaves
}

type taggedNode struct {
	Type NodeTag `json:"type"`
	Node Node    `json:"node"`
}

func (s *OrderBookSide) MarshalJSON() ([]byte, error) {
	nodes := make([]taggedNode, 0, len(s.Nodes))
	for _, n := range s.Nodes {
		if n == nil {
			continue
		}
		nodes = append(nodes, taggedNode{Type: n.Tag(), Node: n})
	}
	return json.Marshal(struct {
		MetaData     records.MetaData `json:"meta_data"`
		BumpIndex    uint64           `json:"bump_index"`
		FreeListLen  uint64           `json:"free_list_len"`
		FreeListHead uint32           `json:"free_list_head"`
		RootNode     uint32           `json:"root_node"`
		LeafCount    uint64           `json:"leaf_count"`
		Nodes        []taggedNode     `json:"nodes"`
	}{s.MetaData, s.BumpIndex, s.FreeListLen, s.FreeListHead, s.RootNode, s.LeafCount, nodes})
}
