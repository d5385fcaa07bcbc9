package records

import (
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"

	"github.com/Aidin1998/mango_layouts/pkg/layout/codec"
)

const RootBankSize = 424

// RootBank holds the interest-rate parameters and indexes of one token.
type RootBank struct {
	MetaData     MetaData                        `json:"meta_data"`
	OptimalUtil  decimal.Decimal                 `json:"optimal_util"`
	OptimalRate  decimal.Decimal                 `json:"optimal_rate"`
	MaxRate      decimal.Decimal                 `json:"max_rate"`
	NumNodeBanks uint64                          `json:"num_node_banks"`
	NodeBanks    [MaxNodeBanks]*solana.PublicKey `json:"node_banks"`
	DepositIndex decimal.Decimal                 `json:"deposit_index"`
	BorrowIndex  decimal.Decimal                 `json:"borrow_index"`
	LastUpdated  time.Time                       `json:"last_updated"`
}

func DecodeRootBank(data []byte) (*RootBank, error) {
	return codec.Decode(data, RootBankSize, (*RootBank).DecodeFrom)
}

func (b *RootBank) Encode() ([]byte, error) {
	return codec.Encode(b, RootBankSize, (*RootBank).EncodeTo)
}

func (b *RootBank) DecodeFrom(r *codec.Reader) {
	r.Struct("meta_data", func() { b.MetaData.DecodeFrom(r) })
	b.OptimalUtil = r.I80F48("optimal_util")
	b.OptimalRate = r.I80F48("optimal_rate")
	b.MaxRate = r.I80F48("max_rate")
	b.NumNodeBanks = r.Uint64("num_node_banks")
	for i := range b.NodeBanks {
		r.Element("node_banks", i, func() { b.NodeBanks[i] = r.Identifier("node_bank") })
	}
	b.DepositIndex = r.I80F48("deposit_index")
	b.BorrowIndex = r.I80F48("borrow_index")
	b.LastUpdated = r.Timestamp("last_updated")
	r.Skip("padding", 64)
}

func (b *RootBank) EncodeTo(w *codec.Writer) {
	w.Struct("meta_data", func() { b.MetaData.EncodeTo(w) })
	w.I80F48("optimal_util", b.OptimalUtil)
	w.I80F48("optimal_rate", b.OptimalRate)
	w.I80F48("max_rate", b.MaxRate)
	w.Uint64("num_node_banks", b.NumNodeBanks)
	for i := range b.NodeBanks {
		w.Element("node_banks", i, func() { w.Identifier("node_bank", b.NodeBanks[i]) })
	}
	w.I80F48("deposit_index", b.DepositIndex)
	w.I80F48("borrow_index", b.BorrowIndex)
	w.Timestamp("last_updated", b.LastUpdated)
	w.Pad("padding", 64)
}

const NodeBankSize = 72

// NodeBank holds deposits and borrows for a shard of one token.
type NodeBank struct {
	MetaData MetaData          `json:"meta_data"`
	Deposits decimal.Decimal   `json:"deposits"`
	Borrows  decimal.Decimal   `json:"borrows"`
	Vault    *solana.PublicKey `json:"vault"`
}

func DecodeNodeBank(data []byte) (*NodeBank, error) {
	return codec.Decode(data, NodeBankSize, (*NodeBank).DecodeFrom)
}

func (b *NodeBank) Encode() ([]byte, error) {
	return codec.Encode(b, NodeBankSize, (*NodeBank).EncodeTo)
}

func (b *NodeBank) DecodeFrom(r *codec.Reader) {
	r.Struct("meta_data", func() { b.MetaData.DecodeFrom(r) })
	b.Deposits = r.I80F48("deposits")
	b.Borrows = r.I80F48("borrows")
	b.Vault = r.Identifier("vault")
}

func (b *NodeBank) EncodeTo(w *codec.Writer) {
	w.Struct("meta_data", func() { b.MetaData.EncodeTo(w) })
	w.I80F48("deposits", b.Deposits)
	w.I80F48("borrows", b.Borrows)
	w.Identifier("vault", b.Vault)
}
