package records

import (
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"

	"github.com/Aidin1998/mango_layouts/pkg/layout/codec"
)

const PerpOpenOrdersSize = 792

// PerpOpenOrders tracks the resting perp orders of one account in one market.
type PerpOpenOrders struct {
	BidsQuantity   decimal.Decimal            `json:"bids_quantity"`
	AsksQuantity   decimal.Decimal            `json:"asks_quantity"`
	FreeSlotBits   uint32                     `json:"free_slot_bits"`
	IsBidBits      uint32                     `json:"is_bid_bits"`
	Orders         [MaxTokens]decimal.Decimal `json:"orders"`
	ClientOrderIDs [MaxTokens]int64           `json:"client_order_ids"`
}

func (o *PerpOpenOrders) DecodeFrom(r *codec.Reader) {
	o.BidsQuantity = r.Signed("bids_quantity", 8)
	o.AsksQuantity = r.Signed("asks_quantity", 8)
	o.FreeSlotBits = r.Uint32("free_slot_bits")
	o.IsBidBits = r.Uint32("is_bid_bits")
	for i := range o.Orders {
		r.Element("orders", i, func() { o.Orders[i] = r.Signed("order_id", 16) })
	}
	for i := range o.ClientOrderIDs {
		r.Element("client_order_ids", i, func() { o.ClientOrderIDs[i] = r.Int64("client_order_id") })
	}
}

func (o *PerpOpenOrders) EncodeTo(w *codec.Writer) {
	w.Signed("bids_quantity", o.BidsQuantity, 8)
	w.Signed("asks_quantity", o.AsksQuantity, 8)
	w.Uint32("free_slot_bits", o.FreeSlotBits)
	w.Uint32("is_bid_bits", o.IsBidBits)
	for i := range o.Orders {
		w.Element("orders", i, func() { w.Signed("order_id", o.Orders[i], 16) })
	}
	for i := range o.ClientOrderIDs {
		w.Element("client_order_ids", i, func() { w.Int64("client_order_id", o.ClientOrderIDs[i]) })
	}
}

const PerpAccountSize = 864

// PerpAccount is an account's position in one perp market.
type PerpAccount struct {
	BasePosition        decimal.Decimal `json:"base_position"`
	QuotePosition       decimal.Decimal `json:"quote_position"`
	LongSettledFunding  decimal.Decimal `json:"long_settled_funding"`
	ShortSettledFunding decimal.Decimal `json:"short_settled_funding"`
	OpenOrders          PerpOpenOrders  `json:"open_orders"`
	LiquidityPoints     decimal.Decimal `json:"liquidity_points"`
}

func (p *PerpAccount) DecodeFrom(r *codec.Reader) {
	p.BasePosition = r.Signed("base_position", 8)
	p.QuotePosition = r.I80F48("quote_position")
	p.LongSettledFunding = r.I80F48("long_settled_funding")
	p.ShortSettledFunding = r.I80F48("short_settled_funding")
	r.Struct("open_orders", func() { p.OpenOrders.DecodeFrom(r) })
	p.LiquidityPoints = r.I80F48("liquidity_points")
}

func (p *PerpAccount) EncodeTo(w *codec.Writer) {
	w.Signed("base_position", p.BasePosition, 8)
	w.I80F48("quote_position", p.QuotePosition)
	w.I80F48("long_settled_funding", p.LongSettledFunding)
	w.I80F48("short_settled_funding", p.ShortSettledFunding)
	w.Struct("open_orders", func() { p.OpenOrders.EncodeTo(w) })
	w.I80F48("liquidity_points", p.LiquidityPoints)
}

const MangoAccountSize = 28920

// MangoAccount is a user's margin account within a group.
type MangoAccount struct {
	MetaData          MetaData                    `json:"meta_data"`
	Group             *solana.PublicKey           `json:"group"`
	Owner             *solana.PublicKey           `json:"owner"`
	InMarginBasket    [MaxPairs]bool              `json:"in_margin_basket"`
	NumInMarginBasket uint8                       `json:"num_in_margin_basket"`
	Deposits          [MaxTokens]decimal.Decimal  `json:"deposits"`
	Borrows           [MaxTokens]decimal.Decimal  `json:"borrows"`
	SpotOpenOrders    [MaxPairs]*solana.PublicKey `json:"spot_open_orders"`
	PerpAccounts      [MaxPairs]PerpAccount       `json:"perp_accounts"`
	MsrmAmount        decimal.Decimal             `json:"msrm_amount"`
	BeingLiquidated   bool                        `json:"being_liquidated"`
	IsBankrupt        bool                        `json:"is_bankrupt"`
}

func DecodeMangoAccount(data []byte) (*MangoAccount, error) {
	return codec.Decode(data, MangoAccountSize, (*MangoAccount).DecodeFrom)
}

func (a *MangoAccount) Encode() ([]byte, error) {
	return codec.Encode(a, MangoAccountSize, (*MangoAccount).EncodeTo)
}

func (a *MangoAccount) DecodeFrom(r *codec.Reader) {
	r.Struct("meta_data", func() { a.MetaData.DecodeFrom(r) })
	a.Group = r.Identifier("group")
	a.Owner = r.Identifier("owner")
	for i := range a.InMarginBasket {
		r.Element("in_margin_basket", i, func() { a.InMarginBasket[i] = r.Bool("flag") })
	}
	a.NumInMarginBasket = r.Uint8("num_in_margin_basket")
	for i := range a.Deposits {
		r.Element("deposits", i, func() { a.Deposits[i] = r.I80F48("deposit") })
	}
	for i := range a.Borrows {
		r.Element("borrows", i, func() { a.Borrows[i] = r.I80F48("borrow") })
	}
	for i := range a.SpotOpenOrders {
		r.Element("spot_open_orders", i, func() { a.SpotOpenOrders[i] = r.Identifier("open_orders") })
	}
	for i := range a.PerpAccounts {
		r.Element("perp_accounts", i, func() { a.PerpAccounts[i].DecodeFrom(r) })
	}
	a.MsrmAmount = r.Unsigned("msrm_amount", 8)
	a.BeingLiquidated = r.Bool("being_liquidated")
	a.IsBankrupt = r.Bool("is_bankrupt")
	r.Skip("padding", 6)
}

func (a *MangoAccount) EncodeTo(w *codec.Writer) {
	w.Struct("meta_data", func() { a.MetaData.EncodeTo(w) })
	w.Identifier("group", a.Group)
	w.Identifier("owner", a.Owner)
	for i := range a.InMarginBasket {
		w.Element("in_margin_basket", i, func() { w.Bool("flag", a.InMarginBasket[i]) })
	}
	w.Uint8("num_in_margin_basket", a.NumInMarginBasket)
	for i := range a.Deposits {
		w.Element("deposits", i, func() { w.I80F48("deposit", a.Deposits[i]) })
	}
	for i := range a.Borrows {
		w.Element("borrows", i, func() { w.I80F48("borrow", a.Borrows[i]) })
	}
	for i := range a.SpotOpenOrders {
		w.Element("spot_open_orders", i, func() { w.Identifier("open_orders", a.SpotOpenOrders[i]) })
	}
	for i := range a.PerpAccounts {
		w.Element("perp_accounts", i, func() { a.PerpAccounts[i].EncodeTo(w) })
	}
	w.Unsigned("msrm_amount", a.MsrmAmount, 8)
	w.Bool("being_liquidated", a.BeingLiquidated)
	w.Bool("is_bankrupt", a.IsBankrupt)
	w.Pad("padding", 6)
}
