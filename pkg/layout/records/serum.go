package records

import (
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"

	"github.com/Aidin1998/mango_layouts/pkg/layout/codec"
)

const TokenAccountSize = 165

// TokenAccount is the prefix of an SPL token account that Mango reads.
type TokenAccount struct {
	Mint   *solana.PublicKey `json:"mint"`
	Owner  *solana.PublicKey `json:"owner"`
	Amount decimal.Decimal   `json:"amount"`
}

func DecodeTokenAccount(data []byte) (*TokenAccount, error) {
	return codec.Decode(data, TokenAccountSize, (*TokenAccount).DecodeFrom)
}

func (t *TokenAccount) Encode() ([]byte, error) {
	return codec.Encode(t, TokenAccountSize, (*TokenAccount).EncodeTo)
}

func (t *TokenAccount) DecodeFrom(r *codec.Reader) {
	t.Mint = r.Identifier("mint")
	t.Owner = r.Identifier("owner")
	t.Amount = r.Unsigned("amount", 8)
	r.Skip("padding", 93)
}

func (t *TokenAccount) EncodeTo(w *codec.Writer) {
	w.Identifier("mint", t.Mint)
	w.Identifier("owner", t.Owner)
	w.Unsigned("amount", t.Amount, 8)
	w.Pad("padding", 93)
}

// OpenOrdersSlots is the number of order slots in a Serum open-orders account.
const OpenOrdersSlots = 128

const OpenOrdersSize = 3228

// OpenOrders is a Serum DEX open-orders account.
type OpenOrders struct {
	AccountFlags          AccountFlags                     `json:"account_flags"`
	Market                *solana.PublicKey                `json:"market"`
	Owner                 *solana.PublicKey                `json:"owner"`
	BaseTokenFree         decimal.Decimal                  `json:"base_token_free"`
	BaseTokenTotal        decimal.Decimal                  `json:"base_token_total"`
	QuoteTokenFree        decimal.Decimal                  `json:"quote_token_free"`
	QuoteTokenTotal       decimal.Decimal                  `json:"quote_token_total"`
	FreeSlotBits          decimal.Decimal                  `json:"free_slot_bits"`
	IsBidBits             decimal.Decimal                  `json:"is_bid_bits"`
	Orders                [OpenOrdersSlots]decimal.Decimal `json:"orders"`
	ClientIDs             [OpenOrdersSlots]uint64          `json:"client_ids"`
	ReferrerRebateAccrued decimal.Decimal                  `json:"referrer_rebate_accrued"`
}

func DecodeOpenOrders(data []byte) (*OpenOrders, error) {
	return codec.Decode(data, OpenOrdersSize, (*OpenOrders).DecodeFrom)
}

func (o *OpenOrders) Encode() ([]byte, error) {
	return codec.Encode(o, OpenOrdersSize, (*OpenOrders).EncodeTo)
}

func (o *OpenOrders) DecodeFrom(r *codec.Reader) {
	r.Skip("head_padding", 5)
	r.Struct("account_flags", func() { o.AccountFlags.DecodeFrom(r) })
	o.Market = r.Identifier("market")
	o.Owner = r.Identifier("owner")
	o.BaseTokenFree = r.Unsigned("base_token_free", 8)
	o.BaseTokenTotal = r.Unsigned("base_token_total", 8)
	o.QuoteTokenFree = r.Unsigned("quote_token_free", 8)
	o.QuoteTokenTotal = r.Unsigned("quote_token_total", 8)
	o.FreeSlotBits = r.Unsigned("free_slot_bits", 16)
	o.IsBidBits = r.Unsigned("is_bid_bits", 16)
	for i := range o.Orders {
		r.Element("orders", i, func() { o.Orders[i] = r.Unsigned("order_id", 16) })
	}
	for i := range o.ClientIDs {
		r.Element("client_ids", i, func() { o.ClientIDs[i] = r.Uint64("client_id") })
	}
	o.ReferrerRebateAccrued = r.Unsigned("referrer_rebate_accrued", 8)
	r.Skip("tail_padding", 7)
}

func (o *OpenOrders) EncodeTo(w *codec.Writer) {
	w.Pad("head_padding", 5)
	w.Struct("account_flags", func() { o.AccountFlags.EncodeTo(w) })
	w.Identifier("market", o.Market)
	w.Identifier("owner", o.Owner)
	w.Unsigned("base_token_free", o.BaseTokenFree, 8)
	w.Unsigned("base_token_total", o.BaseTokenTotal, 8)
	w.Unsigned("quote_token_free", o.QuoteTokenFree, 8)
	w.Unsigned("quote_token_total", o.QuoteTokenTotal, 8)
	w.Unsigned("free_slot_bits", o.FreeSlotBits, 16)
	w.Unsigned("is_bid_bits", o.IsBidBits, 16)
	for i := range o.Orders {
		w.Element("orders", i, func() { w.Unsigned("order_id", o.Orders[i], 16) })
	}
	for i := range o.ClientIDs {
		w.Element("client_ids", i, func() { w.Uint64("client_id", o.ClientIDs[i]) })
	}
	w.Unsigned("referrer_rebate_accrued", o.ReferrerRebateAccrued, 8)
	w.Pad("tail_padding", 7)
}
