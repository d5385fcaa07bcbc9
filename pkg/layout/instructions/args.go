package instructions

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Aidin1998/mango_layouts/pkg/layout/codec"
	"github.com/Aidin1998/mango_layouts/pkg/layout/records"
)

// OrderType is shared by spot (u32) and perp (u8) orders.
type OrderType uint32

const (
	OrderTypeLimit OrderType = iota
	OrderTypeImmediateOrCancel
	OrderTypePostOnly
)

func (t OrderType) String() string {
	switch t {
	case OrderTypeLimit:
		return "limit"
	case OrderTypeImmediateOrCancel:
		return "ioc"
	case OrderTypePostOnly:
		return "post_only"
	}
	return fmt.Sprintf("OrderType(%d)", uint32(t))
}

func (t OrderType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// SelfTradeBehavior is the Serum policy for an order matching its owner's
// own resting order.
type SelfTradeBehavior uint32

const (
	SelfTradeDecrementTake SelfTradeBehavior = iota
	SelfTradeCancelProvide
	SelfTradeAbortTransaction
)

func (b SelfTradeBehavior) String() string {
	switch b {
	case SelfTradeDecrementTake:
		return "decrement_take"
	case SelfTradeCancelProvide:
		return "cancel_provide"
	case SelfTradeAbortTransaction:
		return "abort_transaction"
	}
	return fmt.Sprintf("SelfTradeBehavior(%d)", uint32(b))
}

func (b SelfTradeBehavior) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func expectVariant(r *codec.Reader, v Variant) {
	r.ConstUint32("variant", uint32(v))
}

type InitMangoAccount struct{}

func (*InitMangoAccount) Discriminant() Variant { return VariantInitMangoAccount }

func (*InitMangoAccount) size() int { return VariantSize }

func (*InitMangoAccount) decodeFrom(r *codec.Reader) {
	expectVariant(r, VariantInitMangoAccount)
}

func (*InitMangoAccount) encodeTo(w *codec.Writer) {
	w.Uint32("variant", uint32(VariantInitMangoAccount))
}

type Deposit struct {
	Quantity decimal.Decimal `json:"quantity"`
}

func (*Deposit) Discriminant() Variant { return VariantDeposit }

func (*Deposit) size() int { return VariantSize + 8 }

func (a *Deposit) decodeFrom(r *codec.Reader) {
	expectVariant(r, VariantDeposit)
	a.Quantity = r.Unsigned("quantity", 8)
}

func (a *Deposit) encodeTo(w *codec.Writer) {
	w.Uint32("variant", uint32(VariantDeposit))
	w.Unsigned("quantity", a.Quantity, 8)
}

type Withdraw struct {
	Quantity    decimal.Decimal `json:"quantity"`
	AllowBorrow bool            `json:"allow_borrow"`
}

func (*Withdraw) Discriminant() Variant { return VariantWithdraw }

func (*Withdraw) size() int { return VariantSize + 8 + 1 }

func (a *Withdraw) decodeFrom(r *codec.Reader) {
	expectVariant(r, VariantWithdraw)
	a.Quantity = r.Unsigned("quantity", 8)
	a.AllowBorrow = r.Bool("allow_borrow")
}

func (a *Withdraw) encodeTo(w *codec.Writer) {
	w.Uint32("variant", uint32(VariantWithdraw))
	w.Unsigned("quantity", a.Quantity, 8)
	w.Bool("allow_borrow", a.AllowBorrow)
}

// PlaceSpotOrder carries a Serum new-order request. Prices and quantities
// are in lots.
type PlaceSpotOrder struct {
	Side              records.Side      `json:"side"`
	LimitPrice        decimal.Decimal   `json:"limit_price"`
	MaxBaseQuantity   decimal.Decimal   `json:"max_base_quantity"`
	MaxQuoteQuantity  decimal.Decimal   `json:"max_quote_quantity"`
	SelfTradeBehavior SelfTradeBehavior `json:"self_trade_behavior"`
	OrderType         OrderType         `json:"order_type"`
	ClientID          uint64            `json:"client_id"`
	Limit             uint16            `json:"limit"`
}

func (*PlaceSpotOrder) Discriminant() Variant { return VariantPlaceSpotOrder }

func (*PlaceSpotOrder) size() int { return VariantSize + 4 + 3*8 + 4 + 4 + 8 + 2 }

func (a *PlaceSpotOrder) decodeFrom(r *codec.Reader) {
	expectVariant(r, VariantPlaceSpotOrder)
	a.Side = records.Side(r.Uint32("side"))
	a.LimitPrice = r.Unsigned("limit_price", 8)
	a.MaxBaseQuantity = r.Unsigned("max_base_quantity", 8)
	a.MaxQuoteQuantity = r.Unsigned("max_quote_quantity", 8)
	a.SelfTradeBehavior = SelfTradeBehavior(r.Uint32("self_trade_behavior"))
	a.OrderType = OrderType(r.Uint32("order_type"))
	a.ClientID = r.Uint64("client_id")
	a.Limit = r.Uint16("limit")
}

func (a *PlaceSpotOrder) encodeTo(w *codec.Writer) {
	w.Uint32("variant", uint32(VariantPlaceSpotOrder))
	w.Uint32("side", uint32(a.Side))
	w.Unsigned("limit_price", a.LimitPrice, 8)
	w.Unsigned("max_base_quantity", a.MaxBaseQuantity, 8)
	w.Unsigned("max_quote_quantity", a.MaxQuoteQuantity, 8)
	w.Uint32("self_trade_behavior", uint32(a.SelfTradeBehavior))
	w.Uint32("order_type", uint32(a.OrderType))
	w.Uint64("client_id", a.ClientID)
	w.Uint16("limit", a.Limit)
}

// PlacePerpOrder carries price and quantity in lots. Side and OrderType are
// single bytes on the wire.
type PlacePerpOrder struct {
	Price         decimal.Decimal `json:"price"`
	Quantity      decimal.Decimal `json:"quantity"`
	ClientOrderID uint64          `json:"client_order_id"`
	Side          records.Side    `json:"side"`
	OrderType     OrderType       `json:"order_type"`
}

func (*PlacePerpOrder) Discriminant() Variant { return VariantPlacePerpOrder }

func (*PlacePerpOrder) size() int { return VariantSize + 8 + 8 + 8 + 1 + 1 }

func (a *PlacePerpOrder) decodeFrom(r *codec.Reader) {
	expectVariant(r, VariantPlacePerpOrder)
	a.Price = r.Signed("price", 8)
	a.Quantity = r.Signed("quantity", 8)
	a.ClientOrderID = r.Uint64("client_order_id")
	a.Side = records.Side(r.Uint8("side"))
	a.OrderType = OrderType(r.Uint8("order_type"))
}

func (a *PlacePerpOrder) encodeTo(w *codec.Writer) {
	w.Uint32("variant", uint32(VariantPlacePerpOrder))
	w.Signed("price", a.Price, 8)
	w.Signed("quantity", a.Quantity, 8)
	w.Uint64("client_order_id", a.ClientOrderID)
	w.Byte("side", uint32(a.Side))
	w.Byte("order_type", uint32(a.OrderType))
}

type CancelPerpOrderByClientID struct {
	ClientOrderID uint64 `json:"client_order_id"`
}

func (*CancelPerpOrderByClientID) Discriminant() Variant { return VariantCancelPerpOrderByClientID }

func (*CancelPerpOrderByClientID) size() int { return VariantSize + 8 }

func (a *CancelPerpOrderByClientID) decodeFrom(r *codec.Reader) {
	expectVariant(r, VariantCancelPerpOrderByClientID)
	a.ClientOrderID = r.Uint64("client_order_id")
}

func (a *CancelPerpOrderByClientID) encodeTo(w *codec.Writer) {
	w.Uint32("variant", uint32(VariantCancelPerpOrderByClientID))
	w.Uint64("client_order_id", a.ClientOrderID)
}

type CancelPerpOrder struct {
	OrderID decimal.Decimal `json:"order_id"`
	Side    records.Side    `json:"side"`
}

func (*CancelPerpOrder) Discriminant() Variant { return VariantCancelPerpOrder }

func (*CancelPerpOrder) size() int { return VariantSize + 16 + 4 }

func (a *CancelPerpOrder) decodeFrom(r *codec.Reader) {
	expectVariant(r, VariantCancelPerpOrder)
	a.OrderID = r.Unsigned("order_id", 16)
	a.Side = records.Side(r.Uint32("side"))
}

func (a *CancelPerpOrder) encodeTo(w *codec.Writer) {
	w.Uint32("variant", uint32(VariantCancelPerpOrder))
	w.Unsigned("order_id", a.OrderID, 16)
	w.Uint32("side", uint32(a.Side))
}

type ConsumeEvents struct {
	Limit uint64 `json:"limit"`
}

func (*ConsumeEvents) Discriminant() Variant { return VariantConsumeEvents }

func (*ConsumeEvents) size() int { return VariantSize + 8 }

func (a *ConsumeEvents) decodeFrom(r *codec.Reader) {
	expectVariant(r, VariantConsumeEvents)
	a.Limit = r.Uint64("limit")
}

func (a *ConsumeEvents) encodeTo(w *codec.Writer) {
	w.Uint32("variant", uint32(VariantConsumeEvents))
	w.Uint64("limit", a.Limit)
}

type SettleFunds struct{}

func (*SettleFunds) Discriminant() Variant { return VariantSettleFunds }

func (*SettleFunds) size() int { return VariantSize }

func (*SettleFunds) decodeFrom(r *codec.Reader) {
	expectVariant(r, VariantSettleFunds)
}

func (*SettleFunds) encodeTo(w *codec.Writer) {
	w.Uint32("variant", uint32(VariantSettleFunds))
}

type CancelSpotOrder struct {
	Side    records.Side    `json:"side"`
	OrderID decimal.Decimal `json:"order_id"`
}

func (*CancelSpotOrder) Discriminant() Variant { return VariantCancelSpotOrder }

func (*CancelSpotOrder) size() int { return VariantSize + 4 + 16 }

func (a *CancelSpotOrder) decodeFrom(r *codec.Reader) {
	expectVariant(r, VariantCancelSpotOrder)
	a.Side = records.Side(r.Uint32("side"))
	a.OrderID = r.Unsigned("order_id", 16)
}

func (a *CancelSpotOrder) encodeTo(w *codec.Writer) {
	w.Uint32("variant", uint32(VariantCancelSpotOrder))
	w.Uint32("side", uint32(a.Side))
	w.Unsigned("order_id", a.OrderID, 16)
}
