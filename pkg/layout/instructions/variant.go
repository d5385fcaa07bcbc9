// Package instructions decodes Mango v3 instruction data.
//
// Instruction data starts with a u32 variant. Decode reads it, picks the
// argument layout for that variant and decodes the whole payload through it.
// Variants the program defines but this package has no layout for decode to
// *Unsupported rather than an error.
package instructions

import (
	"fmt"

	"github.com/Aidin1998/mango_layouts/pkg/errors"
	"github.com/Aidin1998/mango_layouts/pkg/layout/codec"
)

const VariantSize = 4

// Variant is the instruction discriminant.
type Variant uint32

const (
	VariantInitMangoGroup Variant = iota
	VariantInitMangoAccount
	VariantDeposit
	VariantWithdraw
	VariantAddSpotMarket
	VariantAddToBasket
	VariantBorrow
	VariantCachePrices
	VariantCacheRootBanks
	VariantPlaceSpotOrder
	VariantAddOracle
	VariantAddPerpMarket
	VariantPlacePerpOrder
	VariantCancelPerpOrderByClientID
	VariantCancelPerpOrder
	VariantConsumeEvents
	VariantCachePerpMarkets
	VariantUpdateFunding
	VariantSetOracle
	VariantSettleFunds
	VariantCancelSpotOrder
	VariantUpdateRootBank
	VariantSettlePnl
	VariantSettleBorrow

	variantCount
)

var variantNames = [variantCount]string{
	VariantInitMangoGroup:            "InitMangoGroup",
	VariantInitMangoAccount:          "InitMangoAccount",
	VariantDeposit:                   "Deposit",
	VariantWithdraw:                  "Withdraw",
	VariantAddSpotMarket:             "AddSpotMarket",
	VariantAddToBasket:               "AddToBasket",
	VariantBorrow:                    "Borrow",
	VariantCachePrices:               "CachePrices",
	VariantCacheRootBanks:            "CacheRootBanks",
	VariantPlaceSpotOrder:            "PlaceSpotOrder",
	VariantAddOracle:                 "AddOracle",
	VariantAddPerpMarket:             "AddPerpMarket",
	VariantPlacePerpOrder:            "PlacePerpOrder",
	VariantCancelPerpOrderByClientID: "CancelPerpOrderByClientID",
	VariantCancelPerpOrder:           "CancelPerpOrder",
	VariantConsumeEvents:             "ConsumeEvents",
	VariantCachePerpMarkets:          "CachePerpMarkets",
	VariantUpdateFunding:             "UpdateFunding",
	VariantSetOracle:                 "SetOracle",
	VariantSettleFunds:               "SettleFunds",
	VariantCancelSpotOrder:           "CancelSpotOrder",
	VariantUpdateRootBank:            "UpdateRootBank",
	VariantSettlePnl:                 "SettlePnl",
	VariantSettleBorrow:              "SettleBorrow",
}

// Known reports whether the program defines v.
func (v Variant) Known() bool {
	return v < variantCount
}

func (v Variant) String() string {
	if v.Known() {
		return variantNames[v]
	}
	return fmt.Sprintf("Variant(%d)", uint32(v))
}

func (v Variant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Args is the decoded payload of one instruction. It is one of the argument
// types in this package or *Unsupported.
type Args interface {
	Discriminant() Variant

	size() int
	decodeFrom(r *codec.Reader)
	encodeTo(w *codec.Writer)
}

// newArgs returns empty arguments for v, or nil when v has no layout here.
func newArgs(v Variant) Args {
	switch v {
	case VariantInitMangoAccount:
		return &InitMangoAccount{}
	case VariantDeposit:
		return &Deposit{}
	case VariantWithdraw:
		return &Withdraw{}
	case VariantPlaceSpotOrder:
		return &PlaceSpotOrder{}
	case VariantPlacePerpOrder:
		return &PlacePerpOrder{}
	case VariantCancelPerpOrderByClientID:
		return &CancelPerpOrderByClientID{}
	case VariantCancelPerpOrder:
		return &CancelPerpOrder{}
	case VariantConsumeEvents:
		return &ConsumeEvents{}
	case VariantSettleFunds:
		return &SettleFunds{}
	case VariantCancelSpotOrder:
		return &CancelSpotOrder{}
	case VariantInitMangoGroup, VariantAddSpotMarket, VariantAddToBasket, VariantBorrow,
		VariantCachePrices, VariantCacheRootBanks, VariantAddOracle, VariantAddPerpMarket,
		VariantCachePerpMarkets, VariantUpdateFunding, VariantSetOracle, VariantUpdateRootBank,
		VariantSettlePnl, VariantSettleBorrow:
		return nil
	}
	return nil
}

// VariantInfo describes one discriminant.
type VariantInfo struct {
	Variant   Variant `json:"variant"`
	Code      uint32  `json:"code"`
	Name      string  `json:"name"`
	Supported bool    `json:"supported"`
}

// Variants lists every discriminant the program defines, in order.
func Variants() []VariantInfo {
	out := make([]VariantInfo, 0, variantCount)
	for v := Variant(0); v < variantCount; v++ {
		out = append(out, VariantInfo{
			Variant:   v,
			Code:      uint32(v),
			Name:      v.String(),
			Supported: newArgs(v) != nil,
		})
	}
	return out
}

// Unsupported is the result of decoding a variant the program defines but
// this package has no argument layout for. Its payload is not read.
type Unsupported struct {
	Variant Variant `json:"variant"`
}

func (u *Unsupported) Discriminant() Variant { return u.Variant }

func (*Unsupported) size() int { return VariantSize }

func (*Unsupported) decodeFrom(r *codec.Reader) {}

func (u *Unsupported) encodeTo(w *codec.Writer) {
	w.Fail("variant", errors.Newf(errors.KindUnsupportedEncode, "no argument layout for %s", u.Variant))
}

// Decode decodes instruction data. Bytes past the argument layout are
// ignored.
func Decode(data []byte) (Args, error) {
	r := codec.NewReader(data)
	v := Variant(r.PeekUint32("variant"))
	if err := r.Err(); err != nil {
		return nil, err
	}
	if !v.Known() {
		return nil, errors.Newf(errors.KindUnknownInstruction, "unknown instruction variant %d", uint32(v)).At("variant", 0)
	}
	args := newArgs(v)
	if args == nil {
		return &Unsupported{Variant: v}, nil
	}
	if err := codec.DecodeWith(data, args.size(), args.decodeFrom); err != nil {
		return nil, err
	}
	return args, nil
}

// Encode writes instruction data for args, variant first.
func Encode(args Args) ([]byte, error) {
	if args == nil {
		return nil, errors.Newf(errors.KindUnsupportedEncode, "no instruction to encode").At("variant", 0)
	}
	w := codec.NewWriter(args.size())
	args.encodeTo(w)
	return w.Finish(args.size())
}

// PeekVariant returns the discriminant of instruction data without decoding
// the arguments.
func PeekVariant(data []byte) (Variant, error) {
	r := codec.NewReader(data)
	v := Variant(r.PeekUint32("variant"))
	return v, r.Err()
}
