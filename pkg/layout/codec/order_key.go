package codec

import (
	"github.com/shopspring/decimal"

	"github.com/Aidin1998/mango_layouts/pkg/errors"
)

// OrderKeySize is the width of an order-book key.
const OrderKeySize = 16

// OrderKey is the 128-bit key of a resting order, read three ways at once:
// the whole value, its low 8 bytes and its high 8 bytes.
//
// There is no encoder for OrderKey. The facets cannot be recombined without
// knowing which one is authoritative, so writers take the raw OrderID instead.
type OrderKey struct {
	OrderID        decimal.Decimal `json:"order_id"`
	SequenceNumber decimal.Decimal `json:"sequence_number"`
	Price          decimal.Decimal `json:"price"`
}

// DecodeOrderKey reads a 16-byte order key and splits it into its facets.
func DecodeOrderKey(b []byte) (OrderKey, error) {
	if len(b) < OrderKeySize {
		return OrderKey{}, truncated(OrderKeySize, len(b))
	}
	return OrderKey{
		OrderID:        decimal.NewFromBigInt(leToBig(b[:16]), 0),
		SequenceNumber: decimal.NewFromBigInt(leToBig(b[:8]), 0),
		Price:          decimal.NewFromBigInt(leToBig(b[8:16]), 0),
	}, nil
}

// MarshalBinary always fails; see OrderKey.
func (k OrderKey) MarshalBinary() ([]byte, error) {
	return nil, errors.ErrUnsupportedEncode.Explain("order key %s is decode-only, encode the raw order id", k.OrderID)
}
