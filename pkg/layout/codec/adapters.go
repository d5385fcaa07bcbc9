// Package codec holds the primitive adapters shared by every Mango layout:
// little-endian integers of arbitrary width, fixed-point decimals, account
// identifiers, timestamps and the order-book key, plus the Reader and Writer
// cursors that composite records are built on.
package codec

import (
	"math"
	"math/big"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"

	"github.com/Aidin1998/mango_layouts/pkg/errors"
)

const (
	// IdentifierSize is the width of an account identifier (public key).
	IdentifierSize = 32
	// TimestampSize is the width of a Unix-seconds timestamp.
	TimestampSize = 8
	// I80F48Size is the width of an I80F48 fixed-point value.
	I80F48Size = 16
	// I80F48FractionalBits is the number of fractional bits in an I80F48 value.
	I80F48FractionalBits = 48
)

func truncated(need, have int) *errors.Error {
	return errors.Newf(errors.KindTruncatedInput, "need %d bytes, have %d", need, have)
}

func unsupported(message string, args ...any) *errors.Error {
	return errors.Newf(errors.KindUnsupportedEncode, message, args...)
}

// DecodeUnsigned reads size bytes as an unsigned little-endian integer.
func DecodeUnsigned(b []byte, size int) (decimal.Decimal, error) {
	if len(b) < size {
		return decimal.Zero, truncated(size, len(b))
	}
	return decimal.NewFromBigInt(leToBig(b[:size]), 0), nil
}

// EncodeUnsigned writes v as a size-byte unsigned little-endian integer.
// v must be integral, non-negative and fit in size bytes.
func EncodeUnsigned(v decimal.Decimal, size int) ([]byte, error) {
	if !v.IsInteger() {
		return nil, unsupported("unsigned value %s is not integral", v)
	}
	x := v.BigInt()
	if x.Sign() < 0 {
		return nil, unsupported("unsigned value %s is negative", v)
	}
	if x.BitLen() > 8*size {
		return nil, unsupported("unsigned value %s does not fit in %d bytes", v, size)
	}
	return bigToLE(x, size), nil
}

// DecodeSigned reads size bytes as a two's-complement little-endian integer.
func DecodeSigned(b []byte, size int) (decimal.Decimal, error) {
	if len(b) < size {
		return decimal.Zero, truncated(size, len(b))
	}
	return decimal.NewFromBigInt(leToSignedBig(b[:size]), 0), nil
}

// EncodeSigned writes v as a size-byte two's-complement little-endian integer.
func EncodeSigned(v decimal.Decimal, size int) ([]byte, error) {
	if !v.IsInteger() {
		return nil, unsupported("signed value %s is not integral", v)
	}
	x := v.BigInt()
	bound := pow2(8*size - 1)
	if x.Cmp(bound) >= 0 || x.Cmp(new(big.Int).Neg(bound)) < 0 {
		return nil, unsupported("signed value %s does not fit in %d bytes", v, size)
	}
	if x.Sign() < 0 {
		x.Add(x, pow2(8*size))
	}
	return bigToLE(x, size), nil
}

// DefaultFractionalBits places the fixed point in the middle of a size-byte value.
func DefaultFractionalBits(size int) int {
	return 4 * size
}

func checkScale(size, fractionalBits int) *errors.Error {
	if fractionalBits < 0 || fractionalBits > 8*size {
		return errors.Newf(errors.KindConstantMismatch, "%d fractional bits out of range for a %d byte value", fractionalBits, size)
	}
	return nil
}

// DecodeFixedPoint reads an unsigned size-byte magnitude and divides it by
// 2^fractionalBits. The result is exact: m/2^n is computed as m*5^n*10^-n.
func DecodeFixedPoint(b []byte, size, fractionalBits int) (decimal.Decimal, error) {
	if err := checkScale(size, fractionalBits); err != nil {
		return decimal.Zero, err
	}
	if len(b) < size {
		return decimal.Zero, truncated(size, len(b))
	}
	return scaleDown(leToBig(b[:size]), fractionalBits), nil
}

func scaleDown(m *big.Int, fractionalBits int) decimal.Decimal {
	if fractionalBits == 0 {
		return decimal.NewFromBigInt(m, 0)
	}
	return decimal.NewFromBigInt(new(big.Int).Mul(m, pow5(fractionalBits)), -int32(fractionalBits))
}

// EncodeFixedPoint is the inverse of DecodeFixedPoint. Values carrying more
// precision than 2^-fractionalBits cannot be represented and are rejected.
func EncodeFixedPoint(v decimal.Decimal, size, fractionalBits int) ([]byte, error) {
	if err := checkScale(size, fractionalBits); err != nil {
		return nil, err
	}
	scaled := v.Mul(decimal.NewFromBigInt(pow2(fractionalBits), 0))
	if !scaled.IsInteger() {
		return nil, unsupported("fixed-point value %s is not a multiple of 2^-%d", v, fractionalBits)
	}
	return EncodeUnsigned(scaled, size)
}

// DecodeI80F48 reads a 16-byte value with 80 integer and 48 fractional bits.
func DecodeI80F48(b []byte) (decimal.Decimal, error) {
	return DecodeFixedPoint(b, I80F48Size, I80F48FractionalBits)
}

// EncodeI80F48 is the inverse of DecodeI80F48.
func EncodeI80F48(v decimal.Decimal) ([]byte, error) {
	return EncodeFixedPoint(v, I80F48Size, I80F48FractionalBits)
}

// DecodeFlag reads a one-byte flag; any non-zero byte is true.
func DecodeFlag(b []byte) (bool, error) {
	if len(b) < 1 {
		return false, truncated(1, len(b))
	}
	return b[0] != 0, nil
}

// EncodeFlag writes 1 for true and 0 for false.
func EncodeFlag(v bool) []byte {
	if v {
		return []byte{1}
	}
	return []byte{0}
}

// DecodeIdentifier reads a 32-byte account identifier. An all-zero identifier
// is reported as absent (nil).
func DecodeIdentifier(b []byte) (*solana.PublicKey, error) {
	if len(b) < IdentifierSize {
		return nil, truncated(IdentifierSize, len(b))
	}
	key := solana.PublicKeyFromBytes(b[:IdentifierSize])
	if key == (solana.PublicKey{}) {
		return nil, nil
	}
	return &key, nil
}

// EncodeIdentifier writes key, or 32 zero bytes when key is nil.
func EncodeIdentifier(key *solana.PublicKey) []byte {
	out := make([]byte, IdentifierSize)
	if key != nil {
		copy(out, key[:])
	}
	return out
}

// DecodeTimestamp reads an unsigned 8-byte count of Unix seconds. Counts
// above math.MaxInt64 have no time.Time equivalent and are rejected.
func DecodeTimestamp(b []byte) (time.Time, error) {
	if len(b) < TimestampSize {
		return time.Time{}, truncated(TimestampSize, len(b))
	}
	t, err := timestampFromUnix(leToBig(b[:TimestampSize]).Uint64())
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

func timestampFromUnix(seconds uint64) (time.Time, *errors.Error) {
	if seconds > math.MaxInt64 {
		return time.Time{}, errors.Newf(errors.KindConstantMismatch, "timestamp %d exceeds the signed 64-bit range", seconds)
	}
	return time.Unix(int64(seconds), 0).UTC(), nil
}

// EncodeTimestamp writes t as Unix seconds. The zero time encodes as 0.
func EncodeTimestamp(t time.Time) ([]byte, error) {
	seconds, err := unixSeconds(t)
	if err != nil {
		return nil, err
	}
	return bigToLE(new(big.Int).SetUint64(seconds), TimestampSize), nil
}

func unixSeconds(t time.Time) (uint64, error) {
	if t.IsZero() {
		return 0, nil
	}
	if t.Unix() < 0 {
		return 0, unsupported("timestamp %s is before the Unix epoch", t)
	}
	return uint64(t.Unix()), nil
}
