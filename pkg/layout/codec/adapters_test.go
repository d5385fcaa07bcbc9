package codec

import (
	"encoding/binary"
	"math"
	"math/big"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aidin1998/mango_layouts/pkg/errors"
)

func le(x *big.Int, size int) []byte {
	return bigToLE(x, size)
}

func TestDecodeUnsigned(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		size int
		want string
	}{
		{"u8", []byte{0xff}, 1, "255"},
		{"u32", []byte{0x01, 0x02, 0x00, 0x00}, 4, "513"},
		{"u64 max", []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, 8, "18446744073709551615"},
		{"u128 high bit", append(make([]byte, 15), 0x80), 16, "170141183460469231731687303715884105728"},
		{"extra bytes ignored", []byte{0x05, 0x00, 0xaa}, 2, "5"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeUnsigned(tc.in, tc.size)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.String())

			back, err := EncodeUnsigned(got, tc.size)
			require.NoError(t, err)
			assert.Equal(t, tc.in[:tc.size], back)
		})
	}
}

func TestDecodeSigned(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		size int
		want string
	}{
		{"minus one", []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, 8, "-1"},
		{"i64 min", []byte{0, 0, 0, 0, 0, 0, 0, 0x80}, 8, "-9223372036854775808"},
		{"positive", []byte{0x2a, 0, 0, 0, 0, 0, 0, 0}, 8, "42"},
		{"i128 minus two", append([]byte{0xfe}, bytesOf(0xff, 15)...), 16, "-2"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeSigned(tc.in, tc.size)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.String())

			back, err := EncodeSigned(got, tc.size)
			require.NoError(t, err)
			assert.Equal(t, tc.in, back)
		})
	}
}

func bytesOf(b byte, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = b
	}
	return out
}

func TestEncodeIntegerRejections(t *testing.T) {
	_, err := EncodeUnsigned(decimal.RequireFromString("1.5"), 8)
	assert.ErrorIs(t, err, errors.ErrUnsupportedEncode)

	_, err = EncodeUnsigned(decimal.NewFromInt(-1), 8)
	assert.ErrorIs(t, err, errors.ErrUnsupportedEncode)

	_, err = EncodeUnsigned(decimal.NewFromInt(256), 1)
	assert.ErrorIs(t, err, errors.ErrUnsupportedEncode)

	_, err = EncodeSigned(decimal.NewFromInt(128), 1)
	assert.ErrorIs(t, err, errors.ErrUnsupportedEncode)

	b, err := EncodeSigned(decimal.NewFromInt(-128), 1)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x80}, b)
}

func TestDecodeFixedPointMidpoint(t *testing.T) {
	zero, err := DecodeFixedPoint(make([]byte, 16), 16, DefaultFractionalBits(16))
	require.NoError(t, err)
	assert.True(t, zero.IsZero())

	one, err := DecodeFixedPoint(le(pow2(64), 16), 16, DefaultFractionalBits(16))
	require.NoError(t, err)
	assert.True(t, one.Equal(decimal.NewFromInt(1)), "got %s", one)
}

func TestDecodeI80F48(t *testing.T) {
	tests := []struct {
		name      string
		magnitude *big.Int
		want      string
	}{
		{"one", pow2(48), "1"},
		{"one and a half", new(big.Int).Add(pow2(48), pow2(47)), "1.5"},
		{"smallest step", big.NewInt(1), "0.000000000000003552713678800500929355621337890625"},
		{"large integer", new(big.Int).Mul(big.NewInt(1_000_000), pow2(48)), "1000000"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := le(tc.magnitude, I80F48Size)
			got, err := DecodeI80F48(in)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)), "got %s", got)

			// No rounding on the integer path, so the magnitude comes back exactly.
			back, err := EncodeI80F48(got)
			require.NoError(t, err)
			assert.Equal(t, in, back)
		})
	}
}

func TestEncodeFixedPointRejectsExcessPrecision(t *testing.T) {
	_, err := EncodeFixedPoint(decimal.RequireFromString("0.1"), 16, 48)
	assert.ErrorIs(t, err, errors.ErrUnsupportedEncode)
}

func TestFixedPointScaleIsIndependentOfWidth(t *testing.T) {
	in := le(big.NewInt(3), 8)
	got, err := DecodeFixedPoint(in, 8, 1)
	require.NoError(t, err)
	assert.Equal(t, "1.5", got.String())

	_, err = DecodeFixedPoint(in, 8, 65)
	assert.ErrorIs(t, err, errors.ErrConstantMismatch)
	_, err = DecodeFixedPoint(in, 8, -1)
	assert.ErrorIs(t, err, errors.ErrConstantMismatch)
	_, err = EncodeFixedPoint(decimal.NewFromInt(1), 8, 65)
	assert.ErrorIs(t, err, errors.ErrConstantMismatch)
}

// All-zero identifiers are treated as absent. The wire format does not forbid
// an all-zero key; this mirrors how the program leaves unused slots.
func TestDecodeIdentifierZeroIsAbsent(t *testing.T) {
	key, err := DecodeIdentifier(make([]byte, 32))
	require.NoError(t, err)
	assert.Nil(t, key)
	assert.Equal(t, make([]byte, 32), EncodeIdentifier(nil))
}

func TestDecodeIdentifierPresent(t *testing.T) {
	raw := make([]byte, 32)
	raw[31] = 1
	key, err := DecodeIdentifier(raw)
	require.NoError(t, err)
	require.NotNil(t, key)
	assert.Equal(t, solana.PublicKeyFromBytes(raw), *key)
	assert.Equal(t, raw, EncodeIdentifier(key))

	system := solana.MustPublicKeyFromBase58("SysvarC1ock11111111111111111111111111111111")
	key, err = DecodeIdentifier(system[:])
	require.NoError(t, err)
	assert.Equal(t, system.String(), key.String())
}

func TestDecodeTimestamp(t *testing.T) {
	in := make([]byte, 8)
	binary.LittleEndian.PutUint64(in, 1_630_000_000)
	got, err := DecodeTimestamp(in)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2021, time.August, 26, 17, 46, 40, 0, time.UTC), got)

	back, err := EncodeTimestamp(got)
	require.NoError(t, err)
	assert.Equal(t, in, back)

	_, err = EncodeTimestamp(time.Date(1960, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, errors.ErrUnsupportedEncode)
}

func TestDecodeTimestampRange(t *testing.T) {
	largest := make([]byte, 8)
	binary.LittleEndian.PutUint64(largest, math.MaxInt64)
	got, err := DecodeTimestamp(largest)
	require.NoError(t, err)
	back, err := EncodeTimestamp(got)
	require.NoError(t, err)
	assert.Equal(t, largest, back)

	for _, in := range [][]byte{
		{0, 0, 0, 0, 0, 0, 0, 0x80},
		{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
	} {
		_, err := DecodeTimestamp(in)
		assert.ErrorIs(t, err, errors.ErrConstantMismatch, "%x", in)
	}
}

func TestDecodeOrderKey(t *testing.T) {
	in := make([]byte, 16)
	binary.LittleEndian.PutUint64(in[:8], 7)
	binary.LittleEndian.PutUint64(in[8:], 500)

	key, err := DecodeOrderKey(in)
	require.NoError(t, err)
	assert.Equal(t, "7", key.SequenceNumber.String())
	assert.Equal(t, "500", key.Price.String())

	want := new(big.Int).Add(new(big.Int).Mul(big.NewInt(500), pow2(64)), big.NewInt(7))
	assert.Equal(t, want.String(), key.OrderID.String())

	_, err = key.MarshalBinary()
	assert.ErrorIs(t, err, errors.ErrUnsupportedEncode)

	// The raw order id is the supported way back to bytes.
	raw, err := EncodeUnsigned(key.OrderID, OrderKeySize)
	require.NoError(t, err)
	assert.Equal(t, in, raw)
}

func TestFlag(t *testing.T) {
	for _, b := range []byte{1, 2, 0xff} {
		v, err := DecodeFlag([]byte{b})
		require.NoError(t, err)
		assert.True(t, v)
	}
	v, err := DecodeFlag([]byte{0})
	require.NoError(t, err)
	assert.False(t, v)

	assert.Equal(t, []byte{1}, EncodeFlag(true))
	assert.Equal(t, []byte{0}, EncodeFlag(false))
}

func TestTruncatedInput(t *testing.T) {
	short := []byte{1, 2, 3}
	checks := map[string]func() error{
		"unsigned":    func() error { _, err := DecodeUnsigned(short, 4); return err },
		"signed":      func() error { _, err := DecodeSigned(short, 8); return err },
		"fixed point": func() error { _, err := DecodeI80F48(short); return err },
		"identifier":  func() error { _, err := DecodeIdentifier(short); return err },
		"timestamp":   func() error { _, err := DecodeTimestamp(short); return err },
		"order key":   func() error { _, err := DecodeOrderKey(short); return err },
		"flag":        func() error { _, err := DecodeFlag(nil); return err },
	}
	for name, check := range checks {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, check(), errors.ErrTruncatedInput)
		})
	}
}
