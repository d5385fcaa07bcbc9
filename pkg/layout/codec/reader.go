package codec

import (
	"encoding/binary"
	"time"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"

	"github.com/Aidin1998/mango_layouts/pkg/errors"
)

// Reader decodes fields in order from a byte buffer.
//
// The first failure is kept and every later read becomes a no-op returning a
// zero value, so a record decoder can read all of its fields and check Err
// once. The kept error names the failing field path and its offset.
type Reader struct {
	data []byte
	dec  *bin.Decoder
	path fieldPath
	err  error
}

func NewReader(data []byte) *Reader {
	return &Reader{data: data, dec: bin.NewBinDecoder(data)}
}

// Err returns the first error encountered, if any.
func (r *Reader) Err() error {
	return r.err
}

// Offset is the number of bytes consumed so far.
func (r *Reader) Offset() int {
	return int(r.dec.Position())
}

func (r *Reader) Remaining() int {
	return r.dec.Remaining()
}

// Fail records err against field at the current offset unless an earlier
// error is already recorded.
func (r *Reader) Fail(field string, err *errors.Error) {
	r.failAt(field, r.Offset(), err)
}

func (r *Reader) failAt(field string, offset int, err *errors.Error) {
	if r.err != nil {
		return
	}
	r.err = err.At(r.path.join(field), offset)
}

// Struct decodes a nested record under name.
func (r *Reader) Struct(name string, decode func()) {
	if r.err != nil {
		return
	}
	r.path.push(name, -1)
	decode()
	r.path.pop()
}

// Element decodes element i of the array name.
func (r *Reader) Element(name string, i int, decode func()) {
	if r.err != nil {
		return
	}
	r.path.push(name, i)
	decode()
	r.path.pop()
}

func (r *Reader) need(field string, n int) bool {
	if r.err != nil {
		return false
	}
	if r.dec.Remaining() < n {
		r.Fail(field, truncated(n, r.dec.Remaining()))
		return false
	}
	return true
}

func (r *Reader) check(field string, offset int, err error) {
	if err != nil {
		r.failAt(field, offset, errors.NewWithKind(errors.KindTruncatedInput).Wrap(err))
	}
}

// window returns the next n bytes without copying them.
func (r *Reader) window(field string, n int) []byte {
	if !r.need(field, n) {
		return nil
	}
	offset := r.Offset()
	b, err := r.dec.ReadNBytes(n)
	r.check(field, offset, err)
	return b
}

// peek returns the next n bytes without consuming them.
func (r *Reader) peek(field string, n int) []byte {
	if !r.need(field, n) {
		return nil
	}
	offset := r.Offset()
	return r.data[offset : offset+n]
}

// PeekUint8 returns the next byte without consuming it.
func (r *Reader) PeekUint8(field string) uint8 {
	b := r.peek(field, 1)
	if b == nil {
		return 0
	}
	return b[0]
}

// PeekUint32 returns the next little-endian uint32 without consuming it.
func (r *Reader) PeekUint32(field string) uint32 {
	b := r.peek(field, 4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// Raw returns a copy of the next n bytes.
func (r *Reader) Raw(field string, n int) []byte {
	b := r.window(field, n)
	if b == nil {
		return nil
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

// Skip consumes n bytes of padding without inspecting them.
func (r *Reader) Skip(field string, n int) {
	if !r.need(field, n) {
		return
	}
	offset := r.Offset()
	r.check(field, offset, r.dec.SkipBytes(uint(n)))
}

func (r *Reader) Uint8(field string) uint8 {
	if !r.need(field, 1) {
		return 0
	}
	offset := r.Offset()
	v, err := r.dec.ReadUint8()
	r.check(field, offset, err)
	return v
}

// Bool reads a one-byte flag; any non-zero value is true.
func (r *Reader) Bool(field string) bool {
	return r.Uint8(field) != 0
}

func (r *Reader) Uint16(field string) uint16 {
	if !r.need(field, 2) {
		return 0
	}
	offset := r.Offset()
	v, err := r.dec.ReadUint16(binary.LittleEndian)
	r.check(field, offset, err)
	return v
}

func (r *Reader) Uint32(field string) uint32 {
	if !r.need(field, 4) {
		return 0
	}
	offset := r.Offset()
	v, err := r.dec.ReadUint32(binary.LittleEndian)
	r.check(field, offset, err)
	return v
}

func (r *Reader) Uint64(field string) uint64 {
	if !r.need(field, 8) {
		return 0
	}
	offset := r.Offset()
	v, err := r.dec.ReadUint64(binary.LittleEndian)
	r.check(field, offset, err)
	return v
}

func (r *Reader) Int64(field string) int64 {
	if !r.need(field, 8) {
		return 0
	}
	offset := r.Offset()
	v, err := r.dec.ReadInt64(binary.LittleEndian)
	r.check(field, offset, err)
	return v
}

// ConstUint8 reads a one-byte field that must equal want.
func (r *Reader) ConstUint8(field string, want uint8) {
	offset := r.Offset()
	if got := r.Uint8(field); r.err == nil && got != want {
		r.failAt(field, offset, errors.Newf(errors.KindConstantMismatch, "expected %d, got %d", want, got))
	}
}

// ConstUint32 reads a four-byte field that must equal want.
func (r *Reader) ConstUint32(field string, want uint32) {
	offset := r.Offset()
	if got := r.Uint32(field); r.err == nil && got != want {
		r.failAt(field, offset, errors.Newf(errors.KindConstantMismatch, "expected %d, got %d", want, got))
	}
}

func (r *Reader) Unsigned(field string, size int) decimal.Decimal {
	b := r.window(field, size)
	if b == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(leToBig(b), 0)
}

func (r *Reader) Signed(field string, size int) decimal.Decimal {
	b := r.window(field, size)
	if b == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(leToSignedBig(b), 0)
}

func (r *Reader) FixedPoint(field string, size, fractionalBits int) decimal.Decimal {
	if err := checkScale(size, fractionalBits); err != nil {
		r.Fail(field, err)
		return decimal.Zero
	}
	b := r.window(field, size)
	if b == nil {
		return decimal.Zero
	}
	return scaleDown(leToBig(b), fractionalBits)
}

func (r *Reader) I80F48(field string) decimal.Decimal {
	return r.FixedPoint(field, I80F48Size, I80F48FractionalBits)
}

// Identifier reads an account identifier; all zeroes decode to nil.
func (r *Reader) Identifier(field string) *solana.PublicKey {
	b := r.window(field, IdentifierSize)
	if b == nil {
		return nil
	}
	key, _ := DecodeIdentifier(b)
	return key
}

func (r *Reader) Timestamp(field string) time.Time {
	if !r.need(field, TimestampSize) {
		return time.Time{}
	}
	offset := r.Offset()
	t, err := timestampFromUnix(r.Uint64(field))
	if err != nil {
		r.failAt(field, offset, err)
	}
	return t
}

func (r *Reader) OrderKey(field string) OrderKey {
	b := r.window(field, OrderKeySize)
	if b == nil {
		return OrderKey{}
	}
	key, _ := DecodeOrderKey(b)
	return key
}

// Finish checks that exactly size bytes were consumed.
func (r *Reader) Finish(size int) error {
	if r.err != nil {
		return r.err
	}
	if r.Offset() != size {
		return errors.Newf(errors.KindConstantMismatch, "layout consumed %d bytes, record size is %d", r.Offset(), size)
	}
	return nil
}

// DecodeWith runs decode over the first size bytes of data and checks that
// it consumed all of them. Bytes past size are ignored; a shorter buffer
// fails with TruncatedInput.
func DecodeWith(data []byte, size int, decode func(*Reader)) error {
	if len(data) < size {
		return truncated(size, len(data))
	}
	r := NewReader(data[:size])
	decode(r)
	return r.Finish(size)
}

// Decode reads one fixed-size record of type T from the start of data.
func Decode[T any](data []byte, size int, decode func(*T, *Reader)) (*T, error) {
	v := new(T)
	if err := DecodeWith(data, size, func(r *Reader) { decode(v, r) }); err != nil {
		return nil, err
	}
	return v, nil
}
