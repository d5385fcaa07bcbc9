package codec

import (
	"bytes"
	"encoding/binary"
	"time"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"

	"github.com/Aidin1998/mango_layouts/pkg/errors"
)

// Writer encodes fields in order. Like Reader it keeps the first error and
// ignores every write after it.
type Writer struct {
	buf  *bytes.Buffer
	enc  *bin.Encoder
	path fieldPath
	err  error
}

func NewWriter(size int) *Writer {
	buf := bytes.NewBuffer(make([]byte, 0, size))
	return &Writer{buf: buf, enc: bin.NewBinEncoder(buf)}
}

func (w *Writer) Err() error {
	return w.err
}

// Offset is the number of bytes written so far.
func (w *Writer) Offset() int {
	return w.buf.Len()
}

// Bytes returns the encoded output.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Fail records err against field unless an earlier error is already recorded.
func (w *Writer) Fail(field string, err *errors.Error) {
	if w.err != nil {
		return
	}
	w.err = err.At(w.path.join(field), w.Offset())
}

func (w *Writer) fail(field string, err error) {
	if err == nil {
		return
	}
	if e, ok := err.(*errors.Error); ok {
		w.Fail(field, e)
		return
	}
	w.Fail(field, errors.Newf(errors.KindUnsupportedEncode, "write failed").Wrap(err))
}

func (w *Writer) Struct(name string, encode func()) {
	if w.err != nil {
		return
	}
	w.path.push(name, -1)
	encode()
	w.path.pop()
}

func (w *Writer) Element(name string, i int, encode func()) {
	if w.err != nil {
		return
	}
	w.path.push(name, i)
	encode()
	w.path.pop()
}

// Raw writes b into a window of exactly n bytes, zero-filling any shortfall.
func (w *Writer) Raw(field string, b []byte, n int) {
	if w.err != nil {
		return
	}
	if len(b) > n {
		w.Fail(field, unsupported("%d bytes do not fit in a %d byte field", len(b), n))
		return
	}
	out := make([]byte, n)
	copy(out, b)
	w.fail(field, w.enc.WriteBytes(out, false))
}

// Pad writes n zero bytes.
func (w *Writer) Pad(field string, n int) {
	w.Raw(field, nil, n)
}

func (w *Writer) Uint8(field string, v uint8) {
	if w.err != nil {
		return
	}
	w.fail(field, w.enc.WriteUint8(v))
}

// Byte writes v as a single byte. Values above 0xff do not fit and fail
// instead of being truncated.
func (w *Writer) Byte(field string, v uint32) {
	if w.err != nil {
		return
	}
	if v > 0xff {
		w.Fail(field, unsupported("value %d does not fit in 1 byte", v))
		return
	}
	w.Uint8(field, uint8(v))
}

// Bool writes a one-byte flag as 0 or 1.
func (w *Writer) Bool(field string, v bool) {
	var b uint8
	if v {
		b = 1
	}
	w.Uint8(field, b)
}

func (w *Writer) Uint16(field string, v uint16) {
	if w.err != nil {
		return
	}
	w.fail(field, w.enc.WriteUint16(v, binary.LittleEndian))
}

func (w *Writer) Uint32(field string, v uint32) {
	if w.err != nil {
		return
	}
	w.fail(field, w.enc.WriteUint32(v, binary.LittleEndian))
}

func (w *Writer) Uint64(field string, v uint64) {
	if w.err != nil {
		return
	}
	w.fail(field, w.enc.WriteUint64(v, binary.LittleEndian))
}

func (w *Writer) Int64(field string, v int64) {
	if w.err != nil {
		return
	}
	w.fail(field, w.enc.WriteInt64(v, binary.LittleEndian))
}

func (w *Writer) encoded(field string, b []byte, err error, n int) {
	if w.err != nil {
		return
	}
	if err != nil {
		w.fail(field, err)
		return
	}
	w.Raw(field, b, n)
}

func (w *Writer) Unsigned(field string, v decimal.Decimal, size int) {
	b, err := EncodeUnsigned(v, size)
	w.encoded(field, b, err, size)
}

func (w *Writer) Signed(field string, v decimal.Decimal, size int) {
	b, err := EncodeSigned(v, size)
	w.encoded(field, b, err, size)
}

func (w *Writer) FixedPoint(field string, v decimal.Decimal, size, fractionalBits int) {
	b, err := EncodeFixedPoint(v, size, fractionalBits)
	w.encoded(field, b, err, size)
}

func (w *Writer) I80F48(field string, v decimal.Decimal) {
	w.FixedPoint(field, v, I80F48Size, I80F48FractionalBits)
}

func (w *Writer) Identifier(field string, key *solana.PublicKey) {
	w.Raw(field, EncodeIdentifier(key), IdentifierSize)
}

func (w *Writer) Timestamp(field string, t time.Time) {
	b, err := EncodeTimestamp(t)
	w.encoded(field, b, err, TimestampSize)
}

// OrderKey always fails: order keys are decode-only.
func (w *Writer) OrderKey(field string, k OrderKey) {
	_, err := k.MarshalBinary()
	w.fail(field, err)
}

// Finish checks that exactly size bytes were written and returns them.
func (w *Writer) Finish(size int) ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	if w.Offset() != size {
		return nil, errors.Newf(errors.KindConstantMismatch, "layout wrote %d bytes, record size is %d", w.Offset(), size)
	}
	return w.Bytes(), nil
}

// Encode writes one fixed-size record of type T.
func Encode[T any](v *T, size int, encode func(*T, *Writer)) ([]byte, error) {
	w := NewWriter(size)
	encode(v, w)
	return w.Finish(size)
}
