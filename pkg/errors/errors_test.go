package errors

import (
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"kind only", NewWithKind(KindTruncatedInput), "[TruncatedInput]"},
		{"message", Newf(KindUnknownVariant, "unknown node tag %d", 7), "[UnknownVariant] unknown node tag 7"},
		{
			"field and offset",
			Newf(KindConstantMismatch, "expected 2, got 1").At("nodes[3].tag", 304),
			"[ConstantMismatch] nodes[3].tag @304: expected 2, got 1",
		},
		{"field without offset", Newf(KindMalformedEvent, "short").At("events[1]", -1), "[MalformedEvent] events[1]: short"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.Error())
		})
	}
}

func TestErrorIsMatchesKind(t *testing.T) {
	err := Newf(KindTruncatedInput, "need 8 bytes").At("quantity", 12)
	assert.ErrorIs(t, err, ErrTruncatedInput)
	assert.NotErrorIs(t, err, ErrConstantMismatch)

	wrapped := fmt.Errorf("decode group: %w", err)
	assert.ErrorIs(t, wrapped, ErrTruncatedInput)
	assert.Equal(t, KindTruncatedInput, KindOf(wrapped))
	assert.Equal(t, "", KindOf(io.EOF))
}

func TestWrapKeepsCause(t *testing.T) {
	err := NewWithKind(KindTruncatedInput).Wrap(io.ErrUnexpectedEOF)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.ErrorIs(t, err, ErrTruncatedInput)
	assert.Contains(t, err.Error(), io.ErrUnexpectedEOF.Error())
}

func TestAtKeepsInnermostField(t *testing.T) {
	inner := Newf(KindConstantMismatch, "bad tag").At("tag", 0)
	outer := inner.At("nodes[2]", 120)
	assert.Equal(t, "tag", outer.Field)
	assert.Equal(t, 0, outer.Offset)

	var e *Error
	require.True(t, As(outer, &e))
	assert.NotSame(t, inner, e)
}

func TestExplainCopies(t *testing.T) {
	msg := ErrUnsupportedEncode.Explain("order keys are decode-only")
	assert.Equal(t, "", ErrUnsupportedEncode.Message)
	assert.Equal(t, "order keys are decode-only", msg.Message)
	assert.ErrorIs(t, msg, ErrUnsupportedEncode)
}
