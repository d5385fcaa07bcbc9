package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	k := Key(7)
	for _, b := range k {
		assert.Equal(t, byte(7), b)
	}
}

func TestI80F48(t *testing.T) {
	one := I80F48(1)
	assert.Len(t, one, 16)
	assert.Equal(t, byte(1), one[6])

	minusOne := I80F48(-1)
	assert.Equal(t, byte(0xff), minusOne[15])
	assert.Equal(t, byte(0), minusOne[5])
}

func TestConcat(t *testing.T) {
	assert.Equal(t, []byte{1, 2, 3}, Concat([]byte{1}, nil, []byte{2, 3}))
	assert.Empty(t, Concat())
}
