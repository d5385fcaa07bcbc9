// Package testutil builds raw account images for layout tests.
package testutil

import (
	"math/big"

	"github.com/gagliardetto/solana-go"
)

// Key returns an identifier with every byte set to b.
func Key(b byte) *solana.PublicKey {
	var k solana.PublicKey
	for i := range k {
		k[i] = b
	}
	return &k
}

// I80F48 returns the 16-byte little-endian image of v * 2^48.
func I80F48(v int64) []byte {
	x := new(big.Int).Lsh(big.NewInt(v), 48)
	if x.Sign() < 0 {
		x.Add(x, new(big.Int).Lsh(big.NewInt(1), 128))
	}
	be := x.FillBytes(make([]byte, 16))
	out := make([]byte, 16)
	for i := range be {
		out[15-i] = be[i]
	}
	return out
}

// Concat joins byte slices into a new buffer.
func Concat(parts ...[]byte) []byte {
	var n int
	for _, p := range parts {
		n += len(p)
	}
	out := make([]byte, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
