package codec

import "math/big"

// maxTableExp covers the widest fixed-point split used by any layout (128 bits).
const maxTableExp = 128

var (
	pow2Table [maxTableExp + 1]*big.Int
	pow5Table [maxTableExp + 1]*big.Int
)

func init() {
	two, five := big.NewInt(2), big.NewInt(5)
	pow2Table[0], pow5Table[0] = big.NewInt(1), big.NewInt(1)
	for i := 1; i <= maxTableExp; i++ {
		pow2Table[i] = new(big.Int).Mul(pow2Table[i-1], two)
		pow5Table[i] = new(big.Int).Mul(pow5Table[i-1], five)
	}
}

// The returned values are shared and must not be mutated.
func pow2(n int) *big.Int {
	if n <= maxTableExp {
		return pow2Table[n]
	}
	return new(big.Int).Lsh(big.NewInt(1), uint(n))
}

func pow5(n int) *big.Int {
	if n <= maxTableExp {
		return pow5Table[n]
	}
	return new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(n)), nil)
}

// leToBig interprets b as an unsigned little-endian integer.
func leToBig(b []byte) *big.Int {
	be := make([]byte, len(b))
	for i, c := range b {
		be[len(b)-1-i] = c
	}
	return new(big.Int).SetBytes(be)
}

// leToSignedBig interprets b as a two's-complement little-endian integer.
func leToSignedBig(b []byte) *big.Int {
	x := leToBig(b)
	if len(b) > 0 && b[len(b)-1]&0x80 != 0 {
		x.Sub(x, pow2(8*len(b)))
	}
	return x
}

// bigToLE writes a non-negative x into size little-endian bytes.
// The caller guarantees x fits.
func bigToLE(x *big.Int, size int) []byte {
	be := x.Bytes()
	out := make([]byte, size)
	for i, c := range be {
		out[len(be)-1-i] = c
	}
	return out
}
