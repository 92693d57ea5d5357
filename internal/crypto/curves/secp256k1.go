package curves

import (
	"crypto/sha256"
	"math/big"
	"sync"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Secp256k1Name is the registered name of the secp256k1 curve.
const Secp256k1Name = "secp256k1"

var (
	secp256k1Once  sync.Once
	secp256k1Curve *weierstrass
)

// Secp256k1 returns the secp256k1 curve backed by the decred implementation.
func Secp256k1() Curve {
	secp256k1Once.Do(func() {
		c := secp256k1.S256()
		secp256k1Curve = &weierstrass{
			name:       Secp256k1Name,
			curve:      c,
			params:     c.Params(),
			newHash:    sha256.New,
			decompress: decompressSecp256k1,
		}
	})
	return secp256k1Curve
}

// decompressSecp256k1 goes through ParsePubKey because the generic SEC1
// decoder in crypto/elliptic assumes a = -3.
func decompressSecp256k1(b []byte) (*big.Int, *big.Int, error) {
	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return nil, nil, ErrInvalidPoint
	}
	return pub.X(), pub.Y(), nil
}
