package curves

import (
	"crypto/elliptic"
	"math/big"
	"sync"

	"github.com/tjfoc/gmsm/sm2"
	"github.com/tjfoc/gmsm/sm3"
)

// SM2Name is the registered name of the SM2 curve (GB/T 32918).
const SM2Name = "sm2"

var (
	sm2Once  sync.Once
	sm2Curve *weierstrass
)

// SM2 returns the SM2 recommended 256-bit curve. The curve is built on first
// use and shared afterwards; it is never mutated.
func SM2() Curve {
	sm2Once.Do(func() {
		c := sm2.P256Sm2()
		sm2Curve = &weierstrass{
			name:    SM2Name,
			curve:   c,
			params:  c.Params(),
			newHash: sm3.New,
			// SM2 has a = -3, so the generic SEC1 decoder of crypto/elliptic
			// evaluates the right curve equation.
			decompress: func(b []byte) (*big.Int, *big.Int, error) {
				x, y := elliptic.UnmarshalCompressed(c, b)
				if x == nil {
					return nil, nil, ErrInvalidPoint
				}
				return x, y, nil
			},
		}
	})
	return sm2Curve
}
