package curves

import (
	"crypto/elliptic"
	"errors"
	"hash"
	"math/big"
)

// CompressedSize is the length of a SEC1 compressed point.
const CompressedSize = 33

// ScalarSize is the byte width of a scalar (and of a field element) for the
// 256-bit curves supported here.
const ScalarSize = 32

// ErrInvalidPoint is returned by Decompress when the input is not a valid
// compressed encoding of a point on the curve.
var ErrInvalidPoint = errors.New("curves: invalid compressed point")

// Curve defines the group operations needed by the scalar and point types.
// Points are affine; the point at infinity is (0, 0), which is not on any
// curve supported here.
type Curve interface {
	// Name returns the canonical lower-case name of the curve.
	Name() string

	// Params returns the curve parameters (P, N, B, Gx, Gy).
	Params() *elliptic.CurveParams

	// Order returns the order n of the base point.
	Order() *big.Int

	// Generator returns the base point G.
	Generator() (*big.Int, *big.Int)

	// Equal reports whether two affine points are the same group element.
	Equal(x1, y1, x2, y2 *big.Int) bool

	// Add combines two points
	Add(x1, y1, x2, y2 *big.Int) (*big.Int, *big.Int)

	// Double computes 2 * P
	Double(x, y *big.Int) (*big.Int, *big.Int)

	// Negate computes -P
	Negate(x, y *big.Int) (*big.Int, *big.Int)

	// ScalarMult computes k * P
	ScalarMult(x, y, k *big.Int) (*big.Int, *big.Int)

	// ScalarBaseMult computes k * G
	ScalarBaseMult(k *big.Int) (*big.Int, *big.Int)

	// InverseOrder returns k^-1 mod n, or 0 when k has no inverse.
	InverseOrder(k *big.Int) *big.Int

	// Compress returns the 33-byte SEC1 compressed form of a finite point.
	Compress(x, y *big.Int) []byte

	// Decompress parses a 33-byte SEC1 compressed point.
	Decompress(b []byte) (*big.Int, *big.Int, error)

	// NewHash returns the hash function customarily paired with the curve.
	NewHash() hash.Hash
}

// Infinity returns the affine representation of the point at infinity.
func Infinity() (*big.Int, *big.Int) {
	return new(big.Int), new(big.Int)
}

// IsInfinity reports whether (x, y) is the point at infinity.
func IsInfinity(x, y *big.Int) bool {
	return x.Sign() == 0 && y.Sign() == 0
}

// weierstrass wraps an elliptic.Curve and handles the special cases of the
// group law itself, so the backing implementation only ever sees two finite
// distinct non-opposite points in Add, a finite point with y != 0 in Double,
// and a scalar in [1, n) in the multiplications.
type weierstrass struct {
	name       string
	curve      elliptic.Curve
	params     *elliptic.CurveParams
	newHash    func() hash.Hash
	decompress func(b []byte) (*big.Int, *big.Int, error)
}

func (c *weierstrass) Name() string {
	return c.name
}

func (c *weierstrass) Params() *elliptic.CurveParams {
	return c.params
}

func (c *weierstrass) Order() *big.Int {
	return new(big.Int).Set(c.params.N)
}

func (c *weierstrass) Generator() (*big.Int, *big.Int) {
	return new(big.Int).Set(c.params.Gx), new(big.Int).Set(c.params.Gy)
}

func (c *weierstrass) Equal(x1, y1, x2, y2 *big.Int) bool {
	return x1.Cmp(x2) == 0 && y1.Cmp(y2) == 0
}

func (c *weierstrass) Add(x1, y1, x2, y2 *big.Int) (*big.Int, *big.Int) {
	switch {
	case IsInfinity(x1, y1):
		return copyPoint(x2, y2)
	case IsInfinity(x2, y2):
		return copyPoint(x1, y1)
	case x1.Cmp(x2) == 0:
		if y1.Cmp(y2) == 0 {
			return c.Double(x1, y1)
		}
		// Same x and different y means Q = -P.
		return Infinity()
	}
	return c.curve.Add(x1, y1, x2, y2)
}

func (c *weierstrass) Double(x, y *big.Int) (*big.Int, *big.Int) {
	if IsInfinity(x, y) || y.Sign() == 0 {
		return Infinity()
	}
	return c.curve.Double(x, y)
}

func (c *weierstrass) Negate(x, y *big.Int) (*big.Int, *big.Int) {
	if IsInfinity(x, y) {
		return Infinity()
	}
	ny := new(big.Int).Sub(c.params.P, y)
	ny.Mod(ny, c.params.P)
	return new(big.Int).Set(x), ny
}

func (c *weierstrass) ScalarMult(x, y, k *big.Int) (*big.Int, *big.Int) {
	kb, ok := c.scalarBytes(k)
	if !ok || IsInfinity(x, y) {
		return Infinity()
	}
	return c.curve.ScalarMult(x, y, kb)
}

func (c *weierstrass) ScalarBaseMult(k *big.Int) (*big.Int, *big.Int) {
	kb, ok := c.scalarBytes(k)
	if !ok {
		return Infinity()
	}
	return c.curve.ScalarBaseMult(kb)
}

// scalarBytes reduces k mod n and returns it as 32 big-endian bytes. It
// reports false when the reduced scalar is zero.
func (c *weierstrass) scalarBytes(k *big.Int) ([]byte, bool) {
	r := new(big.Int).Mod(k, c.params.N)
	if r.Sign() == 0 {
		return nil, false
	}
	return r.FillBytes(make([]byte, ScalarSize)), true
}

func (c *weierstrass) InverseOrder(k *big.Int) *big.Int {
	r := new(big.Int).Mod(k, c.params.N)
	if r.ModInverse(r, c.params.N) == nil {
		return new(big.Int)
	}
	return r
}

func (c *weierstrass) Compress(x, y *big.Int) []byte {
	return elliptic.MarshalCompressed(c.curve, x, y)
}

func (c *weierstrass) Decompress(b []byte) (*big.Int, *big.Int, error) {
	if len(b) != CompressedSize || (b[0] != 2 && b[0] != 3) {
		return nil, nil, ErrInvalidPoint
	}
	return c.decompress(b)
}

func (c *weierstrass) NewHash() hash.Hash {
	return c.newHash()
}

func copyPoint(x, y *big.Int) (*big.Int, *big.Int) {
	return new(big.Int).Set(x), new(big.Int).Set(y)
}

// ByName returns the curve registered under name.
func ByName(name string) (Curve, bool) {
	switch name {
	case SM2Name:
		return SM2(), true
	case Secp256k1Name:
		return Secp256k1(), true
	}
	return nil, false
}

// Names lists the supported curve names.
func Names() []string {
	return []string{SM2Name, Secp256k1Name}
}
