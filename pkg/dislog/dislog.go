package dislog

import (
	"hash"
	"io"
	"math/big"
)

// ScalarSize is the length of an encoded scalar.
const ScalarSize = 32

// Scalar is an integer modulo the group order. Values are immutable and
// always canonical: every constructor and every operation returns a value in
// [0, order).
type Scalar interface {
	// Group returns the group the scalar belongs to.
	Group() Group

	// Bytes returns the little-endian encoding, zero padded to ScalarSize.
	Bytes() [ScalarSize]byte

	// BigInt returns a copy of the canonical value.
	BigInt() *big.Int

	IsZero() bool
	Equal(s Scalar) bool

	Add(s Scalar) Scalar
	Sub(s Scalar) Scalar
	Mul(s Scalar) Scalar

	// Neg returns order - s, reduced, so the negation of zero is zero.
	Neg() Scalar

	// Inv returns the multiplicative inverse modulo the order. Zero has no
	// inverse; Inv of zero returns zero and callers must not rely on it.
	Inv() Scalar

	// String returns the upper-case hex of Bytes.
	String() string
}

// Point is an element of the group. Equality is group-element equality,
// independent of any internal representation.
type Point interface {
	// Group returns the group the point belongs to.
	Group() Group

	// Bytes returns the 33-byte compressed encoding. The identity encodes
	// as IdentityBytes33.
	Bytes() Bytes33

	IsIdentity() bool
	Equal(p Point) bool

	Add(p Point) Point
	Sub(p Point) Point
	Neg() Point

	// Mul returns s * p.
	Mul(s Scalar) Point

	// X and Y return the affine coordinates reinterpreted as scalars, that
	// is reduced modulo the group order. Both are zero for the identity.
	X() Scalar
	Y() Scalar

	// String returns the upper-case hex of Bytes.
	String() string
}

// Group is a cyclic group of prime order in which the discrete logarithm is
// assumed hard.
type Group interface {
	// Name returns the curve name, e.g. "sm2".
	Name() string

	// Order returns the prime order of the group.
	Order() *big.Int

	// NewHash returns the hash function paired with the group.
	NewHash() hash.Hash

	ScalarZero() Scalar
	ScalarOne() Scalar

	// ScalarFromBytes decodes 32 (or, for compatibility, 64) little-endian
	// bytes and reduces the value modulo the order. Other lengths fail with
	// ErrParse.
	ScalarFromBytes(b []byte) (Scalar, error)

	// ScalarFromBigInt reduces n modulo the order.
	ScalarFromBigInt(n *big.Int) Scalar

	ScalarFromUint64(n uint64) Scalar

	// RandomScalar returns a uniformly distributed non-zero scalar read
	// from r. It fails only if r does.
	RandomScalar(r io.Reader) (Scalar, error)

	// Identity returns the neutral element.
	Identity() Point

	// Generator returns the base point.
	Generator() Point

	// BaseMul returns s * Generator().
	BaseMul(s Scalar) Point

	// PointFromBytes decodes a 33-byte compressed point. It fails with
	// ErrParse if b is neither the identity sentinel nor a point on the
	// curve.
	PointFromBytes(b Bytes33) (Point, error)
}
