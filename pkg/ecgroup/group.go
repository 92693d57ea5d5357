// Package ecgroup implements the dislog interfaces over short Weierstrass
// curves. Scalars are big integers kept reduced modulo the group order;
// points are affine coordinates handled by the curve engine.
//
// Groups are process-wide singletons built on first use. A zero Scalar or
// Point belongs to the Default group.
package ecgroup

import (
	"fmt"
	"hash"
	"io"
	"math/big"
	"sync"

	"github.com/pkg/errors"

	"github.com/smallyu/go-dislog/internal/crypto/curves"
	"github.com/smallyu/go-dislog/pkg/dislog"
)

var (
	_ dislog.Group  = (*Group)(nil)
	_ dislog.Scalar = (*Scalar)(nil)
	_ dislog.Point  = (*Point)(nil)
)

// ErrUnknownCurve is returned by ByName for unsupported curve names.
var ErrUnknownCurve = errors.New("ecgroup: unknown curve")

// Group is the prime-order group generated by the base point of a curve.
type Group struct {
	curve curves.Curve
	order *big.Int
}

var (
	sm2Once, secp256k1Once sync.Once
	sm2Group, secp256k1Group *Group
)

// SM2 returns the group of the SM2 recommended curve.
func SM2() *Group {
	sm2Once.Do(func() {
		sm2Group = newGroup(curves.SM2())
	})
	return sm2Group
}

// Secp256k1 returns the group of the secp256k1 curve.
func Secp256k1() *Group {
	secp256k1Once.Do(func() {
		secp256k1Group = newGroup(curves.Secp256k1())
	})
	return secp256k1Group
}

// Default returns the group used by zero values, SM2.
func Default() *Group {
	return SM2()
}

// ByName looks a group up by curve name.
func ByName(name string) (*Group, error) {
	switch name {
	case curves.SM2Name:
		return SM2(), nil
	case curves.Secp256k1Name:
		return Secp256k1(), nil
	}
	return nil, errors.Wrapf(ErrUnknownCurve, "%q (supported: %v)", name, curves.Names())
}

func newGroup(c curves.Curve) *Group {
	return &Group{
		curve: c,
		order: c.Order(),
	}
}

// Name returns the curve name, "sm2" or "secp256k1".
func (g *Group) Name() string {
	return g.curve.Name()
}

// String returns the curve name.
func (g *Group) String() string {
	return g.curve.Name()
}

// Order returns a copy of the group order.
func (g *Group) Order() *big.Int {
	return new(big.Int).Set(g.order)
}

// NewHash returns the hash function paired with the curve.
func (g *Group) NewHash() hash.Hash {
	return g.curve.NewHash()
}

// ScalarZero returns the additive identity.
func (g *Group) ScalarZero() dislog.Scalar {
	return &Scalar{g: g, n: new(big.Int)}
}

// ScalarOne returns the multiplicative identity.
func (g *Group) ScalarOne() dislog.Scalar {
	return &Scalar{g: g, n: big.NewInt(1)}
}

// ScalarFromBytes reads a 32- or 64-byte little-endian integer and reduces it mod n.
func (g *Group) ScalarFromBytes(b []byte) (dislog.Scalar, error) {
	if len(b) != dislog.ScalarSize && len(b) != 2*dislog.ScalarSize {
		return nil, errors.Wrapf(dislog.ErrParse, "scalar: expected %d or %d bytes, got %d",
			dislog.ScalarSize, 2*dislog.ScalarSize, len(b))
	}
	return g.reduce(fromLittleEndian(b)), nil
}

// ScalarFromBigInt reduces n mod the group order.
func (g *Group) ScalarFromBigInt(n *big.Int) dislog.Scalar {
	return g.reduce(new(big.Int).Set(n))
}

// ScalarFromUint64 returns n mod the group order.
func (g *Group) ScalarFromUint64(n uint64) dislog.Scalar {
	return g.reduce(new(big.Int).SetUint64(n))
}

// RandomScalar draws 32 bytes per attempt and retries until the decoded
// scalar is non-zero.
func (g *Group) RandomScalar(r io.Reader) (dislog.Scalar, error) {
	var buf [dislog.ScalarSize]byte
	for {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return nil, errors.Wrap(err, "ecgroup: reading random scalar")
		}
		s := g.reduce(fromLittleEndian(buf[:]))
		if !s.IsZero() {
			return s, nil
		}
	}
}

// Identity returns the point at infinity.
func (g *Group) Identity() dislog.Point {
	x, y := curves.Infinity()
	return &Point{g: g, x: x, y: y}
}

// Generator returns the base point G.
func (g *Group) Generator() dislog.Point {
	x, y := g.curve.Generator()
	return &Point{g: g, x: x, y: y}
}

// One is the same point as Generator.
func (g *Group) One() dislog.Point {
	return g.Generator()
}

// BaseMul returns s·G.
func (g *Group) BaseMul(s dislog.Scalar) dislog.Point {
	x, y := g.curve.ScalarBaseMult(g.scalar(s).value())
	return &Point{g: g, x: x, y: y}
}

// PointFromBytes decodes a compressed point or the identity sentinel.
func (g *Group) PointFromBytes(b dislog.Bytes33) (dislog.Point, error) {
	if b.IsIdentity() {
		return g.Identity(), nil
	}
	x, y, err := g.curve.Decompress(b[:])
	if err != nil {
		return nil, errors.Wrapf(dislog.ErrParse, "point %s", b.Hex())
	}
	return &Point{g: g, x: x, y: y}, nil
}

// reduce takes ownership of n and returns it as a canonical scalar.
func (g *Group) reduce(n *big.Int) *Scalar {
	n.Mod(n, g.order)
	// Mod is Euclidean, so n is already non-negative; the re-addition holds
	// the [0, order) invariant regardless.
	if n.Sign() < 0 {
		n.Add(n, g.order)
	}
	return &Scalar{g: g, n: n}
}

// scalar converts an interface value into a scalar of g. Mixing groups or
// implementations is a programming error.
func (g *Group) scalar(v dislog.Scalar) *Scalar {
	s, ok := v.(*Scalar)
	if !ok {
		panic(fmt.Sprintf("ecgroup: unsupported scalar type %T", v))
	}
	if s.group() != g {
		panic(fmt.Sprintf("ecgroup: %s scalar used in %s group", s.group().Name(), g.Name()))
	}
	return s
}

func (g *Group) point(v dislog.Point) *Point {
	p, ok := v.(*Point)
	if !ok {
		panic(fmt.Sprintf("ecgroup: unsupported point type %T", v))
	}
	if p.group() != g {
		panic(fmt.Sprintf("ecgroup: %s point used in %s group", p.group().Name(), g.Name()))
	}
	return p
}

func fromLittleEndian(b []byte) *big.Int {
	be := make([]byte, len(b))
	for i, v := range b {
		be[len(b)-1-i] = v
	}
	return new(big.Int).SetBytes(be)
}

func toLittleEndian(n *big.Int) [dislog.ScalarSize]byte {
	var out [dislog.ScalarSize]byte
	n.FillBytes(out[:])
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
