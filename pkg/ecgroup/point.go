package ecgroup

import (
	"fmt"
	"math/big"

	"github.com/smallyu/go-dislog/pkg/dislog"
)

// Point is an element of the group. The zero value is the identity of the
// Default group.
type Point struct {
	g    *Group
	x, y *big.Int
}

func (p *Point) group() *Group {
	if p.g == nil {
		return Default()
	}
	return p.g
}

func (p *Point) coords() (*big.Int, *big.Int) {
	if p.x == nil || p.y == nil {
		return new(big.Int), new(big.Int)
	}
	return p.x, p.y
}

// Group returns the group the point belongs to.
func (p *Point) Group() dislog.Group {
	return p.group()
}

// IsIdentity reports whether p is the point at infinity.
func (p *Point) IsIdentity() bool {
	x, y := p.coords()
	return x.Sign() == 0 && y.Sign() == 0
}

// Equal reports whether both points are the same point in the same group.
func (p *Point) Equal(other dislog.Point) bool {
	o, ok := other.(*Point)
	if !ok || o.group() != p.group() {
		return false
	}
	x1, y1 := p.coords()
	x2, y2 := o.coords()
	return p.group().curve.Equal(x1, y1, x2, y2)
}

// Add returns p + q. Adding a point to itself doubles that point.
func (p *Point) Add(q dislog.Point) dislog.Point {
	g := p.group()
	x1, y1 := p.coords()
	x2, y2 := g.point(q).coords()
	x, y := g.curve.Add(x1, y1, x2, y2)
	return &Point{g: g, x: x, y: y}
}

// AddLegacy returns p + q under the legacy self-addition rule: when p equals
// q the result is twice the generator, whatever p is. It exists for byte
// compatibility with data produced under that rule and agrees with Add
// except when p == q and p is not the generator.
func (p *Point) AddLegacy(q dislog.Point) dislog.Point {
	g := p.group()
	if p.Equal(g.point(q)) {
		return g.Generator().(*Point).Double()
	}
	return p.Add(q)
}

// Double returns 2 * p.
func (p *Point) Double() dislog.Point {
	g := p.group()
	x, y := g.curve.Double(p.coords())
	return &Point{g: g, x: x, y: y}
}

// Sub returns p - q.
func (p *Point) Sub(q dislog.Point) dislog.Point {
	return p.Add(q.Neg())
}

// Neg returns -p.
func (p *Point) Neg() dislog.Point {
	g := p.group()
	x, y := g.curve.Negate(p.coords())
	return &Point{g: g, x: x, y: y}
}

// Mul returns s·p.
func (p *Point) Mul(s dislog.Scalar) dislog.Point {
	g := p.group()
	x1, y1 := p.coords()
	x, y := g.curve.ScalarMult(x1, y1, g.scalar(s).value())
	return &Point{g: g, x: x, y: y}
}

// X returns the affine x coordinate reduced mod n; zero for the identity.
func (p *Point) X() dislog.Scalar {
	x, _ := p.coords()
	return p.group().ScalarFromBigInt(x)
}

// Y returns the affine y coordinate reduced mod n; zero for the identity.
func (p *Point) Y() dislog.Scalar {
	_, y := p.coords()
	return p.group().ScalarFromBigInt(y)
}

// Bytes returns the compressed encoding, or IdentityBytes33 for the identity.
func (p *Point) Bytes() dislog.Bytes33 {
	if p.IsIdentity() {
		return dislog.IdentityBytes33
	}
	var out dislog.Bytes33
	copy(out[:], p.group().curve.Compress(p.coords()))
	return out
}

// String returns the hex form of Bytes.
func (p *Point) String() string {
	return p.Bytes().Hex()
}

// GoString prints the value together with the group, for %#v.
func (p *Point) GoString() string {
	return fmt.Sprintf("ecgroup.Point{%s: %s}", p.group().Name(), p.String())
}

// MarshalText implements encoding.TextMarshaler.
func (p *Point) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The point keeps its
// group, or joins the Default group if it has none.
func (p *Point) UnmarshalText(text []byte) error {
	v, err := dislog.PointFromHex(p.group(), string(text))
	if err != nil {
		return err
	}
	*p = *v.(*Point)
	return nil
}
