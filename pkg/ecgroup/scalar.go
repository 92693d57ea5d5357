package ecgroup

import (
	"fmt"
	"math/big"

	"github.com/smallyu/go-dislog/pkg/dislog"
)

// Scalar is an integer modulo the group order. The zero value is the zero
// scalar of the Default group.
type Scalar struct {
	g *Group
	n *big.Int
}

func (s *Scalar) group() *Group {
	if s.g == nil {
		return Default()
	}
	return s.g
}

func (s *Scalar) value() *big.Int {
	if s.n == nil {
		return new(big.Int)
	}
	return s.n
}

// Group returns the group the scalar belongs to.
func (s *Scalar) Group() dislog.Group {
	return s.group()
}

// Bytes returns the 32-byte little-endian encoding.
func (s *Scalar) Bytes() [dislog.ScalarSize]byte {
	return toLittleEndian(s.value())
}

// BigInt returns a copy of the value in [0, n).
func (s *Scalar) BigInt() *big.Int {
	return new(big.Int).Set(s.value())
}

// IsZero reports whether s is zero.
func (s *Scalar) IsZero() bool {
	return s.value().Sign() == 0
}

// Equal reports whether both scalars hold the same value in the same group.
func (s *Scalar) Equal(other dislog.Scalar) bool {
	o, ok := other.(*Scalar)
	if !ok || o.group() != s.group() {
		return false
	}
	return s.value().Cmp(o.value()) == 0
}

// Add returns s + other mod n.
func (s *Scalar) Add(other dislog.Scalar) dislog.Scalar {
	g := s.group()
	return g.reduce(new(big.Int).Add(s.value(), g.scalar(other).value()))
}

// Sub returns s - other mod n.
func (s *Scalar) Sub(other dislog.Scalar) dislog.Scalar {
	return s.Add(other.Neg())
}

// Mul returns s · other mod n.
func (s *Scalar) Mul(other dislog.Scalar) dislog.Scalar {
	g := s.group()
	return g.reduce(new(big.Int).Mul(s.value(), g.scalar(other).value()))
}

// Neg returns -s mod n.
func (s *Scalar) Neg() dislog.Scalar {
	g := s.group()
	return g.reduce(new(big.Int).Sub(g.order, s.value()))
}

// Inv returns s⁻¹ mod n, or zero when s is zero.
func (s *Scalar) Inv() dislog.Scalar {
	g := s.group()
	return g.reduce(g.curve.InverseOrder(s.value()))
}

// String returns the hex form of Bytes.
func (s *Scalar) String() string {
	b := s.Bytes()
	return dislog.EncodeHex(b[:])
}

// GoString prints the value together with the group, for %#v.
func (s *Scalar) GoString() string {
	return fmt.Sprintf("ecgroup.Scalar{%s: %s}", s.group().Name(), s.String())
}

// MarshalText implements encoding.TextMarshaler.
func (s *Scalar) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The scalar keeps its
// group, or joins the Default group if it has none.
func (s *Scalar) UnmarshalText(text []byte) error {
	v, err := dislog.ScalarFromHex(s.group(), string(text))
	if err != nil {
		return err
	}
	*s = *v.(*Scalar)
	return nil
}
