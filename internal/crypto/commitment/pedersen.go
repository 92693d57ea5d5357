package commitment

import (
	"io"

	"github.com/smallyu/go-dislog/pkg/dislog"
)

var pedersenDomain = []byte("go-dislog/pedersen/v1")

// Pedersen is a perfectly hiding, computationally binding commitment
// C = m*G + r*H, where nobody knows log_G(H).
type Pedersen struct {
	Group dislog.Group
	H     dislog.Point
}

// NewPedersen derives H for g by hashing to the curve.
func NewPedersen(g dislog.Group) (*Pedersen, error) {
	h, err := dislog.HashToPoint(g, pedersenDomain, []byte(g.Name()))
	if err != nil {
		return nil, err
	}
	return &Pedersen{Group: g, H: h}, nil
}

// Commit commits to m with fresh randomness and returns the commitment and
// the blinding factor needed to open it.
func (p *Pedersen) Commit(rand io.Reader, m dislog.Scalar) (dislog.Point, dislog.Scalar, error) {
	r, err := p.Group.RandomScalar(rand)
	if err != nil {
		return nil, nil, err
	}
	return p.CommitWith(m, r), r, nil
}

// CommitWith computes m*G + r*H.
func (p *Pedersen) CommitWith(m, r dislog.Scalar) dislog.Point {
	return p.Group.BaseMul(m).Add(p.H.Mul(r))
}

// Open reports whether (m, r) opens c.
func (p *Pedersen) Open(c dislog.Point, m, r dislog.Scalar) bool {
	return p.CommitWith(m, r).Equal(c)
}
