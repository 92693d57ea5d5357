package polynomial

import (
	"io"

	"github.com/pkg/errors"

	"github.com/smallyu/go-dislog/pkg/dislog"
)

var (
	ErrDuplicateX = errors.New("polynomial: duplicate evaluation point")
	ErrZeroX      = errors.New("polynomial: share index must be non-zero")
)

// Polynomial represents a polynomial f(x) = a_0 + a_1*x + ... + a_t*x^t
// over the scalar field of the group.
type Polynomial struct {
	Coefficients []dislog.Scalar
	Group        dislog.Group
}

// New generates a random polynomial of given degree with the constant term (secret) provided.
// If secret is nil, a random constant term is generated.
func New(g dislog.Group, rand io.Reader, degree int, secret dislog.Scalar) (*Polynomial, error) {
	if degree < 0 {
		return nil, errors.Errorf("polynomial: negative degree %d", degree)
	}
	coeffs := make([]dislog.Scalar, degree+1)
	var err error

	// a_0 is the secret
	if secret == nil {
		coeffs[0], err = g.RandomScalar(rand)
		if err != nil {
			return nil, err
		}
	} else {
		coeffs[0] = secret
	}

	for i := 1; i <= degree; i++ {
		coeffs[i], err = g.RandomScalar(rand)
		if err != nil {
			return nil, err
		}
	}

	return &Polynomial{
		Coefficients: coeffs,
		Group:        g,
	}, nil
}

// Degree returns t.
func (p *Polynomial) Degree() int {
	return len(p.Coefficients) - 1
}

// Secret returns f(0).
func (p *Polynomial) Secret() dislog.Scalar {
	return p.Coefficients[0]
}

// Evaluate calculates f(x) with Horner's method.
func (p *Polynomial) Evaluate(x dislog.Scalar) dislog.Scalar {
	degree := p.Degree()
	result := p.Coefficients[degree]
	for i := degree - 1; i >= 0; i-- {
		result = result.Mul(x).Add(p.Coefficients[i])
	}
	return result
}

// EvaluateMulti calculates f(x) for multiple x values
func (p *Polynomial) EvaluateMulti(xs []dislog.Scalar) []dislog.Scalar {
	results := make([]dislog.Scalar, len(xs))
	for i, x := range xs {
		results[i] = p.Evaluate(x)
	}
	return results
}

// Commit returns the Feldman commitments A_i = a_i * G.
func (p *Polynomial) Commit() []dislog.Point {
	out := make([]dislog.Point, len(p.Coefficients))
	for i, c := range p.Coefficients {
		out[i] = p.Group.BaseMul(c)
	}
	return out
}

// VerifyShare checks share == f(x) against Feldman commitments, that is
// share * G == sum(x^i * A_i).
func VerifyShare(g dislog.Group, commitments []dislog.Point, x, share dislog.Scalar) bool {
	if len(commitments) == 0 {
		return false
	}
	return g.BaseMul(share).Equal(EvaluateCommitments(commitments, x))
}

// EvaluateCommitments returns f(x) * G given the Feldman commitments of f.
// It returns nil for an empty commitment list.
func EvaluateCommitments(commitments []dislog.Point, x dislog.Scalar) dislog.Point {
	if len(commitments) == 0 {
		return nil
	}
	// Horner over the commitments.
	acc := commitments[len(commitments)-1]
	for i := len(commitments) - 2; i >= 0; i-- {
		acc = acc.Mul(x).Add(commitments[i])
	}
	return acc
}

// LagrangeCoefficient returns l_i(0) for the evaluation points xs.
func LagrangeCoefficient(g dislog.Group, xs []dislog.Scalar, i int) (dislog.Scalar, error) {
	if i < 0 || i >= len(xs) {
		return nil, errors.Errorf("polynomial: index %d out of range [0, %d)", i, len(xs))
	}
	num, den := g.ScalarOne(), g.ScalarOne()
	for j, xj := range xs {
		if j == i {
			continue
		}
		if xj.Equal(xs[i]) {
			return nil, ErrDuplicateX
		}
		// l_i(0) = prod x_j / (x_j - x_i)
		num = num.Mul(xj)
		den = den.Mul(xj.Sub(xs[i]))
	}
	return num.Mul(den.Inv()), nil
}

// Interpolate recovers f(0) from the shares ys[i] = f(xs[i]). It needs at
// least t+1 distinct non-zero points.
func Interpolate(g dislog.Group, xs, ys []dislog.Scalar) (dislog.Scalar, error) {
	if len(xs) != len(ys) {
		return nil, errors.Errorf("polynomial: %d points for %d shares", len(xs), len(ys))
	}
	secret := g.ScalarZero()
	for i := range xs {
		if xs[i].IsZero() {
			return nil, ErrZeroX
		}
		l, err := LagrangeCoefficient(g, xs, i)
		if err != nil {
			return nil, err
		}
		secret = secret.Add(l.Mul(ys[i]))
	}
	return secret, nil
}

// InterpolatePoints recovers f(0)*G from the points ys[i] = f(xs[i])*G.
func InterpolatePoints(g dislog.Group, xs []dislog.Scalar, ys []dislog.Point) (dislog.Point, error) {
	if len(xs) != len(ys) {
		return nil, errors.Errorf("polynomial: %d points for %d shares", len(xs), len(ys))
	}
	ls := make([]dislog.Scalar, len(xs))
	for i := range xs {
		if xs[i].IsZero() {
			return nil, ErrZeroX
		}
		l, err := LagrangeCoefficient(g, xs, i)
		if err != nil {
			return nil, err
		}
		ls[i] = l
	}
	return dislog.MultiScalarMult(g, ls, ys)
}
