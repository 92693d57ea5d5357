package dislog

import "github.com/pkg/errors"

// SumPoints returns the sum of ps, or the identity when ps is empty.
func SumPoints(g Group, ps ...Point) Point {
	acc := g.Identity()
	for _, p := range ps {
		acc = acc.Add(p)
	}
	return acc
}

// SumScalars returns the sum of ss, or zero when ss is empty.
func SumScalars(g Group, ss ...Scalar) Scalar {
	acc := g.ScalarZero()
	for _, s := range ss {
		acc = acc.Add(s)
	}
	return acc
}

// MultiScalarMult returns sum(scalars[i] * points[i]).
func MultiScalarMult(g Group, scalars []Scalar, points []Point) (Point, error) {
	if len(scalars) != len(points) {
		return nil, errors.Errorf("dislog: %d scalars for %d points", len(scalars), len(points))
	}
	acc := g.Identity()
	for i := range scalars {
		acc = acc.Add(points[i].Mul(scalars[i]))
	}
	return acc, nil
}
