package polynomial

import (
	"crypto/rand"
	"testing"

	"github.com/smallyu/go-dislog/pkg/dislog"
	"github.com/smallyu/go-dislog/pkg/ecgroup"
)

func sc(g dislog.Group, v uint64) dislog.Scalar {
	return g.ScalarFromUint64(v)
}

func TestNew(t *testing.T) {
	g := ecgroup.SM2()

	t.Run("with random secret", func(t *testing.T) {
		poly, err := New(g, rand.Reader, 2, nil)
		if err != nil {
			t.Fatalf("Failed to create polynomial: %v", err)
		}

		if len(poly.Coefficients) != 3 {
			t.Errorf("Expected 3 coefficients for degree 2, got %d", len(poly.Coefficients))
		}

		for i, c := range poly.Coefficients {
			if c == nil {
				t.Errorf("Coefficient %d is nil", i)
			}
			if c.IsZero() {
				t.Errorf("Coefficient %d is zero", i)
			}
		}
	})

	t.Run("with provided secret", func(t *testing.T) {
		secret := sc(g, 12345)
		poly, err := New(g, rand.Reader, 2, secret)
		if err != nil {
			t.Fatalf("Failed to create polynomial: %v", err)
		}

		if !poly.Secret().Equal(secret) {
			t.Errorf("Expected a_0 = %s, got %s", secret, poly.Coefficients[0])
		}
	})

	t.Run("degree 0", func(t *testing.T) {
		poly, err := New(g, rand.Reader, 0, sc(g, 999))
		if err != nil {
			t.Fatalf("Failed to create polynomial: %v", err)
		}

		if poly.Degree() != 0 {
			t.Errorf("Expected degree 0, got %d", poly.Degree())
		}
	})

	t.Run("negative degree", func(t *testing.T) {
		if _, err := New(g, rand.Reader, -1, nil); err == nil {
			t.Error("Expected error for negative degree")
		}
	})
}

func TestEvaluate(t *testing.T) {
	g := ecgroup.SM2()

	tests := []struct {
		name   string
		coeffs []uint64
		x      uint64
		want   uint64
	}{
		{"constant at 0", []uint64{5}, 0, 5},
		{"constant at 100", []uint64{5}, 100, 5},
		{"linear f(0)", []uint64{3, 2}, 0, 3},
		{"linear f(1)", []uint64{3, 2}, 1, 5},
		{"linear f(5)", []uint64{3, 2}, 5, 13},
		{"quadratic f(2)", []uint64{1, 2, 3}, 2, 17},
		{"quadratic f(3)", []uint64{1, 2, 3}, 3, 34},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			poly := &Polynomial{Group: g}
			for _, c := range tt.coeffs {
				poly.Coefficients = append(poly.Coefficients, sc(g, c))
			}
			if got := poly.Evaluate(sc(g, tt.x)); !got.Equal(sc(g, tt.want)) {
				t.Errorf("f(%d) = %s, expected %d", tt.x, got, tt.want)
			}
		})
	}

	t.Run("modular reduction", func(t *testing.T) {
		// f(x) = (q-1) + 2x, so f(1) = q+1 = 1 mod q
		poly := &Polynomial{
			Coefficients: []dislog.Scalar{g.ScalarOne().Neg(), sc(g, 2)},
			Group:        g,
		}
		if got := poly.Evaluate(g.ScalarOne()); !got.Equal(g.ScalarOne()) {
			t.Errorf("f(1) = %s, expected 1 (after mod q)", got)
		}
	})
}

func TestEvaluateMulti(t *testing.T) {
	g := ecgroup.Secp256k1()

	// f(x) = 5 + 3x
	poly := &Polynomial{
		Coefficients: []dislog.Scalar{sc(g, 5), sc(g, 3)},
		Group:        g,
	}

	xs := []dislog.Scalar{sc(g, 0), sc(g, 1), sc(g, 2), sc(g, 10)}
	expected := []uint64{5, 8, 11, 35}

	results := poly.EvaluateMulti(xs)
	if len(results) != len(expected) {
		t.Fatalf("Expected %d results, got %d", len(expected), len(results))
	}
	for i, r := range results {
		if !r.Equal(sc(g, expected[i])) {
			t.Errorf("f(%s) = %s, expected %d", xs[i], r, expected[i])
		}
	}
}

func TestShamirSecretSharing(t *testing.T) {
	g := ecgroup.SM2()

	secret := sc(g, 42)
	poly, err := New(g, rand.Reader, 2, secret) // degree 2, so 3 shares needed
	if err != nil {
		t.Fatalf("Failed to create polynomial: %v", err)
	}

	xs := []dislog.Scalar{sc(g, 1), sc(g, 2), sc(g, 3), sc(g, 4), sc(g, 5)}
	shares := poly.EvaluateMulti(xs)

	// Any 3 shares reconstruct the secret.
	for _, idx := range [][]int{{0, 1, 2}, {2, 3, 4}, {0, 2, 4}} {
		var sx, sy []dislog.Scalar
		for _, i := range idx {
			sx = append(sx, xs[i])
			sy = append(sy, shares[i])
		}
		got, err := Interpolate(g, sx, sy)
		if err != nil {
			t.Fatalf("Interpolate(%v) failed: %v", idx, err)
		}
		if !got.Equal(secret) {
			t.Errorf("Reconstructed secret from %v = %s, expected %s", idx, got, secret)
		}
	}

	// Two shares are not enough.
	got, err := Interpolate(g, xs[:2], shares[:2])
	if err != nil {
		t.Fatalf("Interpolate failed: %v", err)
	}
	if got.Equal(secret) {
		t.Error("Two shares of a degree 2 polynomial recovered the secret")
	}
}

func TestLagrangeKnownValues(t *testing.T) {
	g := ecgroup.SM2()
	xs := []dislog.Scalar{sc(g, 1), sc(g, 2), sc(g, 3)}

	// L_1(0) = 3, L_2(0) = -3, L_3(0) = 1
	want := []dislog.Scalar{sc(g, 3), sc(g, 3).Neg(), sc(g, 1)}
	for i := range xs {
		l, err := LagrangeCoefficient(g, xs, i)
		if err != nil {
			t.Fatalf("LagrangeCoefficient(%d) failed: %v", i, err)
		}
		if !l.Equal(want[i]) {
			t.Errorf("L_%d(0) = %s, expected %s", i+1, l, want[i])
		}
	}

	if _, err := LagrangeCoefficient(g, xs, 3); err == nil {
		t.Error("Expected error for out of range index")
	}
	if _, err := LagrangeCoefficient(g, []dislog.Scalar{sc(g, 1), sc(g, 1)}, 0); err != ErrDuplicateX {
		t.Errorf("Expected ErrDuplicateX, got %v", err)
	}
	if _, err := Interpolate(g, []dislog.Scalar{sc(g, 0)}, []dislog.Scalar{sc(g, 1)}); err != ErrZeroX {
		t.Errorf("Expected ErrZeroX, got %v", err)
	}
}

func TestFeldmanVerification(t *testing.T) {
	g := ecgroup.Secp256k1()

	poly, err := New(g, rand.Reader, 3, nil)
	if err != nil {
		t.Fatalf("Failed to create polynomial: %v", err)
	}
	commitments := poly.Commit()
	if !commitments[0].Equal(g.BaseMul(poly.Secret())) {
		t.Fatal("A_0 is not the public secret")
	}

	for i := uint64(1); i <= 5; i++ {
		x := sc(g, i)
		share := poly.Evaluate(x)
		if !VerifyShare(g, commitments, x, share) {
			t.Errorf("Valid share %d rejected", i)
		}
		if VerifyShare(g, commitments, x, share.Add(g.ScalarOne())) {
			t.Errorf("Tampered share %d accepted", i)
		}
	}

	if VerifyShare(g, nil, sc(g, 1), sc(g, 1)) {
		t.Error("Share accepted without commitments")
	}

	// The public key follows from public shares.
	xs := []dislog.Scalar{sc(g, 2), sc(g, 4), sc(g, 6), sc(g, 8)}
	pubShares := make([]dislog.Point, len(xs))
	for i, x := range xs {
		pubShares[i] = g.BaseMul(poly.Evaluate(x))
	}
	pub, err := InterpolatePoints(g, xs, pubShares)
	if err != nil {
		t.Fatalf("InterpolatePoints failed: %v", err)
	}
	if !pub.Equal(commitments[0]) {
		t.Error("Interpolated public key does not match A_0")
	}
}

func TestEvaluateCommitments(t *testing.T) {
	g := ecgroup.Secp256k1()
	poly, err := New(g, rand.Reader, 3, nil)
	if err != nil {
		t.Fatalf("Failed to create polynomial: %v", err)
	}
	commitments := poly.Commit()

	for v := uint64(1); v <= 4; v++ {
		x := sc(g, v)
		want := g.BaseMul(poly.Evaluate(x))
		if got := EvaluateCommitments(commitments, x); !got.Equal(want) {
			t.Errorf("f(%d)*G mismatch: got %s, want %s", v, got, want)
		}
	}

	if EvaluateCommitments(nil, sc(g, 1)) != nil {
		t.Error("Expected nil for empty commitments")
	}
}
