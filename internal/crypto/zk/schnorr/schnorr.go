package schnorr

import (
	"io"

	"github.com/pkg/errors"

	"github.com/smallyu/go-dislog/pkg/dislog"
)

// ProofSize is the length of an encoded proof: R (33 bytes) || s (32 bytes).
const ProofSize = dislog.Bytes33Size + dislog.ScalarSize

var challengeDomain = []byte("go-dislog/schnorr/v1")

// Proof represents a Schnorr proof of knowledge of a discrete logarithm.
// Proves knowledge of x such that X = x * G.
type Proof struct {
	R dislog.Point  // Commitment R = k * G
	S dislog.Scalar // Response s = k + e * x
}

// Prove generates a Schnorr proof for the secret x, public key X = x*G.
// The context bytes (session ID, party ID, message) are bound into the
// challenge, and Verify must be given the same context.
func Prove(g dislog.Group, rand io.Reader, x dislog.Scalar, X dislog.Point, context []byte) (*Proof, error) {
	if x == nil || X == nil {
		return nil, errors.New("schnorr: inputs cannot be nil")
	}
	if !g.BaseMul(x).Equal(X) {
		return nil, errors.New("schnorr: public key does not match secret")
	}

	// 1. Generate random nonce k
	k, err := g.RandomScalar(rand)
	if err != nil {
		return nil, errors.Wrap(err, "schnorr: nonce")
	}

	// 2. Compute R = k * G
	R := g.BaseMul(k)

	// 3. Compute challenge e = H(X, R, context)
	e := challenge(g, X, R, context)

	// 4. Compute s = k + e * x mod n
	return &Proof{
		R: R,
		S: k.Add(e.Mul(x)),
	}, nil
}

// Verify checks the validity of the Schnorr proof for public key X.
func (p *Proof) Verify(g dislog.Group, X dislog.Point, context []byte) bool {
	if p == nil || p.R == nil || p.S == nil || X == nil {
		return false
	}
	if X.IsIdentity() || p.R.IsIdentity() {
		return false
	}

	e := challenge(g, X, p.R, context)

	// s*G = R + e*X
	return g.BaseMul(p.S).Equal(p.R.Add(X.Mul(e)))
}

// Bytes encodes the proof as R || s.
func (p *Proof) Bytes() []byte {
	out := make([]byte, 0, ProofSize)
	r := p.R.Bytes()
	s := p.S.Bytes()
	out = append(out, r[:]...)
	return append(out, s[:]...)
}

// ParseProof decodes a proof produced by Bytes.
func ParseProof(g dislog.Group, b []byte) (*Proof, error) {
	if len(b) != ProofSize {
		return nil, errors.Wrapf(dislog.ErrParse, "schnorr: proof is %d bytes, want %d", len(b), ProofSize)
	}
	rb, err := dislog.Bytes33FromSlice(b[:dislog.Bytes33Size])
	if err != nil {
		return nil, err
	}
	R, err := g.PointFromBytes(rb)
	if err != nil {
		return nil, errors.WithMessage(err, "schnorr: commitment")
	}
	S, err := g.ScalarFromBytes(b[dislog.Bytes33Size:])
	if err != nil {
		return nil, errors.WithMessage(err, "schnorr: response")
	}
	// s must be canonical.
	if sb := S.Bytes(); string(sb[:]) != string(b[dislog.Bytes33Size:]) {
		return nil, errors.Wrap(dislog.ErrParse, "schnorr: response is not reduced")
	}
	return &Proof{R: R, S: S}, nil
}

// challenge computes e = H(X, R, context) mod n over the canonical encodings.
func challenge(g dislog.Group, X, R dislog.Point, context []byte) dislog.Scalar {
	xb := X.Bytes()
	rb := R.Bytes()
	return dislog.HashToScalar(g, challengeDomain, xb[:], rb[:], context)
}
