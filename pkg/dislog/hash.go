package dislog

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/crypto/hkdf"
)

// hashToPointAttempts bounds the try-and-increment loop in HashToPoint. Each
// attempt succeeds with probability about 1/2.
const hashToPointAttempts = 256

// ErrHashToPoint is returned when no candidate x coordinate lands on the curve.
var ErrHashToPoint = errors.New("dislog: hash to point failed")

// HashToScalar derives a scalar from the domain separation tag and the
// message parts. 64 bytes of HKDF output are reduced modulo the order, which
// keeps the bias negligible.
func HashToScalar(g Group, domain []byte, parts ...[]byte) Scalar {
	var wide [2 * ScalarSize]byte
	expand(g, domain, nil, parts, wide[:])
	s, err := g.ScalarFromBytes(wide[:])
	if err != nil {
		panic(err)
	}
	return s
}

// HashToPoint maps the message parts to a group element whose discrete
// logarithm with respect to the generator is unknown. It uses
// try-and-increment over candidate x coordinates with an even y.
func HashToPoint(g Group, domain []byte, parts ...[]byte) (Point, error) {
	var ctr [4]byte
	for i := uint32(0); i < hashToPointAttempts; i++ {
		binary.BigEndian.PutUint32(ctr[:], i)

		var candidate Bytes33
		candidate[0] = 2
		expand(g, domain, ctr[:], parts, candidate[1:])

		p, err := g.PointFromBytes(candidate)
		if err == nil && !p.IsIdentity() {
			return p, nil
		}
	}
	return nil, ErrHashToPoint
}

// expand fills out with HKDF output keyed by the length-prefixed parts.
func expand(g Group, salt, info []byte, parts [][]byte, out []byte) {
	var ikm []byte
	var l [8]byte
	for _, p := range parts {
		binary.BigEndian.PutUint64(l[:], uint64(len(p)))
		ikm = append(ikm, l[:]...)
		ikm = append(ikm, p...)
	}

	r := hkdf.New(g.NewHash, ikm, salt, info)
	if _, err := io.ReadFull(r, out); err != nil {
		panic(err)
	}
}
