package commitment

import (
	"crypto/subtle"
	"encoding/binary"
	"hash"
	"io"

	"github.com/smallyu/go-dislog/pkg/dislog"
)

// SaltSize is the length of the decommitment value.
const SaltSize = 32

// Commitment represents the output of a commitment scheme.
// C = H(salt || data)
type Commitment struct {
	C []byte // The commitment value (hash)
	D []byte // The decommitment value (salt/randomness)
}

// New commits to data with a fresh salt read from rand, using the hash
// function newHash (usually Group.NewHash).
func New(newHash func() hash.Hash, rand io.Reader, data []byte) (*Commitment, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand, salt); err != nil {
		return nil, err
	}

	return &Commitment{
		C: digest(newHash, salt, data),
		D: salt,
	}, nil
}

// Verify checks if the provided commitment C matches the message data and decommitment salt D.
func Verify(newHash func() hash.Hash, c, d, data []byte) bool {
	if len(d) != SaltSize || len(c) != newHash().Size() {
		return false
	}
	return subtle.ConstantTimeCompare(digest(newHash, d, data), c) == 1
}

// NewComplex commits to several parts. Each part is length prefixed, so
// moving bytes across part boundaries changes the commitment.
func NewComplex(newHash func() hash.Hash, rand io.Reader, parts ...[]byte) (*Commitment, error) {
	return New(newHash, rand, join(parts))
}

// VerifyComplex verifies a commitment against a list of parts.
func VerifyComplex(newHash func() hash.Hash, c, d []byte, parts ...[]byte) bool {
	return Verify(newHash, c, d, join(parts))
}

// NewPoints commits to a list of group elements by their canonical encoding.
func NewPoints(g dislog.Group, rand io.Reader, points ...dislog.Point) (*Commitment, error) {
	return NewComplex(g.NewHash, rand, encodePoints(points)...)
}

// VerifyPoints verifies a commitment made with NewPoints.
func VerifyPoints(g dislog.Group, c, d []byte, points ...dislog.Point) bool {
	return VerifyComplex(g.NewHash, c, d, encodePoints(points)...)
}

func digest(newHash func() hash.Hash, salt, data []byte) []byte {
	h := newHash()
	h.Write(salt)
	h.Write(data)
	return h.Sum(nil)
}

func join(parts [][]byte) []byte {
	var data []byte
	var l [4]byte
	for _, p := range parts {
		binary.BigEndian.PutUint32(l[:], uint32(len(p)))
		data = append(data, l[:]...)
		data = append(data, p...)
	}
	return data
}

func encodePoints(points []dislog.Point) [][]byte {
	parts := make([][]byte, len(points))
	for i, p := range points {
		b := p.Bytes()
		parts[i] = b[:]
	}
	return parts
}
