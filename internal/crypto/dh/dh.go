// Package dh implements Diffie-Hellman key agreement over a dislog group,
// with the shared point run through HKDF.
package dh

import (
	"io"

	"github.com/pkg/errors"
	"golang.org/x/crypto/hkdf"

	"github.com/smallyu/go-dislog/pkg/dislog"
)

// ErrInvalidPublicKey is returned when the peer key is the identity.
var ErrInvalidPublicKey = errors.New("dh: invalid public key")

// KeyPair is a private scalar and its public point.
type KeyPair struct {
	Private dislog.Scalar
	Public  dislog.Point
}

// GenerateKeyPair generates a new key pair for key exchange
func GenerateKeyPair(g dislog.Group, rand io.Reader) (*KeyPair, error) {
	sk, err := g.RandomScalar(rand)
	if err != nil {
		return nil, err
	}
	return &KeyPair{Private: sk, Public: g.BaseMul(sk)}, nil
}

// SharedPoint returns sk * peer.
func SharedPoint(sk dislog.Scalar, peer dislog.Point) (dislog.Point, error) {
	if peer.IsIdentity() {
		return nil, ErrInvalidPublicKey
	}
	return peer.Mul(sk), nil
}

// DeriveSharedSecret performs the key agreement and derives size bytes of
// key material bound to info.
func DeriveSharedSecret(g dislog.Group, sk dislog.Scalar, peer dislog.Point, info []byte, size int) ([]byte, error) {
	if size <= 0 {
		return nil, errors.Errorf("dh: invalid key size %d", size)
	}
	shared, err := SharedPoint(sk, peer)
	if err != nil {
		return nil, err
	}

	enc := shared.Bytes()
	kdf := hkdf.New(g.NewHash, enc[:], nil, info)
	secret := make([]byte, size)
	if _, err := io.ReadFull(kdf, secret); err != nil {
		return nil, errors.Wrap(err, "dh: key derivation")
	}
	return secret, nil
}
