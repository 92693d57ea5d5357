package ecgroup

import (
	"bytes"
	"crypto/rand"
	"encoding/json"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallyu/go-dislog/pkg/dislog"
)

var scalarA = []byte{
	216, 154, 179, 139, 210, 121, 2, 71, 69, 99, 158, 216, 23, 173, 63, 100,
	204, 0, 91, 50, 219, 153, 57, 249, 28, 82, 31, 197, 100, 165, 192, 8,
}

func groups() []*Group {
	return []*Group{SM2(), Secp256k1()}
}

func small(g *Group, v byte) dislog.Scalar {
	var b [32]byte
	b[0] = v
	s, err := g.ScalarFromBytes(b[:])
	if err != nil {
		panic(err)
	}
	return s
}

func TestScalarArithmetic(t *testing.T) {
	for _, g := range groups() {
		t.Run(g.Name(), func(t *testing.T) {
			a, err := g.ScalarFromBytes(scalarA)
			require.NoError(t, err)
			b, err := g.ScalarFromBytes(scalarA)
			require.NoError(t, err)

			assert.True(t, a.Equal(b))
			assert.True(t, a.Add(a).Add(a).Equal(b.Mul(small(g, 3))))
			assert.True(t, a.Mul(small(g, 2)).Equal(a.Add(b)))
			assert.True(t, a.Sub(b).Equal(small(g, 0)))
			assert.True(t, a.Inv().Mul(a).Equal(small(g, 1)))
			assert.True(t, a.Mul(small(g, 5)).Mul(small(g, 3)).Equal(a.Mul(small(g, 15))))
			assert.True(t, a.Add(a.Neg()).IsZero())
		})
	}
}

func TestScalarIdentities(t *testing.T) {
	for _, g := range groups() {
		t.Run(g.Name(), func(t *testing.T) {
			zero, one := g.ScalarZero(), g.ScalarOne()
			assert.True(t, zero.IsZero())
			assert.False(t, one.IsZero())
			assert.True(t, zero.Neg().Equal(zero))
			assert.True(t, one.Inv().Equal(one))
			assert.Equal(t, 0, one.BigInt().Cmp(big.NewInt(1)))

			// n - 1 is -1.
			nMinus1 := g.ScalarFromBigInt(new(big.Int).Sub(g.Order(), big.NewInt(1)))
			assert.True(t, nMinus1.Equal(one.Neg()))
			assert.True(t, nMinus1.Mul(nMinus1).Equal(one))
			assert.True(t, nMinus1.Add(one).IsZero())

			// Inverting zero is a precondition violation; it yields zero.
			assert.True(t, zero.Inv().IsZero())
		})
	}
}

func TestScalarCanonicalRange(t *testing.T) {
	for _, g := range groups() {
		t.Run(g.Name(), func(t *testing.T) {
			allOnes := bytes.Repeat([]byte{0xff}, 32)
			s, err := g.ScalarFromBytes(allOnes)
			require.NoError(t, err)
			assert.Equal(t, -1, s.BigInt().Cmp(g.Order()))

			want := new(big.Int).Mod(new(big.Int).SetBytes(allOnes), g.Order())
			assert.Equal(t, 0, s.BigInt().Cmp(want))

			// The order itself reduces to zero.
			nb := toLittleEndian(g.Order())
			s, err = g.ScalarFromBytes(nb[:])
			require.NoError(t, err)
			assert.True(t, s.IsZero())

			wide, err := g.ScalarFromBytes(bytes.Repeat([]byte{0xff}, 64))
			require.NoError(t, err)
			assert.Equal(t, -1, wide.BigInt().Cmp(g.Order()))
		})
	}
}

func TestScalarFromBytesLength(t *testing.T) {
	g := SM2()
	for _, n := range []int{0, 31, 33, 63, 65} {
		_, err := g.ScalarFromBytes(make([]byte, n))
		assert.ErrorIs(t, err, dislog.ErrParse, "length %d", n)
	}
}

func TestScalarBytesRoundTrip(t *testing.T) {
	for _, g := range groups() {
		t.Run(g.Name(), func(t *testing.T) {
			for i := 0; i < 16; i++ {
				s, err := g.RandomScalar(rand.Reader)
				require.NoError(t, err)

				b := s.Bytes()
				back, err := g.ScalarFromBytes(b[:])
				require.NoError(t, err)
				assert.True(t, s.Equal(back))
			}

			one := g.ScalarOne().Bytes()
			assert.Equal(t, byte(1), one[0])
			assert.Equal(t, make([]byte, 31), one[1:])
		})
	}
}

// countingReader yields zero blocks for the first skip reads of 32 bytes.
type countingReader struct {
	skip  int
	reads int
}

func (r *countingReader) Read(p []byte) (int, error) {
	r.reads++
	for i := range p {
		p[i] = 0
	}
	if r.reads > r.skip {
		p[0] = 7
	}
	return len(p), nil
}

func TestRandomScalarRejectsZero(t *testing.T) {
	g := SM2()
	r := &countingReader{skip: 3}

	s, err := g.RandomScalar(r)
	require.NoError(t, err)
	assert.True(t, s.Equal(g.ScalarFromUint64(7)))
	assert.Equal(t, 4, r.reads)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy exhausted")
}

func TestRandomScalarReaderError(t *testing.T) {
	_, err := SM2().RandomScalar(failingReader{})
	assert.Error(t, err)
}

func TestScalarText(t *testing.T) {
	g := SM2()
	s := g.ScalarFromUint64(0xABCDEF)

	assert.Equal(t, "EFCDAB"+zeros(29), s.String())

	type doc struct {
		S *Scalar `json:"s"`
	}
	raw, err := json.Marshal(doc{S: s.(*Scalar)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"s":"EFCDAB`+zeros(29)+`"}`, string(raw))

	var back doc
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, s.Equal(back.S))

	// Lower case input is accepted.
	var lower Scalar
	require.NoError(t, lower.UnmarshalText([]byte("efcdab"+zeros(29))))
	assert.True(t, s.Equal(&lower))

	for _, bad := range []string{"zz", "EFCDAB", ""} {
		var v Scalar
		assert.Equal(t, dislog.ErrInvalidEncoding, v.UnmarshalText([]byte(bad)), bad)
	}
}

func TestScalarZeroValue(t *testing.T) {
	var s Scalar
	assert.True(t, s.IsZero())
	assert.Same(t, Default(), s.Group())
	assert.True(t, s.Add(SM2().ScalarOne()).Equal(SM2().ScalarOne()))
}

func TestScalarMixedGroupsPanics(t *testing.T) {
	a := SM2().ScalarOne()
	b := Secp256k1().ScalarOne()
	assert.False(t, a.Equal(b))
	assert.Panics(t, func() { a.Add(b) })
}

func zeros(n int) string {
	return string(bytes.Repeat([]byte("00"), n))
}
