package ecgroup

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallyu/go-dislog/pkg/dislog"
)

func TestByName(t *testing.T) {
	g, err := ByName("sm2")
	require.NoError(t, err)
	assert.Same(t, SM2(), g)
	assert.Equal(t, "sm2", g.Name())

	g, err = ByName("secp256k1")
	require.NoError(t, err)
	assert.Same(t, Secp256k1(), g)

	_, err = ByName("ed448")
	assert.ErrorIs(t, err, ErrUnknownCurve)
}

func TestGroupSingletonConcurrentInit(t *testing.T) {
	var wg sync.WaitGroup
	got := make([]*Group, 32)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				got[i] = SM2()
			} else {
				got[i] = Secp256k1()
			}
		}(i)
	}
	wg.Wait()

	for i, g := range got {
		if i%2 == 0 {
			assert.Same(t, SM2(), g)
		} else {
			assert.Same(t, Secp256k1(), g)
		}
	}
}

func TestOrderIsCopied(t *testing.T) {
	g := SM2()
	n := g.Order()
	n.SetInt64(1)
	assert.NotEqual(t, 0, g.Order().Cmp(n))
}

func TestOrderHex(t *testing.T) {
	assert.Equal(t, "FFFFFFFEFFFFFFFFFFFFFFFFFFFFFFFF7203DF6B21C6052B53BBF40939D54123",
		dislog.EncodeHex(SM2().Order().Bytes()))
	assert.Equal(t, "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141",
		dislog.EncodeHex(Secp256k1().Order().Bytes()))
}
