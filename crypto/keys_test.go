package crypto

import (
	"fmt"
	"testing"

	"github.com/iov-one/weave-escrow/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndVerify(t *testing.T) {
	initializer := GenPrivKeyEd25519()
	taker := GenPrivKeyEd25519()
	exchange := []byte("exchange escrow 1")
	cancel := []byte("cancel escrow 1")

	sig, err := initializer.Sign(exchange)
	require.NoError(t, err)

	cases := map[string]struct {
		key  *PublicKey
		msg  []byte
		sig  *Signature
		want bool
	}{
		"signer and message match": {
			key: initializer.PublicKey(), msg: exchange, sig: sig, want: true,
		},
		"other message": {
			key: initializer.PublicKey(), msg: cancel, sig: sig, want: false,
		},
		"other key": {
			key: taker.PublicKey(), msg: exchange, sig: sig, want: false,
		},
		"empty signature": {
			key: initializer.PublicKey(), msg: exchange, sig: &Signature{}, want: false,
		},
		"no signature": {
			key: initializer.PublicKey(), msg: exchange, want: false,
		},
		"no key": {
			msg: exchange, sig: sig, want: false,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.key.Verify(tc.msg, tc.sig))
		})
	}

	_, err = (&PrivateKey{Ed25519: []byte{1, 2}}).Sign(exchange)
	assert.True(t, errors.ErrInvalidInput.Is(err))
}

func TestKeyCodec(t *testing.T) {
	priv := PrivKeyEd25519FromSeed(make([]byte, 32))
	sig, err := priv.Sign([]byte("payload"))
	require.NoError(t, err)

	raw, err := sig.Marshal()
	require.NoError(t, err)
	var sigBack Signature
	require.NoError(t, sigBack.Unmarshal(raw))
	assert.Equal(t, sig, &sigBack)

	raw, err = priv.PublicKey().Marshal()
	require.NoError(t, err)
	var pubBack PublicKey
	require.NoError(t, pubBack.Unmarshal(raw))
	assert.True(t, pubBack.Verify([]byte("payload"), sig))

	raw, err = priv.Marshal()
	require.NoError(t, err)
	var privBack PrivateKey
	require.NoError(t, privBack.Unmarshal(raw))
	assert.Equal(t, priv.PublicKey(), privBack.PublicKey())
}

func TestKeyHolderCondition(t *testing.T) {
	a := GenPrivKeyEd25519().PublicKey()
	b := GenPrivKeyEd25519().PublicKey()

	ext, typ, data, err := a.Condition().Parse()
	require.NoError(t, err)
	assert.Equal(t, "sigs", ext)
	assert.Equal(t, "ed25519", typ)
	assert.Equal(t, a.Ed25519, data)

	assert.NoError(t, a.Address().Validate())
	assert.NotEqual(t, a.Address(), b.Address())
}

func TestDeriveKey(t *testing.T) {
	master := make([]byte, 64)
	for i := range master {
		master[i] = byte(i)
	}
	first, err := DeriveKey(master, fmt.Sprintf(HDPath, 0))
	require.NoError(t, err)
	same, err := DeriveKey(master, fmt.Sprintf(HDPath, 0))
	require.NoError(t, err)
	second, err := DeriveKey(master, fmt.Sprintf(HDPath, 1))
	require.NoError(t, err)

	assert.Equal(t, first.PublicKey(), same.PublicKey())
	assert.NotEqual(t, first.PublicKey(), second.PublicKey())

	_, err = DeriveKey(master, "m/44/234/0")
	assert.True(t, errors.ErrInvalidInput.Is(err), "unhardened path accepted")
}
