package sigs

import (
	"testing"

	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/crypto"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSignBytes(t *testing.T) {
	const chainID = "sign-bytes-chain"
	payload := []byte("transfer 500 X")

	base, err := BuildSignBytes(payload, chainID, 17)
	require.NoError(t, err)
	assert.Len(t, base, 64)

	again, err := BuildSignBytes(payload, chainID, 17)
	require.NoError(t, err)
	assert.Equal(t, base, again)

	cases := map[string]struct {
		payload []byte
		chainID string
		seq     int64
		wantErr *errors.Error
	}{
		"other payload":  {payload: []byte("transfer 1000 Y"), chainID: chainID, seq: 17},
		"other chain":    {payload: payload, chainID: chainID + "-2", seq: 17},
		"other sequence": {payload: payload, chainID: chainID, seq: 18},
		"negative sequence": {
			payload: payload, chainID: chainID, seq: -1,
			wantErr: ErrInvalidSequence,
		},
		"invalid chain id": {
			payload: payload, chainID: "no", seq: 17,
			wantErr: errors.ErrInvalidInput,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := BuildSignBytes(tc.payload, tc.chainID, tc.seq)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "got %+v", err)
				return
			}
			require.NoError(t, err)
			assert.NotEqual(t, base, got)
		})
	}
}

func TestVerifySignature(t *testing.T) {
	const chainID = "verify-chain"
	db := store.MemStore()
	key := crypto.GenPrivKeyEd25519()
	tx := newPayloadTx("exchange escrow 1")
	payload, _ := tx.GetSignBytes()

	sign := func(seq int64) *StdSignature {
		sig, err := SignTx(key, tx, chainID, seq)
		require.NoError(t, err)
		return sig
	}

	_, err := VerifySignature(db, sign(1), payload, chainID)
	assert.True(t, ErrInvalidSequence.Is(err), "first nonce must be zero")

	_, err = VerifySignature(db, &StdSignature{}, payload, chainID)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	for seq := int64(0); seq < 2; seq++ {
		cond, err := VerifySignature(db, sign(seq), payload, chainID)
		require.NoError(t, err)
		assert.Equal(t, key.PublicKey().Condition(), cond)
	}

	_, err = VerifySignature(db, sign(1), payload, chainID)
	assert.True(t, ErrInvalidSequence.Is(err), "replay")
	_, err = VerifySignature(db, sign(9), payload, chainID)
	assert.True(t, ErrInvalidSequence.Is(err), "gap")

	_, err = VerifySignature(db, sign(2), payload, "other-chain")
	assert.True(t, errors.ErrUnauthorized.Is(err))

	forged := sign(2)
	forged.Signature.Ed25519[0] ^= 0xFF
	_, err = VerifySignature(db, forged, payload, chainID)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	next, err := NextNonce(db, key.PublicKey().Address())
	require.NoError(t, err)
	assert.Equal(t, int64(2), next)
}

func TestVerifyTxSignatures(t *testing.T) {
	const chainID = "multi-signer"
	initializer := crypto.GenPrivKeyEd25519()
	taker := crypto.GenPrivKeyEd25519()
	tx := newPayloadTx("exchange escrow 2")

	sign := func(key *crypto.PrivateKey, seq int64) *StdSignature {
		sig, err := SignTx(key, tx, chainID, seq)
		require.NoError(t, err)
		return sig
	}
	otherTx, err := SignTx(initializer, newPayloadTx("cancel escrow 2"), chainID, 0)
	require.NoError(t, err)

	cases := map[string]struct {
		sigs      []*StdSignature
		wantConds []weave.Condition
		wantErr   *errors.Error
	}{
		"unsigned": {
			wantConds: []weave.Condition{},
		},
		"one signer": {
			sigs:      []*StdSignature{sign(initializer, 0)},
			wantConds: []weave.Condition{initializer.PublicKey().Condition()},
		},
		"two signers in order": {
			sigs: []*StdSignature{sign(taker, 0), sign(initializer, 0)},
			wantConds: []weave.Condition{
				taker.PublicKey().Condition(),
				initializer.PublicKey().Condition(),
			},
		},
		"signature of another transaction": {
			sigs:    []*StdSignature{otherTx},
			wantErr: errors.ErrUnauthorized,
		},
		"second signature replayed": {
			sigs:    []*StdSignature{sign(taker, 0), sign(initializer, 0)},
			wantErr: ErrInvalidSequence,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			db := store.MemStore()
			// The replay case runs against nonces already consumed.
			if tc.wantErr == ErrInvalidSequence {
				_, err := VerifyTxSignatures(db, &payloadTx{Tx: tx.Tx, sigs: []*StdSignature{sign(initializer, 0)}}, chainID)
				require.NoError(t, err)
			}
			conds, err := VerifyTxSignatures(db, &payloadTx{Tx: tx.Tx, sigs: tc.sigs}, chainID)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "got %+v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantConds, conds)
		})
	}
}
