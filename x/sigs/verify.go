package sigs

import (
	"bytes"
	"crypto/sha512"
	"encoding/binary"

	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/crypto"
	"github.com/iov-one/weave-escrow/errors"
)

// SignCodeV1 prefixes version 1 sign bytes.
var SignCodeV1 = []byte{0, 0xCA, 0xFE, 0}

// BuildSignBytes returns the sha512 digest of
//
//	SignCodeV1 | len(chainID) as one byte | chainID | seq as uint64 big endian | payload
//
// which is what a signer signs for the given chain and nonce.
func BuildSignBytes(payload []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrapf(ErrInvalidSequence, "sequence %d", seq)
	}
	if !weave.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "chain id %q", chainID)
	}

	var buf bytes.Buffer
	buf.Write(SignCodeV1)
	buf.WriteByte(byte(len(chainID)))
	buf.WriteString(chainID)
	binary.Write(&buf, binary.BigEndian, uint64(seq))
	buf.Write(payload)

	digest := sha512.Sum512(buf.Bytes())
	return digest[:], nil
}

// SignTx signs tx with key for the chain, using the nonce seq.
func SignTx(key *crypto.PrivateKey, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	payload, err := tx.GetSignBytes()
	if err != nil {
		return nil, errors.Wrap(err, "sign bytes")
	}
	digest, err := BuildSignBytes(payload, chainID, seq)
	if err != nil {
		return nil, err
	}
	sig, err := key.Sign(digest)
	if err != nil {
		return nil, err
	}
	return &StdSignature{Sequence: seq, Pubkey: key.PublicKey(), Signature: sig}, nil
}

// VerifySignature checks sig over payload and consumes its nonce. The
// condition of the signing key is returned.
func VerifySignature(db weave.KVStore, sig *StdSignature, payload []byte, chainID string) (weave.Condition, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	digest, err := BuildSignBytes(payload, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}
	if !sig.Pubkey.Verify(digest, sig.Signature) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "signature does not verify")
	}

	b := NewBucket()
	user, err := loadUser(db, b, sig.Pubkey)
	if err != nil {
		return nil, err
	}
	if err := user.consume(sig.Sequence); err != nil {
		return nil, err
	}
	if _, err := b.Put(db, sig.Pubkey.Address(), user); err != nil {
		return nil, errors.Wrap(err, "save signer")
	}
	return sig.Pubkey.Condition(), nil
}

// VerifyTxSignatures verifies every signature of tx in order and returns
// their conditions. A transaction without signatures yields none.
func VerifyTxSignatures(db weave.KVStore, tx SignedTx, chainID string) ([]weave.Condition, error) {
	payload, err := tx.GetSignBytes()
	if err != nil {
		return nil, errors.Wrap(err, "sign bytes")
	}
	sigs := tx.GetSignatures()
	conds := make([]weave.Condition, len(sigs))
	for i, sig := range sigs {
		if conds[i], err = VerifySignature(db, sig, payload, chainID); err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
	}
	return conds, nil
}
