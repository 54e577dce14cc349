package sigs

import (
	"github.com/gogo/protobuf/proto"
	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/crypto"
	"github.com/iov-one/weave-escrow/errors"
)

// SignedTx is a transaction that carries signatures. Transactions that do
// not implement it pass the Decorator unauthenticated.
type SignedTx interface {
	// GetSignBytes returns the serialized transaction without its
	// signatures.
	GetSignBytes() ([]byte, error)
	GetSignatures() []*StdSignature
}

// StdSignature signs the sign bytes of a transaction with the nonce
// Sequence of Pubkey.
type StdSignature struct {
	Sequence  int64             `protobuf:"varint,1,opt,name=sequence,proto3" json:"sequence"`
	Pubkey    *crypto.PublicKey `protobuf:"bytes,2,opt,name=pubkey,proto3" json:"pubkey"`
	Signature *crypto.Signature `protobuf:"bytes,4,opt,name=signature,proto3" json:"signature"`
}

type signatureRecord StdSignature

func (m *signatureRecord) Reset()         { *m = signatureRecord{} }
func (m *signatureRecord) String() string { return proto.CompactTextString(m) }
func (*signatureRecord) ProtoMessage()    {}

func (s *StdSignature) Marshal() ([]byte, error) {
	return weave.MarshalProto((*signatureRecord)(s))
}

func (s *StdSignature) Unmarshal(raw []byte) error {
	return weave.UnmarshalProto(raw, (*signatureRecord)(s))
}

func (s *StdSignature) Validate() error {
	switch {
	case s.Pubkey == nil:
		return errors.Wrap(errors.ErrUnauthorized, "signature without public key")
	case s.Signature == nil:
		return errors.Wrap(errors.ErrUnauthorized, "public key without signature")
	case s.Sequence < 0:
		return errors.Wrapf(ErrInvalidSequence, "sequence %d", s.Sequence)
	}
	return nil
}
