package crypto

import (
	"github.com/gogo/protobuf/proto"
	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"golang.org/x/crypto/ed25519"
)

// ExtensionName is the extension part of key holder conditions.
const ExtensionName = "sigs"

const keyType = "ed25519"

type PublicKey struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519"`
}

type PrivateKey struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519"`
}

type Signature struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519"`
}

// Condition returns the condition satisfied by signatures of this key.
func (p *PublicKey) Condition() weave.Condition {
	return weave.NewCondition(ExtensionName, keyType, p.Ed25519)
}

// Address returns the address owned by the key holder.
func (p *PublicKey) Address() weave.Address {
	return p.Condition().Address()
}

// Verify reports whether sig signs message with this key. Malformed keys
// and signatures never verify.
func (p *PublicKey) Verify(message []byte, sig *Signature) bool {
	switch {
	case p == nil || sig == nil:
		return false
	case len(p.Ed25519) != ed25519.PublicKeySize:
		return false
	case len(sig.Ed25519) != ed25519.SignatureSize:
		return false
	}
	return ed25519.Verify(p.Ed25519, message, sig.Ed25519)
}

func (p *PrivateKey) Sign(message []byte) (*Signature, error) {
	if len(p.Ed25519) != ed25519.PrivateKeySize {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "private key of %d bytes", len(p.Ed25519))
	}
	return &Signature{Ed25519: ed25519.Sign(p.Ed25519, message)}, nil
}

func (p *PrivateKey) PublicKey() *PublicKey {
	pub := ed25519.PrivateKey(p.Ed25519).Public().(ed25519.PublicKey)
	return &PublicKey{Ed25519: []byte(pub)}
}

// GenPrivKeyEd25519 creates a key from the system random source.
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Ed25519: []byte(priv)}
}

// PrivKeyEd25519FromSeed creates the key for a 32 byte seed.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	return &PrivateKey{Ed25519: []byte(ed25519.NewKeyFromSeed(seed))}
}

type publicKeyRecord PublicKey

func (m *publicKeyRecord) Reset()         { *m = publicKeyRecord{} }
func (m *publicKeyRecord) String() string { return proto.CompactTextString(m) }
func (*publicKeyRecord) ProtoMessage()    {}

func (p *PublicKey) Marshal() ([]byte, error) {
	return weave.MarshalProto((*publicKeyRecord)(p))
}

func (p *PublicKey) Unmarshal(raw []byte) error {
	return weave.UnmarshalProto(raw, (*publicKeyRecord)(p))
}

type privateKeyRecord PrivateKey

func (m *privateKeyRecord) Reset()         { *m = privateKeyRecord{} }
func (m *privateKeyRecord) String() string { return proto.CompactTextString(m) }
func (*privateKeyRecord) ProtoMessage()    {}

func (p *PrivateKey) Marshal() ([]byte, error) {
	return weave.MarshalProto((*privateKeyRecord)(p))
}

func (p *PrivateKey) Unmarshal(raw []byte) error {
	return weave.UnmarshalProto(raw, (*privateKeyRecord)(p))
}

type signatureRecord Signature

func (m *signatureRecord) Reset()         { *m = signatureRecord{} }
func (m *signatureRecord) String() string { return proto.CompactTextString(m) }
func (*signatureRecord) ProtoMessage()    {}

func (s *Signature) Marshal() ([]byte, error) {
	return weave.MarshalProto((*signatureRecord)(s))
}

func (s *Signature) Unmarshal(raw []byte) error {
	return weave.UnmarshalProto(raw, (*signatureRecord)(s))
}
