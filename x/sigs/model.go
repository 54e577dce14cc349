package sigs

import (
	"github.com/gogo/protobuf/proto"
	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/crypto"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/orm"
)

// BucketName is where the nonce of every signer is kept.
const BucketName = "sigs"

// maxSequence is the largest nonce a javascript client can represent
// exactly, Number.MAX_SAFE_INTEGER.
const maxSequence = 1<<53 - 1

// UserData is the nonce state of one public key, stored under the key
// address.
type UserData struct {
	Metadata *weave.Metadata   `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata"`
	Pubkey   *crypto.PublicKey `protobuf:"bytes,2,opt,name=pubkey,proto3" json:"pubkey"`
	Sequence int64             `protobuf:"varint,3,opt,name=sequence,proto3" json:"sequence"`
}

var _ orm.Model = (*UserData)(nil)

type userRecord UserData

func (m *userRecord) Reset()         { *m = userRecord{} }
func (m *userRecord) String() string { return proto.CompactTextString(m) }
func (*userRecord) ProtoMessage()    {}

func (u *UserData) Marshal() ([]byte, error) {
	return weave.MarshalProto((*userRecord)(u))
}

func (u *UserData) Unmarshal(raw []byte) error {
	return weave.UnmarshalProto(raw, (*userRecord)(u))
}

func (u *UserData) Validate() error {
	errs := errors.AppendField(nil, "Metadata", u.Metadata.Validate())
	if u.Pubkey == nil {
		errs = errors.AppendField(errs, "Pubkey", errors.ErrEmpty)
	}
	if u.Sequence < 0 || u.Sequence > maxSequence {
		errs = errors.AppendField(errs, "Sequence", ErrInvalidSequence)
	}
	return errs
}

func (u *UserData) Copy() orm.Model {
	return &UserData{
		Metadata: u.Metadata.Copy(),
		Pubkey:   u.Pubkey,
		Sequence: u.Sequence,
	}
}

// consume accepts a signature made with nonce seq and moves the nonce
// forward.
func (u *UserData) consume(seq int64) error {
	if seq != u.Sequence {
		return errors.Wrapf(ErrInvalidSequence, "signed with %d, next is %d", seq, u.Sequence)
	}
	if u.Sequence >= maxSequence {
		return errors.Wrap(errors.ErrOverflow, "sequence exhausted")
	}
	u.Sequence++
	return nil
}

// NewBucket returns the bucket of signer nonces.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &UserData{})
}

// RegisterQuery exposes the nonces under "/auth".
func RegisterQuery(qr weave.QueryRouter) {
	NewBucket().Register("auth", qr)
}

// loadUser returns the stored state of the key, or a fresh one at nonce
// zero if the key never signed.
func loadUser(db weave.ReadOnlyKVStore, b orm.ModelBucket, pub *crypto.PublicKey) (*UserData, error) {
	var u UserData
	switch err := b.One(db, pub.Address(), &u); {
	case err == nil:
		return &u, nil
	case errors.ErrNotFound.Is(err):
		return &UserData{Metadata: &weave.Metadata{Schema: 1}, Pubkey: pub}, nil
	default:
		return nil, err
	}
}

// NextNonce returns the sequence the next signature of signer must carry.
func NextNonce(db weave.ReadOnlyKVStore, signer weave.Address) (int64, error) {
	var u UserData
	switch err := NewBucket().One(db, signer, &u); {
	case err == nil:
		return u.Sequence, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, errors.Wrap(err, "load signer")
	}
}
