package orm

import (
	"github.com/gogo/protobuf/proto"
	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
)

// deposit is a minimal model indexed by its owner and, uniquely, by its
// label.
type deposit struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3"`
	Owner    string          `protobuf:"bytes,2,opt,name=owner,proto3"`
	Label    string          `protobuf:"bytes,3,opt,name=label,proto3"`
	Amount   uint64          `protobuf:"varint,4,opt,name=amount,proto3"`
}

type depositRecord deposit

func (m *depositRecord) Reset()         { *m = depositRecord{} }
func (m *depositRecord) String() string { return proto.CompactTextString(m) }
func (*depositRecord) ProtoMessage()    {}

func (d *deposit) Marshal() ([]byte, error)   { return weave.MarshalProto((*depositRecord)(d)) }
func (d *deposit) Unmarshal(raw []byte) error { return weave.UnmarshalProto(raw, (*depositRecord)(d)) }

func (d *deposit) Validate() error {
	if d.Owner == "" {
		return errors.Wrap(errors.ErrEmpty, "owner")
	}
	return d.Metadata.Validate()
}

func (d *deposit) Copy() Model {
	cpy := *d
	cpy.Metadata = d.Metadata.Copy()
	return &cpy
}

// withdrawal has the methods of deposit but is a different model type.
type withdrawal struct {
	deposit
}

func newDeposit(owner, label string, amount uint64) *deposit {
	return &deposit{
		Metadata: &weave.Metadata{Schema: 1},
		Owner:    owner,
		Label:    label,
		Amount:   amount,
	}
}

func byOwner(m Model) ([]byte, error) {
	d, ok := m.(*deposit)
	if !ok {
		return nil, errors.WithType(errors.ErrInvalidModel, m)
	}
	return []byte(d.Owner), nil
}

func byLabel(m Model) ([]byte, error) {
	d, ok := m.(*deposit)
	if !ok {
		return nil, errors.WithType(errors.ErrInvalidModel, m)
	}
	if d.Label == "" {
		return nil, nil
	}
	return []byte(d.Label), nil
}

func newDepositBucket() ModelBucket {
	return NewModelBucket("deposit", &deposit{},
		WithIndex("owner", byOwner, false),
		WithIndex("label", byLabel, true),
	)
}
