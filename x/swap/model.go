package swap

import (
	"bytes"

	"github.com/gogo/protobuf/proto"
	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/orm"
)

// BucketName is where escrows are stored.
const BucketName = "escrow"

// Escrow is the record of a single active swap. It exists from
// Initialize until the swap is exchanged or cancelled.
type Escrow struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata"`
	// Initializer is the only identity allowed to cancel the swap.
	Initializer weave.Address `protobuf:"bytes,2,opt,name=initializer,proto3" json:"initializer"`
	// InitializerXAccount is the deposit account. It is owned by the
	// custody address while the escrow exists.
	InitializerXAccount []byte `protobuf:"bytes,3,opt,name=initializer_x_account,proto3" json:"initializer_x_account"`
	// InitializerYAccount receives the payment of the taker.
	InitializerYAccount []byte `protobuf:"bytes,4,opt,name=initializer_y_account,proto3" json:"initializer_y_account"`
	XAmount             uint64 `protobuf:"varint,5,opt,name=x_amount,proto3" json:"x_amount"`
	YAmount             uint64 `protobuf:"varint,6,opt,name=y_amount,proto3" json:"y_amount"`
	// Custody is the address that owns the deposit account.
	Custody weave.Address `protobuf:"bytes,7,opt,name=custody,proto3" json:"custody"`
}

var _ orm.Model = (*Escrow)(nil)

type escrowRecord Escrow

func (m *escrowRecord) Reset()         { *m = escrowRecord{} }
func (m *escrowRecord) String() string { return proto.CompactTextString(m) }
func (*escrowRecord) ProtoMessage()    {}

func (e *Escrow) Marshal() ([]byte, error) {
	return weave.MarshalProto((*escrowRecord)(e))
}

func (e *Escrow) Unmarshal(raw []byte) error {
	return weave.UnmarshalProto(raw, (*escrowRecord)(e))
}

func (e *Escrow) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", e.Metadata.Validate())
	errs = errors.AppendField(errs, "Initializer", e.Initializer.Validate())
	errs = errors.AppendField(errs, "InitializerXAccount", validAccountID(e.InitializerXAccount))
	errs = errors.AppendField(errs, "InitializerYAccount", validAccountID(e.InitializerYAccount))
	if bytes.Equal(e.InitializerXAccount, e.InitializerYAccount) {
		errs = errors.Append(errs, errors.Field("InitializerYAccount", errors.ErrInvalidInput, "must differ from the deposit account"))
	}
	if e.XAmount == 0 {
		errs = errors.Append(errs, errors.Field("XAmount", errors.ErrInvalidAmount, "must be positive"))
	}
	if e.YAmount == 0 {
		errs = errors.Append(errs, errors.Field("YAmount", errors.ErrInvalidAmount, "must be positive"))
	}
	if !CustodyAuthority().Owns(e.Custody) {
		errs = errors.Append(errs, errors.Field("Custody", errors.ErrInvalidModel, "not the custody address"))
	}
	return errs
}

func (e *Escrow) Copy() orm.Model {
	return &Escrow{
		Metadata:            e.Metadata.Copy(),
		Initializer:         e.Initializer.Clone(),
		InitializerXAccount: copyBytes(e.InitializerXAccount),
		InitializerYAccount: copyBytes(e.InitializerYAccount),
		XAmount:             e.XAmount,
		YAmount:             e.YAmount,
		Custody:             e.Custody.Clone(),
	}
}

// NewBucket returns a bucket for storing escrows, indexed by the
// initializer.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Escrow{},
		orm.WithIndex("initializer", initializerIndexer, false),
	)
}

// escrowSeq generates the escrow ids. It is the id sequence of the escrow
// bucket.
var escrowSeq = orm.NewSequence(BucketName, orm.SeqID)

func initializerIndexer(m orm.Model) ([]byte, error) {
	e, ok := m.(*Escrow)
	if !ok {
		return nil, errors.WithType(errors.ErrInvalidModel, m)
	}
	return e.Initializer, nil
}

func validAccountID(id []byte) error {
	if len(id) != 8 {
		return errors.Wrapf(errors.ErrInvalidInput, "account id must be 8 bytes, got %d", len(id))
	}
	return nil
}

func copyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}
