package swap

import (
	"bytes"

	"github.com/gogo/protobuf/proto"
	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
)

const (
	pathInitializeMsg = "swap/initialize"
	pathExchangeMsg   = "swap/exchange"
	pathCancelMsg     = "swap/cancel"
)

// InitializeMsg locks XAmount of the X account tokens until somebody pays
// YAmount into the Y account. The initializer must sign it.
type InitializeMsg struct {
	Metadata            *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata"`
	Initializer         weave.Address   `protobuf:"bytes,2,opt,name=initializer,proto3" json:"initializer"`
	InitializerXAccount []byte          `protobuf:"bytes,3,opt,name=initializer_x_account,proto3" json:"initializer_x_account"`
	InitializerYAccount []byte          `protobuf:"bytes,4,opt,name=initializer_y_account,proto3" json:"initializer_y_account"`
	XAmount             uint64          `protobuf:"varint,5,opt,name=x_amount,proto3" json:"x_amount"`
	YAmount             uint64          `protobuf:"varint,6,opt,name=y_amount,proto3" json:"y_amount"`
}

var _ weave.Msg = (*InitializeMsg)(nil)

func (InitializeMsg) Path() string { return pathInitializeMsg }

type initializeMsgRecord InitializeMsg

func (m *initializeMsgRecord) Reset()         { *m = initializeMsgRecord{} }
func (m *initializeMsgRecord) String() string { return proto.CompactTextString(m) }
func (*initializeMsgRecord) ProtoMessage()    {}

func (m *InitializeMsg) Marshal() ([]byte, error) {
	return weave.MarshalProto((*initializeMsgRecord)(m))
}

func (m *InitializeMsg) Unmarshal(raw []byte) error {
	return weave.UnmarshalProto(raw, (*initializeMsgRecord)(m))
}

func (m *InitializeMsg) Validate() error {
	var errs error
	if m.XAmount == 0 {
		errs = errors.Append(errs, errors.Field("XAmount", errors.ErrInvalidAmount, "must be positive"))
	}
	if m.YAmount == 0 {
		errs = errors.Append(errs, errors.Field("YAmount", errors.ErrInvalidAmount, "must be positive"))
	}
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Initializer", m.Initializer.Validate())
	errs = errors.AppendField(errs, "InitializerXAccount", validAccountID(m.InitializerXAccount))
	errs = errors.AppendField(errs, "InitializerYAccount", validAccountID(m.InitializerYAccount))
	if bytes.Equal(m.InitializerXAccount, m.InitializerYAccount) {
		errs = errors.Append(errs, errors.Field("InitializerYAccount", errors.ErrInvalidInput, "must differ from the deposit account"))
	}
	return errs
}

// ExchangeMsg completes the swap. The taker pays from the Y account and
// receives the deposit into the X account. All accounts and identities of
// the escrow are repeated so that the taker states exactly what they agree
// to. The taker must sign it.
type ExchangeMsg struct {
	Metadata            *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata"`
	EscrowID            []byte          `protobuf:"bytes,2,opt,name=escrow_id,proto3" json:"escrow_id"`
	Taker               weave.Address   `protobuf:"bytes,3,opt,name=taker,proto3" json:"taker"`
	TakerXAccount       []byte          `protobuf:"bytes,4,opt,name=taker_x_account,proto3" json:"taker_x_account"`
	TakerYAccount       []byte          `protobuf:"bytes,5,opt,name=taker_y_account,proto3" json:"taker_y_account"`
	InitializerXAccount []byte          `protobuf:"bytes,6,opt,name=initializer_x_account,proto3" json:"initializer_x_account"`
	InitializerYAccount []byte          `protobuf:"bytes,7,opt,name=initializer_y_account,proto3" json:"initializer_y_account"`
	Initializer         weave.Address   `protobuf:"bytes,8,opt,name=initializer,proto3" json:"initializer"`
	Custody             weave.Address   `protobuf:"bytes,9,opt,name=custody,proto3" json:"custody"`
}

var _ weave.Msg = (*ExchangeMsg)(nil)

func (ExchangeMsg) Path() string { return pathExchangeMsg }

type exchangeMsgRecord ExchangeMsg

func (m *exchangeMsgRecord) Reset()         { *m = exchangeMsgRecord{} }
func (m *exchangeMsgRecord) String() string { return proto.CompactTextString(m) }
func (*exchangeMsgRecord) ProtoMessage()    {}

func (m *ExchangeMsg) Marshal() ([]byte, error) {
	return weave.MarshalProto((*exchangeMsgRecord)(m))
}

func (m *ExchangeMsg) Unmarshal(raw []byte) error {
	return weave.UnmarshalProto(raw, (*exchangeMsgRecord)(m))
}

func (m *ExchangeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "EscrowID", validEscrowID(m.EscrowID))
	errs = errors.AppendField(errs, "Taker", m.Taker.Validate())
	errs = errors.AppendField(errs, "TakerXAccount", validAccountID(m.TakerXAccount))
	errs = errors.AppendField(errs, "TakerYAccount", validAccountID(m.TakerYAccount))
	errs = errors.AppendField(errs, "InitializerXAccount", validAccountID(m.InitializerXAccount))
	errs = errors.AppendField(errs, "InitializerYAccount", validAccountID(m.InitializerYAccount))
	errs = errors.AppendField(errs, "Initializer", m.Initializer.Validate())
	errs = errors.AppendField(errs, "Custody", m.Custody.Validate())
	return errs
}

// CancelMsg returns the deposit account to the initializer and closes the
// escrow. Only the initializer can sign it.
type CancelMsg struct {
	Metadata            *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata"`
	EscrowID            []byte          `protobuf:"bytes,2,opt,name=escrow_id,proto3" json:"escrow_id"`
	Initializer         weave.Address   `protobuf:"bytes,3,opt,name=initializer,proto3" json:"initializer"`
	InitializerXAccount []byte          `protobuf:"bytes,4,opt,name=initializer_x_account,proto3" json:"initializer_x_account"`
	Custody             weave.Address   `protobuf:"bytes,5,opt,name=custody,proto3" json:"custody"`
}

var _ weave.Msg = (*CancelMsg)(nil)

func (CancelMsg) Path() string { return pathCancelMsg }

type cancelMsgRecord CancelMsg

func (m *cancelMsgRecord) Reset()         { *m = cancelMsgRecord{} }
func (m *cancelMsgRecord) String() string { return proto.CompactTextString(m) }
func (*cancelMsgRecord) ProtoMessage()    {}

func (m *CancelMsg) Marshal() ([]byte, error) {
	return weave.MarshalProto((*cancelMsgRecord)(m))
}

func (m *CancelMsg) Unmarshal(raw []byte) error {
	return weave.UnmarshalProto(raw, (*cancelMsgRecord)(m))
}

func (m *CancelMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "EscrowID", validEscrowID(m.EscrowID))
	errs = errors.AppendField(errs, "Initializer", m.Initializer.Validate())
	errs = errors.AppendField(errs, "InitializerXAccount", validAccountID(m.InitializerXAccount))
	errs = errors.AppendField(errs, "Custody", m.Custody.Validate())
	return errs
}

func validEscrowID(id []byte) error {
	if len(id) != 8 {
		return errors.Wrapf(errors.ErrInvalidInput, "escrow id must be 8 bytes, got %d", len(id))
	}
	return nil
}
