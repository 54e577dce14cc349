package token

import (
	"github.com/gogo/protobuf/proto"
	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
)

const (
	pathCreateTokenMsg   = "token/create_token"
	pathCreateAccountMsg = "token/create_account"
	pathMintMsg          = "token/mint"
	pathTransferMsg      = "token/transfer"
	pathSetOwnerMsg      = "token/set_owner"
)

// CreateTokenMsg registers a new token. The mint authority must sign it.
type CreateTokenMsg struct {
	Metadata      *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata"`
	Ticker        string          `protobuf:"bytes,2,opt,name=ticker,proto3" json:"ticker"`
	Name          string          `protobuf:"bytes,3,opt,name=name,proto3" json:"name"`
	MintAuthority weave.Address   `protobuf:"bytes,4,opt,name=mint_authority,proto3" json:"mint_authority"`
}

var _ weave.Msg = (*CreateTokenMsg)(nil)

func (CreateTokenMsg) Path() string { return pathCreateTokenMsg }

type createTokenMsgRecord CreateTokenMsg

func (m *createTokenMsgRecord) Reset()         { *m = createTokenMsgRecord{} }
func (m *createTokenMsgRecord) String() string { return proto.CompactTextString(m) }
func (*createTokenMsgRecord) ProtoMessage()    {}

func (m *CreateTokenMsg) Marshal() ([]byte, error) {
	return weave.MarshalProto((*createTokenMsgRecord)(m))
}

func (m *CreateTokenMsg) Unmarshal(raw []byte) error {
	return weave.UnmarshalProto(raw, (*createTokenMsgRecord)(m))
}

func (m *CreateTokenMsg) Validate() error {
	t := Token{
		Metadata:      m.Metadata,
		Ticker:        m.Ticker,
		Name:          m.Name,
		MintAuthority: m.MintAuthority,
	}
	return t.Validate()
}

// CreateAccountMsg opens an empty account of a token for the owner, who
// must sign it.
type CreateAccountMsg struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata"`
	Owner    weave.Address   `protobuf:"bytes,2,opt,name=owner,proto3" json:"owner"`
	Ticker   string          `protobuf:"bytes,3,opt,name=ticker,proto3" json:"ticker"`
}

var _ weave.Msg = (*CreateAccountMsg)(nil)

func (CreateAccountMsg) Path() string { return pathCreateAccountMsg }

type createAccountMsgRecord CreateAccountMsg

func (m *createAccountMsgRecord) Reset()         { *m = createAccountMsgRecord{} }
func (m *createAccountMsgRecord) String() string { return proto.CompactTextString(m) }
func (*createAccountMsgRecord) ProtoMessage()    {}

func (m *CreateAccountMsg) Marshal() ([]byte, error) {
	return weave.MarshalProto((*createAccountMsgRecord)(m))
}

func (m *CreateAccountMsg) Unmarshal(raw []byte) error {
	return weave.UnmarshalProto(raw, (*createAccountMsgRecord)(m))
}

func (m *CreateAccountMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	if !IsTicker(m.Ticker) {
		errs = errors.Append(errs, errors.Field("Ticker", errors.ErrInvalidInput, "invalid ticker %q", m.Ticker))
	}
	return errs
}

// MintMsg issues new tokens into an account. The token mint authority
// must sign it.
type MintMsg struct {
	Metadata  *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata"`
	AccountID []byte          `protobuf:"bytes,2,opt,name=account_id,proto3" json:"account_id"`
	Amount    uint64          `protobuf:"varint,3,opt,name=amount,proto3" json:"amount"`
}

var _ weave.Msg = (*MintMsg)(nil)

func (MintMsg) Path() string { return pathMintMsg }

type mintMsgRecord MintMsg

func (m *mintMsgRecord) Reset()         { *m = mintMsgRecord{} }
func (m *mintMsgRecord) String() string { return proto.CompactTextString(m) }
func (*mintMsgRecord) ProtoMessage()    {}

func (m *MintMsg) Marshal() ([]byte, error) {
	return weave.MarshalProto((*mintMsgRecord)(m))
}

func (m *MintMsg) Unmarshal(raw []byte) error {
	return weave.UnmarshalProto(raw, (*mintMsgRecord)(m))
}

func (m *MintMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "AccountID", validAccountID(m.AccountID))
	if m.Amount == 0 {
		errs = errors.Append(errs, errors.Field("Amount", errors.ErrInvalidAmount, "must be positive"))
	}
	return errs
}

// TransferMsg moves tokens between two accounts. The owner of the source
// account must sign it.
type TransferMsg struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata"`
	From     []byte          `protobuf:"bytes,2,opt,name=from,proto3" json:"from"`
	To       []byte          `protobuf:"bytes,3,opt,name=to,proto3" json:"to"`
	Amount   uint64          `protobuf:"varint,4,opt,name=amount,proto3" json:"amount"`
}

var _ weave.Msg = (*TransferMsg)(nil)

func (TransferMsg) Path() string { return pathTransferMsg }

type transferMsgRecord TransferMsg

func (m *transferMsgRecord) Reset()         { *m = transferMsgRecord{} }
func (m *transferMsgRecord) String() string { return proto.CompactTextString(m) }
func (*transferMsgRecord) ProtoMessage()    {}

func (m *TransferMsg) Marshal() ([]byte, error) {
	return weave.MarshalProto((*transferMsgRecord)(m))
}

func (m *TransferMsg) Unmarshal(raw []byte) error {
	return weave.UnmarshalProto(raw, (*transferMsgRecord)(m))
}

func (m *TransferMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "From", validAccountID(m.From))
	errs = errors.AppendField(errs, "To", validAccountID(m.To))
	if m.Amount == 0 {
		errs = errors.Append(errs, errors.Field("Amount", errors.ErrInvalidAmount, "must be positive"))
	}
	return errs
}

// SetOwnerMsg hands an account over to a new owner. The current owner
// must sign it.
type SetOwnerMsg struct {
	Metadata  *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata"`
	AccountID []byte          `protobuf:"bytes,2,opt,name=account_id,proto3" json:"account_id"`
	NewOwner  weave.Address   `protobuf:"bytes,3,opt,name=new_owner,proto3" json:"new_owner"`
}

var _ weave.Msg = (*SetOwnerMsg)(nil)

func (SetOwnerMsg) Path() string { return pathSetOwnerMsg }

type setOwnerMsgRecord SetOwnerMsg

func (m *setOwnerMsgRecord) Reset()         { *m = setOwnerMsgRecord{} }
func (m *setOwnerMsgRecord) String() string { return proto.CompactTextString(m) }
func (*setOwnerMsgRecord) ProtoMessage()    {}

func (m *SetOwnerMsg) Marshal() ([]byte, error) {
	return weave.MarshalProto((*setOwnerMsgRecord)(m))
}

func (m *SetOwnerMsg) Unmarshal(raw []byte) error {
	return weave.UnmarshalProto(raw, (*setOwnerMsgRecord)(m))
}

func (m *SetOwnerMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "AccountID", validAccountID(m.AccountID))
	errs = errors.AppendField(errs, "NewOwner", m.NewOwner.Validate())
	return errs
}
