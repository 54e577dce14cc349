package token

import (
	"regexp"

	"github.com/gogo/protobuf/proto"
	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/orm"
)

const (
	// TokenBucketName is where tokens are stored, keyed by the ticker.
	TokenBucketName = "token"
	// AccountBucketName is where token accounts are stored, keyed by a
	// sequence value.
	AccountBucketName = "tokacct"
)

var (
	// IsTicker checks the format of a token ticker, for example "XSWP".
	IsTicker = regexp.MustCompile(`^[A-Z][A-Z0-9]{2,8}$`).MatchString

	isTokenName = regexp.MustCompile(`^[A-Za-z0-9 \-_:]{3,32}$`).MatchString
)

// Token describes a kind of token that accounts can hold.
type Token struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata"`
	Ticker   string          `protobuf:"bytes,2,opt,name=ticker,proto3" json:"ticker"`
	Name     string          `protobuf:"bytes,3,opt,name=name,proto3" json:"name"`
	// MintAuthority is the only address allowed to issue new tokens.
	MintAuthority weave.Address `protobuf:"bytes,4,opt,name=mint_authority,proto3" json:"mint_authority"`
}

var _ orm.Model = (*Token)(nil)

type tokenRecord Token

func (m *tokenRecord) Reset()         { *m = tokenRecord{} }
func (m *tokenRecord) String() string { return proto.CompactTextString(m) }
func (*tokenRecord) ProtoMessage()    {}

func (t *Token) Marshal() ([]byte, error) {
	return weave.MarshalProto((*tokenRecord)(t))
}

func (t *Token) Unmarshal(raw []byte) error {
	return weave.UnmarshalProto(raw, (*tokenRecord)(t))
}

func (t *Token) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", t.Metadata.Validate())
	if !IsTicker(t.Ticker) {
		errs = errors.Append(errs, errors.Field("Ticker", errors.ErrInvalidInput, "invalid ticker %q", t.Ticker))
	}
	if !isTokenName(t.Name) {
		errs = errors.Append(errs, errors.Field("Name", errors.ErrInvalidInput, "invalid name %q", t.Name))
	}
	errs = errors.AppendField(errs, "MintAuthority", t.MintAuthority.Validate())
	return errs
}

func (t *Token) Copy() orm.Model {
	return &Token{
		Metadata:      t.Metadata.Copy(),
		Ticker:        t.Ticker,
		Name:          t.Name,
		MintAuthority: t.MintAuthority.Clone(),
	}
}

// Account holds a balance of a single token.
type Account struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata"`
	// Owner is the only address that can authorize transfers out of this
	// account or hand it over to someone else.
	Owner   weave.Address `protobuf:"bytes,2,opt,name=owner,proto3" json:"owner"`
	Ticker  string        `protobuf:"bytes,3,opt,name=ticker,proto3" json:"ticker"`
	Balance uint64        `protobuf:"varint,4,opt,name=balance,proto3" json:"balance"`
}

var _ orm.Model = (*Account)(nil)

type accountRecord Account

func (m *accountRecord) Reset()         { *m = accountRecord{} }
func (m *accountRecord) String() string { return proto.CompactTextString(m) }
func (*accountRecord) ProtoMessage()    {}

func (a *Account) Marshal() ([]byte, error) {
	return weave.MarshalProto((*accountRecord)(a))
}

func (a *Account) Unmarshal(raw []byte) error {
	return weave.UnmarshalProto(raw, (*accountRecord)(a))
}

func (a *Account) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", a.Metadata.Validate())
	errs = errors.AppendField(errs, "Owner", a.Owner.Validate())
	if !IsTicker(a.Ticker) {
		errs = errors.Append(errs, errors.Field("Ticker", errors.ErrInvalidInput, "invalid ticker %q", a.Ticker))
	}
	return errs
}

func (a *Account) Copy() orm.Model {
	return &Account{
		Metadata: a.Metadata.Copy(),
		Owner:    a.Owner.Clone(),
		Ticker:   a.Ticker,
		Balance:  a.Balance,
	}
}

// NewTokenBucket returns a bucket for storing tokens.
func NewTokenBucket() orm.ModelBucket {
	return orm.NewModelBucket(TokenBucketName, &Token{})
}

// NewAccountBucket returns a bucket for storing token accounts, indexed
// by their owner and their token.
func NewAccountBucket() orm.ModelBucket {
	return orm.NewModelBucket(AccountBucketName, &Account{},
		orm.WithIndex("owner", accountOwnerIndexer, false),
		orm.WithIndex("ticker", accountTickerIndexer, false),
	)
}

func accountOwnerIndexer(m orm.Model) ([]byte, error) {
	a, ok := m.(*Account)
	if !ok {
		return nil, errors.WithType(errors.ErrInvalidModel, m)
	}
	return a.Owner, nil
}

func accountTickerIndexer(m orm.Model) ([]byte, error) {
	a, ok := m.(*Account)
	if !ok {
		return nil, errors.WithType(errors.ErrInvalidModel, m)
	}
	return []byte(a.Ticker), nil
}

// validAccountID returns an error unless id looks like a value generated
// by the account sequence.
func validAccountID(id []byte) error {
	if len(id) != 8 {
		return errors.Wrapf(errors.ErrInvalidInput, "account id must be 8 bytes, got %d", len(id))
	}
	return nil
}
