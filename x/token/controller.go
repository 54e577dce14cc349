package token

import (
	"bytes"
	"math"

	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/orm"
)

// Ledger is the part of the token ledger other extensions depend on. The
// authorizer argument is the address on whose behalf the caller acts. It
// is the callers responsibility to ensure that this address authorized
// the operation, for example by signing the transaction.
type Ledger interface {
	// Account returns the account with given id or ErrNotFound.
	Account(db weave.ReadOnlyKVStore, id []byte) (*Account, error)

	// Transfer moves amount of tokens between two accounts of the same
	// token. Authorizer must be the owner of the source account.
	Transfer(db weave.KVStore, from, to []byte, amount uint64, authorizer weave.Address) error

	// SetOwner assigns a new owner to the account. Authorizer must be
	// the current owner. The balance is not modified.
	SetOwner(db weave.KVStore, id []byte, newOwner, authorizer weave.Address) error
}

// Controller is the complete token ledger API used by the handlers and the
// genesis initializer.
type Controller interface {
	Ledger

	// Token returns the token registered under given ticker.
	Token(db weave.ReadOnlyKVStore, ticker string) (*Token, error)

	// CreateToken registers a new token. A ticker can be used only once.
	CreateToken(db weave.KVStore, t *Token) error

	// CreateAccount creates an empty account of an existing token and
	// returns its id.
	CreateAccount(db weave.KVStore, owner weave.Address, ticker string) ([]byte, error)

	// Mint issues new tokens into an account. Authority must be the mint
	// authority of the account token.
	Mint(db weave.KVStore, id []byte, amount uint64, authority weave.Address) error
}

// NewController returns a Controller using the default buckets.
func NewController() Controller {
	return &controller{
		tokens:   NewTokenBucket(),
		accounts: NewAccountBucket(),
	}
}

type controller struct {
	tokens   orm.ModelBucket
	accounts orm.ModelBucket
}

var _ Controller = (*controller)(nil)

func (c *controller) Account(db weave.ReadOnlyKVStore, id []byte) (*Account, error) {
	if err := validAccountID(id); err != nil {
		return nil, err
	}
	var a Account
	if err := c.accounts.One(db, id, &a); err != nil {
		return nil, errors.Wrapf(err, "account %X", id)
	}
	return &a, nil
}

func (c *controller) Token(db weave.ReadOnlyKVStore, ticker string) (*Token, error) {
	var t Token
	if err := c.tokens.One(db, []byte(ticker), &t); err != nil {
		return nil, errors.Wrapf(err, "token %q", ticker)
	}
	return &t, nil
}

func (c *controller) Transfer(db weave.KVStore, from, to []byte, amount uint64, authorizer weave.Address) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrInvalidAmount, "transfer amount must be positive")
	}
	if bytes.Equal(from, to) {
		return errors.Wrap(errors.ErrInvalidInput, "source and destination are the same account")
	}

	src, err := c.Account(db, from)
	if err != nil {
		return errors.Wrap(err, "source")
	}
	dst, err := c.Account(db, to)
	if err != nil {
		return errors.Wrap(err, "destination")
	}
	if !src.Owner.Equals(authorizer) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s is not the owner of the source account", authorizer)
	}
	if src.Ticker != dst.Ticker {
		return errors.Wrapf(ErrCurrencyMismatch, "cannot move %s into a %s account", src.Ticker, dst.Ticker)
	}
	if src.Balance < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "balance %d, want %d", src.Balance, amount)
	}
	if dst.Balance > math.MaxUint64-amount {
		return errors.Wrap(errors.ErrOverflow, "destination balance")
	}

	src.Balance -= amount
	dst.Balance += amount
	if _, err := c.accounts.Put(db, from, src); err != nil {
		return errors.Wrap(err, "save source")
	}
	if _, err := c.accounts.Put(db, to, dst); err != nil {
		return errors.Wrap(err, "save destination")
	}
	return nil
}

func (c *controller) SetOwner(db weave.KVStore, id []byte, newOwner, authorizer weave.Address) error {
	if err := newOwner.Validate(); err != nil {
		return errors.Wrap(err, "new owner")
	}
	a, err := c.Account(db, id)
	if err != nil {
		return err
	}
	if !a.Owner.Equals(authorizer) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s is not the owner of the account", authorizer)
	}
	a.Owner = newOwner
	if _, err := c.accounts.Put(db, id, a); err != nil {
		return errors.Wrap(err, "save account")
	}
	return nil
}

func (c *controller) CreateToken(db weave.KVStore, t *Token) error {
	if err := c.tokens.Has(db, []byte(t.Ticker)); err == nil {
		return errors.Wrapf(errors.ErrDuplicate, "token %q", t.Ticker)
	} else if !errors.ErrNotFound.Is(err) {
		return err
	}
	if _, err := c.tokens.Put(db, []byte(t.Ticker), t); err != nil {
		return errors.Wrap(err, "save token")
	}
	return nil
}

func (c *controller) CreateAccount(db weave.KVStore, owner weave.Address, ticker string) ([]byte, error) {
	if err := c.tokens.Has(db, []byte(ticker)); err != nil {
		return nil, errors.Wrapf(err, "token %q", ticker)
	}
	a := &Account{
		Metadata: &weave.Metadata{Schema: 1},
		Owner:    owner,
		Ticker:   ticker,
	}
	id, err := c.accounts.Put(db, nil, a)
	if err != nil {
		return nil, errors.Wrap(err, "save account")
	}
	return id, nil
}

func (c *controller) Mint(db weave.KVStore, id []byte, amount uint64, authority weave.Address) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrInvalidAmount, "mint amount must be positive")
	}
	a, err := c.Account(db, id)
	if err != nil {
		return err
	}
	t, err := c.Token(db, a.Ticker)
	if err != nil {
		return err
	}
	if !t.MintAuthority.Equals(authority) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s cannot mint %s", authority, t.Ticker)
	}
	if a.Balance > math.MaxUint64-amount {
		return errors.Wrap(errors.ErrOverflow, "balance")
	}
	a.Balance += amount
	if _, err := c.accounts.Put(db, id, a); err != nil {
		return errors.Wrap(err, "save account")
	}
	return nil
}
