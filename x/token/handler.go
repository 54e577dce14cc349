package token

import (
	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/x"
)

const (
	createTokenCost   int64 = 100
	createAccountCost int64 = 50
	mintCost          int64 = 10
	transferCost      int64 = 10
	setOwnerCost      int64 = 10
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r weave.Registry, auth x.Authenticator, ctrl Controller) {
	r.Handle(pathCreateTokenMsg, &CreateTokenHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathCreateAccountMsg, &CreateAccountHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathMintMsg, &MintHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathTransferMsg, &TransferHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathSetOwnerMsg, &SetOwnerHandler{auth: auth, ctrl: ctrl})
}

// RegisterQuery will register the token buckets as "/tokens" and
// "/tokenaccounts" together with the account indexes.
func RegisterQuery(qr weave.QueryRouter) {
	NewTokenBucket().Register("tokens", qr)
	NewAccountBucket().Register("tokenaccounts", qr)
}

// CreateTokenHandler registers new tokens.
type CreateTokenHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ weave.Handler = (*CreateTokenHandler)(nil)

func (h *CreateTokenHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: createTokenCost}, nil
}

func (h *CreateTokenHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	t := &Token{
		Metadata:      &weave.Metadata{Schema: 1},
		Ticker:        msg.Ticker,
		Name:          msg.Name,
		MintAuthority: msg.MintAuthority,
	}
	if err := h.ctrl.CreateToken(db, t); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{Data: []byte(t.Ticker)}, nil
}

func (h *CreateTokenHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*CreateTokenMsg, error) {
	var msg CreateTokenMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.HasSigner(ctx, h.auth, msg.MintAuthority, "mint authority"); err != nil {
		return nil, err
	}
	// Token can be registered only once and must not be updated.
	if _, err := h.ctrl.Token(db, msg.Ticker); err == nil {
		return nil, errors.Wrapf(errors.ErrDuplicate, "token %q", msg.Ticker)
	} else if !errors.ErrNotFound.Is(err) {
		return nil, err
	}
	return &msg, nil
}

// CreateAccountHandler opens empty token accounts.
type CreateAccountHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ weave.Handler = (*CreateAccountHandler)(nil)

func (h *CreateAccountHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: createAccountCost}, nil
}

func (h *CreateAccountHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	id, err := h.ctrl.CreateAccount(db, msg.Owner, msg.Ticker)
	if err != nil {
		return nil, err
	}
	return &weave.DeliverResult{Data: id}, nil
}

func (h *CreateAccountHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*CreateAccountMsg, error) {
	var msg CreateAccountMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.HasSigner(ctx, h.auth, msg.Owner, "owner"); err != nil {
		return nil, err
	}
	if _, err := h.ctrl.Token(db, msg.Ticker); err != nil {
		return nil, err
	}
	return &msg, nil
}

// MintHandler issues new tokens.
type MintHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ weave.Handler = (*MintHandler)(nil)

func (h *MintHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: mintCost}, nil
}

func (h *MintHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, authority, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Mint(db, msg.AccountID, msg.Amount, authority); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{}, nil
}

func (h *MintHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*MintMsg, weave.Address, error) {
	var msg MintMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	a, err := h.ctrl.Account(db, msg.AccountID)
	if err != nil {
		return nil, nil, err
	}
	t, err := h.ctrl.Token(db, a.Ticker)
	if err != nil {
		return nil, nil, err
	}
	if err := x.HasSigner(ctx, h.auth, t.MintAuthority, "mint authority"); err != nil {
		return nil, nil, err
	}
	return &msg, t.MintAuthority, nil
}

// TransferHandler moves tokens between accounts.
type TransferHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ weave.Handler = (*TransferHandler)(nil)

func (h *TransferHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: transferCost}, nil
}

func (h *TransferHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, owner, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Transfer(db, msg.From, msg.To, msg.Amount, owner); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{}, nil
}

func (h *TransferHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*TransferMsg, weave.Address, error) {
	var msg TransferMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	src, err := h.ctrl.Account(db, msg.From)
	if err != nil {
		return nil, nil, err
	}
	if err := x.HasSigner(ctx, h.auth, src.Owner, "source owner"); err != nil {
		return nil, nil, err
	}
	return &msg, src.Owner, nil
}

// SetOwnerHandler hands accounts over to a new owner.
type SetOwnerHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ weave.Handler = (*SetOwnerHandler)(nil)

func (h *SetOwnerHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: setOwnerCost}, nil
}

func (h *SetOwnerHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, owner, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.SetOwner(db, msg.AccountID, msg.NewOwner, owner); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{}, nil
}

func (h *SetOwnerHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*SetOwnerMsg, weave.Address, error) {
	var msg SetOwnerMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	a, err := h.ctrl.Account(db, msg.AccountID)
	if err != nil {
		return nil, nil, err
	}
	if err := x.HasSigner(ctx, h.auth, a.Owner, "owner"); err != nil {
		return nil, nil, err
	}
	return &msg, a.Owner, nil
}
