package swap

import (
	"bytes"
	"fmt"
	"math"

	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/orm"
	"github.com/iov-one/weave-escrow/x"
	"github.com/iov-one/weave-escrow/x/token"
	"github.com/tendermint/tendermint/libs/common"
)

const (
	initializeCost int64 = 300
	exchangeCost   int64 = 100
	cancelCost     int64 = 0

	// EscrowTag is the key of the transaction tag that carries the id of
	// the escrow a transaction created or terminated.
	EscrowTag = "escrow"
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r weave.Registry, auth x.Authenticator, ledger token.Ledger) {
	bucket := NewBucket()
	custody := CustodyAuthority()
	r.Handle(pathInitializeMsg, &InitializeHandler{auth: auth, bucket: bucket, ledger: ledger, custody: custody})
	r.Handle(pathExchangeMsg, &ExchangeHandler{auth: auth, bucket: bucket, ledger: ledger, custody: custody})
	r.Handle(pathCancelMsg, &CancelHandler{auth: auth, bucket: bucket, ledger: ledger, custody: custody})
}

// RegisterQuery will register this bucket as "/escrows" and its index as
// "/escrows/initializer".
func RegisterQuery(qr weave.QueryRouter) {
	NewBucket().Register("escrows", qr)
}

// InitializeHandler locks the initializer deposit account and creates the
// escrow record.
type InitializeHandler struct {
	auth    x.Authenticator
	bucket  orm.ModelBucket
	ledger  token.Ledger
	custody Authority
}

var _ weave.Handler = (*InitializeHandler)(nil)

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h *InitializeHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: initializeCost}, nil
}

// Deliver hands the deposit account over to the custody address and
// stores the escrow. The new escrow id is returned as the result data.
func (h *InitializeHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	custody := h.custody

	key := escrowSeq.NextVal(db)
	if err := h.bucket.Has(db, key); err == nil {
		return nil, errors.Wrapf(errors.ErrDuplicate, "escrow %X", key)
	} else if !errors.ErrNotFound.Is(err) {
		return nil, err
	}

	escrow := &Escrow{
		Metadata:            &weave.Metadata{Schema: 1},
		Initializer:         msg.Initializer,
		InitializerXAccount: msg.InitializerXAccount,
		InitializerYAccount: msg.InitializerYAccount,
		XAmount:             msg.XAmount,
		YAmount:             msg.YAmount,
		Custody:             custody.Address,
	}

	if err := h.ledger.SetOwner(db, msg.InitializerXAccount, custody.Address, msg.Initializer); err != nil {
		return nil, errors.Wrap(err, "cannot transfer custody")
	}
	if _, err := h.bucket.Put(db, key, escrow); err != nil {
		return nil, errors.Wrap(err, "cannot store escrow")
	}

	weave.GetLogger(ctx).Info("escrow initialized",
		"escrow", fmt.Sprintf("%X", key),
		"account", fmt.Sprintf("%X", msg.InitializerXAccount),
		"custody", custody.Address)

	return &weave.DeliverResult{Data: key, Tags: escrowTags(key)}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h *InitializeHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*InitializeMsg, error) {
	var msg InitializeMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.HasSigner(ctx, h.auth, msg.Initializer, "initializer"); err != nil {
		return nil, err
	}
	if err := h.custody.verify(); err != nil {
		return nil, err
	}

	deposit, err := h.ledger.Account(db, msg.InitializerXAccount)
	if err != nil {
		return nil, errors.Wrap(err, "deposit account")
	}
	receive, err := h.ledger.Account(db, msg.InitializerYAccount)
	if err != nil {
		return nil, errors.Wrap(err, "receive account")
	}
	if !deposit.Owner.Equals(msg.Initializer) {
		return nil, errors.Wrap(ErrOwnershipMismatch, "deposit account is not owned by the initializer")
	}
	if !receive.Owner.Equals(msg.Initializer) {
		return nil, errors.Wrap(ErrOwnershipMismatch, "receive account is not owned by the initializer")
	}
	if deposit.Ticker == receive.Ticker {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "cannot swap %s for %s", deposit.Ticker, receive.Ticker)
	}
	if deposit.Balance < msg.XAmount {
		return nil, errors.Wrapf(errors.ErrInsufficientAmount, "deposit balance %d, want %d", deposit.Balance, msg.XAmount)
	}
	return &msg, nil
}

// ExchangeHandler completes a swap.
type ExchangeHandler struct {
	auth    x.Authenticator
	bucket  orm.ModelBucket
	ledger  token.Ledger
	custody Authority
}

var _ weave.Handler = (*ExchangeHandler)(nil)

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h *ExchangeHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: exchangeCost}, nil
}

// Deliver pays the deposit to the taker, pays the taker tokens to the
// initializer, returns the emptied deposit account to the initializer and
// deletes the escrow.
func (h *ExchangeHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, escrow, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	custody := h.custody

	if err := h.ledger.Transfer(db, escrow.InitializerXAccount, msg.TakerXAccount, escrow.XAmount, custody.Address); err != nil {
		return nil, errors.Wrap(err, "cannot release deposit")
	}
	if err := h.ledger.Transfer(db, msg.TakerYAccount, escrow.InitializerYAccount, escrow.YAmount, msg.Taker); err != nil {
		return nil, errors.Wrap(err, "cannot pay initializer")
	}
	if err := h.ledger.SetOwner(db, escrow.InitializerXAccount, escrow.Initializer, custody.Address); err != nil {
		return nil, errors.Wrap(err, "cannot return custody")
	}
	if err := h.bucket.Delete(db, msg.EscrowID); err != nil {
		return nil, errors.Wrap(err, "cannot delete escrow")
	}

	weave.GetLogger(ctx).Info("escrow exchanged",
		"escrow", fmt.Sprintf("%X", msg.EscrowID),
		"taker", msg.Taker)

	return &weave.DeliverResult{Tags: escrowTags(msg.EscrowID)}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h *ExchangeHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*ExchangeMsg, *Escrow, error) {
	var msg ExchangeMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if err := x.HasSigner(ctx, h.auth, msg.Taker, "taker"); err != nil {
		return nil, nil, err
	}

	var escrow Escrow
	if err := h.bucket.One(db, msg.EscrowID, &escrow); err != nil {
		return nil, nil, errors.Wrapf(err, "escrow %X", msg.EscrowID)
	}

	custody := h.custody
	if err := custody.verify(); err != nil {
		return nil, nil, err
	}
	switch {
	case !bytes.Equal(msg.InitializerXAccount, escrow.InitializerXAccount):
		return nil, nil, errors.Wrap(ErrRecordMismatch, "initializer X account")
	case !bytes.Equal(msg.InitializerYAccount, escrow.InitializerYAccount):
		return nil, nil, errors.Wrap(ErrRecordMismatch, "initializer Y account")
	case !msg.Initializer.Equals(escrow.Initializer):
		return nil, nil, errors.Wrap(ErrRecordMismatch, "initializer")
	case !custody.Owns(msg.Custody) || !custody.Owns(escrow.Custody):
		return nil, nil, errors.Wrap(ErrRecordMismatch, "custody")
	}
	if bytes.Equal(msg.TakerXAccount, escrow.InitializerXAccount) || bytes.Equal(msg.TakerYAccount, escrow.InitializerYAccount) {
		return nil, nil, errors.Wrap(errors.ErrInvalidInput, "taker accounts must differ from the escrow accounts")
	}

	deposit, err := h.ledger.Account(db, escrow.InitializerXAccount)
	if err != nil {
		return nil, nil, errors.Wrap(err, "deposit account")
	}
	if !custody.Owns(deposit.Owner) {
		return nil, nil, errors.Wrap(ErrOwnershipMismatch, "deposit account is not in custody")
	}
	payment, err := h.ledger.Account(db, msg.TakerYAccount)
	if err != nil {
		return nil, nil, errors.Wrap(err, "taker Y account")
	}
	if !payment.Owner.Equals(msg.Taker) {
		return nil, nil, errors.Wrap(ErrOwnershipMismatch, "taker Y account is not owned by the taker")
	}
	takerX, err := h.ledger.Account(db, msg.TakerXAccount)
	if err != nil {
		return nil, nil, errors.Wrap(err, "taker X account")
	}
	receive, err := h.ledger.Account(db, escrow.InitializerYAccount)
	if err != nil {
		return nil, nil, errors.Wrap(err, "receive account")
	}
	if takerX.Ticker != deposit.Ticker {
		return nil, nil, errors.Wrapf(ErrRecordMismatch, "taker X account holds %s, escrow deposit is %s", takerX.Ticker, deposit.Ticker)
	}
	if payment.Ticker != receive.Ticker {
		return nil, nil, errors.Wrapf(ErrRecordMismatch, "taker Y account holds %s, escrow wants %s", payment.Ticker, receive.Ticker)
	}

	if deposit.Balance < escrow.XAmount {
		return nil, nil, errors.Wrapf(errors.ErrInsufficientAmount, "deposit balance %d, want %d", deposit.Balance, escrow.XAmount)
	}
	if payment.Balance < escrow.YAmount {
		return nil, nil, errors.Wrapf(errors.ErrInsufficientAmount, "taker balance %d, want %d", payment.Balance, escrow.YAmount)
	}
	if takerX.Balance > math.MaxUint64-escrow.XAmount || receive.Balance > math.MaxUint64-escrow.YAmount {
		return nil, nil, errors.Wrap(errors.ErrOverflow, "balance after exchange")
	}
	return &msg, &escrow, nil
}

// CancelHandler returns the deposit account to the initializer.
type CancelHandler struct {
	auth    x.Authenticator
	bucket  orm.ModelBucket
	ledger  token.Ledger
	custody Authority
}

var _ weave.Handler = (*CancelHandler)(nil)

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h *CancelHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: cancelCost}, nil
}

// Deliver gives the deposit account back to the initializer and deletes
// the escrow. The balance is not modified.
func (h *CancelHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, escrow, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	custody := h.custody
	if err := h.ledger.SetOwner(db, escrow.InitializerXAccount, escrow.Initializer, custody.Address); err != nil {
		return nil, errors.Wrap(err, "cannot return custody")
	}
	if err := h.bucket.Delete(db, msg.EscrowID); err != nil {
		return nil, errors.Wrap(err, "cannot delete escrow")
	}

	weave.GetLogger(ctx).Info("escrow cancelled",
		"escrow", fmt.Sprintf("%X", msg.EscrowID))

	return &weave.DeliverResult{Tags: escrowTags(msg.EscrowID)}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h *CancelHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*CancelMsg, *Escrow, error) {
	var msg CancelMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}

	var escrow Escrow
	if err := h.bucket.One(db, msg.EscrowID, &escrow); err != nil {
		return nil, nil, errors.Wrapf(err, "escrow %X", msg.EscrowID)
	}

	if !msg.Initializer.Equals(escrow.Initializer) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "only the initializer can cancel")
	}
	if err := x.HasSigner(ctx, h.auth, escrow.Initializer, "initializer"); err != nil {
		return nil, nil, err
	}

	custody := h.custody
	if err := custody.verify(); err != nil {
		return nil, nil, err
	}
	if !bytes.Equal(msg.InitializerXAccount, escrow.InitializerXAccount) {
		return nil, nil, errors.Wrap(ErrRecordMismatch, "initializer X account")
	}
	if !custody.Owns(msg.Custody) || !custody.Owns(escrow.Custody) {
		return nil, nil, errors.Wrap(ErrRecordMismatch, "custody")
	}

	deposit, err := h.ledger.Account(db, escrow.InitializerXAccount)
	if err != nil {
		return nil, nil, errors.Wrap(err, "deposit account")
	}
	if !custody.Owns(deposit.Owner) {
		return nil, nil, errors.Wrap(ErrOwnershipMismatch, "deposit account is not in custody")
	}
	return &msg, &escrow, nil
}

func escrowTags(id []byte) []common.KVPair {
	return []common.KVPair{
		weave.Tag(EscrowTag, []byte(fmt.Sprintf("%X", id))),
	}
}
