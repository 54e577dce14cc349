package sigs

import (
	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
)

// signatureGas is charged on check for every verified signature.
const signatureGas = 500

// Decorator verifies the signatures of a SignedTx and puts the signers in
// the context for Authenticate.
type Decorator struct {
	optional bool
}

var _ weave.Decorator = Decorator{}

// NewDecorator returns a Decorator that refuses signed transaction types
// without signatures.
func NewDecorator() Decorator {
	return Decorator{}
}

// AllowMissingSigs returns a copy that lets unsigned transactions through
// with no signers.
func (d Decorator) AllowMissingSigs() Decorator {
	return Decorator{optional: true}
}

func (d Decorator) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	ctx, n, err := d.verify(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res, err := next.Check(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.GasPayment += int64(n) * signatureGas
	return res, nil
}

func (d Decorator) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	ctx, _, err := d.verify(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, db, tx)
}

func (d Decorator) verify(ctx weave.Context, db weave.KVStore, tx weave.Tx) (weave.Context, int, error) {
	signed, ok := tx.(SignedTx)
	if !ok {
		return ctx, 0, nil
	}
	conds, err := VerifyTxSignatures(db, signed, weave.GetChainID(ctx))
	if err != nil {
		return nil, 0, errors.Wrap(err, "cannot verify signatures")
	}
	if len(conds) == 0 && !d.optional {
		return nil, 0, errors.Wrap(errors.ErrUnauthorized, "transaction is not signed")
	}
	return withSigners(ctx, conds), len(conds), nil
}
