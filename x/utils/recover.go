package utils

import (
	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
)

// Recovery returns a panic further down the stack as an ErrPanic error.
// Placed above a Savepoint, the writes done before the panic are dropped.
type Recovery struct{}

var _ weave.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (res *weave.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, db, tx)
}

func (Recovery) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (res *weave.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, db, tx)
}
