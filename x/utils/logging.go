package utils

import (
	"time"

	weave "github.com/iov-one/weave-escrow"
)

// Logging writes one line per transaction with its path and how long the
// stack below took. Failures are logged as errors, successful deliveries
// as info and successful checks as debug.
type Logging struct{}

var _ weave.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	var msg string
	if res != nil {
		msg = res.Log
	}
	logTx(ctx, tx, start, msg, err, true)
	return res, err
}

func (Logging) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	var msg string
	if res != nil {
		msg = res.Log
	}
	logTx(ctx, tx, start, msg, err, false)
	return res, err
}

func logTx(ctx weave.Context, tx weave.Tx, start time.Time, msg string, err error, check bool) {
	path := "(missing)"
	if tx != nil {
		path = weave.GetPath(tx)
	}
	logger := weave.GetLogger(ctx).With("path", path, "duration", time.Since(start)/time.Microsecond)
	if err != nil {
		logger.Error(msg, "err", err)
	} else if check {
		logger.Debug(msg)
	} else {
		logger.Info(msg)
	}
}
