package app

import (
	weave "github.com/iov-one/weave-escrow"
)

// Decorators is a decorator stack waiting for the handler at its bottom.
type Decorators []weave.Decorator

// ChainDecorators returns a stack running the decorators in the given
// order. Nil entries are skipped, which allows optional decorators to be
// listed inline.
func ChainDecorators(ds ...weave.Decorator) Decorators {
	return Decorators(nil).Chain(ds...)
}

// Chain returns a stack with ds added below the current decorators.
func (d Decorators) Chain(ds ...weave.Decorator) Decorators {
	out := make(Decorators, 0, len(d)+len(ds))
	out = append(out, d...)
	for _, dec := range ds {
		if dec != nil {
			out = append(out, dec)
		}
	}
	return out
}

// WithHandler closes the stack with h.
func (d Decorators) WithHandler(h weave.Handler) weave.Handler {
	for i := len(d) - 1; i >= 0; i-- {
		h = layer{dec: d[i], next: h}
	}
	return h
}

// layer presents a decorator bound to the rest of the stack as a handler.
type layer struct {
	dec  weave.Decorator
	next weave.Handler
}

func (l layer) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	return l.dec.Check(ctx, db, tx, l.next)
}

func (l layer) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	return l.dec.Deliver(ctx, db, tx, l.next)
}
