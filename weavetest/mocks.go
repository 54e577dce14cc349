package weavetest

import weave "github.com/iov-one/weave-escrow"

// Handler returns the configured result and error from every call and
// counts the calls.
type Handler struct {
	CheckResult   weave.CheckResult
	CheckErr      error
	DeliverResult weave.DeliverResult
	DeliverErr    error

	checks, delivers int
}

var _ weave.Handler = (*Handler)(nil)

func (h *Handler) Check(weave.Context, weave.KVStore, weave.Tx) (*weave.CheckResult, error) {
	h.checks++
	res := h.CheckResult
	return &res, h.CheckErr
}

func (h *Handler) Deliver(weave.Context, weave.KVStore, weave.Tx) (*weave.DeliverResult, error) {
	h.delivers++
	res := h.DeliverResult
	return &res, h.DeliverErr
}

func (h *Handler) CheckCallCount() int   { return h.checks }
func (h *Handler) DeliverCallCount() int { return h.delivers }
func (h *Handler) CallCount() int        { return h.checks + h.delivers }

// Decorator passes calls on unless CheckErr or DeliverErr is set, in which
// case it returns that error without calling next. Calls are counted
// either way.
type Decorator struct {
	CheckErr   error
	DeliverErr error

	calls int
}

var _ weave.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	d.calls++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	d.calls++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CallCount() int { return d.calls }
