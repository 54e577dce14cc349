package app

import (
	"fmt"
	"regexp"

	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
)

// ErrNoSuchPath is returned for a message whose path has no handler.
var ErrNoSuchPath = errors.Register(70, "no such path")

var validPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`)

// Router dispatches a transaction to the handler registered for the path
// of its message.
type Router struct {
	routes map[string]weave.Handler
}

var (
	_ weave.Registry = (*Router)(nil)
	_ weave.Handler  = (*Router)(nil)
)

func NewRouter() *Router {
	return &Router{routes: make(map[string]weave.Handler)}
}

// Handle registers h for path. It panics on a malformed or taken path.
func (r *Router) Handle(path string, h weave.Handler) {
	if !validPath.MatchString(path) {
		panic(fmt.Sprintf("malformed route %q", path))
	}
	if _, taken := r.routes[path]; taken {
		panic(fmt.Sprintf("route %q registered twice", path))
	}
	r.routes[path] = h
}

func (r *Router) route(tx weave.Tx) (weave.Handler, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "load message")
	}
	if msg == nil {
		return nil, errors.Wrap(errors.ErrInvalidMsg, "transaction without message")
	}
	h, ok := r.routes[msg.Path()]
	if !ok {
		return nil, errors.Wrapf(ErrNoSuchPath, "%q", msg.Path())
	}
	return h, nil
}

func (r *Router) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	h, err := r.route(tx)
	if err != nil {
		return nil, err
	}
	return h.Check(ctx, db, tx)
}

func (r *Router) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	h, err := r.route(tx)
	if err != nil {
		return nil, err
	}
	return h.Deliver(ctx, db, tx)
}
