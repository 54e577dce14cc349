package x

import (
	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
)

// Authenticator tells a handler which conditions authorized the current
// transaction.
type Authenticator interface {
	GetConditions(weave.Context) []weave.Condition
	// HasAddress reports whether a condition of the address authorized
	// the transaction.
	HasAddress(weave.Context, weave.Address) bool
}

// ChainAuth combines several authenticators. A condition authorized by
// any of them counts.
func ChainAuth(auths ...Authenticator) Authenticator {
	return chain(auths)
}

type chain []Authenticator

func (c chain) GetConditions(ctx weave.Context) []weave.Condition {
	var all []weave.Condition
	for _, a := range c {
		all = append(all, a.GetConditions(ctx)...)
	}
	return all
}

func (c chain) HasAddress(ctx weave.Context, addr weave.Address) bool {
	for _, a := range c {
		if a.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// HasSigner returns ErrUnauthorized unless addr authorized the
// transaction. Role names the party in the error, for example "taker".
func HasSigner(ctx weave.Context, auth Authenticator, addr weave.Address, role string) error {
	if auth.HasAddress(ctx, addr) {
		return nil
	}
	return errors.Wrapf(errors.ErrUnauthorized, "%s %s did not sign", role, addr)
}
