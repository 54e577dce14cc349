package sigs

import (
	"context"

	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/x"
)

type signersKey struct{}

func withSigners(ctx weave.Context, conds []weave.Condition) weave.Context {
	return context.WithValue(ctx, signersKey{}, conds)
}

// Authenticate reports the signers the Decorator verified.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns nil outside of a Decorator.
func (Authenticate) GetConditions(ctx weave.Context) []weave.Condition {
	conds, _ := ctx.Value(signersKey{}).([]weave.Condition)
	return conds
}

func (a Authenticate) HasAddress(ctx weave.Context, addr weave.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if c.Address().Equals(addr) {
			return true
		}
	}
	return false
}
