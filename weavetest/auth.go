package weavetest

import (
	"context"

	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/crypto"
)

// NewCondition returns the signature condition of a new random key.
func NewCondition() weave.Condition {
	return crypto.GenPrivKeyEd25519().PublicKey().Condition()
}

// Auth authenticates a fixed set of conditions: Signers followed by
// Signer, when set.
type Auth struct {
	Signer  weave.Condition
	Signers []weave.Condition
}

func (a *Auth) GetConditions(weave.Context) []weave.Condition {
	if a.Signer == nil {
		return a.Signers
	}
	return append(append([]weave.Condition(nil), a.Signers...), a.Signer)
}

func (a *Auth) HasAddress(ctx weave.Context, addr weave.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

// CtxAuth authenticates the conditions stored in the context under Key,
// so that one authenticator can serve a different signer set per call.
type CtxAuth struct {
	Key string
}

type ctxAuthKey string

func (a *CtxAuth) SetConditions(ctx weave.Context, conds ...weave.Condition) weave.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), conds)
}

func (a *CtxAuth) GetConditions(ctx weave.Context) []weave.Condition {
	conds, _ := ctx.Value(ctxAuthKey(a.Key)).([]weave.Condition)
	return conds
}

func (a *CtxAuth) HasAddress(ctx weave.Context, addr weave.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

func hasAddress(conds []weave.Condition, addr weave.Address) bool {
	for _, c := range conds {
		if c.Address().Equals(addr) {
			return true
		}
	}
	return false
}
