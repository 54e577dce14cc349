package sigs

import (
	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/weavetest"
)

// payloadTx signs the serialized form of its message.
type payloadTx struct {
	weave.Tx
	sigs []*StdSignature
}

var _ SignedTx = (*payloadTx)(nil)

func newPayloadTx(payload string) *payloadTx {
	msg := &weavetest.Msg{RoutePath: "test/payload", Serialized: []byte(payload)}
	return &payloadTx{Tx: &weavetest.Tx{Msg: msg}}
}

func (tx *payloadTx) GetSignatures() []*StdSignature { return tx.sigs }

func (tx *payloadTx) GetSignBytes() ([]byte, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	return msg.Marshal()
}

// recordSigners remembers the signers it was called with.
type recordSigners struct {
	seen []weave.Condition
}

var _ weave.Handler = (*recordSigners)(nil)

func (r *recordSigners) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	r.seen = Authenticate{}.GetConditions(ctx)
	return &weave.CheckResult{}, nil
}

func (r *recordSigners) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	r.seen = Authenticate{}.GetConditions(ctx)
	return &weave.DeliverResult{}, nil
}
