package app

import (
	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp decodes transactions and passes them to the handler, on the
// check or the deliver cache of the StoreApp.
type BaseApp struct {
	*StoreApp
	decode  weave.TxDecoder
	handler weave.Handler
	// debug puts stack traces into failure logs.
	debug bool
}

var _ abci.Application = BaseApp{}

func NewBaseApp(s *StoreApp, decode weave.TxDecoder, h weave.Handler, debug bool) BaseApp {
	return BaseApp{StoreApp: s, decode: decode, handler: h, debug: debug}
}

func (b BaseApp) CheckTx(raw []byte) abci.ResponseCheckTx {
	tx, ctx, err := b.prepare(raw, "check_tx")
	if err != nil {
		return weave.CheckResponse(nil, err, b.debug)
	}
	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return weave.CheckResponse(res, err, b.debug)
}

func (b BaseApp) DeliverTx(raw []byte) abci.ResponseDeliverTx {
	tx, ctx, err := b.prepare(raw, "deliver_tx")
	if err != nil {
		return weave.DeliverResponse(nil, err, b.debug)
	}
	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	return weave.DeliverResponse(res, err, b.debug)
}

// prepare decodes raw and returns it with a block context that logs the
// call and the message path.
func (b BaseApp) prepare(raw []byte, call string) (weave.Tx, weave.Context, error) {
	tx, err := b.decodeSafe(raw)
	if err != nil {
		return nil, nil, err
	}
	ctx := weave.WithLogInfo(b.BlockContext(), "call", call, "path", weave.GetPath(tx))
	return tx, ctx, nil
}

// decodeSafe returns a panic of the decoder as an error, the bytes come
// from the network.
func (b BaseApp) decodeSafe(raw []byte) (tx weave.Tx, err error) {
	defer errors.Recover(&err)
	return b.decode(raw)
}
