package weavetest

import (
	"bytes"
	"encoding/json"
	"time"

	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/app"
	"github.com/iov-one/weave-escrow/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// Tester is the part of testing.TB the runner needs.
type Tester interface {
	Helper()
	Fatalf(string, ...interface{})
}

// WeaveApp is what a block function gets to work with: transaction
// submission and read access to the committed state.
type WeaveApp interface {
	weave.ReadOnlyKVStore
	CheckTx(weave.Tx) error
	DeliverTx(weave.Tx) error
}

// WeaveRunner drives an ABCI application one block at a time, serializing
// weave transactions on the way in. Reads go through ABCI queries, so
// buckets work on it as on any store.
type WeaveRunner struct {
	*app.ABCIStore

	t       Tester
	app     abci.Application
	chainID string
	height  int64
}

var _ WeaveApp = (*WeaveRunner)(nil)

func NewWeaveRunner(t Tester, abciApp abci.Application, chainID string) *WeaveRunner {
	return &WeaveRunner{
		ABCIStore: app.NewABCIStore(abciApp),
		t:         t,
		app:       abciApp,
		chainID:   chainID,
	}
}

// InitChain loads genesis, serialized as JSON, in a block of its own. The
// test fails unless the state changes.
func (w *WeaveRunner) InitChain(genesis interface{}) {
	w.t.Helper()
	raw, err := json.Marshal(genesis)
	if err != nil {
		w.t.Fatalf("genesis: %s", err)
	}
	changed := w.InBlock(func(WeaveApp) error {
		w.app.InitChain(abci.RequestInitChain{
			Time:          time.Now(),
			ChainId:       w.chainID,
			AppStateBytes: raw,
		})
		return nil
	})
	if !changed {
		w.t.Fatalf("genesis left the state unchanged")
	}
}

func (w *WeaveRunner) CheckTx(tx weave.Tx) error {
	raw, err := tx.Marshal()
	if err != nil {
		return errors.Wrap(err, "marshal tx")
	}
	res := w.app.CheckTx(raw)
	return abciError(res.Code, res.Log)
}

func (w *WeaveRunner) DeliverTx(tx weave.Tx) error {
	raw, err := tx.Marshal()
	if err != nil {
		return errors.Wrap(err, "marshal tx")
	}
	res := w.app.DeliverTx(raw)
	return abciError(res.Code, res.Log)
}

// abciError renders a failed response as "<code>: <log>".
func abciError(code uint32, log string) error {
	if code == errors.SuccessABCICode {
		return nil
	}
	return errors.ErrHuman.Newf("%d: %s", code, log)
}

// InBlock runs fn inside a new block and commits it. It reports whether
// the block changed the app hash. An error from fn fails the test.
func (w *WeaveRunner) InBlock(fn func(WeaveApp) error) bool {
	w.t.Helper()
	w.height++
	before := w.app.Info(abci.RequestInfo{}).LastBlockAppHash

	w.app.BeginBlock(abci.RequestBeginBlock{
		Header: abci.Header{ChainID: w.chainID, Height: w.height},
	})
	if err := fn(w); err != nil {
		w.t.Fatalf("block %d: %+v", w.height, err)
	}
	w.app.EndBlock(abci.RequestEndBlock{Height: w.height})

	return !bytes.Equal(before, w.app.Commit().Data)
}
