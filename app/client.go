package app

import (
	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/store"
	abci "github.com/tendermint/tendermint/abci/types"
)

// ABCIStore reads the committed state of an application through its
// Query method, so that buckets can load models from a running app.
// A failed query panics.
type ABCIStore struct {
	app abci.Application
}

var _ weave.ReadOnlyKVStore = (*ABCIStore)(nil)

func NewABCIStore(app abci.Application) *ABCIStore {
	return &ABCIStore{app: app}
}

func (a *ABCIStore) query(path string, data []byte) []weave.Model {
	res := a.app.Query(abci.RequestQuery{Path: path, Data: data})
	if res.Code != errors.SuccessABCICode {
		panic(errors.Wrapf(errors.ErrHuman, "query %s: %d %s", path, res.Code, res.Log))
	}
	models, err := DecodeResults(res.Key, res.Value)
	if err != nil {
		panic(err)
	}
	return models
}

func (a *ABCIStore) Get(key []byte) []byte {
	models := a.query("/", key)
	if len(models) == 0 {
		return nil
	}
	return models[0].Value
}

func (a *ABCIStore) Has(key []byte) bool {
	return a.Get(key) != nil
}

// Iterator supports the whole key range only.
func (a *ABCIStore) Iterator(start, end []byte) weave.Iterator {
	if start != nil || end != nil {
		panic("ABCIStore iterates over all keys only")
	}
	return store.NewSliceIterator(a.query("/?prefix", nil))
}
