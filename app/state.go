package app

import (
	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
)

// chainIDKey lives under "_wv:", the prefix of framework owned keys.
var chainIDKey = []byte("_wv:chainID")

// state keeps the committed store and the caches the transactions of the
// current block run on. Deliver is written on commit, check is thrown
// away.
type state struct {
	committed weave.CommitKVStore
	deliver   weave.KVCacheWrap
	check     weave.KVCacheWrap
}

// newState loads the latest version of db. It panics if that fails, the
// application cannot run without its state.
func newState(db weave.CommitKVStore) *state {
	if err := db.LoadLatestVersion(); err != nil {
		panic(errors.Wrap(err, "load state"))
	}
	return &state{
		committed: db,
		deliver:   db.CacheWrap(),
		check:     db.CacheWrap(),
	}
}

func (s *state) latest() weave.CommitID {
	return s.committed.LatestVersion()
}

// commit persists the delivered block and starts new caches.
func (s *state) commit() weave.CommitID {
	s.deliver.Write()
	s.check.Discard()
	id := s.committed.Commit()
	s.deliver = s.committed.CacheWrap()
	s.check = s.committed.CacheWrap()
	return id
}

// saveChainID records the chain id. It can be set only once.
func saveChainID(db weave.KVStore, chainID string) error {
	if !weave.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInvalidInput, "chain id %q", chainID)
	}
	if db.Has(chainIDKey) {
		return errors.Wrap(errors.ErrUnauthorized, "chain id is already set")
	}
	db.Set(chainIDKey, []byte(chainID))
	return nil
}
