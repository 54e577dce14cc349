/*
Package iavl keeps the committed state of the chain in a versioned IAVL+
merkle tree. Each commit saves a version whose root hash is reported to
tendermint as the app hash.
*/
package iavl

import (
	"github.com/iov-one/weave-escrow/store"
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// nodeCacheSize is the number of tree nodes kept in memory.
const nodeCacheSize = 10000

// CommitStore is the persistent state of the chain.
type CommitStore struct {
	tree *iavl.MutableTree
}

var _ store.CommitKVStore = (*CommitStore)(nil)

// NewCommitStore opens the goleveldb database name in dir. An empty dir
// keeps the state in memory.
func NewCommitStore(dir, name string) *CommitStore {
	if dir == "" {
		return NewCommitStoreFromDB(dbm.NewMemDB())
	}
	return NewCommitStoreFromDB(dbm.NewDB(name, dbm.GoLevelDBBackend, dir))
}

func NewCommitStoreFromDB(db dbm.DB) *CommitStore {
	return &CommitStore{tree: iavl.NewMutableTree(db, nodeCacheSize)}
}

func (s *CommitStore) Get(key []byte) []byte {
	_, value := s.tree.GetVersioned(key, s.tree.Version())
	return value
}

// Commit saves the working tree as a new version. A failure means the
// database is broken and the node cannot continue.
func (s *CommitStore) Commit() store.CommitID {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		panic(err)
	}
	return store.CommitID{Version: version, Hash: hash}
}

func (s *CommitStore) LoadLatestVersion() error {
	_, err := s.tree.Load()
	return err
}

func (s *CommitStore) LatestVersion() store.CommitID {
	return store.CommitID{Version: s.tree.Version(), Hash: s.tree.Hash()}
}

// CacheWrap opens a savepoint whose writes reach the working tree on
// Write and are persisted by the next Commit.
func (s *CommitStore) CacheWrap() store.KVCacheWrap {
	return store.NewCacheWrap(workingTree{s.tree})
}

// workingTree exposes the uncommitted tree as a store.KVStore.
type workingTree struct {
	tree *iavl.MutableTree
}

func (w workingTree) Get(key []byte) []byte {
	_, value := w.tree.Get(key)
	return value
}

func (w workingTree) Has(key []byte) bool {
	return w.tree.Has(key)
}

func (w workingTree) Set(key, value []byte) {
	w.tree.Set(key, value)
}

func (w workingTree) Delete(key []byte) {
	w.tree.Remove(key)
}

// Iterator loads the whole range up front. The tree only offers callback
// iteration.
func (w workingTree) Iterator(start, end []byte) store.Iterator {
	var models []store.Model
	w.tree.IterateRange(start, end, true, func(key, value []byte) bool {
		models = append(models, store.Model{Key: key, Value: value})
		return false
	})
	return store.NewSliceIterator(models)
}
