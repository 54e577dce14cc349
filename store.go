package weave

// ReadOnlyKVStore gives access to the key value state of the chain, either
// committed or buffered in a cache wrap. Keys are ordered bytewise.
type ReadOnlyKVStore interface {
	// Get returns nil when the key is not set. A nil key panics.
	Get(key []byte) []byte
	Has(key []byte) bool

	// Iterator walks the keys in [start, end) in ascending order. A nil
	// start or end leaves that side of the range open. The store must not
	// be written to before the iterator is released.
	Iterator(start, end []byte) Iterator
}

// KVStore is a store handlers can write to.
type KVStore interface {
	ReadOnlyKVStore
	Set(key, value []byte)
	Delete(key []byte)
}

// Iterator returns the entries of a range one by one:
//
//	it := db.Iterator(start, end)
//	defer it.Release()
//	for {
//		key, value, err := it.Next()
//		if errors.ErrIteratorDone.Is(err) {
//			break
//		} else if err != nil {
//			return err
//		}
//		...
//	}
type Iterator interface {
	// Next returns the following entry or ErrIteratorDone once the
	// range is exhausted.
	Next() (key, value []byte, err error)
	Release()
}

// CacheableKVStore can open a savepoint on top of itself.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap buffers writes on top of another store. Reads see the
// buffered writes. Write applies them to the store below and Discard
// drops them. A cache wrap may be wrapped again, which gives nested
// savepoints.
type KVCacheWrap interface {
	CacheableKVStore
	Write()
	Discard()
}

// CommitKVStore is the persistent state of the chain. Every block is
// executed in a cache wrap that is written back before Commit.
type CommitKVStore interface {
	// Get reads the last committed state.
	Get(key []byte) []byte
	CacheWrap() KVCacheWrap

	// Commit persists a new version and returns its id.
	Commit() CommitID
	// LoadLatestVersion restores the last complete commit from disk.
	LoadLatestVersion() error
	LatestVersion() CommitID
}

// CommitID identifies a committed version by its number and its merkle
// root, which is the app hash reported to tendermint.
type CommitID struct {
	Version int64
	Hash    []byte
}
