// Package store implements the in memory layers of the state: cache wraps
// used as savepoints and a plain memory store for tests.
package store

import weave "github.com/iov-one/weave-escrow"

type (
	ReadOnlyKVStore  = weave.ReadOnlyKVStore
	KVStore          = weave.KVStore
	Iterator         = weave.Iterator
	CacheableKVStore = weave.CacheableKVStore
	KVCacheWrap      = weave.KVCacheWrap
	CommitKVStore    = weave.CommitKVStore
	CommitID         = weave.CommitID
	Model            = weave.Model
)
