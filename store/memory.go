package store

// MemStore returns an empty in memory store. Nothing below it is ever
// written, it is meant for tests.
func MemStore() CacheableKVStore {
	return NewCacheWrap(nothing{})
}

// nothing is a store without entries that ignores writes.
type nothing struct{}

var _ KVStore = nothing{}

func (nothing) Get([]byte) []byte                   { return nil }
func (nothing) Has([]byte) bool                     { return false }
func (nothing) Set(key, value []byte)               {}
func (nothing) Delete([]byte)                       {}
func (nothing) Iterator(start, end []byte) Iterator { return NewSliceIterator(nil) }
