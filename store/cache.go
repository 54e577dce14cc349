package store

import (
	"bytes"

	"github.com/google/btree"
)

// btreeDegree keeps the nodes small. A cache wrap usually holds the few
// entries written by a single transaction.
const btreeDegree = 2

// entry is a buffered write. A deleted entry hides the parent value.
type entry struct {
	key     []byte
	value   []byte
	deleted bool
}

func (e entry) Less(than btree.Item) bool {
	return bytes.Compare(e.key, than.(entry).key) < 0
}

// CacheWrap buffers writes to a parent store in a btree until Write or
// Discard is called.
type CacheWrap struct {
	parent  KVStore
	pending *btree.BTree
	free    *btree.FreeList
}

var _ KVCacheWrap = (*CacheWrap)(nil)

// NewCacheWrap opens a savepoint on top of parent. Nested wraps share the
// btree free list of the first one.
func NewCacheWrap(parent KVStore) *CacheWrap {
	return newCacheWrap(parent, btree.NewFreeList(btree.DefaultFreeListSize))
}

func newCacheWrap(parent KVStore, free *btree.FreeList) *CacheWrap {
	return &CacheWrap{
		parent:  parent,
		pending: btree.NewWithFreeList(btreeDegree, free),
		free:    free,
	}
}

// CacheWrap opens a nested savepoint.
func (c *CacheWrap) CacheWrap() KVCacheWrap {
	return newCacheWrap(c, c.free)
}

// Write applies all buffered writes to the parent and empties the cache.
// Writes are applied in key order, only the last write of a key counts.
func (c *CacheWrap) Write() {
	c.pending.Ascend(func(i btree.Item) bool {
		e := i.(entry)
		if e.deleted {
			c.parent.Delete(e.key)
		} else {
			c.parent.Set(e.key, e.value)
		}
		return true
	})
	c.Discard()
}

// Discard drops all buffered writes.
func (c *CacheWrap) Discard() {
	c.pending.Clear(true)
}

func (c *CacheWrap) Set(key, value []byte) {
	c.pending.ReplaceOrInsert(entry{key: key, value: value})
}

func (c *CacheWrap) Delete(key []byte) {
	c.pending.ReplaceOrInsert(entry{key: key, deleted: true})
}

func (c *CacheWrap) Get(key []byte) []byte {
	e, ok := c.lookup(key)
	if !ok {
		return c.parent.Get(key)
	}
	if e.deleted {
		return nil
	}
	return e.value
}

func (c *CacheWrap) Has(key []byte) bool {
	e, ok := c.lookup(key)
	if !ok {
		return c.parent.Has(key)
	}
	return !e.deleted
}

func (c *CacheWrap) lookup(key []byte) (entry, bool) {
	if key == nil {
		panic("nil key")
	}
	found := c.pending.Get(entry{key: key})
	if found == nil {
		return entry{}, false
	}
	return found.(entry), true
}

// Iterator merges the buffered writes with the parent entries in the same
// range.
func (c *CacheWrap) Iterator(start, end []byte) Iterator {
	var buffered []entry
	collect := func(i btree.Item) bool {
		buffered = append(buffered, i.(entry))
		return true
	}
	switch {
	case start == nil && end == nil:
		c.pending.Ascend(collect)
	case start == nil:
		c.pending.AscendLessThan(entry{key: end}, collect)
	case end == nil:
		c.pending.AscendGreaterOrEqual(entry{key: start}, collect)
	default:
		c.pending.AscendRange(entry{key: start}, entry{key: end}, collect)
	}
	return &mergeIterator{
		buffered: buffered,
		parent:   c.parent.Iterator(start, end),
	}
}
