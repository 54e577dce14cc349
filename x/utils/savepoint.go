package utils

import (
	weave "github.com/iov-one/weave-escrow"
)

// Savepoint runs the rest of the stack on a cache of the store and writes
// the cache back only when no error is returned. It is what makes a
// message all or nothing.
//
// A zero Savepoint is inactive, enable it with OnCheck and OnDeliver.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ weave.Decorator = Savepoint{}

func NewSavepoint() Savepoint {
	return Savepoint{}
}

func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

func (s Savepoint) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	var res *weave.CheckResult
	err := isolate(s.onCheck, db, func(db weave.KVStore) (err error) {
		res, err = next.Check(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s Savepoint) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	var res *weave.DeliverResult
	err := isolate(s.onDeliver, db, func(db weave.KVStore) (err error) {
		res, err = next.Deliver(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// isolate calls fn on a cache of db when active and db can be cached,
// otherwise on db itself.
func isolate(active bool, db weave.KVStore, fn func(weave.KVStore) error) error {
	cacheable, ok := db.(weave.CacheableKVStore)
	if !active || !ok {
		return fn(db)
	}
	cache := cacheable.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	cache.Write()
	return nil
}
