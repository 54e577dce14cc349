package orm

import (
	"bytes"

	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
)

// Index maps an indexed value to primary keys. A unique index stores the
// key itself, otherwise a MultiRef with all keys in order.
type Index struct {
	name    string
	prefix  []byte
	unique  bool
	indexer Indexer
	// primary turns a primary key into its database key.
	primary func([]byte) []byte
}

var _ weave.QueryHandler = Index{}

func newIndex(name string, indexer Indexer, unique bool, primary func([]byte) []byte) Index {
	return Index{
		name:    name,
		prefix:  []byte("_i." + name + ":"),
		unique:  unique,
		indexer: indexer,
		primary: primary,
	}
}

func (i Index) dbKey(value []byte) []byte {
	k := make([]byte, 0, len(i.prefix)+len(value))
	return append(append(k, i.prefix...), value...)
}

// Update moves pk from the entry of prev to the entry of next. A nil prev
// is an insert and a nil next a removal.
func (i Index) Update(db weave.KVStore, pk []byte, prev, next Model) error {
	var from, to []byte
	var err error
	if prev != nil {
		if from, err = i.indexer(prev); err != nil {
			return err
		}
	}
	if next != nil {
		if to, err = i.indexer(next); err != nil {
			return err
		}
	}
	if prev != nil && next != nil && bytes.Equal(from, to) {
		return nil
	}
	if err := i.remove(db, from, pk); err != nil {
		return err
	}
	return i.add(db, to, pk)
}

func (i Index) add(db weave.KVStore, value, pk []byte) error {
	if value == nil {
		return nil
	}
	key := i.dbKey(value)
	cur := db.Get(key)
	if i.unique {
		if cur != nil {
			return errors.Wrapf(errors.ErrDuplicate, "%s %X", i.name, value)
		}
		db.Set(key, pk)
		return nil
	}
	refs, err := loadRefs(cur)
	if err != nil {
		return err
	}
	if err := refs.Add(pk); err != nil {
		return err
	}
	return i.storeRefs(db, key, refs)
}

func (i Index) remove(db weave.KVStore, value, pk []byte) error {
	if value == nil {
		return nil
	}
	key := i.dbKey(value)
	cur := db.Get(key)
	switch {
	case cur == nil:
		return errors.Wrapf(errors.ErrInvalidState, "%s %X has no entry", i.name, value)
	case i.unique && !bytes.Equal(cur, pk):
		return errors.Wrapf(errors.ErrInvalidState, "%s %X points to %X", i.name, value, cur)
	case i.unique:
		db.Delete(key)
		return nil
	}
	refs, err := loadRefs(cur)
	if err != nil {
		return err
	}
	if err := refs.Remove(pk); err != nil {
		return errors.Wrapf(errors.ErrInvalidState, "%s %X: %s", i.name, value, err)
	}
	return i.storeRefs(db, key, refs)
}

func (i Index) storeRefs(db weave.KVStore, key []byte, refs *MultiRef) error {
	if len(refs.Refs) == 0 {
		db.Delete(key)
		return nil
	}
	raw, err := refs.Marshal()
	if err != nil {
		return err
	}
	db.Set(key, raw)
	return nil
}

// Keys returns the primary keys indexed under value.
func (i Index) Keys(db weave.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	return i.decode(db.Get(i.dbKey(value)))
}

// KeysWithPrefix returns the primary keys of every indexed value starting
// with prefix.
func (i Index) KeysWithPrefix(db weave.ReadOnlyKVStore, prefix []byte) ([][]byte, error) {
	entries, err := queryPrefix(db, i.dbKey(prefix))
	if err != nil {
		return nil, err
	}
	var keys [][]byte
	for _, e := range entries {
		found, err := i.decode(e.Value)
		if err != nil {
			return nil, err
		}
		keys = append(keys, found...)
	}
	return keys, nil
}

func (i Index) decode(raw []byte) ([][]byte, error) {
	switch {
	case raw == nil:
		return nil, nil
	case i.unique:
		return [][]byte{raw}, nil
	}
	refs, err := loadRefs(raw)
	if err != nil {
		return nil, err
	}
	return refs.Refs, nil
}

// Query returns the stored models referenced by the index, not the index
// entries.
func (i Index) Query(db weave.ReadOnlyKVStore, mod string, data []byte) ([]weave.Model, error) {
	var keys [][]byte
	var err error
	switch mod {
	case weave.KeyQueryMod:
		keys, err = i.Keys(db, data)
	case weave.PrefixQueryMod:
		keys, err = i.KeysWithPrefix(db, data)
	default:
		return nil, errors.Wrapf(errors.ErrInvalidInput, "query mod %q", mod)
	}
	if err != nil {
		return nil, err
	}
	var res []weave.Model
	for _, pk := range keys {
		res = append(res, queryKey(db, i.primary(pk))...)
	}
	return res, nil
}
