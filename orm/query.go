package orm

import (
	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
)

func queryKey(db weave.ReadOnlyKVStore, key []byte) []weave.Model {
	value := db.Get(key)
	if value == nil {
		return nil
	}
	return []weave.Model{weave.Pair(key, value)}
}

// queryPrefix returns every entry whose key starts with prefix.
func queryPrefix(db weave.ReadOnlyKVStore, prefix []byte) ([]weave.Model, error) {
	it := db.Iterator(prefix, prefixEnd(prefix))
	defer it.Release()

	var res []weave.Model
	for {
		key, value, err := it.Next()
		switch {
		case errors.ErrIteratorDone.Is(err):
			return res, nil
		case err != nil:
			return nil, err
		}
		res = append(res, weave.Pair(key, value))
	}
}

// prefixEnd returns the first key after all keys starting with prefix,
// nil when there is none.
func prefixEnd(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}

// RegisterQuery exposes the whole store under "/", addressed by full
// database keys.
func RegisterQuery(r weave.QueryRouter) {
	r.Register("/", rawQuery{})
}

type rawQuery struct{}

func (rawQuery) Query(db weave.ReadOnlyKVStore, mod string, data []byte) ([]weave.Model, error) {
	switch mod {
	case weave.KeyQueryMod:
		return queryKey(db, data), nil
	case weave.PrefixQueryMod:
		return queryPrefix(db, data)
	}
	return nil, errors.Wrapf(errors.ErrInvalidInput, "query mod %q", mod)
}
