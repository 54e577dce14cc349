package orm

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"

	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
)

// SeqID names the sequence a bucket draws keys from when Put is called
// without one.
const SeqID = "id"

var bucketName = regexp.MustCompile(`^[a-z_]{3,10}$`)

// ModelBucket keeps models of a single type.
type ModelBucket interface {
	// One loads the model stored under key into dest. It returns
	// ErrNotFound for a missing key and ErrInvalidType if dest is not of
	// the bucket model type.
	One(db weave.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns ErrNotFound unless a model is stored under key.
	Has(db weave.ReadOnlyKVStore, key []byte) error

	// Put validates and stores m, overwriting any model with the same
	// key. An empty key takes the next value of the bucket sequence. The
	// key used is returned.
	Put(db weave.KVStore, key []byte, m Model) ([]byte, error)

	// Delete removes the model stored under key. It returns ErrNotFound
	// when there is none.
	Delete(db weave.KVStore, key []byte) error

	// Register makes the bucket queryable under "/<path>" and each of its
	// indexes under "/<path>/<index>".
	Register(path string, r weave.QueryRouter)
}

// ModelBucketOption configures a bucket created by NewModelBucket.
type ModelBucketOption func(*modelBucket)

// WithIndex adds a secondary index. A unique index refuses a second model
// with the same indexed value.
func WithIndex(name string, indexer Indexer, unique bool) ModelBucketOption {
	return func(b *modelBucket) {
		if _, ok := b.indexes[name]; ok {
			panic(fmt.Sprintf("index %q declared twice on %q", name, b.name))
		}
		b.indexes[name] = newIndex(b.name+"_"+name, indexer, unique, b.dbKey)
	}
}

// NewModelBucket returns a bucket for models of the same type as m. It
// panics if name is not 3 to 10 lower case letters or underscores.
func NewModelBucket(name string, m Model, opts ...ModelBucketOption) ModelBucket {
	if !bucketName.MatchString(name) {
		panic(fmt.Sprintf("invalid bucket name %q", name))
	}
	b := &modelBucket{
		name:    name,
		prefix:  []byte(name + ":"),
		model:   reflect.TypeOf(m),
		ids:     NewSequence(name, SeqID),
		indexes: make(map[string]Index),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

type modelBucket struct {
	name    string
	prefix  []byte
	model   reflect.Type
	ids     Sequence
	indexes map[string]Index
}

var _ ModelBucket = (*modelBucket)(nil)
var _ weave.QueryHandler = (*modelBucket)(nil)

func (b *modelBucket) dbKey(key []byte) []byte {
	k := make([]byte, 0, len(b.prefix)+len(key))
	return append(append(k, b.prefix...), key...)
}

func (b *modelBucket) checkType(m Model) error {
	if t := reflect.TypeOf(m); t != b.model {
		return errors.Wrapf(errors.ErrInvalidType, "bucket %q keeps %v, not %v", b.name, b.model, t)
	}
	return nil
}

func (b *modelBucket) One(db weave.ReadOnlyKVStore, key []byte, dest Model) error {
	if err := b.checkType(dest); err != nil {
		return err
	}
	if len(key) == 0 {
		return errors.Wrapf(errors.ErrNotFound, "%s without key", b.name)
	}
	raw := db.Get(b.dbKey(key))
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", b.name, key)
	}
	return errors.Wrapf(dest.Unmarshal(raw), "%s %X", b.name, key)
}

// load returns nil for a missing key.
func (b *modelBucket) load(db weave.ReadOnlyKVStore, key []byte) (Model, error) {
	raw := db.Get(b.dbKey(key))
	if raw == nil {
		return nil, nil
	}
	m := reflect.New(b.model.Elem()).Interface().(Model)
	if err := m.Unmarshal(raw); err != nil {
		return nil, errors.Wrapf(err, "%s %X", b.name, key)
	}
	return m, nil
}

func (b *modelBucket) Has(db weave.ReadOnlyKVStore, key []byte) error {
	if len(key) == 0 || !db.Has(b.dbKey(key)) {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", b.name, key)
	}
	return nil
}

func (b *modelBucket) Put(db weave.KVStore, key []byte, m Model) ([]byte, error) {
	if err := b.checkType(m); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid %s", b.name)
	}
	raw, err := m.Marshal()
	if err != nil {
		return nil, errors.Wrapf(err, "marshal %s", b.name)
	}
	if len(key) == 0 {
		key = b.ids.NextVal(db)
	}
	if err := b.reindex(db, key, m); err != nil {
		return nil, err
	}
	db.Set(b.dbKey(key), raw)
	return key, nil
}

func (b *modelBucket) Delete(db weave.KVStore, key []byte) error {
	if err := b.Has(db, key); err != nil {
		return err
	}
	if err := b.reindex(db, key, nil); err != nil {
		return err
	}
	db.Delete(b.dbKey(key))
	return nil
}

// reindex moves the index entries of key from the stored model to next.
// A nil next removes them.
func (b *modelBucket) reindex(db weave.KVStore, key []byte, next Model) error {
	if len(b.indexes) == 0 {
		return nil
	}
	prev, err := b.load(db, key)
	if err != nil {
		return err
	}
	for _, name := range b.indexNames() {
		if err := b.indexes[name].Update(db, key, prev, next); err != nil {
			return errors.Wrapf(err, "index %q", name)
		}
	}
	return nil
}

// indexNames returns the index names sorted, so that a failing update
// always reports the same index.
func (b *modelBucket) indexNames() []string {
	names := make([]string, 0, len(b.indexes))
	for name := range b.indexes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (b *modelBucket) Register(path string, r weave.QueryRouter) {
	root := "/" + path
	r.Register(root, b)
	for _, name := range b.indexNames() {
		r.Register(root+"/"+name, b.indexes[name])
	}
}

// Query returns the stored model of a key or all models whose key starts
// with the data.
func (b *modelBucket) Query(db weave.ReadOnlyKVStore, mod string, data []byte) ([]weave.Model, error) {
	switch mod {
	case weave.KeyQueryMod:
		return queryKey(db, b.dbKey(data)), nil
	case weave.PrefixQueryMod:
		return queryPrefix(db, b.dbKey(data))
	}
	return nil, errors.Wrapf(errors.ErrInvalidInput, "query mod %q", mod)
}
