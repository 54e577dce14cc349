package orm

import (
	"encoding/binary"

	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
)

// Sequence is a persistent counter. Its values are encoded as 8 byte big
// endian keys, so a later value always sorts after an earlier one.
type Sequence struct {
	key []byte
}

// NewSequence returns the sequence name of bucket.
func NewSequence(bucket, name string) Sequence {
	return Sequence{key: []byte("_s." + bucket + ":" + name)}
}

// NextVal increments the counter and returns the new value as a key. The
// first value is 1.
func (s Sequence) NextVal(db weave.KVStore) []byte {
	next := EncodeSequence(s.Latest(db) + 1)
	db.Set(s.key, next)
	return next
}

// Latest returns the last value handed out, 0 if none.
func (s Sequence) Latest(db weave.ReadOnlyKVStore) uint64 {
	n, err := DecodeSequence(db.Get(s.key))
	if err != nil {
		panic(err)
	}
	return n
}

// EncodeSequence returns the key of a sequence value.
func EncodeSequence(n uint64) []byte {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, n)
	return raw
}

// DecodeSequence reads a key produced by EncodeSequence. Nil decodes to 0.
func DecodeSequence(raw []byte) (uint64, error) {
	switch len(raw) {
	case 0:
		return 0, nil
	case 8:
		return binary.BigEndian.Uint64(raw), nil
	}
	return 0, errors.Wrapf(errors.ErrInvalidInput, "sequence value of %d bytes", len(raw))
}
