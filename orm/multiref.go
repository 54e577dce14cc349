package orm

import (
	"bytes"
	"sort"

	"github.com/gogo/protobuf/proto"
	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
)

// MultiRef is the entry of a non unique index: the primary keys of all
// models sharing an indexed value, in ascending order.
type MultiRef struct {
	Refs [][]byte `protobuf:"bytes,1,rep,name=refs,proto3" json:"refs"`
}

type multiRefRecord MultiRef

func (m *multiRefRecord) Reset()         { *m = multiRefRecord{} }
func (m *multiRefRecord) String() string { return proto.CompactTextString(m) }
func (*multiRefRecord) ProtoMessage()    {}

func (m *MultiRef) Marshal() ([]byte, error) {
	return weave.MarshalProto((*multiRefRecord)(m))
}

func (m *MultiRef) Unmarshal(raw []byte) error {
	return weave.UnmarshalProto(raw, (*multiRefRecord)(m))
}

func loadRefs(raw []byte) (*MultiRef, error) {
	var refs MultiRef
	if raw == nil {
		return &refs, nil
	}
	if err := refs.Unmarshal(raw); err != nil {
		return nil, err
	}
	return &refs, nil
}

// search returns the position of ref and whether it is present.
func (m *MultiRef) search(ref []byte) (int, bool) {
	i := sort.Search(len(m.Refs), func(i int) bool {
		return bytes.Compare(m.Refs[i], ref) >= 0
	})
	return i, i < len(m.Refs) && bytes.Equal(m.Refs[i], ref)
}

// Add inserts ref in order. It fails if ref is present.
func (m *MultiRef) Add(ref []byte) error {
	i, found := m.search(ref)
	if found {
		return errors.Wrapf(errors.ErrDuplicate, "reference %X", ref)
	}
	m.Refs = append(m.Refs, nil)
	copy(m.Refs[i+1:], m.Refs[i:])
	m.Refs[i] = ref
	return nil
}

// Remove deletes ref. It fails if ref is absent.
func (m *MultiRef) Remove(ref []byte) error {
	i, found := m.search(ref)
	if !found {
		return errors.Wrapf(errors.ErrNotFound, "reference %X", ref)
	}
	m.Refs = append(m.Refs[:i], m.Refs[i+1:]...)
	return nil
}
