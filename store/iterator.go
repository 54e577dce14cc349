package store

import (
	"bytes"

	"github.com/iov-one/weave-escrow/errors"
)

// mergeIterator walks the buffered writes of a cache wrap and the entries
// of its parent in key order. A buffered write shadows the parent entry
// with the same key.
type mergeIterator struct {
	buffered []entry
	parent   Iterator

	// head is the next parent entry, nil when it must be fetched.
	head       *Model
	parentDone bool
}

var _ Iterator = (*mergeIterator)(nil)

func (it *mergeIterator) Next() ([]byte, []byte, error) {
	for {
		if err := it.fetchHead(); err != nil {
			return nil, nil, err
		}

		var from entry
		switch {
		case len(it.buffered) == 0 && it.head == nil:
			return nil, nil, errors.ErrIteratorDone
		case len(it.buffered) == 0:
			return it.takeHead()
		case it.head == nil:
			from = it.takeBuffered()
		default:
			switch cmp := bytes.Compare(it.buffered[0].key, it.head.Key); {
			case cmp > 0:
				return it.takeHead()
			case cmp == 0:
				it.head = nil
			}
			from = it.takeBuffered()
		}
		if !from.deleted {
			return from.key, from.value, nil
		}
	}
}

func (it *mergeIterator) fetchHead() error {
	if it.head != nil || it.parentDone {
		return nil
	}
	key, value, err := it.parent.Next()
	switch {
	case errors.ErrIteratorDone.Is(err):
		it.parentDone = true
		return nil
	case err != nil:
		return err
	}
	it.head = &Model{Key: key, Value: value}
	return nil
}

func (it *mergeIterator) takeHead() ([]byte, []byte, error) {
	m := it.head
	it.head = nil
	return m.Key, m.Value, nil
}

func (it *mergeIterator) takeBuffered() entry {
	e := it.buffered[0]
	it.buffered = it.buffered[1:]
	return e
}

func (it *mergeIterator) Release() {
	it.parent.Release()
	it.buffered = nil
	it.head = nil
}

// SliceIterator returns preloaded models in their slice order.
type SliceIterator struct {
	models []Model
}

var _ Iterator = (*SliceIterator)(nil)

func NewSliceIterator(models []Model) *SliceIterator {
	return &SliceIterator{models: models}
}

func (s *SliceIterator) Next() ([]byte, []byte, error) {
	if len(s.models) == 0 {
		return nil, nil, errors.ErrIteratorDone
	}
	m := s.models[0]
	s.models = s.models[1:]
	return m.Key, m.Value, nil
}

func (s *SliceIterator) Release() {
	s.models = nil
}
