package weavetest

import (
	"encoding/binary"

	weave "github.com/iov-one/weave-escrow"
)

// Tx carries Msg. GetMsg returns Err alongside it.
type Tx struct {
	Msg weave.Msg
	Err error
}

var _ weave.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (weave.Msg, error) { return tx.Msg, tx.Err }

// Marshal and Unmarshal are not supported, a Tx never reaches a codec.
func (tx *Tx) Marshal() ([]byte, error) { panic("weavetest.Tx cannot be serialized") }
func (tx *Tx) Unmarshal([]byte) error   { panic("weavetest.Tx cannot be serialized") }

// Msg is routed by RoutePath and serializes to Serialized. Err is returned
// by Marshal and Unmarshal, ValidErr by Validate.
type Msg struct {
	RoutePath  string
	Serialized []byte
	Err        error
	ValidErr   error
}

var _ weave.Msg = (*Msg)(nil)

func (m *Msg) Path() string    { return m.RoutePath }
func (m *Msg) Validate() error { return m.ValidErr }

func (m *Msg) Marshal() ([]byte, error) { return m.Serialized, m.Err }

func (m *Msg) Unmarshal(raw []byte) error {
	m.Serialized = raw
	return m.Err
}

// SequenceID returns the n-th key handed out by a bucket sequence.
func SequenceID(n uint64) []byte {
	id := make([]byte, 8)
	binary.BigEndian.PutUint64(id, n)
	return id
}
