package weave

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/weave-escrow/errors"
)

// Models and messages are serialized as protocol buffers. The schema of
// each package is kept in its codec.proto file and mirrored by protobuf
// struct tags on the Go types.
//
// A type implements Marshal and Unmarshal by converting itself to an
// unexported twin type that has the same fields but no methods of its
// own besides proto.Message:
//
//	type escrowRecord Escrow
//
//	func (e *Escrow) Marshal() ([]byte, error) {
//		return weave.MarshalProto((*escrowRecord)(e))
//	}
//
// The twin prevents proto.Marshal from calling back into Escrow.Marshal.

// MarshalProto serializes m.
func MarshalProto(m proto.Message) ([]byte, error) {
	raw, err := proto.Marshal(m)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidType, "marshal %T: %s", m, err)
	}
	return raw, nil
}

// UnmarshalProto resets m and loads raw into it.
func UnmarshalProto(raw []byte, m proto.Message) error {
	if err := proto.Unmarshal(raw, m); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "unmarshal %T: %s", m, err)
	}
	return nil
}
