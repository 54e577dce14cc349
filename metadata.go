package weave

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/weave-escrow/errors"
)

// Metadata is carried by every model and message. Schema is the version
// of the format the entity was written in and starts at 1.
type Metadata struct {
	Schema uint32 `protobuf:"varint,1,opt,name=schema,proto3" json:"schema"`
}

type metadataRecord Metadata

func (m *metadataRecord) Reset()         { *m = metadataRecord{} }
func (m *metadataRecord) String() string { return proto.CompactTextString(m) }
func (*metadataRecord) ProtoMessage()    {}

func (m *Metadata) Marshal() ([]byte, error) {
	return MarshalProto((*metadataRecord)(m))
}

func (m *Metadata) Unmarshal(raw []byte) error {
	return UnmarshalProto(raw, (*metadataRecord)(m))
}

func (m *Metadata) Validate() error {
	switch {
	case m == nil:
		return errors.Wrap(errors.ErrEmpty, "metadata")
	case m.Schema == 0:
		return errors.Wrap(errors.ErrInvalidModel, "metadata without schema version")
	}
	return nil
}

// Copy returns an independent copy, nil for nil.
func (m *Metadata) Copy() *Metadata {
	if m == nil {
		return nil
	}
	return &Metadata{Schema: m.Schema}
}
