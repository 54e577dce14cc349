package app

import (
	"github.com/gogo/protobuf/proto"
	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
)

// ResultSet is the envelope of query responses: either all keys or all
// values of the matched entries.
type ResultSet struct {
	Results [][]byte `protobuf:"bytes,1,rep,name=results,proto3" json:"results,omitempty"`
}

type resultSetRecord ResultSet

func (m *resultSetRecord) Reset()         { *m = resultSetRecord{} }
func (m *resultSetRecord) String() string { return proto.CompactTextString(m) }
func (*resultSetRecord) ProtoMessage()    {}

func (r *ResultSet) Marshal() ([]byte, error) {
	return weave.MarshalProto((*resultSetRecord)(r))
}

func (r *ResultSet) Unmarshal(raw []byte) error {
	return weave.UnmarshalProto(raw, (*resultSetRecord)(r))
}

// encodeResults splits models into a serialized key set and value set.
func encodeResults(models []weave.Model) (keys, values []byte, err error) {
	var ks, vs ResultSet
	for _, m := range models {
		ks.Results = append(ks.Results, m.Key)
		vs.Results = append(vs.Results, m.Value)
	}
	if keys, err = ks.Marshal(); err != nil {
		return nil, nil, err
	}
	if values, err = vs.Marshal(); err != nil {
		return nil, nil, err
	}
	return keys, values, nil
}

// DecodeResults rebuilds the models of a query response from its
// serialized key and value sets.
func DecodeResults(keys, values []byte) ([]weave.Model, error) {
	var ks, vs ResultSet
	if err := ks.Unmarshal(keys); err != nil {
		return nil, errors.Wrap(err, "keys")
	}
	if err := vs.Unmarshal(values); err != nil {
		return nil, errors.Wrap(err, "values")
	}
	if len(ks.Results) != len(vs.Results) {
		return nil, errors.Wrapf(errors.ErrInvalidState, "%d keys for %d values", len(ks.Results), len(vs.Results))
	}
	models := make([]weave.Model, len(ks.Results))
	for i := range models {
		models[i] = weave.Pair(ks.Results[i], vs.Results[i])
	}
	return models, nil
}
