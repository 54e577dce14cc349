package weave

import (
	"testing"

	"github.com/iov-one/weave-escrow/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noteMsg struct {
	Metadata *Metadata
	Note     string
}

func (m *noteMsg) Marshal() ([]byte, error) { return []byte(m.Note), nil }
func (m *noteMsg) Unmarshal(raw []byte) error {
	m.Note = string(raw)
	return nil
}
func (*noteMsg) Path() string { return "test/note" }

func (m *noteMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return err
	}
	if m.Note == "" {
		return errors.Wrap(errors.ErrEmpty, "note")
	}
	return nil
}

type otherMsg struct {
	noteMsg
}

type singleMsgTx struct {
	msg Msg
	err error
}

func (tx *singleMsgTx) GetMsg() (Msg, error)     { return tx.msg, tx.err }
func (tx *singleMsgTx) Marshal() ([]byte, error) { return nil, nil }
func (tx *singleMsgTx) Unmarshal([]byte) error   { return nil }

func TestLoadMsg(t *testing.T) {
	good := &noteMsg{Metadata: &Metadata{Schema: 1}, Note: "swap 500 for 1000"}

	cases := map[string]struct {
		tx      Tx
		dest    interface{}
		wantErr *errors.Error
	}{
		"copies a valid message": {
			tx:   &singleMsgTx{msg: good},
			dest: &noteMsg{},
		},
		"message fails validation": {
			tx:      &singleMsgTx{msg: &noteMsg{Metadata: &Metadata{Schema: 1}}},
			dest:    &noteMsg{},
			wantErr: errors.ErrEmpty,
		},
		"message without metadata": {
			tx:      &singleMsgTx{msg: &noteMsg{Note: "x"}},
			dest:    &noteMsg{},
			wantErr: errors.ErrEmpty,
		},
		"no message": {
			tx:      &singleMsgTx{},
			dest:    &noteMsg{},
			wantErr: errors.ErrInvalidMsg,
		},
		"transaction cannot be read": {
			tx:      &singleMsgTx{err: errors.Wrap(errors.ErrInvalidInput, "garbage")},
			dest:    &noteMsg{},
			wantErr: errors.ErrInvalidInput,
		},
		"destination of another type": {
			tx:      &singleMsgTx{msg: good},
			dest:    &otherMsg{},
			wantErr: errors.ErrInvalidType,
		},
		"destination is a value": {
			tx:      &singleMsgTx{msg: good},
			dest:    noteMsg{},
			wantErr: errors.ErrHuman,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := LoadMsg(tc.tx, tc.dest)
			if tc.wantErr != nil {
				require.True(t, tc.wantErr.Is(err), "got %+v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, good, tc.dest)
		})
	}
}

func TestGetPath(t *testing.T) {
	assert.Equal(t, "test/note", GetPath(&singleMsgTx{msg: &noteMsg{}}))
	assert.Equal(t, "(missing)", GetPath(&singleMsgTx{}))
	assert.Equal(t, "(missing)", GetPath(&singleMsgTx{msg: &noteMsg{}, err: errors.ErrInvalidMsg}))
}

func TestMetadataCodec(t *testing.T) {
	meta := &Metadata{Schema: 3}
	raw, err := meta.Marshal()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x08, 0x03}, raw)

	var back Metadata
	require.NoError(t, back.Unmarshal(raw))
	assert.Equal(t, *meta, back)

	assert.True(t, errors.ErrInvalidInput.Is(back.Unmarshal([]byte{0x08})))
}

func TestMetadataValidate(t *testing.T) {
	var missing *Metadata
	assert.True(t, errors.ErrEmpty.Is(missing.Validate()))
	assert.True(t, errors.ErrInvalidModel.Is((&Metadata{}).Validate()))
	assert.NoError(t, (&Metadata{Schema: 1}).Validate())

	assert.Nil(t, missing.Copy())
	orig := &Metadata{Schema: 2}
	cpy := orig.Copy()
	cpy.Schema = 5
	assert.EqualValues(t, 2, orig.Schema)
}
