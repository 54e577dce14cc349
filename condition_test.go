package weave

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/weave-escrow/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCondition(t *testing.T) {
	cases := map[string]struct {
		cond     Condition
		wantErr  *errors.Error
		wantExt  string
		wantType string
		wantData []byte
	}{
		"key holder": {
			cond:     NewCondition("sigs", "ed25519", []byte{0xca, 0xfe}),
			wantExt:  "sigs",
			wantType: "ed25519",
			wantData: []byte{0xca, 0xfe},
		},
		"swap custody": {
			cond:     NewCondition("swap", "custody", []byte("escrow_pda_seed")),
			wantExt:  "swap",
			wantType: "custody",
			wantData: []byte("escrow_pda_seed"),
		},
		"binary data with a newline": {
			cond:     NewCondition("swap", "custody", []byte{'\n', 0}),
			wantExt:  "swap",
			wantType: "custody",
			wantData: []byte{'\n', 0},
		},
		"extension of two characters": {
			cond:    NewCondition("sw", "custody", []byte("seed")),
			wantErr: errors.ErrInvalidInput,
		},
		"no data": {
			cond:    NewCondition("swap", "custody", nil),
			wantErr: errors.ErrInvalidInput,
		},
		"nil": {
			cond:    nil,
			wantErr: errors.ErrInvalidInput,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			ext, typ, data, err := tc.cond.Parse()
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "got %v", err)
				assert.True(t, tc.wantErr.Is(tc.cond.Validate()))
				return
			}
			require.NoError(t, err)
			require.NoError(t, tc.cond.Validate())
			assert.Equal(t, tc.wantExt, ext)
			assert.Equal(t, tc.wantType, typ)
			assert.Equal(t, tc.wantData, data)
		})
	}
}

func TestConditionControlsOneAddress(t *testing.T) {
	custody := NewCondition("swap", "custody", []byte("escrow_pda_seed"))
	again := NewCondition("swap", "custody", []byte("escrow_pda_seed"))
	other := NewCondition("swap", "custody", []byte("other_seed"))

	require.True(t, custody.Equals(again))
	assert.Equal(t, custody.Address(), again.Address())
	assert.NotEqual(t, custody.Address(), other.Address())
	assert.NoError(t, custody.Address().Validate())
}

func TestConditionJSON(t *testing.T) {
	cond := NewCondition("swap", "custody", []byte{0x0a, 0xbc})

	raw, err := json.Marshal(cond)
	require.NoError(t, err)
	assert.JSONEq(t, `"swap/custody/0ABC"`, string(raw))

	var back Condition
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, cond, back)

	raw, err = json.Marshal(Condition(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `""`, string(raw))

	var bad Condition
	assert.True(t, errors.ErrInvalidInput.Is(json.Unmarshal([]byte(`"swap/custody"`), &bad)))
	assert.True(t, errors.ErrInvalidInput.Is(json.Unmarshal([]byte(`"swap/custody/zz"`), &bad)))
}
