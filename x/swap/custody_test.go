package swap

import (
	"testing"

	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveAuthority(t *testing.T) {
	a := DeriveAuthority(CustodySeed, ProgramName)
	b := DeriveAuthority(CustodySeed, ProgramName)
	assert.Equal(t, a, b)
	assert.Equal(t, a, CustodyAuthority())
	require.NoError(t, a.Address.Validate())
	assert.Equal(t, a.Condition.Address(), a.Address)

	assert.False(t, a.Owns(DeriveAuthority("another seed", ProgramName).Address))
	assert.False(t, a.Owns(DeriveAuthority(CustodySeed, "other").Address))
	assert.False(t, a.Owns(nil))

	// a key can never produce the custody address
	for i := 0; i < 10; i++ {
		assert.False(t, a.Owns(weavetest.NewCondition().Address()))
	}
}

func TestIsProgramCondition(t *testing.T) {
	cases := map[string]struct {
		cond    weave.Condition
		wantErr *errors.Error
	}{
		"custody": {
			cond: CustodyAuthority().Condition,
		},
		"any seed of the program": {
			cond: DeriveAuthority("foo", ProgramName).Condition,
		},
		"other program": {
			cond:    DeriveAuthority(CustodySeed, "other").Condition,
			wantErr: errors.ErrUnauthorized,
		},
		"signature": {
			cond:    weavetest.NewCondition(),
			wantErr: errors.ErrUnauthorized,
		},
		"other type of the program": {
			cond:    weave.NewCondition(ProgramName, "vault", []byte(CustodySeed)),
			wantErr: errors.ErrUnauthorized,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := IsProgramCondition(tc.cond, ProgramName)
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, tc.wantErr.Is(err), "got %+v", err)
		})
	}
}
