package token

import (
	"encoding/json"
	"fmt"
	"testing"

	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/store"
	"github.com/iov-one/weave-escrow/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenesis(t *testing.T) {
	minter := weavetest.NewCondition().Address()
	alice := weavetest.NewCondition().Address()

	genesis := fmt.Sprintf(`{
		"tokens": [
			{"ticker": "XTK", "name": "X token", "mint_authority": "%s"},
			{"ticker": "YTK", "name": "Y token", "mint_authority": "%s"}
		],
		"token_accounts": [
			{"owner": "%s", "ticker": "XTK", "balance": 500},
			{"owner": "%s", "ticker": "YTK"}
		]
	}`, minter, minter, alice, alice)

	var opts weave.Options
	require.NoError(t, json.Unmarshal([]byte(genesis), &opts))

	db := store.MemStore()
	var ini Initializer
	require.NoError(t, ini.FromGenesis(opts, db))

	ctrl := NewController()
	tok, err := ctrl.Token(db, "YTK")
	require.NoError(t, err)
	assert.Equal(t, "Y token", tok.Name)
	assert.Equal(t, minter, tok.MintAuthority)

	x, err := ctrl.Account(db, weavetest.SequenceID(1))
	require.NoError(t, err)
	assert.Equal(t, alice, x.Owner)
	assert.Equal(t, "XTK", x.Ticker)
	assert.EqualValues(t, 500, x.Balance)

	y, err := ctrl.Account(db, weavetest.SequenceID(2))
	require.NoError(t, err)
	assert.Equal(t, "YTK", y.Ticker)
	assert.EqualValues(t, 0, y.Balance)

	qr := weave.NewQueryRouter()
	RegisterQuery(qr)
	owned, err := qr.Handler("/tokenaccounts/owner").Query(db, weave.KeyQueryMod, alice)
	require.NoError(t, err)
	require.Len(t, owned, 2)
	assert.Equal(t, append([]byte("tokacct:"), weavetest.SequenceID(1)...), owned[0].Key)
	assert.Equal(t, append([]byte("tokacct:"), weavetest.SequenceID(2)...), owned[1].Key)
}

func TestGenesisErrors(t *testing.T) {
	minter := weavetest.NewCondition().Address()

	cases := map[string]struct {
		genesis string
		wantErr *errors.Error
	}{
		"invalid ticker": {
			genesis: fmt.Sprintf(`{"tokens": [{"ticker": "x", "name": "X token", "mint_authority": "%s"}]}`, minter),
			wantErr: errors.ErrInvalidInput,
		},
		"duplicated token": {
			genesis: fmt.Sprintf(`{"tokens": [
				{"ticker": "XTK", "name": "X token", "mint_authority": "%s"},
				{"ticker": "XTK", "name": "X token", "mint_authority": "%s"}
			]}`, minter, minter),
			wantErr: errors.ErrDuplicate,
		},
		"account of unknown token": {
			genesis: fmt.Sprintf(`{"token_accounts": [{"owner": "%s", "ticker": "XTK", "balance": 1}]}`, minter),
			wantErr: errors.ErrNotFound,
		},
		"malformed section": {
			genesis: `{"tokens": {"ticker": "XTK"}}`,
			wantErr: errors.ErrInvalidInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts weave.Options
			require.NoError(t, json.Unmarshal([]byte(tc.genesis), &opts))
			var ini Initializer
			err := ini.FromGenesis(opts, store.MemStore())
			assert.True(t, tc.wantErr.Is(err), "got %+v", err)
		})
	}
}
