package app

import (
	"encoding/json"
	"fmt"
	"testing"

	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/store"
	"github.com/iov-one/weave-escrow/weavetest"
	"github.com/iov-one/weave-escrow/x/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenInitOptions(t *testing.T) {
	addr := weavetest.NewCondition().Address()

	raw, err := GenInitOptions([]string{"AAA", "BBB", addr.String()})
	require.NoError(t, err)

	var opts weave.Options
	require.NoError(t, json.Unmarshal(raw, &opts))
	db := store.MemStore()
	require.NoError(t, (&token.Initializer{}).FromGenesis(opts, db))

	ctrl := token.NewController()
	for i, ticker := range []string{"AAA", "BBB"} {
		tok, err := ctrl.Token(db, ticker)
		require.NoError(t, err)
		assert.Equal(t, addr, tok.MintAuthority)

		acc, err := ctrl.Account(db, weavetest.SequenceID(uint64(i+1)))
		require.NoError(t, err)
		assert.Equal(t, ticker, acc.Ticker)
		assert.Equal(t, addr, acc.Owner)
		assert.EqualValues(t, devBalance, acc.Balance)
	}
}

func TestGenInitOptionsErrors(t *testing.T) {
	addr := weavetest.NewCondition().Address()

	_, err := GenInitOptions([]string{"bad", "BBB", addr.String()})
	assert.True(t, errors.ErrInvalidInput.Is(err), "got %+v", err)

	_, err = GenInitOptions([]string{"AAA", "AAA", addr.String()})
	assert.True(t, errors.ErrInvalidInput.Is(err), "got %+v", err)

	_, err = GenInitOptions([]string{"AAA", "BBB", "zz"})
	assert.Error(t, err)
}

func TestGenerateCoinKey(t *testing.T) {
	addr, keys, err := GenerateCoinKey()
	require.NoError(t, err)
	require.NoError(t, addr.Validate())

	var out struct {
		Path string `json:"path"`
	}
	require.NoError(t, json.Unmarshal([]byte(keys), &out))
	assert.Equal(t, fmt.Sprintf("m/44'/234'/%d'", 0), out.Path)
}
