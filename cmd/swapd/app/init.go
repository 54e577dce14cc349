package app

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"path/filepath"

	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/app"
	"github.com/iov-one/weave-escrow/crypto"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/x/token"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// devBalance is minted into every dev account of the generated genesis.
const devBalance = 1000000

// GenInitOptions will produce some basic options for one rich
// account, to use for dev mode. Two tokens are created, both minted by
// that account.
//
// You can set the tickers and the address with the arguments:
//
//	init [ticker-x] [ticker-y] [hex address]
func GenInitOptions(args []string) (json.RawMessage, error) {
	tickers := []string{"XSWP", "YSWP"}
	for i := 0; i < len(args) && i < 2; i++ {
		if !token.IsTicker(args[i]) {
			return nil, errors.Wrapf(errors.ErrInvalidInput, "invalid ticker %q", args[i])
		}
		tickers[i] = args[i]
	}
	if tickers[0] == tickers[1] {
		return nil, errors.Wrap(errors.ErrInvalidInput, "tickers must differ")
	}

	var addr weave.Address
	if len(args) > 2 {
		if err := addr.UnmarshalJSON([]byte(fmt.Sprintf("%q", args[2]))); err != nil {
			return nil, err
		}
	} else {
		// if no address provided, auto-generate one
		// and print out the keys
		a, keys, err := GenerateCoinKey()
		if err != nil {
			return nil, err
		}
		addr = a
		fmt.Println(keys)
	}

	type genToken struct {
		Ticker        string        `json:"ticker"`
		Name          string        `json:"name"`
		MintAuthority weave.Address `json:"mint_authority"`
	}
	type genAccount struct {
		Owner   weave.Address `json:"owner"`
		Ticker  string        `json:"ticker"`
		Balance uint64        `json:"balance"`
	}
	state := struct {
		Tokens   []genToken   `json:"tokens"`
		Accounts []genAccount `json:"token_accounts"`
	}{}
	for _, t := range tickers {
		state.Tokens = append(state.Tokens, genToken{Ticker: t, Name: t + " dev token", MintAuthority: addr})
		state.Accounts = append(state.Accounts, genAccount{Owner: addr, Ticker: t, Balance: devBalance})
	}
	return json.MarshalIndent(state, "", "  ")
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "swap.db")
	}

	application, err := Application(Name, Stack(), TxDecoder, dbPath, debug)
	if err != nil {
		return nil, err
	}
	application.WithInit(app.ChainInitializers(
		&token.Initializer{},
	))

	// set the logger and return
	application.WithLogger(logger)
	return application, nil
}

type output struct {
	Pubkey *crypto.PublicKey  `json:"pub_key"`
	Secret *crypto.PrivateKey `json:"secret"`
	Seed   string             `json:"seed"`
	Path   string             `json:"path"`
}

// GenerateCoinKey returns the address of a fresh dev key, along with a
// json representation of the keys. The key is derived from a random seed
// under the first dev account path, so it can be recovered from the seed.
func GenerateCoinKey() (weave.Address, string, error) {
	seed := make([]byte, 32)
	if _, err := rand.Read(seed); err != nil {
		return nil, "", errors.Wrapf(errors.ErrInvalidState, "cannot read seed: %s", err)
	}
	path := fmt.Sprintf(crypto.HDPath, 0)
	privKey, err := crypto.DeriveKey(seed, path)
	if err != nil {
		return nil, "", err
	}
	pubKey := privKey.PublicKey()

	out := output{
		Pubkey: pubKey,
		Secret: privKey,
		Seed:   fmt.Sprintf("%X", seed),
		Path:   path,
	}
	keys, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return pubKey.Address(), string(keys), nil
}
