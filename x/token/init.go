package token

import (
	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
)

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ weave.Initializer = (*Initializer)(nil)

// FromGenesis registers all tokens from the "tokens" section and then
// opens the accounts listed in the "token_accounts" section. Accounts
// receive their ids from the account sequence, in the order they are
// declared.
func (*Initializer) FromGenesis(opts weave.Options, db weave.KVStore) error {
	var tokens []struct {
		Ticker        string        `json:"ticker"`
		Name          string        `json:"name"`
		MintAuthority weave.Address `json:"mint_authority"`
	}
	if err := opts.ReadOptions("tokens", &tokens); err != nil {
		return err
	}
	var accounts []struct {
		Owner   weave.Address `json:"owner"`
		Ticker  string        `json:"ticker"`
		Balance uint64        `json:"balance"`
	}
	if err := opts.ReadOptions("token_accounts", &accounts); err != nil {
		return err
	}

	ctrl := NewController()
	for i, t := range tokens {
		token := Token{
			Metadata:      &weave.Metadata{Schema: 1},
			Ticker:        t.Ticker,
			Name:          t.Name,
			MintAuthority: t.MintAuthority,
		}
		if err := token.Validate(); err != nil {
			return errors.Wrapf(err, "token #%d", i)
		}
		if err := ctrl.CreateToken(db, &token); err != nil {
			return errors.Wrapf(err, "token #%d", i)
		}
	}
	for i, a := range accounts {
		id, err := ctrl.CreateAccount(db, a.Owner, a.Ticker)
		if err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
		if a.Balance == 0 {
			continue
		}
		t, err := ctrl.Token(db, a.Ticker)
		if err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
		if err := ctrl.Mint(db, id, a.Balance, t.MintAuthority); err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
	}
	return nil
}
