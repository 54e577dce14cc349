/*
Package app links together all the various components
to construct the swap daemon application.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/app"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/orm"
	"github.com/iov-one/weave-escrow/store/iavl"
	"github.com/iov-one/weave-escrow/x"
	"github.com/iov-one/weave-escrow/x/sigs"
	"github.com/iov-one/weave-escrow/x/swap"
	"github.com/iov-one/weave-escrow/x/token"
	"github.com/iov-one/weave-escrow/x/utils"
)

// Name is reported by the abci Info call.
const Name = "swapd"

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication,
// logging, and recovery
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, bad tx will increment nonce
		// even if the message fails
		utils.NewSavepoint().OnDeliver(),
		utils.NewActionTagger(),
	)
}

// Router returns a router dispatching to the token ledger and the swap
// escrow handlers.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	ctrl := token.NewController()
	token.RegisterRoutes(r, authFn, ctrl)
	swap.RegisterRoutes(r, authFn, ctrl)
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/tokens", "/tokenaccounts", "/escrows",
// "/auth" and "/"
func QueryRouter() weave.QueryRouter {
	r := weave.NewQueryRouter()
	for _, register := range []func(weave.QueryRouter){
		token.RegisterQuery,
		swap.RegisterQuery,
		sigs.RegisterQuery,
		orm.RegisterQuery,
	} {
		register(r)
	}
	return r
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack() weave.Handler {
	authFn := Authenticator()
	return Chain().WithHandler(Router(authFn))
}

// Application constructs a basic ABCI application with
// the given arguments. If you are not sure what to use
// for the Handler, just use Stack().
func Application(name string, h weave.Handler,
	tx weave.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {

	ctx := context.Background()
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store := app.NewStoreApp(name, kv, QueryRouter(), ctx)
	base := app.NewBaseApp(store, tx, h, debug)
	return base, nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (weave.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.NewCommitStore("", ""), nil
	}

	// Expand the path fully
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "invalid database name %q: %s", dbPath, err)
	}

	// Some external calls accidently add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	// Split the database name into it's components (dir, name)
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name), nil
}
