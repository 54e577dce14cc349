package swap

import (
	"context"
	"testing"

	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/app"
	"github.com/iov-one/weave-escrow/store"
	"github.com/iov-one/weave-escrow/weavetest"
	"github.com/iov-one/weave-escrow/x/token"
	"github.com/iov-one/weave-escrow/x/utils"
	"github.com/stretchr/testify/require"
)

// market is a ledger with two tokens and the accounts of two parties.
// The initializer owns 500 XTK and an empty YTK account, the taker owns
// 1000 YTK and an empty XTK account.
type market struct {
	db   weave.CacheableKVStore
	ctrl token.Controller
	auth *weavetest.CtxAuth
	h    weave.Handler

	initializer weave.Condition
	taker       weave.Condition

	initializerX []byte
	initializerY []byte
	takerX       []byte
	takerY       []byte
}

func newMarket(t testing.TB, ledger func(token.Controller) token.Ledger) *market {
	t.Helper()

	m := &market{
		db:          store.MemStore(),
		ctrl:        token.NewController(),
		auth:        &weavetest.CtxAuth{Key: "swap"},
		initializer: weavetest.NewCondition(),
		taker:       weavetest.NewCondition(),
	}
	minter := weavetest.NewCondition().Address()
	for _, ticker := range []string{"XTK", "YTK"} {
		err := m.ctrl.CreateToken(m.db, &token.Token{
			Metadata:      &weave.Metadata{Schema: 1},
			Ticker:        ticker,
			Name:          "swap test " + ticker,
			MintAuthority: minter,
		})
		require.NoError(t, err)
	}
	open := func(owner weave.Condition, ticker string, balance uint64) []byte {
		id, err := m.ctrl.CreateAccount(m.db, owner.Address(), ticker)
		require.NoError(t, err)
		if balance > 0 {
			require.NoError(t, m.ctrl.Mint(m.db, id, balance, minter))
		}
		return id
	}
	m.initializerX = open(m.initializer, "XTK", 500)
	m.initializerY = open(m.initializer, "YTK", 0)
	m.takerX = open(m.taker, "XTK", 0)
	m.takerY = open(m.taker, "YTK", 1000)

	var l token.Ledger = m.ctrl
	if ledger != nil {
		l = ledger(m.ctrl)
	}
	rt := app.NewRouter()
	token.RegisterRoutes(rt, m.auth, m.ctrl)
	RegisterRoutes(rt, m.auth, l)
	m.h = app.ChainDecorators(
		utils.NewRecovery(),
		utils.NewSavepoint().OnCheck(),
		utils.NewSavepoint().OnDeliver(),
		utils.NewActionTagger(),
	).WithHandler(rt)
	return m
}

// run checks the message and delivers it if the check passed, the same
// way a node processes a transaction.
func (m *market) run(msg weave.Msg, signers ...weave.Condition) (*weave.DeliverResult, error) {
	ctx := m.auth.SetConditions(context.Background(), signers...)
	tx := &weavetest.Tx{Msg: msg}
	if _, err := m.h.Check(ctx, m.db.CacheWrap(), tx); err != nil {
		return nil, err
	}
	return m.h.Deliver(ctx, m.db, tx)
}

func (m *market) initialize(xAmount, yAmount uint64) *InitializeMsg {
	return &InitializeMsg{
		Metadata:            &weave.Metadata{Schema: 1},
		Initializer:         m.initializer.Address(),
		InitializerXAccount: m.initializerX,
		InitializerYAccount: m.initializerY,
		XAmount:             xAmount,
		YAmount:             yAmount,
	}
}

func (m *market) exchange(escrowID []byte) *ExchangeMsg {
	return &ExchangeMsg{
		Metadata:            &weave.Metadata{Schema: 1},
		EscrowID:            escrowID,
		Taker:               m.taker.Address(),
		TakerXAccount:       m.takerX,
		TakerYAccount:       m.takerY,
		InitializerXAccount: m.initializerX,
		InitializerYAccount: m.initializerY,
		Initializer:         m.initializer.Address(),
		Custody:             CustodyAuthority().Address,
	}
}

func (m *market) cancel(escrowID []byte) *CancelMsg {
	return &CancelMsg{
		Metadata:            &weave.Metadata{Schema: 1},
		EscrowID:            escrowID,
		Initializer:         m.initializer.Address(),
		InitializerXAccount: m.initializerX,
		Custody:             CustodyAuthority().Address,
	}
}

func (m *market) account(t testing.TB, id []byte) *token.Account {
	t.Helper()
	a, err := m.ctrl.Account(m.db, id)
	require.NoError(t, err)
	return a
}

// balances returns the balances of the initializer X, initializer Y, taker
// X and taker Y accounts.
func (m *market) balances(t testing.TB) [4]uint64 {
	t.Helper()
	return [4]uint64{
		m.account(t, m.initializerX).Balance,
		m.account(t, m.initializerY).Balance,
		m.account(t, m.takerX).Balance,
		m.account(t, m.takerY).Balance,
	}
}

func (m *market) escrowExists(t testing.TB, id []byte) bool {
	t.Helper()
	return NewBucket().Has(m.db, id) == nil
}
