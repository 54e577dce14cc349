package app

import (
	"encoding/json"
	"fmt"
	"strings"

	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp implements the state related part of abci.Application: info,
// queries, genesis, blocks and commits. BaseApp embeds it to add
// transactions.
//
// The ABCI calls it implements carry no user input, so a failure there
// is a broken node and panics.
type StoreApp struct {
	name    string
	state   *state
	queries weave.QueryRouter
	init    weave.Initializer
	logger  log.Logger

	// chainID is empty until the genesis is loaded.
	chainID string
	// base holds what is valid for the whole run of the app, block
	// extends it with the current block header.
	base  weave.Context
	block weave.Context
}

// NewStoreApp loads the latest committed state of db. A chain id stored
// there by an earlier run is restored.
func NewStoreApp(name string, db weave.CommitKVStore, queries weave.QueryRouter, ctx weave.Context) *StoreApp {
	s := &StoreApp{
		name:    name,
		state:   newState(db),
		queries: queries,
		base:    ctx,
	}
	s.WithLogger(log.NewNopLogger())
	if id := string(s.DeliverStore().Get(chainIDKey)); id != "" {
		s.chainID = id
		s.base = weave.WithChainID(s.base, id)
	}
	s.block = weave.WithHeight(s.base, s.state.latest().Version)
	return s
}

// WithInit sets the initializer InitChain loads the genesis with.
func (s *StoreApp) WithInit(init weave.Initializer) *StoreApp {
	s.init = init
	return s
}

// WithLogger sets the logger of the app and of every handler context.
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.logger = logger
	s.base = weave.WithLogger(s.base, logger)
	return s
}

func (s *StoreApp) Logger() log.Logger { return s.logger }

func (s *StoreApp) GetChainID() string { return s.chainID }

// BlockContext is the context of the block being processed.
func (s *StoreApp) BlockContext() weave.Context { return s.block }

// DeliverStore is the cache delivered transactions write to.
func (s *StoreApp) DeliverStore() weave.CacheableKVStore { return s.state.deliver }

// CheckStore is the cache checked transactions write to. It is dropped on
// every commit.
func (s *StoreApp) CheckStore() weave.CacheableKVStore { return s.state.check }

func (s *StoreApp) Info(abci.RequestInfo) abci.ResponseInfo {
	id := s.state.latest()
	s.logger.Info("Info synced", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseInfo{
		Data:             s.name,
		Version:          weave.Version(),
		LastBlockHeight:  id.Version,
		LastBlockAppHash: id.Hash,
	}
}

func (s *StoreApp) SetOption(abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "not supported"}
}

// InitChain stores the chain id and loads the app_state of the genesis.
// It happens once in the life of a chain.
func (s *StoreApp) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	if err := s.loadAppState(req.ChainId, req.AppStateBytes); err != nil {
		panic(err)
	}
	return abci.ResponseInitChain{}
}

func (s *StoreApp) loadAppState(chainID string, raw []byte) error {
	if s.chainID != "" {
		return errors.Wrapf(errors.ErrInvalidState, "chain %q is already initialized", s.chainID)
	}
	if len(raw) == 0 {
		return errors.Wrap(errors.ErrEmpty, "genesis without app_state")
	}
	var opts weave.Options
	if err := json.Unmarshal(raw, &opts); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "app_state: %s", err)
	}
	if err := saveChainID(s.DeliverStore(), chainID); err != nil {
		return err
	}
	s.chainID = chainID
	s.base = weave.WithChainID(s.base, chainID)
	if s.init == nil {
		return nil
	}
	return s.init.FromGenesis(opts, s.DeliverStore())
}

func (s *StoreApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	ctx := weave.WithHeader(s.base, req.Header)
	ctx = weave.WithHeight(ctx, req.Header.Height)
	s.block = weave.WithBlockTime(ctx, req.Header.Time)
	return abci.ResponseBeginBlock{}
}

// EndBlock never changes the validator set.
func (s *StoreApp) EndBlock(abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}

func (s *StoreApp) Commit() abci.ResponseCommit {
	id := s.state.commit()
	s.logger.Debug("Commit synced", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseCommit{Data: id.Hash}
}

/*
Query reads the committed state. The path selects a query handler:
"/" for raw keys, "/<bucket>" or "/<bucket>/<index>". A "?prefix" suffix
turns a key lookup into a prefix scan.

Key and Value of the response are ResultSets of the same length, holding
the keys and the values of the matches.
*/
func (s *StoreApp) Query(req abci.RequestQuery) abci.ResponseQuery {
	path, mod := req.Path, ""
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path, mod = path[:i], path[i+1:]
	}
	h := s.queries.Handler(path)
	if h == nil {
		return queryFailure(errors.Wrapf(errors.ErrNotFound, "query path %q", req.Path))
	}

	id := s.state.latest()
	models, err := h.Query(s.state.committed.CacheWrap(), mod, req.Data)
	if err != nil {
		return queryFailure(err)
	}
	keys, values, err := encodeResults(models)
	if err != nil {
		return queryFailure(err)
	}
	return abci.ResponseQuery{Height: id.Version, Key: keys, Value: values}
}

func queryFailure(err error) abci.ResponseQuery {
	code, log := errors.ABCIInfo(err, false)
	return abci.ResponseQuery{Code: code, Log: log}
}
