package weave

import (
	"context"
	"regexp"
	"time"

	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Context carries the block data and the logger through decorators and
// handlers. Extensions add their own values, for example the signers
// found by x/sigs.
type Context = context.Context

type ctxKey int

const (
	ctxHeader ctxKey = iota
	ctxHeight
	ctxChainID
	ctxBlockTime
	ctxLogger
)

// DefaultLogger is returned by GetLogger for a context without a logger.
var DefaultLogger = log.NewNopLogger()

var chainIDFormat = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`)

// IsValidChainID tells whether id can name a chain.
func IsValidChainID(id string) bool {
	return chainIDFormat.MatchString(id)
}

// setOnce stores value under key. Block data is written by the app once
// per block and a second write is a programming error.
func setOnce(ctx Context, key ctxKey, value interface{}) Context {
	if ctx.Value(key) != nil {
		panic("block data set twice in one context")
	}
	return context.WithValue(ctx, key, value)
}

// WithHeader stores the block header. It panics if a header is set.
func WithHeader(ctx Context, h abci.Header) Context {
	return setOnce(ctx, ctxHeader, h)
}

func GetHeader(ctx Context) (abci.Header, bool) {
	h, ok := ctx.Value(ctxHeader).(abci.Header)
	return h, ok
}

// WithHeight stores the block height. It panics if a height is set.
func WithHeight(ctx Context, height int64) Context {
	return setOnce(ctx, ctxHeight, height)
}

func GetHeight(ctx Context) (int64, bool) {
	h, ok := ctx.Value(ctxHeight).(int64)
	return h, ok
}

// WithChainID stores the chain id. It panics if an id is set or id is
// not valid.
func WithChainID(ctx Context, id string) Context {
	if !IsValidChainID(id) {
		panic("invalid chain id " + id)
	}
	return setOnce(ctx, ctxChainID, id)
}

// GetChainID panics if the context has no chain id. The app always sets
// one before running any handler.
func GetChainID(ctx Context) string {
	id, ok := ctx.Value(ctxChainID).(string)
	if !ok {
		panic("no chain id in context")
	}
	return id
}

// WithBlockTime stores the block time in UTC.
func WithBlockTime(ctx Context, t time.Time) Context {
	return context.WithValue(ctx, ctxBlockTime, t.UTC())
}

// BlockTime returns false if no block time or a zero time is set.
func BlockTime(ctx Context) (time.Time, bool) {
	t, ok := ctx.Value(ctxBlockTime).(time.Time)
	return t, ok && !t.IsZero()
}

func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, ctxLogger, logger)
}

func GetLogger(ctx Context) log.Logger {
	if logger, ok := ctx.Value(ctxLogger).(log.Logger); ok {
		return logger
	}
	return DefaultLogger
}

// WithLogInfo adds key value pairs to every following log line.
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	return WithLogger(ctx, GetLogger(ctx).With(keyvals...))
}
