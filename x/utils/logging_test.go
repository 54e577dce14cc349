package utils

import (
	"bytes"
	"context"
	"testing"

	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/store"
	"github.com/iov-one/weave-escrow/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	ctx := weave.WithLogger(context.Background(), log.NewTMLogger(&buf))
	db := store.MemStore()
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "swap/initialize"}}

	h := &weavetest.Handler{
		DeliverResult: weave.DeliverResult{Log: "escrow created"},
	}
	_, err := NewLogging().Deliver(ctx, db, tx, h)
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "escrow created")
	assert.Contains(t, buf.String(), "path=swap/initialize")

	buf.Reset()
	h.DeliverErr = errors.ErrUnauthorized
	_, err = NewLogging().Deliver(ctx, db, tx, h)
	assert.True(t, errors.ErrUnauthorized.Is(err))
	assert.Contains(t, buf.String(), "unauthorized")

	// Check logs at debug level, filtered out here.
	buf.Reset()
	filtered := weave.WithLogger(context.Background(), log.NewFilter(log.NewTMLogger(&buf), log.AllowInfo()))
	_, err = NewLogging().Check(filtered, db, tx, &weavetest.Handler{})
	assert.NoError(t, err)
	assert.Empty(t, buf.String())
}
