package weave

import (
	"testing"

	"github.com/iov-one/weave-escrow/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/common"
)

func TestDeliverResponse(t *testing.T) {
	res := &DeliverResult{
		Data: []byte{0, 0, 0, 0, 0, 0, 0, 1},
		Log:  "escrow created",
		Tags: []common.KVPair{Tag("escrow", []byte("0000000000000001"))},
	}
	ok := DeliverResponse(res, nil, false)
	assert.Equal(t, uint32(errors.SuccessABCICode), ok.Code)
	assert.Equal(t, res.Data, ok.Data)
	assert.Equal(t, "escrow created", ok.Log)
	require.Len(t, ok.Tags, 1)
	assert.Equal(t, "escrow", string(ok.Tags[0].Key))

	failed := DeliverResponse(nil, errors.Wrap(errors.ErrInsufficientAmount, "deposit"), false)
	assert.Equal(t, uint32(12), failed.Code)
	assert.Equal(t, "cannot deliver tx: deposit: insufficient amount", failed.Log)
	assert.Empty(t, failed.Tags)

	missing := DeliverResponse(nil, nil, false)
	assert.Equal(t, errors.ErrHuman.ABCICode(), missing.Code)
}

func TestCheckResponse(t *testing.T) {
	ok := CheckResponse(&CheckResult{GasAllocated: 300}, nil, false)
	assert.Equal(t, uint32(errors.SuccessABCICode), ok.Code)
	assert.EqualValues(t, 300, ok.GasWanted)

	failed := CheckResponse(nil, errors.Wrap(errors.ErrPanic, "nil map"), false)
	assert.Equal(t, errors.ErrPanic.ABCICode(), failed.Code)
	assert.Equal(t, "cannot check tx: panic", failed.Log)
}
