package weave

import (
	"github.com/iov-one/weave-escrow/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

// CheckResult is what a handler reports for a transaction that may enter
// the mempool. Failures are always returned as an error instead.
type CheckResult struct {
	Data []byte
	Log  string
	// GasAllocated is the cost of the transaction in gas units.
	GasAllocated int64
	// GasPayment is the cost charged for verifying the transaction
	// signatures.
	GasPayment int64
}

// DeliverResult is what a handler reports for a transaction that changed
// the state. Data usually carries the key of a created entity, for example
// the id of a new escrow.
type DeliverResult struct {
	Data []byte
	Log  string
	// Tags are indexed by tendermint and let clients look up all
	// transactions that touched an entity.
	Tags    []common.KVPair
	GasUsed int64
}

// Tag builds a transaction tag.
func Tag(key string, value []byte) common.KVPair {
	return common.KVPair{Key: []byte(key), Value: value}
}

// CheckResponse converts the outcome of a check into its ABCI form.
func CheckResponse(res *CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err != nil || res == nil {
		code, log := failure("check", err, debug)
		return abci.ResponseCheckTx{Code: code, Log: log}
	}
	return abci.ResponseCheckTx{
		Data:      res.Data,
		Log:       res.Log,
		GasWanted: res.GasAllocated,
	}
}

// DeliverResponse converts the outcome of a delivery into its ABCI form.
func DeliverResponse(res *DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	if err != nil || res == nil {
		code, log := failure("deliver", err, debug)
		return abci.ResponseDeliverTx{Code: code, Log: log}
	}
	return abci.ResponseDeliverTx{
		Data:    res.Data,
		Log:     res.Log,
		Tags:    res.Tags,
		GasUsed: res.GasUsed,
	}
}

func failure(stage string, err error, debug bool) (uint32, string) {
	if err == nil {
		err = errors.Wrap(errors.ErrHuman, "handler returned no result")
	}
	code, log := errors.ABCIInfo(err, debug)
	return code, "cannot " + stage + " tx: " + log
}
