package weave

import (
	"encoding/json"

	"github.com/iov-one/weave-escrow/errors"
)

// Checker decides whether a transaction may enter the mempool. It may use
// the store but its writes are never persisted.
type Checker interface {
	Check(ctx Context, db KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer executes a transaction included in a block.
type Deliverer interface {
	Deliver(ctx Context, db KVStore, tx Tx) (*DeliverResult, error)
}

// Handler processes the messages of one route, for example token
// transfers or escrow exchanges.
type Handler interface {
	Checker
	Deliverer
}

// Decorator runs around the handler of every transaction. Signature
// checks and savepoints are decorators.
type Decorator interface {
	Check(ctx Context, db KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, db KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry binds message paths to handlers.
type Registry interface {
	Handle(path string, h Handler)
}

// Options is the app_state section of the genesis file, one raw JSON
// document per extension.
type Options map[string]json.RawMessage

// ReadOptions decodes the document stored under key into dest. A missing
// key leaves dest untouched.
func (o Options) ReadOptions(key string, dest interface{}) error {
	raw, ok := o[key]
	if !ok || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "genesis %q: %s", key, err)
	}
	return nil
}

// Initializer loads the genesis state of an extension.
type Initializer interface {
	FromGenesis(opts Options, db KVStore) error
}
