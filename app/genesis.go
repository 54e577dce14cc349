package app

import (
	"encoding/json"
	"io/ioutil"

	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
)

// Genesis is the part of a tendermint genesis file the application reads.
type Genesis struct {
	ChainID  string        `json:"chain_id"`
	AppState weave.Options `json:"app_state"`
}

// ReadGenesis loads a genesis file.
func ReadGenesis(path string) (Genesis, error) {
	var gen Genesis
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return gen, errors.Wrapf(errors.ErrNotFound, "genesis file: %s", err)
	}
	if err := json.Unmarshal(raw, &gen); err != nil {
		return gen, errors.Wrapf(errors.ErrInvalidInput, "genesis file %s: %s", path, err)
	}
	return gen, nil
}

// ChainInitializers returns an initializer running inits in order. The
// first failure stops it.
func ChainInitializers(inits ...weave.Initializer) weave.Initializer {
	return initializers(inits)
}

type initializers []weave.Initializer

func (all initializers) FromGenesis(opts weave.Options, db weave.KVStore) error {
	for _, init := range all {
		if err := init.FromGenesis(opts, db); err != nil {
			return err
		}
	}
	return nil
}
