package server

import (
	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/app"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/store"
	"github.com/spf13/cobra"
	"github.com/tendermint/tendermint/libs/log"
)

// ValidateCmd returns the command that loads every given genesis file
// into a throw away store to ensure the chain can start from it.
func ValidateCmd(ini weave.Initializer, logger log.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <genesis.json>...",
		Short: "Validate the app_state of genesis files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ValidateGenesis(ini, args); err != nil {
				return err
			}
			logger.Info("Genesis valid", "files", len(args))
			return nil
		},
	}
}

// ValidateGenesis returns the first error produced by initializing the
// application state of given genesis files.
func ValidateGenesis(ini weave.Initializer, genesisPaths []string) error {
	for _, path := range genesisPaths {
		if err := validateGenesis(ini, path); err != nil {
			return errors.Wrap(err, path)
		}
	}
	return nil
}

func validateGenesis(ini weave.Initializer, genesisPath string) error {
	gen, err := app.ReadGenesis(genesisPath)
	if err != nil {
		return err
	}
	// The state is thrown away, an in memory store is enough.
	if err := ini.FromGenesis(gen.AppState, store.MemStore()); err != nil {
		return errors.Wrap(err, "cannot initialize from genesis")
	}
	return nil
}
