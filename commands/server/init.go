package server

import (
	"encoding/json"
	"io/ioutil"
	"path/filepath"

	"github.com/iov-one/weave-escrow/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"
)

const appStateKey = "app_state"

// GenOptions can parse command-line and flag to
// generate default app_state for the genesis file.
// This is application-specific
type GenOptions func(args []string) (json.RawMessage, error)

// genesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type genesisDoc map[string]json.RawMessage

// InitCmd returns the command that writes the app_state into the genesis
// file created by `tendermint init` in the home directory.
func InitCmd(gen GenOptions, logger log.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [args...]",
		Short: "Initialize app options in genesis file",
		RunE: func(cmd *cobra.Command, args []string) error {
			home := viper.GetString(FlagHome)
			return InitGenesis(gen, logger, home, viper.GetBool(flagForce), args)
		},
	}
	cmd.Flags().Bool(flagForce, false, "overwrite an existing app_state")
	if err := viper.BindPFlag(flagForce, cmd.Flags().Lookup(flagForce)); err != nil {
		panic(err)
	}
	return cmd
}

// InitGenesis sets the app_state of the genesis file found in the home
// directory to the output of gen. An existing app_state is kept unless
// force is set.
func InitGenesis(gen GenOptions, logger log.Logger, home string, force bool, args []string) error {
	genFile := filepath.Join(home, "config", "genesis.json")

	bz, err := ioutil.ReadFile(genFile)
	if err != nil {
		return errors.Wrap(errors.ErrNotFound, err.Error())
	}
	var doc genesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "cannot parse %s: %s", genFile, err)
	}
	if state, ok := doc[appStateKey]; ok && len(state) > 0 && string(state) != "null" && !force {
		return errors.Wrapf(errors.ErrDuplicate, "%s already contains %s", genFile, appStateKey)
	}

	options, err := gen(args)
	if err != nil {
		return errors.Wrap(err, "cannot generate app_state")
	}
	doc[appStateKey] = options

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	if err := ioutil.WriteFile(genFile, out, 0600); err != nil {
		return errors.Wrap(errors.ErrInvalidState, err.Error())
	}
	logger.Info("App state written", "path", genFile)
	return nil
}
