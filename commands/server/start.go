package server

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/iov-one/weave-escrow/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags
type AppGenerator func(home string, logger log.Logger, debug bool) (abci.Application, error)

// StartCmd returns the command that runs the abci server until the
// process receives SIGINT or SIGTERM.
func StartCmd(gen AppGenerator, logger log.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Run the abci server",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Generate the app in the proper dir
			app, err := gen(viper.GetString(FlagHome), logger, viper.GetBool(FlagDebug))
			if err != nil {
				return err
			}
			svr, err := StartServer(viper.GetString(flagBind), app, logger)
			if err != nil {
				return err
			}

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
			s := <-sig
			logger.Info("Stopping ABCI app", "signal", s.String())
			return svr.Stop()
		},
	}
	cmd.Flags().String(flagBind, "tcp://localhost:26658", "address server listens on")
	if err := viper.BindPFlag(flagBind, cmd.Flags().Lookup(flagBind)); err != nil {
		panic(err)
	}
	return cmd
}

// StartServer starts a socket abci server for the application. The caller
// is responsible for stopping it.
func StartServer(addr string, app abci.Application, logger log.Logger) (cmn.Service, error) {
	logger.Info("Starting ABCI app", "bind", addr)

	svr, err := server.NewServer(addr, "socket", app)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "cannot create listener: %s", err)
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidState, "cannot start server: %s", err)
	}
	return svr, nil
}
