package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	weave "github.com/iov-one/weave-escrow"
	swapd "github.com/iov-one/weave-escrow/cmd/swapd/app"
	"github.com/iov-one/weave-escrow/commands/server"
	"github.com/iov-one/weave-escrow/x/token"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"
)

func main() {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).
		With("module", "swap")

	root := rootCmd(&logger)
	if err := root.Execute(); err != nil {
		fmt.Printf("Error: %+v\n", err)
		os.Exit(1)
	}
}

// rootCmd builds the command tree. The logger is filtered by the
// log_level flag before any sub command runs.
func rootCmd(logger *log.Logger) *cobra.Command {
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".swapd")

	var filtered log.Logger = &lazyLogger{logger: logger}
	root := &cobra.Command{
		Use:          "swapd",
		Short:        "Token swap escrow node",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opt, err := log.AllowLevel(viper.GetString(server.FlagLogLevel))
			if err != nil {
				return err
			}
			*logger = log.NewFilter(*logger, opt)
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.String(server.FlagHome, defaultHome, "directory to store files under")
	flags.Bool(server.FlagDebug, false, "call stack returned on error")
	flags.String(server.FlagLogLevel, "info", "log level (debug, info, error or none)")
	for _, name := range []string{server.FlagHome, server.FlagDebug, server.FlagLogLevel} {
		if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
	viper.SetEnvPrefix("SWAPD")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	root.AddCommand(
		server.InitCmd(swapd.GenInitOptions, filtered),
		server.StartCmd(swapd.GenerateApp, filtered),
		server.ValidateCmd(&token.Initializer{}, filtered),
		&cobra.Command{
			Use:   "version",
			Short: "Print the app version",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Println(weave.Version())
			},
		},
	)
	return root
}

// lazyLogger forwards to the logger configured when the command runs,
// not the one available when the command tree is built.
type lazyLogger struct {
	logger *log.Logger
}

func (l *lazyLogger) Debug(msg string, keyvals ...interface{}) { (*l.logger).Debug(msg, keyvals...) }
func (l *lazyLogger) Info(msg string, keyvals ...interface{})  { (*l.logger).Info(msg, keyvals...) }
func (l *lazyLogger) Error(msg string, keyvals ...interface{}) { (*l.logger).Error(msg, keyvals...) }
func (l *lazyLogger) With(keyvals ...interface{}) log.Logger {
	return (*l.logger).With(keyvals...)
}
