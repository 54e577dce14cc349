package server

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

func TestStartServer(t *testing.T) {
	const addr = "127.0.0.1:46159"
	logger := log.NewNopLogger()

	svr, err := StartServer("tcp://"+addr, abci.NewBaseApplication(), logger)
	require.NoError(t, err)
	require.True(t, svr.IsRunning())

	conn, err := net.DialTimeout("tcp", addr, time.Second)
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	require.NoError(t, svr.Stop())
	require.False(t, svr.IsRunning())
}
