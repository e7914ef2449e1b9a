package server

import (
	"flag"
	"fmt"

	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagBind  = "bind"
	flagDebug = "debug"
)

func parseStartFlags(args []string) (string, bool, error) {
	var addr string
	var debug bool

	startFlags := flag.NewFlagSet("start", flag.ExitOnError)
	startFlags.StringVar(&addr, flagBind, "tcp://localhost:46658", "address server listens on")
	startFlags.BoolVar(&debug, flagDebug, false, "call stack returned on error")
	err := startFlags.Parse(args)
	return addr, debug, err
}

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags
type AppGenerator func(string, log.Logger, bool) (abci.Application, error)

// StartCmd initializes the application, then serves it over a
// tendermint socket until interrupted.
func StartCmd(gen AppGenerator, logger log.Logger, home string, args []string) error {
	addr, debug, err := parseStartFlags(args)
	if err != nil {
		return err
	}

	// Generate the app in the proper dir
	app, err := gen(home, logger, debug)
	if err != nil {
		return err
	}

	logger.Info("Starting ABCI app", "bind", addr)

	svr, err := server.NewServer(addr, "socket", app)
	if err != nil {
		return fmt.Errorf("error creating listener: %v", err)
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return err
	}

	// Wait forever
	cmn.TrapSignal(logger, func() {
		// Cleanup
		svr.Stop()
	})
	return nil
}
