/*
Package app wires the token ledger together into an abci application.

It assembles the operation envelope, the decorator stack, the message
router and the query router on top of a persistent iavl store, so the
same state machine can be driven by a real ordering node or directly
from tests.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	abci "github.com/tendermint/tendermint/abci/types"
	dbm "github.com/tendermint/tendermint/libs/db"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/quorumnet/ledger"
	"github.com/quorumnet/ledger/errors"
	"github.com/quorumnet/ledger/store/iavl"
	"github.com/quorumnet/ledger/x"
	"github.com/quorumnet/ledger/x/author"
	"github.com/quorumnet/ledger/x/escrow"
	"github.com/quorumnet/ledger/x/txlog"
	"github.com/quorumnet/ledger/x/utils"
	"github.com/quorumnet/ledger/x/wallet"
)

// Authenticator returns how this app authenticates operations: the
// identity every envelope was submitted with.
func Authenticator() x.Authenticator {
	return author.Authenticate{}
}

// Chain returns the chain of decorators every operation passes
// through before reaching its handler.
func Chain(auth x.Authenticator) Decorators {
	return ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		author.NewDecorator(),
		// the operation log sits above the savepoint, so the record
		// of a failed operation survives its rollback
		txlog.NewDecorator(auth),
		utils.NewSavepoint().OnCheck().OnDeliver(),
	)
}

// MessageRouter returns a router dispatching to the wallet and escrow
// handlers.
func MessageRouter(auth x.Authenticator) *Router {
	r := NewRouter()
	wallet.RegisterRoutes(r, auth)
	escrow.RegisterRoutes(r, auth, TxDecoder)
	return r
}

// QueryRouter returns a router for all read-only queries this app
// answers.
func QueryRouter() ledger.QueryRouter {
	qr := ledger.NewQueryRouter()
	qr.RegisterAll(
		wallet.RegisterQuery,
		escrow.RegisterQuery,
		txlog.RegisterQuery,
	)
	return qr
}

// Stack wires up the standard router with the standard decorator
// chain.
func Stack() ledger.Handler {
	auth := Authenticator()
	return Chain(auth).WithHandler(MessageRouter(auth))
}

// CommitKVStore returns an initialized KVStore that persists to the
// named path, or an in-memory store when the path is empty.
func CommitKVStore(dbPath string) (ledger.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.MockCommitStore(), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database path: %s", dbPath)
	}
	dir := filepath.Dir(path)
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	db := dbm.NewDB(name, dbm.GoLevelDBBackend, dir)
	return iavl.NewCommitStore(db), nil
}

// Application constructs a basic ABCI application with the given
// arguments.
func Application(name string, h ledger.Handler, tx ledger.TxDecoder,
	dbPath string, debug bool) (BaseApp, error) {

	ctx := context.Background()
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return BaseApp{}, err
	}
	store := NewStoreApp(name, kv, QueryRouter(), ctx)
	return NewBaseApp(store, tx, h, debug), nil
}

// GenerateApp assembles the complete ledger application. An empty
// home keeps all state in memory.
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "ledger.db")
	}

	application, err := Application("ledger", Stack(), TxDecoder, dbPath, debug)
	if err != nil {
		return nil, err
	}

	application.WithInit(Initializer())
	application.WithLogger(logger)
	return application, nil
}
