package app

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/quorumnet/ledger"
	"github.com/quorumnet/ledger/crypto"
	"github.com/quorumnet/ledger/errors"
	"github.com/quorumnet/ledger/x/wallet"
)

// default balance credited to the genesis account by the init command
const genesisBalance uint64 = 123456789

// GenInitOptions returns an app_state fragment for the init command.
//
// Arguments are [pubkey-hex [balance]]. Without a key, a fresh one is
// generated and its private seed printed, so the operator can take
// ownership of the genesis account.
func GenInitOptions(args []string) (json.RawMessage, error) {
	var key ledger.PublicKey
	if len(args) > 0 {
		bz, err := hex.DecodeString(strings.ToLower(args[0]))
		if err != nil {
			return nil, errors.Wrap(errors.ErrInput, err.Error())
		}
		key = bz
	} else {
		pair := crypto.GenKeyPair()
		key = pair.PublicKey()
		fmt.Printf("genesis account seed: %s\n", pair.SeedHex())
	}
	if err := key.Validate(); err != nil {
		return nil, err
	}

	balance := genesisBalance
	if len(args) > 1 {
		var err error
		balance, err = strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrInput, err.Error())
		}
	}

	opts := fmt.Sprintf(`{
  "wallets": [
    {"name": "genesis", "pub_key": %q, "balance": %d}
  ]
}`, key.String(), balance)
	return []byte(opts), nil
}

// Initializer returns the genesis initializer of all extensions this
// app is built from.
func Initializer() ledger.Initializer {
	return ChainInitializers(
		&wallet.Initializer{},
	)
}

// InlineApp builds the application above an already open store. Used
// by tooling that replays blocks against a rolled back database.
func InlineApp(kv ledger.CommitKVStore, logger log.Logger, debug bool) abci.Application {
	store := NewStoreApp("ledger", kv, QueryRouter(), context.Background())
	store.WithInit(Initializer())
	store.WithLogger(logger)
	return NewBaseApp(store, TxDecoder, Stack(), debug)
}
