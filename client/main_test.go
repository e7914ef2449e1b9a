package client

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/tendermint/tendermint/libs/log"
	nm "github.com/tendermint/tendermint/node"
	rpctest "github.com/tendermint/tendermint/rpc/test"
	tmtypes "github.com/tendermint/tendermint/types"

	"github.com/quorumnet/ledger/app"
	"github.com/quorumnet/ledger/crypto"
)

// useful values for test cases
var (
	node    *nm.Node
	faucet  crypto.KeyPair
	chainID string
)

const faucetBalance = 1000000

func TestMain(m *testing.M) {
	faucet = crypto.GenKeyPair()

	config := rpctest.GetConfig()
	config.Moniker = "LedgerClientTest"
	// ensure tx hashes are indexed so WatchTx can find them
	config.TxIndex.IndexTags = ""
	config.TxIndex.IndexAllTags = true
	chainID = config.ChainID()

	// seed the genesis file with one funded wallet before the chain starts
	if err := fundGenesis(config.GenesisFile()); err != nil {
		fmt.Printf("Failed to write genesis: %s\n", err)
		os.Exit(1)
	}

	ledgerApp, err := app.GenerateApp("", log.NewNopLogger(), true)
	if err != nil {
		fmt.Printf("Failed to build app: %s\n", err)
		os.Exit(1)
	}

	fmt.Println("Starting tendermint...")
	node = rpctest.StartTendermint(ledgerApp)

	// make sure tendermint is good to go before tests,
	// wait for one block to come in
	fmt.Println("Wait for first block...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err = NewLocalClient(node).WaitForNextBlock(ctx)

	var code int
	if err == nil {
		code = m.Run()
	} else {
		fmt.Printf("Failed to start tendermint: %s\n", err)
		code = 1
	}

	node.Stop()
	node.Wait()
	os.Exit(code)
}

func fundGenesis(genFile string) error {
	doc, err := tmtypes.GenesisDocFromFile(genFile)
	if err != nil {
		return err
	}
	opts := fmt.Sprintf(`{"wallets": [{"name": "faucet", "pub_key": %q, "balance": %d}]}`,
		faucet.PublicKey().String(), faucetBalance)
	doc.AppState = json.RawMessage(opts)
	return doc.SaveAs(genFile)
}

func timeoutCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 15*time.Second)
}
