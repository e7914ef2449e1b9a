package server

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/quorumnet/ledger"
	"github.com/quorumnet/ledger/ledgertest"
)

func TestInitCmd(t *testing.T) {
	home, err := ioutil.TempDir("", "ledger-init")
	require.NoError(t, err)
	defer os.RemoveAll(home)

	key := ledgertest.GenIdentity()
	gen := func(args []string) (json.RawMessage, error) {
		opts := `{"wallets": [{"name": "first", "pub_key": "` +
			key.String() + `", "balance": 700}]}`
		return []byte(opts), nil
	}

	logger := log.NewNopLogger()
	require.NoError(t, InitCmd(gen, logger, home, nil))

	genFile := filepath.Join(home, "config", "genesis.json")
	bz, err := ioutil.ReadFile(genFile)
	require.NoError(t, err)

	var genesis struct {
		ChainID string `json:"chain_id"`
		State   struct {
			Wallets []struct {
				PubKey  ledger.PublicKey `json:"pub_key"`
				Name    string           `json:"name"`
				Balance uint64           `json:"balance"`
			} `json:"wallets"`
		} `json:"app_state"`
	}
	require.NoError(t, json.Unmarshal(bz, &genesis))
	assert.NotEmpty(t, genesis.ChainID)
	require.Len(t, genesis.State.Wallets, 1)
	assert.Equal(t, key, genesis.State.Wallets[0].PubKey)
	assert.Equal(t, "first", genesis.State.Wallets[0].Name)
	assert.Equal(t, uint64(700), genesis.State.Wallets[0].Balance)

	// a second run keeps the chain id but refreshes the app state
	key2 := ledgertest.GenIdentity()
	gen2 := func(args []string) (json.RawMessage, error) {
		opts := `{"wallets": [{"name": "second", "pub_key": "` +
			key2.String() + `", "balance": 1}]}`
		return []byte(opts), nil
	}
	require.NoError(t, InitCmd(gen2, logger, home, nil))

	bz, err = ioutil.ReadFile(genFile)
	require.NoError(t, err)
	chainID := genesis.ChainID
	genesis.State.Wallets = nil
	require.NoError(t, json.Unmarshal(bz, &genesis))
	assert.Equal(t, chainID, genesis.ChainID)
	require.Len(t, genesis.State.Wallets, 1)
	assert.Equal(t, "second", genesis.State.Wallets[0].Name)
}

func TestInitCmdBrokenOptions(t *testing.T) {
	home, err := ioutil.TempDir("", "ledger-init")
	require.NoError(t, err)
	defer os.RemoveAll(home)

	gen := func(args []string) (json.RawMessage, error) {
		return nil, os.ErrInvalid
	}
	err = InitCmd(gen, log.NewNopLogger(), home, nil)
	assert.Error(t, err)
}
