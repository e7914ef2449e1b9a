package app

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quorumnet/ledger"
	"github.com/quorumnet/ledger/ledgertest"
	"github.com/quorumnet/ledger/x/wallet"
)

func TestGenInitOptions(t *testing.T) {
	key := ledgertest.GenIdentity()

	bz, err := GenInitOptions([]string{key.String(), "5000"})
	require.NoError(t, err)

	var opts ledger.Options
	require.NoError(t, json.Unmarshal(bz, &opts))
	var accts []wallet.GenesisAccount
	require.NoError(t, opts.ReadOptions("wallets", &accts))
	require.Len(t, accts, 1)
	assert.Equal(t, key, accts[0].PubKey)
	assert.Equal(t, uint64(5000), accts[0].Balance)

	// without arguments a fresh valid identity is generated
	bz, err = GenInitOptions(nil)
	require.NoError(t, err)
	opts = ledger.Options{}
	require.NoError(t, json.Unmarshal(bz, &opts))
	accts = nil
	require.NoError(t, opts.ReadOptions("wallets", &accts))
	require.Len(t, accts, 1)
	assert.NoError(t, accts[0].PubKey.Validate())
	assert.Equal(t, genesisBalance, accts[0].Balance)

	_, err = GenInitOptions([]string{"not a key"})
	assert.Error(t, err)
	_, err = GenInitOptions([]string{key.String(), "many"})
	assert.Error(t, err)
}
