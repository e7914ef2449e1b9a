package app

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quorumnet/ledger"
	"github.com/quorumnet/ledger/errors"
	"github.com/quorumnet/ledger/store"
)

// initSpy remembers the options it was initialized with
type initSpy struct {
	opts ledger.Options
	err  error
}

func (s *initSpy) FromGenesis(opts ledger.Options, kv ledger.KVStore) error {
	s.opts = opts
	return s.err
}

func TestChainInitializers(t *testing.T) {
	opts := ledger.Options{
		"wallets": json.RawMessage(`[]`),
	}
	db := store.MemStore()

	first := &initSpy{}
	second := &initSpy{}
	err := ChainInitializers(nil, first, second).FromGenesis(opts, db)
	require.NoError(t, err)
	assert.Equal(t, opts, first.opts)
	assert.Equal(t, opts, second.opts)

	// aborts at the first error
	boom := &initSpy{err: errors.ErrInput.New("boom")}
	last := &initSpy{}
	err = ChainInitializers(boom, last).FromGenesis(opts, db)
	assert.Error(t, err)
	assert.Nil(t, last.opts)
}
