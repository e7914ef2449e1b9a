package txlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quorumnet/ledger"
	"github.com/quorumnet/ledger/errors"
	"github.com/quorumnet/ledger/ledgertest"
	"github.com/quorumnet/ledger/store"
	"github.com/quorumnet/ledger/x/wallet"
)

func TestHistoryQuery(t *testing.T) {
	db := store.MemStore()
	alice := ledgertest.GenIdentity()
	bob := ledgertest.GenIdentity()
	stranger := ledgertest.GenIdentity()

	control := wallet.NewController(wallet.NewWalletBucket())
	require.NoError(t, control.Create(db, alice, "alice"))
	require.NoError(t, control.Create(db, bob, "bob"))
	require.NoError(t, control.Issue(db, alice, 100, nil))

	// two transfers, recorded the way the decorator would
	records := NewRecordBucket()
	hashes := make([]ledger.TxHash, 2)
	for i := range hashes {
		raw := []byte{byte(i), 'o', 'p'}
		hashes[i] = ledger.NewTxHash(raw)
		record := &TxRecord{
			Position: uint64(i),
			Author:   alice,
			Raw:      raw,
		}
		require.NoError(t, records.Save(db, NewRecord(hashes[i], record)))
		require.NoError(t, control.Move(db, alice, bob, 10, hashes[i]))
	}

	q := NewHistoryQuery()

	models, err := q.Query(db, ledger.KeyQueryMod, alice)
	require.NoError(t, err)
	require.Len(t, models, 2)
	for i, m := range models {
		var entry HistoryEntry
		require.NoError(t, entry.Unmarshal(m.Value))
		assert.EqualValues(t, hashes[i], entry.TxHash)
		assert.EqualValues(t, i, entry.Position)
	}

	// bob saw the same events
	models, err = q.Query(db, ledger.KeyQueryMod, bob)
	require.NoError(t, err)
	assert.Len(t, models, 2)

	// an existing account without history is an empty result
	require.NoError(t, control.Create(db, stranger, "carl"))
	models, err = q.Query(db, ledger.KeyQueryMod, stranger)
	require.NoError(t, err)
	assert.Len(t, models, 0)

	// an unknown account is an error
	_, err = q.Query(db, ledger.KeyQueryMod, ledgertest.GenIdentity())
	assert.True(t, errors.ErrNotFound.Is(err))

	// prefix queries are not supported
	_, err = q.Query(db, ledger.PrefixQueryMod, alice)
	assert.True(t, errors.ErrInput.Is(err))
}
