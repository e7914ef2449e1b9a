package author

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quorumnet/ledger"
	"github.com/quorumnet/ledger/ledgertest"
	"github.com/quorumnet/ledger/store"
)

// recordingHandler captures the identities visible to the handler
type recordingHandler struct {
	ledgertest.Handler
	seen []ledger.PublicKey
}

func (h *recordingHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	h.seen = Authenticate{}.GetIdentities(ctx)
	return h.Handler.Deliver(ctx, db, tx)
}

func TestDecoratorEstablishesAuthor(t *testing.T) {
	who := ledgertest.GenIdentity()
	tx := &ledgertest.Tx{Author: who}

	h := &recordingHandler{}
	d := NewDecorator()

	db := store.MemStore()
	_, err := d.Deliver(context.Background(), db, tx, h)
	require.NoError(t, err)

	require.Len(t, h.seen, 1)
	assert.Equal(t, who, h.seen[0])
	assert.Equal(t, 1, h.DeliverCallCount())
}

func TestDecoratorRejectsBadAuthor(t *testing.T) {
	cases := map[string]struct {
		tx ledger.Tx
	}{
		"missing author": {
			tx: &ledgertest.Tx{},
		},
		"malformed author": {
			tx: &ledgertest.Tx{Author: []byte{1, 2, 3}},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			h := &ledgertest.Handler{}
			d := NewDecorator()
			db := store.MemStore()

			_, err := d.Check(context.Background(), db, tc.tx, h)
			assert.Error(t, err)
			_, err = d.Deliver(context.Background(), db, tc.tx, h)
			assert.Error(t, err)
			assert.Equal(t, 0, h.CallCount())
		})
	}
}

func TestAuthenticateOutsideTx(t *testing.T) {
	// no author in a bare context
	assert.Nil(t, Authenticate{}.GetIdentities(context.Background()))
	assert.False(t, Authenticate{}.HasIdentity(context.Background(), ledgertest.GenIdentity()))
}
