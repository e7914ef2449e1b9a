package txlog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quorumnet/ledger"
	"github.com/quorumnet/ledger/errors"
	"github.com/quorumnet/ledger/ledgertest"
	"github.com/quorumnet/ledger/store"
)

// captureHandler remembers the hash and position it was called with
type captureHandler struct {
	hash    ledger.TxHash
	hashOk  bool
	pos     uint64
	posOk   bool
	err     error
}

var _ ledger.Handler = (*captureHandler)(nil)

func (h *captureHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	h.hash, h.hashOk = ledger.GetTxHash(ctx)
	h.pos, h.posOk = ledger.GetLogPosition(ctx)
	if h.err != nil {
		return nil, h.err
	}
	return &ledger.CheckResult{}, nil
}

func (h *captureHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	h.hash, h.hashOk = ledger.GetTxHash(ctx)
	h.pos, h.posOk = ledger.GetLogPosition(ctx)
	if h.err != nil {
		return nil, h.err
	}
	return &ledger.DeliverResult{}, nil
}

func TestDecoratorRecordsDelivery(t *testing.T) {
	db := store.MemStore()
	author := ledgertest.GenIdentity()
	d := NewDecorator(&ledgertest.Auth{Signer: author})
	bucket := NewRecordBucket()
	ctx := context.Background()

	raw := []byte("first operation")
	tx := &ledgertest.Tx{Raw: raw}
	next := &captureHandler{}

	_, err := d.Deliver(ctx, db, tx, next)
	require.NoError(t, err)

	hash := ledger.NewTxHash(raw)
	assert.True(t, next.hashOk)
	assert.EqualValues(t, hash, next.hash)
	assert.True(t, next.posOk)
	assert.EqualValues(t, 0, next.pos)

	record, err := bucket.GetRecord(db, hash)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.EqualValues(t, 0, record.Position)
	assert.EqualValues(t, author, record.Author)
	assert.Equal(t, raw, record.Raw)
	assert.EqualValues(t, 0, record.Result)
}

func TestDecoratorRecordsFailure(t *testing.T) {
	db := store.MemStore()
	author := ledgertest.GenIdentity()
	d := NewDecorator(&ledgertest.Auth{Signer: author})
	bucket := NewRecordBucket()
	ctx := context.Background()

	// one successful delivery to advance the position
	_, err := d.Deliver(ctx, db, &ledgertest.Tx{Raw: []byte("op one")}, &captureHandler{})
	require.NoError(t, err)

	boom := errors.Wrap(errors.ErrNotFound, "no such thing")
	raw := []byte("op two")
	_, err = d.Deliver(ctx, db, &ledgertest.Tx{Raw: raw}, &captureHandler{err: boom})
	require.Error(t, err)
	assert.True(t, errors.ErrNotFound.Is(err))

	// the failure is recorded with its error code
	record, err := bucket.GetRecord(db, ledger.NewTxHash(raw))
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.EqualValues(t, 1, record.Position)
	assert.EqualValues(t, 1002, record.Result)
}

func TestDecoratorRefusesReplay(t *testing.T) {
	db := store.MemStore()
	author := ledgertest.GenIdentity()
	d := NewDecorator(&ledgertest.Auth{Signer: author})
	bucket := NewRecordBucket()
	ctx := context.Background()

	raw := []byte("delivered once")
	tx := &ledgertest.Tx{Raw: raw}
	_, err := d.Deliver(ctx, db, tx, &captureHandler{})
	require.NoError(t, err)

	// identical bytes again: refused before the handler runs
	next := &captureHandler{}
	_, err = d.Deliver(ctx, db, tx, next)
	require.Error(t, err)
	assert.True(t, errors.ErrDuplicate.Is(err))
	assert.False(t, next.hashOk, "handler must not execute on replay")

	// a committed check sees the record as well
	_, err = d.Check(ctx, db, tx, next)
	require.Error(t, err)
	assert.True(t, errors.ErrDuplicate.Is(err))

	// the original record is untouched
	record, err := bucket.GetRecord(db, ledger.NewTxHash(raw))
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.EqualValues(t, 0, record.Position)
	assert.EqualValues(t, 0, record.Result)

	// and the replay consumed no position
	_, err = d.Deliver(ctx, db, &ledgertest.Tx{Raw: []byte("next op")}, &captureHandler{})
	require.NoError(t, err)
	record, err = bucket.GetRecord(db, ledger.NewTxHash([]byte("next op")))
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.EqualValues(t, 1, record.Position)
}

func TestDecoratorCheckLeavesNoRecord(t *testing.T) {
	db := store.MemStore()
	d := NewDecorator(&ledgertest.Auth{Signer: ledgertest.GenIdentity()})
	bucket := NewRecordBucket()

	raw := []byte("checked only")
	next := &captureHandler{}
	_, err := d.Check(context.Background(), db, &ledgertest.Tx{Raw: raw}, next)
	require.NoError(t, err)

	assert.True(t, next.hashOk)
	assert.EqualValues(t, ledger.NewTxHash(raw), next.hash)
	assert.False(t, next.posOk)

	record, err := bucket.GetRecord(db, ledger.NewTxHash(raw))
	require.NoError(t, err)
	assert.Nil(t, record)
}
