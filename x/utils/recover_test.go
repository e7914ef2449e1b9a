package utils

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

type panicHandler struct{}

var _ ledger.Handler = panicHandler{}

func (panicHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	panic("check kaboom")
}

func (panicHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	panic("deliver kaboom")
}

func TestRecoveryTurnsPanicIntoError(t *testing.T) {
	r := NewRecovery()
	db := store.MemStore()
	ctx := context.Background()

	_, err := r.Check(ctx, db, nil, panicHandler{})
	require.Error(t, err)
	assert.True(t, errors.ErrPanic.Is(err))

	_, err = r.Deliver(ctx, db, nil, panicHandler{})
	require.Error(t, err)
	assert.True(t, errors.ErrPanic.Is(err))
}

func TestRecoveryPassesThrough(t *testing.T) {
	r := NewRecovery()
	db := store.MemStore()
	h := &ledgertest.Handler{}

	_, err := r.Check(context.Background(), db, nil, h)
	require.NoError(t, err)
	_, err = r.Deliver(context.Background(), db, nil, h)
	require.NoError(t, err)
	assert.Equal(t, 2, h.CallCount())
}
