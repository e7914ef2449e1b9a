package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quorumnet/ledger"
	"github.com/quorumnet/ledger/ledgertest"
	"github.com/quorumnet/ledger/store"
)

// countingDecorator passes through, remembering how often it ran
type countingDecorator struct {
	called int
}

var _ ledger.Decorator = (*countingDecorator)(nil)

func (c *countingDecorator) Check(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx, next ledger.Checker) (*ledger.CheckResult, error) {
	c.called++
	return next.Check(ctx, store, tx)
}

func (c *countingDecorator) Deliver(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx, next ledger.Deliverer) (*ledger.DeliverResult, error) {
	c.called++
	return next.Deliver(ctx, store, tx)
}

func TestChainDecorators(t *testing.T) {
	h := &ledgertest.Handler{}
	d1 := new(countingDecorator)
	d2 := new(countingDecorator)

	// nil decorators are silently dropped
	var nilDecorator *countingDecorator
	stack := ChainDecorators(d1, nil, nilDecorator).
		Chain(d2).
		WithHandler(h)

	db := store.MemStore()
	ctx := context.Background()
	tx := &ledgertest.Tx{}

	_, err := stack.Check(ctx, db, tx)
	require.NoError(t, err)
	_, err = stack.Deliver(ctx, db, tx)
	require.NoError(t, err)

	assert.Equal(t, 2, d1.called)
	assert.Equal(t, 2, d2.called)
	assert.Equal(t, 2, h.CallCount())
}

func TestChainWithoutDecorators(t *testing.T) {
	h := &ledgertest.Handler{}
	stack := ChainDecorators().WithHandler(h)

	_, err := stack.Check(context.Background(), store.MemStore(), &ledgertest.Tx{})
	require.NoError(t, err)
	assert.Equal(t, 1, h.CallCount())
}
