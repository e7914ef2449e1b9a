package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quorumnet/ledger/errors"
	"github.com/quorumnet/ledger/ledgertest"
	"github.com/quorumnet/ledger/store"
)

func TestRouterDispatch(t *testing.T) {
	r := NewRouter()
	h := &ledgertest.Handler{}
	msg := &ledgertest.Msg{RoutePath: "test/good"}
	r.Handle(msg, h)

	db := store.MemStore()
	ctx := context.Background()
	tx := &ledgertest.Tx{Msg: msg}

	_, err := r.Check(ctx, db, tx)
	assert.NoError(t, err)
	_, err = r.Deliver(ctx, db, tx)
	assert.NoError(t, err)
	assert.Equal(t, 2, h.CallCount())

	missing := &ledgertest.Tx{Msg: &ledgertest.Msg{RoutePath: "test/missing"}}
	_, err = r.Check(ctx, db, missing)
	assert.True(t, errors.ErrNotFound.Is(err))
	_, err = r.Deliver(ctx, db, missing)
	assert.True(t, errors.ErrNotFound.Is(err))
	assert.Equal(t, 2, h.CallCount())
}

func TestRouterBrokenMessage(t *testing.T) {
	r := NewRouter()
	db := store.MemStore()
	ctx := context.Background()

	tx := &ledgertest.Tx{Err: errors.ErrInput.New("boom")}
	_, err := r.Check(ctx, db, tx)
	assert.Error(t, err)
	_, err = r.Deliver(ctx, db, tx)
	assert.Error(t, err)
}

func TestRouterSetupPanics(t *testing.T) {
	r := NewRouter()
	h := &ledgertest.Handler{}

	assert.Panics(t, func() {
		r.Handle(&ledgertest.Msg{RoutePath: "bad?path"}, h)
	})

	r.Handle(&ledgertest.Msg{RoutePath: "test/good"}, h)
	assert.Panics(t, func() {
		r.Handle(&ledgertest.Msg{RoutePath: "test/good"}, h)
	})
}
