package utils

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/quorumnet/ledger"
	"github.com/quorumnet/ledger/errors"
	"github.com/quorumnet/ledger/ledgertest"
	"github.com/quorumnet/ledger/store"
)

func TestLoggingPassesThrough(t *testing.T) {
	var out bytes.Buffer
	ctx := ledger.WithLogger(context.Background(), log.NewTMLogger(&out))
	db := store.MemStore()
	h := &ledgertest.Handler{}

	l := NewLogging()
	_, err := l.Check(ctx, db, nil, h)
	require.NoError(t, err)
	_, err = l.Deliver(ctx, db, nil, h)
	require.NoError(t, err)
	assert.Equal(t, 2, h.CallCount())
}

func TestLoggingReportsFailureCode(t *testing.T) {
	var out bytes.Buffer
	ctx := ledger.WithLogger(context.Background(), log.NewTMLogger(&out))
	db := store.MemStore()
	h := &ledgertest.Handler{
		DeliverErr: errors.Wrap(errors.ErrNotFound, "no such wallet"),
	}

	l := NewLogging()
	_, err := l.Deliver(ctx, db, nil, h)
	require.Error(t, err)

	// the line carries the numeric code clients see
	assert.Contains(t, out.String(), "deliver failed")
	assert.Contains(t, out.String(), "code=1002")
}
