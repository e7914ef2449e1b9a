package orm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quorumnet/ledger/store"
)

func TestSequencePositionsAreDense(t *testing.T) {
	db := store.MemStore()
	s := NewSequence("txlog", "position")

	// a fresh counter starts at position 0
	count, err := s.Count(db)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	for i := uint64(0); i < 10; i++ {
		pos, err := s.Next(db)
		require.NoError(t, err)
		assert.Equal(t, i, pos)
	}

	// Count reports without consuming
	count, err = s.Count(db)
	require.NoError(t, err)
	assert.EqualValues(t, 10, count)

	pos, err := s.Next(db)
	require.NoError(t, err)
	assert.EqualValues(t, 10, pos)
}

func TestSequenceIndependence(t *testing.T) {
	db := store.MemStore()
	a := NewSequence("bucket", "id")
	b := NewSequence("bucket", "other")

	_, err := a.Next(db)
	require.NoError(t, err)
	_, err = a.Next(db)
	require.NoError(t, err)

	// a sibling counter is not affected
	pos, err := b.Next(db)
	require.NoError(t, err)
	assert.EqualValues(t, 0, pos)
}
