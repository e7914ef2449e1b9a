package iavl

import (
	"bytes"
	"crypto/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quorumnet/ledger/store"
)

func TestCommitStoreWriteCommit(t *testing.T) {
	s := MockCommitStore()
	require.NoError(t, s.LoadLatestVersion())

	k, v := []byte("shell"), []byte("game")

	cache := s.CacheWrap()
	require.NoError(t, cache.Set(k, v))

	// not visible on committed state until cache write
	got, err := s.Get(k)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, cache.Write())
	got, err = s.Get(k)
	require.NoError(t, err)
	assert.Equal(t, v, got)

	id, err := s.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(1), id.Version)
	assert.NotEmpty(t, id.Hash)

	latest, err := s.LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, id, latest)
}

func TestCommitStoreDiscard(t *testing.T) {
	s := MockCommitStore()
	require.NoError(t, s.LoadLatestVersion())

	k, v := []byte("perma"), []byte("nent")
	cache := s.CacheWrap()
	require.NoError(t, cache.Set(k, v))
	require.NoError(t, cache.Write())
	_, err := s.Commit()
	require.NoError(t, err)

	// discarded changes never reach the tree
	drop := s.CacheWrap()
	require.NoError(t, drop.Set([]byte("temp"), []byte("orary")))
	require.NoError(t, drop.Delete(k))
	drop.Discard()

	got, err := s.Get(k)
	require.NoError(t, err)
	assert.Equal(t, v, got)
	got, err = s.Get([]byte("temp"))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCommitStoreNestedCacheWrap(t *testing.T) {
	s := MockCommitStore()
	require.NoError(t, s.LoadLatestVersion())

	outer := s.CacheWrap()
	require.NoError(t, outer.Set([]byte("a"), []byte("1")))

	inner := outer.CacheWrap()
	require.NoError(t, inner.Set([]byte("b"), []byte("2")))

	// inner sees both, outer only its own write
	got, err := inner.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), got)
	has, err := outer.Has([]byte("b"))
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, inner.Write())
	require.NoError(t, outer.Write())

	got, err = s.Get([]byte("b"))
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), got)
}

func TestCommitStoreIterator(t *testing.T) {
	const count = 30

	s := MockCommitStore()
	require.NoError(t, s.LoadLatestVersion())

	models := make([]store.Model, count)
	cache := s.CacheWrap()
	for i := 0; i < count; i++ {
		models[i].Key = randBytes(8)
		models[i].Value = randBytes(20)
		require.NoError(t, cache.Set(models[i].Key, models[i].Value))
	}
	require.NoError(t, cache.Write())
	_, err := s.Commit()
	require.NoError(t, err)

	sort.Slice(models, func(i, j int) bool {
		return bytes.Compare(models[i].Key, models[j].Key) < 0
	})

	// iterate on a fresh cache above the committed state
	read := s.CacheWrap()

	iter, err := read.Iterator(nil, nil)
	require.NoError(t, err)
	for i := 0; i < count; i++ {
		require.True(t, iter.Valid(), "%d", i)
		assert.Equal(t, models[i].Key, iter.Key(), "%d", i)
		assert.Equal(t, models[i].Value, iter.Value(), "%d", i)
		require.NoError(t, iter.Next())
	}
	assert.False(t, iter.Valid())
	iter.Close()

	// reverse with both ends set
	riter, err := read.ReverseIterator(models[5].Key, models[25].Key)
	require.NoError(t, err)
	for i := 24; i >= 5; i-- {
		require.True(t, riter.Valid(), "%d", i)
		assert.Equal(t, models[i].Key, riter.Key(), "%d", i)
		require.NoError(t, riter.Next())
	}
	assert.False(t, riter.Valid())
	riter.Close()
}

func randBytes(length int) []byte {
	res := make([]byte, length)
	rand.Read(res)
	return res
}
