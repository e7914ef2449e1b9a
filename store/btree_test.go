package store

import (
	"bytes"
	"crypto/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBTreeCacheGetSet does basic sanity checks on our cache
//
// Other tests should handle deletes, setting same value,
// iterating over ranges, and general fuzzing
func TestBTreeCacheGetSet(t *testing.T) {
	// devnull is a black hole... just to keep our types proper
	devnull := BTreeCacheable{EmptyKVStore{}}

	// base is the root of our data, we can layer on top and
	// all queries should work
	base := devnull.CacheWrap()

	// make sure the btree is empty at start but returns results
	// that are written to it
	k, v := []byte("french"), []byte("fry")
	assertGet(t, base, k, nil)
	assertHas(t, base, k, false)
	require.NoError(t, base.Set(k, v))
	assertGet(t, base, k, v)
	assertHas(t, base, k, true)

	// now layer another btree on top and make sure that we get
	// base data
	cache := base.CacheWrap()
	assertGet(t, cache, k, v)
	assertHas(t, cache, k, true)

	// writing more data is only visible in the cache
	k2, v2 := []byte("LA"), []byte("Dodgers")
	assertGet(t, cache, k2, nil)
	assertHas(t, cache, k2, false)
	require.NoError(t, cache.Set(k2, v2))
	assertGet(t, cache, k2, v2)
	assertGet(t, base, k2, nil)
	assertHas(t, cache, k2, true)
	assertHas(t, base, k2, false)

	// we can write the cache to the base layer...
	require.NoError(t, cache.Write())
	assertGet(t, base, k, v)
	assertGet(t, base, k2, v2)
	assertHas(t, base, k, true)
	assertHas(t, base, k2, true)

	// we can discard one
	k3, v3 := []byte("Bayern"), []byte("Munich")
	c2 := base.CacheWrap()
	assertGet(t, c2, k, v)
	assertGet(t, c2, k2, v2)
	require.NoError(t, c2.Set(k3, v3))
	c2.Discard()

	// and commit another
	c3 := base.CacheWrap()
	assertGet(t, c3, k, v)
	assertGet(t, c3, k2, v2)
	require.NoError(t, c3.Delete(k))
	require.NoError(t, c3.Write())

	// make sure it commits proper
	assertGet(t, base, k, nil)
	assertGet(t, base, k2, v2)
	assertGet(t, base, k3, nil)
}

// TestBTreeCacheConflicts checks that we can handle
// overwriting values and deleting underlying values
func TestBTreeCacheConflicts(t *testing.T) {
	// devnull is a black hole... just to keep our types proper
	devnull := BTreeCacheable{EmptyKVStore{}}

	// make 10 keys and 20 values....
	ks := randKeys(10, 16)
	vs := randKeys(20, 40)

	cases := map[string]struct {
		parentOps     []Op
		childOps      []Op
		parentQueries []Model // Key is what we query, Value is what we expect
		childQueries  []Model // Key is what we query, Value is what we expect
	}{
		"overwrite one, delete another, add a third": {
			parentOps:     []Op{SetOp(ks[1], vs[1]), SetOp(ks[2], vs[2])},
			childOps:      []Op{SetOp(ks[1], vs[11]), SetOp(ks[3], vs[7]), DelOp(ks[2])},
			parentQueries: []Model{pair(ks[1], vs[1]), pair(ks[2], vs[2]), pair(ks[3], nil)},
			childQueries:  []Model{pair(ks[1], vs[11]), pair(ks[2], nil), pair(ks[3], vs[7])},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			parent := devnull.CacheWrap()
			for _, op := range tc.parentOps {
				require.NoError(t, op.Apply(parent))
			}

			child := parent.CacheWrap()
			for _, op := range tc.childOps {
				require.NoError(t, op.Apply(child))
			}

			// now check the parent is unaffected
			for _, q := range tc.parentQueries {
				assertGet(t, parent, q.Key, q.Value)
				assertHas(t, parent, q.Key, q.Value != nil)
			}

			// the child shows changes
			for _, q := range tc.childQueries {
				assertGet(t, child, q.Key, q.Value)
				assertHas(t, child, q.Key, q.Value != nil)
			}

			// write child to parent and make sure it also shows proper data
			require.NoError(t, child.Write())
			for _, q := range tc.childQueries {
				assertGet(t, parent, q.Key, q.Value)
				assertHas(t, parent, q.Key, q.Value != nil)
			}
		})
	}
}

// TestSliceIterator makes sure the basic slice iterator works
func TestSliceIterator(t *testing.T) {
	const Size = 10

	ks := randKeys(Size, 8)
	vs := randKeys(Size, 40)

	models := make([]Model, Size)
	for i := 0; i < Size; i++ {
		models[i].Key = ks[i]
		models[i].Value = vs[i]
	}

	// make sure proper iteration works
	iter := NewSliceIterator(models)
	for i := 0; iter.Valid(); i++ {
		assert.True(t, i < Size)
		assert.Equal(t, ks[i], iter.Key())
		assert.Equal(t, vs[i], iter.Value())
		require.NoError(t, iter.Next())
	}
	assert.Error(t, iter.Next())

	// iterator is invalid after close
	trash := NewSliceIterator(models)
	assert.True(t, trash.Valid())
	trash.Close()
	assert.False(t, trash.Valid())
}

// TestBTreeCacheBasicIterator makes sure the basic iterator
// works. Includes random deletes, but not nested iterators.
func TestBTreeCacheBasicIterator(t *testing.T) {
	const Size = 50
	const DeleteCount = 20
	const TotalSize = Size + DeleteCount

	models := make([]Model, TotalSize)
	for i := 0; i < TotalSize; i++ {
		models[i].Key = randBytes(8)
		models[i].Value = randBytes(40)
	}

	devnull := BTreeCacheable{EmptyKVStore{}}
	base := devnull.CacheWrap()
	// add them all to the cache
	for i := 0; i < TotalSize; i++ {
		require.NoError(t, base.Set(models[i].Key, models[i].Value))
	}
	// delete the first chunk
	for i := 0; i < DeleteCount; i++ {
		require.NoError(t, base.Delete(models[i].Key))
	}
	models = models[DeleteCount:]

	// sort all remaining key/value pairs... this is our expected results
	sort.Slice(models, func(i, j int) bool {
		return bytes.Compare(models[i].Key, models[j].Key) < 0
	})

	// iterate over everything
	verifyIterator(t, models, iterOrFail(t)(base.Iterator(nil, nil)))
	// iterate with lower end defined
	verifyIterator(t, models[10:], iterOrFail(t)(base.Iterator(models[10].Key, nil)))
	// iterate with upper end defined
	verifyIterator(t, models[:Size-8], iterOrFail(t)(base.Iterator(nil, models[Size-8].Key)))
	// iterate with both ends defined
	verifyIterator(t, models[17:28], iterOrFail(t)(base.Iterator(models[17].Key, models[28].Key)))

	// and now in reverse....
	verifyIterator(t, reverse(models), iterOrFail(t)(base.ReverseIterator(nil, nil)))
	// iterate with lower end defined
	verifyIterator(t, reverse(models[34:]), iterOrFail(t)(base.ReverseIterator(models[34].Key, nil)))
	// iterate with upper end defined
	verifyIterator(t, reverse(models[:19]), iterOrFail(t)(base.ReverseIterator(nil, models[19].Key)))
	// iterate with both ends defined
	verifyIterator(t, reverse(models[6:26]), iterOrFail(t)(base.ReverseIterator(models[6].Key, models[26].Key)))
}

// TestBTreeCacheLayeredIterator spans both the parent and child caches,
// combining different values, overwrites, and deletes
func TestBTreeCacheLayeredIterator(t *testing.T) {
	devnull := BTreeCacheable{EmptyKVStore{}}
	parent := devnull.CacheWrap()

	expect := []Model{
		pair([]byte("aa"), []byte("kept")),
		pair([]byte("cc"), []byte("overwritten")),
		pair([]byte("dd"), []byte("added")),
	}

	require.NoError(t, parent.Set([]byte("aa"), []byte("kept")))
	require.NoError(t, parent.Set([]byte("bb"), []byte("doomed")))
	require.NoError(t, parent.Set([]byte("cc"), []byte("original")))

	child := parent.CacheWrap()
	require.NoError(t, child.Delete([]byte("bb")))
	require.NoError(t, child.Set([]byte("cc"), []byte("overwritten")))
	require.NoError(t, child.Set([]byte("dd"), []byte("added")))

	verifyIterator(t, expect, iterOrFail(t)(child.Iterator(nil, nil)))
	verifyIterator(t, reverse(expect), iterOrFail(t)(child.ReverseIterator(nil, nil)))

	// parent view is untouched until write
	verifyIterator(t, []Model{
		pair([]byte("aa"), []byte("kept")),
		pair([]byte("bb"), []byte("doomed")),
		pair([]byte("cc"), []byte("original")),
	}, iterOrFail(t)(parent.Iterator(nil, nil)))

	require.NoError(t, child.Write())
	verifyIterator(t, expect, iterOrFail(t)(parent.Iterator(nil, nil)))
}

func iterOrFail(t *testing.T) func(Iterator, error) Iterator {
	return func(iter Iterator, err error) Iterator {
		t.Helper()
		require.NoError(t, err)
		return iter
	}
}

func verifyIterator(t *testing.T, models []Model, iter Iterator) {
	t.Helper()
	// make sure proper iteration works
	for i := 0; i < len(models); i++ {
		require.True(t, iter.Valid(), "%d", i)
		assert.Equal(t, models[i].Key, iter.Key(), "%d", i)
		assert.Equal(t, models[i].Value, iter.Value(), "%d", i)
		require.NoError(t, iter.Next())
	}
	assert.False(t, iter.Valid())
	iter.Close()
}

// reverse returns a copy of the slice with elements in reverse order
func reverse(models []Model) []Model {
	max := len(models)
	res := make([]Model, max)
	for i := 0; i < max; i++ {
		res[i] = models[max-1-i]
	}
	return res
}

func pair(k, v []byte) Model {
	return Model{Key: k, Value: v}
}

func assertGet(t *testing.T, kv ReadOnlyKVStore, key, want []byte) {
	t.Helper()
	got, err := kv.Get(key)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func assertHas(t *testing.T, kv ReadOnlyKVStore, key []byte, want bool) {
	t.Helper()
	got, err := kv.Has(key)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

// randKeys returns a slice of count keys, all of length
func randKeys(count, length int) [][]byte {
	res := make([][]byte, count)
	for i := 0; i < count; i++ {
		res[i] = randBytes(length)
	}
	return res
}

func randBytes(length int) []byte {
	res := make([]byte, length)
	rand.Read(res)
	return res
}
