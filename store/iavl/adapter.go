package iavl

import (
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"

	"github.com/quorumnet/ledger/store"
)

// how many recent versions the tree keeps in its node cache
const cacheSize = 10000

// CommitStore manages a iavl committed state
type CommitStore struct {
	tree *iavl.MutableTree
}

var _ store.CommitKVStore = CommitStore{}

// NewCommitStore creates a CommitStore above the given persistent
// database. All writes go through CacheWrap batches and become durable
// on Commit.
func NewCommitStore(db dbm.DB) CommitStore {
	tree := iavl.NewMutableTree(db, cacheSize)
	return CommitStore{tree: tree}
}

// NewCommitStoreFromTree wraps an already loaded tree, used by
// tooling that rolls a database back to an older version.
func NewCommitStoreFromTree(tree *iavl.MutableTree) CommitStore {
	return CommitStore{tree: tree}
}

// MockCommitStore returns a CommitStore above an in-memory database,
// for tests.
func MockCommitStore() CommitStore {
	return NewCommitStore(dbm.NewMemDB())
}

// Get returns nil iff key doesn't exist. Panics on nil key.
func (s CommitStore) Get(key []byte) ([]byte, error) {
	_, val := s.tree.Get(key)
	return val, nil
}

// Commit saves the next version to disk, and returns its id.
func (s CommitStore) Commit() (store.CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return store.CommitID{}, err
	}
	return store.CommitID{
		Version: version,
		Hash:    hash,
	}, nil
}

// LoadLatestVersion loads the latest persisted version. If there was a
// crash during the last commit, it is guaranteed to return a stable
// state, even if older.
func (s CommitStore) LoadLatestVersion() error {
	_, err := s.tree.Load()
	return err
}

// LatestVersion returns info on the latest version saved to disk
func (s CommitStore) LatestVersion() (store.CommitID, error) {
	return store.CommitID{
		Version: s.tree.Version(),
		Hash:    s.tree.Hash(),
	}, nil
}

// CacheWrap gives us a savepoint to perform actions on top of the
// current working tree. Writes only hit the tree when the cache is
// written, and only hit disk upon Commit.
func (s CommitStore) CacheWrap() store.KVCacheWrap {
	reader := treeReader{tree: s.tree}
	return store.NewBTreeCacheWrap(reader, reader.NewBatch(), nil)
}

// treeReader adapts the mutable tree to the KVStore interface, so the
// btree cache can layer above it.
type treeReader struct {
	tree *iavl.MutableTree
}

var _ store.KVStore = treeReader{}

// Get returns nil iff key doesn't exist. Panics on nil key.
func (t treeReader) Get(key []byte) ([]byte, error) {
	_, val := t.tree.Get(key)
	return val, nil
}

// Has checks if a key exists. Panics on nil key.
func (t treeReader) Has(key []byte) (bool, error) {
	return t.tree.Has(key), nil
}

// Set adds a new value to the working tree
func (t treeReader) Set(key, value []byte) error {
	t.tree.Set(key, value)
	return nil
}

// Delete removes from the working tree
func (t treeReader) Delete(key []byte) error {
	t.tree.Remove(key)
	return nil
}

// NewBatch returns a batch that applies a set of ops to the working
// tree on Write.
func (t treeReader) NewBatch() store.Batch {
	return store.NewNonAtomicBatch(t)
}

// Iterator over a domain of keys in ascending order. End is exclusive.
// CONTRACT: No writes may happen within a domain while an iterator
// exists over it.
func (t treeReader) Iterator(start, end []byte) (store.Iterator, error) {
	iter := newLazyIterator()
	go func() {
		t.tree.IterateRange(start, end, true, iter.add)
		iter.finish()
	}()
	iter.skipToStart()
	return iter, nil
}

// ReverseIterator over a domain of keys in descending order. End is
// exclusive.
func (t treeReader) ReverseIterator(start, end []byte) (store.Iterator, error) {
	iter := newLazyIterator()
	go func() {
		t.tree.IterateRange(start, end, false, iter.add)
		iter.finish()
	}()
	iter.skipToStart()
	return iter, nil
}
