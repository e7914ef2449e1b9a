package ledger

//////////////////////////////////////////////////////////
// Defines all public interfaces for interacting with stores
//
// KVStore/Iterator are the basic objects to use in all code.

// ReadOnlyKVStore provides read access to data.
type ReadOnlyKVStore interface {
	// Get returns nil iff key doesn't exist. Panics on nil key.
	Get(key []byte) ([]byte, error)

	// Has checks if a key exists. Panics on nil key.
	Has(key []byte) (bool, error)

	// Iterator over a domain of keys in ascending order. End is
	// exclusive. Start must be less than end, or the Iterator is
	// invalid. CONTRACT: No writes may happen within a domain while
	// an iterator exists over it.
	Iterator(start, end []byte) (Iterator, error)

	// ReverseIterator over a domain of keys in descending order.
	// End is exclusive.
	ReverseIterator(start, end []byte) (Iterator, error)
}

// SetDeleter is a subset of the KVStore methods that modify state.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is a simple interface to get/set data.
//
// For simplicity, we require all backing stores to implement this
// interface. They *may* implement other methods as well.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter

	// NewBatch returns a batch that can write multiple ops atomically.
	NewBatch() Batch
}

// Batch can write multiple ops atomically to an underlying KVStore.
type Batch interface {
	SetDeleter
	Write() error
}

/*
Iterator allows us to access a set of items within a range of keys.

  var itr Iterator = ...
  defer itr.Close()

  for itr.Valid() {
    k, v := itr.Key(), itr.Value()
    // ...
    if err := itr.Next(); err != nil {
      return err
    }
  }
*/
type Iterator interface {
	// Valid returns whether the current position is valid. Once
	// invalid, an Iterator is forever invalid.
	Valid() bool

	// Next moves the iterator to the next sequential key, as defined
	// by order of iteration. Panics if Valid returns false.
	Next() error

	// Key returns the key of the cursor. Panics if Valid returns
	// false. CONTRACT: key is readonly.
	Key() (key []byte)

	// Value returns the value of the cursor. Panics if Valid returns
	// false. CONTRACT: value is readonly.
	Value() (value []byte)

	// Close releases the Iterator.
	Close()
}

///////////////////////////////////////////////////////////
// Caching conditional execution
//
// These extend KVStore to allow grouping writes of one operation so
// they may be committed or discarded together, like Postgresql
// SAVEPOINT / ROLLBACK TO SAVEPOINT. This is the atomicity contract of
// the operation dispatcher: either all mutations of an operation become
// visible, or none.

// CacheableKVStore is a KVStore that supports CacheWrapping.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap allows us to maintain a scratch-pad of uncommitted data
// that we can view with all queries.
//
// At the end, call Write to flush the cached data, or Discard to drop
// it.
type KVCacheWrap interface {
	// CacheableKVStore allows us to use this Cache recursively.
	CacheableKVStore

	// Write syncs with the underlying store.
	Write() error

	// Discard invalidates this CacheWrap and releases all data.
	Discard()
}

///////////////////////////////////////////////////////////////
// Loading / committing data
//
// These reflect stores that can persist state to disk, load on start
// up, and maintain some history.

// CommitKVStore is a store that can persist the current cached state
// and load older versions on startup.
type CommitKVStore interface {
	// Get returns the value at the last committed state.
	Get(key []byte) ([]byte, error)

	// Get a CacheWrap to perform reads and writes on top of the last
	// committed state.
	CacheWrap() KVCacheWrap

	// Commit the next version and return its identification.
	Commit() (CommitID, error)

	// LoadLatestVersion loads the latest persisted version. If there
	// was a crash during the last commit, it is guaranteed to return
	// a stable state, even if older.
	LoadLatestVersion() error

	// LatestVersion returns info on the latest version saved to disk.
	LatestVersion() (CommitID, error)
}

// CommitID identifies a committed state, a version number along with
// the root hash of the state at that version.
type CommitID struct {
	Version int64
	Hash    []byte
}

// Model groups a key and a value, one result of a range query.
type Model struct {
	Key   []byte
	Value []byte
}
