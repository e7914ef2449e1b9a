package app

import (
	"github.com/quorumnet/ledger"
	"github.com/quorumnet/ledger/errors"
)

// CommitStore handles loading from a CommitKVStore, maintaining
// different CacheWraps for Deliver and Check, and returning useful
// state info.
type CommitStore struct {
	committed ledger.CommitKVStore
	deliver   ledger.KVCacheWrap
	check     ledger.KVCacheWrap
}

// NewCommitStore loads the CommitKVStore from disk or panics. It sets
// up the deliver and check caches.
func NewCommitStore(store ledger.CommitKVStore) *CommitStore {
	if err := store.LoadLatestVersion(); err != nil {
		panic(err)
	}
	return &CommitStore{
		committed: store,
		deliver:   store.CacheWrap(),
		check:     store.CacheWrap(),
	}
}

// CommitInfo returns the current height and hash
func (cs *CommitStore) CommitInfo() (ledger.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit flushes deliver to the underlying store and commits it to
// disk. It then regenerates new deliver/check caches.
func (cs *CommitStore) Commit() (ledger.CommitID, error) {
	if err := cs.deliver.Write(); err != nil {
		return ledger.CommitID{}, err
	}
	cs.check.Discard()

	res, err := cs.committed.Commit()
	if err != nil {
		return res, err
	}

	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
	return res, nil
}

// CheckStore returns a store implementation that must be used during
// the checking phase.
func (cs *CommitStore) CheckStore() ledger.CacheableKVStore {
	return cs.check
}

// DeliverStore returns a store implementation that must be used during
// the delivery phase.
func (cs *CommitStore) DeliverStore() ledger.CacheableKVStore {
	return cs.deliver
}

//------- storing chainID ---------

// _lg: is a prefix for ledger internal data
const chainIDKey = "_lg:chainID"

// mustLoadChainID returns the chain id stored if any,
// panics on db error
func mustLoadChainID(kv ledger.KVStore) string {
	v, err := kv.Get([]byte(chainIDKey))
	if err != nil {
		panic(err)
	}
	return string(v)
}

// saveChainID stores a chain id in the kv store.
// Returns error if already set, or invalid name.
func saveChainID(kv ledger.KVStore, chainID string) error {
	if !ledger.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}
	k := []byte(chainIDKey)
	exists, err := kv.Has(k)
	if err != nil {
		return errors.Wrap(err, "load chain id")
	}
	if exists {
		return errors.Wrap(errors.ErrImmutable, "chain id cannot change after genesis init")
	}
	if err := kv.Set(k, []byte(chainID)); err != nil {
		return errors.Wrap(err, "save chain id")
	}
	return nil
}
