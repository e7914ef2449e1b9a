package orm

import (
	"encoding/binary"

	"github.com/quorumnet/ledger"
)

// Sequence hands out zero based positions, one at a time. The
// operation log uses one to number delivered operations, buckets can
// carry any number of named counters next to their data.
//
// The stored state under _s.<bucket>:<name> is the count of positions
// handed out so far, so a missing key means the next position is 0.
type Sequence struct {
	key []byte
}

// NewSequence returns the named counter of the bucket
func NewSequence(bucket, name string) Sequence {
	return Sequence{
		key: []byte("_s." + bucket + ":" + name),
	}
}

// Next returns the lowest position never handed out before and marks
// it used. Positions are dense: 0, 1, 2, ... with no gaps.
func (s Sequence) Next(db ledger.KVStore) (uint64, error) {
	count, err := s.Count(db)
	if err != nil {
		return 0, err
	}
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, count+1)
	if err := db.Set(s.key, raw); err != nil {
		return 0, err
	}
	return count, nil
}

// Count returns how many positions were handed out so far, without
// consuming one.
func (s Sequence) Count(db ledger.ReadOnlyKVStore) (uint64, error) {
	raw, err := db.Get(s.key)
	if err != nil {
		return 0, err
	}
	if raw == nil {
		return 0, nil
	}
	return binary.BigEndian.Uint64(raw), nil
}
