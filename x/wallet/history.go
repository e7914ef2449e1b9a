package wallet

import (
	"encoding/binary"

	"github.com/quorumnet/ledger"
)

// historyPrefix is the raw db prefix of the per-account history
// entries. Each entry maps an account and a zero-based event index to
// the hash of the operation that caused the event.
var historyPrefix = []byte("_h.wallet:")

// HistoryPrefix returns the db key prefix of all history entries of
// one account.
func HistoryPrefix(key ledger.PublicKey) []byte {
	out := make([]byte, len(historyPrefix)+len(key))
	copy(out, historyPrefix)
	copy(out[len(historyPrefix):], key)
	return out
}

// HistoryKey returns the db key of the account's history entry at the
// given event index. Keys of one account sort by index.
func HistoryKey(key ledger.PublicKey, index uint64) []byte {
	prefix := HistoryPrefix(key)
	out := make([]byte, len(prefix)+8)
	copy(out, prefix)
	binary.BigEndian.PutUint64(out[len(prefix):], index)
	return out
}
