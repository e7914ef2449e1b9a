package txlog

import (
	"github.com/quorumnet/ledger"
	"github.com/quorumnet/ledger/errors"
	"github.com/quorumnet/ledger/x/wallet"
)

// RegisterQuery registers the operation log under "/txlog" and the
// per-account committed history under "/wallets/history"
func RegisterQuery(qr ledger.QueryRouter) {
	NewRecordBucket().Register("txlog", qr)
	qr.Register("/wallets/history", NewHistoryQuery())
}

// HistoryQuery serves the committed operation history of one account
// as an ordered sequence of HistoryEntry values. Unknown accounts are
// a not found error, an existing account with no history is an empty
// result.
type HistoryQuery struct {
	wallets wallet.WalletBucket
	records RecordBucket
}

var _ ledger.QueryHandler = HistoryQuery{}

// NewHistoryQuery initializes a HistoryQuery
func NewHistoryQuery() HistoryQuery {
	return HistoryQuery{
		wallets: wallet.NewWalletBucket(),
		records: NewRecordBucket(),
	}
}

// Query accepts the account public key as data, only exact matches
func (h HistoryQuery) Query(db ledger.ReadOnlyKVStore, mod string, data []byte) ([]ledger.Model, error) {
	if mod != ledger.KeyQueryMod {
		return nil, errors.Wrap(errors.ErrInput, "not implemented: "+mod)
	}
	acct := ledger.PublicKey(data)
	if err := acct.Validate(); err != nil {
		return nil, errors.Wrap(err, "account")
	}

	obj, err := h.wallets.Get(db, acct)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "account %s", acct)
	}

	start := wallet.HistoryPrefix(acct)
	end := prefixEnd(start)
	itr, err := db.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	defer itr.Close()

	var out []ledger.Model
	for itr.Valid() {
		hash := ledger.TxHash(itr.Value())
		record, err := h.records.GetRecord(db, hash)
		if err != nil {
			return nil, err
		}
		if record == nil {
			return nil, errors.Wrapf(errors.ErrHuman, "no record for %s", hash)
		}
		entry := &HistoryEntry{TxHash: hash, Position: record.Position}
		value, err := entry.Marshal()
		if err != nil {
			return nil, err
		}
		key := append([]byte(nil), itr.Key()...)
		out = append(out, ledger.Model{Key: key, Value: value})
		if err := itr.Next(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// prefixEnd returns the key right after the last one with this prefix
func prefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	// all 0xff, no end
	return nil
}
