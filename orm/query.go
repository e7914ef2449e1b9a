package orm

import (
	"github.com/quorumnet/ledger"
)

// queryPrefix returns all models with keys that begin with a given
// prefix, in ascending order.
func queryPrefix(db ledger.ReadOnlyKVStore, prefix []byte) ([]ledger.Model, error) {
	start, end := prefixRange(prefix)
	itr, err := db.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	defer itr.Close()

	var res []ledger.Model
	for itr.Valid() {
		res = append(res, ledger.Model{
			Key:   append([]byte(nil), itr.Key()...),
			Value: append([]byte(nil), itr.Value()...),
		})
		if err := itr.Next(); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// prefixRange turns a prefix into the (start, end) range that covers
// all keys with that prefix.
//
// In the case of a nil prefix, it returns (nil, nil), scanning everything.
// In the case of all 0xff bytes, the end is unbounded.
func prefixRange(prefix []byte) ([]byte, []byte) {
	if len(prefix) == 0 {
		return nil, nil
	}

	// copy the prefix and update last byte
	end := make([]byte, len(prefix))
	copy(end, prefix)
	l := len(end) - 1
	end[l]++

	// wait, what if that overflowed the last byte?
	for end[l] == 0 && l > 0 {
		l--
		end[l]++
	}

	// okay, funny guy, you gave us FFF, no end to this range...
	if l == 0 && end[0] == 0 {
		end = nil
	}
	return prefix, end
}
