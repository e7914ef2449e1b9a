package orm

import (
	"bytes"

	"github.com/quorumnet/ledger"
	"github.com/quorumnet/ledger/errors"
)

const indexPrefix = "_i."

// Indexer calculates the secondary index key for a given object
type Indexer func(Object) ([]byte, error)

// MultiKeyIndexer calculates the secondary index keys for a given object
type MultiKeyIndexer func(Object) ([][]byte, error)

// Index is a secondary index on a bucket. It is indexed by an arbitrary
// key returned by the indexer. The value is one primary key (unique),
// or a set of primary keys (!unique).
type Index interface {
	ledger.QueryHandler

	// Update updates the index. It should be called when any of the
	// bucket entities has changed in the store.
	//
	// prev == nil means insert
	// save == nil means delete
	// both == nil is error
	// if both != nil and prev.Key() != save.Key() this is an error
	Update(db ledger.KVStore, prev Object, save Object) error

	// GetAt returns a list of all pk stored under this index key
	GetAt(db ledger.ReadOnlyKVStore, index []byte) ([][]byte, error)

	// GetLike calculates the index for the given pattern, and returns
	// a list of all pk that match
	GetLike(db ledger.ReadOnlyKVStore, pattern Object) ([][]byte, error)
}

// compactIndex stores all indexed entities as a set, serialized under a
// single key.
type compactIndex struct {
	name   string
	id     []byte
	unique bool
	index  MultiKeyIndexer
	refKey func([]byte) []byte
}

var _ Index = compactIndex{}

// NewMultiKeyIndex constructs an index with multi key indexer.
// Indexer calculates the index for an object
// unique enforces a unique constraint on the index
// refKey calculates the absolute dbkey for a ref
func NewMultiKeyIndex(name string, indexer MultiKeyIndexer, unique bool, refKey func([]byte) []byte) Index {
	return compactIndex{
		name:   name,
		id:     append([]byte(indexPrefix), []byte(name+":")...),
		index:  indexer,
		unique: unique,
		refKey: refKey,
	}
}

func asMultiKeyIndexer(indexer Indexer) MultiKeyIndexer {
	return func(obj Object) ([][]byte, error) {
		key, err := indexer(obj)
		switch {
		case err != nil:
			return nil, err
		case key == nil:
			return nil, nil
		}
		return [][]byte{key}, nil
	}
}

// indexKey is the full key we store in the db, including prefix.
// We copy into a new array rather than use append, as we don't
// want consecutive calls to overwrite the same byte array.
func (i compactIndex) indexKey(key []byte) []byte {
	l := len(i.id)
	out := make([]byte, l+len(key))
	copy(out, i.id)
	copy(out[l:], key)
	return out
}

// Update handles updating the reference to the object in
// the secondary index.
//
// prev == nil means insert
// save == nil means delete
// both == nil is error
// if both != nil and prev.Key() != save.Key() this is an error
func (i compactIndex) Update(db ledger.KVStore, prev Object, save Object) error {
	type s struct{ a, b bool }
	sw := s{prev == nil, save == nil}
	switch sw {
	case s{true, true}:
		return errors.Wrap(errors.ErrHuman, "update requires at least one non-nil object")
	case s{true, false}:
		keys, err := i.index(save)
		if err != nil {
			return err
		}
		for _, key := range keys {
			if err := i.insert(db, key, save.Key()); err != nil {
				return err
			}
		}
		return nil
	case s{false, true}:
		keys, err := i.index(prev)
		if err != nil {
			return err
		}
		for _, key := range keys {
			if err := i.remove(db, key, prev.Key()); err != nil {
				return err
			}
		}
		return nil
	case s{false, false}:
		return i.move(db, prev, save)
	}
	return errors.Wrap(errors.ErrHuman, "you have violated the rules of boolean logic")
}

// GetAt returns a list of all pk stored under this index key, may be
// nil when empty.
func (i compactIndex) GetAt(db ledger.ReadOnlyKVStore, index []byte) ([][]byte, error) {
	key := i.indexKey(index)
	val, err := db.Get(key)
	if err != nil {
		return nil, err
	}
	if val == nil {
		return nil, nil
	}
	if i.unique {
		return [][]byte{val}, nil
	}
	var data MultiRef
	if err := data.Unmarshal(val); err != nil {
		return nil, err
	}
	return data.GetRefs(), nil
}

// GetLike calculates the index for the given pattern, and
// returns a list of all pk that match (may be nil when empty)
func (i compactIndex) GetLike(db ledger.ReadOnlyKVStore, pattern Object) ([][]byte, error) {
	indexes, err := i.index(pattern)
	if err != nil {
		return nil, err
	}
	var r [][]byte
	for _, index := range indexes {
		pks, err := i.GetAt(db, index)
		if err != nil {
			return nil, err
		}
		if i.unique {
			return pks, nil
		}
		r = append(r, pks...)
	}
	return deduplicate(r), nil
}

func deduplicate(s [][]byte) [][]byte {
	for i := 0; i < len(s); i++ {
		for j := i + 1; j < len(s); j++ {
			if bytes.Equal(s[i], s[j]) {
				s = append(s[0:j], s[j+1:]...)
			}
		}
	}
	return s
}

// Query handles queries from the QueryRouter
func (i compactIndex) Query(db ledger.ReadOnlyKVStore, mod string, data []byte) ([]ledger.Model, error) {
	switch mod {
	case ledger.KeyQueryMod:
		refs, err := i.GetAt(db, data)
		if err != nil {
			return nil, err
		}
		return i.loadRefs(db, refs)
	case ledger.PrefixQueryMod:
		refs, err := i.getPrefix(db, data)
		if err != nil {
			return nil, err
		}
		return i.loadRefs(db, refs)
	default:
		return nil, errors.Wrap(errors.ErrInput, "not implemented: "+mod)
	}
}

// getPrefix returns all references that have an index that
// begins with a given prefix
func (i compactIndex) getPrefix(db ledger.ReadOnlyKVStore, prefix []byte) ([][]byte, error) {
	dbPrefix := i.indexKey(prefix)
	start, end := prefixRange(dbPrefix)
	itr, err := db.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	defer itr.Close()

	var data [][]byte
	for itr.Valid() {
		if i.unique {
			data = append(data, itr.Value())
		} else {
			tmp := new(MultiRef)
			if err := tmp.Unmarshal(itr.Value()); err != nil {
				return nil, err
			}
			data = append(data, tmp.Refs...)
		}
		if err := itr.Next(); err != nil {
			return nil, err
		}
	}
	return data, nil
}

func (i compactIndex) loadRefs(db ledger.ReadOnlyKVStore, refs [][]byte) ([]ledger.Model, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	res := make([]ledger.Model, len(refs))
	for j, ref := range refs {
		key := i.refKey(ref)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		res[j] = ledger.Model{
			Key:   key,
			Value: value,
		}
	}
	return res, nil
}

func (i compactIndex) move(db ledger.KVStore, prev Object, save Object) error {
	// if the primary key is not equal, we have a problem
	if !bytes.Equal(prev.Key(), save.Key()) {
		return errors.Wrap(errors.ErrImmutable, "cannot modify the primary key of an object")
	}

	oldKeys, err := i.index(prev)
	if err != nil {
		return err
	}
	newKeys, err := i.index(save)
	if err != nil {
		return err
	}
	keysToAdd := subtract(newKeys, oldKeys)
	keysToRemove := subtract(oldKeys, newKeys)

	// remove unused keys
	for _, oldKey := range keysToRemove {
		if err = i.remove(db, oldKey, prev.Key()); err != nil {
			return err
		}
	}

	// add new keys
	for _, newKey := range keysToAdd {
		if err = i.insert(db, newKey, prev.Key()); err != nil {
			return err
		}
	}
	return nil
}

// subtract returns all elements of minuend that are not in subtrahend.
func subtract(minuend [][]byte, subtrahend [][]byte) [][]byte {
	if minuend == nil {
		return nil
	}
	r := make([][]byte, 0)
OUTER:
	for _, m := range minuend {
		for _, s := range subtrahend {
			if bytes.Equal(m, s) {
				continue OUTER
			}
		}
		r = append(r, m)
	}
	return r
}

func (i compactIndex) remove(db ledger.KVStore, index []byte, pk []byte) error {
	// don't deal with empty keys
	if len(index) == 0 {
		return nil
	}

	key := i.indexKey(index)
	cur, err := db.Get(key)
	if err != nil {
		return err
	}
	if cur == nil {
		return errors.Wrap(errors.ErrNotFound, "cannot remove index from nothing")
	}
	if i.unique {
		// if something else was here, don't delete
		if !bytes.Equal(cur, pk) {
			return errors.Wrap(errors.ErrNotFound, "cannot remove index from invalid object")
		}
		return db.Delete(key)
	}

	// otherwise, remove one from a list....
	var data = new(MultiRef)
	if err := data.Unmarshal(cur); err != nil {
		return err
	}
	if err := data.Remove(pk); err != nil {
		return err
	}
	// nothing left, delete this key
	if len(data.Refs) == 0 {
		return db.Delete(key)
	}
	// others left, just update state
	save, err := data.Marshal()
	if err != nil {
		return err
	}
	return db.Set(key, save)
}

func (i compactIndex) insert(db ledger.KVStore, index []byte, pk []byte) error {
	// don't deal with empty keys
	if len(index) == 0 {
		return nil
	}

	key := i.indexKey(index)
	cur, err := db.Get(key)
	if err != nil {
		return err
	}

	if i.unique {
		if cur != nil {
			return errors.Wrap(errors.ErrDuplicate, i.name)
		}
		return db.Set(key, pk)
	}

	// otherwise, add one to a list....
	var data = new(MultiRef)
	if cur != nil {
		if err := data.Unmarshal(cur); err != nil {
			return err
		}
	}
	if err := data.Add(pk); err != nil {
		return err
	}

	save, err := data.Marshal()
	if err != nil {
		return err
	}
	return db.Set(key, save)
}
