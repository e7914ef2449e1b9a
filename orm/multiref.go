package orm

import (
	"bytes"
	"sort"

	"github.com/quorumnet/ledger/errors"
)

var _ CloneableData = (*MultiRef)(nil)

// NewMultiRef builds a sorted set from the given primary keys.
func NewMultiRef(refs ...[]byte) (*MultiRef, error) {
	m := new(MultiRef)
	for _, r := range refs {
		if err := m.Add(r); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Add inserts the primary key, keeping the set sorted. Errors if the
// key is already present.
func (m *MultiRef) Add(ref []byte) error {
	i := m.search(ref)
	if i < len(m.Refs) && bytes.Equal(m.Refs[i], ref) {
		return errors.Wrapf(errors.ErrDuplicate, "ref %X", ref)
	}
	m.Refs = append(m.Refs, nil)
	copy(m.Refs[i+1:], m.Refs[i:])
	m.Refs[i] = ref
	return nil
}

// Remove takes the primary key out of the set. Errors if the key is
// not present.
func (m *MultiRef) Remove(ref []byte) error {
	i := m.search(ref)
	if i == len(m.Refs) || !bytes.Equal(m.Refs[i], ref) {
		return errors.Wrapf(errors.ErrNotFound, "ref %X", ref)
	}
	m.Refs = append(m.Refs[:i], m.Refs[i+1:]...)
	return nil
}

// search returns where ref is, or where it belongs if absent
func (m *MultiRef) search(ref []byte) int {
	return sort.Search(len(m.Refs), func(i int) bool {
		return bytes.Compare(m.Refs[i], ref) >= 0
	})
}

// Copy makes an independent set with the same keys
func (m *MultiRef) Copy() CloneableData {
	refs := make([][]byte, len(m.Refs))
	copy(refs, m.Refs)
	return &MultiRef{Refs: refs}
}

// Validate refuses an empty set, an index entry without any primary
// key behind it should have been deleted instead.
func (m *MultiRef) Validate() error {
	if len(m.Refs) == 0 {
		return errors.Wrap(errors.ErrEmpty, "no references")
	}
	return nil
}
