package store

import (
	"bytes"

	"github.com/google/btree"
)

// overlayEntry is one snapshotted cache item: a pending write, or a
// pending delete when value is nil and deleted is set.
type overlayEntry struct {
	key     []byte
	value   []byte
	deleted bool
}

// snapshotBtree collects all cache items within the range, in
// iteration order. The KVStore contract forbids writes while an
// iterator is open, so a snapshot observes exactly what a live cursor
// would.
func snapshotBtree(bt *btree.BTree, start, end []byte, reverse bool) []overlayEntry {
	entries := make([]overlayEntry, 0, bt.Len())
	collect := func(item btree.Item) bool {
		switch t := item.(type) {
		case setItem:
			entries = append(entries, overlayEntry{key: t.Key(), value: t.value})
		case deletedItem:
			entries = append(entries, overlayEntry{key: t.Key(), deleted: true})
		}
		return true
	}

	if reverse {
		switch {
		case start == nil && end == nil:
			bt.Descend(collect)
		case start == nil:
			bt.DescendLessOrEqual(bkeyLess{end}, collect)
		case end == nil:
			bt.DescendGreaterThan(bkeyLess{start}, collect)
		default:
			bt.DescendRange(bkeyLess{end}, bkeyLess{start}, collect)
		}
		return entries
	}

	switch {
	case start == nil && end == nil:
		bt.Ascend(collect)
	case start == nil:
		bt.AscendLessThan(bkey{end}, collect)
	case end == nil:
		bt.AscendGreaterOrEqual(bkey{start}, collect)
	default:
		bt.AscendRange(bkey{start}, bkey{end}, collect)
	}
	return entries
}

// source marks where the current item comes from
type source int32

const (
	us source = iota
	parent
	both
	none
)

// mergeIter walks the snapshotted cache overlay and the parent
// iterator in lockstep. Cache entries shadow the parent on equal keys,
// pending deletes hide parent entries entirely.
type mergeIter struct {
	overlay []overlayEntry
	parent  Iterator
	reverse bool
}

var _ Iterator = (*mergeIter)(nil)

func newMergeIter(overlay []overlayEntry, parent Iterator, reverse bool) (*mergeIter, error) {
	iter := &mergeIter{
		overlay: overlay,
		parent:  parent,
		reverse: reverse,
	}
	if err := iter.settle(); err != nil {
		return nil, err
	}
	return iter, nil
}

// Valid implements Iterator and returns true iff it can be read
func (i *mergeIter) Valid() bool {
	return len(i.overlay) > 0 || i.parentValid()
}

// Next moves the iterator to the next key in iteration order.
//
// If Valid returns false, this method will panic.
func (i *mergeIter) Next() error {
	switch i.pick() {
	case us:
		i.overlay = i.overlay[1:]
	case both:
		i.overlay = i.overlay[1:]
		fallthrough
	case parent:
		if err := i.parent.Next(); err != nil {
			return err
		}
	default:
		panic("advanced past the end")
	}
	return i.settle()
}

// Key returns the key of the cursor.
func (i *mergeIter) Key() []byte {
	switch i.pick() {
	case us, both:
		return i.overlay[0].key
	case parent:
		return i.parent.Key()
	default:
		panic("advanced past the end")
	}
}

// Value returns the value of the cursor.
func (i *mergeIter) Value() []byte {
	switch i.pick() {
	case us, both:
		return i.overlay[0].value
	case parent:
		return i.parent.Value()
	default:
		panic("advanced past the end")
	}
}

// Close releases the Iterator.
func (i *mergeIter) Close() {
	if i.parent != nil {
		i.parent.Close()
	}
	i.overlay = nil
}

// settle advances over pending deletes until the cursor rests on a
// readable entry or the end.
func (i *mergeIter) settle() error {
	for {
		src := i.pick()
		if src != us && src != both {
			return nil
		}
		if !i.overlay[0].deleted {
			return nil
		}
		i.overlay = i.overlay[1:]
		// the parent held the deleted key, move past it there too
		if src == both {
			if err := i.parent.Next(); err != nil {
				return err
			}
		}
	}
}

// pick selects the side holding the next key in iteration order
func (i *mergeIter) pick() source {
	if len(i.overlay) == 0 {
		if !i.parentValid() {
			return none
		}
		return parent
	}
	if !i.parentValid() {
		return us
	}

	cmp := bytes.Compare(i.parent.Key(), i.overlay[0].key)
	if i.reverse {
		cmp = -cmp
	}
	switch {
	case cmp < 0:
		return parent
	case cmp > 0:
		return us
	default:
		return both
	}
}

func (i *mergeIter) parentValid() bool {
	return i.parent != nil && i.parent.Valid()
}
