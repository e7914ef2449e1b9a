package iavl

import (
	"sync"

	"github.com/quorumnet/ledger/store"
)

// lazyIterator streams the results of a tree range scan over a channel,
// so we never materialize the whole range in memory.
type lazyIterator struct {
	data    store.Model
	hasMore bool
	read    chan store.Model
	stop    chan struct{}
	once    sync.Once
}

var _ store.Iterator = (*lazyIterator)(nil)

func newLazyIterator() *lazyIterator {
	return &lazyIterator{
		read: make(chan store.Model),
		// buffered, so Close never blocks the producing goroutine
		stop: make(chan struct{}, 1),
	}
}

// add is the tree range callback. Returning true stops the scan.
func (i *lazyIterator) add(key []byte, value []byte) bool {
	m := store.Model{Key: key, Value: value}
	select {
	case i.read <- m:
		return false
	case <-i.stop:
		return true
	}
}

// finish must be called by the producer when the scan is done.
func (i *lazyIterator) finish() {
	close(i.read)
}

// skipToStart positions the iterator on the first item, if any.
func (i *lazyIterator) skipToStart() {
	i.data, i.hasMore = <-i.read
}

func (i *lazyIterator) Next() error {
	i.data, i.hasMore = <-i.read
	return nil
}

func (i *lazyIterator) Close() {
	i.once.Do(func() {
		i.stop <- struct{}{}
	})
}

func (i *lazyIterator) Valid() bool {
	return i.hasMore
}

func (i *lazyIterator) Key() []byte {
	if !i.hasMore {
		panic("read after end of iterator")
	}
	return i.data.Key
}

func (i *lazyIterator) Value() []byte {
	if !i.hasMore {
		panic("read after end of iterator")
	}
	return i.data.Value
}
