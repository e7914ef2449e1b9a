package orm

import (
	"reflect"

	"github.com/quorumnet/ledger"
	"github.com/quorumnet/ledger/errors"
)

// Object is one keyed record in a bucket, a thin wrapper around a
// protobuf value. Clone produces a blank instance of the same value
// type for the bucket to unmarshal stored bytes into.
type Object interface {
	Key() []byte
	SetKey([]byte)
	Clone() Object

	// Validate returns an error if the object is not in a valid
	// state to save to the db (eg. field missing, out of range, ...)
	Validate() error
	Value() ledger.Persistent
}

// CloneableData is the value half of an Object: a protobuf message
// that can validate and deep copy itself. Every stored record in this
// system (wallets, transfers, log records, index entries) implements
// it.
type CloneableData interface {
	Validate() error
	ledger.Persistent
	Copy() CloneableData
}

// SimpleObj pairs a key with a CloneableData value. All buckets here
// store their records through it.
type SimpleObj struct {
	key   []byte
	value CloneableData
}

var _ Object = (*SimpleObj)(nil)

// NewSimpleObj combines a key and value into an object
func NewSimpleObj(key []byte, value CloneableData) *SimpleObj {
	return &SimpleObj{
		key:   key,
		value: value,
	}
}

// Key returns the key to store the object under
func (o SimpleObj) Key() []byte {
	return o.key
}

// SetKey updates the key, used when loading by key
func (o *SimpleObj) SetKey(key []byte) {
	o.key = key
}

// Value gets the value stored in the object
func (o SimpleObj) Value() ledger.Persistent {
	return o.value
}

// Validate requires key and value to be set, and delegates to the
// value for the rest
func (o SimpleObj) Validate() error {
	if len(o.key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "missing key")
	}
	if o.value == nil {
		return errors.Wrap(errors.ErrEmpty, "missing value")
	}
	return o.value.Validate()
}

// Clone returns an object with a fresh zero value of the same type,
// safe to unmarshal into. The key is carried over when set.
func (o *SimpleObj) Clone() Object {
	blank := reflect.New(reflect.TypeOf(o.value).Elem()).Interface().(CloneableData)
	res := &SimpleObj{value: blank}
	if len(o.key) > 0 {
		res.key = append([]byte(nil), o.key...)
	}
	return res
}
