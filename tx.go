package ledger

import (
	"reflect"

	"github.com/quorumnet/ledger/errors"
)

// Marshaller is anything that can be represented in binary.
//
// Marshal may validate the data before serializing it and unless you
// previously validated the struct, errors should be expected.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent supports Marshal and Unmarshal.
//
// This is separated from Marshaller, as this almost always requires
// a pointer, and functions that only need to marshal bytes can
// use the Marshaller interface to access non-pointers.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Msg is a request to make a single state transition. It is the payload
// of a transaction and must be validated by the handlers. All
// authentication information lives in the wrapping Tx.
type Msg interface {
	Persistent

	// Validate performs a sanity check on the message content that
	// does not require access to any state.
	Validate() error

	// Path returns the message path used by the router to locate the
	// handler. Must be alphanumeric [0-9a-zA-Z_\-/]+.
	Path() string
}

// Tx represents an operation as accepted into the ordered log. It
// carries the message together with the author identity, already
// verified by the ordering layer.
type Tx interface {
	Persistent

	// GetMsg returns the action we wish to communicate.
	GetMsg() (Msg, error)
}

// TxDecoder can parse bytes into a Tx.
type TxDecoder func(txBytes []byte) (Tx, error)

// GetPath returns the path of the message, or (missing) if no message.
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg extracts the message from the transaction, ensures it is of
// the expected type and validates it. The result is written into the
// destination, which must be a pointer of the same message type.
func LoadMsg(tx Tx, destination Msg) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get message")
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}

	d := reflect.ValueOf(destination)
	if d.Kind() != reflect.Ptr {
		return errors.Wrap(errors.ErrType, "destination must be a pointer")
	}
	m := reflect.ValueOf(msg)
	if m.Type() != d.Type() {
		return errors.Wrapf(errors.ErrType, "want %T, got %T", destination, msg)
	}
	d.Elem().Set(m.Elem())
	return nil
}
