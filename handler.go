package ledger

import (
	"encoding/json"
)

// Handler is a core engine that can process a few specific messages.
type Handler interface {
	Checker
	Deliverer
}

// Checker is a subset of Handler to verify the validity of a
// transaction. It is its own interface to allow better type controls
// in the next arguments in Decorator.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer is a subset of Handler to execute a transaction.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator wraps a Handler to provide common functionality like
// authentication, atomicity or logging, to many handlers.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry is an interface to register your handler, the setup side of
// a router.
type Registry interface {
	// Handle assigns the given handler to handle processing of every
	// message of the provided type.
	Handle(Msg, Handler)
}

// Options are the app options. Each extension can look up its key and
// parse the json as desired.
type Options map[string]json.RawMessage

// ReadOptions reads the values stored under a given key, and parses the
// json into the given obj. Returns an error if it cannot parse. Noop
// and no error if the key is missing.
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	return json.Unmarshal(msg, obj)
}

// Initializer implementations are used to initialize extensions from
// genesis file contents.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}
