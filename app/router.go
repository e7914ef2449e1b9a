package app

import (
	"fmt"
	"regexp"

	"github.com/quorumnet/ledger"
	"github.com/quorumnet/ledger/errors"
)

// isPath constrains message paths to a known alphabet
var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router is a ledger.Registry that dispatches transactions to the
// handler registered for the message path.
type Router struct {
	routes map[string]ledger.Handler
}

var _ ledger.Registry = (*Router)(nil)
var _ ledger.Handler = (*Router)(nil)

// NewRouter initializes a router with no routes.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]ledger.Handler, 10),
	}
}

// Handle implements ledger.Registry. Panics on invalid path or
// duplicate registration, as both are application setup errors.
func (r *Router) Handle(m ledger.Msg, h ledger.Handler) {
	path := m.Path()
	if !isPath(path) {
		panic(fmt.Sprintf("invalid message path: %s", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering message path: %s", path))
	}
	r.routes[path] = h
}

// Check dispatches to the registered handler.
func (r *Router) Check(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load message")
	}
	h, ok := r.routes[msg.Path()]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", msg.Path())
	}
	return h.Check(ctx, store, tx)
}

// Deliver dispatches to the registered handler.
func (r *Router) Deliver(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load message")
	}
	h, ok := r.routes[msg.Path()]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", msg.Path())
	}
	return h.Deliver(ctx, store, tx)
}
