package utils

import (
	"github.com/quorumnet/ledger"
	"github.com/quorumnet/ledger/errors"
)

// Recovery sits above the handlers and turns a panic anywhere below
// into a regular error with the panic code, so one broken operation
// cannot take down the node. The recovered error is logged before it
// travels up, stack trace included.
type Recovery struct{}

var _ ledger.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors
func (r Recovery) Check(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx, next ledger.Checker) (_ *ledger.CheckResult, err error) {
	defer logPanic(ctx, &err)
	defer errors.Recover(&err)
	return next.Check(ctx, store, tx)
}

// Deliver turns panics into normal errors
func (r Recovery) Deliver(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx, next ledger.Deliverer) (_ *ledger.DeliverResult, err error) {
	defer logPanic(ctx, &err)
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}

// logPanic runs after errors.Recover has converted the panic, as
// deferred calls run in reverse order.
func logPanic(ctx ledger.Context, err *error) {
	if *err != nil && errors.ErrPanic.Is(*err) {
		ledger.GetLogger(ctx).Error("operation panicked", "err", *err)
	}
}
