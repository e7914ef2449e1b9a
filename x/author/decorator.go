/*
Package author establishes who submitted a transaction.

Every transaction carries the public key of its author. The decorator
validates that key and makes it available to all handlers down the
stack through the context, behind the x.Authenticator interface.
*/
package author

import (
	"github.com/quorumnet/ledger"
	"github.com/quorumnet/ledger/errors"
)

// AuthoredTx is a transaction that identifies who submitted it
type AuthoredTx interface {
	ledger.Tx

	// GetAuthor returns the public key of the submitting account
	GetAuthor() ledger.PublicKey
}

// Decorator adds the tx author to the context
type Decorator struct{}

var _ ledger.Decorator = Decorator{}

// NewDecorator returns a decorator that requires every transaction to
// carry a valid author.
func NewDecorator() Decorator {
	return Decorator{}
}

// Check establishes the author before calling down the stack.
func (d Decorator) Check(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx, next ledger.Checker) (*ledger.CheckResult, error) {
	ctx, err := d.authenticate(ctx, tx)
	if err != nil {
		return nil, err
	}
	return next.Check(ctx, store, tx)
}

// Deliver establishes the author before calling down the stack.
func (d Decorator) Deliver(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx, next ledger.Deliverer) (*ledger.DeliverResult, error) {
	ctx, err := d.authenticate(ctx, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, store, tx)
}

func (d Decorator) authenticate(ctx ledger.Context, tx ledger.Tx) (ledger.Context, error) {
	atx, ok := tx.(AuthoredTx)
	if !ok {
		return nil, errors.Wrap(errors.ErrType, "transaction has no author")
	}
	author := atx.GetAuthor()
	if err := author.Validate(); err != nil {
		return nil, errors.Wrap(err, "author")
	}
	return withAuthor(ctx, author), nil
}
