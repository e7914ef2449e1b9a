package ledgertest

import "github.com/quorumnet/ledger"

// Decorator is a mock implementing ledger.Decorator interface.
//
// It passes through to the next element of the stack, counting calls
// and optionally overriding the returned error.
type Decorator struct {
	checkCall int
	CheckErr  error

	deliverCall int
	DeliverErr  error
}

var _ ledger.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx, next ledger.Checker) (*ledger.CheckResult, error) {
	d.checkCall++

	res, err := next.Check(ctx, db, tx)
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return res, err
}

func (d *Decorator) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx, next ledger.Deliverer) (*ledger.DeliverResult, error) {
	d.deliverCall++

	res, err := next.Deliver(ctx, db, tx)
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return res, err
}

func (d *Decorator) CheckCallCount() int {
	return d.checkCall
}

func (d *Decorator) DeliverCallCount() int {
	return d.deliverCall
}

func (d *Decorator) CallCount() int {
	return d.checkCall + d.deliverCall
}
