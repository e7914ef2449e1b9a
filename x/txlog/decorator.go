package txlog

import (
	"github.com/quorumnet/ledger"
	"github.com/quorumnet/ledger/errors"
	"github.com/quorumnet/ledger/x"
)

// Decorator assigns every operation its hash and log position, and on
// delivery writes the permanent TxRecord. It must sit outside the
// savepoint so that failed operations are recorded as well.
type Decorator struct {
	auth   x.Authenticator
	bucket RecordBucket
}

var _ ledger.Decorator = Decorator{}

// NewDecorator creates the recording decorator
func NewDecorator(auth x.Authenticator) Decorator {
	return Decorator{
		auth:   auth,
		bucket: NewRecordBucket(),
	}
}

// Check only establishes the operation hash in the context, nothing is
// recorded until delivery. Replayed bytes are refused here already so
// they never reach the ordering node.
func (d Decorator) Check(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx, next ledger.Checker) (*ledger.CheckResult, error) {
	raw, err := tx.Marshal()
	if err != nil {
		return nil, errors.Wrap(errors.ErrMsg, "cannot encode operation")
	}
	hash := ledger.NewTxHash(raw)
	if err := d.refuseReplay(store, hash); err != nil {
		return nil, err
	}
	ctx = ledger.WithTxHash(ctx, hash)
	return next.Check(ctx, store, tx)
}

// Deliver records the operation under its hash, including the result
// code of the execution, and passes hash and position down the chain.
func (d Decorator) Deliver(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx, next ledger.Deliverer) (*ledger.DeliverResult, error) {
	raw, err := tx.Marshal()
	if err != nil {
		return nil, errors.Wrap(errors.ErrMsg, "cannot encode operation")
	}
	hash := ledger.NewTxHash(raw)
	if err := d.refuseReplay(store, hash); err != nil {
		return nil, err
	}

	seq := d.bucket.PositionSequence()
	pos, err := seq.Next(store)
	if err != nil {
		return nil, err
	}

	ctx = ledger.WithTxHash(ctx, hash)
	ctx = ledger.WithLogPosition(ctx, pos)

	res, resErr := next.Deliver(ctx, store, tx)

	code, _ := errors.ABCIInfo(resErr, false)
	record := &TxRecord{
		Position: pos,
		Author:   x.MainAuthor(ctx, d.auth),
		Raw:      raw,
		Result:   code,
	}
	if err := d.bucket.Save(store, NewRecord(hash, record)); err != nil {
		return nil, err
	}
	return res, resErr
}

// refuseReplay errors when the hash is already in the log. Records are
// immutable once written, so byte-identical bytes are rejected before
// anything executes and the original record stays untouched.
func (d Decorator) refuseReplay(store ledger.ReadOnlyKVStore, hash ledger.TxHash) error {
	existing, err := d.bucket.GetRecord(store, hash)
	if err != nil {
		return err
	}
	if existing != nil {
		return errors.Wrapf(errors.ErrDuplicate, "operation %s already at position %d", hash, existing.Position)
	}
	return nil
}
