package escrow

import (
	"github.com/quorumnet/ledger"
	"github.com/quorumnet/ledger/errors"
	"github.com/quorumnet/ledger/orm"
)

const (
	// BucketName is where we store the transfer records
	BucketName = "escrow"

	// MaxApprovers limits the quorum size of one transfer
	MaxApprovers = 5
)

var _ orm.CloneableData = (*MultisigTransfer)(nil)

// Validate ensures the record is well formed before saving
func (t *MultisigTransfer) Validate() error {
	for _, a := range t.ApprovedBy {
		if err := a.Validate(); err != nil {
			return errors.Wrap(err, "approved by")
		}
	}
	if _, ok := State_name[int32(t.State)]; !ok {
		return errors.Wrapf(errors.ErrState, "unknown state %d", t.State)
	}
	return nil
}

// Copy makes a deep copy of the record
func (t *MultisigTransfer) Copy() orm.CloneableData {
	approved := make([]ledger.PublicKey, len(t.ApprovedBy))
	for i, a := range t.ApprovedBy {
		approved[i] = a.Clone()
	}
	if len(approved) == 0 {
		approved = nil
	}
	return &MultisigTransfer{
		ApprovedBy: approved,
		State:      t.State,
	}
}

// HasApproved checks if this identity approved already
func (t *MultisigTransfer) HasApproved(key ledger.PublicKey) bool {
	for _, a := range t.ApprovedBy {
		if a.Equals(key) {
			return true
		}
	}
	return false
}

// AsTransfer safely extracts a MultisigTransfer value from the object
func AsTransfer(obj orm.Object) *MultisigTransfer {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*MultisigTransfer)
}

// NewTransfer wraps a record in a bucket object, keyed by the hash of
// the initiating operation
func NewTransfer(hash ledger.TxHash, transfer *MultisigTransfer) orm.Object {
	return orm.NewSimpleObj(hash, transfer)
}

// TransferBucket is a type-safe wrapper around orm.Bucket
type TransferBucket struct {
	orm.Bucket
}

// NewTransferBucket initializes a TransferBucket
func NewTransferBucket() TransferBucket {
	b := orm.NewBucket(BucketName, NewTransfer(nil, new(MultisigTransfer)))
	return TransferBucket{Bucket: b}
}

// GetTransfer loads one record, nil if the hash identifies no transfer
func (b TransferBucket) GetTransfer(db ledger.ReadOnlyKVStore, hash ledger.TxHash) (*MultisigTransfer, error) {
	obj, err := b.Get(db, hash)
	if err != nil {
		return nil, err
	}
	return AsTransfer(obj), nil
}
