package txlog

import (
	"github.com/quorumnet/ledger"
	"github.com/quorumnet/ledger/errors"
	"github.com/quorumnet/ledger/orm"
)

// BucketName is where we store the operation records
const BucketName = "txlog"

var _ orm.CloneableData = (*TxRecord)(nil)

// Validate ensures the record is complete before saving
func (r *TxRecord) Validate() error {
	if err := r.Author.Validate(); err != nil {
		return errors.Wrap(err, "author")
	}
	if len(r.Raw) == 0 {
		return errors.Wrap(errors.ErrEmpty, "raw operation bytes")
	}
	return nil
}

// Copy makes a deep copy of the record
func (r *TxRecord) Copy() orm.CloneableData {
	return &TxRecord{
		Position: r.Position,
		Author:   r.Author.Clone(),
		Raw:      append([]byte(nil), r.Raw...),
		Result:   r.Result,
	}
}

// AsRecord safely extracts a TxRecord value from the object
func AsRecord(obj orm.Object) *TxRecord {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*TxRecord)
}

// NewRecord wraps a record in a bucket object, keyed by the hash of
// the raw operation bytes
func NewRecord(hash ledger.TxHash, record *TxRecord) orm.Object {
	return orm.NewSimpleObj(hash, record)
}

// RecordBucket is a type-safe wrapper around orm.Bucket
type RecordBucket struct {
	orm.Bucket
}

// NewRecordBucket initializes a RecordBucket
func NewRecordBucket() RecordBucket {
	b := orm.NewBucket(BucketName, NewRecord(nil, new(TxRecord)))
	return RecordBucket{Bucket: b}
}

// GetRecord loads one record, nil if the hash was never delivered
func (b RecordBucket) GetRecord(db ledger.ReadOnlyKVStore, hash ledger.TxHash) (*TxRecord, error) {
	obj, err := b.Get(db, hash)
	if err != nil {
		return nil, err
	}
	return AsRecord(obj), nil
}

// Sequence of the positions assigned to delivered operations
func (b RecordBucket) PositionSequence() orm.Sequence {
	return b.Bucket.Sequence("position")
}
