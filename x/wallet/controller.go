package wallet

import (
	"encoding/binary"
	"math"

	"github.com/quorumnet/ledger"
	"github.com/quorumnet/ledger/errors"
	"github.com/quorumnet/ledger/orm"
)

// issuedKey is the raw db key of the total issuance counter.
// The "_c." prefix keeps it out of the bucket and index key spaces.
var issuedKey = []byte("_c.wallet:issued")

// Controller is the functional interface to wallets. Every balance
// mutation goes through it, so every mutation leaves a history entry.
type Controller struct {
	bucket WalletBucket
}

// NewController returns a controller over the given bucket
func NewController(bucket WalletBucket) Controller {
	return Controller{bucket: bucket}
}

// Wallet loads one wallet, nil if the identity has none
func (c Controller) Wallet(db ledger.ReadOnlyKVStore, key ledger.PublicKey) (*Wallet, error) {
	obj, err := c.bucket.Get(db, key)
	if err != nil {
		return nil, err
	}
	return AsWallet(obj), nil
}

// Create makes a new wallet with a zero balance. The display name is
// fixed at creation.
func (c Controller) Create(db ledger.KVStore, key ledger.PublicKey, name string) error {
	obj, err := c.bucket.Get(db, key)
	if err != nil {
		return err
	}
	if obj != nil {
		return errors.Wrapf(ErrDuplicateWallet, "%s", key)
	}
	return c.bucket.Save(db, WalletWith(key, name))
}

// Deposit credits the wallet and records the event in its history.
// The receiver must already exist.
func (c Controller) Deposit(db ledger.KVStore, key ledger.PublicKey, amount uint64, txhash ledger.TxHash) error {
	recipient, err := c.Wallet(db, key)
	if err != nil {
		return err
	}
	if recipient == nil {
		return errors.Wrapf(ErrReceiverNotFound, "%s", key)
	}
	if recipient.Balance > math.MaxUint64-amount {
		return errors.Wrapf(errors.ErrOverflow, "deposit %d", amount)
	}
	recipient.Balance += amount
	if err := addHistory(db, key, recipient, txhash); err != nil {
		return err
	}
	return c.bucket.Save(db, orm.NewSimpleObj(key, recipient))
}

// Withdraw debits the wallet and records the event in its history.
func (c Controller) Withdraw(db ledger.KVStore, key ledger.PublicKey, amount uint64, txhash ledger.TxHash) error {
	sender, err := c.Wallet(db, key)
	if err != nil {
		return err
	}
	if sender == nil {
		return errors.Wrapf(ErrSenderNotFound, "%s", key)
	}
	if sender.Balance < amount {
		return errors.Wrapf(ErrInsufficientFunds, "balance %d, needed %d", sender.Balance, amount)
	}
	sender.Balance -= amount
	if err := addHistory(db, key, sender, txhash); err != nil {
		return err
	}
	return c.bucket.Save(db, orm.NewSimpleObj(key, sender))
}

// addHistory folds the operation hash into the wallet audit trail and
// stores the indexed history entry the query interface serves.
func addHistory(db ledger.KVStore, key ledger.PublicKey, w *Wallet, txhash ledger.TxHash) error {
	if len(txhash) == 0 {
		return nil
	}
	index := w.HistoryLen
	w.AddHistory(txhash)
	return db.Set(HistoryKey(key, index), txhash)
}

// Move transfers the amount from src to dest. Preconditions are
// verified in the order fixed by the external error codes: missing
// sender, missing receiver, insufficient funds, self transfer, zero
// amount.
func (c Controller) Move(db ledger.KVStore, src, dest ledger.PublicKey, amount uint64, txhash ledger.TxHash) error {
	sender, err := c.Wallet(db, src)
	if err != nil {
		return err
	}
	if sender == nil {
		return errors.Wrapf(ErrSenderNotFound, "%s", src)
	}
	recipient, err := c.Wallet(db, dest)
	if err != nil {
		return err
	}
	if recipient == nil {
		return errors.Wrapf(ErrReceiverNotFound, "%s", dest)
	}
	if sender.Balance < amount {
		return errors.Wrapf(ErrInsufficientFunds, "balance %d, needed %d", sender.Balance, amount)
	}
	if src.Equals(dest) {
		return errors.Wrapf(ErrSameAccount, "%s", src)
	}
	if amount == 0 {
		return errors.Wrap(ErrInvalidAmount, "zero amount")
	}

	if err := c.Withdraw(db, src, amount, txhash); err != nil {
		return err
	}
	return c.Deposit(db, dest, amount, txhash)
}

// Issue credits newly created funds to the wallet and adds them to the
// total issuance counter.
func (c Controller) Issue(db ledger.KVStore, key ledger.PublicKey, amount uint64, txhash ledger.TxHash) error {
	if amount == 0 {
		return errors.Wrap(ErrInvalidAmount, "zero amount")
	}
	total, err := c.TotalIssued(db)
	if err != nil {
		return err
	}
	if total > math.MaxUint64-amount {
		return errors.Wrapf(errors.ErrOverflow, "issue %d", amount)
	}
	if err := c.Deposit(db, key, amount, txhash); err != nil {
		return err
	}
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, total+amount)
	return db.Set(issuedKey, raw)
}

// TotalIssued returns the sum of all funds ever issued
func (c Controller) TotalIssued(db ledger.ReadOnlyKVStore) (uint64, error) {
	raw, err := db.Get(issuedKey)
	if err != nil {
		return 0, err
	}
	if raw == nil {
		return 0, nil
	}
	return binary.BigEndian.Uint64(raw), nil
}
