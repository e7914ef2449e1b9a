package wallet

import (
	"crypto/sha256"
	"regexp"

	"github.com/quorumnet/ledger"
	"github.com/quorumnet/ledger/errors"
	"github.com/quorumnet/ledger/orm"
)

const (
	// BucketName is where we store the wallets
	BucketName = "wallet"
	// IndexName is the index to query wallets by display name
	IndexName = "name"
)

// IsWalletName checks if this is a valid display name
var IsWalletName = regexp.MustCompile(`^[a-zA-Z0-9_\-. ]{1,64}$`).MatchString

var _ orm.CloneableData = (*Wallet)(nil)

// Validate ensures the wallet is well formed before saving
func (w *Wallet) Validate() error {
	if err := w.PubKey.Validate(); err != nil {
		return errors.Wrap(err, "pub key")
	}
	if !IsWalletName(w.Name) {
		return errors.Wrapf(errors.ErrInput, "invalid wallet name: %q", w.Name)
	}
	if len(w.HistoryHash) != 0 {
		if err := w.HistoryHash.Validate(); err != nil {
			return errors.Wrap(err, "history hash")
		}
	}
	return nil
}

// Copy makes a deep copy of the wallet
func (w *Wallet) Copy() orm.CloneableData {
	return &Wallet{
		PubKey:      w.PubKey.Clone(),
		Name:        w.Name,
		Balance:     w.Balance,
		HistoryLen:  w.HistoryLen,
		HistoryHash: append(ledger.TxHash(nil), w.HistoryHash...),
	}
}

// AddHistory appends a balance-affecting event to the audit trail,
// incrementing the length and folding the operation hash into the
// rolling digest. Events without a hash (genesis credits) leave the
// trail untouched.
func (w *Wallet) AddHistory(txhash ledger.TxHash) {
	if len(txhash) == 0 {
		return
	}
	h := sha256.New()
	h.Write(w.HistoryHash)
	h.Write(txhash)
	w.HistoryLen++
	w.HistoryHash = h.Sum(nil)
}

// AsWallet safely extracts a Wallet value from the object
func AsWallet(obj orm.Object) *Wallet {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*Wallet)
}

// NewWallet creates an empty wallet for this identity,
// serves as an object for the bucket
func NewWallet(key ledger.PublicKey) orm.Object {
	return orm.NewSimpleObj(key, &Wallet{
		PubKey: key,
		Name:   "",
	})
}

// WalletWith creates a named wallet with the given identity and name
func WalletWith(key ledger.PublicKey, name string) orm.Object {
	return orm.NewSimpleObj(key, &Wallet{
		PubKey: key,
		Name:   name,
	})
}

// WalletBucket is a type-safe wrapper around orm.Bucket
type WalletBucket struct {
	orm.Bucket
}

// NewWalletBucket initializes a WalletBucket
// and sets up an index by display name
func NewWalletBucket() WalletBucket {
	b := orm.NewBucket(BucketName, NewWallet(nil)).
		WithIndex(IndexName, nameIndex, false)
	return WalletBucket{Bucket: b}
}

// Save enforces the proper type
func (b WalletBucket) Save(db ledger.KVStore, obj orm.Object) error {
	if _, ok := obj.Value().(*Wallet); !ok {
		return errors.Wrapf(errors.ErrModel, "invalid type: %T", obj.Value())
	}
	return b.Bucket.Save(db, obj)
}

// nameIndex indexes a wallet under its display name
func nameIndex(obj orm.Object) ([]byte, error) {
	wallet := AsWallet(obj)
	if wallet == nil {
		return nil, errors.Wrap(errors.ErrHuman, "cannot take index of nil wallet")
	}
	return []byte(wallet.Name), nil
}
