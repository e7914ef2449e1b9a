package escrow

import (
	"github.com/quorumnet/ledger"
	"github.com/quorumnet/ledger/errors"
	"github.com/quorumnet/ledger/x"
	"github.com/quorumnet/ledger/x/txlog"
	"github.com/quorumnet/ledger/x/wallet"
)

// Gas costs of the operations, for flow control
const (
	initiateCost int64 = 150
	approveCost  int64 = 100
	rejectCost   int64 = 100
)

// RegisterRoutes will instantiate and register all handlers in this
// package. The decoder is needed to read initiating operations back
// from the log when an approval or rejection references them.
func RegisterRoutes(r ledger.Registry, auth x.Authenticator, decoder ledger.TxDecoder) {
	bucket := NewTransferBucket()
	control := wallet.NewController(wallet.NewWalletBucket())
	records := txlog.NewRecordBucket()

	r.Handle(&TransferMultisigMsg{}, InitiateHandler{
		auth:    auth,
		bucket:  bucket,
		control: control,
	})
	r.Handle(&ApproveTransferMsg{}, ApproveHandler{
		auth:    auth,
		bucket:  bucket,
		control: control,
		records: records,
		decoder: decoder,
	})
	r.Handle(&RejectTransferMsg{}, RejectHandler{
		auth:    auth,
		bucket:  bucket,
		control: control,
		records: records,
		decoder: decoder,
	})
}

// RegisterQuery will register transfers as "/escrows"
func RegisterQuery(qr ledger.QueryRouter) {
	NewTransferBucket().Register("escrows", qr)
}

// InitiateHandler opens a multisignature transfer, debiting the
// author immediately so the amount cannot be spent twice while the
// transfer is pending.
type InitiateHandler struct {
	auth    x.Authenticator
	bucket  TransferBucket
	control wallet.Controller
}

var _ ledger.Handler = InitiateHandler{}

// Check verifies the initiation preconditions
func (h InitiateHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &ledger.CheckResult{GasAllocated: initiateCost}, nil
}

// Deliver reserves the funds and creates the transfer record, keyed
// by the hash of this operation
func (h InitiateHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	msg, author, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	txhash, ok := ledger.GetTxHash(ctx)
	if !ok {
		return nil, errors.Wrap(errors.ErrHuman, "no operation hash")
	}

	existing, err := h.bucket.GetTransfer(db, txhash)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.Wrapf(errors.ErrDuplicate, "transfer %s", txhash)
	}

	if err := h.control.Withdraw(db, author, msg.Amount, txhash); err != nil {
		return nil, err
	}
	transfer := &MultisigTransfer{State: State_IN_PROCESS}
	if err := h.bucket.Save(db, NewTransfer(txhash, transfer)); err != nil {
		return nil, err
	}
	return &ledger.DeliverResult{Data: txhash}, nil
}

// validate checks the preconditions in the order fixed by the
// external error codes, first failure wins
func (h InitiateHandler) validate(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*TransferMultisigMsg, ledger.PublicKey, error) {
	var msg TransferMultisigMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	author := x.MainAuthor(ctx, h.auth)
	if author == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no author")
	}

	sender, err := h.control.Wallet(db, author)
	if err != nil {
		return nil, nil, err
	}
	if sender == nil {
		return nil, nil, errors.Wrapf(wallet.ErrSenderNotFound, "%s", author)
	}
	recipient, err := h.control.Wallet(db, msg.To)
	if err != nil {
		return nil, nil, err
	}
	if recipient == nil {
		return nil, nil, errors.Wrapf(wallet.ErrReceiverNotFound, "%s", msg.To)
	}
	if sender.Balance < msg.Amount {
		return nil, nil, errors.Wrapf(wallet.ErrInsufficientFunds, "balance %d, needed %d", sender.Balance, msg.Amount)
	}
	if author.Equals(msg.To) {
		return nil, nil, errors.Wrapf(wallet.ErrSameAccount, "%s", author)
	}
	if msg.Amount == 0 {
		return nil, nil, errors.Wrap(wallet.ErrInvalidAmount, "zero amount")
	}
	if len(msg.Approvers) == 0 {
		return nil, nil, errors.Wrap(ErrEmptyApprovers, "transfer needs a quorum")
	}
	if len(msg.Approvers) > MaxApprovers {
		return nil, nil, errors.Wrapf(ErrTooManyApprovers, "%d > %d", len(msg.Approvers), MaxApprovers)
	}
	for i, a := range msg.Approvers {
		for _, b := range msg.Approvers[:i] {
			if a.Equals(b) {
				return nil, nil, errors.Wrapf(ErrDuplicateApprover, "%s", a)
			}
		}
	}
	return &msg, author, nil
}

// reference is everything an approval or rejection needs to know
// about the transfer it points at: the initiating message, the
// identity that initiated it, and the current registry record.
type reference struct {
	init     *TransferMultisigMsg
	sender   ledger.PublicKey
	transfer *MultisigTransfer
}

// resolveTransfer loads the referenced operation from the log and the
// transfer from the registry. Precondition order: the hash must be
// known, it must point at an initiation, the initiation must have
// succeeded and the transfer must still be open.
func resolveTransfer(db ledger.KVStore, records txlog.RecordBucket, bucket TransferBucket,
	decoder ledger.TxDecoder, hash ledger.TxHash) (*reference, error) {

	record, err := records.GetRecord(db, hash)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, errors.Wrapf(ErrTransferNotFound, "%s", hash)
	}

	refTx, err := decoder(record.Raw)
	if err != nil {
		return nil, errors.Wrap(err, "decode referenced operation")
	}
	refMsg, err := refTx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "referenced operation")
	}
	init, ok := refMsg.(*TransferMultisigMsg)
	if !ok {
		return nil, errors.Wrapf(ErrWrongReferencedType, "%T", refMsg)
	}

	if record.Result != 0 {
		return nil, errors.Wrapf(ErrReferredFailed, "initiation failed with code %d", record.Result)
	}

	transfer, err := bucket.GetTransfer(db, hash)
	if err != nil {
		return nil, err
	}
	if transfer == nil {
		return nil, errors.Wrapf(ErrTransferNotFound, "%s", hash)
	}
	if transfer.State != State_IN_PROCESS {
		return nil, errors.Wrapf(ErrReferredFailed, "state %s", transfer.State)
	}

	return &reference{
		init:     init,
		sender:   record.Author,
		transfer: transfer,
	}, nil
}

// ApproveHandler records one approval and, once every approver has
// approved, credits the recipient and closes the transfer as DONE.
type ApproveHandler struct {
	auth    x.Authenticator
	bucket  TransferBucket
	control wallet.Controller
	records txlog.RecordBucket
	decoder ledger.TxDecoder
}

var _ ledger.Handler = ApproveHandler{}

// Check verifies the approval preconditions
func (h ApproveHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &ledger.CheckResult{GasAllocated: approveCost}, nil
}

// Deliver adds the approval, resolving the transfer when the quorum
// is complete
func (h ApproveHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	msg, ref, author, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	ref.transfer.ApprovedBy = append(ref.transfer.ApprovedBy, author)
	// approvers are distinct and approved_by is a subset, so equal
	// size means set equality regardless of approval order
	if len(ref.transfer.ApprovedBy) == len(ref.init.Approvers) {
		txhash, _ := ledger.GetTxHash(ctx)
		if err := h.control.Deposit(db, ref.init.To, ref.init.Amount, txhash); err != nil {
			return nil, err
		}
		ref.transfer.State = State_DONE
	}
	if err := h.bucket.Save(db, NewTransfer(msg.TxHash, ref.transfer)); err != nil {
		return nil, err
	}
	return &ledger.DeliverResult{}, nil
}

func (h ApproveHandler) validate(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ApproveTransferMsg, *reference, ledger.PublicKey, error) {
	var msg ApproveTransferMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, err
	}
	author := x.MainAuthor(ctx, h.auth)
	if author == nil {
		return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "no author")
	}
	ref, err := resolveTransfer(db, h.records, h.bucket, h.decoder, msg.TxHash)
	if err != nil {
		return nil, nil, nil, err
	}
	if !contains(ref.init.Approvers, author) {
		return nil, nil, nil, errors.Wrapf(ErrNotApprover, "%s", author)
	}
	if ref.transfer.HasApproved(author) {
		return nil, nil, nil, errors.Wrapf(ErrNotApprover, "%s approved already", author)
	}
	return &msg, ref, author, nil
}

// RejectHandler closes the transfer as REJECTED and refunds the
// sender. Any single authorized approver may reject unilaterally.
type RejectHandler struct {
	auth    x.Authenticator
	bucket  TransferBucket
	control wallet.Controller
	records txlog.RecordBucket
	decoder ledger.TxDecoder
}

var _ ledger.Handler = RejectHandler{}

// Check verifies the rejection preconditions
func (h RejectHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &ledger.CheckResult{GasAllocated: rejectCost}, nil
}

// Deliver refunds the sender and closes the transfer. Approvals
// recorded so far stay in the record for audit.
func (h RejectHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	msg, ref, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	txhash, _ := ledger.GetTxHash(ctx)
	if err := h.control.Deposit(db, ref.sender, ref.init.Amount, txhash); err != nil {
		return nil, err
	}
	ref.transfer.State = State_REJECTED
	if err := h.bucket.Save(db, NewTransfer(msg.TxHash, ref.transfer)); err != nil {
		return nil, err
	}
	return &ledger.DeliverResult{}, nil
}

func (h RejectHandler) validate(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*RejectTransferMsg, *reference, error) {
	var msg RejectTransferMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	author := x.MainAuthor(ctx, h.auth)
	if author == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no author")
	}
	ref, err := resolveTransfer(db, h.records, h.bucket, h.decoder, msg.TxHash)
	if err != nil {
		return nil, nil, err
	}
	if !contains(ref.init.Approvers, author) {
		return nil, nil, errors.Wrapf(ErrNotApprover, "%s", author)
	}
	return &msg, ref, nil
}

func contains(keys []ledger.PublicKey, key ledger.PublicKey) bool {
	for _, k := range keys {
		if k.Equals(key) {
			return true
		}
	}
	return false
}
