package wallet

import (
	"github.com/quorumnet/ledger"
	"github.com/quorumnet/ledger/errors"
	"github.com/quorumnet/ledger/x"
)

// Gas costs of the operations, for flow control
const (
	createWalletCost int64 = 50
	issueCost        int64 = 50
	sendTxCost       int64 = 100
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r ledger.Registry, auth x.Authenticator) {
	bucket := NewWalletBucket()
	r.Handle(&CreateWalletMsg{}, CreateWalletHandler{auth: auth, control: NewController(bucket)})
	r.Handle(&IssueMsg{}, IssueHandler{auth: auth, control: NewController(bucket)})
	r.Handle(&SendMsg{}, SendHandler{auth: auth, control: NewController(bucket)})
}

// RegisterQuery will register wallets as "/wallets"
func RegisterQuery(qr ledger.QueryRouter) {
	NewWalletBucket().Register("wallets", qr)
}

// CreateWalletHandler creates a zero balance wallet for the author
type CreateWalletHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ ledger.Handler = CreateWalletHandler{}

// Check verifies the author does not have a wallet yet
func (h CreateWalletHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &ledger.CheckResult{GasAllocated: createWalletCost}, nil
}

// Deliver creates the wallet
func (h CreateWalletHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	msg, author, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Create(db, author, msg.Name); err != nil {
		return nil, err
	}
	return &ledger.DeliverResult{Data: author}, nil
}

func (h CreateWalletHandler) validate(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*CreateWalletMsg, ledger.PublicKey, error) {
	var msg CreateWalletMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	author := x.MainAuthor(ctx, h.auth)
	if author == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no author")
	}
	existing, err := h.control.Wallet(db, author)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, errors.Wrapf(ErrDuplicateWallet, "%s", author)
	}
	return &msg, author, nil
}

// IssueHandler credits newly created funds to the author's wallet
type IssueHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ ledger.Handler = IssueHandler{}

// Check verifies the issuance preconditions
func (h IssueHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &ledger.CheckResult{GasAllocated: issueCost}, nil
}

// Deliver credits the author and updates the issuance total
func (h IssueHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	msg, author, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	txhash, _ := ledger.GetTxHash(ctx)
	if err := h.control.Issue(db, author, msg.Amount, txhash); err != nil {
		return nil, err
	}
	return &ledger.DeliverResult{}, nil
}

func (h IssueHandler) validate(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*IssueMsg, ledger.PublicKey, error) {
	var msg IssueMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	author := x.MainAuthor(ctx, h.auth)
	if author == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no author")
	}
	recipient, err := h.control.Wallet(db, author)
	if err != nil {
		return nil, nil, err
	}
	if recipient == nil {
		return nil, nil, errors.Wrapf(ErrReceiverNotFound, "%s", author)
	}
	if msg.Amount == 0 {
		return nil, nil, errors.Wrap(ErrInvalidAmount, "zero amount")
	}
	return &msg, author, nil
}

// SendHandler moves funds from the author to the recipient in one step
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ ledger.Handler = SendHandler{}

// Check verifies the transfer preconditions
func (h SendHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &ledger.CheckResult{GasAllocated: sendTxCost}, nil
}

// Deliver moves the funds if all preconditions are met
func (h SendHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	msg, author, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	txhash, _ := ledger.GetTxHash(ctx)
	if err := h.control.Move(db, author, msg.To, msg.Amount, txhash); err != nil {
		return nil, err
	}
	return &ledger.DeliverResult{}, nil
}

func (h SendHandler) validate(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*SendMsg, ledger.PublicKey, error) {
	var msg SendMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	author := x.MainAuthor(ctx, h.auth)
	if author == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no author")
	}
	return &msg, author, nil
}
