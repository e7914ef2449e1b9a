package app

import (
	"github.com/quorumnet/ledger"
	"github.com/quorumnet/ledger/errors"
	"github.com/quorumnet/ledger/x/author"
	"github.com/quorumnet/ledger/x/escrow"
	"github.com/quorumnet/ledger/x/wallet"
)

// make sure tx fulfills all interfaces
var _ ledger.Tx = (*Tx)(nil)
var _ author.AuthoredTx = (*Tx)(nil)

// GetMsg returns the message carried by this envelope.
func (tx *Tx) GetMsg() (ledger.Msg, error) {
	sum := tx.GetSum()
	if sum == nil {
		return nil, errors.Wrap(errors.ErrState, "transaction without message")
	}

	switch t := sum.(type) {
	case *Tx_CreateWalletMsg:
		return t.CreateWalletMsg, nil
	case *Tx_IssueMsg:
		return t.IssueMsg, nil
	case *Tx_SendMsg:
		return t.SendMsg, nil
	case *Tx_TransferMultisigMsg:
		return t.TransferMultisigMsg, nil
	case *Tx_ApproveTransferMsg:
		return t.ApproveTransferMsg, nil
	case *Tx_RejectTransferMsg:
		return t.RejectTransferMsg, nil
	}
	return nil, errors.Wrapf(errors.ErrMsg, "unsupported transaction type %T", sum)
}

// SetMsg assigns the message to the sum field. It fails on message
// types this chain does not route.
func (tx *Tx) SetMsg(msg ledger.Msg) error {
	switch t := msg.(type) {
	case *wallet.CreateWalletMsg:
		tx.Sum = &Tx_CreateWalletMsg{t}
	case *wallet.IssueMsg:
		tx.Sum = &Tx_IssueMsg{t}
	case *wallet.SendMsg:
		tx.Sum = &Tx_SendMsg{t}
	case *escrow.TransferMultisigMsg:
		tx.Sum = &Tx_TransferMultisigMsg{t}
	case *escrow.ApproveTransferMsg:
		tx.Sum = &Tx_ApproveTransferMsg{t}
	case *escrow.RejectTransferMsg:
		tx.Sum = &Tx_RejectTransferMsg{t}
	default:
		return errors.Wrapf(errors.ErrMsg, "unsupported message type %T", msg)
	}
	return nil
}

// BuildTx wraps a message into an envelope submitted by the given
// author.
func BuildTx(key ledger.PublicKey, msg ledger.Msg) (*Tx, error) {
	tx := &Tx{Author: key}
	if err := tx.SetMsg(msg); err != nil {
		return nil, err
	}
	return tx, nil
}

// TxDecoder parses wire bytes into an operation envelope.
func TxDecoder(bz []byte) (ledger.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return tx, nil
}
