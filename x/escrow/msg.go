package escrow

import (
	"github.com/quorumnet/ledger"
	"github.com/quorumnet/ledger/errors"
)

// Message paths, used by the router to find the handler
const (
	pathTransferMultisigMsg = "escrow/transfer"
	pathApproveTransferMsg  = "escrow/approve"
	pathRejectTransferMsg   = "escrow/reject"
)

var _ ledger.Msg = (*TransferMultisigMsg)(nil)
var _ ledger.Msg = (*ApproveTransferMsg)(nil)
var _ ledger.Msg = (*RejectTransferMsg)(nil)

// Path returns the routing path for this message
func (TransferMultisigMsg) Path() string {
	return pathTransferMultisigMsg
}

// Validate is a shape check only: identities must be well formed.
// The stateful preconditions and the approver set limits are verified
// by the handler, in the order fixed by the external error codes.
func (m *TransferMultisigMsg) Validate() error {
	if err := m.To.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	for _, a := range m.Approvers {
		if err := a.Validate(); err != nil {
			return errors.Wrap(err, "approver")
		}
	}
	return nil
}

// Path returns the routing path for this message
func (ApproveTransferMsg) Path() string {
	return pathApproveTransferMsg
}

// Validate makes sure the referenced hash is well formed
func (m *ApproveTransferMsg) Validate() error {
	if err := m.TxHash.Validate(); err != nil {
		return errors.Wrap(err, "tx hash")
	}
	return nil
}

// Path returns the routing path for this message
func (RejectTransferMsg) Path() string {
	return pathRejectTransferMsg
}

// Validate makes sure the referenced hash is well formed
func (m *RejectTransferMsg) Validate() error {
	if err := m.TxHash.Validate(); err != nil {
		return errors.Wrap(err, "tx hash")
	}
	return nil
}
