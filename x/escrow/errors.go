package escrow

import (
	"github.com/quorumnet/ledger/errors"
)

// Error codes below 1000 are part of the documented client interface
// and must never be renumbered. Codes 1-4 and 11-12 belong to
// x/wallet.
var (
	// ErrEmptyApprovers is returned when an initiation names no
	// approvers at all.
	ErrEmptyApprovers = errors.Register(5, "empty approvers list")

	// ErrTooManyApprovers is returned when an initiation names more
	// approvers than allowed.
	ErrTooManyApprovers = errors.Register(6, "too many approvers")

	// ErrTransferNotFound is returned when the referenced hash does
	// not identify any known transfer.
	ErrTransferNotFound = errors.Register(7, "transfer not found")

	// ErrReferredFailed is returned when the referenced transfer is
	// not open anymore: the initiation itself failed, or the transfer
	// already resolved to DONE or REJECTED.
	ErrReferredFailed = errors.Register(8, "referred transfer failed")

	// ErrWrongReferencedType is returned when the referenced hash
	// identifies an operation that is not a multisignature transfer
	// initiation.
	ErrWrongReferencedType = errors.Register(9, "wrong referenced transaction type")

	// ErrNotApprover is returned when the operation author is not in
	// the approvers set, or approved already.
	ErrNotApprover = errors.Register(10, "not an authorized approver")

	// ErrDuplicateApprover is returned when an initiation names the
	// same approver twice.
	ErrDuplicateApprover = errors.Register(13, "duplicate approver")
)
