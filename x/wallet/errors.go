package wallet

import (
	"github.com/quorumnet/ledger/errors"
)

// Error codes below 1000 are part of the documented client interface
// and must never be renumbered. Codes 5-10 and 13 belong to x/escrow.
var (
	// ErrSenderNotFound is returned when the author of a transfer has
	// no wallet.
	ErrSenderNotFound = errors.Register(1, "sender not found")

	// ErrReceiverNotFound is returned when the recipient of a credit
	// has no wallet.
	ErrReceiverNotFound = errors.Register(2, "receiver not found")

	// ErrInsufficientFunds is returned when a wallet balance does not
	// cover the requested amount.
	ErrInsufficientFunds = errors.Register(3, "insufficient funds")

	// ErrSameAccount is returned on an attempt to transfer funds from
	// an account to itself.
	ErrSameAccount = errors.Register(4, "sender same as receiver")

	// ErrInvalidAmount is returned when an operation carries a zero
	// amount.
	ErrInvalidAmount = errors.Register(11, "invalid amount")

	// ErrDuplicateWallet is returned on an attempt to create a wallet
	// for an identity that already has one.
	ErrDuplicateWallet = errors.Register(12, "wallet already exists")
)
