package wallet

import (
	"github.com/quorumnet/ledger"
	"github.com/quorumnet/ledger/errors"
)

// Message paths, used by the router to find the handler
const (
	pathCreateWalletMsg = "wallet/create"
	pathIssueMsg        = "wallet/issue"
	pathSendMsg         = "wallet/send"
)

var _ ledger.Msg = (*CreateWalletMsg)(nil)
var _ ledger.Msg = (*IssueMsg)(nil)
var _ ledger.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message
func (CreateWalletMsg) Path() string {
	return pathCreateWalletMsg
}

// Validate makes sure the display name is acceptable
func (m *CreateWalletMsg) Validate() error {
	if !IsWalletName(m.Name) {
		return errors.Wrapf(errors.ErrInput, "invalid wallet name: %q", m.Name)
	}
	return nil
}

// Path returns the routing path for this message
func (IssueMsg) Path() string {
	return pathIssueMsg
}

// Validate is a shape check only. The amount is checked by the
// handler, stateful preconditions come first in the documented order.
func (m *IssueMsg) Validate() error {
	return nil
}

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return pathSendMsg
}

// Validate makes sure the recipient identity is well formed
func (m *SendMsg) Validate() error {
	if err := m.To.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	return nil
}
