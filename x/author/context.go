package author

import (
	"context"

	"github.com/quorumnet/ledger"
	"github.com/quorumnet/ledger/x"
)

type contextKey int // local to the author module

const (
	contextKeyAuthor contextKey = iota
)

// withAuthor is private, as only the decorator may establish an author
func withAuthor(ctx ledger.Context, key ledger.PublicKey) ledger.Context {
	return context.WithValue(ctx, contextKeyAuthor, key)
}

// Authenticate implements x.Authenticator, revealing the transaction
// author placed in the context by the Decorator.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetIdentities returns the author of the current transaction.
// May be empty.
func (a Authenticate) GetIdentities(ctx ledger.Context) []ledger.PublicKey {
	// (val, ok) form to return nil instead of panic if unset
	val, ok := ctx.Value(contextKeyAuthor).(ledger.PublicKey)
	if !ok {
		return nil
	}
	return []ledger.PublicKey{val}
}

// HasIdentity returns true iff this key authored the transaction
func (a Authenticate) HasIdentity(ctx ledger.Context, key ledger.PublicKey) bool {
	for _, id := range a.GetIdentities(ctx) {
		if id.Equals(key) {
			return true
		}
	}
	return false
}
