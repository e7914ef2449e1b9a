package x

import (
	"github.com/quorumnet/ledger"
)

// Authenticator is an interface we can use to extract authentication
// info from the context. This should be passed into the constructor of
// handlers, so we can plug in another authentication system, rather
// than hard-coding one implementation for all extensions.
type Authenticator interface {
	// GetIdentities reveals all authenticated identities
	GetIdentities(ledger.Context) []ledger.PublicKey
	// HasIdentity checks if this identity was authenticated
	HasIdentity(ledger.Context, ledger.PublicKey) bool
}

// MultiAuth chains together many Authenticators into one
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetIdentities combines the identities from all Authenticators
func (m MultiAuth) GetIdentities(ctx ledger.Context) []ledger.PublicKey {
	var res []ledger.PublicKey
	for _, impl := range m.impls {
		add := impl.GetIdentities(ctx)
		if len(add) > 0 {
			res = append(res, add...)
		}
	}
	return res
}

// HasIdentity returns true iff any Authenticator vouches for it
func (m MultiAuth) HasIdentity(ctx ledger.Context, key ledger.PublicKey) bool {
	for _, impl := range m.impls {
		if impl.HasIdentity(ctx, key) {
			return true
		}
	}
	return false
}

// MainAuthor returns the first authenticated identity if any,
// otherwise nil
func MainAuthor(ctx ledger.Context, auth Authenticator) ledger.PublicKey {
	ids := auth.GetIdentities(ctx)
	if len(ids) == 0 {
		return nil
	}
	return ids[0]
}

// HasAllIdentities returns true if all elements in required are
// also in context.
func HasAllIdentities(ctx ledger.Context, auth Authenticator, required []ledger.PublicKey) bool {
	for _, r := range required {
		if !auth.HasIdentity(ctx, r) {
			return false
		}
	}
	return true
}

// HasNIdentities returns true if at least n elements in requested are
// also in context.
// Useful for threshold conditions (1 of 3, 3 of 5, etc...)
func HasNIdentities(ctx ledger.Context, auth Authenticator, requested []ledger.PublicKey, n int) bool {
	if n <= 0 {
		return true
	}
	for _, r := range requested {
		if auth.HasIdentity(ctx, r) {
			n--
			if n == 0 {
				return true
			}
		}
	}
	return false
}
