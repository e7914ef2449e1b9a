package ledgertest

import (
	"context"
	"fmt"

	"github.com/quorumnet/ledger"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of the referenced identities. You
// can use either Signer or Signers (or both). Each time all signers,
// regardless which attribute, are considered.
type Auth struct {
	// Signer represents an authentication of a single identity. This
	// is a convenience attribute when testing with one signer.
	Signer ledger.PublicKey

	// Signers represents an authentication of multiple identities.
	Signers []ledger.PublicKey
}

func (a *Auth) GetIdentities(ledger.Context) []ledger.PublicKey {
	if a.Signer != nil {
		return append(a.Signers, a.Signer)
	}
	return a.Signers
}

func (a *Auth) HasIdentity(ctx ledger.Context, key ledger.PublicKey) bool {
	for _, s := range a.Signers {
		if key.Equals(s) {
			return true
		}
	}
	if a.Signer == nil {
		return false
	}
	return key.Equals(a.Signer)
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// This implementation is using context to store and retrieve
// identities.
type CtxAuth struct {
	// Key used to set and retrieve identities from the context. For
	// convenience only string type keys are allowed.
	Key string
}

func (a *CtxAuth) SetIdentities(ctx ledger.Context, keys ...ledger.PublicKey) ledger.Context {
	return context.WithValue(ctx, a.Key, keys)
}

func (a *CtxAuth) GetIdentities(ctx ledger.Context) []ledger.PublicKey {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	keys, ok := val.([]ledger.PublicKey)
	if !ok {
		panic(fmt.Sprintf("instead of []ledger.PublicKey got %T", val))
	}
	return keys
}

func (a *CtxAuth) HasIdentity(ctx ledger.Context, key ledger.PublicKey) bool {
	for _, s := range a.GetIdentities(ctx) {
		if key.Equals(s) {
			return true
		}
	}
	return false
}
