/*
Package crypto holds the signing key material used by tooling around
the ledger.

Account identities on the ledger are raw ed25519 public keys. The
state machine itself never verifies signatures, that is the job of the
layer that orders and authenticates operations, but the init tooling
and tests need to mint valid identities and prove ownership of them.
*/
package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/ed25519"

	"github.com/quorumnet/ledger"
	"github.com/quorumnet/ledger/errors"
)

// SeedLength is the length in bytes of the private key seed.
const SeedLength = ed25519.SeedSize

// KeyPair is an ed25519 signing identity.
type KeyPair struct {
	priv ed25519.PrivateKey
}

// GenKeyPair returns a new random key pair.
func GenKeyPair() KeyPair {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		panic(err)
	}
	return KeyPair{priv: priv}
}

// KeyPairFromSeed deterministically derives a key pair from a seed.
// Use for recovery from a stored seed, or for fixed keys in tests.
func KeyPairFromSeed(seed []byte) (KeyPair, error) {
	if len(seed) != SeedLength {
		return KeyPair{}, errors.Wrapf(errors.ErrInput, "seed must be %d bytes", SeedLength)
	}
	return KeyPair{priv: ed25519.NewKeyFromSeed(seed)}, nil
}

// KeyPairFromSeedHex derives a key pair from a hex encoded seed, as
// printed by the init command.
func KeyPairFromSeedHex(s string) (KeyPair, error) {
	seed, err := hex.DecodeString(strings.ToLower(s))
	if err != nil {
		return KeyPair{}, errors.Wrap(errors.ErrInput, err.Error())
	}
	return KeyPairFromSeed(seed)
}

// PublicKey returns the ledger identity of this key pair.
func (k KeyPair) PublicKey() ledger.PublicKey {
	pub := k.priv.Public().(ed25519.PublicKey)
	return ledger.PublicKey(pub)
}

// Seed returns the private seed. Guard it well.
func (k KeyPair) Seed() []byte {
	return k.priv.Seed()
}

// SeedHex returns the private seed in the hex form accepted by
// KeyPairFromSeedHex.
func (k KeyPair) SeedHex() string {
	return strings.ToUpper(hex.EncodeToString(k.Seed()))
}

// Sign returns a signature over the message.
func (k KeyPair) Sign(message []byte) []byte {
	return ed25519.Sign(k.priv, message)
}

// Verify reports whether sig is a valid signature of message by the
// holder of the given identity.
func Verify(key ledger.PublicKey, message, sig []byte) bool {
	if len(key) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(key), message, sig)
}
