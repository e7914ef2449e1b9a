package ledger

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/quorumnet/ledger/errors"
)

const (
	// PublicKeyLength is the length in bytes of every account identity.
	// Identities are ed25519 public keys, verified by the layer that
	// orders and authenticates operations before they reach this code.
	PublicKeyLength = 32

	// TxHashLength is the length in bytes of an operation hash.
	TxHashLength = sha256.Size
)

// PublicKey is the identity of an account. It is the raw public key the
// operation author signed with, not a derived address.
type PublicKey []byte

// Equals checks if two identities are the same.
func (p PublicKey) Equals(o PublicKey) bool {
	return bytes.Equal(p, o)
}

// String returns a human readable (hex) representation.
func (p PublicKey) String() string {
	if len(p) == 0 {
		return "(nil)"
	}
	return strings.ToUpper(hex.EncodeToString(p))
}

// Validate returns an error if this is not a well formed identity.
func (p PublicKey) Validate() error {
	if len(p) != PublicKeyLength {
		return errors.Wrapf(errors.ErrInput, "invalid identity length %d", len(p))
	}
	return nil
}

// Clone returns an independent copy of the identity.
func (p PublicKey) Clone() PublicKey {
	if p == nil {
		return nil
	}
	return append(PublicKey(nil), p...)
}

// MarshalJSON provides a hex representation for JSON, to override the
// standard base64 []byte encoding.
func (p PublicKey) MarshalJSON() ([]byte, error) {
	return marshalHex(p)
}

// UnmarshalJSON parses JSON in hex representation.
func (p *PublicKey) UnmarshalJSON(src []byte) error {
	dst := (*[]byte)(p)
	return unmarshalHex(src, dst)
}

// TxHash is the sha256 digest of an operation's encoded bytes. Once an
// operation is accepted into the ordered log it is addressable by this
// hash, and multisignature approvals and rejections reference the
// initiating operation through it.
type TxHash []byte

// NewTxHash computes the hash of raw operation bytes.
func NewTxHash(raw []byte) TxHash {
	h := sha256.Sum256(raw)
	return h[:]
}

// Equals checks if two hashes are the same.
func (t TxHash) Equals(o TxHash) bool {
	return bytes.Equal(t, o)
}

// String returns a human readable (hex) representation.
func (t TxHash) String() string {
	if len(t) == 0 {
		return "(nil)"
	}
	return strings.ToUpper(hex.EncodeToString(t))
}

// Validate returns an error if this is not a well formed hash.
func (t TxHash) Validate() error {
	if len(t) != TxHashLength {
		return errors.Wrapf(errors.ErrInput, "invalid tx hash length %d", len(t))
	}
	return nil
}

// MarshalJSON provides a hex representation for JSON.
func (t TxHash) MarshalJSON() ([]byte, error) {
	return marshalHex(t)
}

// UnmarshalJSON parses JSON in hex representation.
func (t *TxHash) UnmarshalJSON(src []byte) error {
	dst := (*[]byte)(t)
	return unmarshalHex(src, dst)
}

func marshalHex(bz []byte) ([]byte, error) {
	s := strings.ToUpper(hex.EncodeToString(bz))
	return []byte(`"` + s + `"`), nil
}

func unmarshalHex(src []byte, dst *[]byte) error {
	var s string
	if len(src) < 2 || src[0] != '"' || src[len(src)-1] != '"' {
		return errors.Wrap(errors.ErrInput, "invalid hex string")
	}
	s = string(src[1 : len(src)-1])
	bz, err := hex.DecodeString(strings.ToLower(s))
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	*dst = bz
	return nil
}
