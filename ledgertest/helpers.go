package ledgertest

import (
	"crypto/rand"

	"github.com/quorumnet/ledger"
)

// GenIdentity returns a random public key to use as an account
// identity in tests.
func GenIdentity() ledger.PublicKey {
	key := make([]byte, ledger.PublicKeyLength)
	if _, err := rand.Read(key); err != nil {
		panic(err)
	}
	return key
}

// SequenceID returns an 8 byte, big endian encoded ID, the raw form
// counters and positions are stored in.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		b[i] = byte(n)
		n >>= 8
	}
	return b
}
