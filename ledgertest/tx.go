package ledgertest

import "github.com/quorumnet/ledger"

// Tx represents a test transaction carrying a single message and an
// optional author.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg ledger.Msg
	// Author is the public key of the submitting account.
	Author ledger.PublicKey
	// Raw if set is returned by Marshal.
	Raw []byte
	// Err if set is returned by GetMsg.
	Err error
}

var _ ledger.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (ledger.Msg, error) {
	return tx.Msg, tx.Err
}

// GetAuthor implements author.AuthoredTx
func (tx *Tx) GetAuthor() ledger.PublicKey {
	return tx.Author
}

func (tx *Tx) Unmarshal([]byte) error {
	panic("not implemented")
}

func (tx *Tx) Marshal() ([]byte, error) {
	if tx.Raw != nil {
		return tx.Raw, nil
	}
	panic("not implemented")
}

// Msg represents a test message, a request processed within a single
// transaction.
type Msg struct {
	// Path returned by the path method, consumed by the router.
	RoutePath string
	// Serialized represents the serialized form of this message.
	Serialized []byte
	// Err if set is returned by any method call.
	Err error
}

var _ ledger.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}

func (m *Msg) Unmarshal(b []byte) error {
	m.Serialized = b
	return m.Err
}

func (m *Msg) Marshal() ([]byte, error) {
	return m.Serialized, m.Err
}
