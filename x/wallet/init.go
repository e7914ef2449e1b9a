package wallet

import (
	"github.com/quorumnet/ledger"
)

const optKey = "wallets"

// GenesisAccount is used to parse the json from the genesis file,
// public key in hex, not base64
type GenesisAccount struct {
	PubKey  ledger.PublicKey `json:"pub_key"`
	Name    string           `json:"name"`
	Balance uint64           `json:"balance"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ ledger.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis and save
// it to the database. Genesis credits count towards the issuance
// total but carry no operation hash, so they leave no history entry.
func (Initializer) FromGenesis(opts ledger.Options, kv ledger.KVStore) error {
	accts := []GenesisAccount{}
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	control := NewController(NewWalletBucket())
	for _, acct := range accts {
		if err := acct.PubKey.Validate(); err != nil {
			return err
		}
		if err := control.Create(kv, acct.PubKey, acct.Name); err != nil {
			return err
		}
		if acct.Balance == 0 {
			continue
		}
		if err := control.Issue(kv, acct.PubKey, acct.Balance, nil); err != nil {
			return err
		}
	}
	return nil
}
