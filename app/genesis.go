package app

import (
	"github.com/quorumnet/ledger"
)

// ChainInitializers lets you initialize many extensions with one
// function
func ChainInitializers(inits ...ledger.Initializer) ledger.Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []ledger.Initializer
}

// FromGenesis will pass opts to all initializers in the list, aborting
// at the first error.
func (c chainInitializer) FromGenesis(opts ledger.Options, kv ledger.KVStore) error {
	for _, i := range c.inits {
		if i == nil {
			continue
		}
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
