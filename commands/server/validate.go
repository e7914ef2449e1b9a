package server

import (
	"encoding/json"
	"io/ioutil"

	"github.com/quorumnet/ledger"
	"github.com/quorumnet/ledger/errors"
	"github.com/quorumnet/ledger/store"
)

// ValidateGenesis runs the initializer over each given genesis file
// against a throwaway store, reporting the first file that cannot
// seed a fresh ledger.
func ValidateGenesis(ini ledger.Initializer, genesisPaths []string) error {
	for _, path := range genesisPaths {
		if err := validateGenesis(ini, path); err != nil {
			return errors.Wrap(err, path)
		}
	}
	return nil
}

func validateGenesis(ini ledger.Initializer, genesisPath string) error {
	b, err := ioutil.ReadFile(genesisPath)
	if err != nil {
		return errors.Wrap(err, "cannot read genesis file")
	}

	var genesis struct {
		State ledger.Options `json:"app_state"`
	}
	if err := json.Unmarshal(b, &genesis); err != nil {
		return errors.Wrap(err, "cannot JSON deserialize genesis")
	}

	// Use in memory store because we want to discard the result.
	db := store.MemStore()

	if err := ini.FromGenesis(genesis.State, db); err != nil {
		return errors.Wrap(err, "cannot initialize from genesis")
	}

	return nil
}
