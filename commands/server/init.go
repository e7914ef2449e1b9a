package server

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

// GenOptions can parse command-line and flag to
// generate default app_state for the genesis file.
// This is application-specific
type GenOptions func(args []string) (json.RawMessage, error)

// InitCmd fills in the app_state portion of the genesis file under
// <home>/config. When no genesis file exists yet, a minimal one with a
// random chain id is written first, so a node can be bootstrapped
// without a separate tendermint init.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	genFile := filepath.Join(home, "config", "genesis.json")
	if err := os.MkdirAll(filepath.Dir(genFile), 0755); err != nil {
		return err
	}

	if !fileExists(genFile) {
		doc := GenesisDoc{
			"chain_id": marshalOrPanic(fmt.Sprintf("ledger-%s", cmn.RandStr(6))),
		}
		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return err
		}
		if err := ioutil.WriteFile(genFile, out, 0644); err != nil {
			return err
		}
		logger.Info("Generated genesis file", "path", genFile)
	} else {
		logger.Info("Found genesis file", "path", genFile)
	}

	if gen == nil {
		return nil
	}

	options, err := gen(args)
	if err != nil {
		return err
	}
	return addGenesisOptions(genFile, options)
}

func fileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return !os.IsNotExist(err)
}

// GenesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type GenesisDoc map[string]json.RawMessage

func addGenesisOptions(filename string, options json.RawMessage) error {
	bz, err := ioutil.ReadFile(filename)
	if err != nil {
		return err
	}

	var doc GenesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return err
	}

	doc["app_state"] = options
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	return ioutil.WriteFile(filename, out, 0600)
}

func marshalOrPanic(obj interface{}) json.RawMessage {
	bz, err := json.Marshal(obj)
	if err != nil {
		panic(err)
	}
	return bz
}
