// Package commands holds helpers shared by the ledgerd subcommands.
package commands

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/gogo/protobuf/proto"
)

// Example is one object dumped by TestGenCmd, written out both as
// .json and .bin. Filename should have no path and no extension.
type Example struct {
	Filename string
	Obj      proto.Message
}

// TestGenCmd writes sample protobuf and json encodings of the given
// objects, so client implementations in other languages have fixtures
// to test their codecs against.
func TestGenCmd(examples []Example, args []string) error {
	outdir := "testdata"
	if len(args) > 0 {
		outdir = args[0]
	}
	if err := os.MkdirAll(outdir, 0755); err != nil {
		return err
	}

	for _, ex := range examples {
		js, err := json.Marshal(ex.Obj)
		if err != nil {
			return err
		}
		jsFile := filepath.Join(outdir, ex.Filename+".json")
		if err := ioutil.WriteFile(jsFile, js, 0644); err != nil {
			return err
		}

		pb, err := proto.Marshal(ex.Obj)
		if err != nil {
			return err
		}
		pbFile := filepath.Join(outdir, ex.Filename+".bin")
		if err := ioutil.WriteFile(pbFile, pb, 0644); err != nil {
			return err
		}
	}
	return nil
}
