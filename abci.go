package ledger

import (
	"fmt"

	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"

	"github.com/quorumnet/ledger/errors"
)

//---------- helpers for handling responses --------

// DeliverOrError returns an abci response for DeliverTx, converting the
// error message if present, or using the successful DeliverResult.
func DeliverOrError(result *DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	if err != nil {
		return DeliverTxError(err, debug)
	}
	return result.ToABCI()
}

// CheckOrError returns an abci response for CheckTx, converting the
// error message if present, or using the successful CheckResult.
func CheckOrError(result *CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err != nil {
		return CheckTxError(err, debug)
	}
	return result.ToABCI()
}

//---------- results and some wrappers --------

// DeliverResult captures any non-error abci result to make sure people
// use error for error cases.
type DeliverResult struct {
	// Data is a machine-parseable return value, like the id of a
	// created entity.
	Data []byte
	// Log is a human-readable informational string.
	Log string
	// Tags, if present, will be used by tendermint to index and
	// search the transaction history.
	Tags []common.KVPair
	// GasUsed is the units of work performed by this operation.
	GasUsed int64
}

// ToABCI converts our internal type into an abci response.
func (d *DeliverResult) ToABCI() abci.ResponseDeliverTx {
	return abci.ResponseDeliverTx{
		Data:    d.Data,
		Log:     d.Log,
		Tags:    d.Tags,
		GasUsed: d.GasUsed,
	}
}

// ParseDeliverOrError is the inverse of DeliverOrError. It parses back
// the abci response into our internal format, or returns an error when
// the response carries a failure code.
func ParseDeliverOrError(res abci.ResponseDeliverTx) (*DeliverResult, error) {
	if res.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(res.Code, res.Log)
	}
	return &DeliverResult{
		Data:    res.Data,
		Log:     res.Log,
		Tags:    res.Tags,
		GasUsed: res.GasUsed,
	}, nil
}

// CheckResult captures any non-error abci result to make sure people
// use error for error cases.
type CheckResult struct {
	// Data is a machine-parseable return value, like the id of a
	// created entity.
	Data []byte
	// Log is a human-readable informational string.
	Log string
	// GasAllocated is the maximum units of work we allow this
	// operation to perform.
	GasAllocated int64
}

// NewCheck sets the gas allocated and the log message, the most common
// info set by a handler.
func NewCheck(gasAllocated int64, log string) *CheckResult {
	return &CheckResult{
		GasAllocated: gasAllocated,
		Log:          log,
	}
}

// ToABCI converts our internal type into an abci response.
func (c *CheckResult) ToABCI() abci.ResponseCheckTx {
	return abci.ResponseCheckTx{
		Data:      c.Data,
		Log:       c.Log,
		GasWanted: c.GasAllocated,
	}
}

// DeliverTxError converts any error into an abci.ResponseDeliverTx,
// preserving as much info as possible. When in debug mode the full
// error information is returned.
func DeliverTxError(err error, debug bool) abci.ResponseDeliverTx {
	code, log := errors.ABCIInfo(err, debug)
	if code != errors.SuccessABCICode {
		log = fmt.Sprintf("cannot deliver tx: %s", log)
	}
	return abci.ResponseDeliverTx{
		Code: code,
		Log:  log,
	}
}

// CheckTxError converts any error into an abci.ResponseCheckTx,
// preserving as much info as possible. When in debug mode the full
// error information is returned.
func CheckTxError(err error, debug bool) abci.ResponseCheckTx {
	code, log := errors.ABCIInfo(err, debug)
	if code != errors.SuccessABCICode {
		log = fmt.Sprintf("cannot check tx: %s", log)
	}
	return abci.ResponseCheckTx{
		Code: code,
		Log:  log,
	}
}
