package utils

import (
	"time"

	"github.com/tendermint/tendermint/libs/log"

	"github.com/quorumnet/ledger"
	"github.com/quorumnet/ledger/errors"
)

// Logging is the outermost decorator. It times every operation and
// writes one line per Check and Deliver, with the numeric code of a
// failure since that is what clients see.
type Logging struct{}

var _ ledger.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Check logs at debug on success, error on failure
func (l Logging) Check(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx, next ledger.Checker) (*ledger.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	if err != nil {
		failureLogger(ctx, start, err).Error("check failed")
		return res, err
	}
	timedLogger(ctx, start).Debug(res.Log)
	return res, err
}

// Deliver logs at info on success, error on failure
func (l Logging) Deliver(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx, next ledger.Deliverer) (*ledger.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	if err != nil {
		failureLogger(ctx, start, err).Error("deliver failed")
		return res, err
	}
	timedLogger(ctx, start).Info(res.Log)
	return res, err
}

func timedLogger(ctx ledger.Context, start time.Time) log.Logger {
	return ledger.GetLogger(ctx).With("duration", time.Since(start)/time.Microsecond)
}

func failureLogger(ctx ledger.Context, start time.Time, err error) log.Logger {
	code, _ := errors.ABCIInfo(err, false)
	return timedLogger(ctx, start).With("code", code, "err", err)
}
