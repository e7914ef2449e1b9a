package errors

import (
	"errors"
	"fmt"
	"reflect"
)

const (
	// SuccessABCICode declares an ABCI response use 0 to signal that
	// the processing was successful and no error is returned.
	SuccessABCICode = 0

	// All unclassified errors that do not provide an ABCI code are
	// clubbed under an internal error code and a generic message
	// instead of a detailed error string. Codes below 1000 belong to
	// the extensions and are part of the external interface, so the
	// internal code sits right below the framework range.
	internalABCICode uint32 = 1000
	internalABCILog         = "internal error"
)

// ABCIInfo returns the ABCI error information as consumed by the
// tendermint client. Returned code and log message should be used as an
// ABCI response. Any error that does not provide ABCICode information
// is categorized as an internal error.
// When not running in a debug mode all messages of errors that do not
// provide ABCICode information are replaced with a generic "internal
// error".
func ABCIInfo(err error, debug bool) (uint32, string) {
	if errIsNil(err) {
		return SuccessABCICode, ""
	}

	// Only non-internal errors information can be exposed. Any error
	// that does not explicitly expose its state by providing an ABCI
	// error code must be silenced.
	if code := abciCode(err); code != internalABCICode {
		if debug {
			// Trigger the full information formatting. This might
			// produce a stacktrace.
			return code, fmt.Sprintf("%+v", err)
		}
		return code, err.Error()
	}

	if debug {
		return internalABCICode, fmt.Sprintf("%+v", err)
	}

	// For internal errors hide the original error message and return
	// generic data.
	return internalABCICode, internalABCILog
}

// ABCIError reconstructs an error from an ABCI error code and log. This
// is the inverse of ABCIInfo, used when parsing responses back.
func ABCIError(code uint32, log string) error {
	if e, ok := usedCodes[code]; ok && e != nil {
		return Wrap(e, log)
	}
	return errors.New(log)
}

type coder interface {
	ABCICode() uint32
}

// abciCode tests if given error contains an ABCI code and returns the
// value of it if available. This function is testing for the causer
// interface as well and unwraps the error.
func abciCode(err error) uint32 {
	if errIsNil(err) {
		return SuccessABCICode
	}

	for {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}

		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return internalABCICode
		}
	}
}

// errIsNil returns true if the value represented by the given error is
// nil.
//
// Most of the time a simple == check is enough. There is a very
// narrow spectrum of cases (mostly in tests) where a more sophisticated
// check is required.
func errIsNil(err error) bool {
	if err == nil {
		return true
	}
	if val := reflect.ValueOf(err); val.Kind() == reflect.Ptr {
		return val.IsNil()
	}
	return false
}

// Redact replaces all errors that were not created with a registered
// root error with a generic internal error instance. This function is
// supposed to hide implementation detail errors and leave only those
// that the framework originates.
//
// This is a no-operation function when running in debug mode.
func Redact(err error, debug bool) error {
	if debug {
		return err
	}
	if ErrPanic.Is(err) {
		return errors.New(internalABCILog)
	}
	if abciCode(err) == internalABCICode {
		return errors.New(internalABCILog)
	}
	return err
}
