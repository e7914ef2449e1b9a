package errors

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// Framework level root errors. Extension packages register their own
// root errors with codes below 1000, as those codes are part of the
// documented external interface.
var (
	// ErrUnauthorized is used whenever a request without sufficient
	// authorization is handled.
	ErrUnauthorized = Register(1001, "unauthorized")

	// ErrNotFound is used when a requested operation cannot be
	// completed due to missing data.
	ErrNotFound = Register(1002, "not found")

	// ErrMsg is returned whenever an event is invalid and cannot be
	// handled.
	ErrMsg = Register(1003, "invalid message")

	// ErrModel is returned whenever a message is invalid and cannot
	// be used (ie. persisted).
	ErrModel = Register(1004, "invalid model")

	// ErrDuplicate is returned when there is a record already that
	// has the same unique key/index used.
	ErrDuplicate = Register(1005, "duplicate")

	// ErrHuman is returned when application reaches a code path which
	// should not ever be reached if the code was written as expected
	// by the framework.
	ErrHuman = Register(1006, "coding error")

	// ErrImmutable is returned when something that is considered
	// immutable gets modified.
	ErrImmutable = Register(1007, "cannot be modified")

	// ErrEmpty is returned when a value fails a not empty assertion.
	ErrEmpty = Register(1008, "value is empty")

	// ErrState is returned when an object is in invalid state.
	ErrState = Register(1009, "invalid state")

	// ErrType is returned whenever the type is not what was expected.
	ErrType = Register(1010, "invalid type")

	// ErrInput stands for general input problems indication.
	ErrInput = Register(1011, "invalid input")

	// ErrOverflow is returned when a computation cannot be completed
	// because the result value exceeds the type.
	ErrOverflow = Register(1012, "value overflow")

	// ErrDatabase is returned when the underlying storage misbehaves.
	ErrDatabase = Register(1013, "database error")

	// ErrIteratorDone is returned when an iterator hit the end of its
	// range and cannot advance any further.
	ErrIteratorDone = Register(1014, "iterator done")

	// ErrNetwork is returned on network failure (only for client
	// libraries).
	ErrNetwork = Register(1015, "network")

	// ErrTimeout is returned when an action cannot be completed within
	// the given time frame.
	ErrTimeout = Register(1016, "timeout")

	// ErrPanic is only set when we recover from a panic, so we know
	// to redact potentially sensitive system info.
	ErrPanic = Register(111222, "panic")
)

// Register returns an error instance that should be used as the base
// for creating error instances during runtime.
//
// Popular root errors are declared in this package, but extensions may
// want to declare custom codes. This function ensures that no error
// code is used twice. Attempt to reuse an error code results in panic.
//
// Use this function only during a program startup phase.
func Register(code uint32, description string) *Error {
	if e, ok := usedCodes[code]; ok {
		panic(fmt.Sprintf("error with code %d is already registered: %q", code, e.desc))
	}
	err := &Error{
		code: code,
		desc: description,
	}
	usedCodes[err.code] = err
	return err
}

// usedCodes is keeping track of used codes to ensure their uniqueness.
// No two error instances should share the same error code.
var usedCodes = map[uint32]*Error{
	// Error code 1000 is restricted for non-registered errors and
	// must not be used.
	1000: nil,
}

// Error represents a root error.
//
// The framework is using root errors to categorize issues. Each
// instance created during the runtime should wrap one of the declared
// root errors. This allows error tests and returning all errors to the
// client in a safe manner.
//
// If an extension has to declare a custom root error, always use the
// Register function to ensure error code uniqueness.
type Error struct {
	code uint32
	desc string
}

func (e *Error) Error() string {
	return e.desc
}

// ABCICode returns the unique code of this root error as exposed in
// every ABCI response caused by it.
func (e *Error) ABCICode() uint32 {
	return e.code
}

// New returns a new error. The returned instance has the root cause
// set to this error. Below two lines are equal:
//   e.New("my description")
//   Wrap(e, "my description")
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

// Newf is basically New with formatting capabilities.
func (e *Error) Newf(description string, args ...interface{}) error {
	return e.New(fmt.Sprintf(description, args...))
}

// Is checks if given error instance is of a given kind/type. This
// involves unwrapping the error using the Cause method if available.
func (kind *Error) Is(err error) bool {
	// Reflect usage is necessary to correctly compare with a nil
	// implementation of an error.
	if kind == nil {
		if err == nil {
			return true
		}
		return reflect.ValueOf(err).IsNil()
	}

	for {
		if err == kind {
			return true
		}

		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return false
		}
	}
}

// Wrap extends given error with an additional information.
//
// If the wrapped error does not provide ABCICode method (ie. stdlib
// errors), it will be labeled as internal error.
//
// If err is nil, this returns nil, avoiding the need for an if
// statement when wrapping an error returned at the end of a function.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}

	// If this error does not carry the stacktrace information yet,
	// attach one. This should be done only once per error at the
	// lowest frame possible (most inner wrap).
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}

	return &wrappedError{
		parent: err,
		msg:    description,
	}
}

// Wrapf extends given error with an additional information.
//
// This function works like Wrap with additional functionality of
// formatting the input as specified.
func Wrapf(err error, format string, args ...interface{}) error {
	desc := fmt.Sprintf(format, args...)
	return Wrap(err, desc)
}

type wrappedError struct {
	// This error layer description.
	msg string
	// The underlying error that triggered this one.
	parent error
}

func (e *wrappedError) Error() string {
	return fmt.Sprintf("%s: %s", e.msg, e.parent.Error())
}

func (e *wrappedError) Cause() error {
	return e.parent
}

// Format implements fmt.Formatter to support extended information
// printing with %+v, including the attached stacktrace.
func (e *wrappedError) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%+v\n%s", e.parent, e.msg)
		return
	}
	fmt.Fprint(s, e.Error())
}

// stackTrace returns the first found stack trace frame carried by given
// error or any wrapped error. It returns nil if no stack trace is found.
func stackTrace(err error) errors.StackTrace {
	type stackTracer interface {
		StackTrace() errors.StackTrace
	}
	for {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}
		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return nil
		}
	}
}

// Recover captures a panic and stops its propagation. If panic happens
// it is transformed into a ErrPanic instance and assigned to given
// error. Call this function using defer in order to work as expected.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

// WithType is a helper to augment an error with a corresponding type
// message.
func WithType(err error, obj interface{}) error {
	return Wrap(err, fmt.Sprintf("%T", obj))
}

// causer is an interface implemented by an error that supports
// wrapping. Use it to test if an error wraps another error instance.
type causer interface {
	Cause() error
}
