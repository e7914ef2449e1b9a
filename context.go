/*
We pass context through context.Context between app, middleware, and
handlers. To do so, the root package defines some common keys to store
info, such as block height and chain id. Each extension, such as
x/author, may add its own keys to enrich the context with specific
data.

There should exist two functions for every XYZ of type T that we want
to support in Context:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)

WithXYZ may panic if the value was previously set to avoid lower-level
modules overwriting the value (eg. height, chain id).
*/
package ledger

import (
	"context"
	"regexp"

	"github.com/tendermint/tendermint/libs/log"
)

// Context is just an alias for the standard implementation. We use
// functions to extend it to our domain.
type Context = context.Context

type contextKey int // local to the ledger module

const (
	contextKeyHeight contextKey = iota
	contextKeyChainID
	contextKeyLogger
	contextKeyTxHash
	contextKeyLogPosition
)

var (
	// DefaultLogger is used for all contexts that have not set
	// anything themselves.
	DefaultLogger = log.NewNopLogger()

	// IsValidChainID is the RegExp to ensure valid chain IDs.
	IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString
)

// WithHeight sets the block height for the Context. Panics on attempt
// to overwrite an existing value.
func WithHeight(ctx Context, height int64) Context {
	if _, ok := GetHeight(ctx); ok {
		panic("height already set")
	}
	return context.WithValue(ctx, contextKeyHeight, height)
}

// GetHeight returns the current block height and true, or 0 and false
// if not set.
func GetHeight(ctx Context) (int64, bool) {
	val, ok := ctx.Value(contextKeyHeight).(int64)
	return val, ok
}

// WithChainID sets the chain id for the Context. Panics on attempt to
// overwrite an existing value or to set an invalid chain id.
func WithChainID(ctx Context, chainID string) Context {
	if ctx.Value(contextKeyChainID) != nil {
		panic("chain id already set")
	}
	if !IsValidChainID(chainID) {
		panic("invalid chain id: " + chainID)
	}
	return context.WithValue(ctx, contextKeyChainID, chainID)
}

// GetChainID returns the chain id. Panics if the chain id was never
// set, as it is a required part of the application setup.
func GetChainID(ctx Context) string {
	if ctx.Value(contextKeyChainID) == nil {
		panic("chain id is not set")
	}
	return ctx.Value(contextKeyChainID).(string)
}

// WithLogger sets the logger for this Context.
func WithLogger(ctx Context, logger log.Logger) Context {
	// Logger can be overridden below, so no checks.
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// GetLogger returns the currently set logger, or DefaultLogger if none
// was set.
func GetLogger(ctx Context) log.Logger {
	val, ok := ctx.Value(contextKeyLogger).(log.Logger)
	if !ok {
		return DefaultLogger
	}
	return val
}

// WithLogInfo accepts keyvalue pairs, and returns another context like
// this, after passing all the keyvals to the logger.
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	logger := GetLogger(ctx).With(keyvals...)
	return WithLogger(ctx, logger)
}

// WithTxHash sets the hash of the operation being processed. The hash
// of the encoded operation bytes is the identifier that approvals and
// rejections can reference later.
func WithTxHash(ctx Context, hash TxHash) Context {
	return context.WithValue(ctx, contextKeyTxHash, hash)
}

// GetTxHash returns the hash of the operation being processed.
func GetTxHash(ctx Context) (TxHash, bool) {
	val, ok := ctx.Value(contextKeyTxHash).(TxHash)
	return val, ok
}

// WithLogPosition sets the position assigned to the operation in the
// ordered log.
func WithLogPosition(ctx Context, pos uint64) Context {
	return context.WithValue(ctx, contextKeyLogPosition, pos)
}

// GetLogPosition returns the position of the operation in the ordered
// log.
func GetLogPosition(ctx Context) (uint64, bool) {
	val, ok := ctx.Value(contextKeyLogPosition).(uint64)
	return val, ok
}
