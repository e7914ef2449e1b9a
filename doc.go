/*
Package ledger defines the common interfaces that tie the framework
together: transactions and messages, handlers and decorators, the
key-value storage contracts and the per operation results.

The root package contains no business logic. Extensions under x/ build
on these interfaces to implement the actual ledger semantics, and the
app package wires them into a dispatcher that consumes the ordered,
authenticated operation stream.
*/
package ledger
