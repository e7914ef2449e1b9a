// Package ledgertest provides mocks and helpers for testing handlers,
// decorators and other extension points.
package ledgertest
