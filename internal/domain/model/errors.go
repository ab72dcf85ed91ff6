package model

import "errors"

// ErrNotFound marks recoverable lookup misses. Callers are expected to log
// and continue (e.g. a stale id inside a bulk user-change batch) or to react
// by creating the missing record (e.g. a delivery group on first touch).
var ErrNotFound = errors.New("not found")

// ErrInvalidState marks fatal caller-contract violations, such as opening a
// schedule that is not closed or looking up a shipper group that was never
// registered. Operations fail before any mutation when they return it.
var ErrInvalidState = errors.New("invalid state")
