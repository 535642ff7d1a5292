package engine

import "errors"

// ErrNotFound is returned when a store cannot resolve a position or native key.
//
// This is an engine-layer sentinel used internally; the lookups package may
// translate it into its public error contract.
var ErrNotFound = errors.New("not found")
