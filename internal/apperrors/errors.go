// Package apperrors defines the sentinel errors shared across layers.
// Callers classify failures with errors.Is rather than string matching.
package apperrors

import "errors"

// ErrNotFound indicates that a requested record does not exist in the store.
var ErrNotFound = errors.New("record not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrStoreRead indicates that the record store could not be read.
var ErrStoreRead = errors.New("store read failed")

// ErrStoreWrite indicates that a write to the record store failed.
var ErrStoreWrite = errors.New("store write failed")
