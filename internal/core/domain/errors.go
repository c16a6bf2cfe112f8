package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown connector type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrSyncInProgress indicates a sync is already running.
	ErrSyncInProgress = errors.New("sync in progress")
)

// FetchError is a network or HTTP failure while fetching a snapshot.
// The source is skipped for the run and the store is left untouched.
type FetchError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.Endpoint, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError is a malformed payload or configuration.
// It is treated as an empty snapshot, so nothing is deleted.
type ParseError struct {
	Origin string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Origin, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError is a malformed individual document.
// The document is dropped; its siblings are still processed.
type ValidationError struct {
	Source     string
	ExternalID string
	Field      string
	Reason     string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid document %s/%s: %s %s", e.Source, e.ExternalID, e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrInvalidInput) match validation failures.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// StoreError is a persistence failure. It aborts the remaining writes of
// the current source; earlier writes are kept.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
