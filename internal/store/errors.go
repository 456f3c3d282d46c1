package store

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by every backend. Handlers dispatch on these with
// errors.Is rather than inspecting provider error codes.
var (
	// ErrNotFound is returned by GetByKey on a missing key and by
	// UpdateIfPresent when the existence precondition fails.
	ErrNotFound = errors.New("item not found")

	// ErrAlreadyExists is returned by PutIfAbsent when the absence
	// precondition fails.
	ErrAlreadyExists = errors.New("item already exists")
)

// StoreError wraps a backend failure with the operation and key involved.
type StoreError struct {
	Op  string // Operation that failed: "put", "get", "update", "delete"
	ID  string // Item key (if applicable)
	Err error  // Underlying error
}

// Error implements the error interface
func (e *StoreError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("store %s failed for id %s: %v", e.Op, e.ID, e.Err)
	}
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is checks if the error matches the target error
func (e *StoreError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewStoreError creates a new store error
func NewStoreError(op, id string, err error) *StoreError {
	return &StoreError{Op: op, ID: id, Err: err}
}

// IsNotFound checks if an error is a "not found" error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an "already exists" error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}
