package storage

import (
	"errors"
	"fmt"
)

// Sentinel errors for expected storage outcomes. Handlers branch on these
// with errors.Is; anything else is a backend failure.
var (
	// ErrDuplicateUsername reports a CreateUser call with a taken username.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrNotFound reports an entry or user that does not exist or is not
	// owned by the calling user.
	ErrNotFound = errors.New("record not found")
)

// StorageError represents a failure inside a storage backend. The cause is
// recorded for operators; clients only ever see a generic 500 body.
type StorageError struct {
	Backend   string // backend type ("sqlite", "memory")
	Operation string // operation that failed ("create_user", "fetch_entries", ...)
	Cause     error  // underlying error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error [backend=%s, operation=%s]: %v", e.Backend, e.Operation, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageError creates a new StorageError.
func NewStorageError(backend, operation string, cause error) *StorageError {
	return &StorageError{
		Backend:   backend,
		Operation: operation,
		Cause:     cause,
	}
}
