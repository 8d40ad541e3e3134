// Package core provides the main ThreadPulse client and thread management functionality.
package core

import (
	"errors"
	"fmt"

	"github.com/agentline/threadpulse-go/pkg/storage"
)

// Predefined errors for common failure scenarios.
var (
	// ErrNotFound indicates that a requested thread was not found or is
	// not visible under the supplied access-control options. It is the
	// storage sentinel re-exported, so errors.Is matches it on errors
	// returned from any client operation.
	ErrNotFound = storage.ErrNotFound

	// ErrInvalidConfig indicates that the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrConnectionFailed indicates that a connection to the storage backend failed.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrEmbeddingFailed indicates that embedding generation failed.
	ErrEmbeddingFailed = errors.New("embedding generation failed")

	// ErrDuplicateThread indicates that a duplicate thread was detected.
	ErrDuplicateThread = errors.New("duplicate thread detected")

	// ErrInvalidInput indicates that the provided input is invalid.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStorageOperation indicates that a storage operation failed.
	ErrStorageOperation = errors.New("storage operation failed")
)

// ThreadError wraps errors with operation context.
//
// It provides additional context about which operation failed,
// making error messages more informative for debugging.
//
// Example:
//
//	err := &ThreadError{
//	    Op:  "Open",
//	    Err: ErrEmbeddingFailed,
//	}
//	// Error() returns: "threadpulse: Open: embedding generation failed"
type ThreadError struct {
	// Op is the name of the operation that failed.
	Op string

	// Err is the underlying error.
	Err error
}

// Error returns a formatted error message.
//
// The format is: "threadpulse: <Op>: <Err>"
func (e *ThreadError) Error() string {
	return fmt.Sprintf("threadpulse: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
//
// This allows using errors.Is() and errors.As() with ThreadError.
func (e *ThreadError) Unwrap() error {
	return e.Err
}

// NewThreadError creates a new ThreadError wrapping the given error.
//
// If err is nil, returns nil. This allows safe error wrapping:
//
//	if err != nil {
//	    return NewThreadError("Open", err)
//	}
//
// Parameters:
//   - op: Name of the operation (e.g., "Open", "Touch", "Sweep")
//   - err: The underlying error to wrap
//
// Returns a ThreadError, or nil if err is nil.
func NewThreadError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &ThreadError{
		Op:  op,
		Err: err,
	}
}
