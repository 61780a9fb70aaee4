// Package types defines error types
package types

import (
	"errors"
	"fmt"
)

// Predefined errors
var (
	// ErrInvalidInput indicates invalid input
	ErrInvalidInput = errors.New("invalid input")

	// ErrTimeout indicates operation timeout
	ErrTimeout = errors.New("operation timeout")

	// ErrRetrierClosed indicates the retrier no longer accepts or processes tasks
	ErrRetrierClosed = errors.New("retrier is closed")
)

// SyncError wraps a failure raised while an operation was still executing
// synchronously, i.e. a panic rather than a returned error.
type SyncError struct {
	// Cause is the recovered failure
	Cause error
}

// Error implements the error interface
func (e *SyncError) Error() string {
	return fmt.Sprintf("synchronous error: %v", e.Cause)
}

// Unwrap returns the underlying error
func (e *SyncError) Unwrap() error {
	return e.Cause
}

// NewSyncError converts a recovered panic value into a SyncError
func NewSyncError(recovered interface{}) *SyncError {
	if err, ok := recovered.(error); ok {
		return &SyncError{Cause: err}
	}
	return &SyncError{Cause: fmt.Errorf("%v", recovered)}
}

// IsSyncError checks if an error originated from a panicking operation
func IsSyncError(err error) bool {
	var syncErr *SyncError
	return errors.As(err, &syncErr)
}

// RetryableError represents a retryable error
type RetryableError struct {
	// Err is the underlying error
	Err error

	// Retryable indicates whether the error is retryable
	Retryable bool
}

// Error implements the error interface
func (e *RetryableError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error
func (e *RetryableError) Unwrap() error {
	return e.Err
}

// Transient marks err as retryable
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err, Retryable: true}
}

// IsRetryable checks if an error is retryable
func IsRetryable(err error) bool {
	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}
	return false
}
