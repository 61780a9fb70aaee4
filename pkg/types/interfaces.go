// Package types defines core interfaces and types shared by the retry packages
package types

import (
	"context"
	"time"
)

// Operation is a unit of work that may be executed more than once.
// The context carries the caller's cancellation signal.
type Operation[T any] func(ctx context.Context) (T, error)

// Result defines the result of asynchronous execution
type Result[R any] struct {
	// Value is the execution result
	Value R

	// Error is the execution error
	Error error

	// Duration is the time from submission until the result settled
	Duration time.Duration
}
