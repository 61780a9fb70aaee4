// Package testutils provides simplified testing utilities and helper functions
package testutils

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// ErrFlaky is the failure returned by FlakyOperation before it succeeds
var ErrFlaky = errors.New("flaky failure")

// CountingOperation records how many times an operation has been invoked
// and the last error it returned.
type CountingOperation[T any] struct {
	calls   int64
	mu      sync.Mutex
	lastErr error
	fn      func(call int) (T, error)
}

// NewCountingOperation wraps fn; call numbers start at 1
func NewCountingOperation[T any](fn func(call int) (T, error)) *CountingOperation[T] {
	return &CountingOperation[T]{fn: fn}
}

// Run is the operation to hand to the retrier
func (o *CountingOperation[T]) Run(ctx context.Context) (T, error) {
	call := int(atomic.AddInt64(&o.calls, 1))
	value, err := o.fn(call)

	o.mu.Lock()
	o.lastErr = err
	o.mu.Unlock()

	return value, err
}

// Calls returns the number of invocations so far
func (o *CountingOperation[T]) Calls() int {
	return int(atomic.LoadInt64(&o.calls))
}

// LastError returns the error produced by the most recent invocation
func (o *CountingOperation[T]) LastError() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastErr
}

// FlakyOperation fails with ErrFlaky (numbered per call) for the first
// failures invocations and returns value afterwards.
func FlakyOperation[T any](failures int, value T) *CountingOperation[T] {
	return NewCountingOperation(func(call int) (T, error) {
		var zero T
		if call <= failures {
			return zero, fmt.Errorf("call %d: %w", call, ErrFlaky)
		}
		return value, nil
	})
}

// AlwaysFailing never succeeds; every call returns a distinct ErrFlaky wrapper
func AlwaysFailing[T any]() *CountingOperation[T] {
	return NewCountingOperation(func(call int) (T, error) {
		var zero T
		return zero, fmt.Errorf("call %d: %w", call, ErrFlaky)
	})
}

// TestTimeout bounds how long tests wait on real-clock retries
const TestTimeout = 5 * time.Second

// Context returns a context bounded by TestTimeout
func Context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), TestTimeout)
}
