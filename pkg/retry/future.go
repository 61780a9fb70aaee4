package retry

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/jzx17/goretry/pkg/types"
)

const (
	futurePending int32 = iota
	futureSettling
	futureSettled
)

// completion is the untyped view of a Future the driver loop works with
type completion interface {
	fulfill(value interface{}, err error) bool
	settled() bool
}

// Future is the single-assignment result of a Retry call. It settles exactly
// once: with the operation's value, with a terminal error, or with the
// cancellation cause of the caller's context.
type Future[T any] struct {
	state  int32
	done   chan struct{}
	result types.Result[T]
	start  time.Time
	clock  types.Clock
}

func newFuture[T any](clock types.Clock) *Future[T] {
	return &Future[T]{
		done:  make(chan struct{}),
		start: clock.Now(),
		clock: clock,
	}
}

// Done is closed once the future has settled
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the future settles
func (f *Future[T]) Wait() (T, error) {
	<-f.done
	return f.result.Value, f.result.Error
}

// Await blocks until the future settles or ctx is done. Giving up on ctx
// does not cancel the retry; pass the context to Retry for that.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.result.Value, f.result.Error
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Result returns the settled result without blocking
func (f *Future[T]) Result() (types.Result[T], bool) {
	if atomic.LoadInt32(&f.state) != futureSettled {
		return types.Result[T]{}, false
	}
	return f.result, true
}

func (f *Future[T]) resolve(value T) bool {
	return f.settle(value, nil)
}

func (f *Future[T]) reject(err error) bool {
	var zero T
	return f.settle(zero, err)
}

func (f *Future[T]) settle(value T, err error) bool {
	if !atomic.CompareAndSwapInt32(&f.state, futurePending, futureSettling) {
		return false
	}

	f.result = types.Result[T]{
		Value:    value,
		Error:    err,
		Duration: f.clock.Since(f.start),
	}
	atomic.StoreInt32(&f.state, futureSettled)
	close(f.done)
	return true
}

func (f *Future[T]) fulfill(value interface{}, err error) bool {
	if err != nil {
		return f.reject(err)
	}
	v, _ := value.(T)
	return f.resolve(v)
}

func (f *Future[T]) settled() bool {
	return atomic.LoadInt32(&f.state) != futurePending
}
