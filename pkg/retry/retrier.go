package retry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jzx17/goretry/pkg/types"
)

// Retrier re-executes failed operations in the background until they
// succeed, fail with a non-retryable error, outlive the timeout or are
// cancelled by their caller.
type Retrier struct {
	condition    RetryCondition
	timeout      time.Duration
	backoff      ElapsedBackoff
	clock        types.Clock
	eventHandler EventHandler
	metrics      MetricsCollector

	queue    *taskQueue
	wakeCh   chan struct{}
	quit     chan struct{}
	loopDone chan struct{}

	// lifecycle
	mu      sync.Mutex
	started bool
	closed  bool

	stats   RetrierStats
	statsMu sync.Mutex
}

// Option is a configuration option for a Retrier
type Option func(*Retrier)

// WithTimeout sets the maximum task age before a task is abandoned
func WithTimeout(timeout time.Duration) Option {
	return func(r *Retrier) {
		r.timeout = timeout
	}
}

// WithMaxDelay sets the ceiling on the spacing between attempts
func WithMaxDelay(maxDelay time.Duration) Option {
	return func(r *Retrier) {
		r.backoff.MaxDelay = maxDelay
	}
}

// WithBackoffFloor sets the smallest elapsed time the backoff grows from
func WithBackoffFloor(floor time.Duration) Option {
	return func(r *Retrier) {
		r.backoff.Floor = floor
	}
}

// WithClock sets the clock for time operations
func WithClock(clock types.Clock) Option {
	return func(r *Retrier) {
		r.clock = clock
	}
}

// WithEventHandler sets the event handler
func WithEventHandler(handler EventHandler) Option {
	return func(r *Retrier) {
		r.eventHandler = handler
	}
}

// WithMetricsCollector sets the metrics collector
func WithMetricsCollector(collector MetricsCollector) Option {
	return func(r *Retrier) {
		r.metrics = collector
	}
}

// NewRetrier creates a retrier that retries errors accepted by condition
func NewRetrier(condition RetryCondition, opts ...Option) (*Retrier, error) {
	if condition == nil {
		return nil, fmt.Errorf("%w: retry condition is required", types.ErrInvalidInput)
	}

	r := &Retrier{
		condition: condition,
		timeout:   DefaultTimeout,
		backoff:   NewElapsedBackoff(DefaultBackoffFloor, DefaultMaxDelay),
		clock:     types.NewRealClock(), // Default to real clock
		queue:     newTaskQueue(),
		wakeCh:    make(chan struct{}, 1),
		quit:      make(chan struct{}),
		loopDone:  make(chan struct{}),
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.clock == nil {
		r.clock = types.NewRealClock()
	}
	if r.timeout <= 0 {
		return nil, fmt.Errorf("%w: timeout must be positive, got %v", types.ErrInvalidInput, r.timeout)
	}
	if r.backoff.MaxDelay <= 0 {
		return nil, fmt.Errorf("%w: max delay must be positive, got %v", types.ErrInvalidInput, r.backoff.MaxDelay)
	}
	if r.backoff.Floor <= 0 {
		return nil, fmt.Errorf("%w: backoff floor must be positive, got %v", types.ErrInvalidInput, r.backoff.Floor)
	}

	return r, nil
}

// Retry runs op once, right away, in the calling goroutine. If it fails with
// an error the retrier's condition accepts, op is queued and re-executed in
// the background; the returned future settles when it finally succeeds,
// fails with a non-retryable error, outlives the timeout (carrying the last
// error op returned) or ctx is cancelled (carrying context.Cause(ctx)).
//
// A panic in op is recovered and reported as a *types.SyncError.
func Retry[T any](r *Retrier, ctx context.Context, op types.Operation[T]) *Future[T] {
	if ctx == nil {
		ctx = context.Background()
	}

	future := newFuture[T](r.clock)
	r.updateStats(func(stats *RetrierStats) {
		stats.TotalCalls++
	})

	if ctx.Err() != nil {
		future.reject(context.Cause(ctx))
		return future
	}
	if r.isClosed() {
		future.reject(types.ErrRetrierClosed)
		return future
	}

	r.recordAttempt()
	value, err := invoke[T](ctx, op)
	if err == nil {
		future.resolve(value)
		return future
	}
	if !r.condition(err) {
		future.reject(err)
		return future
	}

	run := func(ctx context.Context) (interface{}, error) {
		return op(ctx)
	}
	task := newRetryTask(ctx, run, err, future, r.clock.Now())
	if ctx.Done() != nil {
		task.stopCancel = context.AfterFunc(ctx, func() {
			r.settle(task, nil, context.Cause(ctx), OutcomeCancelled)
		})
	}

	r.updateStats(func(stats *RetrierStats) {
		stats.TotalQueued++
	})
	if r.metrics != nil {
		r.metrics.RecordQueued()
	}
	if r.eventHandler != nil {
		r.eventHandler.OnTaskQueued(ctx, task.id, err)
	}

	if !r.enqueue(task) {
		r.settle(task, nil, types.ErrRetrierClosed, OutcomeClosed)
	}
	return future
}

// Do runs op through Retry and waits for the outcome
func Do[T any](r *Retrier, ctx context.Context, op types.Operation[T]) (T, error) {
	return Retry(r, ctx, op).Wait()
}

// Len returns the number of queued tasks. Tasks cancelled while queued are
// counted until the driver loop reaches them.
func (r *Retrier) Len() int {
	return r.queue.Len()
}

// Close stops the driver loop and rejects every queued task with
// types.ErrRetrierClosed. It waits for an attempt in progress to return.
func (r *Retrier) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	started := r.started
	r.mu.Unlock()

	close(r.quit)
	if started {
		<-r.loopDone
	}

	for {
		task, ok := r.queue.pop()
		if !ok {
			break
		}
		r.settle(task, nil, types.ErrRetrierClosed, OutcomeClosed)
	}
	r.setQueueLength(0)

	return nil
}

func (r *Retrier) isClosed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// enqueue appends a new task and wakes the driver loop, starting it on first use
func (r *Retrier) enqueue(task *retryTask) bool {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return false
	}
	n := r.queue.push(task)
	if !r.started {
		r.started = true
		go r.loop()
	}
	r.mu.Unlock()

	r.setQueueLength(n)
	r.wake()
	return true
}

// settle fulfills the task's completion and records the outcome. Only the
// first call for a task has any effect.
func (r *Retrier) settle(task *retryTask, value interface{}, err error, outcome Outcome) bool {
	if !task.completion.fulfill(value, err) {
		return false
	}

	// the listener is the caller when cancelled
	if outcome != OutcomeCancelled && task.stopCancel != nil {
		task.stopCancel()
	}

	age := r.clock.Since(task.createdAt)
	r.updateStats(func(stats *RetrierStats) {
		stats.recordOutcome(outcome)
	})
	if r.metrics != nil {
		r.metrics.RecordSettled(outcome, age)
	}
	if r.eventHandler != nil {
		if outcome == OutcomeSucceeded {
			r.eventHandler.OnRetrySuccess(task.ctx, task.id, task.attempts, age)
		}
		r.eventHandler.OnTaskSettled(task.ctx, task.id, outcome, err)
	}

	return true
}

func (r *Retrier) recordAttempt() {
	r.updateStats(func(stats *RetrierStats) {
		stats.TotalAttempts++
	})
	if r.metrics != nil {
		r.metrics.RecordAttempt()
	}
}

func (r *Retrier) setQueueLength(n int) {
	if r.metrics != nil {
		r.metrics.SetQueueLength(n)
	}
}
