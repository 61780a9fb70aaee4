package retry

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jzx17/goretry/pkg/types"
)

// retryTask is one pending retry of an operation. Apart from completion,
// which may be settled concurrently by a cancellation listener, its fields
// are only touched by the goroutine that created it until it is enqueued
// and by the driver loop afterwards.
type retryTask struct {
	id  string
	ctx context.Context
	run func(ctx context.Context) (interface{}, error)

	lastErr       error
	createdAt     time.Time
	lastAttemptAt time.Time
	attempts      int

	completion completion
	stopCancel func() bool
}

func newRetryTask(ctx context.Context, run func(ctx context.Context) (interface{}, error), err error, c completion, now time.Time) *retryTask {
	return &retryTask{
		id:            uuid.NewString(),
		ctx:           ctx,
		run:           run,
		lastErr:       err,
		createdAt:     now,
		lastAttemptAt: now,
		attempts:      1,
		completion:    c,
	}
}

// ID returns the task ID
func (t *retryTask) ID() string {
	return t.id
}

// execute runs the operation once, converting a panic into a SyncError
func (t *retryTask) execute() (interface{}, error) {
	return invoke[interface{}](t.ctx, t.run)
}

func invoke[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) (value T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			value = zero
			err = types.NewSyncError(r)
		}
	}()
	return fn(ctx)
}
