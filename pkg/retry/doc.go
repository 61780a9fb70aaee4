// Package retry provides a background retry scheduler with elapsed-time backoff, age-based bail-out and context cancellation.
//
// Key Features:
//
// 1. Immediate first attempt:
//   - Retry runs the operation right away in the calling goroutine
//   - Successes and non-retryable failures settle without touching the queue
//   - Panics are recovered and reported as *types.SyncError
//
// 2. Background re-execution:
//   - Retryable failures are queued and re-run by a single driver goroutine
//   - The driver sleeps on one timer until the earliest task is due
//   - Requeued tasks go to the back of the queue
//
// 3. Backoff and bail-out:
//   - Delay grows as 1.2x the time a task has been retrying, floored and capped by MaxDelay
//   - Tasks older than the timeout are rejected with the last error they produced
//
// 4. Cancellation:
//   - The caller's context is the cancellation signal
//   - Cancelling it rejects the future immediately with context.Cause
//   - A cancelled task is never executed again
//
// Basic usage example:
//
//	// Create retrier
//	retrier, err := retry.NewRetrier(retry.RetryOn(ErrUnavailable),
//		retry.WithTimeout(6*time.Second),
//		retry.WithMaxDelay(time.Second))
//	if err != nil {
//		return err
//	}
//	defer retrier.Close()
//
//	// Execute function with retry
//	future := retry.Retry(retrier, ctx, func(ctx context.Context) (string, error) {
//		return fetch(ctx)
//	})
//	result, err := future.Wait()
//
// Event handling:
//
//	handler := retry.NewDefaultEventHandler(logger)
//	retrier, _ := retry.NewRetrier(retry.DefaultRetryCondition,
//		retry.WithEventHandler(handler))
//
// Metrics collection:
//
//	collector, _ := metrics.NewPrometheusCollector(prometheus.DefaultRegisterer, "orders")
//	retrier, _ := retry.NewRetrier(retry.DefaultRetryCondition,
//		retry.WithMetricsCollector(collector))
//
// Thread safety:
//
// Retry, Do, Len, Stats and Close are safe for concurrent use. Every Retrier
// owns its queue and driver goroutine; separate Retriers never coordinate.
package retry
