package retry

import (
	"time"
)

// wake asks the driver loop to look at the queue again. Wake-ups coalesce:
// at most one is ever pending.
func (r *Retrier) wake() {
	select {
	case r.wakeCh <- struct{}{}:
	default:
	}
}

// loop is the driver goroutine. It drains the queue, then sleeps on a single
// timer until the earliest requeued task is due or until it is woken.
func (r *Retrier) loop() {
	defer close(r.loopDone)

	for {
		wait, pending := r.drain()

		if !pending {
			// dormant until the next enqueue
			select {
			case <-r.wakeCh:
				continue
			case <-r.quit:
				return
			}
		}

		if wait <= 0 {
			select {
			case <-r.quit:
				return
			default:
				continue
			}
		}

		timer := r.clock.NewTimer(wait)
		select {
		case <-r.wakeCh:
		case <-timer.C():
		case <-r.quit:
			timer.Stop()
			return
		}
		timer.Stop()
	}
}

// drain ticks once for every task queued when it starts. It returns the
// shortest wait among the tasks left in the queue and whether any remain.
func (r *Retrier) drain() (time.Duration, bool) {
	n := r.queue.Len()

	var next time.Duration
	for i := 0; i < n; i++ {
		select {
		case <-r.quit:
			return 0, false
		default:
		}

		wait, ok := r.tick()
		if !ok {
			break
		}
		if wait > 0 && (next == 0 || wait < next) {
			next = wait
		}
	}

	size := r.queue.Len()
	r.setQueueLength(size)
	return next, size > 0
}

// tick pops the queue head and handles it once: it drops tasks already
// settled by cancellation, bails out of expired ones, requeues tasks that
// are not yet due and re-executes the rest. The returned duration is how
// long until the task needs another look, zero once it has left the queue.
// The boolean is false when the queue was empty.
func (r *Retrier) tick() (time.Duration, bool) {
	task, ok := r.queue.pop()
	if !ok {
		return 0, false
	}

	// cancelled while queued
	if task.completion.settled() {
		return 0, true
	}

	now := r.clock.Now()
	if expired(task.createdAt, now, r.timeout) {
		r.settle(task, nil, task.lastErr, OutcomeBailedOut)
		return 0, true
	}

	if remaining := r.backoff.Remaining(task.createdAt, task.lastAttemptAt, now); remaining > 0 {
		r.queue.push(task)
		return r.nextWake(task, now, remaining), true
	}

	task.lastAttemptAt = now
	task.attempts++
	r.recordAttempt()
	if r.eventHandler != nil {
		r.eventHandler.OnRetryAttempt(task.ctx, task.id, task.attempts)
	}

	value, err := task.execute()
	if err == nil {
		r.settle(task, value, nil, OutcomeSucceeded)
		return 0, true
	}
	if !r.condition(err) {
		r.settle(task, nil, err, OutcomeRejected)
		return 0, true
	}
	if task.completion.settled() {
		return 0, true
	}

	if r.eventHandler != nil {
		r.eventHandler.OnRetryFailure(task.ctx, task.id, task.attempts, err)
	}

	now = r.clock.Now()
	task.lastErr = err
	task.lastAttemptAt = now
	r.queue.push(task)

	return r.nextWake(task, now, r.backoff.Remaining(task.createdAt, now, now)), true
}

// nextWake caps a backoff wait by the time left before the task expires
func (r *Retrier) nextWake(task *retryTask, now time.Time, remaining time.Duration) time.Duration {
	if untilBail := untilExpiry(task.createdAt, now, r.timeout); untilBail < remaining {
		return untilBail
	}
	return remaining
}
