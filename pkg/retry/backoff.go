package retry

import (
	"math"
	"time"
)

const (
	// DefaultMultiplier is the growth factor applied to a task's elapsed time
	DefaultMultiplier = 1.2

	// DefaultBackoffFloor is the smallest elapsed time used when computing a delay
	DefaultBackoffFloor = time.Second

	// DefaultMaxDelay caps the spacing between attempts
	DefaultMaxDelay = time.Second

	// DefaultTimeout is the maximum age of a task before it is abandoned
	DefaultTimeout = 6 * time.Second
)

// ElapsedBackoff derives the delay before the next attempt from how long a
// task has already been retrying. The delay is the elapsed time since the
// task was created, floored at Floor, multiplied by Multiplier and capped
// at MaxDelay, so it never shrinks as the task ages.
type ElapsedBackoff struct {
	Multiplier float64
	Floor      time.Duration
	MaxDelay   time.Duration
}

// NewElapsedBackoff creates an elapsed-time backoff with the default multiplier
func NewElapsedBackoff(floor, maxDelay time.Duration) ElapsedBackoff {
	return ElapsedBackoff{
		Multiplier: DefaultMultiplier,
		Floor:      floor,
		MaxDelay:   maxDelay,
	}
}

// Delay returns the desired spacing for a task whose last attempt happened
// sinceStart after it was created.
func (b ElapsedBackoff) Delay(sinceStart time.Duration) time.Duration {
	if sinceStart < b.Floor {
		sinceStart = b.Floor
	}

	delay := time.Duration(math.Round(float64(sinceStart) * b.Multiplier))

	// limit maximum delay
	if delay > b.MaxDelay {
		delay = b.MaxDelay
	}

	return delay
}

// Remaining reports how much longer a task must wait at now before it is
// eligible for another attempt. Zero means it is eligible.
func (b ElapsedBackoff) Remaining(createdAt, lastAttemptAt, now time.Time) time.Duration {
	desired := b.Delay(lastAttemptAt.Sub(createdAt))
	waited := now.Sub(lastAttemptAt)
	if waited >= desired {
		return 0
	}
	return desired - waited
}

// expired reports whether a task created at createdAt is older than timeout at now
func expired(createdAt, now time.Time, timeout time.Duration) bool {
	return now.Sub(createdAt) > timeout
}

// untilExpiry returns how long until a task created at createdAt becomes
// older than timeout.
func untilExpiry(createdAt, now time.Time, timeout time.Duration) time.Duration {
	return createdAt.Add(timeout).Sub(now) + time.Nanosecond
}
