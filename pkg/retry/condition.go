package retry

import (
	"context"
	"errors"

	"github.com/jzx17/goretry/pkg/types"
)

// RetryCondition is a function that determines retry conditions
type RetryCondition func(error) bool

// DefaultRetryCondition is the default retry condition
func DefaultRetryCondition(err error) bool {
	if err == nil {
		return false
	}

	// context-related errors are not retried
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// check if it's a RetryableError
	if types.IsRetryable(err) {
		return true
	}

	return errors.Is(err, types.ErrTimeout)
}

// RetryOn retries errors matching any of targets
func RetryOn(targets ...error) RetryCondition {
	return func(err error) bool {
		if err == nil {
			return false
		}
		for _, target := range targets {
			if errors.Is(err, target) {
				return true
			}
		}
		return false
	}
}

// RetryUnless retries every error except those matching targets
func RetryUnless(targets ...error) RetryCondition {
	match := RetryOn(targets...)
	return func(err error) bool {
		return err != nil && !match(err)
	}
}
