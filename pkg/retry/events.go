package retry

import (
	"context"
	"time"
)

// Outcome describes how a retried task was settled
type Outcome int

const (
	// OutcomeSucceeded means a later attempt returned a value
	OutcomeSucceeded Outcome = iota
	// OutcomeRejected means a later attempt failed with a non-retryable error
	OutcomeRejected
	// OutcomeBailedOut means the task outlived the timeout
	OutcomeBailedOut
	// OutcomeCancelled means the caller's context was cancelled
	OutcomeCancelled
	// OutcomeClosed means the retrier was closed with the task still queued
	OutcomeClosed
)

// String returns the string representation of Outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeRejected:
		return "rejected"
	case OutcomeBailedOut:
		return "bailed_out"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// EventHandler handles retry events
type EventHandler interface {
	OnTaskQueued(ctx context.Context, taskID string, err error)
	OnRetryAttempt(ctx context.Context, taskID string, attempt int)
	OnRetrySuccess(ctx context.Context, taskID string, attempt int, age time.Duration)
	OnRetryFailure(ctx context.Context, taskID string, attempt int, err error)
	OnTaskSettled(ctx context.Context, taskID string, outcome Outcome, err error)
}

// MetricsCollector receives counters and gauges from a Retrier
type MetricsCollector interface {
	RecordQueued()
	RecordAttempt()
	RecordSettled(outcome Outcome, age time.Duration)
	SetQueueLength(n int)
}

// Logger interface for logging
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// DefaultEventHandler is the default event handler implementation
type DefaultEventHandler struct {
	logger Logger
}

// NewDefaultEventHandler creates a default event handler
func NewDefaultEventHandler(logger Logger) *DefaultEventHandler {
	return &DefaultEventHandler{logger: logger}
}

// OnTaskQueued handles task queued events
func (h *DefaultEventHandler) OnTaskQueued(ctx context.Context, taskID string, err error) {
	if h.logger != nil {
		h.logger.Debugf("Task %s queued for retry: %v", taskID, err)
	}
}

// OnRetryAttempt handles retry attempt events
func (h *DefaultEventHandler) OnRetryAttempt(ctx context.Context, taskID string, attempt int) {
	if h.logger != nil {
		h.logger.Debugf("Task %s attempt %d starting", taskID, attempt)
	}
}

// OnRetrySuccess handles retry success events
func (h *DefaultEventHandler) OnRetrySuccess(ctx context.Context, taskID string, attempt int, age time.Duration) {
	if h.logger != nil {
		h.logger.Infof("Task %s succeeded on attempt %d after %v", taskID, attempt, age)
	}
}

// OnRetryFailure handles retry failure events
func (h *DefaultEventHandler) OnRetryFailure(ctx context.Context, taskID string, attempt int, err error) {
	if h.logger != nil {
		h.logger.Warnf("Task %s attempt %d failed: %v", taskID, attempt, err)
	}
}

// OnTaskSettled handles terminal events other than success
func (h *DefaultEventHandler) OnTaskSettled(ctx context.Context, taskID string, outcome Outcome, err error) {
	if h.logger == nil || outcome == OutcomeSucceeded {
		return
	}
	h.logger.Errorf("Task %s %s: %v", taskID, outcome, err)
}
