package types

import (
	"errors"
	"fmt"
	"testing"
)

func TestPredefinedErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrTimeout", ErrTimeout},
		{"ErrRetrierClosed", ErrRetrierClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Errorf("expected error, got nil")
			}
			if tt.err.Error() == "" {
				t.Errorf("expected non-empty error message")
			}
		})
	}
}

func TestSyncError(t *testing.T) {
	t.Run("Error Value", func(t *testing.T) {
		originalErr := errors.New("boom")
		syncErr := NewSyncError(originalErr)

		if syncErr.Cause != originalErr {
			t.Errorf("expected cause to be original error")
		}

		expectedMsg := "synchronous error: boom"
		if syncErr.Error() != expectedMsg {
			t.Errorf("expected message %q, got %q", expectedMsg, syncErr.Error())
		}

		if !errors.Is(syncErr, originalErr) {
			t.Errorf("expected errors.Is to reach the original error")
		}
	})

	t.Run("Non Error Value", func(t *testing.T) {
		syncErr := NewSyncError("index out of range")

		if syncErr.Error() != "synchronous error: index out of range" {
			t.Errorf("unexpected message %q", syncErr.Error())
		}
	})

	t.Run("IsSyncError", func(t *testing.T) {
		wrapped := fmt.Errorf("outer: %w", NewSyncError(ErrTimeout))

		if !IsSyncError(wrapped) {
			t.Errorf("expected wrapped sync error to be detected")
		}
		if IsSyncError(ErrTimeout) {
			t.Errorf("expected plain error not to be a sync error")
		}
	})
}

func TestRetryableError(t *testing.T) {
	t.Run("Retryable Error", func(t *testing.T) {
		originalErr := errors.New("network error")
		retryableErr := &RetryableError{
			Err:       originalErr,
			Retryable: true,
		}

		if retryableErr.Error() != originalErr.Error() {
			t.Errorf("expected error message to match original")
		}

		if errors.Unwrap(retryableErr) != originalErr {
			t.Errorf("expected unwrapped error to be original")
		}

		if !IsRetryable(retryableErr) {
			t.Errorf("expected error to be retryable")
		}
	})

	t.Run("Non-Retryable Error", func(t *testing.T) {
		retryableErr := &RetryableError{
			Err:       errors.New("validation error"),
			Retryable: false,
		}

		if IsRetryable(retryableErr) {
			t.Errorf("expected error not to be retryable")
		}
	})

	t.Run("Regular Error", func(t *testing.T) {
		regularErr := errors.New("regular error")

		if IsRetryable(regularErr) {
			t.Errorf("expected regular error not to be retryable")
		}
	})

	t.Run("Transient", func(t *testing.T) {
		if Transient(nil) != nil {
			t.Errorf("expected nil for nil error")
		}

		err := Transient(ErrTimeout)
		if !IsRetryable(err) {
			t.Errorf("expected transient error to be retryable")
		}
		if !errors.Is(err, ErrTimeout) {
			t.Errorf("expected transient error to wrap ErrTimeout")
		}
	})
}
