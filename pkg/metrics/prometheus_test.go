package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jzx17/goretry/pkg/retry"
)

func TestPrometheusCollector_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewPrometheusCollector(reg, "orders")
	require.NoError(t, err)

	c.RecordQueued()
	c.RecordAttempt()
	c.RecordAttempt()
	c.RecordSettled(retry.OutcomeSucceeded, 1500*time.Millisecond)
	c.RecordSettled(retry.OutcomeBailedOut, 6*time.Second)
	c.RecordSettled(retry.OutcomeBailedOut, 7*time.Second)
	c.SetQueueLength(4)

	assert.Equal(t, float64(1), testutil.ToFloat64(c.queued))
	assert.Equal(t, float64(2), testutil.ToFloat64(c.attempts))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.settled.WithLabelValues("succeeded")))
	assert.Equal(t, float64(2), testutil.ToFloat64(c.settled.WithLabelValues("bailed_out")))
	assert.Equal(t, float64(4), testutil.ToFloat64(c.queueLength))
	assert.Equal(t, 2, testutil.CollectAndCount(c.settleAge))

	count, err := testutil.GatherAndCount(reg, "goretry_retrier_tasks_settled_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestPrometheusCollector_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()

	_, err := NewPrometheusCollector(reg, "orders")
	require.NoError(t, err)

	_, err = NewPrometheusCollector(reg, "orders")
	assert.Error(t, err)
	var are prometheus.AlreadyRegisteredError
	assert.True(t, errors.As(err, &are))

	_, err = NewPrometheusCollector(reg, "payments")
	assert.NoError(t, err, "distinct names can share a registry")
}

func TestPrometheusCollector_WithRetrier(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewPrometheusCollector(reg, "flaky")
	require.NoError(t, err)

	errUnavailable := errors.New("unavailable")
	r, err := retry.NewRetrier(retry.RetryOn(errUnavailable),
		retry.WithBackoffFloor(time.Millisecond),
		retry.WithMaxDelay(2*time.Millisecond),
		retry.WithMetricsCollector(c))
	require.NoError(t, err)
	defer r.Close()

	calls := 0
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	value, err := retry.Retry(r, ctx, func(ctx context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, errUnavailable
		}
		return calls, nil
	}).Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, value)

	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(c.settled.WithLabelValues("succeeded")) == 1
	}, time.Second, time.Millisecond)
	assert.Equal(t, float64(1), testutil.ToFloat64(c.queued))
	assert.Equal(t, float64(3), testutil.ToFloat64(c.attempts))
	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(c.queueLength) == 0
	}, time.Second, time.Millisecond)
}
