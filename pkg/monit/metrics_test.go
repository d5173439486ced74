package monit

import (
	"context"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_CountsOutcomes(t *testing.T) {
	ctx := context.Background()
	registry := prometheus.NewRegistry()
	metrics, err := NewMetrics(registry)
	require.NoError(t, err)

	runner := &mockRunner{}
	runner.On("RetCode", ctx, "monit start nginx").Return(0, nil)
	runner.On("RetCode", ctx, "monit start cron").Return(1, nil)
	runner.On("RetCode", ctx, "monit start broken").Return(-1, fmt.Errorf("exec failed"))
	runner.On("Run", ctx, "monit summary").Return("the Monit daemon is not running\n", nil)

	proxy := NewProxy(runner, Options{Metrics: metrics}, createTestLogger())
	_, _ = proxy.Start(ctx, "nginx")
	_, _ = proxy.Start(ctx, "cron")
	_, _ = proxy.Start(ctx, "broken")
	_, _ = proxy.Summary(ctx, "")

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.commands.WithLabelValues("start", outcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.commands.WithLabelValues("start", outcomeFailure)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.commands.WithLabelValues("start", outcomeError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.commands.WithLabelValues("summary", outcomeFailure)))
	assert.Equal(t, 2, testutil.CollectAndCount(metrics.duration))
}

func TestMetrics_DuplicateRegistration(t *testing.T) {
	registry := prometheus.NewRegistry()
	_, err := NewMetrics(registry)
	require.NoError(t, err)

	_, err = NewMetrics(registry)
	assert.Error(t, err)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var metrics *Metrics
	assert.NotPanics(t, func() {
		metrics.countOutcome("start", outcomeSuccess)
		metrics.observeDuration("start", 0)
	})

	unregistered, err := NewMetrics(nil)
	require.NoError(t, err)
	assert.NotNil(t, unregistered)
}
