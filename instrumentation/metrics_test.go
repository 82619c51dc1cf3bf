package instrumentation

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// metricdataExport wraps ResourceMetrics so the manual reader has a
// stable destination across tests.
type metricdataExport struct {
	rm metricdata.ResourceMetrics
}

func TestMetrics_RecordRefreshLifecycle(t *testing.T) {
	ctx := context.Background()
	inst, err := New(Config{Enabled: true})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() { _ = inst.Shutdown(context.Background()) }()

	metrics := inst.Metrics()

	tests := []struct {
		name    string
		success bool
		ms      float64
	}{
		{"fast success", true, 12.5},
		{"slow success", true, 950.0},
		{"failure", false, 45.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Should not panic
			metrics.RecordRefreshTriggered(ctx)
			metrics.RecordRefreshCompleted(ctx, tt.success, tt.ms)
		})
	}
}

func TestMetrics_RecordVerdicts(t *testing.T) {
	ctx := context.Background()
	inst, err := New(Config{Enabled: true})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() { _ = inst.Shutdown(context.Background()) }()

	metrics := inst.Metrics()

	for _, verdict := range []string{"retry", "do_not_retry", "do_not_retry_with_error"} {
		metrics.RecordRetryVerdict(ctx, verdict)
	}
	metrics.RecordAdaptQueued(ctx)
	metrics.RecordRefreshRejected(ctx)
	metrics.RecordTransportAttempt(ctx, 1)
}

func TestMetrics_NilSafe(t *testing.T) {
	ctx := context.Background()

	var m *Metrics
	m.RecordRefreshTriggered(ctx)
	m.RecordRefreshCompleted(ctx, true, 1.0)
	m.RecordRefreshRejected(ctx)
	m.RecordAdaptQueued(ctx)
	m.RecordRetryVerdict(ctx, "retry")
	m.RecordTransportAttempt(ctx, 0)
}
