package instrumentation

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds all metric instruments for the authflight library.
type Metrics struct {
	// Refresh coordination metrics
	RefreshTriggered metric.Int64Counter
	RefreshCompleted metric.Int64Counter
	RefreshRejected  metric.Int64Counter
	RefreshDuration  metric.Float64Histogram

	// Queueing metrics
	AdaptQueued metric.Int64Counter

	// Retry metrics
	RetryVerdicts metric.Int64Counter

	// Transport metrics
	TransportAttempts metric.Int64Counter
}

// newMetrics creates and registers all metric instruments.
func newMetrics(inst *Instrumentation) (*Metrics, error) {
	m := &Metrics{}
	meter := inst.Meter("interceptor")

	var err error
	m.RefreshTriggered, err = meter.Int64Counter(
		"authflight.refresh.triggered",
		metric.WithDescription("Number of credential refreshes triggered"),
		metric.WithUnit("{refresh}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create refresh.triggered counter: %w", err)
	}

	m.RefreshCompleted, err = meter.Int64Counter(
		"authflight.refresh.completed",
		metric.WithDescription("Number of credential refreshes completed, by outcome"),
		metric.WithUnit("{refresh}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create refresh.completed counter: %w", err)
	}

	m.RefreshRejected, err = meter.Int64Counter(
		"authflight.refresh.rejected",
		metric.WithDescription("Number of refresh triggers rejected by the refresh window"),
		metric.WithUnit("{refresh}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create refresh.rejected counter: %w", err)
	}

	m.RefreshDuration, err = meter.Float64Histogram(
		"authflight.refresh.duration",
		metric.WithDescription("Credential refresh duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create refresh.duration histogram: %w", err)
	}

	m.AdaptQueued, err = meter.Int64Counter(
		"authflight.adapt.queued",
		metric.WithDescription("Number of requests parked behind a pending refresh"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create adapt.queued counter: %w", err)
	}

	m.RetryVerdicts, err = meter.Int64Counter(
		"authflight.retry.verdicts",
		metric.WithDescription("Number of retry verdicts issued, by verdict"),
		metric.WithUnit("{verdict}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create retry.verdicts counter: %w", err)
	}

	transportMeter := inst.Meter("transport")
	m.TransportAttempts, err = transportMeter.Int64Counter(
		"authflight.transport.attempts",
		metric.WithDescription("Number of round-trip attempts, by attempt ordinal"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create transport.attempts counter: %w", err)
	}

	return m, nil
}

// RecordRefreshTriggered records a refresh trigger.
func (m *Metrics) RecordRefreshTriggered(ctx context.Context) {
	if m == nil || m.RefreshTriggered == nil {
		return
	}
	m.RefreshTriggered.Add(ctx, 1)
}

// RecordRefreshCompleted records a refresh completion with its outcome
// and duration in milliseconds.
func (m *Metrics) RecordRefreshCompleted(ctx context.Context, success bool, durationMs float64) {
	if m == nil || m.RefreshCompleted == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.Bool(AttrRefreshSuccess, success))
	m.RefreshCompleted.Add(ctx, 1, attrs)
	if m.RefreshDuration != nil {
		m.RefreshDuration.Record(ctx, durationMs, attrs)
	}
}

// RecordRefreshRejected records a refresh trigger rejected by the
// refresh window.
func (m *Metrics) RecordRefreshRejected(ctx context.Context) {
	if m == nil || m.RefreshRejected == nil {
		return
	}
	m.RefreshRejected.Add(ctx, 1)
}

// RecordAdaptQueued records a request parked behind a pending refresh.
func (m *Metrics) RecordAdaptQueued(ctx context.Context) {
	if m == nil || m.AdaptQueued == nil {
		return
	}
	m.AdaptQueued.Add(ctx, 1)
}

// RecordRetryVerdict records a retry verdict by name.
func (m *Metrics) RecordRetryVerdict(ctx context.Context, verdict string) {
	if m == nil || m.RetryVerdicts == nil {
		return
	}
	m.RetryVerdicts.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrRetryVerdict, verdict)))
}

// RecordTransportAttempt records a round-trip attempt with its ordinal
// (0 for the first attempt).
func (m *Metrics) RecordTransportAttempt(ctx context.Context, attempt int) {
	if m == nil || m.TransportAttempts == nil {
		return
	}
	m.TransportAttempts.Add(ctx, 1, metric.WithAttributes(attribute.Int(AttrTransportAttempt, attempt)))
}
