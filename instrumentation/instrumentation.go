package instrumentation

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

const (
	// DefaultServiceName is used when no service name is provided.
	DefaultServiceName = "authflight"

	// DefaultServiceVersion is used when no service version is provided.
	DefaultServiceVersion = "unknown"
)

// Config holds instrumentation configuration.
type Config struct {
	// ServiceName is the name of the service using the library.
	ServiceName string

	// ServiceVersion is the version of the service.
	ServiceVersion string

	// Enabled controls whether instrumentation is active. When false,
	// no-op providers are used (zero overhead).
	Enabled bool

	// MeterProvider overrides the meter provider. When nil, the global
	// no-op provider is used until exporter wiring is added by the caller.
	MeterProvider metric.MeterProvider

	// TracerProvider overrides the tracer provider. When nil, a no-op
	// provider is used.
	TracerProvider trace.TracerProvider

	// Resource allows custom resource attributes. If nil, a default
	// resource is created with the service name and version.
	Resource *resource.Resource
}

// Instrumentation provides OpenTelemetry instrumentation components.
type Instrumentation struct {
	config   Config
	resource *resource.Resource

	meterProvider  metric.MeterProvider
	tracerProvider trace.TracerProvider

	metrics *Metrics

	// Shutdown functions registered during New only; not thread-safe to
	// extend after initialization.
	shutdownFuncs []func(context.Context) error
	shutdownOnce  sync.Once
}

// New creates a new instrumentation instance.
func New(config Config) (*Instrumentation, error) {
	if config.ServiceName == "" {
		config.ServiceName = DefaultServiceName
	}
	if config.ServiceVersion == "" {
		config.ServiceVersion = DefaultServiceVersion
	}

	res := config.Resource
	if res == nil {
		var err error
		res, err = resource.New(
			context.Background(),
			resource.WithAttributes(
				semconv.ServiceName(config.ServiceName),
				semconv.ServiceVersion(config.ServiceVersion),
			),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create resource: %w", err)
		}
	}

	inst := &Instrumentation{
		config:   config,
		resource: res,
	}

	if config.Enabled {
		inst.meterProvider = config.MeterProvider
		inst.tracerProvider = config.TracerProvider
	}
	if inst.meterProvider == nil {
		inst.meterProvider = noop.NewMeterProvider()
	}
	if inst.tracerProvider == nil {
		inst.tracerProvider = tracenoop.NewTracerProvider()
	}

	var err error
	inst.metrics, err = newMetrics(inst)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}

	return inst, nil
}

// Shutdown gracefully shuts down all instrumentation providers. It should
// be called when the application is terminating.
func (i *Instrumentation) Shutdown(ctx context.Context) error {
	var shutdownErr error

	i.shutdownOnce.Do(func() {
		for _, fn := range i.shutdownFuncs {
			if err := fn(ctx); err != nil && shutdownErr == nil {
				shutdownErr = err
			}
		}
	})

	return shutdownErr
}

// Meter returns a named meter for the given scope. Scopes are layer names
// like "interceptor" or "transport"; the full name becomes
// "github.com/giantswarm/authflight/{scope}".
func (i *Instrumentation) Meter(scope string) metric.Meter {
	return i.meterProvider.Meter("github.com/giantswarm/authflight/" + scope)
}

// Tracer returns a named tracer for the given scope, named the same way
// as Meter.
func (i *Instrumentation) Tracer(scope string) trace.Tracer {
	return i.tracerProvider.Tracer("github.com/giantswarm/authflight/" + scope)
}

// Metrics returns the metrics holder for recording metric values.
func (i *Instrumentation) Metrics() *Metrics {
	return i.metrics
}

// TracerProvider returns the underlying tracer provider.
func (i *Instrumentation) TracerProvider() trace.TracerProvider {
	return i.tracerProvider
}

// MeterProvider returns the underlying meter provider.
func (i *Instrumentation) MeterProvider() metric.MeterProvider {
	return i.meterProvider
}
