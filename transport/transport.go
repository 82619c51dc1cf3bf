// Package transport plugs the authflight interceptor into the standard
// net/http client stack. Transport is an http.RoundTripper that adapts
// each request before sending it, consults the interceptor after a
// failure, and resends when the verdict is retry.
package transport

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/time/rate"

	"github.com/giantswarm/authflight"
	"github.com/giantswarm/authflight/instrumentation"
)

// DefaultMaxRetries is how many times a request is resent after the
// interceptor issues a retry verdict.
const DefaultMaxRetries = 2

// Transport is an http.RoundTripper that authenticates requests through
// an authflight.Interceptor.
type Transport struct {
	base        http.RoundTripper
	interceptor *authflight.Interceptor
	limiter     *rate.Limiter
	maxRetries  int
	logger      *slog.Logger
	metrics     *instrumentation.Metrics
	tracer      trace.Tracer
}

// Compile-time interface check.
var _ http.RoundTripper = (*Transport)(nil)

// Config holds the transport configuration.
type Config struct {
	// Interceptor coordinates credential attachment and refresh (required).
	Interceptor *authflight.Interceptor

	// Base is the underlying round tripper. Default: http.DefaultTransport.
	Base http.RoundTripper

	// MaxRetries bounds how many times a request is resent on a retry
	// verdict. Default: DefaultMaxRetries. Negative disables retries.
	MaxRetries int

	// Limiter optionally throttles outgoing requests (token bucket).
	// Requests wait for a token before each attempt; a canceled request
	// context aborts the wait.
	Limiter *rate.Limiter

	// Logger for structured logging (optional, uses slog.Default if not
	// provided).
	Logger *slog.Logger

	// Instrumentation provides OpenTelemetry metrics and tracing
	// (optional; no-op when nil).
	Instrumentation *instrumentation.Instrumentation
}

// New creates a Transport from the given configuration.
func New(cfg Config) (*Transport, error) {
	if cfg.Interceptor == nil {
		return nil, fmt.Errorf("interceptor is required")
	}

	base := cfg.Base
	if base == nil {
		base = http.DefaultTransport
	}

	maxRetries := cfg.MaxRetries
	if maxRetries == 0 {
		maxRetries = DefaultMaxRetries
	}
	if maxRetries < 0 {
		maxRetries = 0
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var metrics *instrumentation.Metrics
	tracer := trace.Tracer(tracenoop.NewTracerProvider().Tracer(""))
	if cfg.Instrumentation != nil {
		metrics = cfg.Instrumentation.Metrics()
		tracer = cfg.Instrumentation.Tracer("transport")
	}

	return &Transport{
		base:        base,
		interceptor: cfg.Interceptor,
		limiter:     cfg.Limiter,
		maxRetries:  maxRetries,
		logger:      logger,
		metrics:     metrics,
		tracer:      tracer,
	}, nil
}

// adaptOutcome carries an Adapt completion across goroutines.
type adaptOutcome struct {
	req *http.Request
	err error
}

// RoundTrip implements http.RoundTripper. The request body must be
// replayable (GetBody set, as on requests built by http.NewRequest) for
// retries to work; otherwise the first outcome is returned as-is.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	for attempt := 0; ; attempt++ {
		if t.limiter != nil {
			if err := t.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		attemptReq, err := t.cloneForAttempt(req, attempt)
		if err != nil {
			return nil, err
		}

		sent, resp, rtErr := t.attempt(ctx, attemptReq, attempt)
		if !sent {
			// The interceptor refused the request; it never went out, so
			// there is nothing for Retry to classify.
			return nil, rtErr
		}
		if rtErr == nil && resp.StatusCode < http.StatusBadRequest {
			return resp, nil
		}

		result := t.retry(ctx, attemptReq, resp, rtErr)
		switch result.Verdict {
		case authflight.VerdictRetry:
			if attempt >= t.maxRetries {
				t.logger.Debug("Retry budget exhausted", "attempts", attempt+1)
				return resp, rtErr
			}
			if !replayable(req) {
				t.logger.Debug("Request body is not replayable, returning first outcome")
				return resp, rtErr
			}
			drain(resp)

		case authflight.VerdictDoNotRetryWithError:
			drain(resp)
			return nil, result.Err

		default:
			return resp, rtErr
		}
	}
}

// attempt adapts and sends the request once, inside a span. sent is
// false when the interceptor refused the request before it went out.
func (t *Transport) attempt(ctx context.Context, req *http.Request, attempt int) (sent bool, _ *http.Response, _ error) {
	ctx, span := t.tracer.Start(ctx, "authflight.transport.attempt",
		trace.WithAttributes(
			attribute.Int(instrumentation.AttrTransportAttempt, attempt),
			attribute.String(instrumentation.AttrHTTPMethod, req.Method),
		),
	)
	defer instrumentation.EndSpan(span)

	if t.metrics != nil {
		t.metrics.RecordTransportAttempt(ctx, attempt)
	}

	adapted, err := t.adapt(ctx, req)
	if err != nil {
		instrumentation.RecordError(span, err)
		return false, nil, err
	}

	resp, err := t.base.RoundTrip(adapted)
	if err != nil {
		instrumentation.RecordError(span, err)
		return true, nil, err
	}
	span.SetAttributes(attribute.Int(instrumentation.AttrHTTPStatusCode, resp.StatusCode))
	return true, resp, nil
}

// adapt bridges the interceptor's completion callback to a synchronous
// result, honoring the request context while waiting.
func (t *Transport) adapt(ctx context.Context, req *http.Request) (*http.Request, error) {
	outcome := make(chan adaptOutcome, 1)
	t.interceptor.Adapt(ctx, req, func(adapted *http.Request, err error) {
		outcome <- adaptOutcome{req: adapted, err: err}
	})

	select {
	case out := <-outcome:
		return out.req, out.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// retry bridges the interceptor's verdict callback to a synchronous
// result, honoring the request context while waiting.
func (t *Transport) retry(ctx context.Context, req *http.Request, resp *http.Response, rtErr error) authflight.RetryResult {
	verdict := make(chan authflight.RetryResult, 1)
	t.interceptor.Retry(ctx, req, resp, rtErr, func(result authflight.RetryResult) {
		verdict <- result
	})

	select {
	case result := <-verdict:
		return result
	case <-ctx.Done():
		return authflight.RetryResult{Verdict: authflight.VerdictDoNotRetryWithError, Err: ctx.Err()}
	}
}

// cloneForAttempt clones the original request, rewinding the body on
// resends.
func (t *Transport) cloneForAttempt(req *http.Request, attempt int) (*http.Request, error) {
	clone := req.Clone(req.Context())
	if attempt == 0 || req.Body == nil {
		return clone, nil
	}

	if req.GetBody == nil {
		return nil, fmt.Errorf("cannot replay request body for retry")
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, fmt.Errorf("failed to rewind request body: %w", err)
	}
	clone.Body = body
	return clone, nil
}

// replayable reports whether the request can be sent again.
func replayable(req *http.Request) bool {
	return req.Body == nil || req.GetBody != nil
}

// drain discards and closes a response body so the underlying connection
// can be reused for the retry.
func drain(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
