package instrumentation

import (
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Common span and metric attribute keys.
//
// SECURITY WARNING: never put actual credential values (tokens, API keys)
// into traces or metrics. Only metadata belongs here: verdict names,
// attempt ordinals, outcome flags, and credential fingerprints.
const (
	// Refresh attributes
	AttrRefreshSuccess = "authflight.refresh.success" // refresh outcome (boolean)

	// Retry attributes
	AttrRetryVerdict = "authflight.retry.verdict" // verdict name (retry, do_not_retry, ...)

	// Transport attributes
	AttrTransportAttempt = "authflight.transport.attempt" // attempt ordinal, 0-based
	AttrHTTPMethod       = "http.method"
	AttrHTTPStatusCode   = "http.status_code"

	// Credential attributes - fingerprints only, never values
	AttrCredentialFingerprint = "authflight.credential.fingerprint"
)

// RecordError records an error on a span with proper status codes (nil-safe).
func RecordError(span trace.Span, err error) {
	if span != nil && err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// EndSpan ends a span if it is non-nil.
func EndSpan(span trace.Span) {
	if span != nil {
		span.End()
	}
}
