package authflight

import (
	"log/slog"
	"time"

	"github.com/giantswarm/authflight/instrumentation"
)

// Default refresh window settings. A broken credential that fails every
// refresh would otherwise drive an unbounded refresh storm.
const (
	// DefaultRefreshInterval is the trailing window over which refresh
	// attempts are counted.
	DefaultRefreshInterval = 30 * time.Second

	// DefaultRefreshMaximumAttempts is the attempt count inside the window
	// at which further refreshes are rejected.
	DefaultRefreshMaximumAttempts = 5
)

// Config holds the Interceptor configuration.
type Config struct {
	// Authenticator performs credential attachment, refresh, and failure
	// classification (required).
	Authenticator Authenticator

	// Credential is the initial credential. May be nil; Adapt and Retry
	// then fail with ErrMissingCredential until SetCredential is called.
	Credential Credential

	// RefreshWindow bounds how often refreshes may run.
	RefreshWindow RefreshWindowConfig

	// Logger for structured logging (optional, uses slog.Default if not
	// provided). Credential values are never logged.
	Logger *slog.Logger

	// Instrumentation provides OpenTelemetry metrics and tracing
	// (optional; no-op when nil).
	Instrumentation *instrumentation.Instrumentation
}

// RefreshWindowConfig rate-limits credential refreshes over a trailing
// time window.
type RefreshWindowConfig struct {
	// Interval is the trailing window over which refresh attempts are
	// counted. Default: DefaultRefreshInterval.
	Interval time.Duration

	// MaximumAttempts is the attempt count inside Interval at which a
	// refresh trigger is rejected with ErrExcessiveRefresh. Reaching the
	// maximum already rejects; see the package tests for the exact edge.
	// Default: DefaultRefreshMaximumAttempts.
	MaximumAttempts int

	// Disabled turns the window off entirely. Only use when the
	// Authenticator applies its own backoff.
	Disabled bool
}

// applyDefaults fills zero-valued window settings with the defaults.
func (c RefreshWindowConfig) applyDefaults() RefreshWindowConfig {
	if c.Interval <= 0 {
		c.Interval = DefaultRefreshInterval
	}
	if c.MaximumAttempts <= 0 {
		c.MaximumAttempts = DefaultRefreshMaximumAttempts
	}
	return c
}
