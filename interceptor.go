package authflight

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/giantswarm/authflight/instrumentation"
)

// adaptWaiter captures an Adapt call that arrived while a refresh was
// pending. It is resumed by re-invoking Adapt once the refresh resolves.
type adaptWaiter struct {
	ctx      context.Context
	req      *http.Request
	complete func(*http.Request, error)
}

// Interceptor coordinates credential refresh for concurrent requests.
//
// All shared state lives behind a single mutex. Critical sections are
// pure state transitions: the Authenticator is never called and no
// completion ever fires while the lock is held, so a resumed waiter that
// re-enters Adapt cannot deadlock.
//
// There is no cancellation for an in-flight refresh: an Authenticator
// whose Refresh never completes stalls every parked request. Callers that
// need a bound should enforce one inside their Authenticator.
type Interceptor struct {
	authenticator Authenticator
	window        RefreshWindowConfig
	logger        *slog.Logger
	metrics       *instrumentation.Metrics

	// now is the clock used for refresh window accounting; replaced in tests.
	now func() time.Time

	mu                sync.Mutex
	credential        Credential
	refreshing        bool
	refreshStartedAt  time.Time
	refreshTimestamps []time.Time
	pendingAdapts     []adaptWaiter
	pendingRetries    []func(RetryResult)
}

// New creates an Interceptor from the given configuration.
func New(cfg Config) (*Interceptor, error) {
	if cfg.Authenticator == nil {
		return nil, fmt.Errorf("authenticator is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var metrics *instrumentation.Metrics
	if cfg.Instrumentation != nil {
		metrics = cfg.Instrumentation.Metrics()
	}

	return &Interceptor{
		authenticator: cfg.Authenticator,
		window:        cfg.RefreshWindow.applyDefaults(),
		logger:        logger,
		metrics:       metrics,
		now:           time.Now,
		credential:    cfg.Credential,
	}, nil
}

// Credential returns the current credential, or nil if none is set.
func (i *Interceptor) Credential() Credential {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.credential
}

// SetCredential replaces the current credential. It does not interrupt a
// refresh already in flight; that refresh's outcome will overwrite the
// credential again on success.
func (i *Interceptor) SetCredential(credential Credential) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.credential = credential
}

// Adapt decides how to authenticate an outgoing request and reports the
// outcome through complete, which is invoked exactly once: with the
// authenticated request, or with an error.
//
// Adapt never blocks. If a refresh is pending the call is parked and
// complete fires later, on a different goroutine, when the refresh
// resolves. ctx is retained with the parked call and passed through
// unchanged on resumption.
func (i *Interceptor) Adapt(ctx context.Context, req *http.Request, complete func(*http.Request, error)) {
	i.mu.Lock()

	if i.refreshing {
		i.pendingAdapts = append(i.pendingAdapts, adaptWaiter{ctx: ctx, req: req, complete: complete})
		queued := len(i.pendingAdapts)
		i.mu.Unlock()
		i.logger.Debug("Request parked behind in-flight refresh", "queued_adapts", queued)
		i.recordAdaptQueued(ctx)
		return
	}

	credential := i.credential
	if credential == nil {
		i.mu.Unlock()
		complete(nil, ErrMissingCredential)
		return
	}

	if credential.RequiresRefresh() {
		i.pendingAdapts = append(i.pendingAdapts, adaptWaiter{ctx: ctx, req: req, complete: complete})
		i.refreshLocked(credential)
		i.mu.Unlock()
		i.recordAdaptQueued(ctx)
		return
	}

	i.mu.Unlock()

	i.authenticator.Attach(req, credential)
	complete(req, nil)
}

// Retry classifies a failed request and reports a verdict through
// complete, which is invoked exactly once. resp and err mirror the failed
// round trip and either may be nil.
//
// A request that failed under a credential the interceptor has already
// replaced gets an immediate VerdictRetry: the refresh it needs has
// already happened. A request that failed under the current credential is
// parked and a refresh is triggered if none is in flight.
func (i *Interceptor) Retry(ctx context.Context, req *http.Request, resp *http.Response, err error, complete func(RetryResult)) {
	i.mu.Lock()
	credential := i.credential
	i.mu.Unlock()

	if credential == nil {
		i.completeRetry(ctx, complete, RetryResult{Verdict: VerdictDoNotRetryWithError, Err: ErrMissingCredential})
		return
	}

	// Classification consults the Authenticator, so it happens outside the
	// lock against a snapshot of the credential.
	if !i.authenticator.IsAuthFailure(req, resp, err) {
		i.completeRetry(ctx, complete, RetryResult{Verdict: VerdictDoNotRetry})
		return
	}

	if !i.authenticator.IsAuthenticatedWith(req, credential) {
		i.logger.Debug("Request failed under a stale credential, retrying immediately")
		i.completeRetry(ctx, complete, RetryResult{Verdict: VerdictRetry})
		return
	}

	i.mu.Lock()
	i.pendingRetries = append(i.pendingRetries, complete)
	if !i.refreshing {
		i.refreshLocked(credential)
	}
	i.mu.Unlock()
}

// refreshLocked triggers a refresh of the given credential. The caller
// must hold i.mu. The Authenticator runs on its own goroutine so that
// even a synchronous completion re-acquires the lock cleanly.
func (i *Interceptor) refreshLocked(credential Credential) {
	if i.isRefreshExcessiveLocked() {
		i.logger.Warn("Refresh rejected by refresh window",
			"interval", i.window.Interval,
			"maximum_attempts", i.window.MaximumAttempts,
		)
		i.recordRefreshRejected()
		i.failPendingLocked(ErrExcessiveRefresh)
		return
	}

	i.refreshTimestamps = append(i.refreshTimestamps, i.now())
	i.refreshStartedAt = i.now()
	i.refreshing = true
	i.recordRefreshTriggered()

	go i.authenticator.Refresh(credential, i.refreshCompleted)
}

// isRefreshExcessiveLocked reports whether another refresh inside the
// trailing window would be excessive. The caller must hold i.mu.
//
// Timestamps that fell out of the window are dropped: the history is
// monotonic, so an entry older than the current window start can never
// re-enter a future window.
func (i *Interceptor) isRefreshExcessiveLocked() bool {
	if i.window.Disabled {
		return false
	}

	windowStart := i.now().Add(-i.window.Interval)
	kept := i.refreshTimestamps[:0]
	for _, ts := range i.refreshTimestamps {
		if !ts.Before(windowStart) {
			kept = append(kept, ts)
		}
	}
	i.refreshTimestamps = kept

	// Reaching the maximum already counts as excessive.
	return len(kept) >= i.window.MaximumAttempts
}

// refreshCompleted is the Authenticator's refresh callback. It runs on
// whatever goroutine the Authenticator chose and re-acquires the lock
// before touching state.
func (i *Interceptor) refreshCompleted(credential Credential, err error) {
	i.mu.Lock()

	elapsed := i.now().Sub(i.refreshStartedAt)
	i.refreshing = false

	if err != nil {
		i.logger.Error("Credential refresh failed", "error", err, "elapsed", elapsed)
		i.recordRefreshCompleted(false, elapsed)
		i.failPendingLocked(err)
		i.mu.Unlock()
		return
	}

	i.credential = credential
	adapts, retries := i.captureAndClearLocked()
	i.mu.Unlock()

	i.logger.Debug("Credential refresh succeeded",
		"elapsed", elapsed,
		"resumed_adapts", len(adapts),
		"resumed_retries", len(retries),
	)
	i.recordRefreshCompleted(true, elapsed)

	// Drain on a fresh goroutine: resuming an adapt waiter re-enters
	// Adapt, which takes the lock again.
	go func() {
		for _, w := range adapts {
			i.Adapt(w.ctx, w.req, w.complete)
		}
		for _, complete := range retries {
			i.completeRetry(context.Background(), complete, RetryResult{Verdict: VerdictRetry})
		}
	}()
}

// failPendingLocked resolves every parked waiter with the given error.
// The caller must hold i.mu; the waiters themselves are resumed on a
// fresh goroutine after capture.
func (i *Interceptor) failPendingLocked(err error) {
	adapts, retries := i.captureAndClearLocked()

	go func() {
		for _, w := range adapts {
			w.complete(nil, err)
		}
		for _, complete := range retries {
			i.completeRetry(context.Background(), complete, RetryResult{Verdict: VerdictDoNotRetryWithError, Err: err})
		}
	}()
}

// captureAndClearLocked swaps both pending queues for empty ones and
// returns the prior contents. The caller must hold i.mu. Clearing at
// capture time is what makes resumption exactly-once.
func (i *Interceptor) captureAndClearLocked() ([]adaptWaiter, []func(RetryResult)) {
	adapts := i.pendingAdapts
	retries := i.pendingRetries
	i.pendingAdapts = nil
	i.pendingRetries = nil
	return adapts, retries
}

// completeRetry invokes a retry completion and records the verdict.
func (i *Interceptor) completeRetry(ctx context.Context, complete func(RetryResult), result RetryResult) {
	if i.metrics != nil {
		i.metrics.RecordRetryVerdict(ctx, result.Verdict.String())
	}
	complete(result)
}

func (i *Interceptor) recordAdaptQueued(ctx context.Context) {
	if i.metrics != nil {
		i.metrics.RecordAdaptQueued(ctx)
	}
}

func (i *Interceptor) recordRefreshTriggered() {
	if i.metrics != nil {
		i.metrics.RecordRefreshTriggered(context.Background())
	}
}

func (i *Interceptor) recordRefreshRejected() {
	if i.metrics != nil {
		i.metrics.RecordRefreshRejected(context.Background())
	}
}

func (i *Interceptor) recordRefreshCompleted(success bool, elapsed time.Duration) {
	if i.metrics != nil {
		i.metrics.RecordRefreshCompleted(context.Background(), success, float64(elapsed.Milliseconds()))
	}
}
