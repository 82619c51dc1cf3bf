package authflight

// RetryVerdict is the Interceptor's decision about a failed request.
type RetryVerdict int

const (
	// VerdictDoNotRetry abandons the request. The failure was not caused
	// by the credential, so the caller's original response and error stand.
	VerdictDoNotRetry RetryVerdict = iota

	// VerdictRetry directs the transport to resend the request. The
	// credential that failed has been (or already was) replaced.
	VerdictRetry

	// VerdictDoNotRetryWithError abandons the request with an error from
	// the interceptor itself, carried in RetryResult.Err.
	VerdictDoNotRetryWithError
)

// String returns the verdict name for logging and metrics.
func (v RetryVerdict) String() string {
	switch v {
	case VerdictDoNotRetry:
		return "do_not_retry"
	case VerdictRetry:
		return "retry"
	case VerdictDoNotRetryWithError:
		return "do_not_retry_with_error"
	default:
		return "unknown"
	}
}

// RetryResult pairs a retry verdict with the error that produced it.
// Err is set only for VerdictDoNotRetryWithError.
type RetryResult struct {
	Verdict RetryVerdict
	Err     error
}
