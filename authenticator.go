package authflight

import "net/http"

// Credential is an opaque authentication value attached to outgoing
// requests. Implementations are treated as immutable: a refresh never
// mutates a credential in place, it replaces it wholesale.
type Credential interface {
	// RequiresRefresh reports whether the credential can no longer be used
	// to authenticate a request and must be refreshed first.
	RequiresRefresh() bool
}

// Authenticator performs the credential-specific work the Interceptor
// coordinates. Implementations back a concrete authentication scheme
// (OAuth2 bearer tokens, API keys, mutual-TLS session tickets) behind
// the same contract.
//
// All methods may be called from multiple goroutines.
type Authenticator interface {
	// Attach annotates the request with the credential, typically by
	// setting the Authorization header. Attach does not fail; a credential
	// that cannot be attached should be reported through RequiresRefresh
	// or Refresh instead.
	Attach(req *http.Request, credential Credential)

	// Refresh obtains a replacement for the given credential and reports
	// the outcome through complete. Refresh may run the exchange
	// synchronously or hand it off; either way complete must be called
	// exactly once. The Interceptor always invokes Refresh on its own
	// goroutine, never while holding internal locks.
	Refresh(credential Credential, complete func(Credential, error))

	// IsAuthFailure reports whether the failed request was rejected
	// specifically because of its credential, as opposed to any other
	// transport or server error. resp and err mirror the outcome of the
	// round trip and either may be nil.
	IsAuthFailure(req *http.Request, resp *http.Response, err error) bool

	// IsAuthenticatedWith reports whether the request carries the given
	// credential. The Interceptor uses this to tell a request that failed
	// under an already-replaced credential (retry immediately) apart from
	// one that discovered the current credential is invalid (refresh).
	IsAuthenticatedWith(req *http.Request, credential Credential) bool
}
